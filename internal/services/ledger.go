package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mfcoelho/finbot-backend/internal/dto"
	"github.com/mfcoelho/finbot-backend/internal/models"
	"github.com/mfcoelho/finbot-backend/pkg/logger"
)

// originTag marks records created through the chat bot in the ledger.
const originTag = "whatsapp"

type ledgerClient interface {
	PostTransaction(ctx context.Context, record dto.LedgerRecord) error
	MonthSummary(ctx context.Context, month time.Month, year int) (dto.MonthSummary, error)
}

type ledgerService struct {
	client   ledgerClient
	clockNow func() time.Time
}

func NewLedgerService(client ledgerClient) *ledgerService {
	return &ledgerService{
		client:   client,
		clockNow: time.Now,
	}
}

// Persist writes a completed draft to the ledger. Installment purchases are
// expanded into one record per installment, amount split evenly, each dated
// one month after the previous. A definitive failure on any installment
// fails the whole batch; records already posted stay posted.
func (s *ledgerService) Persist(ctx context.Context, draft models.Draft) error {
	log := logger.FromContext(ctx)

	total := draft.Installments
	if total < 1 {
		total = 1
	}

	record := dto.LedgerRecord{
		Type:               string(draft.Kind),
		Amount:             draft.Amount,
		Category:           draft.Category,
		Subcategory:        draft.Subcategory,
		PaymentMethod:      string(draft.PaymentMethod),
		IsInstallment:      total > 1,
		CurrentInstallment: 1,
		TotalInstallments:  total,
		Description:        draft.Description,
		Origin:             originTag,
		Date:               draft.PurchaseDate.Format(time.RFC3339),
	}

	if total == 1 {
		return s.client.PostTransaction(ctx, record)
	}

	perInstallment := draft.Amount / float64(total)
	for i := 1; i <= total; i++ {
		installment := record
		installment.Amount = perInstallment
		installment.CurrentInstallment = i
		installment.Description = fmt.Sprintf("%s (%d/%d)", draft.Description, i, total)
		installment.Date = addMonthsClamped(draft.PurchaseDate, i-1).Format(time.RFC3339)

		if err := s.client.PostTransaction(ctx, installment); err != nil {
			return err
		}
		log.Info("installment posted", "installment", i, "total", total)
	}

	return nil
}

// addMonthsClamped shifts t forward by the given number of months, clamping
// the day to the target month's length. AddDate alone normalizes Jan 31 plus
// one month into Mar 3, which would pile two installments into March and
// skip February.
func addMonthsClamped(t time.Time, months int) time.Time {
	if months == 0 {
		return t
	}

	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthSummary returns the current month's totals.
func (s *ledgerService) MonthSummary(ctx context.Context) (dto.MonthSummary, error) {
	now := s.clockNow()
	return s.client.MonthSummary(ctx, now.Month(), now.Year())
}
