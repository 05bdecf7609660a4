package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/mfcoelho/finbot-backend/internal/dto"
	"github.com/mfcoelho/finbot-backend/internal/models"
	"github.com/mfcoelho/finbot-backend/pkg/helpers"
)

type fakeLedgerClient struct {
	records []dto.LedgerRecord
	failAt  int // 1-based call index that fails; 0 = never
	summary dto.MonthSummary
	month   time.Month
	year    int
}

func (f *fakeLedgerClient) PostTransaction(ctx context.Context, record dto.LedgerRecord) error {
	if f.failAt > 0 && len(f.records)+1 == f.failAt {
		return errors.New("ledger unavailable")
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeLedgerClient) MonthSummary(ctx context.Context, month time.Month, year int) (dto.MonthSummary, error) {
	f.month = month
	f.year = year
	return f.summary, nil
}

func singleDraft() models.Draft {
	return models.Draft{
		Kind:          models.KindExpense,
		Amount:        90,
		Category:      "Food",
		Subcategory:   "Dinner",
		PaymentMethod: models.MethodDebit,
		Installments:  1,
		Description:   "jantar 90 no débito",
		PurchaseDate:  time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestPersistSingleRecord(t *testing.T) {
	client := &fakeLedgerClient{}
	svc := NewLedgerService(client)

	if err := svc.Persist(helpers.TestCtx(), singleDraft()); err != nil {
		t.Fatalf("Persist error: %v", err)
	}

	if len(client.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(client.records))
	}

	record := client.records[0]
	if record.Type != "Expense" || record.Amount != 90 || record.PaymentMethod != "Debit" {
		t.Fatalf("record mismatch: %+v", record)
	}
	if record.IsInstallment || record.CurrentInstallment != 1 || record.TotalInstallments != 1 {
		t.Fatalf("installment fields mismatch: %+v", record)
	}
	if record.Origin != "whatsapp" {
		t.Fatalf("origin mismatch: %q", record.Origin)
	}
}

func TestPersistExpandsInstallments(t *testing.T) {
	client := &fakeLedgerClient{}
	svc := NewLedgerService(client)

	draft := singleDraft()
	draft.Amount = 100
	draft.PaymentMethod = models.MethodCredit
	draft.Installments = 3
	draft.InstallmentState = models.InstallmentResolved

	if err := svc.Persist(helpers.TestCtx(), draft); err != nil {
		t.Fatalf("Persist error: %v", err)
	}

	if len(client.records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(client.records))
	}

	var sum float64
	var previous time.Time
	for i, record := range client.records {
		sum += record.Amount

		if !record.IsInstallment {
			t.Fatalf("record %d should be flagged installment", i+1)
		}
		if record.CurrentInstallment != i+1 || record.TotalInstallments != 3 {
			t.Fatalf("record %d index mismatch: %+v", i+1, record)
		}

		wantSuffix := fmt.Sprintf("(%d/3)", i+1)
		if record.Description != draft.Description+" "+wantSuffix {
			t.Fatalf("record %d description mismatch: %q", i+1, record.Description)
		}

		date, err := time.Parse(time.RFC3339, record.Date)
		if err != nil {
			t.Fatalf("record %d date unparseable: %v", i+1, err)
		}
		if i > 0 && !date.Equal(previous.AddDate(0, 1, 0)) {
			t.Fatalf("record %d date %v is not one month after %v", i+1, date, previous)
		}
		previous = date
	}

	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("installment amounts sum to %v, want 100", sum)
	}
}

func TestPersistInstallmentDatesClampToMonthEnd(t *testing.T) {
	client := &fakeLedgerClient{}
	svc := NewLedgerService(client)

	draft := singleDraft()
	draft.Amount = 300
	draft.PaymentMethod = models.MethodCredit
	draft.Installments = 3
	draft.InstallmentState = models.InstallmentResolved
	draft.PurchaseDate = time.Date(2026, time.January, 31, 12, 0, 0, 0, time.UTC)

	if err := svc.Persist(helpers.TestCtx(), draft); err != nil {
		t.Fatalf("Persist error: %v", err)
	}
	if len(client.records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(client.records))
	}

	// February has no day 31, so the second installment lands on the 28th.
	want := []time.Time{
		time.Date(2026, time.January, 31, 12, 0, 0, 0, time.UTC),
		time.Date(2026, time.February, 28, 12, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 31, 12, 0, 0, 0, time.UTC),
	}
	for i, record := range client.records {
		date, err := time.Parse(time.RFC3339, record.Date)
		if err != nil {
			t.Fatalf("record %d date unparseable: %v", i+1, err)
		}
		if !date.Equal(want[i]) {
			t.Fatalf("record %d date %v, want %v", i+1, date, want[i])
		}
	}
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"zero offset", time.Date(2026, 1, 31, 8, 30, 0, 0, time.UTC), 0, time.Date(2026, 1, 31, 8, 30, 0, 0, time.UTC)},
		{"regular month", time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), 1, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)},
		{"clamps to february", time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"leap february", time.Date(2028, 1, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"day 31 into 30-day month", time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)},
		{"year rollover", time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC), 3, time.Date(2027, 2, 28, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := addMonthsClamped(tc.start, tc.months); !got.Equal(tc.want) {
				t.Fatalf("addMonthsClamped(%v, %d) = %v, want %v", tc.start, tc.months, got, tc.want)
			}
		})
	}
}

func TestPersistInstallmentFailureStopsBatch(t *testing.T) {
	client := &fakeLedgerClient{failAt: 2}
	svc := NewLedgerService(client)

	draft := singleDraft()
	draft.Amount = 100
	draft.Installments = 3
	draft.InstallmentState = models.InstallmentResolved

	err := svc.Persist(helpers.TestCtx(), draft)
	if err == nil {
		t.Fatal("expected error")
	}
	// no rollback: the first installment stays posted
	if len(client.records) != 1 {
		t.Fatalf("expected 1 record before the failure, got %d", len(client.records))
	}
}

func TestMonthSummaryDefaultsToCurrentMonth(t *testing.T) {
	client := &fakeLedgerClient{summary: dto.MonthSummary{Total: 42}}
	svc := NewLedgerService(client)
	svc.clockNow = func() time.Time {
		return time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)
	}

	got, err := svc.MonthSummary(helpers.TestCtx())
	if err != nil {
		t.Fatalf("MonthSummary error: %v", err)
	}
	if got.Total != 42 {
		t.Fatalf("total mismatch: %v", got.Total)
	}
	if client.month != time.August || client.year != 2026 {
		t.Fatalf("expected current month/year, got %v/%d", client.month, client.year)
	}
}
