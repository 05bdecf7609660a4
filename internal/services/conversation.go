package services

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/mfcoelho/finbot-backend/internal/dto"
	"github.com/mfcoelho/finbot-backend/internal/models"
	"github.com/mfcoelho/finbot-backend/internal/parser"
	"github.com/mfcoelho/finbot-backend/internal/taxonomy"
	"github.com/mfcoelho/finbot-backend/pkg/logger"
)

type classifierSvc interface {
	Classify(ctx context.Context, text string, kind models.Kind) dto.Classification
}

type ledgerSvc interface {
	Persist(ctx context.Context, draft models.Draft) error
	MonthSummary(ctx context.Context) (dto.MonthSummary, error)
}

type pendingStore interface {
	Get(userID string) (models.Draft, bool)
	Set(userID string, draft models.Draft)
	Clear(userID string)
}

var cancelAliases = map[string]bool{
	"cancel": true, "/cancel": true,
	"cancelar": true, "/cancelar": true,
}

var summaryAliases = map[string]bool{
	"/summary": true, "/resumo": true,
}

// conversationService is the turn-by-turn state machine. Each user has at
// most one pending draft; a message either answers an open question, runs a
// command, or starts a fresh draft.
type conversationService struct {
	classifier classifierSvc
	ledger     ledgerSvc
	pending    pendingStore
	clockNow   func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewConversationService(classifier classifierSvc, ledger ledgerSvc, pending pendingStore) *conversationService {
	return &conversationService{
		classifier: classifier,
		ledger:     ledger,
		pending:    pending,
		clockNow:   time.Now,
		locks:      map[string]*sync.Mutex{},
	}
}

// HandleMessage processes one inbound message to completion and returns the
// reply. Messages for the same user are serialized; different users run in
// parallel.
func (s *conversationService) HandleMessage(ctx context.Context, userID, text string) (string, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	command := strings.ToLower(strings.TrimSpace(text))

	// Commands run before everything else. Cancelling must work even while
	// the bot is waiting on a clarification answer, and the summary never
	// touches pending state.
	switch {
	case cancelAliases[command]:
		s.pending.Clear(userID)
		return cancelReply, nil
	case summaryAliases[command]:
		return s.monthSummary(ctx)
	}

	if draft, ok := s.pending.Get(userID); ok {
		if draft.PaymentMethod == models.MethodPending || draft.PaymentMethod == "" {
			return s.answerPaymentMethod(ctx, userID, draft, text)
		}
		if draft.InstallmentState == models.InstallmentPending {
			return s.answerInstallments(ctx, userID, draft, text)
		}
	}

	return s.startDraft(ctx, userID, text)
}

// answerPaymentMethod interprets the message as the reply to the
// three-option payment prompt.
func (s *conversationService) answerPaymentMethod(ctx context.Context, userID string, draft models.Draft, text string) (string, error) {
	method, ok := parsePaymentAnswer(text)
	if !ok {
		return paymentOptions, nil
	}

	draft.PaymentMethod = method

	if method == models.MethodCredit {
		draft.InstallmentState = models.InstallmentPending
		s.pending.Set(userID, draft)
		return installmentPrompt, nil
	}

	return s.persist(ctx, userID, draft)
}

// answerInstallments interprets the message as the installment count. A
// non-integer answer re-prompts and leaves the pending draft untouched.
func (s *conversationService) answerInstallments(ctx context.Context, userID string, draft models.Draft, text string) (string, error) {
	count, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || count < 1 {
		return invalidInstallmentReply, nil
	}

	draft.Installments = count
	draft.InstallmentState = models.InstallmentResolved

	return s.persist(ctx, userID, draft)
}

// startDraft runs the fresh-message pipeline: extract, classify, correct,
// then either persist or park the draft and ask the next question.
func (s *conversationService) startDraft(ctx context.Context, userID, text string) (string, error) {
	log := logger.FromContext(ctx)

	draft := models.Draft{
		Kind:          parser.Kind(text),
		Amount:        parser.Amount(text),
		PaymentMethod: parser.PaymentMethod(text),
		Installments:  1,
		Description:   text,
		PurchaseDate:  s.clockNow(),
	}

	classification := s.classifier.Classify(ctx, text, draft.Kind)
	draft.Category = classification.Category
	draft.Subcategory = classification.Subcategory

	// Income skips every clarification gate.
	if draft.Kind == models.KindIncome {
		if draft.PaymentMethod == models.MethodPending {
			draft.PaymentMethod = models.MethodPix
		}
		if draft.Subcategory == "" {
			draft.Subcategory = draft.Category
		}
		return s.persist(ctx, userID, draft)
	}

	// Credit named directly in the text is treated as a one-shot purchase;
	// the installment question is only asked when credit comes out of the
	// clarification dialogue.
	if draft.PaymentMethod == models.MethodCredit {
		draft.Installments = 1
		return s.persist(ctx, userID, draft)
	}

	if category, subcategory, changed := taxonomy.Override(draft.Description, draft.Category, draft.Subcategory); changed {
		draft.Category = category
		draft.Subcategory = subcategory
	}

	if draft.Subcategory == draft.Category {
		if detail := capitalize(draft.Description); detail != "" {
			draft.Subcategory = detail
		}
	}

	if draft.Amount <= 0 {
		// Nothing worth resuming; the user has to resend.
		return noAmountReply, nil
	}

	if draft.PaymentMethod == models.MethodPending {
		s.pending.Set(userID, draft)
		log.Info("draft parked awaiting payment method", "user_id", userID)
		return paymentPrompt(draft), nil
	}

	if draft.PaymentMethod == models.MethodCredit && draft.InstallmentState == models.InstallmentPending {
		s.pending.Set(userID, draft)
		return installmentPrompt, nil
	}

	return s.persist(ctx, userID, draft)
}

// persist clears pending state first, then writes. A ledger failure after
// the clear loses the draft: persistence is at-most-once by design.
func (s *conversationService) persist(ctx context.Context, userID string, draft models.Draft) (string, error) {
	log := logger.FromContext(ctx)

	s.pending.Clear(userID)

	if err := s.ledger.Persist(ctx, draft); err != nil {
		log.Error("ledger persist failed, draft lost", "user_id", userID, "error", err)
		return persistFailedReply, nil
	}

	log.Info("transaction persisted",
		"user_id", userID,
		"kind", draft.Kind,
		"category", draft.Category,
		"installments", draft.Installments)
	return successReply(draft), nil
}

func (s *conversationService) monthSummary(ctx context.Context) (string, error) {
	summary, err := s.ledger.MonthSummary(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("month summary failed", "error", err)
		return summaryFailedReply, nil
	}

	now := s.clockNow()
	return summaryReply(int(now.Month()), now.Year(), summary), nil
}

// userLock returns the serialization mutex for a user. Entries are never
// removed: dropping one while another goroutine still holds it would let two
// messages for the same user run concurrently, and the map only grows by one
// small entry per distinct user.
func (s *conversationService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// parsePaymentAnswer maps a clarification answer onto a payment method:
// numeric shortcuts first, then method names in any case.
func parsePaymentAnswer(text string) (models.PaymentMethod, bool) {
	switch strings.TrimSpace(text) {
	case "1":
		return models.MethodPix, true
	case "2":
		return models.MethodDebit, true
	case "3":
		return models.MethodCredit, true
	}

	if method := parser.PaymentMethod(text); method != models.MethodPending {
		return method, true
	}
	return models.MethodPending, false
}

// capitalize upper-cases the first rune and lower-cases the rest, turning
// raw message text into a readable subcategory detail.
func capitalize(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	runes := []rune(strings.ToLower(trimmed))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
