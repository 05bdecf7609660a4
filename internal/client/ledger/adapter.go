// Package ledgerclient talks to the remote ledger API that is the system of
// record for finished transactions.
package ledgerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mfcoelho/finbot-backend/internal/dto"
	"github.com/mfcoelho/finbot-backend/internal/errs"
	"github.com/mfcoelho/finbot-backend/pkg/logger"
)

const (
	transactionsPath = "/transactions"
	summaryPath      = "/dashboard/summary"
	categoryPath     = "/charts/category"

	defaultTimeout = 30 * time.Second
)

type Adapter struct {
	httpClient *http.Client
	baseURL    string
	attempts   int
	retryDelay time.Duration
}

// NewAdapter builds a ledger client with bounded fixed-delay retry. attempts
// counts total tries, not re-tries.
func NewAdapter(baseURL string, attempts int, retryDelay time.Duration) *Adapter {
	if attempts < 1 {
		attempts = 3
	}
	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}

	return &Adapter{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:    baseURL,
		attempts:   attempts,
		retryDelay: retryDelay,
	}
}

// PostTransaction writes one record, retrying transient failures. The error
// returned is definitive; the caller must not retry again.
func (a *Adapter) PostTransaction(ctx context.Context, record dto.LedgerRecord) error {
	log := logger.FromContext(ctx)

	body, err := json.Marshal(record)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= a.attempts; attempt++ {
		lastErr = a.post(ctx, body)
		if lastErr == nil {
			return nil
		}

		log.Warn("ledger post failed",
			"attempt", attempt,
			"attempts", a.attempts,
			"error", lastErr)

		if attempt < a.attempts {
			select {
			case <-time.After(a.retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return errs.NewExternalServiceError("ledger", lastErr.Error(), false)
}

func (a *Adapter) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+transactionsPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("ledger returned status %d", resp.StatusCode)
	}
	return nil
}

type summaryResponse struct {
	Expenses float64 `json:"expenses"`
	Bills    float64 `json:"bills"`
}

type categoryItem struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MonthSummary fetches the month total plus the per-category breakdown.
// Any failure degrades to an empty summary; the caller turns that into a
// conversational error.
func (a *Adapter) MonthSummary(ctx context.Context, month time.Month, year int) (dto.MonthSummary, error) {
	empty := dto.MonthSummary{Categories: map[string]float64{}}

	var summary summaryResponse
	if err := a.get(ctx, summaryPath, month, year, &summary); err != nil {
		return empty, errs.NewExternalServiceError("ledger", err.Error(), true)
	}

	out := dto.MonthSummary{
		Total:      summary.Expenses + summary.Bills,
		Categories: map[string]float64{},
	}

	// Category chart is best-effort; a summary with no breakdown still
	// answers the user's question.
	var items []categoryItem
	if err := a.get(ctx, categoryPath, month, year, &items); err == nil {
		for _, item := range items {
			out.Categories[item.Name] = item.Value
		}
	}

	return out, nil
}

func (a *Adapter) get(ctx context.Context, path string, month time.Month, year int, into any) error {
	url := fmt.Sprintf("%s%s?month=%d&year=%d", a.baseURL, path, int(month), year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ledger returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(into)
}
