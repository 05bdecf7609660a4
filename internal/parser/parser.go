// Package parser holds the pure text heuristics that seed a draft before the
// classifier runs.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mfcoelho/finbot-backend/internal/models"
)

var amountPattern = regexp.MustCompile(`(\d+[.,]?\d*)`)

var currencyMarkers = []string{"r$", "R$", "$"}

// incomeKeywords flips a message to Income on any case-insensitive hit.
// English and Portuguese forms both appear in real traffic.
var incomeKeywords = []string{
	"recebi", "ganhei", "recebido", "ganho", "receita",
	"salário", "salario", "entrada", "pix de",
	"received", "earned", "salary", "deposit", "income", "pix from",
}

// Amount extracts the first numeric token from the message. Zero means no
// amount was found; callers must treat it as unknown, never as a free
// transaction.
func Amount(text string) float64 {
	clean := text
	for _, marker := range currencyMarkers {
		clean = strings.ReplaceAll(clean, marker, "")
	}

	match := amountPattern.FindString(clean)
	if match == "" {
		return 0
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return 0
	}
	return value
}

// Kind decides between expense and income. First keyword hit wins; no
// scoring.
func Kind(text string) models.Kind {
	lower := strings.ToLower(text)
	for _, keyword := range incomeKeywords {
		if strings.Contains(lower, keyword) {
			return models.KindIncome
		}
	}
	return models.KindExpense
}

// PaymentMethod scans in fixed priority order: Pix, Debit, Credit, Cash.
// No hit returns MethodPending, which means the bot has to ask.
func PaymentMethod(text string) models.PaymentMethod {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "pix"):
		return models.MethodPix
	case strings.Contains(lower, "debito"), strings.Contains(lower, "débito"),
		strings.Contains(lower, "debit"):
		return models.MethodDebit
	case strings.Contains(lower, "credito"), strings.Contains(lower, "crédito"),
		strings.Contains(lower, "credit"):
		return models.MethodCredit
	case strings.Contains(lower, "dinheiro"), strings.Contains(lower, "cash"):
		return models.MethodCash
	}

	return models.MethodPending
}
