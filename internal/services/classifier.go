package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mfcoelho/finbot-backend/internal/dto"
	"github.com/mfcoelho/finbot-backend/internal/errs"
	"github.com/mfcoelho/finbot-backend/internal/models"
	"github.com/mfcoelho/finbot-backend/internal/taxonomy"
	"github.com/mfcoelho/finbot-backend/pkg/logger"
)

type generativeClient interface {
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
}

type classifierService struct {
	genai generativeClient
}

// NewClassifierService builds the category classifier. A nil client is
// valid: every classification then takes the deterministic fallback path.
func NewClassifierService(genai generativeClient) *classifierService {
	return &classifierService{genai: genai}
}

const classifierSystem = "You are a financial categorization assistant. Always reply with valid JSON."

// Classify resolves category and subcategory for a message. The semantic
// classifier is tried first; any failure degrades silently to the keyword
// fallback. The income override runs last regardless of which path produced
// the result.
func (s *classifierService) Classify(ctx context.Context, text string, kind models.Kind) dto.Classification {
	log := logger.FromContext(ctx)

	result, err := s.classifyPrimary(ctx, text)
	if err != nil {
		log.Warn("semantic classification unavailable, using fallback", "error", err)
		result.Category, result.Subcategory = taxonomy.Fallback(text)
	}

	if kind == models.KindIncome && result.Category == taxonomy.CategoryOther {
		result.Category = taxonomy.CategoryIncome
		result.Subcategory = taxonomy.CategoryIncome
	}

	return result
}

func (s *classifierService) classifyPrimary(ctx context.Context, text string) (dto.Classification, error) {
	if s.genai == nil {
		return dto.Classification{}, errs.NewClassifierError("classifier not configured")
	}

	prompt := fmt.Sprintf(`Categorize this financial message.

Message: %q

Available categories:
%s

Return ONLY a JSON object of the form:
{"category": "category_name", "subcategory": "specific_detail"}

Examples:
- "Gastei 50 de Uber" -> {"category": "Transportation", "subcategory": "Uber"}
- "Bought dog food" -> {"category": "Pet", "subcategory": "Food"}
- "Paid for a Python course" -> {"category": "Education", "subcategory": "Course"}`,
		text, strings.Join(taxonomy.Categories, ", "))

	raw, err := s.genai.GenerateJSON(ctx, classifierSystem, prompt)
	if err != nil {
		return dto.Classification{}, err
	}

	var result dto.Classification
	if err := json.Unmarshal([]byte(stripFences(raw)), &result); err != nil {
		return dto.Classification{}, errs.NewClassifierError("malformed classifier output: " + err.Error())
	}
	if result.Category == "" || result.Subcategory == "" {
		return dto.Classification{}, errs.NewClassifierError("classifier output missing fields")
	}

	return result, nil
}

// stripFences removes a markdown code fence when the model wraps its JSON
// in one despite the instructions.
func stripFences(raw string) string {
	out := strings.TrimSpace(raw)
	if after, found := strings.CutPrefix(out, "```json"); found {
		out = after
	} else if after, found := strings.CutPrefix(out, "```"); found {
		out = after
	}
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}
