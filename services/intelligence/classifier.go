package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"fayano/models"

	"go.uber.org/zap"
)

const classificationPrompt = `
You are an expert facility manager for Fayano Agency, a home services platform in Kenya.
Analyze the user's problem description and categorize it into one of these services:
Plumbing, Electrical, Appliances, Handyman, CCTV & Security.

Provide a cost estimation in Kenyan Shillings (KSh) based on these tiers:
- Small jobs (faucet leak, bulb change): 500 - 2,000 KSh
- Medium jobs (wiring repair, appliance fix): 3,000 - 5,000 KSh
- Big jobs (CCTV install, full rewiring): 10,000+ KSh

User Description: %q
`

// FallbackResult is returned whenever the provider cannot give a usable answer.
func FallbackResult() models.ClassificationResult {
	return models.ClassificationResult{
		Category:          models.CategoryGeneral,
		Urgency:           models.UrgencyMedium,
		EstimatedPriceMin: 500,
		EstimatedPriceMax: 2000,
		Reasoning:         "We couldn't precisely analyze the request, but our general fundis can take a look.",
		SuggestedAction:   "Book a general consultation.",
	}
}

// Classifier turns a free-text problem description into a category and price band.
// It never fails: assistance is advisory and must not block a booking.
type Classifier struct {
	gen    Generator
	logger *zap.Logger
}

// NewClassifier returns a Classifier. A nil gen means no credentials are
// configured and every call yields the fallback.
func NewClassifier(gen Generator, logger *zap.Logger) *Classifier {
	return &Classifier{gen: gen, logger: logger}
}

func (c *Classifier) Classify(ctx context.Context, description string) models.ClassificationResult {
	if c.gen == nil {
		c.logger.Warn("AI analysis unavailable: API key not configured")
		return FallbackResult()
	}

	raw, err := c.gen.GenerateJSON(ctx, fmt.Sprintf(classificationPrompt, description))
	if err != nil {
		c.logger.Error("AI analysis failed", zap.Error(err))
		return FallbackResult()
	}

	result, err := parseClassification(raw)
	if err != nil {
		c.logger.Error("AI analysis returned unusable response", zap.Error(err), zap.String("response", raw))
		return FallbackResult()
	}
	return result
}

// wireResult mirrors the response schema with pointer fields so absent keys can be detected.
type wireResult struct {
	Category          *string  `json:"category"`
	Urgency           *string  `json:"urgency"`
	EstimatedPriceMin *float64 `json:"estimatedPriceMin"`
	EstimatedPriceMax *float64 `json:"estimatedPriceMax"`
	Reasoning         *string  `json:"reasoning"`
	SuggestedAction   *string  `json:"suggestedAction"`
}

func parseClassification(raw string) (models.ClassificationResult, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.ClassificationResult{}, errors.New("empty response from AI")
	}

	var w wireResult
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return models.ClassificationResult{}, fmt.Errorf("decode: %w", err)
	}
	if w.Category == nil || w.Urgency == nil || w.EstimatedPriceMin == nil ||
		w.EstimatedPriceMax == nil || w.Reasoning == nil || w.SuggestedAction == nil {
		return models.ClassificationResult{}, errors.New("missing required field")
	}

	category, ok := models.ParseServiceCategory(*w.Category)
	if !ok {
		return models.ClassificationResult{}, fmt.Errorf("unknown category %q", *w.Category)
	}
	urgency, ok := parseUrgency(*w.Urgency)
	if !ok {
		return models.ClassificationResult{}, fmt.Errorf("unknown urgency %q", *w.Urgency)
	}
	min, max := *w.EstimatedPriceMin, *w.EstimatedPriceMax
	if min < 0 || max < 0 || min > max {
		return models.ClassificationResult{}, fmt.Errorf("invalid price range %v-%v", min, max)
	}
	if strings.TrimSpace(*w.Reasoning) == "" || strings.TrimSpace(*w.SuggestedAction) == "" {
		return models.ClassificationResult{}, errors.New("empty reasoning or suggested action")
	}

	return models.ClassificationResult{
		Category:          category,
		Urgency:           urgency,
		EstimatedPriceMin: min,
		EstimatedPriceMax: max,
		Reasoning:         *w.Reasoning,
		SuggestedAction:   *w.SuggestedAction,
	}, nil
}

func parseUrgency(s string) (models.Urgency, bool) {
	for _, u := range models.Urgencies {
		if strings.EqualFold(strings.TrimSpace(s), string(u)) {
			return u, true
		}
	}
	return "", false
}
