package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fayano/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) GenerateJSON(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func TestClassifier_Success(t *testing.T) {
	gen := &stubGenerator{response: `{
		"category": "Plumbing",
		"urgency": "Critical",
		"estimatedPriceMin": 1500,
		"estimatedPriceMax": 3000,
		"reasoning": "Burst pipe under the sink.",
		"suggestedAction": "Shut the main valve and book a plumber."
	}`}
	c := NewClassifier(gen, zap.NewNop())

	got := c.Classify(context.Background(), "water everywhere under my sink")

	assert.Equal(t, models.ClassificationResult{
		Category:          models.CategoryPlumbing,
		Urgency:           models.UrgencyCritical,
		EstimatedPriceMin: 1500,
		EstimatedPriceMax: 3000,
		Reasoning:         "Burst pipe under the sink.",
		SuggestedAction:   "Shut the main valve and book a plumber.",
	}, got)
	if assert.Len(t, gen.prompts, 1) {
		assert.True(t, strings.Contains(gen.prompts[0], `"water everywhere under my sink"`))
		assert.True(t, strings.Contains(gen.prompts[0], "Kenyan Shillings"))
	}
}

func TestClassifier_GeneralInquiryAlias(t *testing.T) {
	gen := &stubGenerator{response: `{"category":"General Inquiry","urgency":"Low","estimatedPriceMin":500,"estimatedPriceMax":500,"reasoning":"r","suggestedAction":"a"}`}
	got := NewClassifier(gen, zap.NewNop()).Classify(context.Background(), "not sure")
	assert.Equal(t, models.CategoryGeneral, got.Category)
	assert.Equal(t, models.UrgencyLow, got.Urgency)
}

func TestClassifier_FallsBack(t *testing.T) {
	tests := []struct {
		name string
		gen  Generator
	}{
		{name: "no credentials", gen: nil},
		{name: "provider failure", gen: &stubGenerator{err: errors.New("503 unavailable")}},
		{name: "empty response", gen: &stubGenerator{response: "  "}},
		{name: "not json", gen: &stubGenerator{response: "Sure! It's plumbing."}},
		{name: "missing field", gen: &stubGenerator{response: `{"category":"Plumbing","urgency":"Low","estimatedPriceMin":1,"estimatedPriceMax":2,"reasoning":"r"}`}},
		{name: "unknown category", gen: &stubGenerator{response: `{"category":"Roofing","urgency":"Low","estimatedPriceMin":1,"estimatedPriceMax":2,"reasoning":"r","suggestedAction":"a"}`}},
		{name: "unknown urgency", gen: &stubGenerator{response: `{"category":"Plumbing","urgency":"Soon","estimatedPriceMin":1,"estimatedPriceMax":2,"reasoning":"r","suggestedAction":"a"}`}},
		{name: "inverted range", gen: &stubGenerator{response: `{"category":"Plumbing","urgency":"Low","estimatedPriceMin":5000,"estimatedPriceMax":200,"reasoning":"r","suggestedAction":"a"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(tt.gen, zap.NewNop())
			got := c.Classify(context.Background(), "leaking pipe")

			assert.Equal(t, FallbackResult(), got)
			assert.Equal(t, models.CategoryGeneral, got.Category)
			assert.Equal(t, models.UrgencyMedium, got.Urgency)
			assert.Equal(t, 500.0, got.EstimatedPriceMin)
			assert.Equal(t, 2000.0, got.EstimatedPriceMax)
		})
	}
}

func TestClassificationSchema(t *testing.T) {
	s := classificationSchema()
	assert.ElementsMatch(t, []string{"category", "urgency", "estimatedPriceMin", "estimatedPriceMax", "reasoning", "suggestedAction"}, s.Required)
	assert.Len(t, s.Properties["category"].Enum, 6)
	assert.Equal(t, []string{"Low", "Medium", "Critical"}, s.Properties["urgency"].Enum)
}
