package models

import "time"

// Urgency is the classifier's assessment of how soon a job needs attention.
type Urgency string

const (
	UrgencyLow      Urgency = "Low"
	UrgencyMedium   Urgency = "Medium"
	UrgencyCritical Urgency = "Critical"
)

// Urgencies lists the accepted urgency values.
var Urgencies = []Urgency{UrgencyLow, UrgencyMedium, UrgencyCritical}

// ClassificationResult is the structured estimate produced from a free-text problem description.
// Prices are advisory and never enforced against the commitment fee.
type ClassificationResult struct {
	Category          ServiceCategory `json:"category"`
	Urgency           Urgency         `json:"urgency"`
	EstimatedPriceMin float64         `json:"estimatedPriceMin"`
	EstimatedPriceMax float64         `json:"estimatedPriceMax"`
	Reasoning         string          `json:"reasoning"`
	SuggestedAction   string          `json:"suggestedAction"`
}

// ClassifyRequest is the payload of POST /api/ai/classify.
type ClassifyRequest struct {
	Description string `json:"description" binding:"required"`
}

// AIContext is the most recent assistant result for a client, kept so the
// booking wizard can be opened pre-filled.
type AIContext struct {
	Description string               `json:"description"`
	Result      ClassificationResult `json:"result"`
	CreatedAt   time.Time            `json:"createdAt"`
}
