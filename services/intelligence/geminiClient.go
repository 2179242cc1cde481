// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fayano/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Generator returns the raw JSON text the model produced for prompt.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// GeminiClient asks Gemini for a JSON answer constrained by the classification schema.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelID string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelID)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = classificationSchema()
	model.SetTemperature(0.2)

	return &GeminiClient{client: client, model: model}, nil
}

func classificationSchema() *genai.Schema {
	categories := make([]string, 0, len(models.ServiceCategories))
	for _, c := range models.ServiceCategories {
		categories = append(categories, string(c))
	}
	urgencies := make([]string, 0, len(models.Urgencies))
	for _, u := range models.Urgencies {
		urgencies = append(urgencies, string(u))
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"category":          {Type: genai.TypeString, Format: "enum", Enum: categories},
			"urgency":           {Type: genai.TypeString, Format: "enum", Enum: urgencies},
			"estimatedPriceMin": {Type: genai.TypeNumber},
			"estimatedPriceMax": {Type: genai.TypeNumber},
			"reasoning":         {Type: genai.TypeString},
			"suggestedAction":   {Type: genai.TypeString},
		},
		Required: []string{"category", "urgency", "estimatedPriceMin", "estimatedPriceMax", "reasoning", "suggestedAction"},
	}
}

func (g *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}
