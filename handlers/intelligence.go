package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"fayano/middleware"
	"fayano/models"
	ai "fayano/services/intelligence"
	"fayano/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AIContextWriter stores a client's latest classification for wizard pre-fill.
type AIContextWriter interface {
	Set(ctx context.Context, clientID string, aiCtx *models.AIContext) error
}

// AIHandler serves the "describe your problem" intake.
type AIHandler struct {
	Classifier *ai.Classifier
	Contexts   AIContextWriter
}

func NewAIHandler(classifier *ai.Classifier, contexts AIContextWriter) *AIHandler {
	return &AIHandler{Classifier: classifier, Contexts: contexts}
}

// Classify handles POST /api/ai/classify.
func (h *AIHandler) Classify(c *gin.Context) {
	logger := getLogger(c)

	var req models.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Description) == "" {
		utils.JSONValidationError(c, "Please describe the problem you need help with.", []string{models.FieldDescription})
		return
	}

	result := h.Classifier.Classify(c.Request.Context(), req.Description)

	if h.Contexts != nil {
		aiCtx := &models.AIContext{
			Description: req.Description,
			Result:      result,
			CreatedAt:   time.Now(),
		}
		if err := h.Contexts.Set(c.Request.Context(), middleware.ClientID(c), aiCtx); err != nil {
			logger.Warn("Failed to store AI context", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, result)
}
