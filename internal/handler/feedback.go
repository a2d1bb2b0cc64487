package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/model"
	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/service"
)

// FeedbackHandler handles listing feedback requests
type FeedbackHandler struct {
	search *service.SearchService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(search *service.SearchService) *FeedbackHandler {
	return &FeedbackHandler{search: search}
}

// Feedback handles POST /api/v1/feedback. The write is fire-and-forget;
// the response acknowledges receipt, not persistence.
func (h *FeedbackHandler) Feedback(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	h.search.Feedback(&req)
	c.JSON(http.StatusOK, model.FeedbackResponse{
		Success: true,
		Message: "Feedback recorded",
	})
}
