package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/model"
	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/service"
)

// QueryHandler handles property search requests
type QueryHandler struct {
	search *service.SearchService
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(search *service.SearchService) *QueryHandler {
	return &QueryHandler{search: search}
}

// Query handles POST /api/v1/query
func (h *QueryHandler) Query(c *gin.Context) {
	var req model.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	resp := h.search.Query(c.Request.Context(), &req)
	c.JSON(http.StatusOK, resp)
}
