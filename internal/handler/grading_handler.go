package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edubase/edubase-backend/internal/grading"
	"github.com/edubase/edubase-backend/internal/response"
)

// GradingHandler exposes the configured grade-banding table. Grades on
// stored marks stay exactly as submitted; this is advisory data for
// clients that want to band totals consistently.
type GradingHandler struct {
	table *grading.Table
}

func NewGradingHandler(table *grading.Table) *GradingHandler {
	return &GradingHandler{table: table}
}

// Bands godoc
// GET /api/v1/grading/bands
func (h *GradingHandler) Bands(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"bands": h.table.Bands()})
}
