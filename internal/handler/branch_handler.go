package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edubase/edubase-backend/internal/response"
	"github.com/edubase/edubase-backend/internal/service"
	"github.com/edubase/edubase-backend/internal/validator"
)

// BranchHandler serves the branch listing used to pick a scope. It sits
// behind auth but outside the X-Branch-ID requirement.
type BranchHandler struct {
	branchService *service.BranchService
}

func NewBranchHandler(branchService *service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// List godoc
// GET /api/v1/branches
func (h *BranchHandler) List(c *gin.Context) {
	branches, err := h.branchService.List(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"branches": branches})
}

// Get godoc
// GET /api/v1/branches/:id
func (h *BranchHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	branch, err := h.branchService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"branch": branch})
}

// Create godoc
// POST /api/v1/branches
func (h *BranchHandler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required,min=2,max=150"`
		Code string `json:"code" binding:"required,min=2,max=20"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	branch, err := h.branchService.Create(c.Request.Context(), req.Name, req.Code)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"branch": branch})
}
