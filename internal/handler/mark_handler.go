package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/response"
	"github.com/edubase/edubase-backend/internal/service"
	"github.com/edubase/edubase-backend/internal/validator"
)

type MarkHandler struct {
	markService *service.MarkService
}

func NewMarkHandler(markService *service.MarkService) *MarkHandler {
	return &MarkHandler{markService: markService}
}

// List godoc
// GET /api/v1/marks?examId=&subjectId=&studentId=&isAbsent=&sort=&page=&perPage=
func (h *MarkHandler) List(c *gin.Context) {
	var filter model.MarkListFilter

	if raw := c.Query("examId"); raw != "" {
		examID, err := uuid.Parse(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		filter.ExamID = &examID
	}
	if raw := c.Query("subjectId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		filter.SubjectID = &id
	}
	if raw := c.Query("studentId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		filter.StudentID = &id
	}
	if raw := c.Query("isAbsent"); raw != "" {
		absent, err := strconv.ParseBool(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		filter.IsAbsent = &absent
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "10"))

	marks, pagination, err := h.markService.List(c.Request.Context(), filter, c.Query("sort"), page, perPage)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"marks": marks}, pagination)
}

// Create godoc
// POST /api/v1/marks
func (h *MarkHandler) Create(c *gin.Context) {
	var req model.CreateMarkRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	mark, err := h.markService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"mark": mark})
}

// Update godoc
// PATCH /api/v1/marks/:id
func (h *MarkHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateMarkRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	mark, err := h.markService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"mark": mark})
}

// Delete godoc
// DELETE /api/v1/marks/:id
func (h *MarkHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.markService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "mark deleted successfully"})
}

// BulkUpsert godoc
// POST /api/v1/marks/bulk/:exam_id/:subject_id
func (h *MarkHandler) BulkUpsert(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	subjectID, err := strconv.Atoi(c.Param("subject_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req struct {
		Marks []model.BulkMarkRow `json:"marks" binding:"required,min=1,dive"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	marks, err := h.markService.BulkUpsert(c.Request.Context(), examID, subjectID, req.Marks)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"marks": marks, "count": len(marks)})
}

// ExamMarks godoc
// GET /api/v1/marks/exam/:exam_id
func (h *MarkHandler) ExamMarks(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	marks, err := h.markService.GetExamMarks(c.Request.Context(), examID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"marks": marks})
}

// StudentMarks godoc
// GET /api/v1/marks/student/:student_id
func (h *MarkHandler) StudentMarks(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("student_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	marks, err := h.markService.GetStudentMarks(c.Request.Context(), studentID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"marks": marks})
}
