package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/response"
	"github.com/edubase/edubase-backend/internal/service"
	"github.com/edubase/edubase-backend/internal/validator"
)

const dateLayout = "2006-01-02"

type AttendanceHandler struct {
	attendanceService *service.AttendanceService
	trendService      *service.TrendService
}

func NewAttendanceHandler(attendanceService *service.AttendanceService, trendService *service.TrendService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		trendService:      trendService,
	}
}

// Create godoc
// POST /api/v1/attendance-records
func (h *AttendanceHandler) Create(c *gin.Context) {
	var req model.CreateAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rec, err := h.attendanceService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"record": rec})
}

// Delete godoc
// DELETE /api/v1/attendance-records/:id
func (h *AttendanceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.attendanceService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "attendance record deleted successfully"})
}

// List godoc
// GET /api/v1/attendance-records?startDate=&endDate=&studentId=&page=&perPage=
func (h *AttendanceHandler) List(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	var studentID *int
	if raw := c.Query("studentId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		studentID = &id
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "10"))

	records, pagination, err := h.attendanceService.List(c.Request.Context(), from, to, studentID, page, perPage)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"records": records}, pagination)
}

// DashboardStats godoc
// GET /api/v1/attendance-records/dashboard/stats?date= | startDate=&endDate=  [&classId=&sectionId=]
func (h *AttendanceHandler) DashboardStats(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	filter := model.AttendanceFilter{From: from, To: to}
	if raw := c.Query("classId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		filter.ClassID = &id
	}
	if raw := c.Query("sectionId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		filter.SectionID = &id
	}

	stats, err := h.attendanceService.GetDashboardStats(c.Request.Context(), filter)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// ClassSectionSummary godoc
// GET /api/v1/attendance-records/reports/class-section-summary?date=
func (h *AttendanceHandler) ClassSectionSummary(c *gin.Context) {
	raw := c.DefaultQuery("date", time.Now().UTC().Format(dateLayout))
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	summary, err := h.attendanceService.GetClassSectionSummary(c.Request.Context(), date)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"date": raw, "classes": summary})
}

// Trends godoc
// GET /api/v1/attendance-records/analytics/trends?days=&granularity=
func (h *AttendanceHandler) Trends(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	granularity, err := service.ParseGranularity(c.Query("granularity"))
	if err != nil {
		failFromError(c, err)
		return
	}

	buckets, err := h.trendService.GetTrends(c.Request.Context(), days, granularity)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"granularity": granularity,
		"buckets":     buckets,
	})
}

// parseRange resolves the date window query params. A single ?date= means
// a one day window; otherwise startDate and endDate are both required.
// Writes the error response itself and returns ok=false on bad input.
func parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	if raw := c.Query("date"); raw != "" {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return time.Time{}, time.Time{}, false
		}
		return d, d, true
	}

	rawStart, rawEnd := c.Query("startDate"), c.Query("endDate")
	if rawStart == "" && rawEnd == "" {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		return today, today, true
	}

	from, err := time.Parse(dateLayout, rawStart)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(dateLayout, rawEnd)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
