package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/edubase/edubase-backend/internal/metrics"
	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/repository"
	"github.com/edubase/edubase-backend/internal/response"
	"github.com/edubase/edubase-backend/internal/service"
	"github.com/edubase/edubase-backend/internal/tenant"
)

// failFromError maps service and repository errors onto the response
// envelope. Every handler funnels its non-binding errors through here so
// the same condition always produces the same status and code.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tenant.ErrMissingScope):
		response.Fail(c, http.StatusBadRequest, response.ErrMissingScope)

	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)

	case errors.Is(err, repository.ErrDuplicateMark):
		metrics.DuplicateConflicts.WithLabelValues("mark").Inc()
		response.Fail(c, http.StatusConflict, response.ErrDuplicateMark)

	case errors.Is(err, repository.ErrDuplicateAttendance):
		metrics.DuplicateConflicts.WithLabelValues("attendance").Inc()
		response.Fail(c, http.StatusConflict, response.ErrConflict)

	case errors.Is(err, repository.ErrDuplicateSubjectCode),
		errors.Is(err, repository.ErrDuplicateAdmissionNo),
		errors.Is(err, repository.ErrDuplicateBranchCode),
		errors.Is(err, repository.ErrDuplicateEmail):
		response.Fail(c, http.StatusConflict, response.ErrConflict)

	case errors.Is(err, repository.ErrUnknownSortKey):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidSort)

	case errors.Is(err, service.ErrNegativeMarks),
		errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrUnknownGranularity),
		errors.Is(err, service.ErrInvalidWindow),
		errors.Is(err, model.ErrUnknownStatus),
		errors.Is(err, model.ErrUnknownSource),
		errors.Is(err, model.ErrReasonRequired),
		errors.Is(err, model.ErrMinutesLateMissing),
		errors.Is(err, model.ErrMinutesLateInvalid):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload,
			map[string]string{"detail": err.Error()})

	case errors.Is(err, context.DeadlineExceeded):
		response.Fail(c, http.StatusGatewayTimeout, response.ErrTimeout)

	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
