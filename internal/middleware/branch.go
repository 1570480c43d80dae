package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edubase/edubase-backend/internal/response"
	"github.com/edubase/edubase-backend/internal/tenant"
)

// BranchHeader names the header carrying the caller's branch scope.
const BranchHeader = "X-Branch-ID"

// RequireBranch reads the branch scope from the X-Branch-ID header and
// binds it to the request context. Every data route sits behind this;
// a request without a usable scope never reaches a handler.
func RequireBranch() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(BranchHeader)
		if raw == "" {
			response.AbortFail(c, http.StatusBadRequest, response.ErrMissingScope)
			return
		}

		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			response.AbortFail(c, http.StatusBadRequest, response.ErrInvalidScope)
			return
		}

		c.Request = c.Request.WithContext(tenant.WithBranch(c.Request.Context(), tenant.BranchID(id)))
		c.Next()
	}
}
