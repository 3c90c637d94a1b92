package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"customer-panel/internal/domain"
)

// Failure codes let clients tell an access denial apart from empty data.
const (
	codeSecurityCheckFailed = "security_check_failed"
	codeAccessDenied        = "access_denied"
	codeInvalidInput        = "invalid_input"
	codeNotFound            = "not_found"
	codeUpstream            = "upstream_unavailable"
)

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, apiResponse{Success: true, Data: data})
}

func respondFail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, apiResponse{Success: false, Code: code, Message: message})
}

// respondError maps a service error onto the response envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSecurityCheckFailed):
		respondFail(c, http.StatusForbidden, codeSecurityCheckFailed, "Security check failed")
	case errors.Is(err, domain.ErrAccessDenied):
		respondFail(c, http.StatusForbidden, codeAccessDenied, "Access denied")
	case errors.Is(err, domain.ErrInvalidInput):
		respondFail(c, http.StatusBadRequest, codeInvalidInput, "Invalid request")
	case errors.Is(err, domain.ErrNotFound):
		respondFail(c, http.StatusNotFound, codeNotFound, "Customer not found")
	default:
		respondFail(c, http.StatusBadGateway, codeUpstream, "A data source is unavailable, please try again")
	}
}
