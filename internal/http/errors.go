package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"home-ledger/internal/domain"
	"home-ledger/internal/service"
	"home-ledger/internal/storage"
)

// statusFor maps the error taxonomy onto a status and the message shown to the caller.
func statusFor(err error) (int, string) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Error()
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, domain.ErrUnauthenticated.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.ErrNotFound.Error()
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, storage.ErrNotConfigured):
		return http.StatusServiceUnavailable, storage.ErrNotConfigured.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// badBody reports a request body that could not be decoded.
func (h *Handler) badBody(c *gin.Context, err error) {
	h.fail(c, &domain.ValidationError{Reason: "malformed request body: " + err.Error()})
}
