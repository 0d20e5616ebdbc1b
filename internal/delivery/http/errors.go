package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vegist/backend/internal/domain"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

// errorStatus maps a domain error to its HTTP status and public error code
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "product_not_found"
	case errors.Is(err, domain.ErrCartItemNotFound):
		return http.StatusNotFound, "cart_item_not_found"
	case errors.Is(err, domain.ErrInvalidCustomWeight):
		return http.StatusUnprocessableEntity, "invalid_custom_weight"
	case errors.Is(err, domain.ErrNoVariants):
		return http.StatusUnprocessableEntity, "no_variants"
	case errors.Is(err, domain.ErrVariantUnavailable):
		return http.StatusConflict, "variant_unavailable"
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidPrice):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeError aborts the request with the error envelope. Internal errors are logged
// and their message is not exposed.
func (h *Handler) writeError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), "request.failed", err)
		message = "internal server error"
	}
	abortWithError(c, status, code, message)
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorEnvelope{Error: apiError{Code: code, Message: message}})
}
