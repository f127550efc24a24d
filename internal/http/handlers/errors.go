package handlers

import (
	"net/http"

	"railbooking/internal/domain"
	"railbooking/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      message,
			"code":       code,
			"request_id": reqID,
		})
		return
	}
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// RespondDomainError maps domain errors to HTTP responses. Every
// workflow failure lands here; nothing is fatal to the process.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsInventoryConflict(err):
		respondError(c, http.StatusConflict, "inventory_conflict", err.Error())
	case domain.IsVerification(err):
		respondError(c, http.StatusForbidden, "verification_failure", err.Error())
	case domain.IsPayment(err):
		respondError(c, http.StatusPaymentRequired, "payment_failure", err.Error())
	case domain.IsExpired(err):
		respondError(c, http.StatusGone, "expired_reservation", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
