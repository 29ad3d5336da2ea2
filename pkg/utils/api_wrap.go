package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service sentinel errors onto HTTP statuses.
// Client-visible messages are static strings, never derived from the cause.
func HandleServiceError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		RespondError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrVehicleNotFound):
		RespondError(c, http.StatusNotFound, "Vehicle not found")
	case errors.Is(err, ErrFixedAlertNotFound):
		RespondError(c, http.StatusNotFound, "Alert not found")
	case errors.Is(err, ErrMessageNotFound):
		RespondError(c, http.StatusNotFound, "Message not found")
	case errors.Is(err, ErrTokenNotFound):
		RespondError(c, http.StatusNotFound, "Invalid token")
	case errors.Is(err, ErrWhatsappNotFound):
		RespondError(c, http.StatusNotFound, "WhatsApp is not connected")
	case errors.Is(err, ErrTokenExpired):
		RespondError(c, http.StatusBadRequest, "Token expired")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid request data")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrPlateAlreadyExists):
		RespondError(c, http.StatusConflict, "A vehicle with this plate is already registered")
	case errors.Is(err, ErrAlreadyLinked):
		RespondError(c, http.StatusConflict, "User is already linked to this vehicle")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Incorrect email or password")
	case errors.Is(err, ErrEmailNotVerified):
		RespondError(c, http.StatusForbidden, "Email not verified. Check your inbox to continue.")
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
	case errors.Is(err, ErrInsufficientCredits):
		RespondError(c, http.StatusPaymentRequired, "Insufficient credit balance")
	case errors.Is(err, ErrPaymentFailed):
		RespondError(c, http.StatusBadGateway, "Payment could not be processed")
	default:
		log.Error("unhandled service error", zap.Error(err), zap.String("trace_id", traceID(c)))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
