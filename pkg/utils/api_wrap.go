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

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusCreated, data, message)
}

func respond(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// serviceErrors maps sentinel errors to the status and message shown to the caller.
var serviceErrors = []struct {
	err     error
	code    int
	message string
}{
	{ErrAccountNotFound, http.StatusNotFound, "Account not found"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{ErrEmailAlreadyExists, http.StatusConflict, "Email already registered"},
	{ErrPlanNotFound, http.StatusNotFound, "Membership plan not found"},
	{ErrInvalidPlanInput, http.StatusBadRequest, "Invalid membership plan"},
	{ErrPlanNotPurchasable, http.StatusConflict, "This plan cannot be purchased right now"},
	{ErrPaymentNotVerified, http.StatusPaymentRequired, "Payment verification failed"},
	{ErrMissingMetadata, http.StatusBadRequest, "Checkout session is missing required details"},
	{ErrInvalidPlanType, http.StatusBadRequest, "Invalid plan type"},
	{ErrSessionUserMismatch, http.StatusForbidden, "Checkout session does not belong to this account"},
	{ErrInvalidDayCount, http.StatusBadRequest, "Number of days must be a whole number of at least 1"},
	{ErrInvalidDateRange, http.StatusBadRequest, "End date must be after start date"},
	{ErrEndDateInFuture, http.StatusBadRequest, "End date cannot be in the future"},
	{ErrPaymentProvider, http.StatusBadGateway, "Payment provider unavailable, please try again"},
}

func HandleServiceError(c *gin.Context, err error) {
	for _, se := range serviceErrors {
		if errors.Is(err, se.err) {
			RespondError(c, se.code, se.message)
			return
		}
	}

	if errors.Is(err, ErrDatabaseError) {
		zap.L().Error("database error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
	} else {
		zap.L().Error("unhandled service error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
	}
	RespondError(c, http.StatusInternalServerError, "Internal server error")
}
