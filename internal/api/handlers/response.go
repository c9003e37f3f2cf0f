package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/thanhnp/tron-block-api/internal/apperr"
)

const internalErrorMsg = "internal server error"

// SuccessResponse wraps every successful payload
type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorResponse wraps every failure
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

type ErrorBody struct {
	Message string      `json:"message"`
	Type    apperr.Kind `json:"type"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: data})
}

// RespondError writes the error envelope. Only application errors expose
// their message; anything else is reported as a generic server error.
func RespondError(c *gin.Context, logger *slog.Logger, err error) {
	body := ErrorBody{Message: internalErrorMsg, Type: apperr.ServerError}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		body = ErrorBody{Message: appErr.Message, Type: appErr.Kind}
	}

	logger.Error("Request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"type", body.Type,
		"error", err,
	)
	c.AbortWithStatusJSON(apperr.StatusCode(body.Type), ErrorResponse{Success: false, Error: body})
}
