package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/profleet/fleettrack/internal/pkg/apperror"
)

// Response is the envelope every REST endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    int         `json:"code,omitempty"`
}

// SuccessResponse sends a success envelope carrying data
func SuccessResponse(c echo.Context, statusCode int, message string, data interface{}) error {
	return c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseHandler sends a failure envelope. An empty message falls back to the status text.
func ErrorResponseHandler(c echo.Context, statusCode int, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = http.StatusText(statusCode)
	}
	return c.JSON(statusCode, Response{
		Success: false,
		Error:   errorMessage,
		Code:    statusCode,
	})
}

// AppErrorResponse maps an application error to its status and caller-safe message
func AppErrorResponse(c echo.Context, err error) error {
	return ErrorResponseHandler(c, apperror.HTTPStatus(err), apperror.PublicMessage(err))
}

func BadRequestResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusBadRequest, errorMessage)
}

func UnauthorizedResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusUnauthorized, errorMessage)
}

func ForbiddenResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusForbidden, errorMessage)
}
