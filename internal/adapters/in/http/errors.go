package http

import (
	"errors"
	"fmt"
	"net/http"

	"otcdesk/internal/core/application/usecases/commands"
	"otcdesk/internal/core/domain/services"
	"otcdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Stable codes for failures that are not Authority rejections.
const (
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeAdminRequired  = "ADMIN_REQUIRED"
	CodeKYCNotApproved = "KYC_NOT_APPROVED"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeInternal       = "INTERNAL"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrAdminRequired = errors.New("admin access required")
)

// RequestError is a malformed request detected by the transport itself.
type RequestError struct {
	Message string
}

func NewRequestError(format string, args ...any) *RequestError {
	return &RequestError{Message: fmt.Sprintf(format, args...)}
}

func (e *RequestError) Error() string {
	return e.Message
}

// Envelope wraps every JSON response body.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// MapErrorToHTTP converts an error returned by a use case into the status,
// code and message written to the client. Unrecognized errors are 500 with a
// generic message.
func MapErrorToHTTP(err error) (int, string, string) {
	if rejection, isRejection := services.AsRejection(err); isRejection {
		if rejection.Reason.IsForbidden() {
			return http.StatusForbidden, string(rejection.Reason), rejection.Message
		}
		return http.StatusBadRequest, string(rejection.Reason), rejection.Message
	}

	var (
		requestErr  *RequestError
		notFoundErr *errs.ObjectNotFoundError
		httpErr     *echo.HTTPError
	)
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized, "Unauthorized"
	case errors.Is(err, ErrAdminRequired):
		return http.StatusForbidden, CodeAdminRequired, "Forbidden: Admin access required"
	case errors.Is(err, commands.ErrKYCNotApproved):
		return http.StatusForbidden, CodeKYCNotApproved, "KYC not approved"
	case errors.Is(err, commands.ErrOrderUpdateConflict):
		return http.StatusConflict, CodeConflict, err.Error()
	case errors.Is(err, commands.ErrNoValidUserUpdates):
		return http.StatusBadRequest, string(services.ReasonNoValidUpdates), "No valid updates"
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, CodeNotFound, notFoundMessage(notFoundErr.ParamName)
	case errors.As(err, &requestErr):
		return http.StatusBadRequest, CodeInvalidRequest, requestErr.Message
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, CodeInvalidRequest, err.Error()
	case errors.As(err, &httpErr):
		return httpErr.Code, httpCode(httpErr.Code), fmt.Sprint(httpErr.Message)
	default:
		return http.StatusInternalServerError, CodeInternal, "Internal server error"
	}
}

func notFoundMessage(param string) string {
	switch param {
	case "order":
		return "Order not found"
	case "user":
		return "User not found"
	default:
		return "Not found"
	}
}

func httpCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusMethodNotAllowed, http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return CodeInvalidRequest
	default:
		if status >= http.StatusInternalServerError {
			return CodeInternal
		}
		return ""
	}
}

// errorHandler is installed as echo's HTTPErrorHandler.
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code, message := MapErrorToHTTP(err)
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, Envelope{Success: false, Error: message, Code: code})
		}
		if err != nil {
			logger.Error("write error response", zap.Error(err))
		}
	}
}
