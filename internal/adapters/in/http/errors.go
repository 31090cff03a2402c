package http

import (
	"errors"
	"net/http"

	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusCode maps a use case error to the HTTP status reported to the client.
func statusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrPersistenceFailed):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrCredentialIsInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrPermissionIsDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectExpired):
		return http.StatusGone
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrCartIsInvalid),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusCode(err)

	resp := ErrorResponse{Code: code, Message: err.Error()}
	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err)
		if code == http.StatusInternalServerError {
			resp.Message = http.StatusText(code)
		}
	}

	var cartErr *errs.CartIsInvalidError
	if errors.As(err, &cartErr) {
		group := cartErr.GroupIndex
		resp.GroupIndex = &group
		if cartErr.ItemIndex >= 0 {
			item := cartErr.ItemIndex
			resp.ItemIndex = &item
		}
	}

	return ctx.JSON(code, resp)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: message})
}
