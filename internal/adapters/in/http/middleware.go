package http

import (
	"context"
	"errors"
	"net/http"

	"fooddelivery/internal/adapters/in/auth"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const userContextKey = "user"

// Authenticator resolves a bearer token to an active user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (user.User, error)
}

// RequireUser rejects requests without a valid bearer credential and stores
// the resolved user in the echo context.
func RequireUser(authn Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			u, err := authn.Authenticate(ctx.Request().Context(), auth.BearerToken(ctx.Request()))
			if err != nil {
				code := http.StatusServiceUnavailable
				if errors.Is(err, errs.ErrCredentialIsInvalid) {
					code = http.StatusUnauthorized
				}
				return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
			}

			ctx.Set(userContextKey, u)
			return next(ctx)
		}
	}
}

func currentUser(ctx echo.Context) (user.User, bool) {
	u, ok := ctx.Get(userContextKey).(user.User)
	return u, ok
}
