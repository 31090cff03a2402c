// Package auth resolves a bearer credential to an active user. It is shared
// by the REST surface and the real-time channel handshake.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// TokenVerifier turns a bearer token into a user id.
type TokenVerifier interface {
	Verify(token string) (kernel.UUID, error)
}

type Authenticator struct {
	verifier TokenVerifier
	users    ports.UserDirectory
}

func NewAuthenticator(verifier TokenVerifier, users ports.UserDirectory) (*Authenticator, error) {
	if verifier == nil {
		return nil, errs.NewValueIsRequiredError("token verifier")
	}
	if users == nil {
		return nil, errs.NewValueIsRequiredError("user directory")
	}
	return &Authenticator{verifier: verifier, users: users}, nil
}

// Authenticate returns the active user behind token.
//
// Errors:
//   - errs.ErrCredentialIsInvalid: missing, malformed or expired token, or an
//     unknown or deactivated account
//   - any other error: the user directory could not be read
func (a *Authenticator) Authenticate(ctx context.Context, token string) (user.User, error) {
	if token == "" {
		return user.User{}, fmt.Errorf("%w: missing token", errs.ErrCredentialIsInvalid)
	}

	userID, err := a.verifier.Verify(token)
	if err != nil {
		if errors.Is(err, errs.ErrCredentialIsInvalid) {
			return user.User{}, err
		}
		return user.User{}, fmt.Errorf("%w: %w", errs.ErrCredentialIsInvalid, err)
	}

	u, err := a.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return user.User{}, fmt.Errorf("%w: unknown user %s", errs.ErrCredentialIsInvalid, userID)
		}
		return user.User{}, err
	}
	if !u.IsActive {
		return user.User{}, fmt.Errorf("%w: user %s is inactive", errs.ErrCredentialIsInvalid, userID)
	}

	return u, nil
}

// BearerToken extracts the token from the Authorization header or, for
// clients that cannot set headers on a websocket handshake, from the token
// query parameter.
func BearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get("token")
}
