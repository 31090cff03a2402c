// Package jwt verifies the HS256 bearer tokens issued by the account service.
package jwt

import (
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the user id in the standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

// Verifier checks token signatures and lifetimes.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("jwt secret")
	}
	return &Verifier{secret: []byte(secret), now: time.Now}, nil
}

// WithClock replaces the time source used for expiry checks.
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	cp := *v
	cp.now = now
	return &cp
}

// Verify returns the user id of a valid token. Any failure matches
// errs.ErrCredentialIsInvalid.
func (v *Verifier) Verify(token string) (kernel.UUID, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: %w", errs.ErrCredentialIsInvalid, err)
	}
	if !parsed.Valid {
		return kernel.UUID{}, errs.ErrCredentialIsInvalid
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: subject: %w", errs.ErrCredentialIsInvalid, err)
	}
	return userID, nil
}

// Issue signs a token for userID valid for ttl. Tokens are normally issued by
// the account service; this exists for local tooling and tests.
func (v *Verifier) Issue(userID kernel.UUID, ttl time.Duration) (string, error) {
	now := v.now()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
