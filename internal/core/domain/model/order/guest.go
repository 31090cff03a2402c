package order

import (
	"errors"
	"strings"
	"time"

	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
)

// GuestTTL is how long a guest order stays trackable.
const GuestTTL = 30 * 24 * time.Hour

const temporaryIDPrefix = "GUEST-"

// NewTemporaryID returns a tracking code such as "GUEST-1A2B3C4D".
func NewTemporaryID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return temporaryIDPrefix + strings.ToUpper(hex[:8])
}

// GuestContact is what an anonymous customer leaves so the restaurant can reach them.
type GuestContact struct {
	name                string
	phone               string
	email               string
	specialInstructions string
}

func NewGuestContact(name, phone, email, specialInstructions string) (GuestContact, error) {
	c := GuestContact{
		name:                strings.TrimSpace(name),
		phone:               strings.TrimSpace(phone),
		email:               strings.TrimSpace(email),
		specialInstructions: specialInstructions,
	}

	var nameErr, phoneErr error
	if c.name == "" {
		nameErr = errs.NewValueIsRequiredError("customer name")
	}
	if c.phone == "" {
		phoneErr = errs.NewValueIsRequiredError("customer phone")
	}
	if err := errors.Join(nameErr, phoneErr); err != nil {
		return GuestContact{}, err
	}

	return c, nil
}

func (c GuestContact) Name() string                { return c.name }
func (c GuestContact) Phone() string               { return c.phone }
func (c GuestContact) Email() string               { return c.email }
func (c GuestContact) SpecialInstructions() string { return c.specialInstructions }

// Guest identifies an order placed without an account.
type Guest struct {
	temporaryID string
	contact     GuestContact
	expiresAt   time.Time
}

func NewGuest(temporaryID string, contact GuestContact, expiresAt time.Time) (Guest, error) {
	if !strings.HasPrefix(temporaryID, temporaryIDPrefix) || len(temporaryID) <= len(temporaryIDPrefix) {
		return Guest{}, errs.NewValueIsInvalidError("temporary id")
	}
	if expiresAt.IsZero() {
		return Guest{}, errs.NewValueIsRequiredError("expires at")
	}
	return Guest{temporaryID: temporaryID, contact: contact, expiresAt: expiresAt.UTC()}, nil
}

func (g Guest) TemporaryID() string {
	return g.temporaryID
}

func (g Guest) Contact() GuestContact {
	return g.contact
}

func (g Guest) ExpiresAt() time.Time {
	return g.expiresAt
}

// IsExpiredAt reports whether the tracking window closed at or before now.
func (g Guest) IsExpiredAt(now time.Time) bool {
	return !now.Before(g.expiresAt)
}
