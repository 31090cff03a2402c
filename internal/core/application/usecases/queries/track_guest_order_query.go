package queries

import (
	"errors"
	"strings"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrTrackGuestOrderQueryIsNotConstructed = errors.New(
	"TrackGuestOrderQuery must be created via NewTrackGuestOrderQuery constructor",
)

// TrackGuestOrderQuery looks a guest order up by the code handed out at checkout.
type TrackGuestOrderQuery struct {
	temporaryID string

	guard guard.ConstructorGuard
}

// NewTrackGuestOrderQuery normalizes the code to upper case.
func NewTrackGuestOrderQuery(temporaryID string) (TrackGuestOrderQuery, error) {
	temporaryID = strings.ToUpper(strings.TrimSpace(temporaryID))
	if temporaryID == "" {
		return TrackGuestOrderQuery{}, errs.NewValueIsRequiredError("temporary id")
	}
	return TrackGuestOrderQuery{temporaryID: temporaryID, guard: guard.NewConstructorGuard()}, nil
}

func (q TrackGuestOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackGuestOrderQueryIsNotConstructed)
}

func (q TrackGuestOrderQuery) TemporaryID() string {
	return q.temporaryID
}
