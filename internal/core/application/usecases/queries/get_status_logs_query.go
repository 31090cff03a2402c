package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetStatusLogsQueryIsNotConstructed = errors.New(
	"GetStatusLogsQuery must be created via NewGetStatusLogsQuery constructor",
)

// GetStatusLogsQuery reads the status history of an order, oldest first.
//
// Example:
//
//	query, _ := NewGetStatusLogsQuery(orderID, viewer)
//	entries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, e := range entries {
//	    fmt.Printf("%s %s\n", e.ChangedAt.Format(time.RFC3339), e.Status)
//	}
type GetStatusLogsQuery struct {
	orderID kernel.UUID
	viewer  user.User

	guard guard.ConstructorGuard
}

func NewGetStatusLogsQuery(orderID kernel.UUID, viewer user.User) (GetStatusLogsQuery, error) {
	if err := errors.Join(orderID.Validate(), viewer.ID.Validate()); err != nil {
		return GetStatusLogsQuery{}, err
	}
	return GetStatusLogsQuery{orderID: orderID, viewer: viewer, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStatusLogsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusLogsQueryIsNotConstructed)
}

func (q GetStatusLogsQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetStatusLogsQuery) Viewer() user.User {
	return q.viewer
}

// GetStatusLogsQueryResponse is one status log entry.
type GetStatusLogsQueryResponse struct {
	Status    string
	ChangedAt time.Time
	ActorID   *kernel.UUID
	Note      string
}
