package queries

import (
	"context"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStatusLogsQueryHandler reads the status log table directly.
type GetStatusLogsQueryHandler struct {
	db *gorm.DB
}

// NewGetStatusLogsQueryHandler requires a GORM database connection.
func NewGetStatusLogsQueryHandler(db *gorm.DB) GetStatusLogsQueryHandler {
	return GetStatusLogsQueryHandler{db: db}
}

func (h GetStatusLogsQueryHandler) Handle(
	ctx context.Context,
	query GetStatusLogsQuery,
) ([]GetStatusLogsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.authorize(ctx, query); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			changed_at,
			actor_id,
			note
		FROM order_status_logs
		WHERE order_id = ?
		ORDER BY changed_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("list status log", err)
	}
	defer rows.Close()

	entries := make([]GetStatusLogsQueryResponse, 0)
	for rows.Next() {
		var entry GetStatusLogsQueryResponse
		var actorID *uuid.UUID

		if err = rows.Scan(&entry.Status, &entry.ChangedAt, &actorID, &entry.Note); err != nil {
			return nil, errs.NewPersistenceError("list status log", err)
		}

		if actorID != nil {
			id, idErr := kernel.UUIDFromBytes(actorID[:])
			if idErr != nil {
				return nil, idErr
			}
			entry.ActorID = &id
		}
		entry.ChangedAt = entry.ChangedAt.UTC()
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("list status log", err)
	}

	return entries, nil
}

func (h GetStatusLogsQueryHandler) authorize(ctx context.Context, query GetStatusLogsQuery) error {
	var owner struct {
		UserID *uuid.UUID
	}
	result := h.db.WithContext(ctx).Raw(`SELECT user_id FROM orders WHERE id = ?`, query.OrderID().Bytes()).Scan(&owner)
	if result.Error != nil {
		return errs.NewPersistenceError("get order owner", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	var ownerID *kernel.UUID
	if owner.UserID != nil {
		id, err := kernel.UUIDFromBytes(owner.UserID[:])
		if err != nil {
			return err
		}
		ownerID = &id
	}

	viewer := query.Viewer()
	var restaurantIDs []kernel.UUID
	if viewer.IsRestaurant() {
		var err error
		if restaurantIDs, err = h.lineRestaurants(ctx, query.OrderID()); err != nil {
			return err
		}
	}

	if viewer.CanAccessOrder(ownerID, restaurantIDs) {
		return nil
	}
	return fmt.Errorf("%w: user %s may not read order %s", errs.ErrPermissionIsDenied, viewer.ID, query.OrderID())
}

func (h GetStatusLogsQueryHandler) lineRestaurants(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := h.db.WithContext(ctx).Raw(
		`SELECT DISTINCT restaurant_id FROM order_details WHERE order_id = ?`, orderID.Bytes(),
	).Scan(&raw).Error
	if err != nil {
		return nil, errs.NewPersistenceError("get order restaurants", err)
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, idErr := kernel.UUIDFromBytes(r[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}
	return ids, nil
}
