package orderrepo

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a repository bound to db, which is either the
// root connection or an open transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order with its lines, payment and initial status log.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	tx := r.db.WithContext(ctx)
	if err := tx.Create(&dto).Error; err != nil {
		return err
	}

	return r.appendStatusLog(tx, aggregate)
}

// Update saves the mutable header columns, upserts the payment and appends
// the uncommitted status log entries. Lines are never rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	tx := r.db.WithContext(ctx)

	result := tx.Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"current_status":    dto.CurrentStatus,
		"status_changed_at": dto.StatusChangedAt,
		"is_reviewed":       dto.IsReviewed,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if dto.Payment != nil {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			UpdateAll: true,
		}).Create(dto.Payment).Error
		if err != nil {
			return err
		}
	}

	return r.appendStatusLog(tx, aggregate)
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withAssociations(r.db.WithContext(ctx)).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves an order holding a row lock on its header.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	query := r.withAssociations(r.lock(r.db.WithContext(ctx), ""))
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTemporaryID retrieves a guest order by its tracking code.
func (r *GormOrderRepository) GetByTemporaryID(ctx context.Context, temporaryID string) (*order.Order, error) {
	if temporaryID == "" {
		return nil, errs.NewValueIsRequiredError("temporary id")
	}

	var dto OrderDTO
	err := r.withAssociations(r.db.WithContext(ctx)).First(&dto, "temporary_id = ?", temporaryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("guest order", temporaryID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetExpiredGuestOrders locks up to limit overdue, non-terminal guest orders.
// Rows already locked by a concurrent sweep are skipped.
func (r *GormOrderRepository) GetExpiredGuestOrders(ctx context.Context, now time.Time, limit int) ([]*order.Order, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	terminal := []string{order.Completed.String(), order.Cancelled.String(), order.Expired.String()}

	var dtos []OrderDTO
	err := r.withAssociations(r.lock(r.db.WithContext(ctx), "SKIP LOCKED")).
		Where("temporary_id IS NOT NULL").
		Where("expires_at <= ?", now.UTC()).
		Where("current_status NOT IN ?", terminal).
		Order("expires_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// ListStatusLog returns the status history of an order, oldest first.
func (r *GormOrderRepository) ListStatusLog(ctx context.Context, orderID kernel.UUID) ([]order.StatusLogEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusLogDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("changed_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]order.StatusLogEntry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := statusLogToDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (r *GormOrderRepository) appendStatusLog(tx *gorm.DB, aggregate *order.Order) error {
	pending := aggregate.UncommittedStatusLog()
	if len(pending) == 0 {
		return nil
	}

	dtos := make([]StatusLogDTO, 0, len(pending))
	for _, e := range pending {
		dtos = append(dtos, statusLogFromDomain(e))
	}
	if err := tx.Create(&dtos).Error; err != nil {
		return err
	}

	aggregate.MarkStatusLogCommitted()
	return nil
}

func (r *GormOrderRepository) withAssociations(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Payment")
}

// lock adds FOR UPDATE to the query. SQLite has no row locks and serializes
// writers on its own, so the clause is only added for PostgreSQL.
func (r *GormOrderRepository) lock(tx *gorm.DB, options string) *gorm.DB {
	if r.db.Dialector.Name() != "postgres" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE", Options: options})
}
