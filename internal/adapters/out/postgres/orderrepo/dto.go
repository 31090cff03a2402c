// Package orderrepo maps order aggregates onto the orders, order_details,
// payments and order_status_logs tables.
package orderrepo

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the order header. Customer orders set UserID; guest orders set
// TemporaryID, ExpiresAt and the guest contact columns. RestaurantID is the
// primary restaurant and is kept for display only; Restaurants always holds
// every leg with its fee.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID       *uuid.UUID `gorm:"type:uuid;index"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;index"`

	TemporaryID *string    `gorm:"size:32;uniqueIndex"`
	ExpiresAt   *time.Time `gorm:"index"`
	Guest       GuestDTO   `gorm:"embedded;embeddedPrefix:guest_"`

	Restaurants []RestaurantLegDTO `gorm:"serializer:json;type:text"`
	Delivery    DeliveryDTO        `gorm:"embedded;embeddedPrefix:delivery_"`

	DeliveryFee     decimal.Decimal `gorm:"type:numeric(10,2)"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(10,2)"`
	CurrentStatus   string          `gorm:"size:32;index"`
	StatusChangedAt time.Time
	IsReviewed      bool
	CreatedAt       time.Time

	Details []OrderDetailDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment *PaymentDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// GuestDTO holds the contact data of a guest order.
type GuestDTO struct {
	Name                string `gorm:"size:255"`
	Phone               string `gorm:"size:32"`
	Email               string `gorm:"size:255"`
	SpecialInstructions string
}

// DeliveryDTO holds the destination. Coordinates are nullable.
type DeliveryDTO struct {
	Address   string
	Latitude  *float64
	Longitude *float64
	Notes     string
}

// RestaurantLegDTO is one element of the restaurants JSON column.
type RestaurantLegDTO struct {
	RestaurantID   uuid.UUID       `json:"restaurant_id"`
	RestaurantName string          `json:"restaurant_name"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
}

// OrderDetailDTO is one immutable order line.
type OrderDetailDTO struct {
	ID           uint            `gorm:"primaryKey;autoIncrement"`
	OrderID      uuid.UUID       `gorm:"type:uuid;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;index"`
	Quantity     int             `gorm:"check:quantity > 0"`
	PriceAtOrder decimal.Decimal `gorm:"type:numeric(10,2)"`
	Subtotal     decimal.Decimal `gorm:"type:numeric(10,2)"`
}

func (OrderDetailDTO) TableName() string {
	return "order_details"
}

// PaymentDTO is the single payment of an order.
type PaymentDTO struct {
	OrderID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Method         string          `gorm:"size:32"`
	Status         string          `gorm:"size:32"`
	AmountPaid     decimal.Decimal `gorm:"type:numeric(10,2)"`
	ProofReference string
	CreatedAt      time.Time
	PaidAt         *time.Time
}

func (PaymentDTO) TableName() string {
	return "payments"
}

// StatusLogDTO is one append-only status log row.
type StatusLogDTO struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID  `gorm:"type:uuid;index:idx_status_log_order"`
	Status    string     `gorm:"size:32"`
	ChangedAt time.Time  `gorm:"index:idx_status_log_order"`
	ActorID   *uuid.UUID `gorm:"type:uuid"`
	Note      string
}

func (StatusLogDTO) TableName() string {
	return "order_status_logs"
}

// Models lists every table of the package for AutoMigrate.
func Models() []any {
	return []any{&OrderDTO{}, &OrderDetailDTO{}, &PaymentDTO{}, &StatusLogDTO{}}
}

// fromDomain maps the header, lines and payment. Status log entries are
// written separately from the aggregate's uncommitted log.
func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:              o.ID().Bytes(),
		RestaurantID:    o.PrimaryRestaurantID().Bytes(),
		Delivery:        deliveryFromDomain(o.Delivery()),
		DeliveryFee:     o.DeliveryFee().Decimal(),
		TotalAmount:     o.TotalAmount().Decimal(),
		CurrentStatus:   o.Status().String(),
		StatusChangedAt: o.StatusChangedAt(),
		IsReviewed:      o.IsReviewed(),
		CreatedAt:       o.CreatedAt(),
	}

	if id := o.CustomerID(); id != nil {
		raw := id.Bytes()
		dto.UserID = &raw
	}

	if g := o.Guest(); g != nil {
		tempID := g.TemporaryID()
		expiresAt := g.ExpiresAt()
		dto.TemporaryID = &tempID
		dto.ExpiresAt = &expiresAt
		dto.Guest = GuestDTO{
			Name:                g.Contact().Name(),
			Phone:               g.Contact().Phone(),
			Email:               g.Contact().Email(),
			SpecialInstructions: g.Contact().SpecialInstructions(),
		}
	}

	for _, leg := range o.Legs() {
		dto.Restaurants = append(dto.Restaurants, RestaurantLegDTO{
			RestaurantID:   leg.RestaurantID().Bytes(),
			RestaurantName: leg.Name(),
			DeliveryFee:    leg.DeliveryFee().Decimal(),
		})
	}

	for _, line := range o.Lines() {
		dto.Details = append(dto.Details, OrderDetailDTO{
			OrderID:      dto.ID,
			ProductID:    line.ProductID().Bytes(),
			RestaurantID: line.RestaurantID().Bytes(),
			Quantity:     line.Quantity(),
			PriceAtOrder: line.PriceAtOrder().Decimal(),
			Subtotal:     line.Subtotal().Decimal(),
		})
	}

	if p := o.Payment(); p != nil {
		payment := paymentFromDomain(dto.ID, p)
		dto.Payment = &payment
	}

	return dto
}

func deliveryFromDomain(d order.Delivery) DeliveryDTO {
	dto := DeliveryDTO{Address: d.Address(), Notes: d.Notes()}
	if p := d.Point(); p != nil {
		lat, lon := p.Latitude(), p.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}
	return dto
}

func paymentFromDomain(orderID uuid.UUID, p *order.Payment) PaymentDTO {
	return PaymentDTO{
		OrderID:        orderID,
		Method:         string(p.Method()),
		Status:         string(p.Status()),
		AmountPaid:     p.AmountPaid().Decimal(),
		ProofReference: p.ProofReference(),
		CreatedAt:      p.CreatedAt(),
		PaidAt:         p.PaidAt(),
	}
}

func statusLogFromDomain(e order.StatusLogEntry) StatusLogDTO {
	dto := StatusLogDTO{
		OrderID:   e.OrderID().Bytes(),
		Status:    e.Status().String(),
		ChangedAt: e.Timestamp(),
		Note:      e.Note(),
	}
	if id := e.ActorID(); id != nil {
		raw := id.Bytes()
		dto.ActorID = &raw
	}
	return dto
}

// toDomain rebuilds the aggregate through order.Restore, which re-checks the
// stored amounts against the stored lines.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	params := order.RestoreParams{
		ID:              id,
		StatusChangedAt: dto.StatusChangedAt,
		CreatedAt:       dto.CreatedAt,
		IsReviewed:      dto.IsReviewed,
		Status:          order.ParseStatus(dto.CurrentStatus),
	}

	if dto.UserID != nil {
		customerID, idErr := kernel.UUIDFromBytes(dto.UserID[:])
		if idErr != nil {
			return nil, idErr
		}
		params.CustomerID = &customerID
	}

	if dto.TemporaryID != nil {
		guest, guestErr := guestToDomain(dto)
		if guestErr != nil {
			return nil, guestErr
		}
		params.Guest = &guest
	}

	if params.Delivery, err = deliveryToDomain(dto.Delivery); err != nil {
		return nil, err
	}
	if params.Legs, err = legsToDomain(dto.Restaurants); err != nil {
		return nil, err
	}
	if params.Lines, err = linesToDomain(dto.Details); err != nil {
		return nil, err
	}
	if params.DeliveryFee, err = kernel.NewMoney(dto.DeliveryFee); err != nil {
		return nil, err
	}
	if params.TotalAmount, err = kernel.NewMoney(dto.TotalAmount); err != nil {
		return nil, err
	}

	if dto.Payment != nil {
		if params.Payment, err = paymentToDomain(*dto.Payment); err != nil {
			return nil, err
		}
	}

	return order.Restore(params)
}

func guestToDomain(dto OrderDTO) (order.Guest, error) {
	if dto.ExpiresAt == nil {
		return order.Guest{}, errors.New("guest order without expires_at")
	}
	contact, err := order.NewGuestContact(dto.Guest.Name, dto.Guest.Phone, dto.Guest.Email, dto.Guest.SpecialInstructions)
	if err != nil {
		return order.Guest{}, err
	}
	return order.NewGuest(*dto.TemporaryID, contact, *dto.ExpiresAt)
}

func deliveryToDomain(dto DeliveryDTO) (order.Delivery, error) {
	var point *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		p, err := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if err != nil {
			return order.Delivery{}, err
		}
		point = &p
	}
	return order.NewDelivery(dto.Address, point, dto.Notes)
}

func legsToDomain(dtos []RestaurantLegDTO) ([]order.RestaurantLeg, error) {
	legs := make([]order.RestaurantLeg, 0, len(dtos))
	for _, dto := range dtos {
		restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
		if err != nil {
			return nil, err
		}
		fee, err := kernel.NewMoney(dto.DeliveryFee)
		if err != nil {
			return nil, err
		}
		leg, err := order.NewRestaurantLeg(restaurantID, dto.RestaurantName, fee)
		if err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

func linesToDomain(dtos []OrderDetailDTO) ([]order.Line, error) {
	lines := make([]order.Line, 0, len(dtos))
	for _, dto := range dtos {
		productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
		if err != nil {
			return nil, err
		}
		restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
		if err != nil {
			return nil, err
		}
		price, err := kernel.NewMoney(dto.PriceAtOrder)
		if err != nil {
			return nil, err
		}
		line, err := order.NewLine(productID, restaurantID, dto.Quantity, price)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func paymentToDomain(dto PaymentDTO) (*order.Payment, error) {
	amount, err := kernel.NewMoney(dto.AmountPaid)
	if err != nil {
		return nil, err
	}
	var paidAt *time.Time
	if dto.PaidAt != nil {
		t := dto.PaidAt.UTC()
		paidAt = &t
	}
	return order.RestorePayment(
		order.PaymentMethod(dto.Method),
		order.PaymentStatus(dto.Status),
		amount,
		dto.ProofReference,
		dto.CreatedAt.UTC(),
		paidAt,
	)
}

func statusLogToDomain(dto StatusLogDTO) (order.StatusLogEntry, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.StatusLogEntry{}, err
	}
	var actorID *kernel.UUID
	if dto.ActorID != nil {
		id, idErr := kernel.UUIDFromBytes(dto.ActorID[:])
		if idErr != nil {
			return order.StatusLogEntry{}, idErr
		}
		actorID = &id
	}
	return order.NewStatusLogEntry(orderID, order.ParseStatus(dto.Status), dto.ChangedAt.UTC(), actorID, dto.Note), nil
}
