package http

import (
	"time"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/order"
)

// Request bodies.

type CartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CartGroupRequest struct {
	RestaurantID string            `json:"restaurant_id"`
	Items        []CartItemRequest `json:"items"`
	DeliveryFee  *string           `json:"delivery_fee,omitempty"`
}

type DeliveryRequest struct {
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

type PaymentRequest struct {
	Method         string `json:"method"`
	ProofReference string `json:"proof_reference,omitempty"`
}

type GuestRequest struct {
	Name                string `json:"name"`
	Phone               string `json:"phone"`
	Email               string `json:"email,omitempty"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

// CreateOrderRequest is a single restaurant cart.
type CreateOrderRequest struct {
	CartGroupRequest
	Delivery DeliveryRequest `json:"delivery"`
	Payment  *PaymentRequest `json:"payment,omitempty"`
	Guest    *GuestRequest   `json:"guest,omitempty"`
}

// CreateMultiRestaurantOrderRequest is a cart with one group per restaurant.
type CreateMultiRestaurantOrderRequest struct {
	Groups   []CartGroupRequest `json:"groups"`
	Delivery DeliveryRequest    `json:"delivery"`
	Payment  *PaymentRequest    `json:"payment,omitempty"`
	Guest    *GuestRequest      `json:"guest,omitempty"`
}

type TransitionStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

type CancelOrderRequest struct {
	Note string `json:"note,omitempty"`
}

// Responses.

type ErrorResponse struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	GroupIndex *int   `json:"group_index,omitempty"`
	ItemIndex  *int   `json:"item_index,omitempty"`
}

type OrderItemResponse struct {
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	PriceAtOrder string `json:"price_at_order"`
	Subtotal     string `json:"subtotal"`
}

type RestaurantGroupResponse struct {
	RestaurantID   string              `json:"restaurant_id"`
	RestaurantName string              `json:"restaurant_name"`
	DeliveryFee    string              `json:"delivery_fee"`
	Subtotal       string              `json:"subtotal"`
	Items          []OrderItemResponse `json:"items"`
}

type DeliveryResponse struct {
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     string   `json:"notes"`
}

type GuestResponse struct {
	Name                string    `json:"name"`
	Phone               string    `json:"phone"`
	Email               string    `json:"email,omitempty"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
	TemporaryID         string    `json:"temporary_id"`
	ExpiresAt           time.Time `json:"expires_at"`
}

type PaymentResponse struct {
	Method         string     `json:"method"`
	Status         string     `json:"status"`
	AmountPaid     string     `json:"amount_paid"`
	ProofReference string     `json:"proof_reference,omitempty"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
}

type OrderResponse struct {
	ID                string                    `json:"id"`
	Status            string                    `json:"status"`
	CustomerID        *string                   `json:"customer_id"`
	Guest             *GuestResponse            `json:"guest,omitempty"`
	RestaurantName    string                    `json:"restaurant_name"`
	IsMultiRestaurant bool                      `json:"is_multi_restaurant"`
	Restaurants       []RestaurantGroupResponse `json:"restaurants"`
	Delivery          DeliveryResponse          `json:"delivery"`
	Subtotal          string                    `json:"subtotal"`
	DeliveryFee       string                    `json:"delivery_fee"`
	TotalAmount       string                    `json:"total_amount"`
	Payment           *PaymentResponse          `json:"payment,omitempty"`
	StatusChangedAt   time.Time                 `json:"status_changed_at"`
	CreatedAt         time.Time                 `json:"created_at"`
	IsReviewed        bool                      `json:"is_reviewed"`
}

type StatusLogResponse struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
	ActorID   *string   `json:"actor_id"`
	Note      string    `json:"note"`
}

type LegQuoteResponse struct {
	RestaurantID string   `json:"restaurant_id"`
	DistanceKm   *float64 `json:"distance_km"`
	Fee          string   `json:"fee"`
}

type DeliveryFeeQuoteResponse struct {
	Legs  []LegQuoteResponse `json:"legs"`
	Total string             `json:"total"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:                o.ID().String(),
		Status:            o.Status().String(),
		RestaurantName:    o.RestaurantDisplayName(),
		IsMultiRestaurant: o.IsMultiRestaurant(),
		Subtotal:          o.Subtotal().String(),
		DeliveryFee:       o.DeliveryFee().String(),
		TotalAmount:       o.TotalAmount().String(),
		StatusChangedAt:   o.StatusChangedAt(),
		CreatedAt:         o.CreatedAt(),
		IsReviewed:        o.IsReviewed(),
		Delivery: DeliveryResponse{
			Address: o.Delivery().Address(),
			Notes:   o.Delivery().Notes(),
		},
	}

	if id := o.CustomerID(); id != nil {
		s := id.String()
		resp.CustomerID = &s
	}

	if g := o.Guest(); g != nil {
		resp.Guest = &GuestResponse{
			Name:                g.Contact().Name(),
			Phone:               g.Contact().Phone(),
			Email:               g.Contact().Email(),
			SpecialInstructions: g.Contact().SpecialInstructions(),
			TemporaryID:         g.TemporaryID(),
			ExpiresAt:           g.ExpiresAt(),
		}
	}

	if p := o.Delivery().Point(); p != nil {
		lat, lon := p.Latitude(), p.Longitude()
		resp.Delivery.Latitude = &lat
		resp.Delivery.Longitude = &lon
	}

	for _, group := range o.LineGroups() {
		g := RestaurantGroupResponse{
			RestaurantID:   group.Leg.RestaurantID().String(),
			RestaurantName: group.Leg.Name(),
			DeliveryFee:    group.Leg.DeliveryFee().String(),
			Subtotal:       group.Subtotal.String(),
		}
		for _, line := range group.Lines {
			g.Items = append(g.Items, OrderItemResponse{
				ProductID:    line.ProductID().String(),
				Quantity:     line.Quantity(),
				PriceAtOrder: line.PriceAtOrder().String(),
				Subtotal:     line.Subtotal().String(),
			})
		}
		resp.Restaurants = append(resp.Restaurants, g)
	}

	if p := o.Payment(); p != nil {
		resp.Payment = &PaymentResponse{
			Method:         string(p.Method()),
			Status:         string(p.Status()),
			AmountPaid:     p.AmountPaid().String(),
			ProofReference: p.ProofReference(),
			PaidAt:         p.PaidAt(),
		}
	}

	return resp
}

func toStatusLogResponse(entries []queries.GetStatusLogsQueryResponse) []StatusLogResponse {
	resp := make([]StatusLogResponse, 0, len(entries))
	for _, e := range entries {
		item := StatusLogResponse{Status: e.Status, ChangedAt: e.ChangedAt, Note: e.Note}
		if e.ActorID != nil {
			s := e.ActorID.String()
			item.ActorID = &s
		}
		resp = append(resp, item)
	}
	return resp
}

func toQuoteResponse(q queries.QuoteDeliveryFeeQueryResponse) DeliveryFeeQuoteResponse {
	resp := DeliveryFeeQuoteResponse{Total: q.Total.String(), Legs: make([]LegQuoteResponse, 0, len(q.Legs))}
	for _, leg := range q.Legs {
		resp.Legs = append(resp.Legs, LegQuoteResponse{
			RestaurantID: leg.RestaurantID.String(),
			DistanceKm:   leg.DistanceKm,
			Fee:          leg.Fee.String(),
		})
	}
	return resp
}
