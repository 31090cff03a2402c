// Package http exposes the order lifecycle over REST. Handlers translate JSON
// bodies into commands and queries and map domain errors to status codes.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	TransitionStatusHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionStatusCommand) (*order.Order, error)
	}
	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error)
	}
	ConfirmPaymentHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmPaymentCommand) (*order.Order, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*order.Order, error)
	}
	TrackGuestOrderHandler interface {
		Handle(ctx context.Context, query queries.TrackGuestOrderQuery) (*order.Order, error)
	}
	GetStatusLogsHandler interface {
		Handle(ctx context.Context, query queries.GetStatusLogsQuery) ([]queries.GetStatusLogsQueryResponse, error)
	}
	QuoteDeliveryFeeHandler interface {
		Handle(ctx context.Context, query queries.QuoteDeliveryFeeQuery) (queries.QuoteDeliveryFeeQueryResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	CreateOrder      CreateOrderHandler
	TransitionStatus TransitionStatusHandler
	CancelOrder      CancelOrderHandler
	ConfirmPayment   ConfirmPaymentHandler

	// Query handlers
	GetOrder         GetOrderHandler
	TrackGuestOrder  TrackGuestOrderHandler
	GetStatusLogs    GetStatusLogsHandler
	QuoteDeliveryFee QuoteDeliveryFeeHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	authn    Authenticator
	realtime http.Handler
	qr       QRGenerator
	logger   *slog.Logger
}

// NewServer creates the server. realtime serves the observer channel and may
// be nil.
func NewServer(handlers Handlers, authn Authenticator, realtime http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		handlers: handlers,
		authn:    authn,
		realtime: realtime,
		qr:       DefaultQRGenerator{},
		logger:   logger.With("component", "http"),
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	if s.realtime != nil {
		e.GET("/ws/orders", echo.WrapHandler(s.realtime))
	}

	public := e.Group("/api/v1")
	public.POST("/guest-orders", s.CreateGuestOrder)
	public.POST("/guest-orders/multi", s.CreateMultiRestaurantGuestOrder)
	public.GET("/guest-orders/:temporaryId", s.TrackGuestOrder)
	public.GET("/delivery-fee", s.QuoteDeliveryFee)

	private := e.Group("/api/v1", RequireUser(s.authn))
	private.POST("/orders", s.CreateOrder)
	private.POST("/orders/multi", s.CreateMultiRestaurantOrder)
	private.GET("/orders/:id", s.GetOrder)
	private.GET("/orders/:id/status-logs", s.GetStatusLogs)
	private.POST("/orders/:id/status", s.TransitionStatus)
	private.POST("/orders/:id/cancel", s.CancelOrder)
	private.POST("/orders/:id/payment/confirm", s.ConfirmPayment)
	private.GET("/orders/:id/payment/qr", s.GetPaymentQR)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
