package http

import (
	"net/http"
	"strings"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders - places a single restaurant order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	return s.createCustomerOrder(ctx, []CartGroupRequest{req.CartGroupRequest}, req.Delivery, req.Payment)
}

// CreateMultiRestaurantOrder handles POST /api/v1/orders/multi.
func (s *Server) CreateMultiRestaurantOrder(ctx echo.Context) error {
	var req CreateMultiRestaurantOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	return s.createCustomerOrder(ctx, req.Groups, req.Delivery, req.Payment)
}

// CreateGuestOrder handles POST /api/v1/guest-orders - places an order
// without an account. The response carries the temporary tracking id.
func (s *Server) CreateGuestOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	return s.createGuestOrder(ctx, req.Guest, []CartGroupRequest{req.CartGroupRequest}, req.Delivery, req.Payment)
}

// CreateMultiRestaurantGuestOrder handles POST /api/v1/guest-orders/multi.
func (s *Server) CreateMultiRestaurantGuestOrder(ctx echo.Context) error {
	var req CreateMultiRestaurantOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	return s.createGuestOrder(ctx, req.Guest, req.Groups, req.Delivery, req.Payment)
}

func (s *Server) createCustomerOrder(
	ctx echo.Context,
	groupReqs []CartGroupRequest,
	deliveryReq DeliveryRequest,
	paymentReq *PaymentRequest,
) error {
	customer, ok := currentUser(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{Code: http.StatusUnauthorized, Message: "Unauthorized"})
	}

	groups, delivery, payment, err := parseCart(groupReqs, deliveryReq, paymentReq)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateCustomerOrderCommand(kernel.NewUUID(), customer.ID, groups, delivery, payment)
	if err != nil {
		return s.fail(ctx, err)
	}

	placed, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(placed))
}

func (s *Server) createGuestOrder(
	ctx echo.Context,
	guestReq *GuestRequest,
	groupReqs []CartGroupRequest,
	deliveryReq DeliveryRequest,
	paymentReq *PaymentRequest,
) error {
	if guestReq == nil {
		return s.fail(ctx, errs.NewValueIsRequiredError("guest"))
	}

	contact, err := order.NewGuestContact(guestReq.Name, guestReq.Phone, guestReq.Email, guestReq.SpecialInstructions)
	if err != nil {
		return s.fail(ctx, err)
	}

	groups, delivery, payment, err := parseCart(groupReqs, deliveryReq, paymentReq)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateGuestOrderCommand(kernel.NewUUID(), contact, groups, delivery, payment)
	if err != nil {
		return s.fail(ctx, err)
	}

	placed, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(placed))
}

// TrackGuestOrder handles GET /api/v1/guest-orders/:temporaryId.
func (s *Server) TrackGuestOrder(ctx echo.Context) error {
	query, err := queries.NewTrackGuestOrderQuery(ctx.Param("temporaryId"))
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.TrackGuestOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	viewer, orderID, err := s.orderRoute(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, viewer)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// GetStatusLogs handles GET /api/v1/orders/:id/status-logs.
func (s *Server) GetStatusLogs(ctx echo.Context) error {
	viewer, orderID, err := s.orderRoute(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetStatusLogsQuery(orderID, viewer)
	if err != nil {
		return s.fail(ctx, err)
	}

	entries, err := s.handlers.GetStatusLogs.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toStatusLogResponse(entries))
}

// TransitionStatus handles POST /api/v1/orders/:id/status - staff only.
func (s *Server) TransitionStatus(ctx echo.Context) error {
	actor, orderID, err := s.orderRoute(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	if !actor.IsStaff() {
		return s.fail(ctx, errs.ErrPermissionIsDenied)
	}

	var req TransitionStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewTransitionStatusCommand(orderID, strings.TrimSpace(req.Status), actor, req.Note)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.TransitionStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel. The body is optional.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actor, orderID, err := s.orderRoute(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req CancelOrderRequest
	if ctx.Request().ContentLength > 0 {
		if err = ctx.Bind(&req); err != nil {
			return badRequest(ctx, "Invalid request body")
		}
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor, req.Note)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// ConfirmPayment handles POST /api/v1/orders/:id/payment/confirm - admin only.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	actor, orderID, err := s.orderRoute(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	if !actor.IsAdmin() {
		return s.fail(ctx, errs.ErrPermissionIsDenied)
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID, actor.ID)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.ConfirmPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// orderRoute resolves the authenticated user and the :id path parameter.
func (s *Server) orderRoute(ctx echo.Context) (user.User, kernel.UUID, error) {
	u, ok := currentUser(ctx)
	if !ok {
		return user.User{}, kernel.UUID{}, errs.ErrCredentialIsInvalid
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return user.User{}, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("order id", err)
	}

	return u, orderID, nil
}

func parseCart(
	groupReqs []CartGroupRequest,
	deliveryReq DeliveryRequest,
	paymentReq *PaymentRequest,
) ([]services.CartGroup, order.Delivery, *commands.PaymentInfo, error) {
	groups := make([]services.CartGroup, 0, len(groupReqs))
	for gi, g := range groupReqs {
		group, err := parseGroup(gi, g)
		if err != nil {
			return nil, order.Delivery{}, nil, err
		}
		groups = append(groups, group)
	}

	var point *kernel.GeoPoint
	switch {
	case deliveryReq.Latitude != nil && deliveryReq.Longitude != nil:
		p, err := kernel.NewGeoPoint(*deliveryReq.Latitude, *deliveryReq.Longitude)
		if err != nil {
			return nil, order.Delivery{}, nil, err
		}
		point = &p
	case deliveryReq.Latitude != nil || deliveryReq.Longitude != nil:
		return nil, order.Delivery{}, nil, errs.NewValueIsInvalidError("delivery coordinates")
	}

	delivery, err := order.NewDelivery(deliveryReq.Address, point, deliveryReq.Notes)
	if err != nil {
		return nil, order.Delivery{}, nil, err
	}

	var payment *commands.PaymentInfo
	if paymentReq != nil {
		payment = &commands.PaymentInfo{
			Method:         order.PaymentMethod(paymentReq.Method),
			ProofReference: paymentReq.ProofReference,
		}
	}

	return groups, delivery, payment, nil
}

func parseGroup(gi int, req CartGroupRequest) (services.CartGroup, error) {
	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return services.CartGroup{}, errs.NewCartIsInvalidError(gi, -1,
			errs.NewValueIsInvalidErrorWithCause("restaurant id", err))
	}

	group := services.CartGroup{RestaurantID: restaurantID}

	if req.DeliveryFee != nil {
		fee, feeErr := kernel.MoneyFromString(*req.DeliveryFee)
		if feeErr != nil {
			return services.CartGroup{}, errs.NewCartIsInvalidError(gi, -1, feeErr)
		}
		group.DeliveryFee = &fee
	}

	for ii, item := range req.Items {
		productID, idErr := kernel.UUIDFromString(item.ProductID)
		if idErr != nil {
			return services.CartGroup{}, errs.NewCartIsInvalidError(gi, ii,
				errs.NewValueIsInvalidErrorWithCause("product id", idErr))
		}
		group.Items = append(group.Items, services.CartItem{ProductID: productID, Quantity: item.Quantity})
	}

	return group, nil
}
