package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateCustomerOrderCommand or NewCreateGuestOrderCommand",
)

// PaymentInfo is the optional payment submitted with a new order. The amount
// is always the computed order total.
type PaymentInfo struct {
	Method         order.PaymentMethod
	ProofReference string
}

// CreateOrderCommand places a single- or multi-restaurant order. A single
// restaurant order is a cart with one group.
//
// Example:
//
//	cmd, err := NewCreateCustomerOrderCommand(kernel.NewUUID(), customerID, []services.CartGroup{{
//	    RestaurantID: restaurantID,
//	    Items:        []services.CartItem{{ProductID: productID, Quantity: 2}},
//	}}, delivery, nil)
//	if err != nil {
//	    return err
//	}
//	placed, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID *kernel.UUID
	guest      *order.GuestContact
	groups     []services.CartGroup
	delivery   order.Delivery
	payment    *PaymentInfo

	guard guard.ConstructorGuard
}

// NewCreateCustomerOrderCommand builds the command for an authenticated customer.
func NewCreateCustomerOrderCommand(
	orderID, customerID kernel.UUID,
	groups []services.CartGroup,
	delivery order.Delivery,
	payment *PaymentInfo,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}

	var customerErr error
	if err := customerID.Validate(); err != nil {
		customerErr = errs.NewValueIsRequiredErrorWithCause("customer id", err)
	} else {
		cmd.customerID = &customerID
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		customerErr,
		cmd.setGroups(groups),
		cmd.setDelivery(delivery),
		cmd.setPayment(payment),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// NewCreateGuestOrderCommand builds the command for a customer without an account.
func NewCreateGuestOrderCommand(
	orderID kernel.UUID,
	contact order.GuestContact,
	groups []services.CartGroup,
	delivery order.Delivery,
	payment *PaymentInfo,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}

	var contactErr error
	if contact.Name() == "" || contact.Phone() == "" {
		contactErr = errs.NewValueIsRequiredError("guest contact")
	} else {
		cmd.guest = &contact
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		contactErr,
		cmd.setGroups(groups),
		cmd.setDelivery(delivery),
		cmd.setPayment(payment),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID is nil for guest orders.
func (c CreateOrderCommand) CustomerID() *kernel.UUID {
	return c.customerID
}

// GuestContact is nil for customer orders.
func (c CreateOrderCommand) GuestContact() *order.GuestContact {
	return c.guest
}

func (c CreateOrderCommand) IsGuest() bool {
	return c.guest != nil
}

func (c CreateOrderCommand) Groups() []services.CartGroup {
	return append([]services.CartGroup(nil), c.groups...)
}

func (c CreateOrderCommand) Delivery() order.Delivery {
	return c.delivery
}

// Payment is nil when the order was placed without payment details.
func (c CreateOrderCommand) Payment() *PaymentInfo {
	return c.payment
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setGroups(groups []services.CartGroup) error {
	if len(groups) == 0 {
		return errs.NewCartIsInvalidError(0, -1, errs.NewValueIsRequiredError("cart groups"))
	}
	c.groups = append([]services.CartGroup(nil), groups...)
	return nil
}

func (c *CreateOrderCommand) setDelivery(delivery order.Delivery) error {
	if delivery.Address() == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	c.delivery = delivery
	return nil
}

func (c *CreateOrderCommand) setPayment(payment *PaymentInfo) error {
	if payment == nil {
		return nil
	}
	if err := payment.Method.Validate(); err != nil {
		return err
	}
	p := *payment
	c.payment = &p
	return nil
}
