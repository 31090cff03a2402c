package services

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// CatalogReader looks up live catalog records. Missing records are reported
// with an error matching errs.ErrObjectNotFound.
type CatalogReader interface {
	GetRestaurant(ctx context.Context, id kernel.UUID) (catalog.Restaurant, error)
	GetProduct(ctx context.Context, id kernel.UUID) (catalog.Product, error)
}

// CartItem is one untrusted cart line. Any client-side price is ignored.
type CartItem struct {
	ProductID kernel.UUID
	Quantity  int
}

// CartGroup is the part of a cart ordered from one restaurant. DeliveryFee is
// the fee the caller already computed for the group, if any.
type CartGroup struct {
	RestaurantID kernel.UUID
	Items        []CartItem
	DeliveryFee  *kernel.Money
}

// OrderAssembler validates carts against the catalog and prices them.
//
// Business rules:
//   - the cart has at least one group and every group at least one item
//   - every restaurant exists, is open and appears in one group only
//   - every product exists, belongs to its group's restaurant and is available
//   - quantities are positive
//   - line prices are the current catalog prices
//
// The first violation aborts the assembly with an *errs.CartIsInvalidError
// naming the group and item; nothing is built from a partially valid cart.
// Catalog failures other than not-found are returned unchanged.
//
// The fee of each group is the fee supplied with the group when there is one,
// usually a quote obtained earlier from the same calculator. Without it the
// geo fee applies when both the restaurant and the destination coordinates
// are known, else the base fee of the settings.
type OrderAssembler struct {
	catalog CatalogReader
	fees    GeoFeeCalculator
}

func NewOrderAssembler(catalogReader CatalogReader, fees GeoFeeCalculator) (*OrderAssembler, error) {
	if catalogReader == nil {
		return nil, errs.NewValueIsRequiredError("catalogReader")
	}
	return &OrderAssembler{catalog: catalogReader, fees: fees}, nil
}

// Assemble builds a draft from groups. destination may be nil.
//
// Example usage:
//
//	draft, err := assembler.Assemble(ctx, []services.CartGroup{{
//	    RestaurantID: restaurantID,
//	    Items:        []services.CartItem{{ProductID: productID, Quantity: 2}},
//	}}, delivery.Point(), settings)
//	if errors.Is(err, errs.ErrCartIsInvalid) {
//	    // reject the request
//	}
func (a *OrderAssembler) Assemble(
	ctx context.Context,
	groups []CartGroup,
	destination *kernel.GeoPoint,
	settings catalog.DeliverySettings,
) (order.Draft, error) {
	if len(groups) == 0 {
		return order.Draft{}, errs.NewCartIsInvalidError(0, -1, errs.NewValueIsRequiredError("cart groups"))
	}

	legs := make([]order.RestaurantLeg, 0, len(groups))
	var lines []order.Line
	seen := make(map[kernel.UUID]int, len(groups))

	for gi, group := range groups {
		restaurant, err := a.restaurantFor(ctx, gi, group)
		if err != nil {
			return order.Draft{}, err
		}
		if first, dup := seen[restaurant.ID]; dup {
			return order.Draft{}, errs.NewCartIsInvalidError(gi, -1,
				fmt.Errorf("restaurant %s is already ordered in group %d", restaurant.ID, first))
		}
		seen[restaurant.ID] = gi

		for ii, item := range group.Items {
			line, err := a.lineFor(ctx, gi, ii, restaurant, item)
			if err != nil {
				return order.Draft{}, err
			}
			lines = append(lines, line)
		}

		fee, err := a.feeFor(restaurant, group, destination, settings)
		if err != nil {
			return order.Draft{}, errs.NewCartIsInvalidError(gi, -1, err)
		}

		leg, err := order.NewRestaurantLeg(restaurant.ID, restaurant.Name, fee)
		if err != nil {
			return order.Draft{}, errs.NewCartIsInvalidError(gi, -1, err)
		}
		legs = append(legs, leg)
	}

	return order.NewDraft(legs, lines)
}

func (a *OrderAssembler) restaurantFor(ctx context.Context, gi int, group CartGroup) (catalog.Restaurant, error) {
	if err := group.RestaurantID.Validate(); err != nil {
		return catalog.Restaurant{}, errs.NewCartIsInvalidError(gi, -1, errs.NewValueIsRequiredError("restaurant id"))
	}
	if len(group.Items) == 0 {
		return catalog.Restaurant{}, errs.NewCartIsInvalidError(gi, -1, errs.NewValueIsRequiredError("items"))
	}

	restaurant, err := a.catalog.GetRestaurant(ctx, group.RestaurantID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return catalog.Restaurant{}, errs.NewCartIsInvalidError(gi, -1, err)
	}
	if err != nil {
		return catalog.Restaurant{}, err
	}

	if !restaurant.AcceptsOrders() {
		return catalog.Restaurant{}, errs.NewCartIsInvalidError(gi, -1,
			fmt.Errorf("restaurant %s is %s", restaurant.ID, restaurant.Status))
	}
	return restaurant, nil
}

func (a *OrderAssembler) lineFor(
	ctx context.Context,
	gi, ii int,
	restaurant catalog.Restaurant,
	item CartItem,
) (order.Line, error) {
	if item.Quantity <= 0 {
		return order.Line{}, errs.NewCartIsInvalidError(gi, ii,
			errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, "unbounded"))
	}
	if err := item.ProductID.Validate(); err != nil {
		return order.Line{}, errs.NewCartIsInvalidError(gi, ii, errs.NewValueIsRequiredError("product id"))
	}

	product, err := a.catalog.GetProduct(ctx, item.ProductID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return order.Line{}, errs.NewCartIsInvalidError(gi, ii, err)
	}
	if err != nil {
		return order.Line{}, err
	}

	switch {
	case !product.BelongsTo(restaurant.ID):
		return order.Line{}, errs.NewCartIsInvalidError(gi, ii,
			fmt.Errorf("product %s is not sold by restaurant %s", product.ID, restaurant.ID))
	case !product.IsAvailable:
		return order.Line{}, errs.NewCartIsInvalidError(gi, ii,
			fmt.Errorf("product %s is not available", product.ID))
	}

	line, err := order.NewLine(product.ID, restaurant.ID, item.Quantity, product.Price)
	if err != nil {
		return order.Line{}, errs.NewCartIsInvalidError(gi, ii, err)
	}
	return line, nil
}

func (a *OrderAssembler) feeFor(
	restaurant catalog.Restaurant,
	group CartGroup,
	destination *kernel.GeoPoint,
	settings catalog.DeliverySettings,
) (kernel.Money, error) {
	if group.DeliveryFee != nil {
		return *group.DeliveryFee, nil
	}
	if restaurant.Location != nil && destination != nil {
		return a.fees.Calculate(restaurant.Location, destination, settings)
	}
	return settings.BaseFee, nil
}
