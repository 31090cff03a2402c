package http

import (
	"net/http"
	"strconv"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// QuoteDeliveryFee handles GET /api/v1/delivery-fee?restaurant_id=..&lat=..&lng=..
// The restaurant_id parameter may repeat for multi-restaurant carts.
func (s *Server) QuoteDeliveryFee(ctx echo.Context) error {
	params := ctx.QueryParams()

	rawIDs := params["restaurant_id"]
	restaurantIDs := make([]kernel.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("restaurant_id", err))
		}
		restaurantIDs = append(restaurantIDs, id)
	}

	lat, err := strconv.ParseFloat(params.Get("lat"), 64)
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("lat", err))
	}
	lng, err := strconv.ParseFloat(params.Get("lng"), 64)
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("lng", err))
	}

	destination, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewQuoteDeliveryFeeQuery(restaurantIDs, destination)
	if err != nil {
		return s.fail(ctx, err)
	}

	quote, err := s.handlers.QuoteDeliveryFee.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toQuoteResponse(quote))
}
