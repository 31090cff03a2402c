package http

import (
	"fmt"
	"net/http"
	"net/url"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/skip2/go-qrcode"
)

const qrImageSize = 256

// QRGenerator renders the payment code of an order as a PNG.
type QRGenerator interface {
	Generate(o *order.Order) ([]byte, error)
}

// DefaultQRGenerator encodes a link to the payment page carrying the order id
// and the amount due.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(o *order.Order) ([]byte, error) {
	params := url.Values{}
	params.Set("order_id", o.ID().String())
	params.Set("amount", o.TotalAmount().String())
	qrData := fmt.Sprintf("%s/pay?%s", g.BaseURL, params.Encode())
	return qrcode.Encode(qrData, qrcode.Medium, qrImageSize)
}

// WithQRGenerator replaces the payment code renderer.
func (s *Server) WithQRGenerator(gen QRGenerator) *Server {
	s.qr = gen
	return s
}

// GetPaymentQR handles GET /api/v1/orders/:id/payment/qr. Only orders that
// are still awaiting a QR payment get a code.
func (s *Server) GetPaymentQR(ctx echo.Context) error {
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

	if p := o.Payment(); p != nil && p.Method() != order.PaymentQR {
		return s.fail(ctx, errs.NewObjectNotFoundError("qr payment", o.ID()))
	}
	if o.Status() != order.Pending || (o.Payment() != nil && o.Payment().IsCompleted()) {
		return s.fail(ctx, errs.NewInvalidTransitionError(o.Status().String(), order.Paid.String(),
			"order is not awaiting payment"))
	}

	png, err := s.qr.Generate(o)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.Blob(http.StatusOK, "image/png", png)
}
