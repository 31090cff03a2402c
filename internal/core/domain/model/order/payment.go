package order

import (
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

type PaymentMethod string

const (
	PaymentQR           PaymentMethod = "qr_payment"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentQR, PaymentBankTransfer:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", string(m)))
	}
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not supported", string(s)))
	}
}

// Payment records how the customer pays for an order. An order has at most one.
type Payment struct {
	method         PaymentMethod
	status         PaymentStatus
	amountPaid     kernel.Money
	proofReference string
	createdAt      time.Time
	paidAt         *time.Time
}

// NewPayment starts a payment in PaymentPending.
func NewPayment(method PaymentMethod, amountPaid kernel.Money, proofReference string, now time.Time) (*Payment, error) {
	if err := method.Validate(); err != nil {
		return nil, err
	}
	return &Payment{
		method:         method,
		status:         PaymentPending,
		amountPaid:     amountPaid,
		proofReference: proofReference,
		createdAt:      now.UTC(),
	}, nil
}

// RestorePayment rebuilds a payment loaded from storage.
func RestorePayment(
	method PaymentMethod,
	status PaymentStatus,
	amountPaid kernel.Money,
	proofReference string,
	createdAt time.Time,
	paidAt *time.Time,
) (*Payment, error) {
	if err := method.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return &Payment{
		method:         method,
		status:         status,
		amountPaid:     amountPaid,
		proofReference: proofReference,
		createdAt:      createdAt,
		paidAt:         paidAt,
	}, nil
}

func (p *Payment) Method() PaymentMethod    { return p.method }
func (p *Payment) Status() PaymentStatus    { return p.status }
func (p *Payment) AmountPaid() kernel.Money { return p.amountPaid }
func (p *Payment) ProofReference() string   { return p.proofReference }
func (p *Payment) CreatedAt() time.Time     { return p.createdAt }
func (p *Payment) PaidAt() *time.Time       { return p.paidAt }
func (p *Payment) IsCompleted() bool        { return p.status == PaymentCompleted }

func (p *Payment) complete(now time.Time) error {
	if p.status == PaymentCompleted {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("payment is already %s", p.status))
	}
	paidAt := now.UTC()
	p.status = PaymentCompleted
	p.paidAt = &paidAt
	return nil
}
