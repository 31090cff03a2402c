package order

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrDraftIsNotConstructed = errs.NewValueIsRequiredError("draft must be created via NewDraft")

// Draft is a validated, priced cart that has not been persisted yet.
// The first leg is the primary restaurant of the order.
type Draft struct {
	legs  []RestaurantLeg
	lines []Line
	guard guard.ConstructorGuard
}

// NewDraft checks that legs and lines describe the same set of restaurants:
// every line belongs to a leg, every leg has at least one line, and no
// restaurant appears twice.
func NewDraft(legs []RestaurantLeg, lines []Line) (Draft, error) {
	if len(legs) == 0 {
		return Draft{}, errs.NewValueIsRequiredError("restaurant legs")
	}
	if len(lines) == 0 {
		return Draft{}, errs.NewValueIsRequiredError("order lines")
	}

	lineCount := make(map[kernel.UUID]int, len(legs))
	for _, leg := range legs {
		if _, dup := lineCount[leg.RestaurantID()]; dup {
			return Draft{}, errs.NewValueIsInvalidError("restaurant " + leg.RestaurantID().String() + " appears in more than one leg")
		}
		lineCount[leg.RestaurantID()] = 0
	}

	var lineErrs []error
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			lineErrs = append(lineErrs, err)
			continue
		}
		if _, ok := lineCount[line.RestaurantID()]; !ok {
			lineErrs = append(lineErrs, errs.NewValueIsInvalidError("line restaurant "+line.RestaurantID().String()+" has no leg"))
			continue
		}
		lineCount[line.RestaurantID()]++
	}
	if err := errors.Join(lineErrs...); err != nil {
		return Draft{}, err
	}

	for _, leg := range legs {
		if lineCount[leg.RestaurantID()] == 0 {
			return Draft{}, errs.NewValueIsInvalidError("leg " + leg.RestaurantID().String() + " has no lines")
		}
	}

	return Draft{
		legs:  append([]RestaurantLeg(nil), legs...),
		lines: append([]Line(nil), lines...),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (d Draft) Validate() error {
	return d.guard.Validate(ErrDraftIsNotConstructed)
}

func (d Draft) Legs() []RestaurantLeg {
	return append([]RestaurantLeg(nil), d.legs...)
}

func (d Draft) Lines() []Line {
	return append([]Line(nil), d.lines...)
}

// Subtotal is the sum of the line subtotals.
func (d Draft) Subtotal() kernel.Money {
	return sumLines(d.lines)
}

// DeliveryFee is the sum of the leg fees. Legs are priced independently.
func (d Draft) DeliveryFee() kernel.Money {
	return sumLegFees(d.legs)
}

// Total is Subtotal plus DeliveryFee.
func (d Draft) Total() kernel.Money {
	return d.Subtotal().Add(d.DeliveryFee())
}

func sumLines(lines []Line) kernel.Money {
	total := kernel.ZeroMoney()
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func sumLegFees(legs []RestaurantLeg) kernel.Money {
	total := kernel.ZeroMoney()
	for _, leg := range legs {
		total = total.Add(leg.DeliveryFee())
	}
	return total
}
