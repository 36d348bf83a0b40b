package kernel

import (
	"fmt"
	"math"

	"mestrace/internal/pkg/errs"
)

// QuantityToleranceKg is the absolute tolerance, in kilograms, used when
// checking that a quantity split sums back to its input. Scale readings carry
// two decimal places, so anything within a hundredth of a kilogram is treated
// as equal.
const QuantityToleranceKg = 0.01

// Quantity is a value object representing a material quantity in kilograms.
// The zero value is a valid quantity of zero. Negative quantities are invalid
// and rejected at construction.
//
// Quantity is immutable; arithmetic methods return new values.
type Quantity struct {
	kg float64
}

// NewQuantity creates a Quantity from a kilogram amount.
// Returns an error if the amount is negative or not a finite number.
func NewQuantity(kg float64) (Quantity, error) {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%v is not a finite number", kg))
	}
	if kg < 0 {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%v is negative", kg))
	}
	return Quantity{kg: kg}, nil
}

// MustQuantity creates a Quantity and panics on invalid input.
// Intended for constants and tests only.
func MustQuantity(kg float64) Quantity {
	q, err := NewQuantity(kg)
	if err != nil {
		panic(err)
	}
	return q
}

// Kg returns the quantity in kilograms.
func (q Quantity) Kg() float64 {
	return q.kg
}

// IsZero reports whether the quantity is exactly zero.
func (q Quantity) IsZero() bool {
	return q.kg == 0
}

// IsPositive reports whether the quantity is greater than zero.
func (q Quantity) IsPositive() bool {
	return q.kg > 0
}

// Add returns the sum of two quantities.
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{kg: q.kg + other.kg}
}

// Sub returns the difference q minus other. The result may be negative in
// kilogram terms; callers deriving variances rely on that.
func (q Quantity) Sub(other Quantity) float64 {
	return q.kg - other.kg
}

// Equals reports whether two quantities are equal within QuantityToleranceKg.
func (q Quantity) Equals(other Quantity) bool {
	return math.Abs(q.kg-other.kg) <= QuantityToleranceKg
}

// String renders the quantity with two decimal places, e.g. "550.00 kg".
func (q Quantity) String() string {
	return fmt.Sprintf("%.2f kg", q.kg)
}

// CheckConservation validates that the given parts sum to the input quantity
// within QuantityToleranceKg. Returns a ConservationViolationError carrying
// the input and part totals when the split does not balance.
func CheckConservation(input Quantity, parts ...Quantity) error {
	var total float64
	for _, p := range parts {
		total += p.kg
	}
	if math.Abs(total-input.kg) > QuantityToleranceKg {
		return errs.NewConservationViolationError(input.kg, total, QuantityToleranceKg)
	}
	return nil
}
