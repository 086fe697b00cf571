// Package length implements ns3::Length: a unit-safe length value with
// conversions, parsing, and arithmetic, stored internally as meters.
package length

import (
	"fmt"
	"math"

	"simcore/pkg/simerrors"
)

// Length is an immutable length value, stored internally in meters. The
// zero Length is 0 meters.
type Length struct {
	meters float64
}

// Quantity is a value paired with the unit it is expressed in, used when
// presenting a length in a specific unit rather than the normalized
// meters form.
type Quantity struct {
	Value float64
	Unit  Unit
}

// toMeters converts a value expressed in unit to meters.
func toMeters(value float64, unit Unit) float64 {
	if ratio, ok := metersPerUnit[unit]; ok {
		return value * ratio
	}
	if feetPerFoot, ok := feetPerUnit[unit]; ok {
		return (value * feetPerFoot) * metersPerFoot
	}
	panic(fmt.Sprintf("length: no conversion defined for Unit(%d)", int(unit)))
}

// fromMeters converts a value in meters to unit.
func fromMeters(meters float64, unit Unit) float64 {
	if ratio, ok := metersPerUnit[unit]; ok {
		return meters / ratio
	}
	if feetPerFoot, ok := feetPerUnit[unit]; ok {
		return (meters / metersPerFoot) / feetPerFoot
	}
	panic(fmt.Sprintf("length: no conversion defined for Unit(%d)", int(unit)))
}

// New constructs a Length from a value expressed in unit.
func New(value float64, unit Unit) Length {
	return Length{meters: toMeters(value, unit)}
}

// NewFromQuantity constructs a Length from a Quantity.
func NewFromQuantity(q Quantity) Length {
	return New(q.Value, q.Unit)
}

// FromUnitString constructs a Length from a value and a unit token such as
// "km", "meter", or "nautical miles". It fails with a UnitParse
// simerrors.ComplexError when the token is not recognized.
func FromUnitString(value float64, unitToken string) (Length, error) {
	u, err := ParseUnit(unitToken)
	if err != nil {
		return Length{}, err
	}
	return New(value, u), nil
}

// As returns the Quantity equivalent to l expressed in unit.
func (l Length) As(unit Unit) Quantity {
	return Quantity{Value: fromMeters(l.meters, unit), Unit: unit}
}

// Meters is shorthand for l.As(Meter).Value.
func (l Length) Meters() float64 {
	return l.meters
}

// Convenience unit constructors, mirroring ns3::Length's per-unit
// factory functions.
func Nanometers(v float64) Length    { return New(v, Nanometer) }
func Micrometers(v float64) Length   { return New(v, Micrometer) }
func Millimeters(v float64) Length   { return New(v, Millimeter) }
func Centimeters(v float64) Length   { return New(v, Centimeter) }
func Meters(v float64) Length        { return New(v, Meter) }
func Kilometers(v float64) Length    { return New(v, Kilometer) }
func NauticalMiles(v float64) Length { return New(v, NauticalMile) }
func Inches(v float64) Length        { return New(v, Inch) }
func Feet(v float64) Length          { return New(v, Foot) }
func Yards(v float64) Length         { return New(v, Yard) }
func Miles(v float64) Length         { return New(v, Mile) }

// Add returns l + other.
func (l Length) Add(other Length) Length {
	return Length{meters: l.meters + other.meters}
}

// Sub returns l - other.
func (l Length) Sub(other Length) Length {
	return Length{meters: l.meters - other.meters}
}

// Scale returns l * factor.
func (l Length) Scale(factor float64) Length {
	return Length{meters: l.meters * factor}
}

// DivScalar returns l / divisor as a Length.
func (l Length) DivScalar(divisor float64) Length {
	return Length{meters: l.meters / divisor}
}

// Ratio returns l / other as a dimensionless scalar. It is NaN if other is
// exactly zero.
func (l Length) Ratio(other Length) float64 {
	if other.meters == 0 {
		return math.NaN()
	}
	return l.meters / other.meters
}

// Neg returns -l.
func (l Length) Neg() Length {
	return Length{meters: -l.meters}
}

// Abs returns the absolute value of l.
func (l Length) Abs() Length {
	return Length{meters: math.Abs(l.meters)}
}

// IsZero, IsPositive and IsNegative classify l against exactly zero,
// matching the sign predicates the original exposes alongside Div/Mod.
func (l Length) IsZero() bool     { return l.meters == 0 }
func (l Length) IsPositive() bool { return l.meters > 0 }
func (l Length) IsNegative() bool { return l.meters < 0 }

// Exact comparisons: bitwise on the underlying double.
func (l Length) Equal(other Length) bool   { return l.meters == other.meters }
func (l Length) Less(other Length) bool    { return l.meters < other.meters }
func (l Length) LessEq(other Length) bool  { return l.meters <= other.meters }
func (l Length) Greater(other Length) bool { return l.meters > other.meters }
func (l Length) GreaterEq(other Length) bool {
	return l.meters >= other.meters
}

// machineEpsilon is the default tolerance for the approximate comparison
// family, matching float64's machine epsilon.
const machineEpsilon = 2.220446049250313e-16

// NearlyEqual reports whether l and other differ by no more than
// tolerance (if provided) or machineEpsilon otherwise.
func (l Length) NearlyEqual(other Length, tolerance ...float64) bool {
	t := machineEpsilon
	if len(tolerance) > 0 {
		t = tolerance[0]
	}
	return math.Abs(l.meters-other.meters) <= t
}

// NearlyLess reports whether l is less than other by more than the
// tolerance, forming (together with NearlyEqual) a total preorder.
func (l Length) NearlyLess(other Length, tolerance ...float64) bool {
	if l.NearlyEqual(other, tolerance...) {
		return false
	}
	return l.meters < other.meters
}

// NearlyLessEq reports whether l is nearly equal to or less than other.
func (l Length) NearlyLessEq(other Length, tolerance ...float64) bool {
	return l.NearlyEqual(other, tolerance...) || l.meters < other.meters
}

// NearlyGreater reports whether l is greater than other by more than the
// tolerance.
func (l Length) NearlyGreater(other Length, tolerance ...float64) bool {
	if l.NearlyEqual(other, tolerance...) {
		return false
	}
	return l.meters > other.meters
}

// NearlyGreaterEq reports whether l is nearly equal to or greater than other.
func (l Length) NearlyGreaterEq(other Length, tolerance ...float64) bool {
	return l.NearlyEqual(other, tolerance...) || l.meters > other.meters
}

// String renders l as "<meters> m", the package's default serialization.
func (l Length) String() string {
	return fmt.Sprintf("%v m", l.meters)
}

// Format renders l "as" unit: "<converted value> <symbol>".
func (l Length) Format(unit Unit) string {
	q := l.As(unit)
	return fmt.Sprintf("%v %s", q.Value, ToSymbol(unit))
}

// Div returns a/b truncated toward zero as a signed integer quotient and
// writes the remainder (same sign as a, a == q*b + remainder) to
// *remainder. Division
// by zero is fatal, matching the source's Div/Mod helpers.
func Div(a, b Length, remainder *Length) int64 {
	if b.meters == 0 {
		simerrors.Fatal(nil, "length.Div", simerrors.New(simerrors.DivByZero, "denominator is zero"))
	}
	q := math.Trunc(a.meters / b.meters)
	rem := a.meters - q*b.meters
	// Trunc already rounds toward zero, so rem naturally shares a's sign;
	// guard the exact-multiple edge case where floating point leaves a
	// tiny nonzero remainder of the wrong sign.
	if rem != 0 && (rem < 0) != (a.meters < 0) {
		rem = 0
	}
	if remainder != nil {
		*remainder = Length{meters: rem}
	}
	return int64(q)
}

// Mod returns the remainder alone; see Div.
func Mod(a, b Length) Length {
	var rem Length
	Div(a, b, &rem)
	return rem
}

// DivMod is the Length-typed analogue of Div: it returns the integer
// quotient and the remainder Length as a pair rather than through an
// out-parameter, for callers that prefer value semantics. Supplements
// spec.md's Div/Mod per the original's free-function pair in length.cc.
func DivMod(a, b Length) (int64, Length) {
	var rem Length
	q := Div(a, b, &rem)
	return q, rem
}
