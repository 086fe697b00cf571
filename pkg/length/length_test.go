package length

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroValue(t *testing.T) {
	var l Length
	assert.Equal(t, 0.0, l.Meters())
}

func TestRoundTripAllUnits(t *testing.T) {
	units := []Unit{
		Nanometer, Micrometer, Millimeter, Centimeter, Meter, Kilometer,
		NauticalMile, Inch, Foot, Yard, Mile,
	}
	for _, u := range units {
		l := New(5, u)
		got := l.As(u).Value
		assert.InDelta(t, 5.0, got, 1e-9, "round trip for unit %v", u)
	}
}

func TestCrossUnitRoundTrip(t *testing.T) {
	l := New(12.5, Foot)
	viaMeter := l.As(Meter)
	back := New(viaMeter.Value, Meter).As(Foot)
	assert.InDelta(t, 12.5, back.Value, 1e-9)
}

func TestKnownConversions(t *testing.T) {
	assert.Equal(t, Meters(1000), Kilometers(1))
	assert.InDelta(t, 1.524, Feet(5).As(Meter).Value, 1e-3)
	assert.Equal(t, Meters(1852), NauticalMiles(1))
	assert.InDelta(t, 0.3048, Feet(1).As(Meter).Value, 1e-12)
	assert.InDelta(t, 5280.0, Miles(1).As(Foot).Value, 1e-9)
	assert.InDelta(t, 3.0, Yards(1).As(Foot).Value, 1e-9)
	assert.InDelta(t, 1.0/12.0, Inches(1).As(Foot).Value, 1e-12)
}

func TestArithmetic(t *testing.T) {
	sum := Meters(1).Add(Meters(2))
	assert.Equal(t, Meters(3), sum)

	diff := Meters(5).Sub(Meters(2))
	assert.Equal(t, Meters(3), diff)

	scaled := Meters(2).Scale(3)
	assert.Equal(t, Meters(6), scaled)

	divided := Meters(10).DivScalar(2)
	assert.Equal(t, Meters(5), divided)
}

func TestAdditionCommutativityAndAssociativity(t *testing.T) {
	a, b, c := Meters(1.1), Meters(2.2), Meters(3.3)
	assert.InDelta(t, a.Add(b).Meters(), b.Add(a).Meters(), 1e-12)
	assert.InDelta(t, a.Add(b).Add(c).Meters(), a.Add(b.Add(c)).Meters(), 1e-9)
}

func TestRatio(t *testing.T) {
	ratio := Meters(20).Ratio(Feet(3))
	back := Feet(3).Scale(ratio)
	assert.InDelta(t, 20.0, back.Meters(), 1e-9)
}

func TestRatioByZeroIsNaN(t *testing.T) {
	ratio := Meters(1).Ratio(Meters(0))
	assert.True(t, math.IsNaN(ratio))
}

func TestDiv(t *testing.T) {
	var rem Length
	q := Div(Meters(20), Feet(3), &rem)
	expectedMeters := Feet(3).Meters()
	expectedQ := int64(math.Trunc(Meters(20).Meters() / expectedMeters))
	assert.Equal(t, expectedQ, q)

	reconstructed := Feet(3).Scale(float64(q)).Add(rem)
	assert.InDelta(t, Meters(20).Meters(), reconstructed.Meters(), 1e-9)
}

func TestDivSignMatchesNumerator(t *testing.T) {
	var rem Length
	Div(Meters(-7), Meters(2), &rem)
	assert.True(t, rem.meters <= 0)

	Div(Meters(7), Meters(2), &rem)
	assert.True(t, rem.meters >= 0)
}

func TestMod(t *testing.T) {
	rem := Mod(Meters(7), Meters(2))
	assert.InDelta(t, 1.0, rem.Meters(), 1e-9)
}

func TestDivModPair(t *testing.T) {
	q, rem := DivMod(Meters(7), Meters(2))
	assert.Equal(t, int64(3), q)
	assert.InDelta(t, 1.0, rem.Meters(), 1e-9)
}

func TestComparisons(t *testing.T) {
	assert.True(t, Meters(1).Less(Meters(2)))
	assert.True(t, Meters(2).Greater(Meters(1)))
	assert.True(t, Meters(1).Equal(Meters(1)))
	assert.True(t, Meters(1).LessEq(Meters(1)))
	assert.True(t, Meters(1).GreaterEq(Meters(1)))
}

func TestNearlyEqual(t *testing.T) {
	a := Meters(1.0)
	b := Meters(1.0 + 1e-10)
	assert.False(t, a.Equal(b))
	assert.True(t, a.NearlyEqual(b, 1e-9))
	assert.False(t, a.NearlyEqual(b, 1e-12))
}

func TestNearlyOrderingPreorder(t *testing.T) {
	a := Meters(1.0)
	b := Meters(1.0 + 1e-10)
	tol := 1e-9
	assert.False(t, a.NearlyLess(b, tol))
	assert.True(t, a.NearlyLessEq(b, tol))
	assert.False(t, a.NearlyGreater(b, tol))
	assert.True(t, a.NearlyGreaterEq(b, tol))
}

func TestSignPredicates(t *testing.T) {
	assert.True(t, Meters(0).IsZero())
	assert.True(t, Meters(1).IsPositive())
	assert.True(t, Meters(-1).IsNegative())
	assert.Equal(t, Meters(5), Meters(-5).Abs())
}

func TestStringDefault(t *testing.T) {
	assert.Equal(t, "5 m", Meters(5).String())
}

func TestFormatAsUnit(t *testing.T) {
	assert.Equal(t, "1000 km", Meters(1000000).Format(Kilometer))
	assert.Equal(t, "5 ft", New(5, Foot).Format(Foot))
}

func TestToSymbolAndName(t *testing.T) {
	assert.Equal(t, "km", ToSymbol(Kilometer))
	assert.Equal(t, "kilometer", ToName(Kilometer, false))
	assert.Equal(t, "kilometers", ToName(Kilometer, true))
	assert.Equal(t, "foot", ToName(Foot, false))
	assert.Equal(t, "feet", ToName(Foot, true))
}
