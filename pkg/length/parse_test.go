package length

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"simcore/pkg/simerrors"
)

func TestTryParseSymbolsAndNames(t *testing.T) {
	tests := []struct {
		input    string
		expected Length
	}{
		{"5m", Meters(5)},
		{"5 m", Meters(5)},
		{"5meters", Meters(5)},
		{"5 meters", Meters(5)},
		{"1 km", Kilometers(1)},
		{"1km", Kilometers(1)},
		{"5 feet", Feet(5)},
		{"5 foot", Feet(5)},
		{"1 nautical mile", NauticalMiles(1)},
		{"2 nautical miles", NauticalMiles(2)},
		{"1nmi", NauticalMiles(1)},
		{"-3.5cm", Centimeters(-3.5)},
		{"1.5e2m", Meters(150)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := TryParse(tt.input)
			assert.NoError(t, err)
			assert.InDelta(t, tt.expected.Meters(), got.Meters(), 1e-9)
		})
	}
}

func TestTryParseUnknownUnit(t *testing.T) {
	_, err := TryParse("1.0 bogus")
	assert.Error(t, err)
	assert.True(t, simerrors.HasCode(err, simerrors.UnitParse))
}

func TestTryParseValueUnknownUnit(t *testing.T) {
	_, err := TryParseValue(1.0, "bogus")
	assert.Error(t, err)
	assert.True(t, simerrors.HasCode(err, simerrors.UnitParse))
}

func TestTryParseMalformedNumber(t *testing.T) {
	_, err := TryParse("abc meters")
	assert.Error(t, err)
	assert.True(t, simerrors.HasCode(err, simerrors.NumericParse))
}

func TestTryParseMissingUnit(t *testing.T) {
	_, err := TryParse("5")
	assert.Error(t, err)
	assert.True(t, simerrors.HasCode(err, simerrors.UnitParse))
}

func TestParseKilometerMatchesSpecExample(t *testing.T) {
	assert.Equal(t, Meters(1000), Parse("1 km"))
}

func TestParseFiveFeetMatchesSpecExample(t *testing.T) {
	assert.InDelta(t, 1.524, Parse("5 feet").As(Meter).Value, 1e-3)
}

func TestParseFormatRoundTrip(t *testing.T) {
	values := []Length{Meters(0), Meters(1), Meters(-12.5), Kilometers(3), Feet(7)}
	for _, l := range values {
		s := l.String()
		got, err := TryParse(s)
		assert.NoError(t, err)
		assert.InDelta(t, l.Meters(), got.Meters(), 1e-9)
	}
}
