package length

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"simcore/pkg/simerrors"
)

// numberPrefix matches a standard float64 numeric literal (optional sign,
// optional fraction, optional exponent) at the start of a string.
var numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// TryParse parses a combined "<number><unit>" or "<number> <unit>" string
// such as "5m", "5 meters", or "5 nautical miles" into a Length. It
// returns an error (never panics or exits) when the numeric prefix is
// malformed or the unit suffix is unrecognized, for callers that want to
// recover from bad input.
func TryParse(s string) (Length, error) {
	trimmed := strings.TrimSpace(s)
	numStr := numberPrefix.FindString(trimmed)
	if numStr == "" {
		return Length{}, simerrors.New(simerrors.NumericParse, fmt.Sprintf("no numeric prefix found in %q", s))
	}

	value, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return Length{}, simerrors.New(simerrors.NumericParse, fmt.Sprintf("malformed number %q in %q", numStr, s))
	}

	unitStr := strings.TrimSpace(trimmed[len(numStr):])
	if unitStr == "" {
		return Length{}, simerrors.New(simerrors.UnitParse, fmt.Sprintf("no unit found in %q", s))
	}

	unit, err := ParseUnit(unitStr)
	if err != nil {
		return Length{}, err
	}

	return New(value, unit), nil
}

// Parse is the infallible counterpart of TryParse: a malformed string is a
// fatal error, following the core's policy that the non-fallible
// constructors convert recoverable parse errors into process-terminating
// ones.
func Parse(s string) Length {
	l, err := TryParse(s)
	if err != nil {
		simerrors.Fatal(nil, "length.Parse", err)
	}
	return l
}

// TryParseValue is the explicit (value, unit-string) fallible constructor,
// distinct from TryParse's combined-string form.
func TryParseValue(value float64, unitToken string) (Length, error) {
	return FromUnitString(value, unitToken)
}
