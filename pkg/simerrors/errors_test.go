package simerrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(UnitParse, "unknown unit \"bogus\""),
			code:     UnitParse,
			expected: true,
		},
		{
			name:     "mismatched code",
			err:      New(NumericParse, "malformed number"),
			code:     UnitParse,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("parsing length: %w", New(DivByZero, "denominator is zero")),
			code:     DivByZero,
			expected: true,
		},
		{
			name:     "plain error",
			err:      fmt.Errorf("not a complex error"),
			code:     UnitParse,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasCode(tt.err, tt.code))
		})
	}
}

func TestComplexErrorMessage(t *testing.T) {
	err := New(SchedulerEmpty, "RemoveNext called on empty scheduler")
	assert.Contains(t, err.Error(), "SchedulerEmpty")
	assert.Contains(t, err.Error(), "RemoveNext called on empty scheduler")
}

func TestWrapErrorNil(t *testing.T) {
	assert.Nil(t, WrapError(nil))
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "UnitParse", UnitParse.String())
	assert.Equal(t, "RefcountUnderflow", RefcountUnderflow.String())
	assert.Contains(t, Code(99).String(), "Code(99)")
}
