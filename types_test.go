package osufile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecimalKeepsSourceSpelling(t *testing.T) {
	// Decimals serialize as written, trailing zeros and signs included.
	f := func(input string) {
		t.Helper()
		t.Run(input, func(t *testing.T) {
			d, err := parseDecimal(input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assert.Equal(t, input, d.String())
		})
	}

	f("1.20")
	f("0.70")
	f("172.51")
	f("-0.50")
	f("1000")
	f("346.820809248555")
}

func TestDecimalShiftKeepsScale(t *testing.T) {
	d, err := parseDecimal("1000.50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, "1024.50", d.addInt(24).String())

	d, err = parseDecimal("1000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, "976", d.addInt(-24).String())
}

func TestDecimalVerbatimText(t *testing.T) {
	d := parseDecimalLenient("NaN")
	if _, ok := d.Value(); ok {
		t.Errorf("expected no numeric value for verbatim text")
	}
	assert.Equal(t, "NaN", d.String())
	assert.Equal(t, "NaN", d.addInt(24).String())

	// The empty string is verbatim too, not zero.
	empty := parseDecimalLenient("")
	if _, ok := empty.Value(); ok {
		t.Errorf("expected no numeric value for empty text")
	}
	assert.Equal(t, "", empty.String())
	assert.True(t, empty.Equal(parseDecimalLenient("")))
	assert.False(t, empty.Equal(decimalFromInt(0)))
}
