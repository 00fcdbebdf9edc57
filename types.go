package osufile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Version identifies the file format version a document is parsed and
// serialized at.
type Version int

const (
	// MinVersion is the oldest file format version still found in the wild.
	MinVersion Version = 3
	// LatestVersion is the current file format version.
	LatestVersion Version = 14
)

// decimalHundred is shared by the slider velocity computation.
var decimalHundred = decimal.NewFromInt(100)

// oldVersionTimeOffset is the millisecond shift the game applied to event and
// timing point times in v3 and v4 files. It is added on parse and subtracted
// on serialization.
const oldVersionTimeOffset = 24

// old reports whether the version uses the shifted time base.
func (v Version) old() bool {
	return v < 5
}

// valid reports whether v is a known file format version.
func (v Version) valid() bool {
	return v >= MinVersion && v <= LatestVersion
}

// Decimal is an exact base-10 number that remembers its source spelling, so
// values like `1.20` or `0.70` serialize byte-for-byte instead of losing
// their trailing zeros. Source text that does not parse as a number at all is
// kept verbatim and re-emitted unchanged.
type Decimal struct {
	value    decimal.Decimal
	raw      string // Source spelling; empty for values built in code.
	verbatim bool   // raw is not numeric and is all there is.
}

// parseDecimal parses a decimal value, failing on non-numeric text.
func parseDecimal(s string) (Decimal, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{value: v, raw: s}, nil
}

// parseDecimalLenient parses a decimal value, keeping non-numeric text
// verbatim instead of failing. The empty string is verbatim too.
func parseDecimalLenient(s string) Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{raw: s, verbatim: true}
	}
	return Decimal{value: v, raw: s}
}

// decimalFromInt creates a Decimal holding n.
func decimalFromInt(n int64) Decimal {
	return Decimal{value: decimal.NewFromInt(n)}
}

// Value returns the numeric value. ok is false for verbatim text.
func (d Decimal) Value() (decimal.Decimal, bool) {
	return d.value, !d.verbatim
}

// addInt shifts a numeric value by n, keeping the decimal places of the
// source spelling. Verbatim text passes through unchanged.
func (d Decimal) addInt(n int64) Decimal {
	if d.verbatim {
		return d
	}
	sum := d.value.Add(decimal.NewFromInt(n))
	out := Decimal{value: sum}
	if exp := sum.Exponent(); exp < 0 {
		out.raw = sum.StringFixed(-exp)
	}
	return out
}

// Equal reports whether two decimals hold the same value or verbatim text.
func (d Decimal) Equal(o Decimal) bool {
	if d.verbatim || o.verbatim {
		return d.verbatim == o.verbatim && d.raw == o.raw
	}
	return d.value.Equal(o.value)
}

// String renders the source spelling when one is known, the plain numeric
// form otherwise.
func (d Decimal) String() string {
	if d.verbatim || d.raw != "" {
		return d.raw
	}
	return d.value.String()
}

// Position is a coordinate in osu!pixels.
type Position struct {
	X Decimal
	Y Decimal
}

// FilePath is a path value that remembers whether the source wrapped it in
// double quotes, so serialization reproduces the original form.
type FilePath struct {
	path   string
	quoted bool
}

// parseFilePath reads a path field, stripping one pair of surrounding quotes.
func parseFilePath(s string) FilePath {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return FilePath{path: s[1 : len(s)-1], quoted: true}
	}
	return FilePath{path: s}
}

// Path returns the path without quotes.
func (f FilePath) Path() string {
	return f.path
}

// SetPath replaces the path, keeping the quoting preference.
func (f *FilePath) SetPath(p string) {
	f.path = p
}

// String renders the path, quoting it when the source was quoted or when the
// path contains spaces.
func (f FilePath) String() string {
	if f.quoted || strings.Contains(f.path, " ") {
		return `"` + f.path + `"`
	}
	return f.path
}

// SampleBank selects the audio family for hit sounds, in the integer spelling
// shared by timing points, hit samples and slider edge sets.
type SampleBank int

const (
	BankDefault SampleBank = iota // Use the governing timing point's sample set.
	BankNormal
	BankSoft
	BankDrum
)

// parseSampleBank parses a sample bank index, rejecting values outside 0-3.
func parseSampleBank(s string) (SampleBank, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 3 {
		return 0, fmt.Errorf("sample set index %d out of range", n)
	}
	return SampleBank(n), nil
}

// String renders the bank as its index.
func (b SampleBank) String() string {
	return strconv.Itoa(int(b))
}
