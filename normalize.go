package osufile

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// keyValueSections names the sections whose bodies are `key:value` lines and
// therefore order-insensitive.
var keyValueSections = map[string]bool{
	"General":    true,
	"Editor":     true,
	"Metadata":   true,
	"Difficulty": true,
	"Colours":    true,
	"Variables":  true,
}

// Canonicalise normalizes a document for comparison: the byte order mark and
// blank lines are dropped, and within key:value sections the whitespace
// around the first colon is removed and the lines sorted. Record sections
// keep their line order.
func Canonicalise(s string) string {
	lines := splitLines(stripBOM(s))

	var out []string
	var kv []string
	inKV := false
	flush := func() {
		sort.Strings(kv)
		out = append(out, kv...)
		kv = kv[:0]
	}

	for _, line := range lines {
		if blankLine(line) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			flush()
			out = append(out, trimmed)
			inKV = keyValueSections[trimmed[1:len(trimmed)-1]]
			continue
		}
		if inKV {
			if key, _, value, ok := keyValue(line); ok {
				kv = append(kv, strings.TrimSpace(key)+":"+value)
				continue
			}
		}
		out = append(out, line)
	}
	flush()

	return strings.Join(out, "\n") + "\n"
}

// Equivalent reports whether two documents are equal after canonicalisation.
func Equivalent(a, b string) bool {
	return Canonicalise(a) == Canonicalise(b)
}

// AssertEquivalent fails the test when the two documents differ after
// canonicalisation, reporting whether they matched.
func AssertEquivalent(t testing.TB, want, got string) bool {
	t.Helper()
	return assert.Equal(t, Canonicalise(want), Canonicalise(got))
}
