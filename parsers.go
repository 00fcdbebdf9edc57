package osufile

import (
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// stripBOM removes a leading UTF-8 byte order mark if present.
func stripBOM(s string) string {
	out, _, err := transform.String(unicode.UTF8BOM.NewDecoder(), s)
	if err != nil {
		return strings.TrimPrefix(s, "\ufeff")
	}
	return out
}

// splitLines splits s on newlines, accepting both `\n` and `\r\n` endings.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// fields is a cursor over the comma-separated fields of a record line.
type fields struct {
	rest string
	done bool
}

// newFields creates a cursor over the fields of line.
func newFields(line string) *fields {
	return &fields{rest: line}
}

// next consumes and returns the next field. ok is false once the line is
// exhausted.
func (f *fields) next() (field string, ok bool) {
	if f.done {
		return "", false
	}
	if i := strings.IndexByte(f.rest, ','); i >= 0 {
		field = f.rest[:i]
		f.rest = f.rest[i+1:]
		return field, true
	}
	field = f.rest
	f.rest = ""
	f.done = true
	return field, true
}

// remainder consumes and returns everything left on the line, commas included.
func (f *fields) remainder() (string, bool) {
	if f.done {
		return "", false
	}
	rest := f.rest
	f.rest = ""
	f.done = true
	return rest, true
}

// more reports whether any field remains.
func (f *fields) more() bool {
	return !f.done
}

// keyValue splits a `key:value` line. The key has trailing whitespace
// trimmed; ws is the whitespace found between the colon and the value, kept
// so serialization can reproduce the original spacing.
func keyValue(line string) (key, ws, value string, ok bool) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", "", "", false
	}
	key = strings.TrimRight(line[:i], " \t")
	rest := line[i+1:]
	value = strings.TrimLeft(rest, " \t")
	ws = rest[:len(rest)-len(value)]
	return key, ws, value, true
}

// pipeList splits s on `|`. Empty input yields no elements.
func pipeList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "|")
}

// countIndent counts the leading indentation characters of a storyboard
// command line. Spaces and underscores both indent.
func countIndent(line string) int {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '_') {
		n++
	}
	return n
}

// parseBool01 parses the `0`/`1` boolean spelling used throughout the format.
func parseBool01(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, ErrInvalidBool
}

// boolStr renders a boolean in its `0`/`1` spelling.
func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// joinInts renders ints comma-joined, as bookmark lists are serialized.
func joinInts(ns []int, sep string) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, sep)
}

// blankLine reports whether line contains only whitespace.
func blankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// fieldSpacing remembers, per field key, the whitespace observed between the
// colon and the value, so re-serialization reproduces the original spacing.
type fieldSpacing map[string]string

// get returns the recorded spacing for key, or def when none was observed.
func (fs fieldSpacing) get(key, def string) string {
	if ws, ok := fs[key]; ok {
		return ws
	}
	return def
}
