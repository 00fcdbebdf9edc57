package osufile

import (
	"fmt"
	"strconv"
	"strings"
)

// Editor holds the [Editor] section: saved editor state, not gameplay data.
type Editor struct {
	Bookmarks       []int
	DistanceSpacing *Decimal
	BeatDivisor     *Decimal
	GridSize        *int
	TimelineZoom    *Decimal
	CurrentTime     *int

	spacing fieldSpacing
}

// parseBookmarks parses the comma-joined bookmark time list.
func parseBookmarks(s string) ([]int, error) {
	var bookmarks []int
	for _, field := range strings.Split(s, ",") {
		if field == "" {
			return nil, ErrInvalidCommaList
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, n)
	}
	return bookmarks, nil
}

// parseEditor parses the [Editor] section body.
func parseEditor(body string, version Version) (*Editor, error) {
	e := &Editor{spacing: fieldSpacing{}}
	seen := map[string]bool{}
	for i, line := range splitLines(body) {
		if blankLine(line) {
			continue
		}
		key, ws, value, ok := keyValue(line)
		if !ok {
			return nil, errLine(ErrMissingColon, i)
		}
		if seen[key] {
			return nil, errLine(fmt.Errorf("%w %s", ErrDuplicateField, key), i)
		}
		seen[key] = true
		e.spacing[key] = ws
		if err := e.setField(key, value); err != nil {
			return nil, errLine(err, i)
		}
	}
	return e, nil
}

// setField parses a single key's value into its typed field.
func (e *Editor) setField(key, value string) error {
	setDec := func(dst **Decimal) error {
		d, err := parseDecimal(value)
		if err != nil {
			return invalidField(key, err)
		}
		*dst = &d
		return nil
	}

	switch key {
	case "Bookmarks":
		bookmarks, err := parseBookmarks(value)
		if err != nil {
			return invalidField(key, err)
		}
		e.Bookmarks = bookmarks
	case "DistanceSpacing":
		return setDec(&e.DistanceSpacing)
	case "BeatDivisor":
		return setDec(&e.BeatDivisor)
	case "GridSize":
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalidField(key, err)
		}
		e.GridSize = &n
	case "TimelineZoom":
		return setDec(&e.TimelineZoom)
	case "CurrentTime":
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalidField(key, err)
		}
		e.CurrentTime = &n
	default:
		return fmt.Errorf("%w `%s`", ErrInvalidKey, key)
	}
	return nil
}

// render serializes the section body at the given version.
func (e *Editor) render(version Version) (string, bool) {
	var lines []string
	add := func(key, value string) {
		lines = append(lines, key+":"+e.spacing.get(key, " ")+value)
	}

	if e.Bookmarks != nil {
		add("Bookmarks", joinInts(e.Bookmarks, ","))
	}
	if e.DistanceSpacing != nil {
		add("DistanceSpacing", e.DistanceSpacing.String())
	}
	if e.BeatDivisor != nil {
		add("BeatDivisor", e.BeatDivisor.String())
	}
	if e.GridSize != nil {
		add("GridSize", strconv.Itoa(*e.GridSize))
	}
	if e.TimelineZoom != nil {
		add("TimelineZoom", e.TimelineZoom.String())
	}
	if e.CurrentTime != nil {
		add("CurrentTime", strconv.Itoa(*e.CurrentTime))
	}

	return strings.Join(lines, "\n"), true
}
