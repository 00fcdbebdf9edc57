package osufile

import (
	"fmt"
	"strconv"
	"strings"
)

// Colours holds the [Colours] section: an ordered list of combo and skin
// colour overrides. The section does not exist before v5.
type Colours struct {
	Entries []Colour
}

// ColourKind distinguishes the colour entry variants.
type ColourKind int

const (
	ColourCombo ColourKind = iota
	ColourSliderTrackOverride
	ColourSliderBorder
)

// Colour is one entry of the [Colours] section.
type Colour struct {
	Kind  ColourKind
	Combo int // Combo number when Kind is ColourCombo.
	Rgb   Rgb

	wsKey   string // Whitespace between the key and the colon.
	wsValue string // Whitespace between the colon and the value.
	wsSet   bool   // Spacing was read from source rather than defaulted.
}

// Rgb is an 8-bit-per-channel colour.
type Rgb struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// parseRgb parses a `r,g,b` triple.
func parseRgb(s string) (Rgb, error) {
	f := newFields(s)
	channel := func(name string) (uint8, error) {
		field, ok := f.next()
		if !ok {
			return 0, fmt.Errorf("missing %s value", name)
		}
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 0 || n > 255 {
			return 0, fmt.Errorf("invalid %s value", name)
		}
		return uint8(n), nil
	}

	var (
		rgb Rgb
		err error
	)
	if rgb.Red, err = channel("red"); err != nil {
		return rgb, err
	}
	if rgb.Green, err = channel("green"); err != nil {
		return rgb, err
	}
	if rgb.Blue, err = channel("blue"); err != nil {
		return rgb, err
	}
	return rgb, nil
}

// String renders the triple.
func (c Rgb) String() string {
	return fmt.Sprintf("%d,%d,%d", c.Red, c.Green, c.Blue)
}

// parseColours parses the [Colours] section body. Returns nil below v5: the
// section does not exist there and its content is discarded.
func parseColours(body string, version Version) (*Colours, error) {
	if version.old() {
		return nil, nil
	}

	colours := &Colours{}
	for i, line := range splitLines(body) {
		if blankLine(line) {
			continue
		}
		entry, err := parseColour(line)
		if err != nil {
			return nil, errLine(err, i)
		}
		colours.Entries = append(colours.Entries, *entry)
	}
	return colours, nil
}

// parseColour parses one colour entry line, recording the spacing around the
// colon for round-tripping.
func parseColour(line string) (*Colour, error) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return nil, ErrMissingColon
	}

	rawKey := line[:i]
	key := strings.TrimRight(rawKey, " \t")
	rest := line[i+1:]
	value := strings.TrimLeft(rest, " \t")

	entry := &Colour{
		wsKey:   rawKey[len(key):],
		wsValue: rest[:len(rest)-len(value)],
		wsSet:   true,
	}

	switch {
	case strings.HasPrefix(key, "Combo"):
		n, err := strconv.Atoi(key[len("Combo"):])
		if err != nil {
			return nil, fmt.Errorf("%w `%s`", ErrInvalidKey, key)
		}
		entry.Kind = ColourCombo
		entry.Combo = n
	case key == "SliderTrackOverride":
		entry.Kind = ColourSliderTrackOverride
	case key == "SliderBorder":
		entry.Kind = ColourSliderBorder
	default:
		return nil, fmt.Errorf("%w `%s`", ErrInvalidKey, key)
	}

	rgb, err := parseRgb(value)
	if err != nil {
		return nil, err
	}
	entry.Rgb = rgb
	return entry, nil
}

// key returns the entry's serialized key.
func (c Colour) key() string {
	switch c.Kind {
	case ColourSliderTrackOverride:
		return "SliderTrackOverride"
	case ColourSliderBorder:
		return "SliderBorder"
	default:
		return "Combo" + strconv.Itoa(c.Combo)
	}
}

// render serializes the section body at the given version. The section is
// omitted below v5.
func (c *Colours) render(version Version) (string, bool) {
	if version.old() {
		return "", false
	}

	lines := make([]string, 0, len(c.Entries))
	for _, entry := range c.Entries {
		wsKey, wsValue := entry.wsKey, entry.wsValue
		if !entry.wsSet {
			// The game writes `Combo1 : 255,128,255`.
			wsKey, wsValue = " ", " "
		}
		lines = append(lines, entry.key()+wsKey+":"+wsValue+entry.Rgb.String())
	}
	return strings.Join(lines, "\n"), true
}
