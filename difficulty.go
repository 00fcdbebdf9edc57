package osufile

import (
	"fmt"
	"strings"
)

// Difficulty holds the [Difficulty] section.
type Difficulty struct {
	HPDrainRate       *Decimal
	CircleSize        *Decimal
	OverallDifficulty *Decimal
	ApproachRate      *Decimal
	SliderMultiplier  *Decimal
	SliderTickRate    *Decimal

	spacing fieldSpacing
}

// parseDifficulty parses the [Difficulty] section body. Files older than v5
// may omit the slider fields, which then default to 1.
func parseDifficulty(body string, version Version) (*Difficulty, error) {
	d := &Difficulty{spacing: fieldSpacing{}}
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
		d.spacing[key] = ws
		if err := d.setField(key, value); err != nil {
			return nil, errLine(err, i)
		}
	}

	if version.old() {
		one := decimalFromInt(1)
		if d.SliderMultiplier == nil {
			v := one
			d.SliderMultiplier = &v
		}
		if d.SliderTickRate == nil {
			v := one
			d.SliderTickRate = &v
		}
	}

	return d, nil
}

// setField parses a single key's value into its typed field.
func (d *Difficulty) setField(key, value string) error {
	set := func(dst **Decimal) error {
		v, err := parseDecimal(value)
		if err != nil {
			return invalidField(key, err)
		}
		*dst = &v
		return nil
	}

	switch key {
	case "HPDrainRate":
		return set(&d.HPDrainRate)
	case "CircleSize":
		return set(&d.CircleSize)
	case "OverallDifficulty":
		return set(&d.OverallDifficulty)
	case "ApproachRate":
		return set(&d.ApproachRate)
	case "SliderMultiplier":
		return set(&d.SliderMultiplier)
	case "SliderTickRate":
		return set(&d.SliderTickRate)
	default:
		return fmt.Errorf("%w `%s`", ErrInvalidKey, key)
	}
}

// render serializes the section body at the given version. Difficulty lines
// conventionally carry no space after the colon.
func (d *Difficulty) render(version Version) (string, bool) {
	var lines []string
	add := func(key string, value *Decimal) {
		if value == nil {
			return
		}
		lines = append(lines, key+":"+d.spacing.get(key, "")+value.String())
	}

	add("HPDrainRate", d.HPDrainRate)
	add("CircleSize", d.CircleSize)
	add("OverallDifficulty", d.OverallDifficulty)
	add("ApproachRate", d.ApproachRate)
	add("SliderMultiplier", d.SliderMultiplier)
	add("SliderTickRate", d.SliderTickRate)

	return strings.Join(lines, "\n"), true
}
