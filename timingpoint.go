package osufile

import (
	"strconv"
	"strings"
)

// TimingPoints holds the [TimingPoints] section.
type TimingPoints struct {
	Points []TimingPoint
}

// TimingPoint is one tempo or slider velocity control point. An uninherited
// point's BeatLength is milliseconds per beat; an inherited point's is a
// negative slider velocity factor.
type TimingPoint struct {
	Time        Decimal
	BeatLength  Decimal // Kept verbatim when the source text is not numeric.
	Meter       int
	SampleSet   SampleBank
	SampleIndex int // 0 selects the game's built-in hitsounds.
	Volume      int
	Uninherited bool
	Effects     Effects
}

// Effects is the timing point effects bit field. Unused bits are preserved
// across a round trip.
type Effects uint32

const (
	effectKiai             Effects = 1 << 0
	effectOmitFirstBarline Effects = 1 << 3
)

// Kiai reports whether kiai time is enabled.
func (e Effects) Kiai() bool {
	return e&effectKiai != 0
}

// OmitFirstBarline reports whether the first barline is omitted.
func (e Effects) OmitFirstBarline() bool {
	return e&effectOmitFirstBarline != 0
}

// SetKiai sets the kiai time flag.
func (e *Effects) SetKiai(on bool) {
	if on {
		*e |= effectKiai
	} else {
		*e &^= effectKiai
	}
}

// SetOmitFirstBarline sets the omit-first-barline flag.
func (e *Effects) SetOmitFirstBarline(on bool) {
	if on {
		*e |= effectOmitFirstBarline
	} else {
		*e &^= effectOmitFirstBarline
	}
}

// SliderVelocityMultiplier returns the velocity factor of an inherited point.
// ok is false for uninherited points and verbatim beat lengths.
func (tp TimingPoint) SliderVelocityMultiplier() (Decimal, bool) {
	if tp.Uninherited {
		return Decimal{}, false
	}
	v, ok := tp.BeatLength.Value()
	if !ok || v.IsZero() {
		return Decimal{}, false
	}
	return Decimal{value: decimalHundred.Div(v).Neg()}, true
}

// parseTimingPoints parses the [TimingPoints] section body.
func parseTimingPoints(body string, version Version) (*TimingPoints, error) {
	tps := &TimingPoints{}
	for i, line := range splitLines(body) {
		if blankLine(line) {
			continue
		}
		tp, err := parseTimingPoint(line, version)
		if err != nil {
			return nil, errLine(err, i)
		}
		tps.Points = append(tps.Points, *tp)
	}
	return tps, nil
}

// parseTimingPoint parses one timing point record. Fields past BeatLength may
// be absent and take their defaults; which fields exist depends on version.
func parseTimingPoint(line string, version Version) (*TimingPoint, error) {
	tp := &TimingPoint{
		Meter:       4,
		SampleSet:   BankNormal,
		SampleIndex: 1,
		Volume:      100,
		Uninherited: true,
	}
	f := newFields(line)

	timeField, ok := f.next()
	if !ok {
		return nil, missingField("Time")
	}
	t, err := parseDecimal(strings.TrimSpace(timeField))
	if err != nil {
		return nil, invalidField("Time", err)
	}
	if version.old() {
		t = t.addInt(oldVersionTimeOffset)
	}
	tp.Time = t

	var beat string
	if version == 3 {
		beat, ok = f.remainder()
	} else {
		beat, ok = f.next()
	}
	if !ok {
		return nil, missingField("BeatLength")
	}
	tp.BeatLength = parseDecimalLenient(beat)

	if version >= 4 {
		if field, ok := f.next(); ok {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, invalidField("Meter", err)
			}
			tp.Meter = n
		}
		if field, ok := f.next(); ok {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, invalidField("SampleSet", err)
			}
			tp.SampleSet = SampleBank(n)
		}
		var idx string
		if version == 4 {
			idx, ok = f.remainder()
		} else {
			idx, ok = f.next()
		}
		if ok {
			n, err := strconv.Atoi(idx)
			if err != nil {
				return nil, invalidField("SampleIndex", err)
			}
			tp.SampleIndex = n
		}
	}

	if version >= 5 {
		var vol string
		if version == 5 {
			vol, ok = f.remainder()
		} else {
			vol, ok = f.next()
		}
		if ok {
			n, err := strconv.Atoi(vol)
			if err != nil {
				return nil, invalidField("Volume", err)
			}
			if n < 0 || n > 100 {
				return nil, invalidField("Volume", errOutOfRange(n))
			}
			tp.Volume = n
		}
	}

	if version >= 6 {
		if field, ok := f.next(); ok {
			b, err := parseBool01(field)
			if err != nil {
				return nil, invalidField("Uninherited", err)
			}
			tp.Uninherited = b
		}
		if field, ok := f.remainder(); ok {
			n, err := strconv.ParseUint(field, 10, 32)
			if err != nil {
				return nil, invalidField("Effects", err)
			}
			tp.Effects = Effects(n)
		}
	}

	return tp, nil
}

// render serializes one timing point record at the given version.
func (tp TimingPoint) render(version Version) (string, bool) {
	t := tp.Time
	if version.old() {
		t = t.addInt(-oldVersionTimeOffset)
	}

	out := []string{t.String(), tp.BeatLength.String()}
	if version >= 4 {
		out = append(out, strconv.Itoa(tp.Meter), tp.SampleSet.String(), strconv.Itoa(tp.SampleIndex))
	}
	if version >= 5 {
		out = append(out, strconv.Itoa(tp.Volume))
	}
	if version >= 6 {
		out = append(out, boolStr(tp.Uninherited), strconv.FormatUint(uint64(tp.Effects), 10))
	}
	return strings.Join(out, ","), true
}

// render serializes the section body at the given version.
func (tps *TimingPoints) render(version Version) (string, bool) {
	lines := make([]string, 0, len(tps.Points))
	for _, tp := range tps.Points {
		if line, ok := tp.render(version); ok {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), true
}
