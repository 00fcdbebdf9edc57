package osufile

import (
	"fmt"
	"strconv"
	"strings"
)

// HitObjects holds the [HitObjects] section.
type HitObjects struct {
	Objects []HitObject
}

// HitObject is one playable object. The variant-specific data lives in
// Params; the shared fields come from the common comma prefix of the record.
type HitObject struct {
	Position       Position
	Time           int
	Params         HitObjectParams
	NewCombo       bool
	ComboSkipCount int // How many combo colours to skip, 0-7.
	HitSound       HitSound
	HitSample      *HitSample // nil when the record carried no sample block.
}

// HitObjectParams is the variant-specific payload of a hit object.
type HitObjectParams interface {
	// typeBits returns the variant's bit in the type field.
	typeBits() int
}

// HitCircle has no fields beyond the shared prefix.
type HitCircle struct{}

// Slider carries the curve geometry and per-edge sounds.
type Slider struct {
	CurveType   CurveType
	CurvePoints []Position
	Slides      int
	Length      Decimal
	EdgeSounds  []HitSound
	EdgeSets    []EdgeSet
}

// Spinner spins until EndTime.
type Spinner struct {
	EndTime int
}

// ManiaHold is an osu!mania hold note ending at EndTime.
type ManiaHold struct {
	EndTime int
}

const (
	typeBitCircle   = 1 << 0
	typeBitSlider   = 1 << 1
	typeBitNewCombo = 1 << 2
	typeBitSpinner  = 1 << 3
	typeBitHold     = 1 << 7
	comboSkipShift  = 4
	comboSkipMask   = 0b111
)

func (HitCircle) typeBits() int { return typeBitCircle }
func (Slider) typeBits() int    { return typeBitSlider }
func (Spinner) typeBits() int   { return typeBitSpinner }
func (ManiaHold) typeBits() int { return typeBitHold }

// HitSound is the 4-bit hit sound flag set of a hit object or slider edge.
type HitSound uint8

const (
	HitSoundNormal HitSound = 1 << iota
	HitSoundWhistle
	HitSoundFinish
	HitSoundClap
)

// parseHitSound parses the integer hit sound spelling. Bits outside the four
// flags are dropped.
func parseHitSound(s string) (HitSound, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 255 {
		return 0, errOutOfRange(n)
	}
	return HitSound(n) & 0b1111, nil
}

// Normal reports whether the normal sound plays. An empty flag set still
// plays the normal sound, so this reports true when no flag is stored even
// though the stored value serializes as 0.
func (h HitSound) Normal() bool {
	return h&0b1111 == 0 || h&HitSoundNormal != 0
}

// Whistle reports whether the whistle sound plays.
func (h HitSound) Whistle() bool { return h&HitSoundWhistle != 0 }

// Finish reports whether the finish sound plays.
func (h HitSound) Finish() bool { return h&HitSoundFinish != 0 }

// Clap reports whether the clap sound plays.
func (h HitSound) Clap() bool { return h&HitSoundClap != 0 }

// String renders the raw flag bits.
func (h HitSound) String() string {
	return strconv.Itoa(int(h))
}

// HitSample selects the samples played when the object is hit. Zero Index
// and Volume defer to the governing timing point.
type HitSample struct {
	NormalSet   SampleBank
	AdditionSet SampleBank
	Index       int
	Volume      int
	Filename    string
}

// parseHitSample parses the trailing sample block. Versions 10-11 carry
// three colon fields; v12+ carries five, with the filename free to contain
// further colons. Empty fields default to zero values.
func parseHitSample(s string, version Version) (*HitSample, error) {
	hs := &HitSample{}

	var parts []string
	if version >= 12 {
		parts = strings.SplitN(s, ":", 5)
	} else {
		parts = strings.Split(s, ":")
		if len(parts) > 3 {
			return nil, fmt.Errorf("too many hit sample fields for v%d", version)
		}
	}

	bank := func(field, name string) (SampleBank, error) {
		if field == "" {
			return BankDefault, nil
		}
		b, err := parseSampleBank(field)
		if err != nil {
			return 0, invalidField(name, err)
		}
		return b, nil
	}

	var err error
	if len(parts) > 0 {
		if hs.NormalSet, err = bank(parts[0], "NormalSet"); err != nil {
			return nil, err
		}
	}
	if len(parts) > 1 {
		if hs.AdditionSet, err = bank(parts[1], "AdditionSet"); err != nil {
			return nil, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if hs.Index, err = strconv.Atoi(parts[2]); err != nil {
			return nil, invalidField("Index", err)
		}
	}
	if len(parts) > 3 && parts[3] != "" {
		n, err := strconv.Atoi(parts[3])
		if err != nil {
			return nil, invalidField("Volume", err)
		}
		if n < 0 || n > 100 {
			return nil, invalidField("Volume", errOutOfRange(n))
		}
		hs.Volume = n
	}
	if len(parts) > 4 {
		hs.Filename = parts[4]
	}
	return hs, nil
}

// render serializes the sample block. Versions up to 9 have no block at all.
func (hs HitSample) render(version Version) (string, bool) {
	if version <= 9 {
		return "", false
	}
	base := fmt.Sprintf("%d:%d:%d", hs.NormalSet, hs.AdditionSet, hs.Index)
	if version <= 11 {
		return base, true
	}
	return fmt.Sprintf("%s:%d:%s", base, hs.Volume, hs.Filename), true
}

// EdgeSet is a slider edge's `normal:addition` sample bank pair.
type EdgeSet struct {
	NormalSet   SampleBank
	AdditionSet SampleBank
}

// parseEdgeSet parses one `normal:addition` pair.
func parseEdgeSet(s string) (EdgeSet, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return EdgeSet{}, fmt.Errorf("expected `normal:addition` pair, got %q", s)
	}
	normal, err := parseSampleBank(parts[0])
	if err != nil {
		return EdgeSet{}, invalidField("NormalSet", err)
	}
	addition, err := parseSampleBank(parts[1])
	if err != nil {
		return EdgeSet{}, invalidField("AdditionSet", err)
	}
	return EdgeSet{NormalSet: normal, AdditionSet: addition}, nil
}

// String renders the pair.
func (e EdgeSet) String() string {
	return e.NormalSet.String() + ":" + e.AdditionSet.String()
}

// CurveType is a slider's curve interpolation.
type CurveType byte

const (
	CurveBezier  CurveType = 'B'
	CurveCatmull CurveType = 'C'
	CurveLinear  CurveType = 'L'
	CurvePerfect CurveType = 'P'
)

// parseCurveType parses the single-letter curve spelling.
func parseCurveType(s string) (CurveType, error) {
	switch s {
	case "B":
		return CurveBezier, nil
	case "C":
		return CurveCatmull, nil
	case "L":
		return CurveLinear, nil
	case "P":
		return CurvePerfect, nil
	}
	return 0, fmt.Errorf("unknown curve type %q", s)
}

// String renders the curve letter.
func (c CurveType) String() string {
	return string(rune(c))
}

// parseCurvePoint parses one `x:y` anchor.
func parseCurvePoint(s string) (Position, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("expected `x:y` pair, got %q", s)
	}
	x, err := parseDecimal(parts[0])
	if err != nil {
		return Position{}, invalidField("X", err)
	}
	y, err := parseDecimal(parts[1])
	if err != nil {
		return Position{}, invalidField("Y", err)
	}
	return Position{X: x, Y: y}, nil
}

// parseHitObjects parses the [HitObjects] section body.
func parseHitObjects(body string, version Version) (*HitObjects, error) {
	hos := &HitObjects{}
	for i, line := range splitLines(body) {
		if blankLine(line) {
			continue
		}
		ho, err := parseHitObject(line, version)
		if err != nil {
			return nil, errLine(err, i)
		}
		hos.Objects = append(hos.Objects, *ho)
	}
	return hos, nil
}

// parseHitObject parses one object record. The lowest set variant bit of the
// type field picks the sub-grammar; circle wins over slider over spinner over
// mania hold when several are set.
func parseHitObject(line string, version Version) (*HitObject, error) {
	f := newFields(line)

	decField := func(name string) (Decimal, error) {
		field, ok := f.next()
		if !ok {
			return Decimal{}, missingField(name)
		}
		d, err := parseDecimal(strings.TrimSpace(field))
		if err != nil {
			return Decimal{}, invalidField(name, err)
		}
		return d, nil
	}
	intField := func(name string) (int, error) {
		field, ok := f.next()
		if !ok {
			return 0, missingField(name)
		}
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return 0, invalidField(name, err)
		}
		return n, nil
	}

	x, err := decField("X")
	if err != nil {
		return nil, err
	}
	y, err := decField("Y")
	if err != nil {
		return nil, err
	}
	time, err := intField("Time")
	if err != nil {
		return nil, err
	}
	objType, err := intField("ObjType")
	if err != nil {
		return nil, err
	}
	hitSoundField, ok := f.next()
	if !ok {
		return nil, missingField("HitSound")
	}
	hitSound, err := parseHitSound(strings.TrimSpace(hitSoundField))
	if err != nil {
		return nil, invalidField("HitSound", err)
	}

	ho := &HitObject{
		Position:       Position{X: x, Y: y},
		Time:           time,
		NewCombo:       objType&typeBitNewCombo != 0,
		ComboSkipCount: (objType >> comboSkipShift) & comboSkipMask,
		HitSound:       hitSound,
	}

	// Optional trailing sample block shared by circle and spinner.
	sampleField := func() error {
		field, ok := f.next()
		if !ok {
			return nil
		}
		hs, err := parseHitSample(field, version)
		if err != nil {
			return err
		}
		ho.HitSample = hs
		return nil
	}

	switch {
	case objType&typeBitCircle != 0:
		ho.Params = HitCircle{}
		if err := sampleField(); err != nil {
			return nil, err
		}

	case objType&typeBitSlider != 0:
		slider, err := parseSliderParams(f, version, ho)
		if err != nil {
			return nil, err
		}
		ho.Params = *slider

	case objType&typeBitSpinner != 0:
		endTime, err := intField("EndTime")
		if err != nil {
			return nil, err
		}
		ho.Params = Spinner{EndTime: endTime}
		if err := sampleField(); err != nil {
			return nil, err
		}

	case objType&typeBitHold != 0:
		rest, ok := f.remainder()
		if !ok {
			return nil, missingField("EndTime")
		}
		endTimeField, sample, hasSample := strings.Cut(rest, ":")
		endTime, err := strconv.Atoi(strings.TrimSpace(endTimeField))
		if err != nil {
			return nil, invalidField("EndTime", err)
		}
		ho.Params = ManiaHold{EndTime: endTime}
		if hasSample {
			hs, err := parseHitSample(sample, version)
			if err != nil {
				return nil, err
			}
			ho.HitSample = hs
		}

	default:
		return nil, fmt.Errorf("%w %d", ErrUnknownObjType, objType)
	}

	return ho, nil
}

// parseSliderParams parses the slider sub-grammar after the shared prefix:
// curve, slides, length, then optional edge sounds, edge sets and sample.
func parseSliderParams(f *fields, version Version, ho *HitObject) (*Slider, error) {
	curveField, ok := f.next()
	if !ok {
		return nil, missingField("CurveType")
	}
	curveParts := strings.Split(curveField, "|")
	curveType, err := parseCurveType(curveParts[0])
	if err != nil {
		return nil, invalidField("CurveType", err)
	}
	slider := &Slider{CurveType: curveType}
	for _, part := range curveParts[1:] {
		point, err := parseCurvePoint(part)
		if err != nil {
			return nil, invalidField("CurvePoints", err)
		}
		slider.CurvePoints = append(slider.CurvePoints, point)
	}

	slidesField, ok := f.next()
	if !ok {
		return nil, missingField("Slides")
	}
	if slider.Slides, err = strconv.Atoi(strings.TrimSpace(slidesField)); err != nil {
		return nil, invalidField("Slides", err)
	}

	lengthField, ok := f.next()
	if !ok {
		return nil, missingField("Length")
	}
	if slider.Length, err = parseDecimal(strings.TrimSpace(lengthField)); err != nil {
		return nil, invalidField("Length", err)
	}

	if field, ok := f.next(); ok {
		for _, part := range pipeList(field) {
			sound, err := parseHitSound(part)
			if err != nil {
				return nil, invalidField("EdgeSounds", err)
			}
			slider.EdgeSounds = append(slider.EdgeSounds, sound)
		}
	}
	if field, ok := f.next(); ok {
		for _, part := range pipeList(field) {
			set, err := parseEdgeSet(part)
			if err != nil {
				return nil, invalidField("EdgeSets", err)
			}
			slider.EdgeSets = append(slider.EdgeSets, set)
		}
	}
	if field, ok := f.next(); ok {
		hs, err := parseHitSample(field, version)
		if err != nil {
			return nil, err
		}
		ho.HitSample = hs
	}

	return slider, nil
}

// typeByte reconstructs the type field from the variant, new-combo flag and
// combo skip count.
func (h HitObject) typeByte() int {
	bits := h.Params.typeBits()
	if h.NewCombo {
		bits |= typeBitNewCombo
	}
	bits |= (h.ComboSkipCount & comboSkipMask) << comboSkipShift
	return bits
}

// render serializes one object record at the given version.
func (h HitObject) render(version Version) (string, bool) {
	out := []string{
		h.Position.X.String(),
		h.Position.Y.String(),
		strconv.Itoa(h.Time),
		strconv.Itoa(h.typeByte()),
		h.HitSound.String(),
	}

	sample := ""
	hasSample := false
	if h.HitSample != nil {
		sample, hasSample = h.HitSample.render(version)
	}

	switch p := h.Params.(type) {
	case HitCircle:
		if hasSample {
			out = append(out, sample)
		}

	case Slider:
		curve := make([]string, 0, len(p.CurvePoints)+1)
		curve = append(curve, p.CurveType.String())
		for _, point := range p.CurvePoints {
			curve = append(curve, point.X.String()+":"+point.Y.String())
		}
		out = append(out, strings.Join(curve, "|"), strconv.Itoa(p.Slides), p.Length.String())

		// The trailing fields are positional: the sample block cannot be
		// written without the edge lists before it.
		if len(p.EdgeSounds) > 0 || len(p.EdgeSets) > 0 || hasSample {
			sounds := make([]string, len(p.EdgeSounds))
			for i, sound := range p.EdgeSounds {
				sounds[i] = sound.String()
			}
			sets := make([]string, len(p.EdgeSets))
			for i, set := range p.EdgeSets {
				sets[i] = set.String()
			}
			out = append(out, strings.Join(sounds, "|"), strings.Join(sets, "|"))
			if hasSample {
				out = append(out, sample)
			}
		}

	case Spinner:
		out = append(out, strconv.Itoa(p.EndTime))
		if hasSample {
			out = append(out, sample)
		}

	case ManiaHold:
		last := strconv.Itoa(p.EndTime)
		if hasSample {
			last += ":" + sample
		}
		out = append(out, last)
	}

	return strings.Join(out, ","), true
}

// render serializes the section body at the given version.
func (hos *HitObjects) render(version Version) (string, bool) {
	lines := make([]string, 0, len(hos.Objects))
	for _, ho := range hos.Objects {
		if line, ok := ho.render(version); ok {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), true
}
