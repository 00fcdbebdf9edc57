package osufile

import (
	"fmt"
	"strconv"
	"strings"
)

// General holds the [General] section. Every field is optional; a nil field
// was absent from the input and is omitted on serialization.
type General struct {
	AudioFilename            *FilePath
	AudioLeadIn              *int
	AudioHash                *string // Deprecated by the game; gone in v14.
	PreviewTime              *int
	Countdown                *Countdown
	SampleSet                *SampleSet
	StackLeniency            *Decimal
	Mode                     *Mode
	LetterboxInBreaks        *bool
	StoryFireInFront         *bool
	UseSkinSprites           *bool
	AlwaysShowPlayfield      *bool
	OverlayPosition          *OverlayPosition
	SkinPreference           *string
	EpilepsyWarning          *bool
	CountdownOffset          *int
	SpecialStyle             *bool
	WidescreenStoryboard     *bool
	SamplesMatchPlaybackRate *bool

	spacing fieldSpacing
}

// Countdown is the countdown speed before the first hit object.
type Countdown int

const (
	NoCountdown Countdown = iota
	CountdownNormal
	CountdownHalf
	CountdownDouble
)

// parseCountdown parses the integer countdown spelling.
func parseCountdown(s string) (Countdown, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 3 {
		return 0, fmt.Errorf("unknown countdown speed %d", n)
	}
	return Countdown(n), nil
}

// String renders the countdown as its index.
func (c Countdown) String() string {
	return strconv.Itoa(int(c))
}

// SampleSet is the default sample set for hit objects, in its named spelling.
type SampleSet int

const (
	SampleSetNormal SampleSet = iota
	SampleSetSoft
	SampleSetDrum
)

// parseSampleSet parses the named sample set spelling.
func parseSampleSet(s string) (SampleSet, error) {
	switch s {
	case "Normal":
		return SampleSetNormal, nil
	case "Soft":
		return SampleSetSoft, nil
	case "Drum":
		return SampleSetDrum, nil
	}
	return 0, fmt.Errorf("unknown sample set %q", s)
}

// String renders the sample set name.
func (s SampleSet) String() string {
	switch s {
	case SampleSetSoft:
		return "Soft"
	case SampleSetDrum:
		return "Drum"
	default:
		return "Normal"
	}
}

// Mode is the game mode the beatmap targets.
type Mode int

const (
	ModeOsu Mode = iota
	ModeTaiko
	ModeCatch
	ModeMania
)

// parseMode parses the integer game mode spelling.
func parseMode(s string) (Mode, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 3 {
		return 0, fmt.Errorf("unknown game mode %d", n)
	}
	return Mode(n), nil
}

// String renders the mode as its index.
func (m Mode) String() string {
	return strconv.Itoa(int(m))
}

// OverlayPosition controls draw order of hit circle overlays.
type OverlayPosition int

const (
	OverlayNoChange OverlayPosition = iota
	OverlayBelow
	OverlayAbove
)

// parseOverlayPosition parses the named overlay position spelling.
func parseOverlayPosition(s string) (OverlayPosition, error) {
	switch s {
	case "NoChange":
		return OverlayNoChange, nil
	case "Below":
		return OverlayBelow, nil
	case "Above":
		return OverlayAbove, nil
	}
	return 0, fmt.Errorf("unknown overlay position %q", s)
}

// String renders the overlay position name.
func (o OverlayPosition) String() string {
	switch o {
	case OverlayBelow:
		return "Below"
	case OverlayAbove:
		return "Above"
	default:
		return "NoChange"
	}
}

// defaultGeneral returns the game's default General values at the version.
func defaultGeneral(version Version) *General {
	leadIn := 0
	preview := -1
	stack, _ := parseDecimal("0.7")
	mode := ModeOsu
	fire := true
	g := &General{
		AudioLeadIn:      &leadIn,
		PreviewTime:      &preview,
		StackLeniency:    &stack,
		Mode:             &mode,
		StoryFireInFront: &fire,
		spacing:          fieldSpacing{},
	}
	if version >= 4 {
		s := SampleSetNormal
		g.SampleSet = &s
	}
	if version >= 5 {
		c := CountdownNormal
		g.Countdown = &c
	}
	return g
}

// parseGeneral parses the [General] section body.
func parseGeneral(body string, version Version) (*General, error) {
	g := &General{spacing: fieldSpacing{}}
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
		g.spacing[key] = ws
		if err := g.setField(key, value, version); err != nil {
			return nil, errLine(err, i)
		}
	}
	return g, nil
}

// setField parses a single key's value into its typed field. Fields that do
// not exist at the given version are skipped.
func (g *General) setField(key, value string, version Version) error {
	setInt := func(dst **int) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalidField(key, err)
		}
		*dst = &n
		return nil
	}
	setBool := func(dst **bool) error {
		b, err := parseBool01(value)
		if err != nil {
			return invalidField(key, err)
		}
		*dst = &b
		return nil
	}

	switch key {
	case "AudioFilename":
		fp := parseFilePath(value)
		g.AudioFilename = &fp
	case "AudioLeadIn":
		return setInt(&g.AudioLeadIn)
	case "AudioHash":
		if version > 13 {
			return nil
		}
		v := value
		g.AudioHash = &v
	case "PreviewTime":
		return setInt(&g.PreviewTime)
	case "Countdown":
		if version < 5 {
			return nil
		}
		c, err := parseCountdown(value)
		if err != nil {
			return invalidField(key, err)
		}
		g.Countdown = &c
	case "SampleSet":
		if version < 4 {
			return nil
		}
		s, err := parseSampleSet(value)
		if err != nil {
			return invalidField(key, err)
		}
		g.SampleSet = &s
	case "StackLeniency":
		d, err := parseDecimal(value)
		if err != nil {
			return invalidField(key, err)
		}
		g.StackLeniency = &d
	case "Mode":
		m, err := parseMode(value)
		if err != nil {
			return invalidField(key, err)
		}
		g.Mode = &m
	case "LetterboxInBreaks":
		return setBool(&g.LetterboxInBreaks)
	case "StoryFireInFront":
		return setBool(&g.StoryFireInFront)
	case "UseSkinSprites":
		return setBool(&g.UseSkinSprites)
	case "AlwaysShowPlayfield":
		return setBool(&g.AlwaysShowPlayfield)
	case "OverlayPosition":
		if version < 14 {
			return nil
		}
		o, err := parseOverlayPosition(value)
		if err != nil {
			return invalidField(key, err)
		}
		g.OverlayPosition = &o
	case "SkinPreference":
		v := value
		g.SkinPreference = &v
	case "EpilepsyWarning":
		return setBool(&g.EpilepsyWarning)
	case "CountdownOffset":
		return setInt(&g.CountdownOffset)
	case "SpecialStyle":
		return setBool(&g.SpecialStyle)
	case "WidescreenStoryboard":
		return setBool(&g.WidescreenStoryboard)
	case "SamplesMatchPlaybackRate":
		return setBool(&g.SamplesMatchPlaybackRate)
	default:
		return fmt.Errorf("%w `%s`", ErrInvalidKey, key)
	}
	return nil
}

// render serializes the section body at the given version.
func (g *General) render(version Version) (string, bool) {
	var lines []string
	add := func(key, value string) {
		lines = append(lines, key+":"+g.spacing.get(key, " ")+value)
	}

	if g.AudioFilename != nil {
		add("AudioFilename", g.AudioFilename.String())
	}
	if g.AudioLeadIn != nil {
		add("AudioLeadIn", strconv.Itoa(*g.AudioLeadIn))
	}
	if g.AudioHash != nil && version <= 13 {
		add("AudioHash", *g.AudioHash)
	}
	if g.PreviewTime != nil {
		add("PreviewTime", strconv.Itoa(*g.PreviewTime))
	}
	if g.Countdown != nil && version >= 5 {
		add("Countdown", g.Countdown.String())
	}
	if g.SampleSet != nil && version >= 4 {
		add("SampleSet", g.SampleSet.String())
	}
	if g.StackLeniency != nil {
		add("StackLeniency", g.StackLeniency.String())
	}
	if g.Mode != nil {
		add("Mode", g.Mode.String())
	}
	if g.LetterboxInBreaks != nil {
		add("LetterboxInBreaks", boolStr(*g.LetterboxInBreaks))
	}
	if g.StoryFireInFront != nil {
		add("StoryFireInFront", boolStr(*g.StoryFireInFront))
	}
	if g.UseSkinSprites != nil {
		add("UseSkinSprites", boolStr(*g.UseSkinSprites))
	}
	if g.AlwaysShowPlayfield != nil {
		add("AlwaysShowPlayfield", boolStr(*g.AlwaysShowPlayfield))
	}
	if g.OverlayPosition != nil && version >= 14 {
		add("OverlayPosition", g.OverlayPosition.String())
	}
	if g.SkinPreference != nil {
		add("SkinPreference", *g.SkinPreference)
	}
	if g.EpilepsyWarning != nil {
		add("EpilepsyWarning", boolStr(*g.EpilepsyWarning))
	}
	if g.CountdownOffset != nil {
		add("CountdownOffset", strconv.Itoa(*g.CountdownOffset))
	}
	if g.SpecialStyle != nil {
		add("SpecialStyle", boolStr(*g.SpecialStyle))
	}
	if g.WidescreenStoryboard != nil {
		add("WidescreenStoryboard", boolStr(*g.WidescreenStoryboard))
	}
	if g.SamplesMatchPlaybackRate != nil {
		add("SamplesMatchPlaybackRate", boolStr(*g.SamplesMatchPlaybackRate))
	}

	return strings.Join(lines, "\n"), true
}
