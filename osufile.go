// Package osufile parses and serializes osu! beatmap (.osu) and storyboard
// (.osb) files across format versions 3 to 14. Parsing is strict about
// structure but preserves the source's incidental texture, so a beatmap
// serialized at the version it was parsed at reproduces the input.
package osufile

import (
	"fmt"
	"strconv"
	"strings"
)

// Beatmap is a parsed .osu document. Every section is optional; a nil section
// was absent from the source and is omitted when serializing.
type Beatmap struct {
	Version      Version
	General      *General
	Editor       *Editor
	Metadata     *Metadata
	Difficulty   *Difficulty
	Events       *Events
	TimingPoints *TimingPoints
	Colours      *Colours
	HitObjects   *HitObjects

	// Variables holds storyboard variables merged in by AppendOsb, used to
	// restore `$name` references when serializing back to an .osb.
	Variables []Variable
}

// Default returns a beatmap at the given version with every section present,
// populated with the game's defaults where it has them.
func Default(version Version) *Beatmap {
	return &Beatmap{
		Version:      version,
		General:      defaultGeneral(version),
		Editor:       &Editor{},
		Metadata:     &Metadata{},
		Difficulty:   &Difficulty{},
		Events:       &Events{},
		TimingPoints: &TimingPoints{},
		Colours:      &Colours{},
		HitObjects:   &HitObjects{},
	}
}

// Parse parses a complete .osu document. Errors carry the zero-based line
// they occurred on, displayed one-based; see ErrorLine and ShowErrorLine.
func Parse(s string) (*Beatmap, error) {
	lines := splitLines(stripBOM(s))

	idx := 0
	for idx < len(lines) && blankLine(lines[idx]) {
		idx++
	}
	if idx == len(lines) {
		return nil, errLine(ErrNoFileVersion, 0)
	}

	banner, found := strings.CutPrefix(strings.TrimSpace(lines[idx]), "osu file format v")
	if !found {
		return nil, errLine(ErrNoFileVersion, idx)
	}
	n, err := strconv.Atoi(banner)
	if err != nil {
		return nil, errLine(fmt.Errorf("%w: %q", ErrInvalidFileVersion, banner), idx)
	}
	version := Version(n)
	if !version.valid() {
		return nil, errLine(fmt.Errorf("%w %d, expected %d to %d",
			ErrInvalidFileVersion, n, MinVersion, LatestVersion), idx)
	}

	sections, err := splitSections(lines[idx+1:], idx+1)
	if err != nil {
		return nil, err
	}

	b := &Beatmap{Version: version}
	seen := map[string]bool{}
	for _, sec := range sections {
		if seen[sec.name] {
			return nil, errLine(fmt.Errorf("%w [%s]", ErrDuplicateSection, sec.name), sec.nameLine)
		}
		seen[sec.name] = true

		switch sec.name {
		case "General":
			b.General, err = parseGeneral(sec.body, version)
		case "Editor":
			b.Editor, err = parseEditor(sec.body, version)
		case "Metadata":
			b.Metadata, err = parseMetadata(sec.body, version)
		case "Difficulty":
			b.Difficulty, err = parseDifficulty(sec.body, version)
		case "Events":
			b.Events, err = parseEvents(sec.body, version, nil)
		case "TimingPoints":
			b.TimingPoints, err = parseTimingPoints(sec.body, version)
		case "Colours":
			b.Colours, err = parseColours(sec.body, version)
		case "HitObjects":
			b.HitObjects, err = parseHitObjects(sec.body, version)
		default:
			return nil, errLine(fmt.Errorf("%w `%s`", ErrUnknownSection, sec.name), sec.nameLine)
		}
		if err != nil {
			return nil, errLine(err, sec.bodyLine)
		}
	}

	return b, nil
}

// Render serializes the beatmap at its version. Sections appear in the fixed
// order the game writes them, separated by a blank line, with a trailing
// newline at the end of the document.
func (b *Beatmap) Render() string {
	parts := []string{fmt.Sprintf("osu file format v%d", b.Version)}

	add := func(name string, body string, ok bool) {
		if !ok {
			return
		}
		if body == "" {
			parts = append(parts, "["+name+"]")
			return
		}
		parts = append(parts, "["+name+"]\n"+body)
	}
	if b.General != nil {
		body, ok := b.General.render(b.Version)
		add("General", body, ok)
	}
	if b.Editor != nil {
		body, ok := b.Editor.render(b.Version)
		add("Editor", body, ok)
	}
	if b.Metadata != nil {
		body, ok := b.Metadata.render(b.Version)
		add("Metadata", body, ok)
	}
	if b.Difficulty != nil {
		body, ok := b.Difficulty.render(b.Version)
		add("Difficulty", body, ok)
	}
	if b.Events != nil {
		body, ok := b.Events.render(b.Version)
		add("Events", body, ok)
	}
	if b.TimingPoints != nil {
		body, ok := b.TimingPoints.render(b.Version)
		add("TimingPoints", body, ok)
	}
	if b.Colours != nil {
		body, ok := b.Colours.render(b.Version)
		add("Colours", body, ok)
	}
	if b.HitObjects != nil {
		body, ok := b.HitObjects.render(b.Version)
		add("HitObjects", body, ok)
	}

	return strings.Join(parts, "\n\n") + "\n"
}

// AppendOsb parses an .osb document at the beatmap's version and merges it
// in: variables are recorded and the storyboard events are appended after the
// beatmap's own events.
func (b *Beatmap) AppendOsb(s string) error {
	osb, err := ParseOsb(s, b.Version)
	if err != nil {
		return err
	}
	b.Variables = append(b.Variables, osb.Variables...)
	if osb.Events != nil {
		if b.Events == nil {
			b.Events = &Events{}
		}
		b.Events.Entries = append(b.Events.Entries, osb.Events.Entries...)
	}
	return nil
}

// RenderOsb serializes the beatmap's storyboard content as an .osb document,
// with variable references restored. Reports false below v14, where the .osb
// format does not exist.
func (b *Beatmap) RenderOsb() (string, bool) {
	if b.Version < 14 {
		return "", false
	}
	osb := &Osb{Variables: b.Variables, Events: b.Events}
	return osb.render(b.Version)
}

// rawSection is one framed `[Name]` section with its unparsed body.
type rawSection struct {
	name     string
	body     string
	nameLine int // Absolute line index of the header.
	bodyLine int // Absolute line index of the first body line.
}

// splitSections frames lines into sections. offset is the absolute index of
// lines[0], so reported line numbers refer to the whole document.
func splitSections(lines []string, offset int) ([]rawSection, error) {
	var sections []rawSection
	var body []string

	flush := func() {
		if len(sections) > 0 {
			sections[len(sections)-1].body = strings.Join(body, "\n")
			body = body[:0]
		}
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			flush()
			sections = append(sections, rawSection{
				name:     trimmed[1 : len(trimmed)-1],
				nameLine: offset + i,
				bodyLine: offset + i + 1,
			})
			continue
		}
		if len(sections) == 0 {
			if trimmed == "" {
				continue
			}
			return nil, errLine(ErrMissingSection, offset+i)
		}
		body = append(body, line)
	}
	flush()

	return sections, nil
}
