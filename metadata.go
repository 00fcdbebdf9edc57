package osufile

import (
	"fmt"
	"strconv"
	"strings"
)

// Metadata holds the [Metadata] section: identification of the song and the
// beatmap itself.
type Metadata struct {
	Title         *string
	TitleUnicode  *string
	Artist        *string
	ArtistUnicode *string
	Creator       *string
	Version       *string // Difficulty name, not the file format version.
	Source        *string
	Tags          []string
	BeatmapID     *int
	BeatmapSetID  *int

	spacing fieldSpacing
}

// parseMetadata parses the [Metadata] section body.
func parseMetadata(body string, version Version) (*Metadata, error) {
	m := &Metadata{spacing: fieldSpacing{}}
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
		m.spacing[key] = ws
		if err := m.setField(key, value); err != nil {
			return nil, errLine(err, i)
		}
	}
	return m, nil
}

// setField parses a single key's value into its typed field.
func (m *Metadata) setField(key, value string) error {
	setStr := func(dst **string) {
		v := value
		*dst = &v
	}

	switch key {
	case "Title":
		setStr(&m.Title)
	case "TitleUnicode":
		setStr(&m.TitleUnicode)
	case "Artist":
		setStr(&m.Artist)
	case "ArtistUnicode":
		setStr(&m.ArtistUnicode)
	case "Creator":
		setStr(&m.Creator)
	case "Version":
		setStr(&m.Version)
	case "Source":
		setStr(&m.Source)
	case "Tags":
		// Space-separated search terms; empty tokens kept so double spaces
		// survive a round trip.
		m.Tags = strings.Split(value, " ")
	case "BeatmapID":
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalidField(key, err)
		}
		m.BeatmapID = &n
	case "BeatmapSetID":
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalidField(key, err)
		}
		m.BeatmapSetID = &n
	default:
		return fmt.Errorf("%w `%s`", ErrInvalidKey, key)
	}
	return nil
}

// render serializes the section body at the given version. Metadata lines
// conventionally carry no space after the colon.
func (m *Metadata) render(version Version) (string, bool) {
	var lines []string
	add := func(key, value string) {
		lines = append(lines, key+":"+m.spacing.get(key, "")+value)
	}

	if m.Title != nil {
		add("Title", *m.Title)
	}
	if m.TitleUnicode != nil {
		add("TitleUnicode", *m.TitleUnicode)
	}
	if m.Artist != nil {
		add("Artist", *m.Artist)
	}
	if m.ArtistUnicode != nil {
		add("ArtistUnicode", *m.ArtistUnicode)
	}
	if m.Creator != nil {
		add("Creator", *m.Creator)
	}
	if m.Version != nil {
		add("Version", *m.Version)
	}
	if m.Source != nil {
		add("Source", *m.Source)
	}
	if m.Tags != nil {
		add("Tags", strings.Join(m.Tags, " "))
	}
	if m.BeatmapID != nil {
		add("BeatmapID", strconv.Itoa(*m.BeatmapID))
	}
	if m.BeatmapSetID != nil {
		add("BeatmapSetID", strconv.Itoa(*m.BeatmapSetID))
	}

	return strings.Join(lines, "\n"), true
}
