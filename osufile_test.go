package osufile

import (
	_ "embed"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

//go:embed test.osu
var testOsu string

//go:embed test.osb
var testOsb string

func TestParseRoundTrip(t *testing.T) {
	b, err := Parse(testOsu)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, Version(14), b.Version)
	assert.Equal(t, testOsu, b.Render())
}

func TestParseSections(t *testing.T) {
	b, err := Parse(testOsu)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if assert.NotNil(t, b.General) {
		assert.Equal(t, "audio.mp3", b.General.AudioFilename.Path())
	}
	if assert.NotNil(t, b.Metadata) {
		assert.Equal(t, "Narcissu", *b.Metadata.Creator)
	}
	if assert.NotNil(t, b.TimingPoints) {
		assert.Len(t, b.TimingPoints.Points, 3)
	}
	if assert.NotNil(t, b.Colours) {
		assert.Len(t, b.Colours.Entries, 3)
	}
	if assert.NotNil(t, b.HitObjects) {
		assert.Len(t, b.HitObjects.Objects, 4)
	}
}

func TestParseBOMAndCRLF(t *testing.T) {
	src := "\ufeff" + strings.ReplaceAll(testOsu, "\n", "\r\n")
	b, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, testOsu, b.Render())
}

func TestParseLeadingBlankLines(t *testing.T) {
	b, err := Parse("\n\n" + testOsu)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, Version(14), b.Version)
}

func TestParseMissingSections(t *testing.T) {
	b, err := Parse("osu file format v14\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Nil(t, b.General)
	assert.Nil(t, b.HitObjects)
	assert.Equal(t, "osu file format v14\n", b.Render())
}

func TestParseErrors(t *testing.T) {
	f := func(name, src string, kind error, line int) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			_, err := Parse(src)
			if err == nil {
				t.Fatalf("expected error but got none")
			}
			if kind != nil && !errors.Is(err, kind) {
				t.Errorf("expected error kind %v, got %v", kind, err)
			}
			assert.Equal(t, line, ErrorLine(err))
		})
	}

	f("empty", "", ErrNoFileVersion, 0)
	f("no_banner", "[General]\nMode: 0", ErrNoFileVersion, 0)
	f("bad_version_number", "osu file format vX", ErrInvalidFileVersion, 0)
	f("version_too_old", "osu file format v2", ErrInvalidFileVersion, 0)
	f("version_too_new", "osu file format v15", ErrInvalidFileVersion, 0)
	f("banner_after_blanks", "\n\nosu file format vX", ErrInvalidFileVersion, 2)
	f("content_before_section", "osu file format v14\nstray", ErrMissingSection, 1)
	f("unknown_section", "osu file format v14\n[Nonsense]", ErrUnknownSection, 1)
	f("duplicate_section", "osu file format v14\n[General]\n[General]", ErrDuplicateSection, 2)
	f("field_error_line", "osu file format v14\n[General]\nMode: 0\nMode: 9", nil, 3)
	f("record_error_line", "osu file format v14\n[TimingPoints]\n350,500\nabc,500", nil, 3)
}

func TestErrorMessageIsOneBased(t *testing.T) {
	_, err := Parse("osu file format v14\n[General]\nMode: 9")
	if err == nil {
		t.Fatalf("expected error but got none")
	}
	assert.Contains(t, err.Error(), "Line 3, ")
	assert.Equal(t, 2, ErrorLine(err))
}

func TestShowErrorLine(t *testing.T) {
	src := "osu file format v14\n[General]\nMode: 9"
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("expected error but got none")
	}
	shown := ShowErrorLine(src, err)
	assert.Contains(t, shown, "Mode: 9")
	assert.Contains(t, shown, "^")
}

func TestColoursSectionDiscardedAtOldVersions(t *testing.T) {
	b, err := Parse("osu file format v4\n[Colours]\nCombo1 : 255,128,255")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Nil(t, b.Colours)
	assert.Equal(t, "osu file format v4\n", b.Render())
}

func TestDefaultRenders(t *testing.T) {
	b := Default(14)
	out := b.Render()
	assert.True(t, strings.HasPrefix(out, "osu file format v14\n"))

	// A defaulted beatmap reparses cleanly.
	if _, err := Parse(out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRenderAtDifferentVersion(t *testing.T) {
	b, err := Parse(testOsu)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Serializing the same content at v9 drops the fields that do not exist
	// there, like hit sample blocks.
	b.Version = 9
	out := b.Render()
	assert.True(t, strings.HasPrefix(out, "osu file format v9\n"))
	assert.Contains(t, out, "221,350,9780,1,0\n")
	assert.NotContains(t, out, "0:0:0:0:")
}

func TestAppendOsb(t *testing.T) {
	b, err := Parse(testOsu)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := len(b.Events.Entries)

	if err := b.AppendOsb(testOsb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Greater(t, len(b.Events.Entries), before)
	assert.Len(t, b.Variables, 2)

	// Variable references were substituted during parsing.
	out := b.Render()
	assert.Contains(t, out, `"sb\background.jpg"`)
	assert.NotContains(t, out, "$bg")
}

func TestRenderOsb(t *testing.T) {
	b, err := Parse(testOsu)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.AppendOsb(testOsb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, ok := b.RenderOsb()
	if !ok {
		t.Fatalf("expected an .osb document at v14")
	}
	assert.Contains(t, out, "[Variables]\n$bg=sb\\background.jpg")
	assert.Contains(t, out, `Sprite,Background,Centre,"$bg",320,240`)

	b.Version = 13
	if _, ok := b.RenderOsb(); ok {
		t.Errorf("expected no .osb document below v14")
	}
}
