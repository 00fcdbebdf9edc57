package osufile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func eventsRoundTrip(t *testing.T, body string, version Version) *Events {
	t.Helper()
	events, err := parseEvents(body, version, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := events.render(version)
	assert.Equal(t, body, got)
	return events
}

func TestEventsRoundTrip(t *testing.T) {
	f := func(name, body string, version Version) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			eventsRoundTrip(t, body, version)
		})
	}

	f("comment", "//Background and Video events", 14)
	f("background", `0,0,"bg.jpg",0,0`, 14)
	f("background_no_position", `0,0,"bg.jpg"`, 14)
	f("background_unquoted", "0,0,bg.jpg,0,0", 14)
	f("video_short_form", `1,100,"intro.avi"`, 14)
	f("video_long_form", `Video,100,"intro.avi",10,20`, 14)
	f("break_short_form", "2,65119,70944", 14)
	f("break_long_form", "Break,65119,70944", 14)
	f("colour_transformation", "3,2500,0,0,0", 13)
	f("sample", `Sample,16574,0,"soft-hitnormal.wav",60`, 14)
	f("sample_no_volume", `Sample,16574,2,"soft-hitnormal.wav"`, 14)
	f("legacy_events_kept_verbatim", "4,some,legacy,fields\n5,more\n6", 14)
	f("sprite", `Sprite,Background,Centre,"sb\cloud.png",320,240`, 14)
	f("sprite_no_position", `Sprite,Pass,TopLeft,"sb\cloud.png"`, 14)
	f("animation", `Animation,Foreground,TopLeft,"anim.png",100,50,4,60,LoopOnce`, 14)
	f("animation_no_loop_type", `Animation,Foreground,TopLeft,"anim.png",320,240,4,60`, 14)
	f("sprite_with_commands", strings.Join([]string{
		`Sprite,Background,Centre,"sb\cloud.png",320,240`,
		" F,0,1000,2000,0,1",
		" L,1000,3",
		"  S,0,0,500,1,1.2",
		"  M,0,0,500,320,240,400",
		" F,0,3000,4000,1,0",
	}, "\n"), 14)
	f("nested_loop", strings.Join([]string{
		`Sprite,Pass,Centre,"a.png",320,240`,
		" F,0,-28,,1",
		" L,500,10",
		"  M,3,100,120,140,180,200,200",
	}, "\n"), 14)
	f("trigger_nesting", strings.Join([]string{
		`Sprite,Foreground,Centre,"sb\star.png"`,
		" T,HitSoundSoftWhistle,2000,4000",
		"  R,0,0,200,0,0.5",
	}, "\n"), 14)
}

func TestNestedCommandTree(t *testing.T) {
	events := eventsRoundTrip(t, strings.Join([]string{
		`Sprite,Pass,Centre,"a.png",320,240`,
		" F,0,-28,,1",
		" L,500,10",
		"  M,3,100,120,140,180,200,200",
	}, "\n"), 14)

	obj := events.Entries[0].(*Object)
	if assert.Len(t, obj.Commands, 2) {
		loop, ok := obj.Commands[1].(*Loop)
		if !ok {
			t.Fatalf("expected loop, got %T", obj.Commands[1])
		}
		assert.Equal(t, 500, loop.StartTime)
		assert.Equal(t, 10, loop.LoopCount)
		if assert.Len(t, loop.Commands, 1) {
			_, ok := loop.Commands[0].(*Move)
			assert.True(t, ok)
		}
	}

	fade := obj.Commands[0].(*Fade)
	if assert.NotNil(t, fade.StartTime) {
		assert.Equal(t, -28, *fade.StartTime)
	}
	assert.Nil(t, fade.EndTime)
}

func TestEventsUnderscoreIndentation(t *testing.T) {
	// Underscores indent like spaces but always serialize back as spaces.
	body := strings.Join([]string{
		`Sprite,Background,Centre,"sb\cloud.png"`,
		"_L,1000,3",
		"__S,0,0,500,1,1.2",
	}, "\n")
	events, err := parseEvents(body, 14, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := events.render(14)
	want := strings.Join([]string{
		`Sprite,Background,Centre,"sb\cloud.png"`,
		" L,1000,3",
		"  S,0,0,500,1,1.2",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestEventsOldVersionTimeShift(t *testing.T) {
	// Video, break and colour transformation times shift by 24ms at v3-4;
	// background times do not.
	events, err := parseEvents("0,1000,bg.jpg\n2,1000,2000\n3,1000,0,0,0", 4, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bg := events.Entries[0].(Background)
	assert.Equal(t, 1000, bg.StartTime)

	brk := events.Entries[1].(Break)
	assert.Equal(t, 1024, brk.StartTime)
	assert.Equal(t, 2024, brk.EndTime)

	ct := events.Entries[2].(ColourTransformation)
	assert.Equal(t, 1024, ct.StartTime)

	got, _ := events.render(4)
	assert.Equal(t, "0,1000,bg.jpg\n2,1000,2000\n3,1000,0,0,0", got)
}

func TestColourTransformationDroppedAtV14(t *testing.T) {
	events, err := parseEvents("3,2500,10,20,30", 13, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := events.render(14)
	assert.Equal(t, "", got)
}

func TestEventsErrors(t *testing.T) {
	f := func(name, body string, wantLine int) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			_, err := parseEvents(body, 14, nil)
			if err == nil {
				t.Fatalf("expected error but got none")
			}
			assert.Equal(t, wantLine, ErrorLine(err))
		})
	}

	f("unknown_event", "what,0", 0)
	f("command_before_object", " F,0,0,500,1", 0)
	f("bad_break_time", "0,0,bg.jpg\n2,start,70944", 1)
	f("sample_volume_out_of_range", `Sample,0,0,"s.wav",0`, 0)
	f("bad_layer", `Sample,0,7,"s.wav"`, 0)
	f("bad_origin", "Sprite,Background,Middle,img.png", 0)
	f("skipped_indent_level", "Sprite,Background,Centre,img.png\n  S,0,0,500,1", 1)
}

func TestEventLayerByName(t *testing.T) {
	events, err := parseEvents(`Sample,100,Foreground,"s.wav"`, 14, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sample := events.Entries[0].(AudioSample)
	assert.Equal(t, LayerForeground, sample.Layer)

	// Named layers normalize to the numeric spelling.
	got, _ := events.render(14)
	assert.Equal(t, `Sample,100,3,"s.wav"`, got)
}

func TestFilePathQuoting(t *testing.T) {
	// Unquoted paths stay unquoted unless they contain a space.
	p := parseFilePath("bg.jpg")
	assert.Equal(t, "bg.jpg", p.String())
	p.SetPath("my bg.jpg")
	assert.Equal(t, `"my bg.jpg"`, p.String())

	q := parseFilePath(`"bg.jpg"`)
	assert.Equal(t, `"bg.jpg"`, q.String())
	assert.Equal(t, "bg.jpg", q.Path())
}
