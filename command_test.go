package osufile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandRoundTrip(t *testing.T) {
	f := func(name, line string) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			cmd, err := parseCommand(line)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assert.Equal(t, line, cmd.render())
		})
	}

	f("fade", "F,0,1000,2000,0,1")
	f("fade_chain", "F,0,1000,2000,0,0.5,1,0.5")
	f("fade_single_value", "F,0,1000,2000,1")
	f("move_x", "MX,1,0,500,100,200")
	f("move_y", "MY,2,0,500,100,200")
	f("scale", "S,0,0,500,1,1.2")
	f("rotate", "R,0,0,200,0,0.5")
	f("move", "M,0,1000,2000,320,240,400,300")
	f("move_dropped_tail_y", "M,0,1000,2000,320,240,400")
	f("move_long_chain", "M,0,0,100,0,0,10,10,20,20,30")
	f("vector_scale", "V,0,0,500,1,1,2,2")
	f("colour", "C,0,0,60000,255,255,255")
	f("colour_chain", "C,0,0,60000,255,255,255,0,0,0")
	f("colour_dropped_blue", "C,0,0,60000,255,255,255,0,0")
	f("colour_dropped_green_blue", "C,0,0,60000,255,255,255,0")
	f("parameter_h", "P,0,0,500,H")
	f("parameter_chain", "P,0,0,500,H,V,A")
	f("empty_start_time", "F,0,,2000,1")
	f("empty_both_times", "F,0,,,1")
	f("loop", "L,1000,3")
	f("trigger", "T,HitSoundSoftWhistle,2000,4000")
	f("trigger_no_end", "T,HitSoundClap,2000,")
	f("trigger_group", "T,HitSound,2000,4000,1")
	f("trigger_group_no_end", "T,HitSound,2000,,1")
	f("negative_times", "F,0,-200,-100,0,1")
	f("decimal_scale_preserved", "S,0,0,500,1.20")
}

func TestCommandErrors(t *testing.T) {
	f := func(name, line string) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			if _, err := parseCommand(line); err == nil {
				t.Errorf("expected error but got none")
			}
		})
	}

	f("unknown_type", "Q,0,0,500,1")
	f("bad_easing", "F,35,0,500,1")
	f("negative_easing", "F,-1,0,500,1")
	f("no_values", "F,0,0,500")
	f("bad_value", "F,0,0,500,x")
	f("move_missing_start_y", "M,0,0,500,100")
	f("colour_channel_out_of_range", "C,0,0,500,256,0,0")
	f("colour_missing_blue", "C,0,0,500,255,255")
	f("bad_parameter", "P,0,0,500,X")
	f("loop_missing_count", "L,1000")
	f("trigger_bad_type", "T,OnClick,2000")
	f("trigger_bad_group", "T,HitSound,2000,4000,x")
}

func TestTriggerAlwaysWritesEndTimeField(t *testing.T) {
	// A trigger without an end time still serializes the empty field, as
	// `T,type,start,`.
	cmd, err := parseCommand("T,HitSoundClap,2000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, "T,HitSoundClap,2000,", cmd.render())

	trigger := cmd.(*Trigger)
	assert.Nil(t, trigger.EndTime)
	assert.Nil(t, trigger.GroupNumber)
}

func TestCommandTimesParseToNil(t *testing.T) {
	cmd, err := parseCommand("F,0,,,1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fade, ok := cmd.(*Fade)
	if !ok {
		t.Fatalf("expected fade, got %T", cmd)
	}
	assert.Nil(t, fade.StartTime)
	assert.Nil(t, fade.EndTime)
}

func TestPushCmdNesting(t *testing.T) {
	obj := &Object{}

	push := func(line string, indent int) error {
		t.Helper()
		cmd, err := parseCommand(line)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return obj.pushCmd(cmd, indent)
	}

	if err := push("L,1000,3", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := push("S,0,0,500,1,1.2", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := push("F,0,0,500,1", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if assert.Len(t, obj.Commands, 2) {
		loop, ok := obj.Commands[0].(*Loop)
		if !ok {
			t.Fatalf("expected loop, got %T", obj.Commands[0])
		}
		assert.Len(t, loop.Commands, 1)
	}
}

func TestPushCmdInvalidIndentation(t *testing.T) {
	obj := &Object{}

	cmd, err := parseCommand("S,0,0,500,1,1.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Depth 2 with no block command to descend into.
	err = obj.pushCmd(cmd, 2)
	var indentErr *InvalidIndentationError
	if !assert.ErrorAs(t, err, &indentErr) {
		return
	}
	assert.Equal(t, 1, indentErr.Expected)
	assert.Equal(t, 2, indentErr.Got)

	// Keyframe commands have no children either.
	if err := obj.pushCmd(cmd, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := obj.pushCmd(cmd, 2); err == nil {
		t.Errorf("expected indentation error but got none")
	}
}

func TestTriggerTypeParse(t *testing.T) {
	f := func(name, input, want string) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			trigger, err := parseTriggerType(input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assert.Equal(t, want, trigger.String())
		})
	}

	f("bare", "HitSound", "HitSound")
	f("sample_set", "HitSoundSoft", "HitSoundSoft")
	f("addition_only", "HitSoundWhistle", "HitSoundWhistle")
	f("set_and_addition", "HitSoundSoftWhistle", "HitSoundSoftWhistle")
	f("both_sets", "HitSoundAllSoft", "HitSoundAllSoft")
	f("full", "HitSoundNormalDrumFinish2", "HitSoundNormalDrumFinish2")
	f("custom_sample_set_only", "HitSound6", "HitSound6")
	// Passing and failing triggers serialize with the prefix whether or not
	// the source carried it.
	f("passing", "Passing", "HitSoundPassing")
	f("passing_prefixed", "HitSoundPassing", "HitSoundPassing")
	f("failing", "Failing", "HitSoundFailing")
	f("failing_prefixed", "HitSoundFailing", "HitSoundFailing")
}

func TestTriggerTypeFieldAssignment(t *testing.T) {
	// A single sample set token lands in the first position, leaving the
	// additions set empty.
	trigger, err := parseTriggerType("HitSoundDrum")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assert.NotNil(t, trigger.SampleSet) {
		assert.Equal(t, TriggerSampleDrum, *trigger.SampleSet)
	}
	assert.Nil(t, trigger.AdditionsSampleSet)

	// An addition token skips both sample set positions.
	trigger, err = parseTriggerType("HitSoundClap")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Nil(t, trigger.SampleSet)
	assert.Nil(t, trigger.AdditionsSampleSet)
	if assert.NotNil(t, trigger.Addition) {
		assert.Equal(t, AdditionClap, *trigger.Addition)
	}
}

func TestTriggerTypeErrors(t *testing.T) {
	f := func(name, input string) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			if _, err := parseTriggerType(input); err == nil {
				t.Errorf("expected error but got none")
			}
		})
	}

	f("no_prefix", "Soft")
	f("unknown_token", "HitSoundLoud")
	f("too_many_tokens", "HitSoundAllSoftWhistle2Finish")
	f("addition_before_set", "HitSoundWhistleSoft")
}
