package osufile

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// TriggerKind distinguishes the trigger condition variants.
type TriggerKind int

const (
	// TriggerOnHitSound fires when a matching hit sound plays.
	TriggerOnHitSound TriggerKind = iota
	// TriggerOnPassing fires while the player is in the passing state.
	TriggerOnPassing
	// TriggerOnFailing fires while the player is in the failing state.
	TriggerOnFailing
)

// TriggerType is the condition of a T command. For the hit sound kind, the
// four sub-fields narrow which hit sounds fire the trigger; each may be
// absent.
type TriggerType struct {
	Kind               TriggerKind
	SampleSet          *TriggerSampleSet
	AdditionsSampleSet *TriggerSampleSet
	Addition           *Addition
	CustomSampleSet    *int
}

// TriggerSampleSet is the sample set filter of a hit sound trigger.
type TriggerSampleSet int

const (
	TriggerSampleAll TriggerSampleSet = iota
	TriggerSampleNormal
	TriggerSampleSoft
	TriggerSampleDrum
)

// parseTriggerSampleSet parses the named trigger sample set spelling.
func parseTriggerSampleSet(s string) (TriggerSampleSet, error) {
	switch s {
	case "All":
		return TriggerSampleAll, nil
	case "Normal":
		return TriggerSampleNormal, nil
	case "Soft":
		return TriggerSampleSoft, nil
	case "Drum":
		return TriggerSampleDrum, nil
	}
	return 0, fmt.Errorf("unknown sample set %q", s)
}

// String renders the sample set name.
func (s TriggerSampleSet) String() string {
	switch s {
	case TriggerSampleNormal:
		return "Normal"
	case TriggerSampleSoft:
		return "Soft"
	case TriggerSampleDrum:
		return "Drum"
	default:
		return "All"
	}
}

// Addition is the hit sound addition filter of a hit sound trigger.
type Addition int

const (
	AdditionWhistle Addition = iota
	AdditionFinish
	AdditionClap
)

// parseAddition parses the named addition spelling.
func parseAddition(s string) (Addition, error) {
	switch s {
	case "Whistle":
		return AdditionWhistle, nil
	case "Finish":
		return AdditionFinish, nil
	case "Clap":
		return AdditionClap, nil
	}
	return 0, fmt.Errorf("unknown addition %q", s)
}

// String renders the addition name.
func (a Addition) String() string {
	switch a {
	case AdditionFinish:
		return "Finish"
	case AdditionClap:
		return "Clap"
	default:
		return "Whistle"
	}
}

// parseTriggerType parses a trigger type string. The tail after `HitSound`
// is tokenised by splitting before every uppercase or numeric character, and
// each token is assigned greedily to the first sub-field position, in order,
// whose parser accepts it. The greedy strategy cannot always tell a sample
// set from an additions sample set; that ambiguity is part of the format.
func parseTriggerType(s string) (*TriggerType, error) {
	s = strings.TrimSpace(s)

	switch s {
	case "Passing", "HitSoundPassing":
		return &TriggerType{Kind: TriggerOnPassing}, nil
	case "Failing", "HitSoundFailing":
		return &TriggerType{Kind: TriggerOnFailing}, nil
	}

	tail, found := strings.CutPrefix(s, "HitSound")
	if !found {
		return nil, fmt.Errorf("unknown trigger type %q", s)
	}

	trigger := &TriggerType{Kind: TriggerOnHitSound}
	if tail == "" {
		return trigger, nil
	}

	var tokens []string
	var builder strings.Builder
	for i, ch := range tail {
		if i != 0 && (unicode.IsUpper(ch) || unicode.IsNumber(ch)) {
			tokens = append(tokens, builder.String())
			builder.Reset()
		}
		builder.WriteRune(ch)
	}
	tokens = append(tokens, builder.String())

	if len(tokens) > 4 {
		return nil, fmt.Errorf("too many hit sound fields in %q", s)
	}

	position := 0
	for _, token := range tokens {
		assigned := false
		for !assigned {
			switch position {
			case 0:
				if set, err := parseTriggerSampleSet(token); err == nil {
					trigger.SampleSet = &set
					assigned = true
				}
			case 1:
				if set, err := parseTriggerSampleSet(token); err == nil {
					trigger.AdditionsSampleSet = &set
					assigned = true
				}
			case 2:
				if addition, err := parseAddition(token); err == nil {
					trigger.Addition = &addition
					assigned = true
				}
			case 3:
				n, err := strconv.Atoi(token)
				if err != nil {
					return nil, fmt.Errorf("unknown hit sound type %q", token)
				}
				trigger.CustomSampleSet = &n
				assigned = true
			default:
				return nil, fmt.Errorf("unknown hit sound type %q", token)
			}
			position++
		}
	}

	return trigger, nil
}

// String serializes the trigger type by concatenating the present sub-fields
// in positional order.
func (t TriggerType) String() string {
	switch t.Kind {
	case TriggerOnPassing:
		return "HitSoundPassing"
	case TriggerOnFailing:
		return "HitSoundFailing"
	}

	var b strings.Builder
	b.WriteString("HitSound")
	if t.SampleSet != nil {
		b.WriteString(t.SampleSet.String())
	}
	if t.AdditionsSampleSet != nil {
		b.WriteString(t.AdditionsSampleSet.String())
	}
	if t.Addition != nil {
		b.WriteString(t.Addition.String())
	}
	if t.CustomSampleSet != nil {
		b.WriteString(strconv.Itoa(*t.CustomSampleSet))
	}
	return b.String()
}
