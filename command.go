package osufile

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is one storyboard command. Keyframe commands animate a single
// property; Loop and Trigger are block commands holding nested command lists
// built from deeper-indented lines.
type Command interface {
	// render serializes the command's own line, without indentation.
	render() string
}

// childCommands returns the nested command list of a block command, or nil
// for keyframe commands.
func childCommands(c Command) *[]Command {
	switch b := c.(type) {
	case *Loop:
		return &b.Commands
	case *Trigger:
		return &b.Commands
	}
	return nil
}

// Easing is one of the 35 numbered tweening functions.
type Easing int

// parseEasing parses the integer easing spelling.
func parseEasing(s string) (Easing, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 34 {
		return 0, fmt.Errorf("unknown easing %d", n)
	}
	return Easing(n), nil
}

// ParameterKind is the effect toggled by a P command.
type ParameterKind byte

const (
	ParameterHorizontalFlip ParameterKind = 'H'
	ParameterVerticalFlip   ParameterKind = 'V'
	ParameterAdditiveBlend  ParameterKind = 'A'
)

// parseParameterKind parses the single-letter parameter spelling.
func parseParameterKind(s string) (ParameterKind, error) {
	switch s {
	case "H":
		return ParameterHorizontalFlip, nil
	case "V":
		return ParameterVerticalFlip, nil
	case "A":
		return ParameterAdditiveBlend, nil
	}
	return 0, fmt.Errorf("unknown parameter %q", s)
}

// String renders the parameter letter.
func (p ParameterKind) String() string {
	return string(rune(p))
}

// CommandBase is the easing and time range shared by keyframe commands. A
// nil EndTime means the command ends when it starts; both times may be
// absent, which round-trips as empty fields.
type CommandBase struct {
	Easing    Easing
	StartTime *int
	EndTime   *int
}

// renderFields serializes the shared prefix fields.
func (c CommandBase) renderFields() []string {
	start, end := "", ""
	if c.StartTime != nil {
		start = strconv.Itoa(*c.StartTime)
	}
	if c.EndTime != nil {
		end = strconv.Itoa(*c.EndTime)
	}
	return []string{strconv.Itoa(int(c.Easing)), start, end}
}

// ContinuingPoint is one keyframe of a 2-D continuing chain. A nil Y is
// allowed only on the final keyframe.
type ContinuingPoint struct {
	X Decimal
	Y *Decimal
}

// ContinuingColour is one keyframe of a colour chain. Green and Blue may be
// omitted only at the tail, and Blue requires Green.
type ContinuingColour struct {
	Red   uint8
	Green *uint8
	Blue  *uint8
}

// Fade animates opacity. Opacities holds the start value and continuations.
type Fade struct {
	CommandBase
	Opacities []Decimal
}

// Move animates position on both axes.
type Move struct {
	CommandBase
	StartX     Decimal
	StartY     Decimal
	Continuing []ContinuingPoint
}

// MoveX animates the x coordinate.
type MoveX struct {
	CommandBase
	Xs []Decimal
}

// MoveY animates the y coordinate.
type MoveY struct {
	CommandBase
	Ys []Decimal
}

// Scale animates uniform scale.
type Scale struct {
	CommandBase
	Scales []Decimal
}

// VectorScale animates per-axis scale.
type VectorScale struct {
	CommandBase
	StartX     Decimal
	StartY     Decimal
	Continuing []ContinuingPoint
}

// Rotate animates rotation in radians.
type Rotate struct {
	CommandBase
	Rotations []Decimal
}

// ColourCommand animates the sprite's colour.
type ColourCommand struct {
	CommandBase
	Start      Rgb
	Continuing []ContinuingColour
}

// Parameter toggles a sprite effect for the command's duration.
type Parameter struct {
	CommandBase
	Kind       ParameterKind
	Continuing []ParameterKind
}

// Loop repeats its nested commands LoopCount times.
type Loop struct {
	StartTime int
	LoopCount int
	Commands  []Command
}

// Trigger runs its nested commands each time its condition fires.
type Trigger struct {
	TriggerType TriggerType
	StartTime   int
	EndTime     *int
	GroupNumber *int
	Commands    []Command
}

// parseCommand parses one storyboard command line with its indentation
// already stripped.
func parseCommand(line string) (Command, error) {
	f := newFields(line)
	tag, _ := f.next()

	switch tag {
	case "F":
		return parseFlatCommand(f, "Opacity", func(base CommandBase, vals []Decimal) Command {
			return &Fade{CommandBase: base, Opacities: vals}
		})
	case "MX":
		return parseFlatCommand(f, "X", func(base CommandBase, vals []Decimal) Command {
			return &MoveX{CommandBase: base, Xs: vals}
		})
	case "MY":
		return parseFlatCommand(f, "Y", func(base CommandBase, vals []Decimal) Command {
			return &MoveY{CommandBase: base, Ys: vals}
		})
	case "S":
		return parseFlatCommand(f, "Scale", func(base CommandBase, vals []Decimal) Command {
			return &Scale{CommandBase: base, Scales: vals}
		})
	case "R":
		return parseFlatCommand(f, "Rotation", func(base CommandBase, vals []Decimal) Command {
			return &Rotate{CommandBase: base, Rotations: vals}
		})
	case "M":
		base, startX, startY, continuing, err := parsePairCommand(f)
		if err != nil {
			return nil, err
		}
		return &Move{CommandBase: base, StartX: startX, StartY: startY, Continuing: continuing}, nil
	case "V":
		base, startX, startY, continuing, err := parsePairCommand(f)
		if err != nil {
			return nil, err
		}
		return &VectorScale{CommandBase: base, StartX: startX, StartY: startY, Continuing: continuing}, nil
	case "C":
		return parseColourCommand(f)
	case "P":
		return parseParameterCommand(f)
	case "L":
		return parseLoop(f)
	case "T":
		return parseTrigger(f)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownCommandType, tag)
}

// parseCommandBase parses the shared `easing,start,end` prefix. Empty time
// fields parse as nil.
func parseCommandBase(f *fields) (CommandBase, error) {
	var base CommandBase

	easingField, ok := f.next()
	if !ok {
		return base, missingField("Easing")
	}
	easing, err := parseEasing(easingField)
	if err != nil {
		return base, invalidField("Easing", err)
	}
	base.Easing = easing

	timeField := func(name string) (*int, error) {
		field, ok := f.next()
		if !ok {
			return nil, missingField(name)
		}
		if field == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, invalidField(name, err)
		}
		return &n, nil
	}

	if base.StartTime, err = timeField("StartTime"); err != nil {
		return base, err
	}
	if base.EndTime, err = timeField("EndTime"); err != nil {
		return base, err
	}
	return base, nil
}

// parseFlatCommand parses a keyframe command whose continuing form is a flat
// decimal list.
func parseFlatCommand(f *fields, name string, build func(CommandBase, []Decimal) Command) (Command, error) {
	base, err := parseCommandBase(f)
	if err != nil {
		return nil, err
	}

	var vals []Decimal
	for {
		field, ok := f.next()
		if !ok {
			break
		}
		d, err := parseDecimal(field)
		if err != nil {
			return nil, invalidField(name, err)
		}
		vals = append(vals, d)
	}
	if len(vals) == 0 {
		return nil, missingField(name)
	}
	return build(base, vals), nil
}

// parsePairCommand parses the 2-D continuing form used by M and V: a
// mandatory start pair, then pairs whose second value may be dropped only on
// the final keyframe.
func parsePairCommand(f *fields) (CommandBase, Decimal, Decimal, []ContinuingPoint, error) {
	base, err := parseCommandBase(f)
	if err != nil {
		return base, Decimal{}, Decimal{}, nil, err
	}

	dec := func(name string) (Decimal, error) {
		field, ok := f.next()
		if !ok {
			return Decimal{}, missingField(name)
		}
		d, err := parseDecimal(field)
		if err != nil {
			return Decimal{}, invalidField(name, err)
		}
		return d, nil
	}

	startX, err := dec("StartX")
	if err != nil {
		return base, Decimal{}, Decimal{}, nil, err
	}
	startY, err := dec("StartY")
	if err != nil {
		return base, Decimal{}, Decimal{}, nil, err
	}

	var continuing []ContinuingPoint
	for f.more() {
		x, err := dec("X")
		if err != nil {
			return base, Decimal{}, Decimal{}, nil, err
		}
		if !f.more() {
			continuing = append(continuing, ContinuingPoint{X: x})
			break
		}
		y, err := dec("Y")
		if err != nil {
			return base, Decimal{}, Decimal{}, nil, err
		}
		continuing = append(continuing, ContinuingPoint{X: x, Y: &y})
	}
	return base, startX, startY, continuing, nil
}

// parseColourCommand parses the C command's RGB chain.
func parseColourCommand(f *fields) (Command, error) {
	base, err := parseCommandBase(f)
	if err != nil {
		return nil, err
	}

	channel := func(name string) (uint8, error) {
		field, ok := f.next()
		if !ok {
			return 0, missingField(name)
		}
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 || n > 255 {
			return 0, fmt.Errorf("invalid %s value", strings.ToLower(name))
		}
		return uint8(n), nil
	}

	var start Rgb
	if start.Red, err = channel("Red"); err != nil {
		return nil, err
	}
	if start.Green, err = channel("Green"); err != nil {
		return nil, err
	}
	if start.Blue, err = channel("Blue"); err != nil {
		return nil, err
	}

	cmd := &ColourCommand{CommandBase: base, Start: start}
	for f.more() {
		var c ContinuingColour
		if c.Red, err = channel("Red"); err != nil {
			return nil, err
		}
		if !f.more() {
			cmd.Continuing = append(cmd.Continuing, c)
			break
		}
		green, err := channel("Green")
		if err != nil {
			return nil, err
		}
		c.Green = &green
		if f.more() {
			blue, err := channel("Blue")
			if err != nil {
				return nil, err
			}
			c.Blue = &blue
		}
		cmd.Continuing = append(cmd.Continuing, c)
	}
	return cmd, nil
}

// parseParameterCommand parses the P command's parameter chain.
func parseParameterCommand(f *fields) (Command, error) {
	base, err := parseCommandBase(f)
	if err != nil {
		return nil, err
	}

	field, ok := f.next()
	if !ok {
		return nil, missingField("Parameter")
	}
	kind, err := parseParameterKind(field)
	if err != nil {
		return nil, invalidField("Parameter", err)
	}

	cmd := &Parameter{CommandBase: base, Kind: kind}
	for {
		field, ok := f.next()
		if !ok {
			break
		}
		kind, err := parseParameterKind(field)
		if err != nil {
			return nil, invalidField("Parameter", err)
		}
		cmd.Continuing = append(cmd.Continuing, kind)
	}
	return cmd, nil
}

// parseLoop parses a `L,startTime,loopCount` header.
func parseLoop(f *fields) (Command, error) {
	intf := func(name string) (int, error) {
		field, ok := f.next()
		if !ok {
			return 0, missingField(name)
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return 0, invalidField(name, err)
		}
		return n, nil
	}

	start, err := intf("StartTime")
	if err != nil {
		return nil, err
	}
	count, err := intf("LoopCount")
	if err != nil {
		return nil, err
	}
	return &Loop{StartTime: start, LoopCount: count}, nil
}

// parseTrigger parses a `T,triggerType,startTime[,endTime[,groupNumber]]`
// header.
func parseTrigger(f *fields) (Command, error) {
	typeField, ok := f.next()
	if !ok {
		return nil, missingField("TriggerType")
	}
	triggerType, err := parseTriggerType(typeField)
	if err != nil {
		return nil, invalidField("TriggerType", err)
	}

	startField, ok := f.next()
	if !ok {
		return nil, missingField("StartTime")
	}
	start, err := strconv.Atoi(startField)
	if err != nil {
		return nil, invalidField("StartTime", err)
	}

	trigger := &Trigger{TriggerType: *triggerType, StartTime: start}
	if field, ok := f.next(); ok && field != "" {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, invalidField("EndTime", err)
		}
		trigger.EndTime = &n
	}
	if field, ok := f.next(); ok {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, invalidField("GroupNumber", err)
		}
		trigger.GroupNumber = &n
	}
	return trigger, nil
}

// renderFlat joins a tag, the shared prefix and a flat decimal chain.
func renderFlat(tag string, base CommandBase, vals []Decimal) string {
	out := append([]string{tag}, base.renderFields()...)
	for _, v := range vals {
		out = append(out, v.String())
	}
	return strings.Join(out, ",")
}

func (c *Fade) render() string   { return renderFlat("F", c.CommandBase, c.Opacities) }
func (c *MoveX) render() string  { return renderFlat("MX", c.CommandBase, c.Xs) }
func (c *MoveY) render() string  { return renderFlat("MY", c.CommandBase, c.Ys) }
func (c *Scale) render() string  { return renderFlat("S", c.CommandBase, c.Scales) }
func (c *Rotate) render() string { return renderFlat("R", c.CommandBase, c.Rotations) }

// renderPairs joins a tag, the shared prefix and a 2-D continuing chain.
func renderPairs(tag string, base CommandBase, startX, startY Decimal, continuing []ContinuingPoint) string {
	out := append([]string{tag}, base.renderFields()...)
	out = append(out, startX.String(), startY.String())
	for _, p := range continuing {
		out = append(out, p.X.String())
		if p.Y != nil {
			out = append(out, p.Y.String())
		}
	}
	return strings.Join(out, ",")
}

func (c *Move) render() string {
	return renderPairs("M", c.CommandBase, c.StartX, c.StartY, c.Continuing)
}

func (c *VectorScale) render() string {
	return renderPairs("V", c.CommandBase, c.StartX, c.StartY, c.Continuing)
}

func (c *ColourCommand) render() string {
	out := append([]string{"C"}, c.renderFields()...)
	out = append(out,
		strconv.Itoa(int(c.Start.Red)),
		strconv.Itoa(int(c.Start.Green)),
		strconv.Itoa(int(c.Start.Blue)),
	)
	for _, cc := range c.Continuing {
		out = append(out, strconv.Itoa(int(cc.Red)))
		if cc.Green != nil {
			out = append(out, strconv.Itoa(int(*cc.Green)))
		}
		if cc.Blue != nil {
			out = append(out, strconv.Itoa(int(*cc.Blue)))
		}
	}
	return strings.Join(out, ",")
}

func (c *Parameter) render() string {
	out := append([]string{"P"}, c.renderFields()...)
	out = append(out, c.Kind.String())
	for _, kind := range c.Continuing {
		out = append(out, kind.String())
	}
	return strings.Join(out, ",")
}

func (c *Loop) render() string {
	return fmt.Sprintf("L,%d,%d", c.StartTime, c.LoopCount)
}

func (c *Trigger) render() string {
	// The end time field is always written, empty when absent.
	end := ""
	if c.EndTime != nil {
		end = strconv.Itoa(*c.EndTime)
	}
	out := []string{"T", c.TriggerType.String(), strconv.Itoa(c.StartTime), end}
	if c.GroupNumber != nil {
		out = append(out, strconv.Itoa(*c.GroupNumber))
	}
	return strings.Join(out, ",")
}

// appendCommandLines serializes a command tree, indenting each level one
// space deeper than its parent.
func appendCommandLines(lines *[]string, cmds []Command, depth int) {
	for _, cmd := range cmds {
		*lines = append(*lines, strings.Repeat(" ", depth)+cmd.render())
		if children := childCommands(cmd); children != nil {
			appendCommandLines(lines, *children, depth+1)
		}
	}
}
