package osufile

import (
	"fmt"
	"strconv"
	"strings"
)

// Layer is the storyboard layer an object draws on.
type Layer int

const (
	LayerBackground Layer = iota
	LayerFail
	LayerPass
	LayerForeground
)

// parseLayer parses the named layer spelling.
func parseLayer(s string) (Layer, error) {
	switch s {
	case "Background":
		return LayerBackground, nil
	case "Fail":
		return LayerFail, nil
	case "Pass":
		return LayerPass, nil
	case "Foreground":
		return LayerForeground, nil
	}
	return 0, fmt.Errorf("unknown layer %q", s)
}

// String renders the layer name.
func (l Layer) String() string {
	switch l {
	case LayerFail:
		return "Fail"
	case LayerPass:
		return "Pass"
	case LayerForeground:
		return "Foreground"
	default:
		return "Background"
	}
}

// Origin is the anchor point of a storyboard object.
type Origin int

const (
	OriginTopLeft Origin = iota
	OriginCentre
	OriginCentreLeft
	OriginTopRight
	OriginBottomCentre
	OriginTopCentre
	OriginCustom
	OriginCentreRight
	OriginBottomLeft
	OriginBottomRight
)

var originNames = map[string]Origin{
	"TopLeft":      OriginTopLeft,
	"Centre":       OriginCentre,
	"CentreLeft":   OriginCentreLeft,
	"TopRight":     OriginTopRight,
	"BottomCentre": OriginBottomCentre,
	"TopCentre":    OriginTopCentre,
	"Custom":       OriginCustom,
	"CentreRight":  OriginCentreRight,
	"BottomLeft":   OriginBottomLeft,
	"BottomRight":  OriginBottomRight,
}

// parseOrigin parses the named origin spelling.
func parseOrigin(s string) (Origin, error) {
	origin, ok := originNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown origin %q", s)
	}
	return origin, nil
}

// String renders the origin name.
func (o Origin) String() string {
	for name, origin := range originNames {
		if origin == o {
			return name
		}
	}
	return "Custom"
}

// LoopType controls how an animation cycles through its frames.
type LoopType int

const (
	LoopForever LoopType = iota
	LoopOnce
)

// parseLoopType parses the named loop type spelling.
func parseLoopType(s string) (LoopType, error) {
	switch s {
	case "LoopForever":
		return LoopForever, nil
	case "LoopOnce":
		return LoopOnce, nil
	}
	return 0, fmt.Errorf("unknown loop type %q", s)
}

// String renders the loop type name.
func (l LoopType) String() string {
	if l == LoopOnce {
		return "LoopOnce"
	}
	return "LoopForever"
}

// AnimationParams is the frame data distinguishing an animation from a plain
// sprite.
type AnimationParams struct {
	FrameCount int
	FrameDelay Decimal
	LoopType   LoopType

	loopTypeOmitted bool // Source had no loop type field.
}

// Object is one storyboard sprite or animation with its command tree.
// Animation is nil for plain sprites.
type Object struct {
	Layer     Layer
	Origin    Origin
	FilePath  FilePath
	Position  *Position // nil when the header omitted the coordinates.
	Animation *AnimationParams
	Commands  []Command
}

// pushCmd attaches cmd to the tree at the given indentation depth: depth 1
// appends to the object's own list, deeper levels descend into the last
// block command one level per indent step.
func (o *Object) pushCmd(cmd Command, indent int) error {
	list := &o.Commands
	for depth := 1; depth < indent; depth++ {
		if len(*list) == 0 {
			return &InvalidIndentationError{Expected: depth, Got: indent}
		}
		children := childCommands((*list)[len(*list)-1])
		if children == nil {
			return &InvalidIndentationError{Expected: depth, Got: indent}
		}
		list = children
	}
	*list = append(*list, cmd)
	return nil
}

// parseObject parses a Sprite or Animation header after its type tag.
func parseObject(f *fields, animation bool) (*Object, error) {
	layerField, ok := f.next()
	if !ok {
		return nil, missingField("Layer")
	}
	layer, err := parseLayer(layerField)
	if err != nil {
		return nil, invalidField("Layer", err)
	}

	originField, ok := f.next()
	if !ok {
		return nil, missingField("Origin")
	}
	origin, err := parseOrigin(originField)
	if err != nil {
		return nil, invalidField("Origin", err)
	}

	pathField, ok := f.next()
	if !ok {
		return nil, missingField("FilePath")
	}

	obj := &Object{Layer: layer, Origin: origin, FilePath: parseFilePath(pathField)}

	if xField, ok := f.next(); ok {
		x, err := parseDecimal(xField)
		if err != nil {
			return nil, invalidField("X", err)
		}
		yField, ok := f.next()
		if !ok {
			return nil, missingField("Y")
		}
		y, err := parseDecimal(yField)
		if err != nil {
			return nil, invalidField("Y", err)
		}
		obj.Position = &Position{X: x, Y: y}
	}

	if animation {
		params := &AnimationParams{}
		countField, ok := f.next()
		if !ok {
			return nil, missingField("FrameCount")
		}
		if params.FrameCount, err = strconv.Atoi(countField); err != nil {
			return nil, invalidField("FrameCount", err)
		}
		delayField, ok := f.next()
		if !ok {
			return nil, missingField("FrameDelay")
		}
		if params.FrameDelay, err = parseDecimal(delayField); err != nil {
			return nil, invalidField("FrameDelay", err)
		}
		if loopField, ok := f.next(); ok {
			if params.LoopType, err = parseLoopType(loopField); err != nil {
				return nil, invalidField("LoopType", err)
			}
		} else {
			params.loopTypeOmitted = true
		}
		obj.Animation = params
	}

	return obj, nil
}

// appendLines serializes the object header and its command tree.
func (o *Object) appendLines(lines *[]string, version Version) {
	tag := "Sprite"
	if o.Animation != nil {
		tag = "Animation"
	}

	out := []string{tag, o.Layer.String(), o.Origin.String(), o.FilePath.String()}
	if o.Position != nil {
		out = append(out, o.Position.X.String(), o.Position.Y.String())
	}
	if o.Animation != nil {
		out = append(out, strconv.Itoa(o.Animation.FrameCount), o.Animation.FrameDelay.String())
		if !o.Animation.loopTypeOmitted {
			out = append(out, o.Animation.LoopType.String())
		}
	}

	*lines = append(*lines, strings.Join(out, ","))
	appendCommandLines(lines, o.Commands, 1)
}
