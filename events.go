package osufile

import (
	"fmt"
	"strconv"
	"strings"
)

// Events holds the [Events] section: an ordered mix of comments, normal
// events and storyboard objects.
type Events struct {
	Entries []Event
}

// Event is one entry of the [Events] section.
type Event interface {
	// appendLines serializes the entry at the given version. Entries that do
	// not exist at the version append nothing.
	appendLines(lines *[]string, version Version)
}

// Comment is a `//` line, stored without the marker.
type Comment string

func (c Comment) appendLines(lines *[]string, _ Version) {
	*lines = append(*lines, "//"+string(c))
}

// Background sets the beatmap background image.
type Background struct {
	StartTime int
	FileName  FilePath
	Position  *Position // nil when the record omitted the coordinates.
}

func (b Background) appendLines(lines *[]string, _ Version) {
	out := []string{"0", strconv.Itoa(b.StartTime), b.FileName.String()}
	out = appendPosition(out, b.Position)
	*lines = append(*lines, strings.Join(out, ","))
}

// Video plays a background video from StartTime.
type Video struct {
	StartTime int
	FileName  FilePath
	Position  *Position

	shortForm bool // Source used the numeric `1` tag.
}

func (v Video) appendLines(lines *[]string, version Version) {
	tag := "Video"
	if v.shortForm {
		tag = "1"
	}
	out := []string{tag, strconv.Itoa(emitTime(v.StartTime, version)), v.FileName.String()}
	out = appendPosition(out, v.Position)
	*lines = append(*lines, strings.Join(out, ","))
}

// Break pauses gameplay between its two times.
type Break struct {
	StartTime int
	EndTime   int

	shortForm bool // Source used the numeric `2` tag.
}

func (b Break) appendLines(lines *[]string, version Version) {
	tag := "Break"
	if b.shortForm {
		tag = "2"
	}
	*lines = append(*lines, fmt.Sprintf("%s,%d,%d",
		tag, emitTime(b.StartTime, version), emitTime(b.EndTime, version)))
}

// ColourTransformation tints the background. The event type was dropped from
// the format in v14 and is omitted when serializing at it.
type ColourTransformation struct {
	StartTime int
	Rgb       Rgb
}

func (c ColourTransformation) appendLines(lines *[]string, version Version) {
	if version >= 14 {
		return
	}
	*lines = append(*lines, fmt.Sprintf("3,%d,%s", emitTime(c.StartTime, version), c.Rgb))
}

// AudioSample plays a one-shot sound at Time on a storyboard layer.
type AudioSample struct {
	Time     int
	Layer    Layer
	FilePath FilePath
	Volume   int // 1-100.

	volumeOmitted bool // Source had no volume field.
}

func (a AudioSample) appendLines(lines *[]string, _ Version) {
	out := []string{"Sample", strconv.Itoa(a.Time), strconv.Itoa(int(a.Layer)), a.FilePath.String()}
	if !a.volumeOmitted {
		out = append(out, strconv.Itoa(a.Volume))
	}
	*lines = append(*lines, strings.Join(out, ","))
}

// RawEvent is a legacy event record (types 4, 5 and 6) carried verbatim.
type RawEvent string

func (r RawEvent) appendLines(lines *[]string, _ Version) {
	*lines = append(*lines, string(r))
}

// appendPosition appends the optional trailing coordinate pair.
func appendPosition(out []string, pos *Position) []string {
	if pos != nil {
		out = append(out, pos.X.String(), pos.Y.String())
	}
	return out
}

// emitTime reverses the time shift applied to old-version events at parse.
func emitTime(t int, version Version) int {
	if version.old() {
		return t - oldVersionTimeOffset
	}
	return t
}

// parseEvents parses the [Events] section body. vars, when non-nil, is the
// storyboard variable list applied to each line before tokenisation.
func parseEvents(body string, version Version, vars []Variable) (*Events, error) {
	events := &Events{}
	var lastObject *Object

	for i, line := range splitLines(body) {
		if blankLine(line) {
			continue
		}

		if strings.HasPrefix(line, "//") {
			events.Entries = append(events.Entries, Comment(line[2:]))
			continue
		}

		line = substituteVariables(line, vars)

		if indent := countIndent(line); indent > 0 {
			cmd, err := parseCommand(line[indent:])
			if err != nil {
				return nil, errLine(err, i)
			}
			if lastObject == nil {
				return nil, errLine(ErrCommandWithNoObject, i)
			}
			if err := lastObject.pushCmd(cmd, indent); err != nil {
				return nil, errLine(err, i)
			}
			continue
		}

		entry, obj, err := parseEvent(line, version)
		if err != nil {
			return nil, errLine(err, i)
		}
		if obj != nil {
			lastObject = obj
		}
		events.Entries = append(events.Entries, entry)
	}

	return events, nil
}

// parseEvent parses one non-indented event line. The returned *Object is
// non-nil for storyboard object headers, which later command lines attach to.
func parseEvent(line string, version Version) (Event, *Object, error) {
	f := newFields(line)
	tag, _ := f.next()

	parseTime := func(name, field string) (int, error) {
		t, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return 0, invalidField(name, err)
		}
		if version.old() {
			t += oldVersionTimeOffset
		}
		return t, nil
	}
	nextInt := func(name string) (int, error) {
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
	optPosition := func() (*Position, error) {
		xField, ok := f.next()
		if !ok {
			return nil, nil
		}
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
		return &Position{X: x, Y: y}, nil
	}

	switch tag {
	case "0", "Background":
		start, err := nextInt("StartTime")
		if err != nil {
			return nil, nil, err
		}
		pathField, ok := f.next()
		if !ok {
			return nil, nil, missingField("FileName")
		}
		pos, err := optPosition()
		if err != nil {
			return nil, nil, err
		}
		return Background{StartTime: start, FileName: parseFilePath(pathField), Position: pos}, nil, nil

	case "1", "Video":
		startField, ok := f.next()
		if !ok {
			return nil, nil, missingField("StartTime")
		}
		start, err := parseTime("StartTime", startField)
		if err != nil {
			return nil, nil, err
		}
		pathField, ok := f.next()
		if !ok {
			return nil, nil, missingField("FileName")
		}
		pos, err := optPosition()
		if err != nil {
			return nil, nil, err
		}
		return Video{
			StartTime: start,
			FileName:  parseFilePath(pathField),
			Position:  pos,
			shortForm: tag == "1",
		}, nil, nil

	case "2", "Break":
		startField, ok := f.next()
		if !ok {
			return nil, nil, missingField("StartTime")
		}
		start, err := parseTime("StartTime", startField)
		if err != nil {
			return nil, nil, err
		}
		endField, ok := f.next()
		if !ok {
			return nil, nil, missingField("EndTime")
		}
		end, err := parseTime("EndTime", endField)
		if err != nil {
			return nil, nil, err
		}
		return Break{StartTime: start, EndTime: end, shortForm: tag == "2"}, nil, nil

	case "3":
		startField, ok := f.next()
		if !ok {
			return nil, nil, missingField("StartTime")
		}
		start, err := parseTime("StartTime", startField)
		if err != nil {
			return nil, nil, err
		}
		rest, _ := f.remainder()
		rgb, err := parseRgb(rest)
		if err != nil {
			return nil, nil, err
		}
		return ColourTransformation{StartTime: start, Rgb: rgb}, nil, nil

	case "4", "5", "6":
		// Legacy event layouts with partial game support; kept verbatim.
		return RawEvent(line), nil, nil

	case "Sprite", "Animation":
		obj, err := parseObject(f, tag == "Animation")
		if err != nil {
			return nil, nil, err
		}
		return obj, obj, nil

	case "Sample":
		time, err := nextInt("Time")
		if err != nil {
			return nil, nil, err
		}
		layerField, ok := f.next()
		if !ok {
			return nil, nil, missingField("Layer")
		}
		layer, err := parseEventLayer(layerField)
		if err != nil {
			return nil, nil, err
		}
		pathField, ok := f.next()
		if !ok {
			return nil, nil, missingField("FilePath")
		}
		sample := AudioSample{Time: time, Layer: layer, FilePath: parseFilePath(pathField)}
		if volField, ok := f.next(); ok {
			n, err := strconv.Atoi(strings.TrimSpace(volField))
			if err != nil {
				return nil, nil, invalidField("Volume", err)
			}
			if n < 1 || n > 100 {
				return nil, nil, invalidField("Volume", errOutOfRange(n))
			}
			sample.Volume = n
		} else {
			sample.Volume = 100
			sample.volumeOmitted = true
		}
		return sample, nil, nil
	}

	return nil, nil, fmt.Errorf("%w %q", ErrUnknownEventType, tag)
}

// parseEventLayer parses an audio sample layer, by index or name.
func parseEventLayer(s string) (Layer, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 3 {
			return 0, invalidField("Layer", errOutOfRange(n))
		}
		return Layer(n), nil
	}
	layer, err := parseLayer(s)
	if err != nil {
		return 0, invalidField("Layer", err)
	}
	return layer, nil
}

// render serializes the section body at the given version.
func (e *Events) render(version Version) (string, bool) {
	var lines []string
	for _, entry := range e.Entries {
		entry.appendLines(&lines, version)
	}
	return strings.Join(lines, "\n"), true
}
