package osufile

import (
	"fmt"
	"sort"
	"strings"
)

// Variable is one `$name=value` binding from an .osb [Variables] section.
// The stored name carries no `$` prefix.
type Variable struct {
	Name  string
	Value string
}

// Osb is a storyboard document: the two sections of an .osb file.
type Osb struct {
	Variables []Variable
	Events    *Events
}

// ParseOsb parses an .osb document at the given version. Only the
// [Variables] and [Events] sections exist in storyboard files.
func ParseOsb(s string, version Version) (*Osb, error) {
	lines := splitLines(stripBOM(s))
	sections, err := splitSections(lines, 0)
	if err != nil {
		return nil, err
	}

	osb := &Osb{}
	seen := map[string]bool{}
	for _, sec := range sections {
		if seen[sec.name] {
			return nil, errLine(fmt.Errorf("%w [%s]", ErrDuplicateSection, sec.name), sec.nameLine)
		}
		seen[sec.name] = true
		switch sec.name {
		case "Variables", "Events":
		default:
			return nil, errLine(fmt.Errorf("%w `%s`", ErrUnknownSection, sec.name), sec.nameLine)
		}
	}

	// Variables bind before the events that reference them, wherever the
	// section sits in the file.
	for _, sec := range sections {
		if sec.name != "Variables" {
			continue
		}
		if osb.Variables, err = parseVariables(sec.body); err != nil {
			return nil, errLine(err, sec.bodyLine)
		}
	}
	for _, sec := range sections {
		if sec.name != "Events" {
			continue
		}
		events, err := parseEvents(sec.body, version, osb.Variables)
		if err != nil {
			return nil, errLine(err, sec.bodyLine)
		}
		osb.Events = events
	}

	return osb, nil
}

// parseVariables parses the [Variables] section body.
func parseVariables(body string) ([]Variable, error) {
	var vars []Variable
	for i, line := range splitLines(body) {
		if blankLine(line) {
			continue
		}
		name, value, found := strings.Cut(line, "=")
		if !found || !strings.HasPrefix(name, "$") || len(name) < 2 {
			return nil, errLine(ErrVariableSyntax, i)
		}
		vars = append(vars, Variable{Name: name[1:], Value: value})
	}
	return vars, nil
}

// substituteVariables replaces every `$name` occurrence with its value.
func substituteVariables(line string, vars []Variable) string {
	if len(vars) == 0 || !strings.Contains(line, "$") {
		return line
	}
	for _, v := range vars {
		line = strings.ReplaceAll(line, "$"+v.Name, v.Value)
	}
	return line
}

// reverseSubstitute restores variable references in a serialized line,
// replacing values greedily longest-value-first.
func reverseSubstitute(line string, vars []Variable) string {
	if len(vars) == 0 {
		return line
	}
	ordered := make([]Variable, len(vars))
	copy(ordered, vars)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Value) > len(ordered[j].Value)
	})
	for _, v := range ordered {
		if v.Value == "" {
			continue
		}
		line = strings.ReplaceAll(line, v.Value, "$"+v.Name)
	}
	return line
}

// render serializes the storyboard document. Storyboard files only exist
// from v14 on.
func (o *Osb) render(version Version) (string, bool) {
	if version < 14 {
		return "", false
	}

	var parts []string
	if len(o.Variables) > 0 {
		lines := make([]string, len(o.Variables))
		for i, v := range o.Variables {
			lines[i] = "$" + v.Name + "=" + v.Value
		}
		parts = append(parts, "[Variables]\n"+strings.Join(lines, "\n"))
	}
	if o.Events != nil {
		body, _ := o.Events.render(version)
		lines := splitLines(body)
		for i, line := range lines {
			lines[i] = reverseSubstitute(line, o.Variables)
		}
		parts = append(parts, "[Events]\n"+strings.Join(lines, "\n"))
	}

	return strings.Join(parts, "\n\n") + "\n", true
}
