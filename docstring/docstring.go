// Package docstring extracts structured sections (description, per-parameter
// descriptions, return description) from free-form documentation text. Both
// Google-style ("Args:" with "name (type): text" entries) and
// reStructuredText-style section headers are handled by the same
// indentation-tracking state machine.
package docstring

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyDocstring is returned for empty or whitespace-only input.
	ErrEmptyDocstring = errors.New("docstring is empty, provide a docstring with a function description")
	// ErrMissingDescription is returned when the docstring contains sections
	// but no free-text function description.
	ErrMissingDescription = errors.New("function description is missing in the docstring")
)

// Info holds the structured sections extracted from a docstring. Parameters
// listed without any description text are omitted from Params entirely.
type Info struct {
	Description string
	Params      map[string]string
	Returns     string
}

type state int

const (
	stateDescription state = iota
	stateArgs
	stateReturns
	stateEnd
)

type section int

const (
	sectionNone section = iota
	sectionArgs
	sectionReturns
)

// lineClass is the classification of one input line: whether it opens a new
// section, its indentation, and its left-trimmed content. classify is used
// both by the main loop and by the re-dispatch path taken when a dedented
// line closes the current section.
type lineClass struct {
	section section
	indent  int
	content string
}

func classify(line string) lineClass {
	content := strings.TrimLeft(line, " \t")
	c := lineClass{indent: len(line) - len(content), content: content}
	switch content {
	case "Args:", "Arguments:":
		c.section = sectionArgs
	case "Returns:":
		c.section = sectionReturns
	}
	return c
}

type parser struct {
	state state

	descriptionLines []string

	params       map[string]string
	currentParam string
	paramLines   []string
	paramIndent  int // -1 until the first parameter line fixes the base indent

	returnLines  []string
	returnIndent int
}

// Parse extracts the structured sections from a docstring.
//
// The description accumulates every non-blank line before the first section
// header, joined by single spaces. Within Args, the first non-blank line
// fixes the base indent: lines at base indent containing a colon start a new
// parameter (a trailing parenthesized type annotation on the name is
// stripped), deeper or colon-free lines continue the current parameter's
// description, and a dedented line closes the section and is re-dispatched.
// Returns accumulates analogously.
func Parse(doc string) (Info, error) {
	if strings.TrimSpace(doc) == "" {
		return Info{}, ErrEmptyDocstring
	}

	p := &parser{
		params:       map[string]string{},
		paramIndent:  -1,
		returnIndent: -1,
	}

	for _, line := range strings.Split(strings.TrimSpace(doc), "\n") {
		p.feed(line)
	}
	p.flushParam()

	description := strings.TrimSpace(strings.Join(p.descriptionLines, " "))
	if description == "" {
		return Info{}, ErrMissingDescription
	}

	info := Info{Description: description, Params: p.params}
	if len(p.returnLines) > 0 {
		info.Returns = strings.TrimSpace(strings.Join(p.returnLines, " "))
	}
	return info, nil
}

func (p *parser) feed(line string) {
	if strings.TrimSpace(line) == "" {
		// A blank line closes out the current parameter once description
		// text has accumulated. A parameter still waiting on its first
		// description line stays open so an indented continuation after the
		// blank can attach to it.
		if p.state == stateArgs && len(p.paramLines) > 0 {
			p.flushParam()
		}
		return
	}

	c := classify(line)

	switch p.state {
	case stateDescription:
		if p.dispatch(c) {
			return
		}
		p.descriptionLines = append(p.descriptionLines, c.content)

	case stateArgs:
		if c.section == sectionReturns {
			p.flushParam()
			p.state = stateReturns
			return
		}
		if p.paramIndent < 0 {
			p.paramIndent = c.indent
		}
		if c.indent < p.paramIndent {
			// Dedent ends the Args section; the line is re-dispatched as if
			// freshly encountered.
			p.flushParam()
			p.state = stateEnd
			p.dispatch(c)
			return
		}
		p.feedParamLine(c)

	case stateReturns:
		if p.returnIndent < 0 {
			p.returnIndent = c.indent
		}
		if c.indent < p.returnIndent {
			p.state = stateEnd
			p.dispatch(c)
			return
		}
		p.returnLines = append(p.returnLines, c.content)

	case stateEnd:
		// Content after all recognized sections is ignored.
	}
}

// dispatch transitions on a section header line, resetting that section's
// base indent. It reports whether the line was consumed as a header.
func (p *parser) dispatch(c lineClass) bool {
	switch c.section {
	case sectionArgs:
		p.state = stateArgs
		p.paramIndent = -1
	case sectionReturns:
		p.state = stateReturns
		p.returnIndent = -1
	default:
		return false
	}
	return true
}

func (p *parser) feedParamLine(c lineClass) {
	name, desc, hasColon := strings.Cut(c.content, ":")
	if hasColon && c.indent == p.paramIndent {
		p.flushParam()
		p.currentParam = paramName(strings.TrimSpace(name))
		if desc = strings.TrimSpace(desc); desc != "" {
			p.paramLines = append(p.paramLines, desc)
		}
		return
	}
	// Deeper-indented or colon-free lines continue the current parameter.
	if p.currentParam != "" {
		p.paramLines = append(p.paramLines, c.content)
	}
}

// paramName strips a trailing parenthesized type annotation,
// e.g. "x (int)" -> "x".
func paramName(part string) string {
	if strings.HasSuffix(part, ")") {
		if base, _, ok := strings.Cut(part, "("); ok {
			return strings.TrimSpace(base)
		}
	}
	return part
}

// flushParam stores the accumulated description for the open parameter.
// Parameters that accumulated no text are dropped rather than stored empty.
func (p *parser) flushParam() {
	if p.currentParam != "" && len(p.paramLines) > 0 {
		if desc := strings.TrimSpace(strings.Join(p.paramLines, " ")); desc != "" {
			p.params[p.currentParam] = desc
		}
	}
	p.currentParam = ""
	p.paramLines = nil
}
