// Package errors provides the Wabbit toolchain's uniform failure taxonomy:
// SyntaxError, TypeError, RuntimeError and InternalError, each carrying a
// source position and, when available, a caret-annotated source line.
package errors

import (
	"fmt"
	"strings"

	"github.com/povilasb/wabbit-go/internal/token"
)

// Kind distinguishes the four error categories a phase of the pipeline can
// raise.
type Kind string

const (
	SyntaxError   Kind = "SyntaxError"
	TypeError     Kind = "TypeError"
	RuntimeError  Kind = "RuntimeError"
	InternalError Kind = "InternalError"
)

// Error is a positioned, typed compiler/interpreter error.
type Error struct {
	Kind    Kind
	Message string
	Pos     token.Position
	Source  string // full source text, for caret context; empty if unavailable
	File    string // source file name, empty if unavailable (e.g. inline eval)
}

func New(kind Kind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func (e *Error) Error() string {
	return e.Format(false)
}

// WithSource attaches the original source text and file name so Format can
// render a caret-annotated context line.
func (e *Error) WithSource(source, file string) *Error {
	e.Source = source
	e.File = file
	return e
}

// Format renders the error as "Error: <kind> at [<file>:]<line>:<col>: <message>"
// when the position is valid, or "Error: <kind>: <message>" otherwise, preceded
// by a source line and caret when position and source are both available.
func (e *Error) Format(color bool) string {
	var sb strings.Builder

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+max(e.Pos.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^\n")
		if color {
			sb.WriteString("\033[0m")
		}
	}

	if e.Pos.IsValid() {
		where := fmt.Sprintf("%d:%d", e.Pos.Line, e.Pos.Column)
		if e.File != "" {
			where = e.File + ":" + where
		}
		sb.WriteString(fmt.Sprintf("Error: %s at %s: %s", e.Kind, where, e.Message))
	} else {
		sb.WriteString(fmt.Sprintf("Error: %s: %s", e.Kind, e.Message))
	}

	return sb.String()
}

func (e *Error) sourceLine(lineNum int) string {
	if e.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
