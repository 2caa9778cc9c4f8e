package errors

import "fmt"

// Assert panics with an InternalError if condition is false. Use it for
// conditions a correct pipeline can never violate (an operator token that
// passed the parser but has no case in the emitter, a malformed literal
// lexeme, etc) — these are implementation bugs, not user-facing failures.
func Assert(condition bool, format string, args ...any) {
	if !condition {
		panic(&Error{Kind: InternalError, Message: fmt.Sprintf(format, args...)})
	}
}
