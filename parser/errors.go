package parser

import "fmt"

// Error reports malformed, incomplete or too deeply nested input at a 0-based
// byte offset.
type Error struct {
	Message string
	Offset  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d", e.Message, e.Offset)
}

func newError(rd *reader, message string) *Error {
	return &Error{Message: message, Offset: rd.offset()}
}

func unexpected(rd *reader) *Error {
	if rd.end {
		return newError(rd, "Unexpected end")
	}
	return newError(rd, "Unexpected character "+quote(rd.ch))
}

func expecting(rd *reader, what string) *Error {
	return newError(rd, "Expecting "+what)
}

func invalid(rd *reader, what string) *Error {
	if rd.end {
		return newError(rd, "Unexpected end")
	}
	return newError(rd, "Invalid "+what+" "+quote(rd.ch))
}

func tooDeep(rd *reader, depth int) *Error {
	return newError(rd, fmt.Sprintf("Too deep nesting %d", depth))
}

func quote(c byte) string {
	if c >= 0x80 {
		return fmt.Sprintf("'\\x%02x'", c)
	}
	return "'" + string(rune(c)) + "'"
}
