package parser

import (
	"fmt"

	pc "github.com/shibukawa/parsercombinator"
)

// ParseError is the structured syntax error surfaced by Parse: an offset
// into the parsed buffer, the productions expected there (when known),
// and a human-readable message. Unlike the teacher's multi-error
// aggregator, a single parse yields exactly one ParseError. Offset is
// not the furthest position the grammar reached; translateParseError
// and parseWithMap document where each offset comes from.
type ParseError struct {
	Offset   int
	Expected []string
	Message  string
}

func (e *ParseError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Message)
	}
	return fmt.Sprintf("parse error at offset %d: %s (expected one of %v)", e.Offset, e.Message, e.Expected)
}

// translateParseError adapts a parsercombinator failure into a
// *ParseError. An error that already is a *ParseError is returned as is.
// Any other error is not inspected for a failure position: its message
// is reported at the offset of the first token in tokens (0 when tokens
// is empty).
func translateParseError(err error, tokens []pc.Token[Entity]) *ParseError {
	if pe, ok := err.(*ParseError); ok {
		return pe
	}
	offset := 0
	if len(tokens) > 0 {
		offset = tokens[0].Pos.Index
	}
	return &ParseError{Offset: offset, Message: err.Error()}
}
