package parser

import "fmt"

// ParseError reports a parse-fatal condition: an invalid, unrecognized, or
// extra token (spec.md §7's "Parse fatal" class). It carries a byte range
// when the offending token has one, else a zero-width point.
type ParseError struct {
	FileID  int
	Start   int
	End     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at byte %d: %s", e.Start, e.Message)
}
