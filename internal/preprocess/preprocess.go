// Package preprocess strips line and block comments from circuit-DSL
// source text before it reaches the parser, while preserving every byte
// offset so diagnostics can still point back into the original source.
//
// Grounded on the original Rust implementation's preprocess state machine
// (original_source/parser/src/parser_logic.rs), adapted to Go's byte-slice
// scanning idiom used by the teacher's internal/parser/scanner.go.
package preprocess

import (
	"fmt"
	"unicode/utf8"
)

// UnclosedCommentError reports an unterminated block comment. It aborts the
// file per spec.md §7's "Preprocessing fatal" error class.
type UnclosedCommentError struct {
	FileID int
	Start  int // byte offset of the opening "/*"
}

func (e *UnclosedCommentError) Error() string {
	return fmt.Sprintf("unclosed block comment starting at offset %d", e.Start)
}

const (
	stateCode = iota
	stateLineComment
	stateBlockComment
)

// Preprocess returns a byte-equivalent copy of source with every comment
// character replaced by ASCII space (0x20). A non-ASCII rune inside a
// comment is replaced by a run of spaces equal to its UTF-8 encoded length,
// and newline bytes inside a comment are preserved verbatim, so len(out) ==
// len(source) and every output byte is either the original byte or 0x20.
func Preprocess(source string, fileID int) (string, error) {
	out := make([]byte, 0, len(source))
	state := stateCode
	blockStart := 0

	i := 0
	n := len(source)
	for i < n {
		c := source[i]
		switch state {
		case stateCode:
			if c == '/' && i+1 < n && source[i+1] == '/' {
				out = append(out, ' ', ' ')
				state = stateLineComment
				i += 2
				continue
			}
			if c == '/' && i+1 < n && source[i+1] == '*' {
				blockStart = i
				out = append(out, ' ', ' ')
				state = stateBlockComment
				i += 2
				continue
			}
			out = append(out, c)
			i++

		case stateLineComment:
			if c == '\n' {
				out = append(out, '\n')
				state = stateCode
				i++
				continue
			}
			out = append(out, spaceRun(source, i)...)
			i += runeLen(source, i)

		case stateBlockComment:
			if c == '*' && i+1 < n && source[i+1] == '/' {
				out = append(out, ' ', ' ')
				state = stateCode
				i += 2
				continue
			}
			if c == '\n' {
				out = append(out, '\n')
				i++
				continue
			}
			out = append(out, spaceRun(source, i)...)
			i += runeLen(source, i)
		}
	}

	if state == stateBlockComment {
		return "", &UnclosedCommentError{FileID: fileID, Start: blockStart}
	}
	return string(out), nil
}

// runeLen returns the byte length of the UTF-8 rune starting at offset i.
func runeLen(s string, i int) int {
	_, size := utf8.DecodeRuneInString(s[i:])
	if size == 0 {
		return 1
	}
	return size
}

// spaceRun returns a run of ASCII spaces equal to the byte length of the
// rune starting at offset i, preserving the invariant that preprocessed
// output has the same length as the input.
func spaceRun(s string, i int) []byte {
	size := runeLen(s, i)
	spaces := make([]byte, size)
	for j := range spaces {
		spaces[j] = ' '
	}
	return spaces
}
