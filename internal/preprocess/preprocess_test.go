package preprocess

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocess_LengthPreserved(t *testing.T) {
	inputs := []string{
		"signal input in;\n// a comment\nvar x = 1;",
		"/* block\n   comment */ var y = 2;",
		"no comments here at all",
		"",
	}
	for _, in := range inputs {
		out, err := Preprocess(in, 0)
		assert.NoError(t, err)
		assert.Equal(t, len(in), len(out), "byte length must be preserved for %q", in)
	}
}

func TestPreprocess_EveryByteUnchangedOrSpace(t *testing.T) {
	in := "var x = 1; // comment with µ and 日\nvar y = 2;"
	out, err := Preprocess(in, 0)
	assert.NoError(t, err)
	for i := 0; i < len(in); i++ {
		assert.True(t, out[i] == in[i] || out[i] == ' ', "byte %d: got %q want %q or space", i, out[i], in[i])
	}
}

func TestPreprocess_NewlinesPreserved(t *testing.T) {
	in := "var x = 1; /* block\ncomment\nspanning lines */ var y = 2;"
	out, err := Preprocess(in, 0)
	assert.NoError(t, err)
	for i, c := range in {
		if c == '\n' {
			assert.Equal(t, byte('\n'), out[i], "newline at offset %d must be preserved", i)
		}
	}
}

func TestPreprocess_LineCommentInsideBlockCommentIsNotOpener(t *testing.T) {
	in := "/* // not a line comment opener */ var z = 1;"
	out, err := Preprocess(in, 0)
	assert.NoError(t, err)
	assert.Equal(t, len(in), len(out))
	assert.True(t, strings.HasSuffix(out, "var z = 1;"))
}

func TestPreprocess_UnterminatedBlockComment(t *testing.T) {
	_, err := Preprocess("/* unterminated", 7)
	assert.Error(t, err)
	var unclosed *UnclosedCommentError
	assert.ErrorAs(t, err, &unclosed)
	assert.Equal(t, 7, unclosed.FileID)
	assert.Equal(t, 0, unclosed.Start)
}

func TestPreprocess_LineCommentEOFNoNewline(t *testing.T) {
	out, err := Preprocess("// eof no newline", 0)
	assert.NoError(t, err)
	assert.Equal(t, strings.Repeat(" ", len("// eof no newline")), out)
}

func TestPreprocess_NonASCIIInsideComment(t *testing.T) {
	// "日" is 3 bytes in UTF-8; it should become 3 spaces, not 1.
	in := "// 日\nx"
	out, err := Preprocess(in, 0)
	assert.NoError(t, err)
	assert.Equal(t, len(in), len(out))
	assert.Equal(t, "      \nx", out)
}

func TestPreprocess_UnclosedBlockCommentLocation(t *testing.T) {
	in := "var x = 1;\n/* never closes"
	_, err := Preprocess(in, 3)
	assert.Error(t, err)
	var unclosed *UnclosedCommentError
	assert.ErrorAs(t, err, &unclosed)
	assert.Equal(t, strings.Index(in, "/*"), unclosed.Start)
}
