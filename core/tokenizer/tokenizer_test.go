package tokenizer

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/josephlewis42/parallel/core/filepaths"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

const argsPath = "/tmp/args"

func newArgsFs(t *testing.T, contents string) afero.Fs {
	t.Helper()

	memFs := afero.NewMemMapFs()
	if err := afero.WriteFile(memFs, argsPath, []byte(contents), 0600); err != nil {
		t.Fatal(err)
	}
	return memFs
}

func TestTokenize(t *testing.T) {
	cases := map[string]struct {
		template string
		expected []Token
	}{
		"empty": {
			template: "",
			expected: nil,
		},
		"no-placeholders": {
			template: "echo hello",
			expected: []Token{{Kind: Literal, Text: "echo hello"}},
		},
		"input": {
			template: "echo {} done",
			expected: []Token{
				{Kind: Literal, Text: "echo "},
				{Kind: Input},
				{Kind: Literal, Text: " done"},
			},
		},
		"adjacent": {
			template: "{}{.}",
			expected: []Token{{Kind: Input}, {Kind: InputNoExt}},
		},
		"all-modifiers": {
			template: "{/} {//} {/.} {#} {%}",
			expected: []Token{
				{Kind: Basename},
				{Kind: Literal, Text: " "},
				{Kind: Dirname},
				{Kind: Literal, Text: " "},
				{Kind: BasenameNoExt},
				{Kind: Literal, Text: " "},
				{Kind: JobNumber},
				{Kind: Literal, Text: " "},
				{Kind: Slot},
			},
		},
		"positional": {
			template: "cp {1} {2/}",
			expected: []Token{
				{Kind: Literal, Text: "cp "},
				{Kind: Input, Index: 1},
				{Kind: Literal, Text: " "},
				{Kind: Basename, Index: 2},
			},
		},
		"total-is-literal": {
			template: "echo {#}/{##}",
			expected: []Token{
				{Kind: Literal, Text: "echo "},
				{Kind: JobNumber},
				{Kind: Literal, Text: "/3"},
			},
		},
		"awk-braces-are-literal": {
			template: "awk '{print $1}' {}",
			expected: []Token{
				{Kind: Literal, Text: "awk '{print $1}' "},
				{Kind: Input},
			},
		},
		"unterminated": {
			template: "echo {} {",
			expected: []Token{
				{Kind: Literal, Text: "echo "},
				{Kind: Input},
				{Kind: Literal, Text: " {"},
			},
		},
		"nested-open-brace": {
			template: "{{}}",
			expected: []Token{
				{Kind: Literal, Text: "{"},
				{Kind: Input},
				{Kind: Literal, Text: "}"},
			},
		},
	}

	memFs := newArgsFs(t, "a b\nc d\ne f\n")

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			tokens, err := Tokenize(memFs, tc.template, argsPath, 3)
			assert.Nil(t, err)

			if diff := cmp.Diff(tc.expected, tokens); diff != "" {
				t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenize_reconstructs(t *testing.T) {
	templates := []string{
		"echo hello",
		"convert {} {.}.png",
		"mv {1} {2//}/{1/.}.bak # {#} of {%}",
		"sh -c 'echo {}' {x} {}}",
	}

	memFs := newArgsFs(t, "a b\n")
	for _, template := range templates {
		t.Run(template, func(t *testing.T) {
			tokens, err := Tokenize(memFs, template, argsPath, 1)
			assert.Nil(t, err)

			var sb strings.Builder
			for _, token := range tokens {
				sb.WriteString(token.String())
			}
			assert.Equal(t, template, sb.String())
		})
	}
}

func TestTokenize_errors(t *testing.T) {
	cases := map[string]struct {
		template    string
		pos         int
		placeholder string
	}{
		"zero-index":      {"echo {0}", 5, "{0}"},
		"zero-with-ext":   {"echo {} {00.}", 8, "{00.}"},
		"indexed-job":     {"echo {1#}", 5, "{1#}"},
		"indexed-slot":    {"{2%}", 0, "{2%}"},
		"indexed-total":   {"x{3##}", 1, "{3##}"},
		"too-large":       {"echo {99999999999999999999}", 5, "{99999999999999999999}"},
		"index-too-large": {"echo {1} {3}", 9, "{3}"},
	}

	memFs := newArgsFs(t, "a b\nc\n")

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			_, err := Tokenize(memFs, tc.template, argsPath, 2)

			var tokenErr *Error
			if !errors.As(err, &tokenErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			assert.Equal(t, tc.pos, tokenErr.Pos)
			assert.Equal(t, tc.placeholder, tokenErr.Placeholder)
		})
	}
}

func TestTokenize_arityFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Tokenize(afero.NewMemMapFs(), "{1}", argsPath, 1)

		var fileErr *filepaths.Error
		assert.True(t, errors.As(err, &fileErr))
		assert.Equal(t, filepaths.OpOpen, fileErr.Op)
	})

	t.Run("no jobs skips the check", func(t *testing.T) {
		tokens, err := Tokenize(afero.NewMemMapFs(), "{5}", argsPath, 0)
		assert.Nil(t, err)
		assert.Equal(t, []Token{{Kind: Input, Index: 5}}, tokens)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := Tokenize(newArgsFs(t, ""), "{1}", argsPath, 1)

		var fileErr *filepaths.Error
		assert.True(t, errors.As(err, &fileErr))
		assert.Equal(t, filepaths.OpFormat, fileErr.Op)
	})

	t.Run("unterminated record", func(t *testing.T) {
		tokens, err := Tokenize(newArgsFs(t, "a b c"), "{3}", argsPath, 1)
		assert.Nil(t, err)
		assert.Equal(t, []Token{{Kind: Input, Index: 3}}, tokens)
	})
}

func TestError(t *testing.T) {
	err := &Error{Pos: 4, Placeholder: "{0}", Reason: "index must be a positive number"}

	assert.Equal(t, `invalid placeholder "{0}" at position 4: index must be a positive number`, err.Error())
}
