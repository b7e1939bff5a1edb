package arguments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteCommand(t *testing.T) {
	cases := map[string]struct {
		command  string
		expected string
	}{
		"no-backslash": {`echo hello`, `echo hello`},
		"one":          {`echo a\b`, `echo a\\b`},
		"several":      {`printf '\n\t' \\`, `printf '\\n\\t' \\\\`},
		"other-chars":  {`echo $HOME & {} "x"`, `echo $HOME & {} "x"`},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.expected, QuoteCommand(tc.command))
		})
	}
}

func TestQuoteCommand_notIdempotent(t *testing.T) {
	once := QuoteCommand(`a\b`)
	twice := QuoteCommand(once)

	assert.Equal(t, `a\\b`, once)
	assert.Equal(t, `a\\\\b`, twice)
	assert.NotEqual(t, once, twice)
}

func TestShellquoteCommand(t *testing.T) {
	cases := map[string]struct {
		command  string
		expected string
	}{
		"first-space-kept": {`cmd a&b`, `cmd a\&b`},
		"later-spaces":     {`echo a b`, `echo a\ b`},
		"binary-only":      {`ls`, `ls`},
		"metacharacters": {
			"x $\\><^&#!*'\"`~{}[]();|?",
			"x \\$\\\\\\>\\<\\^\\&\\#\\!\\*\\'\\\"\\`\\~\\{\\}\\[\\]\\(\\)\\;\\|\\?",
		},
		"metacharacter-in-binary": {`a;b c`, `a\;b c`},
		"unicode":                 {`echo héllo wörld`, `echo héllo\ wörld`},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.expected, ShellquoteCommand(tc.command))
		})
	}
}
