package tokenizer

import (
	"fmt"
	"strconv"
)

// Kind identifies what a token resolves to.
type Kind int

const (
	Literal       Kind = iota // Literal text, copied as-is.
	Input                     // {} or {N}
	InputNoExt                // {.} or {N.}
	Basename                  // {/} or {N/}
	Dirname                   // {//} or {N//}
	BasenameNoExt             // {/.} or {N/.}
	JobNumber                 // {#}
	Slot                      // {%}
)

var modifiers = map[Kind]string{
	Input:         "",
	InputNoExt:    ".",
	Basename:      "/",
	Dirname:       "//",
	BasenameNoExt: "/.",
	JobNumber:     "#",
	Slot:          "%",
}

// Token is one compiled unit of a command template.
type Token struct {
	Kind Kind
	// Text holds the contents of Literal tokens.
	Text string
	// Index selects a 1-based value from the job's arguments, 0 means the
	// whole argument line.
	Index int
}

// IsInput reports whether the token is replaced by (part of) the job's
// arguments.
func (t Token) IsInput() bool {
	return t.Kind >= Input && t.Kind <= BasenameNoExt
}

// String returns the template text the token was compiled from.
func (t Token) String() string {
	if t.Kind == Literal {
		return t.Text
	}

	index := ""
	if t.Index > 0 {
		index = strconv.Itoa(t.Index)
	}
	return fmt.Sprintf("{%s%s}", index, modifiers[t.Kind])
}

// Error is returned when a placeholder in a template can't be compiled.
type Error struct {
	// Pos is the byte offset of the placeholder's opening brace.
	Pos         int
	Placeholder string
	Reason      string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid placeholder %q at position %d: %s", e.Placeholder, e.Pos, e.Reason)
}
