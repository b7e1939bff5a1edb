// Package tokenizer compiles command templates into literal and placeholder
// tokens and renders them for individual jobs.
//
// Placeholders:
//
//	{}     the job's argument line
//	{.}    the argument line without its extension
//	{/}    the basename of the argument line
//	{//}   the directory of the argument line
//	{/.}   the basename without its extension
//	{N}    (and {N.} {N/} {N//} {N/.}) the Nth space separated argument
//	{#}    the job's sequence number, starting at 1
//	{%}    the job's slot number, starting at 1
//	{##}   the total number of jobs
//
// Brace groups that don't look like a placeholder, like awk's '{print $1}',
// are kept as literal text.
package tokenizer

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/josephlewis42/parallel/core/filepaths"
	"github.com/spf13/afero"
)

var placeholderRegex = regexp.MustCompile(`^([0-9]*)(\.|/\.|//|/|##|#|%)?$`)

var modifierKinds = map[string]Kind{
	"":   Input,
	".":  InputNoExt,
	"/":  Basename,
	"//": Dirname,
	"/.": BasenameNoExt,
	"#":  JobNumber,
	"%":  Slot,
}

// Tokenize compiles template. The total number of jobs is substituted for
// {##} directly, and positional placeholders are checked against the number
// of arguments in the first record of the argument file at path.
func Tokenize(fs afero.Fs, template, path string, total int) ([]Token, error) {
	var tokens []Token
	maxIndex, maxIndexPos, maxIndexText := 0, 0, ""

	literalStart := 0
	for i := 0; i < len(template); i++ {
		if template[i] != '{' {
			continue
		}

		end := strings.IndexByte(template[i+1:], '}')
		if end < 0 {
			break
		}
		end += i + 1
		body := template[i+1 : end]

		match := placeholderRegex.FindStringSubmatch(body)
		if match == nil {
			continue
		}

		text := template[i : end+1]
		digits, modifier := match[1], match[2]

		var token Token
		switch {
		case modifier == "##" && digits == "":
			token = Token{Kind: Literal, Text: strconv.Itoa(total)}
		case digits == "":
			token = Token{Kind: modifierKinds[modifier]}
		case modifier == "#" || modifier == "##" || modifier == "%":
			return nil, &Error{Pos: i, Placeholder: text, Reason: "job placeholders don't take an index"}
		default:
			index, err := strconv.Atoi(digits)
			if err != nil || index == 0 {
				return nil, &Error{Pos: i, Placeholder: text, Reason: "index must be a positive number"}
			}
			token = Token{Kind: modifierKinds[modifier], Index: index}

			if index > maxIndex {
				maxIndex, maxIndexPos, maxIndexText = index, i, text
			}
		}

		tokens = pushLiteral(tokens, template[literalStart:i])
		if token.Kind == Literal {
			tokens = pushLiteral(tokens, token.Text)
		} else {
			tokens = append(tokens, token)
		}

		literalStart = end + 1
		i = end
	}
	tokens = pushLiteral(tokens, template[literalStart:])

	if maxIndex > 0 && total > 0 {
		arity, err := firstRecordArity(fs, path)
		if err != nil {
			return nil, err
		}
		if maxIndex > arity {
			return nil, &Error{
				Pos:         maxIndexPos,
				Placeholder: maxIndexText,
				Reason:      "index is larger than the " + strconv.Itoa(arity) + " argument(s) per job",
			}
		}
	}

	return tokens, nil
}

func pushLiteral(tokens []Token, text string) []Token {
	if text == "" {
		return tokens
	}

	if n := len(tokens); n > 0 && tokens[n-1].Kind == Literal {
		tokens[n-1].Text += text
		return tokens
	}

	return append(tokens, Token{Kind: Literal, Text: text})
}

func firstRecordArity(fs afero.Fs, path string) (int, error) {
	fd, err := fs.Open(path)
	if err != nil {
		return 0, filepaths.Wrap(filepaths.OpOpen, path, err)
	}
	defer fd.Close()

	line, err := bufio.NewReader(fd).ReadString('\n')
	switch {
	case err == io.EOF && line == "":
		return 0, filepaths.Wrap(filepaths.OpFormat, path, filepaths.ErrFormat)
	case err != nil && err != io.EOF:
		return 0, filepaths.Wrap(filepaths.OpRead, path, err)
	}

	return len(strings.Split(strings.TrimSuffix(line, "\n"), " ")), nil
}

// HasInput reports whether any token references the job's arguments.
func HasInput(tokens []Token) bool {
	for _, token := range tokens {
		if token.IsInput() {
			return true
		}
	}
	return false
}
