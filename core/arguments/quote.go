package arguments

import "strings"

// shellMetacharacters are escaped by ShellquoteCommand.
const shellMetacharacters = "$ \\><^&#!*'\"`~{}[]();|?"

// QuoteCommand doubles every backslash in command.
func QuoteCommand(command string) string {
	return strings.ReplaceAll(command, `\`, `\\`)
}

// ShellquoteCommand escapes shell metacharacters in the arguments of command
// with a backslash. The first space separates the binary from its arguments
// and is left as-is.
func ShellquoteCommand(command string) string {
	var sb strings.Builder
	sb.Grow(len(command) * 2)

	binaryFound := false
	for _, r := range command {
		switch {
		case r == ' ' && !binaryFound:
			binaryFound = true
		case strings.ContainsRune(shellMetacharacters, r):
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}

	return sb.String()
}
