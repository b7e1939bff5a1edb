package tokenizer

import (
	"path"
	"strconv"
	"strings"
)

// Job holds the per-job state placeholders are resolved from.
type Job struct {
	// Number is the 1-based sequence number of the job.
	Number int
	// Slot is the 1-based execution slot the job runs in.
	Slot int
	// Args is the job's argument line.
	Args string
}

// Expand renders tokens for a single job. If no token references the job's
// arguments they're appended to the end, separated by a space.
func Expand(tokens []Token, job Job) string {
	var sb strings.Builder
	var values []string

	for _, token := range tokens {
		switch token.Kind {
		case Literal:
			sb.WriteString(token.Text)
		case JobNumber:
			sb.WriteString(strconv.Itoa(job.Number))
		case Slot:
			sb.WriteString(strconv.Itoa(job.Slot))
		default:
			arg := job.Args
			if token.Index > 0 {
				if values == nil {
					values = strings.Split(job.Args, " ")
				}
				arg = ""
				if token.Index <= len(values) {
					arg = values[token.Index-1]
				}
			}
			sb.WriteString(modify(token.Kind, arg))
		}
	}

	if !HasInput(tokens) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(job.Args)
	}

	return sb.String()
}

func modify(kind Kind, arg string) string {
	switch kind {
	case InputNoExt:
		return removeExtension(arg)
	case Basename:
		return basename(arg)
	case Dirname:
		return path.Dir(arg)
	case BasenameNoExt:
		return removeExtension(basename(arg))
	default:
		return arg
	}
}

func basename(arg string) string {
	return arg[strings.LastIndexByte(arg, '/')+1:]
}

func removeExtension(arg string) string {
	return strings.TrimSuffix(arg, path.Ext(arg))
}
