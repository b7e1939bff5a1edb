package arguments

import (
	"bufio"
	"strings"
	"unicode/utf8"

	"github.com/josephlewis42/parallel/core/filepaths"
	"github.com/spf13/afero"
)

// maxLineSize is the longest line accepted from an input file.
const maxLineSize = 1024 * 1024

// Grammar is the result of classifying the program's arguments.
type Grammar struct {
	Flags Flags
	// Jobs is the number of jobs to run at once.
	Jobs int
	// Command is the space joined command template.
	Command    string
	Lists      [][]string
	Quote      bool
	Shellquote bool
	// Exit is set when an option asked to print a message and stop.
	Exit *Exit
}

// grammar is the state machine that classifies arguments. Each mode has its
// own transition method returning the mode for the next argument.
type grammar struct {
	fs   afero.Fs
	opts *options

	mode    Mode
	command []string
	lists   [][]string
	current []string
	flags   Flags
}

// ParseGrammar classifies args, which exclude the program name. Values
// following :::: are paths of files that are read through fs, one input
// per line. cores is the default number of jobs.
func ParseGrammar(fs afero.Fs, args []string, cores int) (*Grammar, error) {
	if len(args) == 0 {
		return nil, parseError(ErrNoArguments, "")
	}

	g := &grammar{
		fs:    fs,
		opts:  newOptions(cores),
		mode:  Arguments,
		flags: DefaultFlags(),
	}

	rest, err := g.arguments(args)
	if err != nil {
		return nil, err
	}

	result := &Grammar{Flags: g.flags}
	g.opts.apply(result)
	if result.Exit != nil {
		return result, nil
	}

	for _, arg := range rest {
		switch g.mode {
		case Command:
			g.mode = g.commandWord(arg)
		default:
			if g.mode, err = g.input(arg); err != nil {
				return nil, err
			}
		}
	}
	g.closeList()

	result.Command = strings.Join(g.command, " ")
	result.Lists = g.lists
	return result, nil
}

// arguments decodes options then switches mode on the first argument that
// isn't one. It returns the arguments left for the other modes.
func (g *grammar) arguments(args []string) ([]string, error) {
	rest, err := g.opts.parse(args)
	if err != nil || g.opts.exit != nil || len(rest) == 0 {
		return nil, err
	}

	switch first := rest[0]; first {
	case NewInputList:
		g.mode = Inputs
		g.flags.InputsAreCommands = true
	case NewFileList:
		g.mode = Files
		g.flags.InputsAreCommands = true
	default:
		g.mode = Command
		g.command = append(g.command, first)
	}

	return rest[1:], nil
}

// commandWord adds arg to the command template. There's no list to continue
// yet so the same-list separators act like new-list ones.
func (g *grammar) commandWord(arg string) Mode {
	switch arg {
	case NewInputList, SameInputList:
		return Inputs
	case NewFileList, SameFileList:
		return Files
	default:
		g.command = append(g.command, arg)
		return Command
	}
}

// input adds arg to the current list in the Inputs and Files modes.
func (g *grammar) input(arg string) (Mode, error) {
	switch arg {
	case NewInputList:
		g.closeList()
		return Inputs, nil
	case SameInputList:
		return Inputs, nil
	case NewFileList:
		g.closeList()
		return Files, nil
	case SameFileList:
		return Files, nil
	}

	if g.mode == Inputs {
		g.current = append(g.current, arg)
		return Inputs, nil
	}

	lines, err := readLines(g.fs, arg)
	if err != nil {
		return Files, err
	}
	g.current = append(g.current, lines...)
	return Files, nil
}

func (g *grammar) closeList() {
	if len(g.current) == 0 {
		return
	}
	g.lists = append(g.lists, g.current)
	g.current = nil
}

// readLines returns the lines of the file at path. Lines that aren't valid
// UTF-8 are skipped.
func readLines(fs afero.Fs, path string) ([]string, error) {
	fd, err := fs.Open(path)
	if err != nil {
		return nil, filepaths.Wrap(filepaths.OpOpen, path, err)
	}
	defer fd.Close()

	var lines []string
	scanner := bufio.NewScanner(fd)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if utf8.ValidString(line) {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, filepaths.Wrap(filepaths.OpRead, path, err)
	}

	return lines, nil
}
