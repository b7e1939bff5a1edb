// Package arguments turns the program's arguments into a compiled command
// and a stream of inputs to run it with.
package arguments

import (
	"io"

	"github.com/josephlewis42/parallel/core/combinator"
	"github.com/josephlewis42/parallel/core/diskbuffer"
	"github.com/josephlewis42/parallel/core/filepaths"
	"github.com/josephlewis42/parallel/core/inputs"
	"github.com/josephlewis42/parallel/core/tokenizer"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Args are the options and inputs collected at startup.
type Args struct {
	Flags Flags
	// Jobs is the number of jobs to run at once.
	Jobs   int
	Tokens []tokenizer.Token
	// Total is the number of records in the backing file.
	Total int
	// Path is the backing file holding the records.
	Path   string
	Inputs *inputs.Reader
	// Exit is set if the program should print a message and stop instead
	// of running anything.
	Exit *Exit
}

// Parser runs the argument pipeline.
type Parser struct {
	Fs    afero.Fs
	Stdin io.Reader
	// Cores is the number of available cores, the default job count.
	Cores int
	// BufferSize is the number of bytes buffered in memory before writing
	// records to disk.
	BufferSize int
	// Path is the backing file, if empty a new one is created in TempDir.
	Path    string
	TempDir string
	Log     *zap.Logger
}

func (p *Parser) logger() *zap.Logger {
	if p.Log == nil {
		return zap.NewNop()
	}
	return p.Log
}

// Parse classifies args, writes every input record to the backing file and
// compiles the command template. The returned Args hold an open reader over
// the records that the caller must close.
func (p *Parser) Parse(args []string) (*Args, error) {
	grammar, err := ParseGrammar(p.Fs, args, p.Cores)
	if err != nil {
		return nil, err
	}
	return p.Build(grammar)
}

// Build writes the records for an already classified grammar and compiles
// its command.
func (p *Parser) Build(grammar *Grammar) (*Args, error) {
	if grammar.Exit != nil {
		return &Args{Flags: grammar.Flags, Jobs: grammar.Jobs, Exit: grammar.Exit}, nil
	}

	log := p.logger()
	log.Debug("parsed arguments",
		zap.String("command", grammar.Command),
		zap.Int("lists", len(grammar.Lists)),
		zap.Int("jobs", grammar.Jobs),
		zap.Bool("inputs_are_commands", grammar.Flags.InputsAreCommands))

	path := p.Path
	if path == "" {
		var err error
		if path, err = filepaths.Unprocessed(p.Fs, p.TempDir); err != nil {
			return nil, err
		}
	}

	total, err := p.writeRecords(path, grammar.Lists)
	if err != nil {
		return nil, err
	}

	command := grammar.Command
	switch {
	case grammar.Quote:
		command = QuoteCommand(command)
	case grammar.Shellquote:
		command = ShellquoteCommand(command)
	}

	tokens, err := tokenizer.Tokenize(p.Fs, command, path, total)
	if err != nil {
		return nil, err
	}
	log.Debug("compiled command", zap.String("command", command), zap.Stringers("tokens", tokens))

	reader, err := inputs.New(p.Fs, path, total)
	if err != nil {
		return nil, err
	}

	return &Args{
		Flags:  grammar.Flags,
		Jobs:   grammar.Jobs,
		Tokens: tokens,
		Total:  total,
		Path:   path,
		Inputs: reader,
	}, nil
}

// writeRecords generates the records for lists into the file at path and
// returns how many were written. The file is complete once it returns.
func (p *Parser) writeRecords(path string, lists [][]string) (int, error) {
	buf, err := diskbuffer.New(p.Fs, path, p.BufferSize)
	if err != nil {
		return 0, err
	}

	total, err := combinator.Generate(lists, buf, p.Stdin)
	if err != nil {
		buf.Close()
		return 0, err
	}

	if err := buf.Close(); err != nil {
		return 0, err
	}
	p.logger().Debug("wrote records",
		zap.String("path", buf.Path()),
		zap.Int("total", total),
		zap.Int64("bytes", buf.Len()))
	return total, nil
}
