// Package engine hands the compiled command and its inputs to whatever runs
// the jobs.
package engine

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/anmitsu/go-shlex"
	"github.com/josephlewis42/parallel/core/arguments"
	"github.com/josephlewis42/parallel/core/inputs"
	"github.com/josephlewis42/parallel/core/tokenizer"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/syntax"
)

// Source yields argument tuples, *inputs.Reader implements it.
type Source interface {
	Next() (inputs.Tuple, error)
}

// Plan is everything needed to run the jobs.
type Plan struct {
	Flags arguments.Flags
	// Jobs is the number of jobs run at once.
	Jobs   int
	Tokens []tokenizer.Token
	Total  int
	Inputs Source
}

// NewPlan creates a plan from parsed arguments.
func NewPlan(args *arguments.Args) *Plan {
	plan := &Plan{
		Flags:  args.Flags,
		Jobs:   args.Jobs,
		Tokens: args.Tokens,
		Total:  args.Total,
	}
	if args.Inputs != nil {
		plan.Inputs = args.Inputs
		plan.Total = args.Inputs.Total()
	}
	return plan
}

// Slot returns the slot job number n runs in, slots cycle from 1 to Jobs.
func (p *Plan) Slot(n int) int {
	if p.Jobs < 1 {
		return 1
	}
	return (n-1)%p.Jobs + 1
}

// Command renders the command for tuple. Without a shell the command is split
// into words and each one is quoted so the line shows the exact argv.
func (p *Plan) Command(tuple inputs.Tuple) (string, error) {
	rendered := tokenizer.Expand(p.Tokens, tokenizer.Job{
		Number: tuple.Number,
		Slot:   p.Slot(tuple.Number),
		Args:   tuple.Line,
	})
	if p.Flags.UsesShell {
		return rendered, nil
	}

	words, err := shlex.Split(rendered, true)
	if err != nil {
		return "", fmt.Errorf("job %d: splitting %q: %w", tuple.Number, rendered, err)
	}

	for i, word := range words {
		quoted, err := syntax.Quote(word, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("job %d: quoting %q: %w", tuple.Number, word, err)
		}
		words[i] = quoted
	}
	return strings.Join(words, " "), nil
}

// Engine runs the jobs in a plan.
type Engine interface {
	Run(ctx context.Context, plan *Plan) error
}

// DryRun prints the command each job would run, one per line, instead of
// running it.
type DryRun struct {
	Out io.Writer
	Log *zap.Logger
}

var _ Engine = (*DryRun)(nil)

func (d *DryRun) Run(ctx context.Context, plan *Plan) error {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		tuple, err := plan.Inputs.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		command, err := plan.Command(tuple)
		if err != nil {
			return err
		}
		log.Debug("job",
			zap.Int("number", tuple.Number),
			zap.Int("slot", plan.Slot(tuple.Number)),
			zap.String("command", command))

		if _, err := fmt.Fprintln(d.Out, command); err != nil {
			return err
		}
	}
}
