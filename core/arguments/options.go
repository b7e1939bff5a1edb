package arguments

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	getopt "github.com/pborman/getopt/v2"
)

// Version is reported by --version.
var Version = "0.6.2"

const (
	usageLine   = "parallel [options] [command] [::: inputs...] [:::: files...]"
	description = "Run a command for each input, in parallel."
)

// Exit requests the program terminate after printing Message.
type Exit struct {
	Message string
	Code    int
}

// options decodes the leading option block of the arguments.
type options struct {
	set   *getopt.Set
	cores int

	help       *bool
	version    *bool
	numCores   *bool
	jobs       *string
	noShell    *bool
	pipe       *bool
	quote      *bool
	shellquote *bool
	quiet      *bool
	silent     *bool
	verbose    *bool

	jobCount int
	exit     *Exit
	err      error

	// long maps each registered long name to whether it takes a value,
	// short holds the short names that take a value.
	long  map[string]bool
	short map[rune]bool
}

func newOptions(cores int) *options {
	set := getopt.New()
	set.SetProgram("parallel")
	set.SetParameters("[command] [::: inputs...] [:::: files...]")

	o := &options{
		set:        set,
		cores:      cores,
		jobCount:   cores,
		help:       set.BoolLong("help", 'h', "show this help and exit"),
		jobs:       set.StringLong("jobs", 'j', "", "number of jobs to run at once, N or N% of cores", "N"),
		noShell:    set.BoolLong("no-shell", 'n', "run commands without a shell"),
		numCores:   set.BoolLong("num-cpu-cores", 0, "print the number of cores and exit"),
		pipe:       set.BoolLong("pipe", 'p', "pipe inputs to the command's standard input"),
		quote:      set.BoolLong("quote", 'q', "escape backslashes in the command"),
		quiet:      set.BoolLong("quiet", 's', "don't print job status"),
		shellquote: set.BoolLong("shellquote", 0, "escape shell metacharacters in the command's arguments"),
		silent:     set.BoolLong("silent", 0, "same as --quiet"),
		verbose:    set.BoolLong("verbose", 'v', "print debugging information"),
		version:    set.BoolLong("version", 0, "print the version and exit"),
		long:       make(map[string]bool),
		short:      make(map[rune]bool),
	}

	set.VisitAll(func(opt getopt.Option) {
		if name := opt.LongName(); name != "" {
			o.long[name] = !opt.IsFlag()
		}
		if r := opt.ShortName(); r != "" && !opt.IsFlag() {
			o.short[[]rune(r)[0]] = true
		}
	})
	return o
}

// checkLong rejects long options getopt would otherwise accept: names that
// are only registered as short options (--n) and values given to flags
// (--verbose=1). Only the leading option block is checked.
func (o *options) checkLong(args []string) error {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) < 2 || arg[0] != '-' || arg == "--" {
			return nil
		}

		if !strings.HasPrefix(arg, "--") {
			// The value of a short option is the rest of its block, or the
			// next argument if the block ends with it.
			for j, r := range arg[1:] {
				if o.short[r] {
					if j+2 == len(arg) {
						i++
					}
					break
				}
			}
			continue
		}

		name, _, hasValue := strings.Cut(arg[2:], "=")
		takesValue, ok := o.long[name]
		if !ok || (hasValue && !takesValue) {
			return parseError(ErrInvalidArgument, arg)
		}
		if takesValue && !hasValue {
			i++
		}
	}
	return nil
}

// visit is called for every option as it's decoded, returning false stops
// decoding.
func (o *options) visit(opt getopt.Option) bool {
	switch opt.LongName() {
	case "help":
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "usage: %s\n%s\n\nFlags:\n", usageLine, description)
		o.set.PrintOptions(&buf)
		o.exit = &Exit{Message: buf.String()}
	case "num-cpu-cores":
		o.exit = &Exit{Message: strconv.Itoa(o.cores) + "\n"}
	case "version":
		o.exit = &Exit{Message: "parallel " + Version + "\n"}
	case "jobs":
		if opt.String() == "" {
			o.err = parseError(ErrJobParse, opt.Name())
			return false
		}
		o.jobCount, o.err = ParseJobs(opt.String(), o.cores)
		return o.err == nil
	default:
		return true
	}

	return false
}

// parse decodes options from args and returns the arguments that follow
// them.
func (o *options) parse(args []string) ([]string, error) {
	if err := o.checkLong(args); err != nil {
		return nil, err
	}

	// getopt expects the program name first.
	err := o.set.Getopt(append([]string{"parallel"}, args...), o.visit)

	var optErr *getopt.Error
	switch {
	case o.err != nil:
		return nil, o.err
	case errors.As(err, &optErr) && optErr.ErrorCode == getopt.MissingParameter:
		return nil, parseError(ErrJobsNoValue, optErr.Name)
	case err != nil:
		return nil, parseError(ErrInvalidArgument, o.set.Arg(0))
	}

	switch o.set.State() {
	case getopt.Dash:
		return nil, parseError(ErrInvalidArgument, "-")
	case getopt.DashDash:
		return nil, parseError(ErrInvalidArgument, "--")
	}

	return o.set.Args(), nil
}

// apply copies the decoded options into g.
func (o *options) apply(g *Grammar) {
	g.Jobs = o.jobCount
	g.Exit = o.exit
	g.Quote = *o.quote
	g.Shellquote = *o.shellquote

	if *o.noShell {
		g.Flags.UsesShell = false
	}
	g.Flags.Pipe = *o.pipe
	g.Flags.Quiet = *o.quiet || *o.silent
	g.Flags.Verbose = *o.verbose
}
