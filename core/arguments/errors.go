package arguments

import (
	"errors"
	"fmt"
)

var (
	// ErrNoArguments is returned when the program was run without arguments.
	ErrNoArguments = errors.New("no arguments supplied")
	// ErrJobsNoValue is returned when -j or --jobs isn't followed by a value.
	ErrJobsNoValue = errors.New("no value supplied for jobs")
	// ErrJobParse is returned for job values that aren't N or N%.
	ErrJobParse = errors.New("jobs must be a positive number or percentage")
	// ErrInvalidArgument is returned for unknown options.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ParseError is a grammar error along with the argument that caused it.
type ParseError struct {
	Err error
	Arg string
}

func (e *ParseError) Error() string {
	if e.Arg == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %q", e.Err, e.Arg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseError(err error, arg string) error {
	return &ParseError{Err: err, Arg: arg}
}
