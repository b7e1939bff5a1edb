// Package filepaths resolves where the argument stream is stored on disk and
// defines the errors reported when that storage fails.
package filepaths

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

const (
	// UnprocessedPattern is the name pattern for the backing file holding
	// generated arguments that have not yet been handed to a job.
	UnprocessedPattern = "parallel-unprocessed-*"
)

// Op names the file operation that failed.
type Op string

const (
	OpPath   Op = "path"
	OpOpen   Op = "open"
	OpWrite  Op = "write"
	OpRead   Op = "read"
	OpFormat Op = "format"
)

// ErrFormat is the cause for records that can't be read back from a
// backing file.
var ErrFormat = errors.New("malformed record")

// Error records a failed operation on a file used by the pipeline.
type Error struct {
	Op   Op
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns nil if err is nil, otherwise an *Error for the operation.
func Wrap(op Op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Path: path, Err: err}
}

// Unprocessed reserves a new, empty backing file in dir and returns its path.
// If dir is empty the OS temp directory is used.
func Unprocessed(fs afero.Fs, dir string) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	if err := fs.MkdirAll(dir, 0700); err != nil {
		return "", Wrap(OpPath, dir, err)
	}

	fd, err := afero.TempFile(fs, dir, UnprocessedPattern)
	if err != nil {
		return "", Wrap(OpPath, dir, err)
	}
	defer fd.Close()

	return fd.Name(), nil
}
