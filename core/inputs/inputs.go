// Package inputs replays the argument records persisted in a backing file.
package inputs

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/josephlewis42/parallel/core/filepaths"
	"github.com/spf13/afero"
)

// Tuple is a single argument record.
type Tuple struct {
	// Number is the 1-based position of the record in the file.
	Number int
	// Line is the record without its trailing newline.
	Line string
}

// Reader reads tuples lazily from a backing file. It's safe for concurrent
// use. A Reader can't be rewound, construct a new one to start over.
type Reader struct {
	path  string
	total int

	mu   sync.Mutex
	file afero.File
	br   *bufio.Reader
	read int
	err  error
}

// New opens the backing file at path, which is expected to contain exactly
// total records.
func New(fs afero.Fs, path string, total int) (*Reader, error) {
	fd, err := fs.Open(path)
	if err != nil {
		return nil, filepaths.Wrap(filepaths.OpOpen, path, err)
	}

	return &Reader{
		path:  path,
		total: total,
		file:  fd,
		br:    bufio.NewReader(fd),
	}, nil
}

// Total returns the number of records the reader will produce.
func (r *Reader) Total() int {
	return r.total
}

// Next returns the next tuple, or io.EOF once all records have been read.
// Errors are sticky.
func (r *Reader) Next() (Tuple, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return Tuple{}, r.err
	}
	if r.read >= r.total {
		return Tuple{}, io.EOF
	}

	line, err := r.br.ReadString('\n')
	switch {
	case err == io.EOF && line == "":
		r.err = r.formatError(fmt.Errorf("%w: expected %d records, found %d", filepaths.ErrFormat, r.total, r.read))
		return Tuple{}, r.err
	case err == io.EOF:
		r.err = r.formatError(fmt.Errorf("%w: record %d is missing its newline", filepaths.ErrFormat, r.read+1))
		return Tuple{}, r.err
	case err != nil:
		r.err = filepaths.Wrap(filepaths.OpRead, r.path, err)
		return Tuple{}, r.err
	}

	r.read++
	return Tuple{Number: r.read, Line: line[:len(line)-1]}, nil
}

func (r *Reader) formatError(err error) error {
	return filepaths.Wrap(filepaths.OpFormat, r.path, err)
}

// Close releases the backing file.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	if r.err == nil {
		r.err = filepaths.Wrap(filepaths.OpRead, r.path, afero.ErrFileClosed)
	}
	return err
}
