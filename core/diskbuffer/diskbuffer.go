// Package diskbuffer provides bounded write-behind sinks for the generated
// argument stream.
package diskbuffer

import (
	"bytes"
	"io"
	"os"

	"github.com/josephlewis42/parallel/core/filepaths"
	"github.com/spf13/afero"
)

// DefaultCapacity is the number of bytes held in memory before spilling.
const DefaultCapacity = 8 * 1024

// Sink accepts the argument stream. Implementations may hold writes in
// memory until Flush is called.
type Sink interface {
	io.Writer
	io.ByteWriter

	// Flush forces buffered bytes to the backing store. It's safe to call
	// more than once.
	Flush() error
	// IsEmpty reports whether no bytes have ever been written.
	IsEmpty() bool
	// Len is the total number of bytes written, flushed or not.
	Len() int64
}

// DiskBuffer is a Sink that keeps up to a fixed number of bytes in memory and
// spills the whole region to a file each time it fills.
type DiskBuffer struct {
	path    string
	file    afero.File
	region  []byte
	written int64
}

var _ Sink = (*DiskBuffer)(nil)

// New creates (or truncates) the file at path and returns a buffer writing to
// it. Capacities below 1 use DefaultCapacity.
func New(fs afero.Fs, path string, capacity int) (*DiskBuffer, error) {
	if capacity < 1 {
		capacity = DefaultCapacity
	}

	fd, err := fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return nil, filepaths.Wrap(filepaths.OpOpen, path, err)
	}

	return &DiskBuffer{
		path:   path,
		file:   fd,
		region: make([]byte, 0, capacity),
	}, nil
}

// Path is the backing file's location.
func (d *DiskBuffer) Path() string {
	return d.path
}

// Write appends p, spilling to disk every time the region fills up.
func (d *DiskBuffer) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		free := cap(d.region) - len(d.region)
		n := len(p)
		if n > free {
			n = free
		}

		d.region = append(d.region, p[:n]...)
		d.written += int64(n)
		p = p[n:]

		if len(d.region) == cap(d.region) {
			if err := d.spill(); err != nil {
				return total - len(p), err
			}
		}
	}

	return total, nil
}

// WriteByte appends a single byte. A region left full by a failed spill is
// retried before c is added.
func (d *DiskBuffer) WriteByte(c byte) error {
	if len(d.region) == cap(d.region) {
		if err := d.spill(); err != nil {
			return err
		}
	}

	d.region = append(d.region, c)
	d.written++

	if len(d.region) == cap(d.region) {
		return d.spill()
	}
	return nil
}

// Flush writes whatever is left in memory to the backing file.
func (d *DiskBuffer) Flush() error {
	if len(d.region) == 0 {
		return nil
	}
	return d.spill()
}

// IsEmpty reports whether nothing was ever written.
func (d *DiskBuffer) IsEmpty() bool {
	return d.written == 0
}

// Len returns the number of bytes written.
func (d *DiskBuffer) Len() int64 {
	return d.written
}

// Close flushes and closes the backing file.
func (d *DiskBuffer) Close() error {
	flushErr := d.Flush()
	closeErr := d.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return filepaths.Wrap(filepaths.OpWrite, d.path, closeErr)
}

func (d *DiskBuffer) spill() error {
	if _, err := d.file.Write(d.region); err != nil {
		return filepaths.Wrap(filepaths.OpWrite, d.path, err)
	}
	d.region = d.region[:0]
	return nil
}

// MemorySink is a Sink that keeps everything in memory, it's used where no
// backing file is wanted.
type MemorySink struct {
	bytes.Buffer

	// Flushes counts calls to Flush.
	Flushes int
}

var _ Sink = (*MemorySink)(nil)

// Flush is a no-op that only counts calls.
func (m *MemorySink) Flush() error {
	m.Flushes++
	return nil
}

// IsEmpty reports whether nothing was ever written.
func (m *MemorySink) IsEmpty() bool {
	return m.Buffer.Len() == 0
}

// Len returns the number of bytes written.
func (m *MemorySink) Len() int64 {
	return int64(m.Buffer.Len())
}
