// Package combinator turns input lists into the ordered argument stream.
package combinator

import (
	"bufio"
	"errors"
	"io"
	"math"
	"strings"

	"github.com/josephlewis42/parallel/core/diskbuffer"
	"github.com/josephlewis42/parallel/core/filepaths"
)

// maxLineSize bounds a single line read from standard input.
const maxLineSize = 1024 * 1024

// ErrTooManyCombinations is returned when the product of the lists doesn't
// fit in an int.
var ErrTooManyCombinations = errors.New("too many combinations")

// Odometer iterates the cartesian product of lists. The last list varies
// fastest and the first list slowest.
type Odometer struct {
	lists   [][]string
	digits  []int
	current []string
	done    bool
}

// NewOdometer creates an iterator over lists. If any list is empty, or no
// lists are given, the product is empty.
func NewOdometer(lists [][]string) *Odometer {
	o := &Odometer{
		lists:   lists,
		digits:  make([]int, len(lists)),
		current: make([]string, len(lists)),
		done:    len(lists) == 0,
	}

	for _, list := range lists {
		if len(list) == 0 {
			o.done = true
		}
	}

	return o
}

// Next returns the next combination. The returned slice is reused between
// calls.
func (o *Odometer) Next() ([]string, bool) {
	if o.done {
		return nil, false
	}

	for i, digit := range o.digits {
		o.current[i] = o.lists[i][digit]
	}

	// Advance, carrying from the rightmost digit.
	o.done = true
	for i := len(o.digits) - 1; i >= 0; i-- {
		o.digits[i]++
		if o.digits[i] < len(o.lists[i]) {
			o.done = false
			break
		}
		o.digits[i] = 0
	}

	return o.current, true
}

// Count is the number of combinations the lists produce.
func Count(lists [][]string) (int, error) {
	if len(lists) == 0 {
		return 0, nil
	}

	total := 1
	for _, list := range lists {
		if len(list) == 0 {
			return 0, nil
		}
		if total > math.MaxInt/len(list) {
			return 0, ErrTooManyCombinations
		}
		total *= len(list)
	}
	return total, nil
}

// Generate writes one record per argument tuple to sink and returns how many
// records were written.
//
// A single list is passed through unchanged, several lists are combined in
// odometer order, and if nothing was written at all lines are read from stdin
// instead.
func Generate(lists [][]string, sink diskbuffer.Sink, stdin io.Reader) (int, error) {
	count := 0

	switch len(lists) {
	case 0:
	case 1:
		for _, value := range lists[0] {
			if err := WriteRecord(sink, value); err != nil {
				return count, err
			}
			count++
		}
	default:
		if _, err := Count(lists); err != nil {
			return 0, err
		}

		odometer := NewOdometer(lists)
		for {
			tuple, ok := odometer.Next()
			if !ok {
				break
			}
			if err := WriteRecord(sink, tuple...); err != nil {
				return count, err
			}
			count++
		}
	}

	if !sink.IsEmpty() || stdin == nil {
		return count, nil
	}

	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if err := WriteRecord(sink, strings.TrimSuffix(scanner.Text(), "\r")); err != nil {
			return count, err
		}
		count++
	}

	return count, filepaths.Wrap(filepaths.OpRead, "<stdin>", scanner.Err())
}

// WriteRecord writes values joined by single spaces and terminated by a
// newline.
func WriteRecord(sink diskbuffer.Sink, values ...string) error {
	for i, value := range values {
		if i > 0 {
			if err := sink.WriteByte(' '); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(sink, value); err != nil {
			return err
		}
	}
	return sink.WriteByte('\n')
}
