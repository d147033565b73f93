package nordic

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Decoder reads lines from an io.Reader and assembles them into events.
// It is forward-only: once Next returns an error, every later call returns
// the same error.
type Decoder struct {
	r      *bufio.Reader
	asm    *Assembler
	lines  int
	events int
	err    error
}

// NewDecoder returns a Decoder reading Nordic lines from r.
func NewDecoder(r io.Reader, opts Options) *Decoder {
	return &Decoder{r: bufio.NewReader(r), asm: NewAssembler(opts)}
}

// Next returns the next sealed event, or io.EOF when the input is exhausted.
func (d *Decoder) Next() (Event, error) {
	if d.err != nil {
		return Event{}, d.err
	}
	for {
		text, err := d.readLine()
		if errors.Is(err, io.EOF) {
			ev, ok, ferr := d.asm.Finish()
			if ferr != nil {
				d.err = ferr
				return Event{}, ferr
			}
			d.err = io.EOF
			if ok {
				d.events++
				return ev, nil
			}
			return Event{}, io.EOF
		}
		if err != nil {
			d.err = fmt.Errorf("read line %d: %w", d.lines+1, err)
			return Event{}, d.err
		}

		d.lines++
		ev, ok, err := d.asm.Feed(d.lines, text)
		if err != nil {
			d.err = err
			return Event{}, err
		}
		if ok {
			d.events++
			return ev, nil
		}
	}
}

// All returns the remaining events as a single-use sequence. Iteration stops
// after the first error is yielded.
func (d *Decoder) All() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for {
			ev, err := d.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(ev, err) || err != nil {
				return
			}
		}
	}
}

// Stats returns the number of events emitted and lines consumed so far.
func (d *Decoder) Stats() (events, lines int) {
	return d.events, d.lines
}

// readLine returns the next line with a single "\n" terminator. CRLF endings
// are normalized and a final line without a terminator gets one.
func (d *Decoder) readLine() (string, error) {
	s, err := d.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if s == "" {
		return "", io.EOF
	}
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s + "\n", nil
}

// Decode reads every event from r. In Lenient mode it only fails on read
// errors; in Strict mode the events decoded before the first error are
// returned along with it.
func Decode(r io.Reader, opts Options) ([]Event, error) {
	var events []Event
	for ev, err := range NewDecoder(r, opts).All() {
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
	return events, nil
}
