// Package query resolves the search text for one invocation, either from
// positional arguments or from piped standard input.
package query

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DefaultWait is how long Resolve waits for the first line of input.
const DefaultWait = 10 * time.Millisecond

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// ErrInputTimeout is returned when no positional query was given and no
// input arrived within the wait budget.
var ErrInputTimeout = errors.New("no input within wait budget")

type event struct {
	line string
	eof  bool
	err  error
}

// Resolve returns args joined by single spaces when args is non-empty, without
// touching r. Otherwise it reads r line by line and races the first line
// against a timer of length wait. Once the first line (or end of input) has
// arrived the rest of r is drained without a deadline and lines are joined
// with "\n". A stream that closes before sending anything resolves to "".
func Resolve(ctx context.Context, args []string, r io.Reader, wait time.Duration) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if r == nil {
		return "", ErrInputTimeout
	}
	if wait <= 0 {
		wait = DefaultWait
	}

	done := make(chan struct{})
	defer close(done)
	events := make(chan event)
	go readLines(r, events, done)

	timer := time.NewTimer(wait)
	defer timer.Stop()

	var ev event
	select {
	case ev = <-events:
	case <-timer.C:
		return "", ErrInputTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}

	var lines []string
	for {
		switch {
		case ev.err != nil:
			return "", fmt.Errorf("read input: %w", ev.err)
		case ev.eof:
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, ev.line)
		select {
		case ev = <-events:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// readLines forwards lines of r to out until end of input or until done is
// closed. A reader blocked in Read stays blocked; it exits on its next send.
func readLines(r io.Reader, out chan<- event, done <-chan struct{}) {
	send := func(ev event) bool {
		select {
		case out <- ev:
			return true
		case <-done:
			return false
		}
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		if !send(event{line: sc.Text()}) {
			return
		}
	}
	if err := sc.Err(); err != nil {
		send(event{err: err})
		return
	}
	send(event{eof: true})
}

// Normalize returns q in Unicode normalization form C so that composed and
// decomposed spellings produce the same URL.
func Normalize(q string) string {
	return norm.NFC.String(q)
}
