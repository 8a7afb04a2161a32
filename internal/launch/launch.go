// Package launch performs the final action of an invocation: printing the
// URL or handing it to a browser.
package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/pkg/browser"
)

// ErrLaunchFailed wraps any failure to open a URL. It is not retried.
var ErrLaunchFailed = errors.New("launch failed")

// Opener opens a URL and returns once the handler has finished.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// Perform writes url to w when raw is set; otherwise it opens url with o and
// waits for it. A nil o opens the system default browser.
func Perform(ctx context.Context, w io.Writer, o Opener, url string, raw bool) error {
	if raw {
		_, err := fmt.Fprintln(w, url)
		return err
	}
	if o == nil {
		o = Browser{}
	}
	if err := o.Open(ctx, url); err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrLaunchFailed, url, err)
	}
	return nil
}

// Browser opens URLs with the platform's default handler (open, xdg-open,
// rundll32). The handler's own output goes wherever NewBrowser pointed it.
type Browser struct{}

var browserOutput sync.Once

// NewBrowser returns a Browser whose handler output is sent to w. The
// library keeps that writer in package globals, so only the first call
// with a non-nil w takes effect.
func NewBrowser(w io.Writer) Browser {
	if w != nil {
		browserOutput.Do(func() {
			browser.Stdout = w
			browser.Stderr = w
		})
	}
	return Browser{}
}

// Open runs the handler to completion. The library offers no cancellation,
// so ctx is only checked before starting.
func (Browser) Open(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return browser.OpenURL(url)
}

// Command runs a user-chosen browser command. The URL replaces every "%s" in
// Args, or is appended as the last argument when no placeholder is present.
type Command struct {
	Name   string
	Args   []string
	Output io.Writer
}

// ParseCommand splits a BROWSER-style command line on whitespace. It reports
// false for a blank line.
func ParseCommand(line string) (Command, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, false
	}
	return Command{Name: fields[0], Args: fields[1:]}, true
}

func (c Command) Open(ctx context.Context, url string) error {
	cmd := exec.CommandContext(ctx, c.Name, c.argv(url)...)
	cmd.Stdout = c.Output
	cmd.Stderr = c.Output
	return cmd.Run()
}

func (c Command) argv(url string) []string {
	args := make([]string, 0, len(c.Args)+1)
	substituted := false
	for _, a := range c.Args {
		if strings.Contains(a, "%s") {
			a = strings.ReplaceAll(a, "%s", url)
			substituted = true
		}
		args = append(args, a)
	}
	if !substituted {
		args = append(args, url)
	}
	return args
}
