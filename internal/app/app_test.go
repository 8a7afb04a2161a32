package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/hyperifyio/google/internal/catalog"
	"github.com/hyperifyio/google/internal/launch"
	"github.com/hyperifyio/google/internal/query"
	"github.com/hyperifyio/google/internal/search"
)

type recordingOpener struct {
	urls []string
	err  error
}

func (r *recordingOpener) Open(_ context.Context, url string) error {
	r.urls = append(r.urls, url)
	return r.err
}

func newTestApp(t *testing.T, stdin io.Reader) (*App, *bytes.Buffer, *recordingOpener) {
	t.Helper()
	a, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	var out bytes.Buffer
	o := &recordingOpener{}
	a.Stdin = stdin
	a.Stdout = &out
	a.Opener = o
	return a, &out, o
}

func TestSearch_OpensPositionalQuery(t *testing.T) {
	a, out, o := newTestApp(t, strings.NewReader("ignored\n"))
	if err := a.Search(context.Background(), catalog.DefaultSearch, []string{"rust", "ownership"}, search.Options{}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(o.urls) != 1 || o.urls[0] != "https://google.com/search?q=rust+ownership" {
		t.Fatalf("opened %v", o.urls)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected stdout %q", out.String())
	}
}

func TestSearch_RawWithSite(t *testing.T) {
	a, out, o := newTestApp(t, nil)
	if err := a.Search(context.Background(), catalog.DefaultSearch, []string{"cats"}, search.Options{Site: "reddit.com", Raw: true}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := out.String(); got != "https://google.com/search?q=cats+site%3Areddit.com\n" {
		t.Fatalf("stdout=%q", got)
	}
	if len(o.urls) != 0 {
		t.Fatalf("raw mode opened %v", o.urls)
	}
}

func TestSearch_PipedInput(t *testing.T) {
	a, out, _ := newTestApp(t, strings.NewReader("line one\nline two\n"))
	videos, _ := catalog.LookupSearch("videos")
	if err := a.Search(context.Background(), videos, nil, search.Options{Raw: true}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := out.String(); got != "https://google.com/search?q=line+one%0Aline+two&tbm=vid\n" {
		t.Fatalf("stdout=%q", got)
	}
}

func TestSearch_TimeoutIsMissingQuery(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	a, _, o := newTestApp(t, pr)
	err := a.Search(context.Background(), catalog.DefaultSearch, nil, search.Options{})
	if !errors.Is(err, ErrMissingQuery) || !errors.Is(err, query.ErrInputTimeout) {
		t.Fatalf("expected ErrMissingQuery wrapping timeout, got %v", err)
	}
	if len(o.urls) != 0 {
		t.Fatalf("nothing should be opened, got %v", o.urls)
	}
}

func TestSearch_EmptyInputIsMissingQuery(t *testing.T) {
	for _, in := range []string{"", "  \n\n"} {
		a, _, _ := newTestApp(t, strings.NewReader(in))
		err := a.Search(context.Background(), catalog.DefaultSearch, nil, search.Options{})
		if !errors.Is(err, ErrMissingQuery) {
			t.Fatalf("input %q: expected ErrMissingQuery, got %v", in, err)
		}
		if errors.Is(err, query.ErrInputTimeout) {
			t.Fatalf("input %q: closed stream must not be reported as timeout", in)
		}
	}
}

// Site filters Google accepts but that are not plain domains still build a URL.
func TestSearch_NonDomainSiteIsUsedAsGiven(t *testing.T) {
	cases := map[string]string{
		"my_host.example.com":                     "https://google.com/search?q=foo+site%3Amy_host.example.com\n",
		"localhost:8080":                          "https://google.com/search?q=foo+site%3Alocalhost%3A8080\n",
		"reddit.com OR site:news.ycombinator.com": "https://google.com/search?q=foo+site%3Areddit.com+OR+site%3Anews.ycombinator.com\n",
		"*.example.com":                           "https://google.com/search?q=foo+site%3A%2A.example.com\n",
	}
	for site, want := range cases {
		a, out, _ := newTestApp(t, nil)
		if err := a.Search(context.Background(), catalog.DefaultSearch, []string{"foo"}, search.Options{Site: site, Raw: true}); err != nil {
			t.Fatalf("site %q: %v", site, err)
		}
		if got := out.String(); got != want {
			t.Fatalf("site %q: stdout=%q, want %q", site, got, want)
		}
	}
}

func TestSearch_LaunchFailure(t *testing.T) {
	a, _, o := newTestApp(t, nil)
	o.err = errors.New("spawn failed")
	err := a.Search(context.Background(), catalog.DefaultSearch, []string{"x"}, search.Options{})
	if !errors.Is(err, launch.ErrLaunchFailed) {
		t.Fatalf("expected ErrLaunchFailed, got %v", err)
	}
}

func TestSearch_CustomBase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "https://www.google.co.uk"
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	var out bytes.Buffer
	a.Stdout = &out
	scholar, _ := catalog.LookupSearch("scholar")
	if err := a.Search(context.Background(), scholar, []string{"graphs"}, search.Options{Raw: true}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := out.String(); got != "https://www.google.co.uk/scholar?q=graphs\n" {
		t.Fatalf("stdout=%q", got)
	}
}

func TestShortcut_NewAndOpen(t *testing.T) {
	a, out, o := newTestApp(t, nil)
	docs, _ := catalog.LookupShortcut("docs")
	if err := a.Shortcut(context.Background(), docs, true, false); err != nil {
		t.Fatalf("shortcut: %v", err)
	}
	if err := a.Shortcut(context.Background(), docs, false, true); err != nil {
		t.Fatalf("shortcut raw: %v", err)
	}
	if len(o.urls) != 1 || o.urls[0] != "https://docs.new" {
		t.Fatalf("opened %v", o.urls)
	}
	if got := out.String(); got != "https://docs.google.com\n" {
		t.Fatalf("stdout=%q", got)
	}
}

func TestNew_BrowserCommandSelectsCommandOpener(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Browser = "firefox --new-tab"
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	c, ok := a.Opener.(launch.Command)
	if !ok || c.Name != "firefox" {
		t.Fatalf("expected firefox command opener, got %#v", a.Opener)
	}
	a, err = New(DefaultConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := a.Opener.(launch.Browser); !ok {
		t.Fatalf("expected default browser opener, got %#v", a.Opener)
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "google.com"
	if _, err := New(cfg); err == nil {
		t.Fatalf("expected error for relative base url")
	}
}

// untouchedReader counts reads.
type untouchedReader struct{ reads int }

func (r *untouchedReader) Read([]byte) (int, error) {
	r.reads++
	return 0, io.EOF
}

func TestSearch_TerminalStdinIsNotWaitedOn(t *testing.T) {
	in := &untouchedReader{}
	a, _, o := newTestApp(t, in)
	a.IsTerminal = func(io.Reader) bool { return true }
	err := a.Search(context.Background(), catalog.DefaultSearch, nil, search.Options{})
	if !errors.Is(err, ErrMissingQuery) || !errors.Is(err, query.ErrInputTimeout) {
		t.Fatalf("expected ErrMissingQuery wrapping timeout, got %v", err)
	}
	if in.reads != 0 {
		t.Fatalf("terminal stdin was read %d times", in.reads)
	}
	if len(o.urls) != 0 {
		t.Fatalf("nothing should be opened, got %v", o.urls)
	}
}

func TestSearch_TerminalStdinIgnoredWithArgs(t *testing.T) {
	a, _, o := newTestApp(t, &untouchedReader{})
	a.IsTerminal = func(io.Reader) bool { return true }
	if err := a.Search(context.Background(), catalog.DefaultSearch, []string{"go"}, search.Options{}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(o.urls) != 1 || o.urls[0] != "https://google.com/search?q=go" {
		t.Fatalf("opened %v", o.urls)
	}
}

func TestIsTerminal_NonTerminals(t *testing.T) {
	if isTerminal(strings.NewReader("x")) {
		t.Fatalf("strings.Reader reported as terminal")
	}
	if isTerminal(nil) {
		t.Fatalf("nil reader reported as terminal")
	}
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	defer f.Close()
	if isTerminal(f) {
		t.Fatalf("regular file reported as terminal")
	}
	a, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if a.IsTerminal == nil {
		t.Fatalf("New must install a terminal check")
	}
}

// Positional arguments are searched as given, blanks included; only an
// exactly empty query is missing.
func TestSearch_BlankPositionalArgs(t *testing.T) {
	a, out, _ := newTestApp(t, nil)
	if err := a.Search(context.Background(), catalog.DefaultSearch, []string{" "}, search.Options{Raw: true}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := out.String(); got != "https://google.com/search?q=+\n" {
		t.Fatalf("stdout=%q", got)
	}
	a, _, _ = newTestApp(t, nil)
	if err := a.Search(context.Background(), catalog.DefaultSearch, []string{""}, search.Options{}); !errors.Is(err, ErrMissingQuery) {
		t.Fatalf("expected ErrMissingQuery for empty arg, got %v", err)
	}
}
