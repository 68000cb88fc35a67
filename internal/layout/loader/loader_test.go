package loader_test

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-paymentform/internal/layout/loader"
	"github.com/goliatone/go-paymentform/pkg/layout"
)

const payload = `[{"type":"email"}]`

func TestLoadFromFileFSAndHTTP(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "link.json")
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	l := loader.New(layout.NewLoaderOptions(
		layout.WithFileSystem(fstest.MapFS{"layouts/link.json": {Data: []byte(payload)}}),
		layout.WithHTTPClient(server.Client()),
		layout.WithHTTPFallback(time.Second),
	))

	sources := []layout.Source{
		layout.SourceFromFile(path),
		layout.SourceFromFS("layouts/link.json"),
		layout.SourceFromURL(server.URL + "/link.json"),
	}
	for _, src := range sources {
		doc, err := l.Load(context.Background(), src)
		if err != nil {
			t.Fatalf("%s: load: %v", src.Kind(), err)
		}
		if got := string(doc.Raw()); got != payload {
			t.Fatalf("%s: unexpected payload %q", src.Kind(), got)
		}
		if got := doc.BaseName(); got != "link" {
			t.Fatalf("%s: unexpected base name %q", src.Kind(), got)
		}
	}
}

func TestLoadRejectsHTTPWhenDisabled(t *testing.T) {
	l := loader.New(layout.NewLoaderOptions())
	_, err := l.Load(context.Background(), layout.SourceFromURL("https://example.com/layout.json"))
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected http disabled error, got %v", err)
	}
}

func TestLoadReportsHTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	l := loader.New(layout.NewLoaderOptions(layout.WithHTTPClient(server.Client())))
	_, err := l.Load(context.Background(), layout.SourceFromURL(server.URL))
	if err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := loader.New(layout.NewLoaderOptions(layout.WithFileSystem(fstest.MapFS{"a.json": {Data: []byte(payload)}})))
	if _, err := l.Load(ctx, layout.SourceFromFS("a.json")); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestLoadFSLooksUpPaymentMethodCode(t *testing.T) {
	files := fstest.MapFS{
		"layouts/sepa_debit.yaml": {Data: []byte("- type: iban\n")},
		"layouts/blik.json":       {Data: []byte(payload)},
	}
	l := loader.New(layout.NewLoaderOptions(layout.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), layout.SourceFromFS("layouts/sepa_debit"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := doc.Location(); got != "layouts/sepa_debit.yaml" {
		t.Fatalf("unexpected location %q", got)
	}
	if got := doc.BaseName(); got != "sepa_debit" {
		t.Fatalf("unexpected base name %q", got)
	}

	doc, err = l.Load(context.Background(), layout.SourceFromFS("./layouts/blik"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := doc.Location(); got != "layouts/blik.json" {
		t.Fatalf("unexpected location %q", got)
	}

	_, err = l.Load(context.Background(), layout.SourceFromFS("layouts/ideal"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if !strings.Contains(err.Error(), `no layout for "layouts/ideal"`) {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestLoadRejectsPayloadsThatCannotHoldALayout(t *testing.T) {
	files := fstest.MapFS{
		"blank.json":  {Data: []byte("  \n")},
		"page.json":   {Data: []byte("<html><body>maintenance</body></html>")},
		"scalar.yaml": {Data: []byte("just a sentence")},
		"broken.json": {Data: []byte("{\"type\": [")},
	}
	l := loader.New(layout.NewLoaderOptions(layout.WithFileSystem(files)))

	cases := map[string]string{
		"blank.json":  "is empty",
		"page.json":   "looks like markup",
		"scalar.yaml": "must hold a list of items or a layout object",
		"broken.json": "invalid JSON or YAML",
	}
	for name, want := range cases {
		_, err := l.Load(context.Background(), layout.SourceFromFS(name))
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("%s: expected error containing %q, got %v", name, want, err)
		}
	}
}

func TestLoadRejectsHTMLResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("- type: email\n"))
	}))
	defer server.Close()

	l := loader.New(layout.NewLoaderOptions(layout.WithHTTPClient(server.Client())))
	_, err := l.Load(context.Background(), layout.SourceFromURL(server.URL+"/layout"))
	if err == nil || !strings.Contains(err.Error(), "served text/html") {
		t.Fatalf("expected html rejection, got %v", err)
	}
}
