package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-paymentform/pkg/layout"
)

// Loader implements layout.Loader. Files, fs.FS entries and URLs are read by
// their own strategy; every payload is then sniffed so only JSON or YAML
// layouts reach the resolver.
type Loader struct {
	files   fs.FS
	client  *http.Client
	timeout time.Duration
	logger  zerolog.Logger
}

var _ layout.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options. URL sources are only
// served when a client is injected or the HTTP fallback is enabled.
func New(options layout.LoaderOptions) *Loader {
	l := &Loader{
		files:   options.FileSystem,
		timeout: options.RequestTimeout,
		logger:  options.Logger,
	}
	switch {
	case options.HTTPClient != nil:
		client := *options.HTTPClient
		if l.timeout > 0 && client.Timeout == 0 {
			client.Timeout = l.timeout
		}
		l.client = &client
	case options.AllowHTTPFallback:
		l.client = &http.Client{Timeout: l.timeout}
	}
	return l
}

// Load reads the layout src points at. FS locations without an extension are
// treated as payment method codes and looked up as <code>.json, <code>.yaml
// or <code>.yml.
func (l *Loader) Load(ctx context.Context, src layout.Source) (layout.Document, error) {
	if src == nil {
		return layout.Document{}, errors.New("layout loader: source is nil")
	}

	var (
		data        []byte
		contentType string
		location    = src.Location()
		err         error
	)
	switch src.Kind() {
	case layout.SourceKindFile:
		data, err = loadFile(ctx, location)
	case layout.SourceKindFS:
		var name string
		name, data, err = loadFromFS(ctx, l.files, location)
		if err == nil && name != location {
			src = layout.SourceFromFS(name)
		}
	case layout.SourceKindURL:
		if l.client == nil {
			return layout.Document{}, errors.New("layout loader: http support disabled")
		}
		data, contentType, err = loadHTTP(ctx, l.client, location, l.timeout)
	default:
		err = fmt.Errorf("layout loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return layout.Document{}, err
	}

	format, err := sniff(src.Location(), data, contentType)
	if err != nil {
		return layout.Document{}, err
	}
	l.logger.Debug().
		Str("kind", string(src.Kind())).
		Str("location", src.Location()).
		Str("format", format).
		Int("bytes", len(data)).
		Msg("layout loader: loaded layout")

	return layout.NewDocument(src, data)
}

// sniff reports "json" or "yaml" for payloads that can hold a layout: a list
// of items or a layout object.
func sniff(location string, data []byte, contentType string) (string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("layout loader: %s is empty", location)
	}
	if contentType != "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType == "text/html" {
			return "", fmt.Errorf("layout loader: %s served %s, expected a JSON or YAML layout", location, mediaType)
		}
	}
	if trimmed[0] == '<' {
		return "", fmt.Errorf("layout loader: %s looks like markup, expected a JSON or YAML layout", location)
	}

	format := "yaml"
	if trimmed[0] == '{' || trimmed[0] == '[' {
		format = "json"
	}
	converted, err := layout.ToJSON(trimmed)
	if err != nil {
		return "", fmt.Errorf("layout loader: %s: %w", location, err)
	}
	if c := converted[0]; c != '{' && c != '[' {
		return "", fmt.Errorf("layout loader: %s must hold a list of items or a layout object", location)
	}
	return format, nil
}
