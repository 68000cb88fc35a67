package preview

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/rs/zerolog"
)

// Engine renders pongo2 templates loaded from an fs.FS, caching parsed
// templates by path.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	tplExt      string
}

// EngineOption configures an Engine.
type EngineOption func(*engineConfig)

type engineConfig struct {
	logger zerolog.Logger
}

// WithEngineLogger routes template engine diagnostics to logger.
func WithEngineLogger(logger zerolog.Logger) EngineOption {
	return func(cfg *engineConfig) {
		cfg.logger = logger
	}
}

// NewEngine constructs an Engine over files. Template names passed to
// RenderTemplate get ext appended when missing. Include and extends paths
// are resolved from the root of files, not from the including template.
func NewEngine(files fs.FS, ext string, options ...EngineOption) (*Engine, error) {
	if files == nil {
		return nil, errors.New("preview: template filesystem is required")
	}
	cfg := engineConfig{logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	registerDefaultFilters(cfg.logger)
	return &Engine{
		templateSet: pongo2.NewSet("paymentform-preview", rootedLoader{inner: pongo2.NewFSLoader(files)}),
		templates:   make(map[string]*pongo2.Template),
		tplExt:      ext,
	}, nil
}

// RenderTemplate executes the named template with data and writes the result
// to out when supplied.
func (e *Engine) RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("preview: engine is nil")
	}
	templatePath := name
	if !strings.HasSuffix(templatePath, e.tplExt) {
		templatePath += e.tplExt
	}

	tmpl, err := e.getTemplate(templatePath)
	if err != nil {
		return "", err
	}
	return execute(tmpl, data, templatePath, out)
}

// RenderString parses and executes an inline template.
func (e *Engine) RenderString(content string, data map[string]any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("preview: engine is nil")
	}
	tmpl, err := e.templateSet.FromString(content)
	if err != nil {
		return "", fmt.Errorf("preview: parse template string: %w", err)
	}
	return execute(tmpl, data, "inline", out)
}

// GlobalContext seeds values visible to every template.
func (e *Engine) GlobalContext(data map[string]any) {
	if e == nil || len(data) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.templateSet.Globals == nil {
		e.templateSet.Globals = make(pongo2.Context)
	}
	e.templateSet.Globals.Update(pongo2.Context(data))
}

func execute(tmpl *pongo2.Template, data map[string]any, name string, out []io.Writer) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(pongo2.Context(data), &buf); err != nil {
		return "", fmt.Errorf("preview: execute template %q: %w", name, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) getTemplate(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("preview: load template %q: %w", path, err)
	}

	e.templates[path] = tmpl
	return tmpl, nil
}

// rootedLoader resolves every template name against the filesystem root.
type rootedLoader struct {
	inner pongo2.TemplateLoader
}

func (l rootedLoader) Abs(_, name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

func (l rootedLoader) Get(name string) (io.Reader, error) {
	return l.inner.Get(name)
}

var registerFiltersOnce sync.Once

func registerDefaultFilters(logger zerolog.Logger) {
	registerFiltersOnce.Do(func() {
		if !pongo2.FilterExists("trim") {
			registerFilter(logger, "trim", filterTrim)
		}
	})
}

func registerFilter(logger zerolog.Logger, name string, fn pongo2.FilterFunction) {
	if err := pongo2.RegisterFilter(name, fn); err != nil {
		logger.Warn().Err(err).Str("filter", name).Msg("preview: register template filter")
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
