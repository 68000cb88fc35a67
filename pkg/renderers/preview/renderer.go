package preview

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-paymentform/pkg/render"
	"github.com/goliatone/go-paymentform/pkg/widgets"
)

const formTemplate = "form"

// Option configures the preview renderer.
type Option func(*config)

type config struct {
	templateFS fs.FS
	widgets    *widgets.Registry
	policy     *bluemonday.Policy
	logger     zerolog.Logger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide form.tpl and the partials it includes.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithWidgetRegistry overrides the registry that picks a widget per field.
func WithWidgetRegistry(reg *widgets.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.widgets = reg
		}
	}
}

// WithPolicy overrides the sanitizer applied to copy that carries markup.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithLogger routes renderer diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// Renderer produces an HTML preview of a form's element tree.
type Renderer struct {
	engine  *Engine
	widgets *widgets.Registry
	policy  *bluemonday.Policy
	logger  zerolog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the preview renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}
	if cfg.policy == nil {
		cfg.policy = bluemonday.UGCPolicy()
	}

	engine, err := NewEngine(cfg.templateFS, ".tpl", WithEngineLogger(cfg.logger))
	if err != nil {
		return nil, fmt.Errorf("preview renderer: configure template engine: %w", err)
	}

	return &Renderer{
		engine:  engine,
		widgets: cfg.widgets,
		policy:  cfg.policy,
		logger:  cfg.logger,
	}, nil
}

func (r *Renderer) Name() string {
	return "preview"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render executes the form template over the element tree. Templates can
// call translate(key, ...args) and current_locale() alongside the form and
// theme views.
func (r *Renderer) Render(ctx context.Context, form render.Form, opts render.RenderOptions) ([]byte, error) {
	if r == nil || r.engine == nil {
		return nil, errors.New("preview renderer: not configured")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	data := render.TemplateI18nFuncs(opts.Translator, render.TemplateI18nConfig{
		Locale:    opts.Locale,
		OnMissing: opts.OnMissing,
	})
	data["form"] = r.buildView(form, opts)
	data["theme"] = r.themeView(opts.Theme)
	out, err := r.engine.RenderTemplate(formTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("preview renderer: %w", err)
	}
	r.logger.Debug().
		Str("payment_method", form.PaymentMethod).
		Int("elements", len(form.Elements)).
		Msg("preview rendered")
	return []byte(out), nil
}
