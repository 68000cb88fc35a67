package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	internalLoader "github.com/goliatone/go-paymentform/internal/layout/loader"
	"github.com/goliatone/go-paymentform/pkg/config"
	"github.com/goliatone/go-paymentform/pkg/layout"
	"github.com/goliatone/go-paymentform/pkg/model"
	"github.com/goliatone/go-paymentform/pkg/render"
	"github.com/goliatone/go-paymentform/pkg/renderers/preview"
	"github.com/goliatone/go-paymentform/pkg/spec"
	"github.com/goliatone/go-paymentform/pkg/validation"
)

const defaultRendererName = "preview"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom layout loader.
func WithLoader(loader layout.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithStore replaces the built-in layouts used for requests that name only a
// payment method.
func WithStore(store *layout.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithCollection sets the billing details collection applied when a request
// does not carry its own.
func WithCollection(collection config.BillingDetailsCollectionConfiguration) Option {
	return func(o *Orchestrator) {
		o.collection = collection
	}
}

// WithLenient degrades malformed form items to empty items instead of failing
// the layout.
func WithLenient(lenient bool) Option {
	return func(o *Orchestrator) {
		o.lenient = lenient
	}
}

// WithSchemaValidation checks loaded layouts against the layout schema before
// resolving them. Schema errors fail the request; warnings are logged.
func WithSchemaValidation(enabled bool) Option {
	return func(o *Orchestrator) {
		o.validate = enabled
	}
}

// WithTransformer registers a Transformer that can mutate the built form
// before it is rendered.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithLogger routes pipeline diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates the full pipeline from layout document to rendered
// output. It applies defaults (preview renderer, built-in layouts) while
// remaining open to dependency injection.
type Orchestrator struct {
	loader          layout.Loader
	store           *layout.Store
	registry        *render.Registry
	defaultRenderer string
	collection      config.BillingDetailsCollectionConfiguration
	lenient         bool
	validate        bool
	transformer     Transformer
	themeSelector   theme.ThemeSelector
	appearance      config.Appearance
	logger          zerolog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render the form of one payment
// method.
type Request struct {
	// Source identifies where the layout lives. Optional when Document or
	// PaymentMethod is supplied.
	Source layout.Source

	// Document bypasses the loader when the caller already holds the payload.
	Document *layout.Document

	// PaymentMethod selects a layout from the store when neither Source nor
	// Document is set.
	PaymentMethod string

	// Renderer names the renderer to use. Empty selects the default.
	Renderer string

	// Transform seeds initial values, merchant copy and checkboxes.
	Transform spec.TransformContext

	// Collection overrides the orchestrator's billing details collection.
	Collection *config.BillingDetailsCollectionConfiguration

	// ClientSessionID attributes the submission when not uuid.Nil.
	ClientSessionID uuid.UUID

	// RenderOptions carries per-request instructions such as server-side
	// errors that renderers can surface.
	RenderOptions render.RenderOptions

	// ErrorPayload holds server errors keyed by param path. They are mapped
	// onto the built form and merged into RenderOptions.
	ErrorPayload map[string][]string

	// ThemeName and ThemeVariant select the theme. Empty values fall back to
	// the configured appearance, then to the selector's defaults.
	ThemeName    string
	ThemeVariant string
}

// Resolve loads and decodes the layout of a request.
func (o *Orchestrator) Resolve(ctx context.Context, req Request) (layout.Definition, error) {
	if ctx == nil {
		return layout.Definition{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return layout.Definition{}, err
	}
	if err := o.initialiseErr; err != nil {
		return layout.Definition{}, err
	}

	parseOpts := []spec.ParseOption{spec.WithLenient(o.lenient), spec.WithLogger(o.logger)}

	var doc layout.Document
	switch {
	case req.Document != nil:
		doc = *req.Document
	case req.Source != nil:
		loaded, err := o.loader.Load(ctx, req.Source)
		if err != nil {
			return layout.Definition{}, fmt.Errorf("orchestrator: load layout: %w", err)
		}
		doc = loaded
	case strings.TrimSpace(req.PaymentMethod) != "":
		def, ok := o.store.Definition(strings.TrimSpace(req.PaymentMethod))
		if !ok {
			return layout.Definition{}, fmt.Errorf("orchestrator: payment method %q not found (available: %s)", req.PaymentMethod, strings.Join(o.store.PaymentMethods(), ", "))
		}
		return def, nil
	default:
		return layout.Definition{}, errors.New("orchestrator: source, document or payment method is required")
	}

	if o.validate {
		if err := o.validateDocument(ctx, doc); err != nil {
			return layout.Definition{}, err
		}
	}

	def, err := layout.Decode(doc, parseOpts...)
	if err != nil {
		return layout.Definition{}, fmt.Errorf("orchestrator: %w", err)
	}
	return def, nil
}

// Build resolves the layout, expands placeholders and builds the element
// tree without rendering it.
func (o *Orchestrator) Build(ctx context.Context, req Request) (render.Form, error) {
	def, err := o.Resolve(ctx, req)
	if err != nil {
		return render.Form{}, err
	}

	collection := o.collection
	if req.Collection != nil {
		collection = *req.Collection
	}
	items := def.Items.Expand(spec.ExpandOptions{
		Collection:      collection,
		RequiresMandate: def.RequiresMandate,
	})

	form := render.Form{
		PaymentMethod: def.PaymentMethod,
		MerchantName:  req.Transform.MerchantName,
		Elements:      items.BuildElements(req.Transform),
	}
	o.logger.Debug().
		Str("payment_method", def.PaymentMethod).
		Str("source", def.Source).
		Int("items", len(items)).
		Int("elements", len(form.Elements)).
		Msg("orchestrator: built form")

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &form); err != nil {
			return render.Form{}, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}
	return form, nil
}

// Generate executes the full pipeline and returns the rendered bytes (HTML for
// the default preview renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	hidden := []render.HiddenField{render.PaymentMethodType(form.PaymentMethod)}
	if req.ClientSessionID != uuid.Nil {
		hidden = append(hidden, render.ClientSessionID(req.ClientSessionID))
	}
	opts.HiddenFields = render.MergeHiddenFields(opts.HiddenFields, hidden...)
	if len(req.ErrorPayload) > 0 {
		opts = mergeErrors(opts, render.MapErrorPayload(form.Identifiers(), req.ErrorPayload))
	}
	if opts.Theme == nil {
		if opts.Theme, err = o.resolveTheme(req); err != nil {
			return nil, err
		}
	}

	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// PaymentMethods lists the payment methods of the configured store.
func (o *Orchestrator) PaymentMethods() []string {
	if o.store == nil {
		return nil
	}
	return o.store.PaymentMethods()
}

func mergeErrors(opts render.RenderOptions, mapping render.ErrorMapping) render.RenderOptions {
	if len(mapping.Fields) > 0 {
		merged := make(map[model.IdentifierSpec][]string, len(opts.Errors)+len(mapping.Fields))
		for id, messages := range opts.Errors {
			merged[id] = append([]string(nil), messages...)
		}
		for id, messages := range mapping.Fields {
			merged[id] = append(merged[id], messages...)
		}
		opts.Errors = merged
	}
	opts.FormErrors = render.MergeFormErrors(opts.FormErrors, mapping.Form...)
	return opts
}

func (o *Orchestrator) validateDocument(ctx context.Context, doc layout.Document) error {
	data, err := layout.ToJSON(doc.Raw())
	if err != nil {
		return fmt.Errorf("orchestrator: %s: %w", doc.Location(), err)
	}
	// Object documents wrap the items under "fields".
	if def, err := layout.Decode(doc, spec.WithLenient(true)); err == nil {
		data = def.Raw
	}

	result := validation.ValidateLayout(ctx, data)
	for _, issue := range result.Warnings() {
		o.logger.Warn().Str("source", doc.Location()).Str("field", issue.Field).Msg(issue.Message)
	}
	if result.Valid {
		return nil
	}
	issues := result.Errors()
	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		if issue.Field != "" {
			messages = append(messages, issue.Field+": "+issue.Message)
			continue
		}
		messages = append(messages, issue.Message)
	}
	return fmt.Errorf("orchestrator: %s failed schema validation: %s", doc.Location(), strings.Join(messages, "; "))
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(layout.NewLoaderOptions(layout.WithLoaderLogger(o.logger)))
	}
	if o.store == nil {
		store, err := layout.Defaults()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load default layouts: %w", err)
			store, _ = layout.NewStore()
		}
		o.store = store
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := preview.New(preview.WithLogger(o.logger))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themeSelector == nil {
		selector, err := NewManifestSelector(DefaultThemeName, "", DefaultThemeManifest())
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default theme: %w", err)
		} else {
			o.themeSelector = selector
		}
	}
}
