package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	paymentform "github.com/goliatone/go-paymentform"
	"github.com/goliatone/go-paymentform/internal/logging"
	"github.com/goliatone/go-paymentform/pkg/config"
	"github.com/goliatone/go-paymentform/pkg/layout"
	"github.com/goliatone/go-paymentform/pkg/model"
	"github.com/goliatone/go-paymentform/pkg/orchestrator"
	"github.com/goliatone/go-paymentform/pkg/render"
	"github.com/goliatone/go-paymentform/pkg/renderers/tui"
	"github.com/goliatone/go-paymentform/pkg/spec"
)

const httpTimeout = 10 * time.Second

// appState is populated by the Before hook and shared by every command.
type appState struct {
	cfg    *config.File
	logger zerolog.Logger
	driver tui.PromptDriver
}

func newApp(out, errOut io.Writer, driver tui.PromptDriver) *cli.App {
	state := &appState{logger: zerolog.Nop(), driver: driver}

	return &cli.App{
		Name:      "paymentform",
		Usage:     "Resolve, validate, and render payment method forms",
		Version:   version,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE`",
				EnvVars: []string{"PAYMENTFORM_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment overrides from `FILE` when it exists",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the configured log level",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Override the configured log format (console or json)",
			},
		},
		Before: state.setup,
		Commands: []*cli.Command{
			resolveCommand(state),
			validateCommand(state),
			postalCommand(state),
			renderCommand(state),
			fillCommand(state),
			configCommand(state),
		},
	}
}

func (s *appState) setup(c *cli.Context) error {
	if err := loadEnvFile(c.String("env-file"), c.IsSet("env-file")); err != nil {
		return err
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	opts := logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: c.App.ErrWriter,
	}
	if c.IsSet("log-level") {
		opts.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		opts.Format = c.String("log-format")
	}
	logger, err := logging.Setup(opts)
	if err != nil {
		return err
	}

	s.cfg = cfg
	s.logger = logger
	return nil
}

// loadEnvFile applies a dotenv file without overriding variables that are
// already set. A missing file is only an error when it was asked for.
func loadEnvFile(path string, explicit bool) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// layoutFlags select the layout a command works on.
func layoutFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "payment-method",
			Aliases: []string{"p"},
			Usage:   "Payment method `CODE` of a built-in or configured layout",
		},
		&cli.StringFlag{
			Name:    "source",
			Aliases: []string{"s"},
			Usage:   "Layout document `PATH` or URL",
		},
		&cli.BoolFlag{
			Name:  "lenient",
			Usage: "Degrade malformed form items instead of failing",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Check the layout against the layout schema first",
		},
	}
}

// formFlags shape the built form.
func formFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "merchant",
			Usage: "Merchant name quoted by mandates (defaults to the configured display name)",
		},
		&cli.StringFlag{
			Name:  "preset",
			Usage: "Apply a JSON or YAML preset `FILE` (values, fields, drop)",
		},
		&cli.StringFlag{
			Name:  "fields",
			Usage: "Comma separated identifiers to keep",
		},
		&cli.StringFlag{
			Name:  "drop",
			Usage: "Comma separated identifiers to remove",
		},
		&cli.BoolFlag{
			Name:  "save-for-future-use",
			Usage: "Append the save-for-future-use checkbox with this initial state",
		},
		&cli.BoolFlag{
			Name:  "set-as-default",
			Usage: "Append the set-as-default checkbox, shown when true",
		},
		&cli.BoolFlag{
			Name:  "session",
			Usage: "Attribute the submission to a new client session id",
		},
	}
}

func (s *appState) orchestrator(c *cli.Context, extra ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	lenient := s.cfg.Layouts.Lenient || c.Bool("lenient")
	opts := []orchestrator.Option{
		orchestrator.WithLogger(s.logger),
		orchestrator.WithLoader(paymentform.NewLoader(layout.WithHTTPFallback(httpTimeout))),
		orchestrator.WithCollection(s.cfg.PaymentSheet.BillingDetailsCollection),
		orchestrator.WithAppearance(s.cfg.PaymentSheet.Appearance),
		orchestrator.WithLenient(lenient),
		orchestrator.WithSchemaValidation(c.Bool("strict")),
	}

	if dir := strings.TrimSpace(s.cfg.Layouts.Dir); dir != "" {
		store, err := layout.LoadFS(os.DirFS(dir), spec.WithLenient(lenient), spec.WithLogger(s.logger))
		if err != nil {
			return nil, fmt.Errorf("failed to load layouts from %s: %w", dir, err)
		}
		opts = append(opts, orchestrator.WithStore(store))
	}

	transformer, err := s.transformer(c)
	if err != nil {
		return nil, err
	}
	if transformer != nil {
		opts = append(opts, orchestrator.WithTransformer(transformer))
	}
	return orchestrator.New(append(opts, extra...)...), nil
}

func (s *appState) transformer(c *cli.Context) (orchestrator.Transformer, error) {
	var preset *orchestrator.PresetTransformer
	if path := c.String("preset"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read preset: %w", err)
		}
		preset, err = orchestrator.NewPresetTransformer(data)
		if err != nil {
			return nil, err
		}
	}
	subset := render.ParseFieldSubset(c.String("fields"), c.String("drop"))
	if preset == nil && subset.Empty() {
		return nil, nil
	}

	return orchestrator.TransformerFunc(func(ctx context.Context, form *render.Form) error {
		if preset != nil {
			if err := preset.Transform(ctx, form); err != nil {
				return err
			}
		}
		render.ApplySubset(form, subset)
		return nil
	}), nil
}

func (s *appState) request(c *cli.Context) (orchestrator.Request, error) {
	req := orchestrator.Request{
		PaymentMethod: strings.TrimSpace(c.String("payment-method")),
		Transform:     s.transformContext(c),
		RenderOptions: render.RenderOptions{Locale: s.cfg.Render.Locale},
	}

	raw := strings.TrimSpace(c.String("source"))
	if raw == "" && c.Args().Present() {
		raw = c.Args().First()
	}
	if raw == "" && req.PaymentMethod == "" {
		raw = strings.TrimSpace(s.cfg.Layouts.URL)
	}
	if raw != "" {
		src, err := sourceFrom(raw)
		if err != nil {
			return orchestrator.Request{}, err
		}
		req.Source = src
	}

	if c.Bool("session") {
		req.ClientSessionID = uuid.New()
	}
	return req, nil
}

func (s *appState) transformContext(c *cli.Context) spec.TransformContext {
	sheet := s.cfg.PaymentSheet
	ctx := spec.TransformContext{
		InitialValues: sheet.DefaultBillingDetails.InitialValues(),
		MerchantName:  sheet.MerchantDisplayName,
		Country:       s.cfg.Render.Country,
	}
	if merchant := strings.TrimSpace(c.String("merchant")); merchant != "" {
		ctx.MerchantName = merchant
	}
	if s.cfg.Render.Amount > 0 && s.cfg.Render.Currency != "" {
		ctx.Amount = &model.Amount{Value: s.cfg.Render.Amount, Currency: strings.ToLower(s.cfg.Render.Currency)}
	}
	if c.IsSet("save-for-future-use") {
		checked := c.Bool("save-for-future-use")
		ctx.SaveForFutureUse = &checked
	}
	if c.IsSet("set-as-default") {
		shown := c.Bool("set-as-default")
		ctx.ShowSetAsDefault = &shown
	}
	return ctx
}

func sourceFrom(raw string) (layout.Source, error) {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return layout.ParseURLSource(raw)
	}
	return layout.SourceFromFile(raw), nil
}

func writeOutput(c *cli.Context, data []byte) error {
	if path := c.String("output"); path != "" {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(c.App.ErrWriter, "Form written to %s\n", path)
		return nil
	}
	_, err := c.App.Writer.Write(data)
	if err == nil && len(data) > 0 && data[len(data)-1] != '\n' {
		_, err = io.WriteString(c.App.Writer, "\n")
	}
	return err
}
