package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-paymentform/pkg/layout"
	"github.com/goliatone/go-paymentform/pkg/orchestrator"
	"github.com/goliatone/go-paymentform/pkg/render"
	"github.com/goliatone/go-paymentform/pkg/renderers/tui"
	"github.com/goliatone/go-paymentform/pkg/spec"
	"github.com/goliatone/go-paymentform/pkg/textfield"
	"github.com/goliatone/go-paymentform/pkg/validation"
)

func resolveCommand(state *appState) *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Print the form items of a layout as normalized JSON",
		ArgsUsage: "[LAYOUT]",
		Flags: append(layoutFlags(),
			&cli.BoolFlag{
				Name:  "expand",
				Usage: "Expand placeholders using the configured billing details collection",
			},
			&cli.BoolFlag{
				Name:  "list",
				Usage: "List the available payment methods instead",
			},
		),
		Action: state.runResolve,
	}
}

func (s *appState) runResolve(c *cli.Context) error {
	orch, err := s.orchestrator(c)
	if err != nil {
		return err
	}
	if c.Bool("list") {
		for _, code := range orch.PaymentMethods() {
			fmt.Fprintln(c.App.Writer, code)
		}
		return nil
	}

	req, err := s.request(c)
	if err != nil {
		return err
	}
	def, err := orch.Resolve(c.Context, req)
	if err != nil {
		return err
	}

	items := def.Items
	if c.Bool("expand") {
		items = items.Expand(spec.ExpandOptions{
			Collection:      s.cfg.PaymentSheet.BillingDetailsCollection,
			RequiresMandate: def.RequiresMandate,
		})
	}
	out, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}
	return writeOutput(c, out)
}

func validateCommand(state *appState) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Check layout documents against the layout schema (built-in layouts when no file is given)",
		ArgsUsage: "[LAYOUT...]",
		Action:    state.runValidate,
	}
}

func (s *appState) runValidate(c *cli.Context) error {
	type target struct {
		name string
		data []byte
	}

	var targets []target
	if c.Args().Present() {
		for _, path := range c.Args().Slice() {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read layout: %w", err)
			}
			targets = append(targets, target{name: path, data: data})
		}
	} else {
		fsys := layout.DefaultFS()
		err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, err error) error {
			if err != nil || entry.IsDir() {
				return err
			}
			data, err := fs.ReadFile(fsys, path)
			if err != nil {
				return err
			}
			targets = append(targets, target{name: path, data: data})
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to read built-in layouts: %w", err)
		}
	}

	failed := 0
	for _, t := range targets {
		doc, err := layout.NewDocument(layout.SourceFromFile(t.name), t.data)
		if err != nil {
			fmt.Fprintf(c.App.Writer, "%s: %v\n", t.name, err)
			failed++
			continue
		}
		def, err := layout.Decode(doc, spec.WithLenient(true))
		if err != nil {
			fmt.Fprintf(c.App.Writer, "%s: %v\n", t.name, err)
			failed++
			continue
		}

		result := validation.ValidateLayout(c.Context, def.Raw)
		for _, issue := range result.Issues {
			field := issue.Field
			if field == "" {
				field = "(root)"
			}
			fmt.Fprintf(c.App.Writer, "%s: %s %s: %s\n", t.name, issue.Severity, field, issue.Message)
		}
		if !result.Valid {
			failed++
			continue
		}
		s.logger.Debug().Str("layout", t.name).Str("payment_method", def.PaymentMethod).Msg("layout is valid")
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d layouts failed validation", failed, len(targets)), 1)
	}
	fmt.Fprintf(c.App.Writer, "%d layouts are valid\n", len(targets))
	return nil
}

func postalCommand(state *appState) *cli.Command {
	return &cli.Command{
		Name:      "postal",
		Usage:     "Filter and classify postal codes for a country",
		ArgsUsage: "CODE...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "country",
				Usage:    "ISO 3166-1 alpha-2 country `CODE`",
				Required: true,
			},
		},
		Action: state.runPostal,
	}
}

func (s *appState) runPostal(c *cli.Context) error {
	inputs := c.Args().Slice()
	if len(inputs) == 0 {
		return cli.Exit("at least one postal code is required", 2)
	}

	country := c.String("country")
	opts := render.RenderOptions{Locale: s.cfg.Render.Locale}
	rejected := 0
	for _, input := range inputs {
		filtered, state := textfield.ClassifyPostalCode(country, input)
		line := fmt.Sprintf("%q\t%q\t%s", input, filtered, state.Kind)
		if fieldErr := state.Error(); fieldErr != nil {
			line += "\t" + opts.Resolve(fieldErr.Message)
		}
		fmt.Fprintln(c.App.Writer, line)
		if !state.IsValid() {
			rejected++
		}
	}
	if rejected > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d postal codes are not valid for %s", rejected, len(inputs), strings.ToUpper(country)), 1)
	}
	return nil
}

func renderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write output to `FILE` instead of stdout",
		},
		&cli.StringFlag{
			Name:  "errors",
			Usage: "JSON `FILE` of server errors keyed by param path",
		},
	}
}

func renderCommand(state *appState) *cli.Command {
	flags := append(layoutFlags(), formFlags()...)
	flags = append(flags, renderFlags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:  "renderer",
			Usage: "Renderer `NAME` (defaults to preview)",
		},
		&cli.StringFlag{
			Name:  "action",
			Usage: "Form action `URL` of the rendered markup",
		},
		&cli.BoolFlag{
			Name:  "show-errors",
			Usage: "Surface the errors fields report for their current values",
		},
		&cli.StringFlag{
			Name:  "theme",
			Usage: "Theme `NAME` (defaults to the configured appearance)",
		},
		&cli.StringFlag{
			Name:  "theme-variant",
			Usage: "Theme `VARIANT`: light or dark",
		},
	)
	return &cli.Command{
		Name:      "render",
		Usage:     "Render a payment method form",
		ArgsUsage: "[LAYOUT]",
		Flags:     flags,
		Action:    state.runRender,
	}
}

func (s *appState) runRender(c *cli.Context) error {
	orch, err := s.orchestrator(c)
	if err != nil {
		return err
	}
	req, err := s.request(c)
	if err != nil {
		return err
	}
	req.Renderer = c.String("renderer")
	req.RenderOptions.Action = c.String("action")
	req.RenderOptions.ShowFieldErrors = c.Bool("show-errors")
	req.ThemeName = c.String("theme")
	req.ThemeVariant = c.String("theme-variant")
	if req.ErrorPayload, err = readErrorPayload(c.String("errors")); err != nil {
		return err
	}

	out, err := orch.Generate(c.Context, req)
	if err != nil {
		return err
	}
	return writeOutput(c, out)
}

func fillCommand(state *appState) *cli.Command {
	flags := append(layoutFlags(), formFlags()...)
	flags = append(flags, renderFlags()...)
	flags = append(flags, &cli.StringFlag{
		Name:  "format",
		Usage: "Submission output format: json, form, or pretty",
		Value: string(tui.OutputFormatJSON),
	})
	return &cli.Command{
		Name:      "fill",
		Usage:     "Fill a payment method form in the terminal and print the submission params",
		ArgsUsage: "[LAYOUT]",
		Flags:     flags,
		Action:    state.runFill,
	}
}

func (s *appState) runFill(c *cli.Context) error {
	format, ok := tui.ParseOutputFormat(c.String("format"))
	if !ok {
		return cli.Exit(fmt.Sprintf("unknown output format %q", c.String("format")), 2)
	}

	options := []tui.Option{tui.WithOutputFormat(format), tui.WithTheme(tui.DefaultTheme()), tui.WithLogger(s.logger)}
	if s.driver != nil {
		options = append(options, tui.WithPromptDriver(s.driver))
	} else {
		options = append(options, tui.WithPromptDriver(tui.NewSurveyDriver(c.App.ErrWriter)))
	}
	renderer := tui.New(options...)

	orch, err := s.orchestrator(c, orchestrator.WithRegistry(render.NewRegistry(renderer)))
	if err != nil {
		return err
	}
	req, err := s.request(c)
	if err != nil {
		return err
	}
	if req.ErrorPayload, err = readErrorPayload(c.String("errors")); err != nil {
		return err
	}

	out, err := orch.Generate(c.Context, req)
	if err != nil {
		return err
	}
	return writeOutput(c, out)
}

func readErrorPayload(path string) (map[string][]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read errors: %w", err)
	}
	var payload map[string][]string
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse errors: %w", err)
	}
	return payload, nil
}
