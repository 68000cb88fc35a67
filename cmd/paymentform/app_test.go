package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-paymentform/pkg/renderers/tui"
)

type scriptedDriver struct {
	inputs []string
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	value := d.inputs[0]
	d.inputs = d.inputs[1:]
	return value, nil
}

func (d *scriptedDriver) Password(ctx context.Context, cfg tui.InputConfig) (string, error) {
	return d.Input(ctx, cfg)
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return false, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	return cfg.DefaultIndex, nil
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func runApp(t *testing.T, driver tui.PromptDriver, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp(&out, &errOut, driver)
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"paymentform", "--log-level", "error"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestPostalCommand(t *testing.T) {
	out, err := runApp(t, nil, "postal", "--country", "US", "94107")
	if err != nil {
		t.Fatalf("postal: %v", err)
	}
	if diff := cmp.Diff("\"94107\"\t\"94107\"\tfull\n", out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	out, err = runApp(t, nil, "postal", "--country", "US", "941")
	var exit cli.ExitCoder
	if !errors.As(err, &exit) || exit.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %v", err)
	}
	if !strings.Contains(out, "incomplete\tYour ZIP is incomplete.") {
		t.Fatalf("expected incomplete message, got %q", out)
	}
}

func TestResolveCommand(t *testing.T) {
	out, err := runApp(t, nil, "resolve", "--list")
	if err != nil {
		t.Fatalf("resolve --list: %v", err)
	}
	if !strings.Contains(out, "sepa_debit\n") {
		t.Fatalf("expected sepa_debit in listing, got %q", out)
	}

	out, err = runApp(t, nil, "resolve", "--payment-method", "sepa_debit", "--expand")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for _, want := range []string{`"type": "name"`, `"type": "iban"`, `"type": "sepa_mandate"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, `"placeholder"`) {
		t.Errorf("expected placeholders to be expanded:\n%s", out)
	}
}

func TestResolveCommandFromFile(t *testing.T) {
	path := writeFile(t, "sofort.yaml", "- type: name\n- type: email\n")

	out, err := runApp(t, nil, "resolve", path)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.Contains(out, `"type": "email"`) {
		t.Fatalf("expected email item, got:\n%s", out)
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := runApp(t, nil, "validate")
	if err != nil {
		t.Fatalf("validate: %v (%s)", err, out)
	}
	if !strings.Contains(out, "8 layouts are valid") {
		t.Fatalf("unexpected output %q", out)
	}

	bad := writeFile(t, "blik.json", `[{"type": "text", "api_path": "blik[code]", "label": "x", "keyboard_type": "telepathy"}]`)
	out, err = runApp(t, nil, "validate", bad)
	if err == nil {
		t.Fatalf("expected validation failure, got output %q", out)
	}
	if !strings.Contains(out, "keyboard_type") {
		t.Fatalf("expected keyboard_type issue, got %q", out)
	}
}

func TestRenderCommand(t *testing.T) {
	out, err := runApp(t, nil, "render", "--payment-method", "blik", "--session")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`name="payment_method_data[type]" value="blik"`,
		`name="client_attribution_metadata[client_session_id]"`,
		`name="blik[code]"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output:\n%s", want, out)
		}
	}
}

func TestRenderCommandTheme(t *testing.T) {
	out, err := runApp(t, nil, "render", "-p", "blik", "--theme-variant", "dark")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`data-theme="paymentsheet" data-theme-variant="dark"`,
		`--color-primary:#0A84FF;`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output:\n%s", want, out)
		}
	}

	t.Setenv("PAYMENTFORM_PAYMENT_SHEET__APPEARANCE__COLORS_LIGHT__PRIMARY", "#123456")
	out, err = runApp(t, nil, "render", "-p", "blik")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `--color-primary:#123456;`) {
		t.Fatalf("expected appearance override in output:\n%s", out)
	}

	if _, err := runApp(t, nil, "render", "-p", "blik", "--theme", "neon"); err == nil || !strings.Contains(err.Error(), `theme "neon" not registered`) {
		t.Fatalf("expected unknown theme error, got %v", err)
	}
}

func TestRenderCommandWritesFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "form.html")
	if _, err := runApp(t, nil, "render", "-p", "eps", "--drop", "billing_details[name]", "-o", target); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.Contains(string(data), `name="billing_details[name]"`) {
		t.Fatalf("expected name field to be dropped:\n%s", data)
	}
}

func TestFillCommand(t *testing.T) {
	driver := &scriptedDriver{inputs: []string{"123456"}}
	out, err := runApp(t, driver, "fill", "--payment-method", "blik", "--format", "form")
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	want := "blik%5Bcode%5D=123456&payment_method_data%5Btype%5D=blik\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	_, err = runApp(t, driver, "fill", "--payment-method", "blik", "--format", "xml")
	var exit cli.ExitCoder
	if !errors.As(err, &exit) || exit.ExitCode() != 2 {
		t.Fatalf("expected usage exit code, got %v", err)
	}
}

func TestConfigValidateCommand(t *testing.T) {
	valid := writeFile(t, "valid.toml", `
[payment_sheet]
merchant_display_name = "Example, Inc."
`)
	out, err := runApp(t, nil, "--config", valid, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if out != "Configuration is valid\n" {
		t.Fatalf("unexpected output %q", out)
	}

	invalid := writeFile(t, "invalid.toml", `
[payment_sheet.customer]
id = "cus_1"
ephemeral_key_secret = "sk_nope"
`)
	_, err = runApp(t, nil, "--config", invalid, "config", "validate")
	if err == nil || !strings.Contains(err.Error(), "ephemeralKeySecret` format does not match") {
		t.Fatalf("expected ephemeral key error, got %v", err)
	}
}

func TestEnvFileOverrides(t *testing.T) {
	const key = "PAYMENTFORM_PAYMENT_SHEET__MERCHANT_DISPLAY_NAME"
	t.Setenv(key, "")
	os.Unsetenv(key)

	envFile := writeFile(t, "paymentform.env", key+"=Dotenv Merchant\n")
	out, err := runApp(t, nil, "--env-file", envFile, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, `"merchant_display_name": "Dotenv Merchant"`) {
		t.Fatalf("expected merchant from env file, got:\n%s", out)
	}

	_, err = runApp(t, nil, "--env-file", filepath.Join(t.TempDir(), "missing.env"), "config", "show")
	if err == nil || !strings.Contains(err.Error(), "failed to read env file") {
		t.Fatalf("expected missing env file error, got %v", err)
	}
}
