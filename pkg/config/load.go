package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore, so PAYMENTFORM_PAYMENT_SHEET__MERCHANT_DISPLAY_NAME sets
// payment_sheet.merchant_display_name.
const EnvPrefix = "PAYMENTFORM_"

// File is the on-disk configuration of the paymentform tooling.
type File struct {
	PaymentSheet Configuration  `koanf:"payment_sheet"`
	Logging      LoggingConfig  `koanf:"logging"`
	Layouts      LayoutsConfig  `koanf:"layouts"`
	Render       RenderDefaults `koanf:"render"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"omitempty,oneof=console json"`
}

// LayoutsConfig locates layout definitions. Dir and URL replace the built-in
// defaults when set.
type LayoutsConfig struct {
	Dir     string `koanf:"dir"`
	URL     string `koanf:"url"`
	Lenient bool   `koanf:"lenient"`
}

// RenderDefaults seed render options.
type RenderDefaults struct {
	Locale   string `koanf:"locale"`
	Country  string `koanf:"country" validate:"omitempty,iso3166_1_alpha2"`
	Currency string `koanf:"currency" validate:"omitempty,iso4217"`
	Amount   int64  `koanf:"amount" validate:"gte=0"`
}

var defaults = map[string]interface{}{
	"logging.level":  "info",
	"logging.format": "console",
	"render.locale":  "en",
}

// Load reads defaults, then the TOML file at path when non-empty, then
// PAYMENTFORM_ environment variables.
func Load(path string) (*File, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	var out File
	if err := k.Unmarshal("", &out); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &out, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Validate checks the payment sheet configuration and the tooling settings.
func (f File) Validate() error {
	if err := f.PaymentSheet.Validate(); err != nil {
		return err
	}
	if err := getValidator().Struct(f.Logging); err != nil {
		return fmt.Errorf("config: logging: %w", err)
	}
	if err := getValidator().Struct(f.Render); err != nil {
		return fmt.Errorf("config: render: %w", err)
	}
	return nil
}
