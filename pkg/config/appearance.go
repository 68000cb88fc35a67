package config

import (
	"strconv"
	"strings"
)

// Appearance variants.
const (
	AppearanceLight = "light"
	AppearanceDark  = "dark"
)

// Appearance selects the theme a form is drawn with and overrides its design
// tokens. Theme and Variant name a registered theme manifest; the remaining
// fields become token overrides on top of it.
type Appearance struct {
	Theme       string               `json:"theme,omitempty" koanf:"theme"`
	Variant     string               `json:"variant,omitempty" koanf:"variant" validate:"omitempty,oneof=light dark"`
	ColorsLight AppearanceColors     `json:"colors_light" koanf:"colors_light"`
	ColorsDark  AppearanceColors     `json:"colors_dark" koanf:"colors_dark"`
	Shapes      AppearanceShapes     `json:"shapes" koanf:"shapes"`
	Typography  AppearanceTypography `json:"typography" koanf:"typography"`
}

// AppearanceColors overrides the palette of one variant. Colors are hex
// values such as "#0074D4".
type AppearanceColors struct {
	Primary         string `json:"primary,omitempty" koanf:"primary" validate:"omitempty,hexcolor"`
	Surface         string `json:"surface,omitempty" koanf:"surface" validate:"omitempty,hexcolor"`
	Component       string `json:"component,omitempty" koanf:"component" validate:"omitempty,hexcolor"`
	ComponentBorder string `json:"component_border,omitempty" koanf:"component_border" validate:"omitempty,hexcolor"`
	OnComponent     string `json:"on_component,omitempty" koanf:"on_component" validate:"omitempty,hexcolor"`
	OnSurface       string `json:"on_surface,omitempty" koanf:"on_surface" validate:"omitempty,hexcolor"`
	Error           string `json:"error,omitempty" koanf:"error" validate:"omitempty,hexcolor"`
}

// AppearanceShapes sizes are in CSS pixels.
type AppearanceShapes struct {
	CornerRadius *float64 `json:"corner_radius,omitempty" koanf:"corner_radius" validate:"omitempty,gte=0"`
	BorderWidth  *float64 `json:"border_width,omitempty" koanf:"border_width" validate:"omitempty,gte=0"`
}

// AppearanceTypography scales and selects the form font.
type AppearanceTypography struct {
	SizeScaleFactor float64 `json:"size_scale_factor,omitempty" koanf:"size_scale_factor" validate:"omitempty,gt=0"`
	FontFamily      string  `json:"font_family,omitempty" koanf:"font_family" validate:"omitempty,excludesall=;{}<>"`
}

// Tokens returns the design token overrides for variant. Unset fields are
// omitted so the theme's own tokens show through. Returns nil when nothing is
// overridden.
func (a Appearance) Tokens(variant string) map[string]string {
	colors := a.ColorsLight
	if strings.EqualFold(variant, AppearanceDark) {
		colors = a.ColorsDark
	}

	tokens := make(map[string]string)
	set := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			tokens[key] = value
		}
	}
	set("color-primary", colors.Primary)
	set("color-surface", colors.Surface)
	set("color-component", colors.Component)
	set("color-component-border", colors.ComponentBorder)
	set("color-on-component", colors.OnComponent)
	set("color-on-surface", colors.OnSurface)
	set("color-error", colors.Error)
	if a.Shapes.CornerRadius != nil {
		set("corner-radius", pixels(*a.Shapes.CornerRadius))
	}
	if a.Shapes.BorderWidth != nil {
		set("border-width", pixels(*a.Shapes.BorderWidth))
	}
	if a.Typography.SizeScaleFactor > 0 {
		set("font-size-scale", strconv.FormatFloat(a.Typography.SizeScaleFactor, 'f', -1, 64))
	}
	set("font-family", a.Typography.FontFamily)

	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

func pixels(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
