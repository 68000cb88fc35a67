package preview

import (
	"regexp"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// StylesheetAsset is the theme asset key of an optional stylesheet linked
// ahead of the form.
const StylesheetAsset = "preview.stylesheet"

var cssVarName = regexp.MustCompile(`^--[A-Za-z0-9_-]+$`)

func (r *Renderer) themeView(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	view := map[string]any{
		"name":           cfg.Theme,
		"variant":        cfg.Variant,
		"tokens":         cfg.Tokens,
		"css_vars_style": r.cssVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		view["stylesheet"] = cfg.AssetURL(StylesheetAsset)
	}
	return view
}

// cssVarsStyle scopes the theme's custom properties to the form element.
// Declarations that could leave the style block are dropped.
func (r *Renderer) cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		value := strings.TrimSpace(vars[key])
		if !cssVarName.MatchString(key) || value == "" || strings.ContainsAny(value, "<>{};\\") {
			r.logger.Warn().Str("property", key).Msg("preview: dropping unsafe theme property")
			continue
		}
		b.WriteString(key)
		b.WriteString(":")
		b.WriteString(value)
		b.WriteString(";")
	}
	if b.Len() == 0 {
		return ""
	}
	return ".paymentform{" + b.String() + "}"
}
