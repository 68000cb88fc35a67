package render

import (
	"strings"

	"github.com/goliatone/go-paymentform/pkg/elements"
)

// FieldSubset selects top-level elements by identifier. Tokens match the
// element identifier, its section identifier, or the identifier of any field
// it reports values for. Matching ignores case and surrounding whitespace.
type FieldSubset struct {
	// Include keeps only matching elements when non-empty.
	Include []string
	// Exclude drops matching elements. Exclusion wins over inclusion.
	Exclude []string
}

// ParseFieldSubset builds a subset from comma separated token lists.
func ParseFieldSubset(include, exclude string) FieldSubset {
	return FieldSubset{
		Include: parseTokenList(include),
		Exclude: parseTokenList(exclude),
	}
}

// Empty reports whether the subset filters nothing.
func (s FieldSubset) Empty() bool {
	return len(s.Include) == 0 && len(s.Exclude) == 0
}

// ApplySubset removes elements that do not match the supplied subset. When
// subset is empty or form is nil, the form is left unchanged.
func ApplySubset(form *Form, subset FieldSubset) {
	if form == nil || subset.Empty() {
		return
	}

	include := normaliseTokens(subset.Include)
	exclude := normaliseTokens(subset.Exclude)

	filtered := make([]elements.FormElement, 0, len(form.Elements))
	for _, element := range form.Elements {
		if element == nil {
			continue
		}
		tokens := elementTokens(element)
		if matchesAny(tokens, exclude) {
			continue
		}
		if len(include) > 0 && !matchesAny(tokens, include) {
			continue
		}
		filtered = append(filtered, element)
	}
	if len(filtered) == 0 {
		filtered = nil
	}
	form.Elements = filtered
}

func elementTokens(element elements.FormElement) []string {
	id := element.Identifier()
	tokens := []string{normaliseToken(id.String())}
	if base, ok := strings.CutSuffix(id.String(), "_section"); ok {
		tokens = append(tokens, normaliseToken(base))
	}
	for _, value := range element.FormFieldValues() {
		tokens = append(tokens, normaliseToken(value.Identifier.String()))
	}
	if section, ok := element.(*elements.SectionElement); ok {
		for _, field := range section.Fields {
			tokens = append(tokens, normaliseToken(field.Identifier().String()))
		}
	}
	return dedupe(tokens)
}

func matchesAny(tokens []string, set map[string]struct{}) bool {
	if len(set) == 0 {
		return false
	}
	for _, token := range tokens {
		if _, ok := set[token]; ok {
			return true
		}
	}
	return false
}

func normaliseTokens(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(values))
	for _, value := range values {
		if token := normaliseToken(value); token != "" {
			out[token] = struct{}{}
		}
	}
	return out
}

func normaliseToken(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

func parseTokenList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := normaliseToken(part); token != "" {
			tokens = append(tokens, token)
		}
	}
	return dedupe(tokens)
}
