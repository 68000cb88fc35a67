package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-paymentform/pkg/model"
)

// ErrorMapping splits a server error payload into field-level and form-level
// messages.
type ErrorMapping struct {
	Fields map[model.IdentifierSpec][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises form-level messages, trimming
// whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload maps server error params onto the identifiers of a form.
// Params may be bracketed ("payment_method_data[billing_details][email]"),
// dotted, or JSON pointers. Unknown params become form-level errors so
// messages are not lost.
func MapErrorPayload(identifiers []model.IdentifierSpec, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[model.IdentifierSpec][]string)}
	if len(payload) == 0 {
		return ErrorMapping{}
	}

	known := make(map[string]model.IdentifierSpec, len(identifiers))
	for _, id := range identifiers {
		if key := strings.Join(id.Segments(), "."); key != "" {
			known[key] = id
		}
	}

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		id, ok := mapErrorPath(rawPath, known)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[id] = append(mapping.Fields[id], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	for id, messages := range mapping.Fields {
		mapping.Fields[id] = normalizeMessages(messages)
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, known map[string]model.IdentifierSpec) (model.IdentifierSpec, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", false
	}
	segments := parsePathSegments(trimmed)
	if len(segments) == 0 {
		return "", false
	}

	var (
		best      model.IdentifierSpec
		bestDepth int
	)
	for _, variant := range buildSegmentVariants(segments) {
		id, depth := longestMatch(variant, known)
		if depth > bestDepth {
			best, bestDepth = id, depth
		}
	}
	return best, bestDepth > 0
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	clean = strings.Trim(clean, "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func buildSegmentVariants(segments []string) [][]string {
	var variants [][]string
	seen := make(map[string]struct{}, 4)
	appendVariant := func(candidate []string) {
		if len(candidate) == 0 {
			return
		}
		key := strings.Join(candidate, ".")
		if _, exists := seen[key]; exists {
			return
		}
		seen[key] = struct{}{}
		variants = append(variants, append([]string(nil), candidate...))
	}

	noWrappers := dropWrapperSegments(segments)
	appendVariant(segments)
	appendVariant(noWrappers)
	appendVariant(stripNumericSegments(segments))
	appendVariant(stripNumericSegments(noWrappers))
	return variants
}

// wrapperSegments prefix params in confirm and create requests without
// being part of the field's identifier.
var wrapperSegments = map[string]struct{}{
	"payment_method_data": {},
	"payment_method":      {},
	"source_data":         {},
	"body":                {},
	"request":             {},
	"payload":             {},
	"data":                {},
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		if _, ok := wrapperSegments[strings.ToLower(out[0])]; !ok {
			break
		}
		out = out[1:]
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func longestMatch(segments []string, known map[string]model.IdentifierSpec) (model.IdentifierSpec, int) {
	for end := len(segments); end > 0; end-- {
		if id, ok := known[strings.Join(segments[:end], ".")]; ok {
			return id, end
		}
	}
	return "", 0
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors":
		return true
	default:
		return false
	}
}
