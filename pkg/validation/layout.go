package validation

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-paymentform/pkg/layout"
	"github.com/goliatone/go-paymentform/pkg/spec"
)

//go:embed schema/layout.yaml
var layoutSchema []byte

// Severity grades an issue. Warnings never make a layout invalid.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// SchemaIssue represents a validation finding with location metadata.
type SchemaIssue struct {
	Path     string   `json:"path,omitempty"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// SchemaValidationResult captures validation outcomes.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

// Errors returns the error-severity issues.
func (r SchemaValidationResult) Errors() []SchemaIssue { return r.filter(SeverityError) }

// Warnings returns the warning-severity issues.
func (r SchemaValidationResult) Warnings() []SchemaIssue { return r.filter(SeverityWarning) }

func (r SchemaValidationResult) filter(severity Severity) []SchemaIssue {
	var out []SchemaIssue
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

var (
	schemaOnce sync.Once
	schemaDoc  *openapi3.T
	schemaErr  error
)

func loadSchema(ctx context.Context) (*openapi3.T, error) {
	schemaOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(layoutSchema)
		if err != nil {
			schemaErr = fmt.Errorf("validation: load layout schema: %w", err)
			return
		}
		if err := doc.Validate(ctx); err != nil {
			schemaErr = fmt.Errorf("validation: layout schema: %w", err)
			return
		}
		schemaDoc = doc
	})
	return schemaDoc, schemaErr
}

// componentFor maps discriminators to schema components. Tags sharing a
// shape share a component.
func componentFor(tag string) string {
	switch tag {
	case spec.TypeKlarnaCountry:
		return spec.TypeCountry
	case spec.TypeSepaMandate, spec.TypeAuBecsMandate:
		return spec.TypeMandate
	case spec.TypeAffirmHeader, spec.TypeAfterpayHeader, spec.TypeKlarnaHeader,
		spec.TypeEmail, spec.TypeIban, spec.TypeAuBecsBsbNumber, spec.TypeAuBecsAccountNumber:
		return "PathOnly"
	default:
		return tag
	}
}

// ValidateLayout checks a JSON or YAML layout against the embedded layout
// schema. Items with a missing or unknown type are reported as warnings since
// they resolve to an empty item rather than failing.
func ValidateLayout(ctx context.Context, raw []byte) SchemaValidationResult {
	result := SchemaValidationResult{Valid: true}
	fail := func(issue SchemaIssue) {
		issue.Severity = SeverityError
		result.Valid = false
		result.Issues = append(result.Issues, issue)
	}
	warn := func(issue SchemaIssue) {
		issue.Severity = SeverityWarning
		result.Issues = append(result.Issues, issue)
	}

	doc, err := loadSchema(ctx)
	if err != nil {
		fail(SchemaIssue{Message: err.Error()})
		return result
	}

	data, err := layout.ToJSON(raw)
	if err != nil {
		fail(SchemaIssue{Message: strings.TrimPrefix(err.Error(), "layout: ")})
		return result
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		fail(SchemaIssue{Message: err.Error()})
		return result
	}

	base := ""
	if obj, ok := payload.(map[string]any); ok {
		fields, present := obj["fields"]
		if !present || fields == nil {
			return result
		}
		payload = fields
		base = "/fields"
	}
	items, ok := payload.([]any)
	if !ok {
		fail(SchemaIssue{Path: base, Message: "layout must be a list of form items"})
		return result
	}

	known := make(map[string]struct{})
	for _, tag := range spec.Tags() {
		known[tag] = struct{}{}
	}

	for idx, item := range items {
		if err := ctx.Err(); err != nil {
			fail(SchemaIssue{Message: err.Error()})
			return result
		}
		pointer := base + "/" + strconv.Itoa(idx)
		field := strconv.Itoa(idx)

		obj, ok := item.(map[string]any)
		if !ok {
			fail(SchemaIssue{Path: pointer, Field: field, Message: "form item must be an object"})
			continue
		}
		tag, ok := obj["type"].(string)
		if !ok {
			warn(SchemaIssue{Path: pointer, Field: field, Message: "form item has no string type and renders nothing"})
			continue
		}
		if _, ok := known[tag]; !ok {
			warn(SchemaIssue{Path: pointer + "/type", Field: field + ".type", Message: fmt.Sprintf("unknown form item type %q renders nothing", tag)})
			continue
		}

		ref, ok := doc.Components.Schemas[componentFor(tag)]
		if !ok || ref.Value == nil {
			continue
		}
		if err := ref.Value.VisitJSON(obj, openapi3.MultiErrors()); err != nil {
			for _, issue := range issuesFromError(err) {
				issue.Path = pointer + issue.Path
				issue.Field = joinField(field, issue.Field)
				fail(issue)
			}
		}
	}
	return result
}

func issuesFromError(err error) []SchemaIssue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []SchemaIssue
		for _, inner := range multi {
			out = append(out, issuesFromError(inner)...)
		}
		return out
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		segments := schemaErr.JSONPointer()
		path := ""
		if len(segments) > 0 {
			path = "/" + strings.Join(segments, "/")
		}
		return []SchemaIssue{{
			Path:    path,
			Field:   fieldPathFromPointer(path),
			Message: strings.TrimSpace(schemaErr.Reason),
		}}
	}
	return []SchemaIssue{issueFromError(err)}
}

func joinField(prefix, field string) string {
	if field == "" {
		return prefix
	}
	return prefix + "." + field
}
