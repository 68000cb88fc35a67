package preview

import (
	"strings"

	"github.com/goliatone/go-paymentform/pkg/elements"
	"github.com/goliatone/go-paymentform/pkg/model"
	"github.com/goliatone/go-paymentform/pkg/render"
	"github.com/goliatone/go-paymentform/pkg/widgets"
)

// The view is built from plain maps so templates address every value by key.

func (r *Renderer) buildView(form render.Form, opts render.RenderOptions) map[string]any {
	assigned := r.widgets.Assign(form.Elements)

	method := opts.Method
	if method == "" {
		method = "post"
	}

	hidden := make([]map[string]any, 0, len(opts.HiddenFields))
	for _, field := range render.SortedHiddenFields(opts.HiddenFields) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	var views []map[string]any
	for _, element := range form.Elements {
		switch e := element.(type) {
		case *elements.StaticTextElement:
			views = append(views, r.staticView(e, assigned, opts))
		case *elements.SectionElement:
			if section := r.sectionView(e, assigned, opts); section != nil {
				views = append(views, section)
			}
		default:
			r.logger.Debug().Str("identifier", element.Identifier().String()).Msg("preview: element has no markup")
		}
	}

	return map[string]any{
		"payment_method": form.PaymentMethod,
		"merchant":       form.MerchantName,
		"action":         opts.Action,
		"method":         method,
		"form_errors":    opts.FormErrors,
		"hidden":         hidden,
		"elements":       views,
	}
}

func (r *Renderer) staticView(e *elements.StaticTextElement, assigned map[model.IdentifierSpec]string, opts render.RenderOptions) map[string]any {
	text := opts.Resolve(e.Text)
	if e.HTML {
		text = r.policy.Sanitize(text)
	}
	widget := assigned[e.Identifier()]
	if widget == "" {
		widget = widgets.WidgetStaticText
	}
	return map[string]any{
		"kind":   "static",
		"id":     e.Identifier().String(),
		"widget": widget,
		"text":   text,
		"html":   e.HTML,
	}
}

func (r *Renderer) sectionView(section *elements.SectionElement, assigned map[model.IdentifierSpec]string, opts render.RenderOptions) map[string]any {
	var fields []map[string]any
	elements.Walk([]elements.FormElement{section}, func(_ elements.FormElement, field elements.SectionFieldElement) {
		if view := r.fieldView(field, assigned[field.Identifier()], opts); view != nil {
			fields = append(fields, view)
		}
	})
	if len(fields) == 0 {
		return nil
	}

	label := ""
	if section.Label != nil {
		label = opts.Resolve(*section.Label)
	}
	return map[string]any{
		"kind":   "section",
		"id":     section.Identifier().String(),
		"label":  label,
		"fields": fields,
	}
}

func (r *Renderer) fieldView(field elements.SectionFieldElement, widget string, opts render.RenderOptions) map[string]any {
	id := field.Identifier()
	view := map[string]any{
		"name":   id.String(),
		"dom_id": domID(id),
		"widget": widget,
	}

	var messages []string
	messages = append(messages, opts.Errors[id]...)
	if opts.ShowFieldErrors {
		if fieldErr := field.Error(); fieldErr != nil {
			messages = append(messages, opts.Resolve(fieldErr.Message))
		}
	}
	view["errors"] = messages

	switch f := field.(type) {
	case *elements.TextFieldElement:
		controller := f.Controller
		cfg := controller.Config()
		view["label"] = opts.Resolve(controller.Label())
		view["value"] = controller.RawValue()
		view["optional"] = controller.Optional()
		view["input_type"] = inputType(widget)
		view["autocapitalize"] = autocapitalize(cfg.Capitalization())
		if cfg.Keyboard().IsNumeric() {
			view["inputmode"] = "numeric"
		}
	case *elements.SimpleDropdownElement:
		view["label"] = opts.Resolve(f.Controller.Label())
		view["options"] = optionViews(f.Controller)
	case *elements.CountryElement:
		view["label"] = opts.Resolve(f.Controller.Label())
		view["options"] = optionViews(f.Controller)
	case *elements.CheckboxElement:
		view["label"] = opts.Resolve(f.Controller.Label())
		view["checked"] = f.Controller.Checked()
		view["hidden"] = !f.Controller.Shown()
	default:
		return nil
	}
	if widget == "" {
		view["widget"] = widgets.WidgetText
	}
	return view
}

func optionViews(controller *elements.DropdownFieldController) []map[string]any {
	cfg := controller.Config()
	display := cfg.DisplayItems()
	raw := cfg.RawItems()
	selected := controller.SelectedIndex()

	out := make([]map[string]any, 0, len(display))
	for i, label := range display {
		value := ""
		if i < len(raw) && raw[i] != nil {
			value = *raw[i]
		}
		out = append(out, map[string]any{
			"value":    value,
			"label":    label,
			"selected": i == selected,
		})
	}
	return out
}

func inputType(widget string) string {
	switch widget {
	case widgets.WidgetEmail:
		return "email"
	case widgets.WidgetPassword:
		return "password"
	default:
		return "text"
	}
}

func autocapitalize(c model.Capitalization) string {
	switch c {
	case model.CapitalizationCharacters:
		return "characters"
	case model.CapitalizationWords:
		return "words"
	case model.CapitalizationSentences:
		return "sentences"
	default:
		return "off"
	}
}

func domID(id model.IdentifierSpec) string {
	return strings.Join(id.Segments(), "-")
}
