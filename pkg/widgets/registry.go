package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-paymentform/pkg/elements"
	"github.com/goliatone/go-paymentform/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetSelect        = "select"
	WidgetCountrySelect = "country-select"
	WidgetText          = "text"
	WidgetNumeric       = "numeric"
	WidgetEmail         = "email"
	WidgetPassword      = "password"
	WidgetHeader        = "header"
	WidgetStaticText    = "static-text"
	WidgetMandate       = "mandate"
	WidgetCheckbox      = "checkbox"
)

// Matcher decides whether a widget should present the supplied element.
type Matcher func(element elements.FormElement) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for elements based on explicit overrides or
// registered matchers. Higher priority wins; ties fall back to registration
// order.
type Registry struct {
	mu        sync.RWMutex
	rules     []rule
	overrides map[model.IdentifierSpec]string
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher with the provided name and priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Override pins the widget for an identifier regardless of matchers.
func (r *Registry) Override(id model.IdentifierSpec, widget string) {
	if r == nil || id.IsZero() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.overrides == nil {
		r.overrides = make(map[model.IdentifierSpec]string)
	}
	if widget = strings.TrimSpace(widget); widget == "" {
		delete(r.overrides, id)
		return
	}
	r.overrides[id] = widget
}

// Resolve returns the widget name for an element.
func (r *Registry) Resolve(element elements.FormElement) (string, bool) {
	if r == nil || element == nil {
		return "", false
	}
	r.mu.RLock()
	if widget, ok := r.overrides[element.Identifier()]; ok {
		r.mu.RUnlock()
		return widget, true
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(element) {
			return entry.name, true
		}
	}
	return "", false
}

// Assign resolves a widget for every input and static element of a form,
// keyed by identifier. Sections and composite fields are descended into.
func (r *Registry) Assign(form []elements.FormElement) map[model.IdentifierSpec]string {
	out := make(map[model.IdentifierSpec]string)
	assign := func(element elements.FormElement) {
		if widget, ok := r.Resolve(element); ok {
			out[element.Identifier()] = widget
		}
	}
	for _, element := range form {
		if _, ok := element.(*elements.SectionElement); !ok {
			assign(element)
		}
	}
	elements.Walk(form, func(_ elements.FormElement, field elements.SectionFieldElement) {
		assign(field)
	})
	return out
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetCountrySelect, 30, func(element elements.FormElement) bool {
		_, ok := element.(*elements.CountryElement)
		return ok
	})
	r.Register(WidgetSelect, 20, func(element elements.FormElement) bool {
		_, ok := element.(*elements.SimpleDropdownElement)
		return ok
	})
	r.Register(WidgetCheckbox, 20, func(element elements.FormElement) bool {
		_, ok := element.(*elements.CheckboxElement)
		return ok
	})
	r.Register(WidgetHeader, 20, staticKind(elements.StaticHeader))
	r.Register(WidgetMandate, 20, staticKind(elements.StaticMandate))
	r.Register(WidgetStaticText, 10, staticKind(elements.StaticText))
	r.Register(WidgetEmail, 15, keyboard(model.KeyboardEmail))
	r.Register(WidgetPassword, 15, keyboard(model.KeyboardPassword))
	r.Register(WidgetNumeric, 10, func(element elements.FormElement) bool {
		field, ok := element.(*elements.TextFieldElement)
		return ok && field.Controller.Config().Keyboard().IsNumeric()
	})
	r.Register(WidgetText, 0, func(element elements.FormElement) bool {
		_, ok := element.(*elements.TextFieldElement)
		return ok
	})
}

func staticKind(kind elements.StaticKind) Matcher {
	return func(element elements.FormElement) bool {
		static, ok := element.(*elements.StaticTextElement)
		return ok && static.Kind == kind
	}
}

func keyboard(k model.KeyboardType) Matcher {
	return func(element elements.FormElement) bool {
		field, ok := element.(*elements.TextFieldElement)
		return ok && field.Controller.Config().Keyboard() == k
	}
}
