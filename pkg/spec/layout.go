package spec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-paymentform/pkg/elements"
)

// ErrNotArray indicates a layout that is not a JSON array.
var ErrNotArray = errors.New("spec: layout is not a JSON array")

// Item wraps a FormItemSpec so layouts decode as []Item.
type Item struct {
	Spec FormItemSpec
}

// UnmarshalJSON resolves the item through the dispatch table.
func (i *Item) UnmarshalJSON(data []byte) error {
	resolved, err := Unmarshal(data)
	if err != nil {
		return err
	}
	i.Spec = resolved
	return nil
}

// MarshalJSON emits the variant fields plus its "type" discriminator.
func (i Item) MarshalJSON() ([]byte, error) {
	if i.Spec == nil {
		return []byte("null"), nil
	}
	data, err := json.Marshal(i.Spec)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	tag := i.Spec.Type()
	if empty, ok := i.Spec.(EmptyFormSpec); ok {
		tag = empty.UnknownType
	}
	if tag != "" {
		encoded, err := json.Marshal(tag)
		if err != nil {
			return nil, err
		}
		fields["type"] = encoded
	}
	return json.Marshal(fields)
}

// Layout is an ordered list of resolved items.
type Layout []FormItemSpec

type parseOptions struct {
	lenient bool
	logger  zerolog.Logger
}

// ParseOption customises ParseLayout.
type ParseOption func(*parseOptions)

// WithLenient degrades malformed items to EmptyFormSpec instead of failing.
func WithLenient(lenient bool) ParseOption {
	return func(o *parseOptions) {
		o.lenient = lenient
	}
}

// WithLogger sets the logger lenient parsing reports degraded items to.
func WithLogger(logger zerolog.Logger) ParseOption {
	return func(o *parseOptions) {
		o.logger = logger
	}
}

// ParseLayout resolves a JSON array of form items.
func ParseLayout(data []byte, opts ...ParseOption) (Layout, error) {
	options := parseOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(trimmed, &raws); err != nil {
		return nil, fmt.Errorf("spec: decode layout: %w", err)
	}

	layout := make(Layout, 0, len(raws))
	for idx, raw := range raws {
		item, err := Unmarshal(raw)
		if err != nil {
			if !options.lenient {
				return nil, fmt.Errorf("spec: item %d: %w", idx, err)
			}
			options.logger.Warn().Err(err).Int("index", idx).Msg("spec: degrading malformed form item")
			item = EmptyFormSpec{}
		}
		if empty, ok := item.(EmptyFormSpec); ok && empty.UnknownType != "" {
			options.logger.Debug().Str("type", empty.UnknownType).Int("index", idx).Msg("spec: unknown form item type")
		}
		layout = append(layout, item)
	}
	return layout, nil
}

// Items wraps the layout for JSON encoding.
func (l Layout) Items() []Item {
	out := make([]Item, len(l))
	for i, item := range l {
		out[i] = Item{Spec: item}
	}
	return out
}

// MarshalJSON encodes the layout with discriminators.
func (l Layout) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Items())
}

// Expand applies ExpandPlaceholders.
func (l Layout) Expand(opts ExpandOptions) Layout {
	return Layout(ExpandPlaceholders(l, opts))
}

// BuildElements transforms every item, dropping items that render nothing,
// and appends the checkboxes requested by ctx.
func (l Layout) BuildElements(ctx TransformContext) []elements.FormElement {
	out := make([]elements.FormElement, 0, len(l))
	for _, item := range l {
		if item == nil {
			continue
		}
		if element := item.Transform(ctx); element != nil {
			out = append(out, element)
		}
	}
	if ctx.SaveForFutureUse != nil {
		out = append(out, elements.Wrap(elements.NewSaveForFutureUseElement(ctx.MerchantName, *ctx.SaveForFutureUse), nil))
	}
	if ctx.ShowSetAsDefault != nil {
		out = append(out, elements.Wrap(elements.NewSetAsDefaultPaymentMethodElement(false, *ctx.ShowSetAsDefault), nil))
	}
	return out
}
