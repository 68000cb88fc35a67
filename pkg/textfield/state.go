package textfield

import "github.com/goliatone/go-paymentform/pkg/model"

// StateKind classifies a text field value.
type StateKind int

const (
	// KindBlank means nothing has been entered yet. It is neither valid nor an
	// error.
	KindBlank StateKind = iota
	// KindFull is a valid value that cannot grow any further.
	KindFull
	// KindLimitless is a valid value that may still accept input.
	KindLimitless
	// KindIncomplete is a value that may become valid with more input.
	KindIncomplete
	// KindInvalid is a value that cannot become valid.
	KindInvalid
)

func (k StateKind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindFull:
		return "full"
	case KindLimitless:
		return "limitless"
	case KindIncomplete:
		return "incomplete"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// FieldError describes why a value is not valid.
type FieldError struct {
	Message model.ResolvableString
}

// Error implements the error interface using the default copy.
func (e *FieldError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message.Default()
}

// State is the classification of one value.
type State struct {
	Kind StateKind
	err  *FieldError
}

// Blank is the state of an empty field.
func Blank() State { return State{Kind: KindBlank} }

// Full is a complete, valid value.
func Full() State { return State{Kind: KindFull} }

// Limitless is a valid value with no fixed length.
func Limitless() State { return State{Kind: KindLimitless} }

// Incomplete is a value that needs more input.
func Incomplete(id model.TranslationID, args ...any) State {
	return State{Kind: KindIncomplete, err: &FieldError{Message: model.Translatable(id, args...)}}
}

// Invalid is a value that can never become valid.
func Invalid(id model.TranslationID, args ...any) State {
	return State{Kind: KindInvalid, err: &FieldError{Message: model.Translatable(id, args...)}}
}

// IsValid reports whether the value can be submitted.
func (s State) IsValid() bool {
	return s.Kind == KindFull || s.Kind == KindLimitless
}

// IsFull reports whether the value reached its fixed final form.
func (s State) IsFull() bool {
	return s.Kind == KindFull
}

// IsBlank reports whether nothing has been entered.
func (s State) IsBlank() bool {
	return s.Kind == KindBlank
}

// Error returns the error for incomplete and invalid values, nil otherwise.
func (s State) Error() *FieldError {
	if s.Kind == KindIncomplete || s.Kind == KindInvalid {
		return s.err
	}
	return nil
}

// ShouldShowError reports whether the error should be displayed. Incomplete
// values are only flagged once the field loses focus.
func (s State) ShouldShowError(hasFocus bool) bool {
	switch s.Kind {
	case KindInvalid:
		return true
	case KindIncomplete:
		return !hasFocus
	default:
		return false
	}
}
