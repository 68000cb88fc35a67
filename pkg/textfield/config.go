package textfield

import (
	"strings"
	"unicode"

	"github.com/goliatone/go-paymentform/pkg/model"
)

// Config describes the input rules of one text field.
type Config interface {
	// Label is the field's caption.
	Label() model.ResolvableString
	// Filter drops characters the field never accepts. It must be idempotent.
	Filter(input string) string
	// DetermineState classifies an already filtered value.
	DetermineState(input string) State
	// Keyboard hints the input method.
	Keyboard() model.KeyboardType
	// Capitalization hints the capitalisation mode.
	Capitalization() model.Capitalization
	// Format renders the raw value for display.
	Format(raw string) string
}

func digitsOnly(input string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, input)
}

func truncate(input string, max int) string {
	if max <= 0 {
		return input
	}
	runes := []rune(input)
	if len(runes) <= max {
		return input
	}
	return string(runes[:max])
}

func keepRunes(input string, allowed func(rune) bool) string {
	return strings.Map(func(r rune) rune {
		if allowed(r) {
			return r
		}
		return -1
	}, input)
}

func isASCIIAlnum(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func isASCIIAlnumOrSpace(r rune) bool {
	return r == ' ' || isASCIIAlnum(r)
}
