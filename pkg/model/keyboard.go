package model

// KeyboardType hints which input method a text field expects.
type KeyboardType string

const (
	KeyboardText           KeyboardType = "text"
	KeyboardASCII          KeyboardType = "ascii"
	KeyboardNumber         KeyboardType = "number"
	KeyboardPhone          KeyboardType = "phone"
	KeyboardURI            KeyboardType = "uri"
	KeyboardEmail          KeyboardType = "email"
	KeyboardPassword       KeyboardType = "password"
	KeyboardNumberPassword KeyboardType = "number_password"
)

// IsNumeric reports whether only digits are accepted.
func (k KeyboardType) IsNumeric() bool {
	return k == KeyboardNumber || k == KeyboardNumberPassword
}

// Capitalization hints how a text field capitalises input.
type Capitalization string

const (
	CapitalizationNone       Capitalization = "none"
	CapitalizationCharacters Capitalization = "characters"
	CapitalizationWords      Capitalization = "words"
	CapitalizationSentences  Capitalization = "sentences"
)
