package textfield_test

import (
	"testing"

	"github.com/goliatone/go-paymentform/pkg/model"
	"github.com/goliatone/go-paymentform/pkg/textfield"
)

func stateFor(country, input string) textfield.State {
	cfg := textfield.NewPostalCodeConfig(model.ResolvableString{}, country)
	return cfg.DetermineState(cfg.Filter(input))
}

func TestPostalCodeKeyboardHints(t *testing.T) {
	cases := []struct {
		country        string
		keyboard       model.KeyboardType
		capitalization model.Capitalization
	}{
		{"US", model.KeyboardNumberPassword, model.CapitalizationNone},
		{"CA", model.KeyboardText, model.CapitalizationCharacters},
		{"GB", model.KeyboardText, model.CapitalizationCharacters},
		{"IN", model.KeyboardText, model.CapitalizationCharacters},
	}
	for _, tc := range cases {
		cfg := textfield.NewPostalCodeConfig(model.ResolvableString{}, tc.country)
		if cfg.Keyboard() != tc.keyboard {
			t.Errorf("%s: keyboard = %q, want %q", tc.country, cfg.Keyboard(), tc.keyboard)
		}
		if cfg.Capitalization() != tc.capitalization {
			t.Errorf("%s: capitalization = %q, want %q", tc.country, cfg.Capitalization(), tc.capitalization)
		}
	}
}

func TestPostalCodeClassification(t *testing.T) {
	cases := []struct {
		country string
		input   string
		valid   bool
		full    bool
	}{
		{"US", "", false, false},
		{"US", "12345", true, true},
		{"US", "abcde", false, false},
		{"US", "1234", false, false},

		{"CA", "", false, false},
		{"CA", "AAA AAA", false, false},
		{"CA", "AAAAAA", false, false},
		{"CA", "A0A 0A0", true, true},
		{"CA", "A0A0A0", true, true},
		{"CA", "a0a 0a0", true, true},

		{"GB", "", false, false},
		{"GB", "1M1AA", false, false},
		{"GB", "1M 1AA", false, false},
		{"GB", "M11AA", true, false},
		{"GB", "B2 3DF", true, true},
		{"GB", "CR26XH", true, false},
		{"GB", "M60 1NW", true, true},
		{"GB", "DN551PT", true, false},
		{"GB", "EC1A 1BB", true, true},

		{"IN", "", false, false},
		{"IN", " ", false, false},
		{"IN", "a", true, false},
		{"IN", "1", true, false},
		{"IN", "aaaaaa", true, false},
		{"IN", "111111", true, false},
	}

	for _, tc := range cases {
		state := stateFor(tc.country, tc.input)
		if state.IsValid() != tc.valid {
			t.Errorf("%s %q: valid = %v, want %v (kind %s)", tc.country, tc.input, state.IsValid(), tc.valid, state.Kind)
		}
		if state.IsFull() != tc.full {
			t.Errorf("%s %q: full = %v, want %v (kind %s)", tc.country, tc.input, state.IsFull(), tc.full, state.Kind)
		}
	}
}

func TestPostalCodeErrors(t *testing.T) {
	cases := []struct {
		country string
		input   string
		wantErr bool
	}{
		{"US", "", false},
		{"US", "1234", true},
		{"US", "12345", false},
		{"CA", "", false},
		{"CA", "1N8E8R", true},
		{"CA", "141124", true},
		{"CA", "A0A 0A0", false},
		{"GB", "", false},
		{"GB", "N18E", true},
		{"GB", "4C1A 1BB", true},
		{"GB", "12345", true},
		{"GB", "141124", true},
		{"GB", "EC1A 1BB", false},
		{"IN", "", false},
		{"IN", " ", true},
		{"IN", "560001", false},
	}

	for _, tc := range cases {
		err := stateFor(tc.country, tc.input).Error()
		if (err != nil) != tc.wantErr {
			t.Errorf("%s %q: error = %v, want error %v", tc.country, tc.input, err, tc.wantErr)
		}
	}
}

func TestPostalCodeFilter(t *testing.T) {
	cases := []struct {
		country string
		input   string
		want    string
	}{
		{"US", "abc123", "123"},
		{"US", "1234567", "12345"},
		{"CA", "k1a-0b1", "K1A0B1"},
		{"CA", "k1a 0b1 extra", "K1A 0B1"},
		{"GB", "ec1a 1bb!", "EC1A 1BB"},
		{"IN", "56-0001 ", "56-0001 "},
		{"us", "9021O", "9021"},
	}
	for _, tc := range cases {
		cfg := textfield.NewPostalCodeConfig(model.ResolvableString{}, tc.country)
		if got := cfg.Filter(tc.input); got != tc.want {
			t.Errorf("%s filter(%q) = %q, want %q", tc.country, tc.input, got, tc.want)
		}
	}
}

func TestPostalCodeFilterIsIdempotent(t *testing.T) {
	inputs := []string{"", " ", "abc123", "A0A 0A0", "ec1a 1bb", "ÄÖ 12-34", "1234567890", "  sw1a   2aa  "}
	for _, country := range []string{"US", "CA", "GB", "IN", "DE", ""} {
		cfg := textfield.NewPostalCodeConfig(model.ResolvableString{}, country)
		for _, input := range inputs {
			once := cfg.Filter(input)
			if twice := cfg.Filter(once); twice != once {
				t.Errorf("%s: filter not idempotent for %q: %q then %q", country, input, once, twice)
			}
		}
	}
}

func TestPostalCodeLabels(t *testing.T) {
	if got := textfield.NewPostalCodeConfig(model.ResolvableString{}, "US").Label().Default(); got != "ZIP code" {
		t.Fatalf("US label = %q", got)
	}
	if got := textfield.NewPostalCodeConfig(model.ResolvableString{}, "GB").Label().Default(); got != "Postal code" {
		t.Fatalf("GB label = %q", got)
	}
	custom := textfield.NewPostalCodeConfig(model.Literal("Postcode"), "GB")
	if got := custom.Label().Default(); got != "Postcode" {
		t.Fatalf("custom label = %q", got)
	}
}

func TestClassifyPostalCode(t *testing.T) {
	filtered, state := textfield.ClassifyPostalCode("us", "9-0-2-1-0")
	if filtered != "90210" || !state.IsFull() {
		t.Fatalf("ClassifyPostalCode = %q %s", filtered, state.Kind)
	}
}
