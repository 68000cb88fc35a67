package model

import (
	"fmt"
	"math"
	"strings"
)

// FormFieldEntry is the value a field reports for submission. Value is nil
// when the field has nothing to submit (for example an unselected dropdown).
type FormFieldEntry struct {
	Value      *string `json:"value"`
	IsComplete bool    `json:"isComplete"`
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}

// ValueOrEmpty dereferences the entry value.
func (e FormFieldEntry) ValueOrEmpty() string {
	if e.Value == nil {
		return ""
	}
	return *e.Value
}

// Amount is a charge amount in the currency's minor unit.
type Amount struct {
	Value    int64  `json:"value"`
	Currency string `json:"currency"`
}

var zeroDecimalCurrencies = map[string]struct{}{
	"bif": {}, "clp": {}, "djf": {}, "gnf": {}, "jpy": {}, "kmf": {}, "krw": {},
	"mga": {}, "pyg": {}, "rwf": {}, "ugx": {}, "vnd": {}, "vuv": {}, "xaf": {},
	"xof": {}, "xpf": {},
}

var currencySymbols = map[string]string{
	"usd": "$", "aud": "A$", "cad": "CA$", "nzd": "NZ$", "eur": "€", "gbp": "£", "jpy": "¥",
}

// Format renders the amount for display, for example "$10.99" or "¥500".
func (a Amount) Format() string {
	currency := strings.ToLower(strings.TrimSpace(a.Currency))
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = strings.ToUpper(currency) + " "
	}
	if _, zero := zeroDecimalCurrencies[currency]; zero {
		return fmt.Sprintf("%s%d", symbol, a.Value)
	}
	return fmt.Sprintf("%s%.2f", symbol, float64(a.Value)/100)
}

// Split divides the amount into n installments rounding up to the next minor
// unit, the way buy-now-pay-later headers quote installment prices.
func (a Amount) Split(n int) Amount {
	if n <= 1 {
		return a
	}
	per := int64(math.Ceil(float64(a.Value) / float64(n)))
	return Amount{Value: per, Currency: a.Currency}
}
