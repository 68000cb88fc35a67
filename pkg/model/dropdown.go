package model

import (
	"bytes"
	"encoding/json"
)

const defaultDropdownDisplayText = "Other"

// DropdownItemSpec is one selectable entry of a dropdown. APIValue is nil for
// entries that submit no value.
type DropdownItemSpec struct {
	APIValue    *string `json:"api_value"`
	DisplayText string  `json:"display_text"`
}

// UnmarshalJSON applies the remote schema default for a missing display text.
func (d *DropdownItemSpec) UnmarshalJSON(data []byte) error {
	type alias DropdownItemSpec
	var raw alias
	if err := json.Unmarshal(bytes.TrimSpace(data), &raw); err != nil {
		return err
	}
	if raw.DisplayText == "" {
		raw.DisplayText = defaultDropdownDisplayText
	}
	*d = DropdownItemSpec(raw)
	return nil
}

// DropdownItem is a convenience constructor.
func DropdownItem(apiValue, displayText string) DropdownItemSpec {
	return DropdownItemSpec{APIValue: StringPtr(apiValue), DisplayText: displayText}
}
