package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexID is an identifier the backend may send as a JSON string or number.
// It always marshals as a string.
type FlexID string

// UnmarshalJSON accepts "42", 42 and null.
func (id *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = FlexID(n.String())
	return nil
}

// String implements fmt.Stringer.
func (id FlexID) String() string { return string(id) }
