package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrConfigTypeMismatch is returned when a config value does not match its declared type.
var ErrConfigTypeMismatch = errors.New("config value does not match its type")

// ConfigType tags the runtime kind of a config value.
type ConfigType string

// Config value types.
const (
	ConfigString  ConfigType = "string"
	ConfigBoolean ConfigType = "boolean"
	ConfigNumber  ConfigType = "number"
)

// IsValid reports whether t is a known type.
func (t ConfigType) IsValid() bool {
	return t == ConfigString || t == ConfigBoolean || t == ConfigNumber
}

// ConfigValue holds exactly one of a string, a bool or a number.
// The zero value has no kind.
type ConfigValue struct {
	kind ConfigType
	s    string
	b    bool
	n    float64
}

// StringValue returns a string config value.
func StringValue(s string) ConfigValue { return ConfigValue{kind: ConfigString, s: s} }

// BoolValue returns a boolean config value.
func BoolValue(b bool) ConfigValue { return ConfigValue{kind: ConfigBoolean, b: b} }

// NumberValue returns a numeric config value.
func NumberValue(n float64) ConfigValue { return ConfigValue{kind: ConfigNumber, n: n} }

// Kind returns the runtime kind, or "" for the zero value.
func (v ConfigValue) Kind() ConfigType { return v.kind }

// Str returns the string and whether v holds one.
func (v ConfigValue) Str() (string, bool) { return v.s, v.kind == ConfigString }

// Bool returns the boolean and whether v holds one.
func (v ConfigValue) Bool() (bool, bool) { return v.b, v.kind == ConfigBoolean }

// Number returns the number and whether v holds one.
func (v ConfigValue) Number() (float64, bool) { return v.n, v.kind == ConfigNumber }

// String renders the value for display.
func (v ConfigValue) String() string {
	switch v.kind {
	case ConfigString:
		return v.s
	case ConfigBoolean:
		return strconv.FormatBool(v.b)
	case ConfigNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	default:
		return ""
	}
}

// Equal reports whether both values have the same kind and content.
func (v ConfigValue) Equal(o ConfigValue) bool { return v == o }

// MarshalJSON encodes the held value as a bare JSON scalar.
func (v ConfigValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ConfigString:
		return json.Marshal(v.s)
	case ConfigBoolean:
		return json.Marshal(v.b)
	case ConfigNumber:
		return json.Marshal(v.n)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON infers the kind from the JSON token.
func (v *ConfigValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*v = ConfigValue{}
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		*v = BoolValue(b[0] == 't')
	default:
		var n float64
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("config value must be a string, boolean or number: %w", err)
		}
		*v = NumberValue(n)
	}
	return nil
}

// AppConfig is one system configuration entry. Key is unique.
type AppConfig struct {
	ID          string      `json:"id"`
	Key         string      `json:"key"`
	Value       ConfigValue `json:"value"`
	Type        ConfigType  `json:"type"`
	Description string      `json:"description"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Validate checks that Type matches the runtime kind of Value.
func (c AppConfig) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("config %q: unknown type %q: %w", c.Key, c.Type, ErrConfigTypeMismatch)
	}
	if c.Value.Kind() != c.Type {
		return fmt.Errorf("config %q: declared %s, got %q: %w", c.Key, c.Type, c.Value.Kind(), ErrConfigTypeMismatch)
	}
	return nil
}

// ConfigUpdate sets the value of the entry with the given key.
type ConfigUpdate struct {
	Key   string      `json:"key"`
	Value ConfigValue `json:"value"`
}
