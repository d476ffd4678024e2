// Package mapper translates backend payloads into the canonical model.
//
// Every function is total over the shapes the backend is contracted to send.
// Anything else is an *apierr.MappingError, never a silently empty value.
package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/voclio/admin/internal/apierr"
	"github.com/voclio/admin/internal/envelope"
)

// ItemFunc maps one raw list element.
type ItemFunc[T any] func(raw json.RawMessage) (T, error)

// As returns an ItemFunc that decodes elements straight into T.
func As[T any](entity string) ItemFunc[T] {
	return func(raw json.RawMessage) (T, error) {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return v, &apierr.MappingError{Entity: entity, Reason: "decode", Err: err}
		}
		return v, nil
	}
}

// Decode unwraps p and decodes the payload into T.
func Decode[T any](p envelope.Payload, entity string) (T, error) {
	var zero T
	raw, err := p.Unwrap()
	if err != nil {
		return zero, err
	}
	return As[T](entity)(raw)
}

func mapErr(entity, reason string, err error) error {
	return &apierr.MappingError{Entity: entity, Reason: reason, Err: err}
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// items decodes a JSON array and maps every element.
func items[T any](raw json.RawMessage, entity string, item ItemFunc[T]) ([]T, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, mapErr(entity, "data is not an array", err)
	}

	out := make([]T, 0, len(elems))
	for i, elem := range elems {
		v, err := item(elem)
		if err != nil {
			return nil, mapErr(entity, fmt.Sprintf("item %d", i), err)
		}
		out = append(out, v)
	}
	return out, nil
}
