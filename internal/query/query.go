// Package query builds canonical URL query strings from optional parameters.
package query

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Params is an ordered list of query parameters.
// Unset values and empty strings are dropped when the string is built.
type Params struct {
	keys   []string
	values []any
}

// New returns an empty Params.
func New() *Params {
	return &Params{}
}

// Add appends a parameter. The value may be nil, a string, a bool, any
// integer or float, or a pointer to one of those; a nil pointer is unset.
func (p *Params) Add(key string, value any) *Params {
	p.keys = append(p.keys, key)
	p.values = append(p.values, value)
	return p
}

// Values returns the qualifying parameters in insertion order.
func (p *Params) Values() [][2]string {
	out := make([][2]string, 0, len(p.keys))
	for i, key := range p.keys {
		s, ok := format(p.values[i])
		if !ok {
			continue
		}
		out = append(out, [2]string{key, s})
	}
	return out
}

// Encode returns "" when no parameter qualifies, otherwise "?k1=v1&k2=v2".
func (p *Params) Encode() string {
	pairs := p.Values()
	if len(pairs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteByte('?')
	for i, kv := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv[0]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv[1]))
	}
	return b.String()
}

// String implements fmt.Stringer.
func (p *Params) String() string {
	return p.Encode()
}

// Build is a shorthand for encoding a fixed list of key/value pairs.
// kv must alternate string keys and values.
func Build(kv ...any) string {
	p := New()
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		p.Add(key, kv[i+1])
	}
	return p.Encode()
}

// format stringifies v; ok is false when v is unset or empty.
func format(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, x != ""
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case fmt.Stringer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "", false
		}
		s := x.String()
		return s, s != ""
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		return format(rv.Elem().Interface())
	}

	switch rv.Kind() {
	case reflect.String:
		s := rv.String()
		return s, s != ""
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	}

	s := fmt.Sprint(v)
	return s, s != ""
}
