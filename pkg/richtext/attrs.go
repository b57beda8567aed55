package richtext

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Attr is a single node or mark attribute
type Attr struct {
	Key   string
	Value any
}

// Attrs is an ordered attribute list. JSON objects decode into it in
// document key order, which is also the order attributes are serialized in.
type Attrs []Attr

// Get returns the raw value stored under key.
func (a Attrs) Get(key string) (any, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return nil, false
}

// String returns the formatted value stored under key, or "" when absent.
func (a Attrs) String(key string) string {
	v, ok := a.Get(key)
	if !ok {
		return ""
	}
	return formatValue(v)
}

// Set returns a copy of a with key set to value. Existing keys keep their
// position.
func (a Attrs) Set(key string, value any) Attrs {
	out := make(Attrs, len(a), len(a)+1)
	copy(out, a)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Attr{Key: key, Value: value})
}

// Without returns a copy of a with the given keys removed.
func (a Attrs) Without(keys ...string) Attrs {
	out := make(Attrs, 0, len(a))
next:
	for _, attr := range a {
		for _, k := range keys {
			if attr.Key == k {
				continue next
			}
		}
		out = append(out, attr)
	}
	return out
}

// UnmarshalJSON decodes a JSON object keeping key order. Values are decoded
// with json.Number so integers keep their textual form.
func (a *Attrs) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, "attrs")
	}
	if tok == nil {
		*a = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Errorf("attrs: expected object, got %v", tok)
	}

	out := Attrs{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return errors.Wrap(err, "attrs key")
		}
		key, ok := keyTok.(string)
		if !ok {
			return errors.Errorf("attrs: unexpected key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return errors.Wrapf(err, "attrs[%s]", key)
		}
		value, err := decodeValue(raw)
		if err != nil {
			return errors.Wrapf(err, "attrs[%s]", key)
		}
		out = append(out, Attr{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return errors.Wrap(err, "attrs")
	}

	*a = out
	return nil
}

// MarshalJSON encodes the attributes as a JSON object in list order.
func (a Attrs) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(attr.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(attr.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "attrs[%s]", attr.Key)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func decodeValue(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// serialize renders the attributes as space separated key="value" pairs.
// Null values carry no information and are skipped.
func (a Attrs) serialize(escape bool) string {
	return strings.Join(a.pairs(escape), " ")
}

func (a Attrs) pairs(escape bool) []string {
	parts := make([]string, 0, len(a))
	for _, attr := range a {
		if attr.Value == nil {
			continue
		}
		parts = append(parts, pair(attr.Key, formatValue(attr.Value), escape))
	}
	return parts
}

func pair(key, value string, escape bool) string {
	if escape {
		value = escapeAttr(value)
	}
	return key + `="` + value + `"`
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
