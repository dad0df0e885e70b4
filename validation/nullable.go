package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// NullableString tells an absent JSON field apart from an explicit null.
// Set is true whenever the key was present in the payload.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// Time parses the value as RFC 3339. A null value yields nil.
func (n NullableString) Time() (*time.Time, error) {
	if n.Value == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *n.Value)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", *n.Value, err)
	}
	return &t, nil
}

// explicitNulls reports pointer fields of dst that data sets to null.
// json.Unmarshal leaves those nil, which would read as "not sent".
func explicitNulls(data []byte, dst interface{}) Errors {
	v := reflect.Indirect(reflect.ValueOf(dst))
	if v.Kind() != reflect.Struct {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	var errs Errors
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type.Kind() != reflect.Ptr {
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		if raw, ok := fields[name]; ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			errs = append(errs, FieldError{Field: name, Message: name + " must not be null"})
		}
	}
	return errs
}
