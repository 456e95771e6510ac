package dto

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/location-quest/internal/pkg/validator"
)

// NullableString tells an absent JSON field apart from an explicit null.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

func init() {
	// Validate the contained string; unset and null values look empty so
	// omitempty skips them.
	validator.GetValidator().RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		n, ok := v.Interface().(NullableString)
		if !ok || n.Value == nil {
			return ""
		}
		return *n.Value
	}, NullableString{})
}
