// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// FieldPrefix namespaces question fields in submitted forms.
const FieldPrefix = "q-"

// FieldKey returns the form key of the question with the given id.
func FieldKey(questionID int64) string {
	return FieldPrefix + strconv.FormatInt(questionID, 10)
}

// Value is one submitted field: either a single string or a collection.
type Value struct {
	Multi  bool
	Values []string
}

// Single builds a single string value.
func Single(s string) Value {
	return Value{Values: []string{s}}
}

// Multi builds a multi-value collection.
func Multi(values ...string) Value {
	if values == nil {
		values = []string{}
	}
	return Value{Multi: true, Values: values}
}

// String returns the single value, or the first element of a collection.
func (v Value) String() string {
	if len(v.Values) == 0 {
		return ""
	}
	return v.Values[0]
}

// Fields maps field keys to submitted values.
type Fields map[string]Value

// FieldsFromForm converts a parsed form into Fields. Keys ending in "[]"
// become collections and lose the suffix. A plain key submitted more than
// once keeps its last value.
func FieldsFromForm(form url.Values) Fields {
	fields := make(Fields, len(form))
	for _, key := range slices.Sorted(maps.Keys(form)) {
		values := form[key]
		name, multi := strings.CutSuffix(key, "[]")
		prev, seen := fields[name]
		switch {
		case seen:
			fields[name] = Multi(append(append([]string{}, prev.Values...), values...)...)
		case multi:
			fields[name] = Multi(append([]string{}, values...)...)
		case len(values) == 0:
			fields[name] = Single("")
		default:
			fields[name] = Single(values[len(values)-1])
		}
	}
	return fields
}
