// Package data holds the dynamic value model that templates render against:
// a small tagged union of JSON-like values, plus path queries to locate a
// value inside a nested context.
package data

import (
	"sort"
	"strconv"
	"strings"
)

// Value is a single dynamic value.  The set of variants is closed; the
// renderer switches over it exhaustively.
type Value interface {
	// Truthy reports whether this value selects a conditional branch.
	// Strings are truthy iff non-empty, regardless of content ("0" and
	// "false" are truthy).  Zero numbers, false, null, undefined and
	// empty collections are falsy.
	Truthy() bool

	// String formats this value for inclusion in rendered output.
	String() string
}

// Value variants.
type (
	Undefined struct{}
	Null      struct{}
	Bool      bool
	Int       int64
	Float     float64
	String    string
	List      []Value
	Map       map[string]Value
)

// Index retrieves a value from this list, or Undefined if out of bounds.
func (v List) Index(i int) Value {
	if !(0 <= i && i < len(v)) {
		return Undefined{}
	}
	return v[i]
}

// Key retrieves the value under the named key, or Undefined if it doesn't exist.
func (v Map) Key(k string) Value {
	var result, ok = v[k]
	if !ok {
		return Undefined{}
	}
	return result
}

// Truthy ----------

func (v Undefined) Truthy() bool { return false }
func (v Null) Truthy() bool      { return false }
func (v Bool) Truthy() bool      { return bool(v) }
func (v Int) Truthy() bool       { return v != 0 }
func (v Float) Truthy() bool     { return v != 0.0 }
func (v String) Truthy() bool    { return v != "" }
func (v List) Truthy() bool      { return len(v) > 0 }
func (v Map) Truthy() bool       { return len(v) > 0 }

// String ----------

func (v Undefined) String() string { return "" }
func (v Null) String() string      { return "null" }
func (v Bool) String() string      { return strconv.FormatBool(bool(v)) }
func (v Int) String() string       { return strconv.FormatInt(int64(v), 10) }
func (v Float) String() string     { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v String) String() string    { return string(v) }

// Containers format JSON-style, with map keys sorted so output is stable.

func (v List) String() string {
	var items = make([]string, len(v))
	for i, item := range v {
		items[i] = literal(item)
	}
	return "[" + strings.Join(items, ", ") + "]"
}

func (v Map) String() string {
	var keys = make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var items = make([]string, len(keys))
	for i, k := range keys {
		items[i] = strconv.Quote(k) + ": " + literal(v[k])
	}
	return "{" + strings.Join(items, ", ") + "}"
}

// literal formats a value as it appears inside a container: strings quoted,
// everything else in display form.
func literal(v Value) string {
	if s, ok := v.(String); ok {
		return strconv.Quote(string(s))
	}
	return v.String()
}
