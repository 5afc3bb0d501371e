// SPDX-License-Identifier: MPL-2.0

package capability

import "strconv"

const (
	// ValueNone marks a flag that carries no value (present or absent only).
	ValueNone ValueType = iota
	// ValueInt marks a flag whose value is an integer.
	ValueInt
	// ValueString marks a flag whose value is a string.
	ValueString
)

const (
	// KindAbsent means the capability was not detected.
	KindAbsent Kind = iota
	// KindBoolean means the capability is present with no associated data.
	KindBoolean
	// KindValued means the capability is present with an associated value.
	KindValued
)

type (
	// ValueType identifies the type of value a flag carries when present.
	ValueType int

	// Kind is the resolved state of a flag inside a Snapshot.
	Kind int

	// Value is the data associated with a valued flag. The zero Value has
	// type ValueNone and represents "no value".
	Value struct {
		typ ValueType
		i   int
		s   string
	}
)

// IntValue returns an integer Value.
func IntValue(n int) Value { return Value{typ: ValueInt, i: n} }

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{typ: ValueString, s: s} }

// Type returns the type of the value.
func (v Value) Type() ValueType { return v.typ }

// IsZero reports whether v holds no value.
func (v Value) IsZero() bool { return v.typ == ValueNone }

// Int returns the integer held by v, and false if v is not an integer.
func (v Value) Int() (int, bool) {
	if v.typ != ValueInt {
		return 0, false
	}
	return v.i, true
}

// Str returns the string held by v, and false if v is not a string.
func (v Value) Str() (string, bool) {
	if v.typ != ValueString {
		return "", false
	}
	return v.s, true
}

// Any returns the value as an int, a string, or nil.
func (v Value) Any() any {
	switch v.typ {
	case ValueInt:
		return v.i
	case ValueString:
		return v.s
	}
	return nil
}

// String returns the value formatted for display. Strings are not quoted.
func (v Value) String() string {
	switch v.typ {
	case ValueInt:
		return strconv.Itoa(v.i)
	case ValueString:
		return v.s
	}
	return ""
}

// String returns a human-readable name for the value type.
func (t ValueType) String() string {
	switch t {
	case ValueNone:
		return "none"
	case ValueInt:
		return "int"
	case ValueString:
		return "string"
	}
	return "unknown"
}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindBoolean:
		return "present"
	case KindValued:
		return "valued"
	}
	return "unknown"
}

// IsPresent reports whether the kind is KindBoolean or KindValued.
func (k Kind) IsPresent() bool { return k == KindBoolean || k == KindValued }
