/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package value

import (
	"fmt"
	"strconv"
	"time"
)

// Kind identifies the active variant of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindBool
	KindString
	KindFloat
	KindTimestamp
	// KindDateTime carries a structured time.Time that was passed through
	// unchanged, e.g. a time.Time default for a date setting.
	KindDateTime
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindTimestamp:
		return "timestamp"
	case KindDateTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// Value is a decoded setting. The zero Value is Null.
type Value struct {
	kind Kind
	i    int64
	b    bool
	s    string
	f    float64
	t    time.Time
}

// Null returns the "no value" Value.
func Null() Value { return Value{} }

func Int(n int64) Value { return Value{kind: KindInt, i: n} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func Str(s string) Value { return Value{kind: KindString, s: s} }
func Flt(f float64) Value { return Value{kind: KindFloat, f: f} }
func Timestamp(ts int64) Value { return Value{kind: KindTimestamp, i: ts} }
func DateTime(t time.Time) Value { return Value{kind: KindDateTime, t: t} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int64 returns the integer payload of an Int or Timestamp value, and the Unix
// time of a DateTime value.
func (v Value) Int64() (int64, bool) {
	switch v.kind {
	case KindInt, KindTimestamp:
		return v.i, true
	case KindDateTime:
		return v.t.Unix(), true
	}
	return 0, false
}

func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

func (v Value) Str() (string, bool) {
	return v.s, v.kind == KindString
}

func (v Value) Float64() (float64, bool) {
	return v.f, v.kind == KindFloat
}

func (v Value) Time() (time.Time, bool) {
	switch v.kind {
	case KindDateTime:
		return v.t, true
	case KindTimestamp:
		return time.Unix(v.i, 0).UTC(), true
	}
	return time.Time{}, false
}

// Interface returns the payload as a plain Go value, or nil for Null.
func (v Value) Interface() any {
	switch v.kind {
	case KindInt, KindTimestamp:
		return v.i
	case KindBool:
		return v.b
	case KindString:
		return v.s
	case KindFloat:
		return v.f
	case KindDateTime:
		return v.t
	}
	return nil
}

// Equal reports strict equality: same variant and same payload.
// DateTime values compare by instant.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInt, KindTimestamp:
		return v.i == o.i
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.s == o.s
	case KindFloat:
		return v.f == o.f
	case KindDateTime:
		return v.t.Equal(o.t)
	}
	return false
}

// IsEmpty reports whether v is Null or an empty string.
func (v Value) IsEmpty() bool {
	return v.kind == KindNull || (v.kind == KindString && v.s == "")
}

// String renders the payload the way it would be stored.
func (v Value) String() string {
	switch v.kind {
	case KindInt, KindTimestamp:
		return strconv.FormatInt(v.i, 10)
	case KindBool:
		if v.b {
			return "1"
		}
		return ""
	case KindString:
		return v.s
	case KindFloat:
		return formatFloat(v.f)
	case KindDateTime:
		return v.t.Format(time.RFC3339)
	}
	return ""
}

// GoString makes Values readable in test failure output.
func (v Value) GoString() string {
	if v.kind == KindNull {
		return "value.Null()"
	}
	return fmt.Sprintf("value.%s(%q)", v.kind, v.String())
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
