/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package value

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
)

// Coerce converts a caller-supplied default into a Value of type t.
//
// A nil default yields Null for every type, which is distinct from the zero
// value of the type. Otherwise:
//
//	i  integer cast, truncating; non-numeric input becomes 0
//	b  boolean cast; "", "0", 0, 0.0 and false are false
//	s  string cast; non-scalar input becomes ""
//	f  float cast; non-numeric input becomes 0
//	d  time.Time and integers pass through, strings are parsed; anything else is Null
//	t  same as d
func Coerce(t Type, def any) Value {
	if def == nil {
		return Null()
	}
	if v, ok := def.(Value); ok {
		if v.IsNull() {
			return Null()
		}
		def = v.Interface()
	}
	if dt, ok := def.(strfmt.DateTime); ok {
		def = time.Time(dt)
	}

	switch t {
	case Integer:
		if n, ok := asInt64(def); ok {
			return Int(n)
		}
		if s, ok := def.(string); ok && isNumeric(s) {
			return Int(parseInt(s))
		}
		if n, ok := numeric(def); ok {
			return Int(truncate(n))
		}
		return Int(0)
	case Boolean:
		return Bool(truthy(def))
	case Float:
		if n, ok := numeric(def); ok {
			return Flt(n)
		}
		return Flt(0)
	case Date, Time:
		switch x := def.(type) {
		case time.Time:
			return DateTime(x)
		case string:
			if isNumeric(x) {
				return Timestamp(parseInt(x))
			}
			if ts, ok := ParseTimestamp(x); ok {
				return Timestamp(ts)
			}
			return Null()
		}
		if n, ok := asInt64(def); ok {
			return Timestamp(n)
		}
		return Null()
	default:
		return Str(scalarString(def))
	}
}

// numeric reports the float value of def when it is a number or a numeric string.
func numeric(def any) (float64, bool) {
	switch x := def.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case string:
		if isNumeric(x) {
			f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if err == nil {
				return f, true
			}
		}
		return 0, false
	}
	if n, ok := asInt64(def); ok {
		return float64(n), true
	}
	return 0, false
}

func truthy(def any) bool {
	switch x := def.(type) {
	case bool:
		return x
	case string:
		return x != "" && x != "0"
	case float32:
		return x != 0
	case float64:
		return x != 0
	}
	if n, ok := asInt64(def); ok {
		return n != 0
	}
	return true
}

func scalarString(def any) string {
	switch x := def.(type) {
	case string:
		return x
	case bool:
		return Bool(x).String()
	case float32:
		return formatFloat(float64(x))
	case float64:
		return formatFloat(x)
	}
	if n, ok := asInt64(def); ok {
		return strconv.FormatInt(n, 10)
	}
	return ""
}
