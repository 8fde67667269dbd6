/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package value

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
)

// Decode converts a stored string into a Value of type t.
// It never fails; see the package documentation for the fallback rules.
func Decode(t Type, raw string) Value {
	switch t {
	case Integer:
		return Int(parseInt(raw))
	case Boolean:
		return Bool(raw != "" && raw != "0")
	case Float:
		return Flt(parseFloat(raw))
	case Date, Time:
		if isNumeric(raw) {
			return Timestamp(parseInt(raw))
		}
		ts, ok := ParseTimestamp(raw)
		if !ok {
			return Timestamp(0)
		}
		return Timestamp(ts)
	default:
		return Str(raw)
	}
}

// Encode converts v into the string persisted by a DataStore.
// A time.Time is formatted as RFC 3339; integers and strings are stored as-is.
func Encode(t Type, v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case Value:
		if x.kind == KindDateTime {
			return x.t.Format(time.RFC3339), nil
		}
		return x.String(), nil
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case bool:
		return Bool(x).String(), nil
	case float32:
		return formatFloat(float64(x)), nil
	case float64:
		return formatFloat(x), nil
	case time.Time:
		return x.Format(time.RFC3339), nil
	case *time.Time:
		if x == nil {
			return "", nil
		}
		return x.Format(time.RFC3339), nil
	case strfmt.DateTime:
		return time.Time(x).Format(time.RFC3339), nil
	case fmt.Stringer:
		return x.String(), nil
	}
	if n, ok := asInt64(v); ok {
		return strconv.FormatInt(n, 10), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode %T as %s: %w", v, t, err)
	}
	return string(b), nil
}

// Of wraps an incoming Go value in a Value without coercing it, so it can be
// compared strictly against a decoded one. Integers become Timestamps under a
// temporal type, since that is what they decode to.
func Of(t Type, v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case string:
		return Str(x)
	case bool:
		return Bool(x)
	case float32:
		return Flt(float64(x))
	case float64:
		return Flt(x)
	case time.Time:
		return DateTime(x)
	case strfmt.DateTime:
		return DateTime(time.Time(x))
	}
	if n, ok := asInt64(v); ok {
		if t.IsTemporal() {
			return Timestamp(n)
		}
		return Int(n)
	}
	s, _ := Encode(t, v)
	return Str(s)
}

// dateLayouts are tried after RFC 3339 variants. Strings without a zone are
// read as UTC.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 MST",
	"2006/01/02",
	"2006/01/02 15:04:05",
	"02-Jan-2006",
	"02 Jan 2006",
	"02 Jan 2006 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	time.RFC850,
	time.ANSIC,
}

// ParseTimestamp parses a calendar date or date-time string into a Unix timestamp.
func ParseTimestamp(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if dt, err := strfmt.ParseDateTime(s); err == nil {
		return time.Time(dt).Unix(), true
	}
	for _, layout := range dateLayouts {
		if tm, err := time.Parse(layout, s); err == nil {
			return tm.Unix(), true
		}
	}
	return 0, false
}

// isNumeric accepts optional surrounding whitespace, a sign, digits with an
// optional fraction, and an optional exponent.
func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	// ParseFloat also accepts inf, nan, hex and underscores.
	for _, r := range s {
		if !strings.ContainsRune("0123456789+-.eE", r) {
			return false
		}
	}
	return true
}

func parseInt(s string) int64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
		return n
	}
	if isNumeric(s) {
		return truncate(parseFloat(s))
	}
	return leadingInt(s)
}

func parseFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	if isNumeric(s) {
		f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f
	}
	return leadingFloat(s)
}

func truncate(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// leadingInt returns the integer formed by the longest [+-]?digits prefix of s.
func leadingInt(s string) int64 {
	end := numericPrefix(s, false)
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		f, _ := strconv.ParseFloat(s[:end], 64)
		return truncate(f)
	}
	return n
}

func leadingFloat(s string) float64 {
	end := numericPrefix(s, true)
	if end == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}

// numericPrefix returns the length of the leading number in s.
func numericPrefix(s string, fraction bool) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	digits := i > start
	if fraction && i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j > i+1 || digits {
			digits = digits || j > i+1
			i = j
		}
	}
	if !digits {
		return 0
	}
	if fraction && i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), true
	}
	return 0, false
}
