/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package value

import "strings"

// Type is a canonical single-letter type code.
type Type string

const (
	Integer Type = "i"
	Boolean Type = "b"
	String  Type = "s"
	Float   Type = "f"
	Date    Type = "d"
	Time    Type = "t"
)

// Types lists every canonical type code.
var Types = []Type{Integer, Boolean, String, Float, Date, Time}

var aliases = map[string]Type{
	"i": Integer, "int": Integer, "integer": Integer,
	"b": Boolean, "bln": Boolean, "boolean": Boolean,
	"s": String, "str": String, "string": String,
	"f": Float, "flt": Float, "float": Float,
	"d": Date, "dat": Date, "date": Date,
	"t": Time, "tim": Time, "time": Time,
}

// Normalize maps a raw type name or alias to its canonical code.
// Unknown input, including the empty string, maps to String.
func Normalize(raw string) Type {
	if t, ok := aliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return t
	}
	return String
}

// IsTemporal reports whether t is stored as a Unix timestamp.
func (t Type) IsTemporal() bool {
	return t == Date || t == Time
}

func (t Type) String() string {
	return string(t)
}
