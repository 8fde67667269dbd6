/*
Package value holds the typed side of the settings store.

Every setting is persisted as a string. The canonical type code selects how that
string is turned back into a Go value:

	i  integer          int64
	b  boolean          "" and "0" are false, anything else is true
	s  string           stored as-is (also the fallback for unknown codes)
	f  float            float64
	d  date             Unix timestamp (int64)
	t  time             same handling as d

Type aliases are folded by Normalize:

	value.Normalize(" Integer ") // value.Integer
	value.Normalize("bln")       // value.Boolean
	value.Normalize("whatever")  // value.String

Decoded results are carried in Value, a small tagged union. The zero Value is
Null, the explicit "no value" signal returned by reads that miss and have no default.

Decoding never fails. Stored strings that do not parse as their declared type fall
back leniently: the longest leading numeric prefix, or zero.
*/
package value
