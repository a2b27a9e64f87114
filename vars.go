// Copyright (c) The reqtmpl Authors
// SPDX-License-Identifier: MPL-2.0

package reqtmpl

// Vars supplies per-request values for a template's variables. It is the
// minimal capability [Template.Expand] needs: a lookup from variable name to
// string value. Lookups may be called multiple times and from multiple
// goroutines, so implementations should be read-only for the duration of a
// request.
//
// Not every variable in a template needs a value: an absent path variable
// renders as empty text and an absent query variable omits its entry.
type Vars interface {
	// Var returns the value for the named variable and whether a value
	// is set at all. The second result distinguishes "set to empty string"
	// from "not supplied", which matters for query parameters.
	Var(name string) (string, bool)
}

// Map is the standard [Vars] implementation, backed by an ordinary map.
// A nil Map is valid and supplies no values.
type Map map[string]string

// Var implements [Vars].
func (m Map) Var(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}
