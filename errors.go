// Copyright (c) The reqtmpl Authors
// SPDX-License-Identifier: MPL-2.0

package reqtmpl

import (
	"fmt"
)

// ErrUnclosedBrace is returned by [Parse] when a '{' in the path portion of
// a template has no matching '}'.
type ErrUnclosedBrace struct {
	Template string
	Offset   int // position of the unmatched '{' within the path portion
}

// Error returns a customized error message.
func (e *ErrUnclosedBrace) Error() string {
	return fmt.Sprintf("malformed template %q: '{' at offset %d has no matching '}'", e.Template, e.Offset)
}

// ErrMalformedQueryClause is returned by [Parse] when a clause in the query
// portion of a template is not a well-formed key={name} pair.
type ErrMalformedQueryClause struct {
	Template string
	Clause   string
	Reason   string
}

// Error returns a customized error message.
func (e *ErrMalformedQueryClause) Error() string {
	return fmt.Sprintf("malformed template %q: query clause %q: %s", e.Template, e.Clause, e.Reason)
}

// ErrDuplicateVar is returned by [Parse] when the same variable name appears
// more than once anywhere in a template, whether in path segments, query
// parameters, or one of each.
type ErrDuplicateVar struct {
	Template string
	Name     string
}

// Error returns a customized error message.
func (e *ErrDuplicateVar) Error() string {
	return fmt.Sprintf("malformed template %q: variable %q appears more than once", e.Template, e.Name)
}
