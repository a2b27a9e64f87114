// Copyright (c) The reqtmpl Authors
// SPDX-License-Identifier: MPL-2.0

// Package reqtmpl implements parameterized URI templates.
//
// A template string such as
//
//	http://host/api/{id}/get?name={displayName}#frag
//
// is parsed once into an immutable [Template] and then expanded repeatedly
// with caller-supplied variable values to produce concrete request URIs.
// The path portion alternates literal text with {name} substitution points,
// the query portion is a sequence of key={name} pairs whose entries are
// emitted only when the named variable is supplied, and the fragment is
// literal text carried verbatim into every built URI.
//
// Templates perform no percent-encoding of substituted values; callers that
// substitute values needing escaping must escape them first.
//
// The companion fetch package executes GET requests for expanded templates
// and decodes their JSON responses into typed results.
package reqtmpl

import (
	"strings"
)

// Template is the parsed, reusable representation of one parameterized URI
// string. A Template is immutable after construction and therefore safe for
// concurrent use by multiple goroutines without locking.
type Template struct {
	original string
	segments []pathSegment
	params   []queryParam
	fragment string
}

// Parse parses the given template string.
//
// Every variable name in the template, whether it appears in a path segment
// or as a query parameter, must be unique across the whole template. Parse
// never returns a partially-valid Template: on error the returned Template
// is nil and the template string must be considered unusable.
func Parse(tmpl string) (*Template, error) {
	pathTmpl, queryTmpl, fragment := splitTemplate(tmpl)

	segments, err := parsePath(tmpl, pathTmpl)
	if err != nil {
		return nil, err
	}
	params, err := parseQuery(tmpl, queryTmpl)
	if err != nil {
		return nil, err
	}
	if err := checkUniqueVars(tmpl, segments, params); err != nil {
		return nil, err
	}

	return &Template{
		original: tmpl,
		segments: segments,
		params:   params,
		fragment: fragment,
	}, nil
}

// MustParse is the same as [Parse], except that it panics on error. It is
// intended for templates that are fixed at compile time.
func MustParse(tmpl string) *Template {
	t, err := Parse(tmpl)
	if err != nil {
		panic(err)
	}
	return t
}

// splitTemplate separates a raw template string into its path, query and
// fragment portions. Exactly one leading slash is dropped if present, the
// first '#' starts the verbatim fragment, and the first '?' before it starts
// the query template. Any string splits successfully; there are no error
// cases at this stage.
func splitTemplate(raw string) (path, query, fragment string) {
	raw = strings.TrimPrefix(raw, "/")
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		fragment = raw[i+1:]
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		query = raw[i+1:]
		raw = raw[:i]
	}
	return raw, query, fragment
}

func checkUniqueVars(tmpl string, segments []pathSegment, params []queryParam) error {
	seen := make(map[string]struct{})
	for _, seg := range segments {
		if seg.static {
			continue
		}
		if _, dup := seen[seg.text]; dup {
			return &ErrDuplicateVar{Template: tmpl, Name: seg.text}
		}
		seen[seg.text] = struct{}{}
	}
	for _, p := range params {
		if _, dup := seen[p.varName]; dup {
			return &ErrDuplicateVar{Template: tmpl, Name: p.varName}
		}
		seen[p.varName] = struct{}{}
	}
	return nil
}

// Expand substitutes the given variable values into the template and returns
// the assembled URI string.
//
// Dynamic path segments whose variable is not supplied render as empty text.
// Query parameters whose variable is not supplied are omitted entirely, with
// exactly one '&' between each pair of entries actually rendered. A single
// '?' always follows the path, even when no query entry renders, so callers
// relying on the historical template format get a stable shape regardless of
// which variables are present.
//
// Substituted values are copied into the URI verbatim, with no
// percent-encoding. Expand is a pure function: it is deterministic for a
// given template and variable set and safe to call concurrently.
func (t *Template) Expand(vars Vars) string {
	if vars == nil {
		vars = Map(nil)
	}

	var sb strings.Builder
	for _, seg := range t.segments {
		if seg.static {
			sb.WriteString(seg.text)
			continue
		}
		if v, ok := vars.Var(seg.text); ok {
			sb.WriteString(v)
		}
	}

	sb.WriteByte('?')
	rendered := 0
	for _, p := range t.params {
		v, ok := vars.Var(p.varName)
		if !ok {
			continue
		}
		if rendered > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(p.wireName)
		sb.WriteByte('=')
		sb.WriteString(v)
		rendered++
	}

	if t.fragment != "" {
		sb.WriteByte('#')
		sb.WriteString(t.fragment)
	}
	return sb.String()
}

// String returns the original template string the Template was parsed from.
func (t *Template) String() string {
	return t.original
}

// Fragment returns the template's literal fragment, without the leading '#',
// or an empty string if the template has none.
func (t *Template) Fragment() string {
	return t.fragment
}

// VarNames returns the names of all of the template's variables in template
// order: dynamic path segments first, then query parameters.
func (t *Template) VarNames() []string {
	var names []string
	for _, seg := range t.segments {
		if !seg.static {
			names = append(names, seg.text)
		}
	}
	for _, p := range t.params {
		names = append(names, p.varName)
	}
	return names
}
