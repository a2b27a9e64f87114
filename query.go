// Copyright (c) The reqtmpl Authors
// SPDX-License-Identifier: MPL-2.0

package reqtmpl

import (
	"strings"
)

// queryParam is one key={name} entry of a template's query portion. The wire
// name is the literal key emitted left of '=' in built URIs; the variable
// name is what gets looked up in the per-request values.
type queryParam struct {
	wireName string
	varName  string
}

// Clauses shorter than this can never hold a k={v} pair, and are dropped
// without error so that stray '&' separators in hand-written templates don't
// fail construction.
const minQueryClauseLen = 3

// The cutset tolerates both key={name} and key={ name } spellings.
const queryTrimCutset = "{} "

// parseQuery tokenizes the query portion of a template into its key={name}
// entries, splitting on '&'. Each clause must contain an '=', and both the
// wire name and the variable name must be non-empty once '{', '}' and spaces
// are trimmed from their ends.
//
// tmpl is the whole original template, retained in errors for diagnostics.
func parseQuery(tmpl, queryTemplate string) ([]queryParam, error) {
	if queryTemplate == "" {
		return nil, nil
	}

	var params []queryParam
	for _, clause := range strings.Split(queryTemplate, "&") {
		if len(clause) < minQueryClauseLen {
			continue
		}
		eq := strings.IndexByte(clause, '=')
		if eq < 0 {
			return nil, &ErrMalformedQueryClause{Template: tmpl, Clause: clause, Reason: "missing '='"}
		}
		wireName := strings.Trim(clause[:eq], queryTrimCutset)
		varName := strings.Trim(clause[eq+1:], queryTrimCutset)
		if wireName == "" {
			return nil, &ErrMalformedQueryClause{Template: tmpl, Clause: clause, Reason: "empty name left of '='"}
		}
		if varName == "" {
			return nil, &ErrMalformedQueryClause{Template: tmpl, Clause: clause, Reason: "empty variable name right of '='"}
		}
		params = append(params, queryParam{wireName: wireName, varName: varName})
	}
	return params, nil
}
