// Copyright (c) The reqtmpl Authors
// SPDX-License-Identifier: MPL-2.0

package reqtmpl

import (
	"strings"
)

// pathSegment is one token of a template's path portion: either literal text
// copied verbatim into every built URI, or the name of a variable resolved
// per request.
type pathSegment struct {
	static bool
	text   string // literal text when static, variable name otherwise
}

// parsePath tokenizes the path portion of a template into alternating static
// and dynamic segments, scanning left to right with '{' and '}' as the
// delimiters. The literal text before each '{' becomes a static segment even
// when it is empty, so adjacent variables like {a}{b} are legal and the empty
// segment between them contributes nothing when rendered.
//
// tmpl is the whole original template, retained in errors for diagnostics.
func parsePath(tmpl, pathTemplate string) ([]pathSegment, error) {
	if pathTemplate == "" {
		return nil, nil
	}

	var segments []pathSegment
	rest := pathTemplate
	offset := 0 // position of rest within pathTemplate
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			segments = append(segments, pathSegment{static: true, text: rest})
			return segments, nil
		}
		segments = append(segments, pathSegment{static: true, text: rest[:open]})

		closing := strings.IndexByte(rest[open+1:], '}')
		if closing < 0 {
			return nil, &ErrUnclosedBrace{Template: tmpl, Offset: offset + open}
		}
		// Variable names are taken exactly as written, without trimming.
		segments = append(segments, pathSegment{text: rest[open+1 : open+1+closing]})

		consumed := open + closing + 2
		offset += consumed
		rest = rest[consumed:]
	}
}
