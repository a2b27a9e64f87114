// Copyright (c) The reqtmpl Authors
// SPDX-License-Identifier: MPL-2.0

// Package hostname provides a normalized representation of request
// hostnames, so that credentials lookups behave the same regardless of how a
// template spells its host: different letter case, or internationalized
// names written in either Unicode or punycode form, all map to the same key.
package hostname

import (
	"fmt"
	"net"
	"strings"

	"golang.org/x/net/idna"
)

// Hostname is the comparison form of a hostname, optionally including a
// port. Two Hostname values identify the same host if and only if they are
// equal, so the type is suitable as a map key.
//
// Always obtain a Hostname through [ForComparison]; conversion of an
// arbitrary string bypasses normalization.
type Hostname string

// ForComparison normalizes the given hostname into its comparison form:
// lowercase, with internationalized names converted to their ASCII
// (punycode) representation per the IDNA lookup rules. A port suffix, if
// present, is preserved verbatim. IP address literals are kept as-is apart
// from the port handling.
func ForComparison(given string) (Hostname, error) {
	host := given
	port := ""
	if h, p, err := net.SplitHostPort(given); err == nil {
		host, port = h, p
	}
	if host == "" {
		return Hostname(""), fmt.Errorf("empty hostname")
	}

	if net.ParseIP(host) == nil {
		ascii, err := idna.Lookup.ToASCII(strings.ToLower(host))
		if err != nil {
			return Hostname(""), fmt.Errorf("invalid hostname %q: %w", given, err)
		}
		host = ascii
	}

	if port != "" {
		return Hostname(host + ":" + port), nil
	}
	return Hostname(host), nil
}

// ForDisplay returns a form of the hostname suitable for showing to an end
// user, with punycode labels converted back to Unicode. If the conversion
// fails the comparison form is returned unchanged.
func (h Hostname) ForDisplay() string {
	host := string(h)
	port := ""
	if hp, p, err := net.SplitHostPort(host); err == nil {
		host, port = hp, p
	}
	if unicode, err := idna.Lookup.ToUnicode(host); err == nil {
		host = unicode
	}
	if port != "" {
		return host + ":" + port
	}
	return host
}

// String returns the comparison form as a plain string.
func (h Hostname) String() string {
	return string(h)
}
