// Copyright (c) The reqtmpl Authors
// SPDX-License-Identifier: MPL-2.0

package hostname

import (
	"testing"
)

func TestForComparison(t *testing.T) {
	tests := []struct {
		given string
		want  Hostname
		err   bool
	}{
		{"example.com", "example.com", false},
		{"Example.COM", "example.com", false},
		{"example.com:8080", "example.com:8080", false},
		{"münchen.de", "xn--mnchen-3ya.de", false},
		{"MÜNCHEN.de:443", "xn--mnchen-3ya.de:443", false},
		{"xn--mnchen-3ya.de", "xn--mnchen-3ya.de", false},
		{"127.0.0.1", "127.0.0.1", false},
		{"127.0.0.1:9090", "127.0.0.1:9090", false},
		{"", "", true},
		{"exa mple.com", "", true},
	}

	for _, test := range tests {
		t.Run(test.given, func(t *testing.T) {
			got, err := ForComparison(test.given)
			if test.err {
				if err == nil {
					t.Fatalf("unexpected success; want error\ngot: %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != test.want {
				t.Errorf("wrong result\ngot:  %q\nwant: %q", got, test.want)
			}
		})
	}
}

func TestForDisplay(t *testing.T) {
	tests := []struct {
		given Hostname
		want  string
	}{
		{"example.com", "example.com"},
		{"xn--mnchen-3ya.de", "münchen.de"},
		{"xn--mnchen-3ya.de:443", "münchen.de:443"},
		{"127.0.0.1:9090", "127.0.0.1:9090"},
	}

	for _, test := range tests {
		t.Run(string(test.given), func(t *testing.T) {
			if got := test.given.ForDisplay(); got != test.want {
				t.Errorf("wrong result\ngot:  %s\nwant: %s", got, test.want)
			}
		})
	}
}
