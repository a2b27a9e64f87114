// Copyright (c) The reqtmpl Authors
// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"errors"
	"strings"
	"testing"

	"github.com/reqtmpl/reqtmpl"
)

func TestRegistryTemplate(t *testing.T) {
	reg := NewRegistry()
	usersV1 := reqtmpl.MustParse("/v1/users/{id}")
	usersV2 := reqtmpl.MustParse("/v2/users/{id}?expand={expand}")
	if err := reg.Register("users.v1", usersV1); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := reg.Register("users.v2", usersV2); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	t.Run("registered", func(t *testing.T) {
		got, err := reg.Template("users.v2")
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if got != usersV2 {
			t.Errorf("wrong template: %s", got.String())
		}
	})

	t.Run("version not supported", func(t *testing.T) {
		_, err := reg.Template("users.v9")
		var wantErr *ErrVersionNotSupported
		if !errors.As(err, &wantErr) {
			t.Fatalf("wrong error type: %v", err)
		}
	})

	t.Run("not registered", func(t *testing.T) {
		_, err := reg.Template("orders.v1")
		var wantErr *ErrEndpointNotRegistered
		if !errors.As(err, &wantErr) {
			t.Fatalf("wrong error type: %v", err)
		}
	})

	t.Run("invalid identifier", func(t *testing.T) {
		if _, err := reg.Template("users"); err == nil {
			t.Error("unexpected success; want error")
		}
		if _, err := reg.Template("users.2"); err == nil {
			t.Error("unexpected success; want error")
		}
		if err := reg.Register("users.vX", usersV1); err == nil {
			t.Error("unexpected success; want error")
		}
	})
}

func TestRegistryNewest(t *testing.T) {
	reg := NewRegistry()
	v1 := reqtmpl.MustParse("/v1/users/{id}")
	v2 := reqtmpl.MustParse("/v2/users/{id}")
	v3 := reqtmpl.MustParse("/v3/users/{id}")
	for id, tmpl := range map[string]*reqtmpl.Template{
		"users.v1": v1,
		"users.v2": v2,
		"users.v3": v3,
	} {
		if err := reg.Register(id, tmpl); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}

	tests := []struct {
		name       string
		service    string
		constraint string
		want       *reqtmpl.Template
		wantErr    string
	}{
		{"unconstrained picks highest", "users", "", v3, ""},
		{"upper bound", "users", "< 3", v2, ""},
		{"range", "users", ">= 1, < 2", v1, ""},
		{"nothing satisfies", "users", ">= 9", nil, "not registered at version"},
		{"unknown service", "orders", "", nil, "no endpoint registered"},
		{"bad constraint", "users", "not-a-constraint", nil, "invalid version constraint"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := reg.Newest(test.service, test.constraint)
			if test.wantErr != "" {
				if err == nil {
					t.Fatalf("unexpected success; want error containing %q", test.wantErr)
				}
				if !strings.Contains(err.Error(), test.wantErr) {
					t.Fatalf("wrong error: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != test.want {
				t.Errorf("wrong template: %s", got.String())
			}
		})
	}
}
