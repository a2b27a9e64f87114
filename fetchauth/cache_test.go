// Copyright (c) The reqtmpl Authors
// SPDX-License-Identifier: MPL-2.0

package fetchauth

import (
	"context"
	"errors"
	"testing"

	"github.com/reqtmpl/reqtmpl/hostname"
)

func TestCachingCredentialsSource(t *testing.T) {
	calls := 0
	inner := credentialsSourceFunc(func(_ context.Context, host hostname.Hostname) (HostCredentials, error) {
		calls++
		if host == "creds.example.com" {
			return HostCredentialsToken("tok"), nil
		}
		return nil, nil
	})
	source := CachingCredentialsSource(inner)

	for i := 0; i < 3; i++ {
		got, err := source.ForHost(context.Background(), "creds.example.com")
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if got == nil {
			t.Fatal("missing credentials")
		}
	}
	if calls != 1 {
		t.Errorf("wrong number of inner calls\ngot:  %d\nwant: 1", calls)
	}

	// nil results are cached too.
	calls = 0
	for i := 0; i < 2; i++ {
		got, err := source.ForHost(context.Background(), "anon.example.com")
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if got != nil {
			t.Fatalf("unexpected credentials: %#v", got)
		}
	}
	if calls != 1 {
		t.Errorf("wrong number of inner calls\ngot:  %d\nwant: 1", calls)
	}
}

func TestCachingCredentialsSourceErrorNotCached(t *testing.T) {
	boom := errors.New("backend unavailable")
	fail := true
	inner := credentialsSourceFunc(func(context.Context, hostname.Hostname) (HostCredentials, error) {
		if fail {
			return nil, boom
		}
		return HostCredentialsToken("tok"), nil
	})
	source := CachingCredentialsSource(inner)

	if _, err := source.ForHost(context.Background(), "example.com"); !errors.Is(err, boom) {
		t.Fatalf("wrong error: %v", err)
	}

	// The failure must not have been cached, so recovery is possible.
	fail = false
	got, err := source.ForHost(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got == nil {
		t.Fatal("missing credentials after backend recovery")
	}
}

func TestCachingCredentialsSourceNotAStore(t *testing.T) {
	source := CachingCredentialsSource(NoCredentials)
	store, ok := source.(CredentialsStore)
	if !ok {
		t.Fatal("caching source does not implement CredentialsStore")
	}
	if err := store.StoreForHost(context.Background(), "example.com", HostCredentialsToken("x")); err == nil {
		t.Error("StoreForHost: unexpected success; want error")
	}
	if err := store.ForgetForHost(context.Background(), "example.com"); err == nil {
		t.Error("ForgetForHost: unexpected success; want error")
	}
}
