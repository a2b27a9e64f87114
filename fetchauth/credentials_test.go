// Copyright (c) The reqtmpl Authors
// SPDX-License-Identifier: MPL-2.0

package fetchauth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/zclconf/go-cty/cty"
	"golang.org/x/oauth2"

	"github.com/reqtmpl/reqtmpl/hostname"
)

func TestCredentialsTriedInOrder(t *testing.T) {
	first := StaticCredentialsSource(map[hostname.Hostname]HostCredentials{
		"one.example.com": HostCredentialsToken("token-from-first"),
	})
	second := StaticCredentialsSource(map[hostname.Hostname]HostCredentials{
		"one.example.com": HostCredentialsToken("shadowed"),
		"two.example.com": HostCredentialsToken("token-from-second"),
	})
	creds := Credentials{first, second}

	tests := []struct {
		host hostname.Hostname
		want string // empty means no credentials expected
	}{
		{"one.example.com", "token-from-first"},
		{"two.example.com", "token-from-second"},
		{"three.example.com", ""},
	}

	for _, test := range tests {
		t.Run(string(test.host), func(t *testing.T) {
			got, err := creds.ForHost(context.Background(), test.host)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if test.want == "" {
				if got != nil {
					t.Fatalf("unexpected credentials: %#v", got)
				}
				return
			}
			token, ok := got.(HostCredentialsToken)
			if !ok {
				t.Fatalf("wrong credentials type: %#v", got)
			}
			if token.Token() != test.want {
				t.Errorf("wrong token\ngot:  %s\nwant: %s", token.Token(), test.want)
			}
		})
	}
}

func TestCredentialsSourceErrorHaltsSearch(t *testing.T) {
	boom := errors.New("credentials backend unavailable")
	failing := credentialsSourceFunc(func(context.Context, hostname.Hostname) (HostCredentials, error) {
		return nil, boom
	})
	fallback := StaticCredentialsSource(map[hostname.Hostname]HostCredentials{
		"example.com": HostCredentialsToken("never-reached"),
	})

	_, err := Credentials{failing, fallback}.ForHost(context.Background(), "example.com")
	if !errors.Is(err, boom) {
		t.Fatalf("wrong error: %v", err)
	}
}

func TestCredentialsNoStore(t *testing.T) {
	creds := Credentials{NoCredentials}
	if err := creds.StoreForHost(context.Background(), "example.com", HostCredentialsToken("x")); err == nil {
		t.Error("StoreForHost: unexpected success; want error")
	}
	if err := creds.ForgetForHost(context.Background(), "example.com"); err == nil {
		t.Error("ForgetForHost: unexpected success; want error")
	}
}

func TestHostCredentialsToken(t *testing.T) {
	token := HostCredentialsToken("s3cret")

	req := &http.Request{}
	token.PrepareRequest(req)
	if got, want := req.Header.Get("Authorization"), "Bearer s3cret"; got != want {
		t.Errorf("wrong Authorization header\ngot:  %s\nwant: %s", got, want)
	}

	want := cty.ObjectVal(map[string]cty.Value{
		"token": cty.StringVal("s3cret"),
	})
	if got := token.ToStore(); !want.RawEquals(got) {
		t.Errorf("wrong stored value\ngot:  %#v\nwant: %#v", got, want)
	}
}

func TestOAuth2Credentials(t *testing.T) {
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: "oauth-token",
		TokenType:   "Bearer",
	})
	creds := OAuth2Credentials(src)

	req, err := http.NewRequest("GET", "http://example.com/", nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	creds.PrepareRequest(req)
	if got, want := req.Header.Get("Authorization"), "Bearer oauth-token"; got != want {
		t.Errorf("wrong Authorization header\ngot:  %s\nwant: %s", got, want)
	}
}

// credentialsSourceFunc adapts a function to CredentialsSource for tests.
type credentialsSourceFunc func(ctx context.Context, host hostname.Hostname) (HostCredentials, error)

func (f credentialsSourceFunc) ForHost(ctx context.Context, host hostname.Hostname) (HostCredentials, error) {
	return f(ctx, host)
}
