// Copyright (c) The reqtmpl Authors
// SPDX-License-Identifier: MPL-2.0

package fetchauth

import (
	"net/http"

	"golang.org/x/oauth2"
)

// OAuth2Credentials adapts an [oauth2.TokenSource] into a [HostCredentials],
// so that hosts requiring OAuth2-issued tokens can participate in the same
// per-host credentials model as static bearer tokens.
//
// Token sources obtained from the oauth2 package generally cache and refresh
// their tokens internally, so it is reasonable to use a single token source
// across many requests.
func OAuth2Credentials(src oauth2.TokenSource) HostCredentials {
	return oauth2Credentials{src}
}

type oauth2Credentials struct {
	src oauth2.TokenSource
}

// PrepareRequest obtains a token from the underlying token source and sets
// it as the request's Authorization header. If the token source fails then
// the request is left unmodified and proceeds anonymously, consistent with
// how credentials lookup failures are treated elsewhere.
func (c oauth2Credentials) PrepareRequest(req *http.Request) {
	token, err := c.src.Token()
	if err != nil {
		return
	}
	token.SetAuthHeader(req)
}
