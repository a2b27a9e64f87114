// Copyright (c) The reqtmpl Authors
// SPDX-License-Identifier: MPL-2.0

// Package fetchauth provides types for representing credentials attached to
// outgoing template-built requests, looked up by the request's normalized
// hostname.
//
// The fetch package consults a [CredentialsSource], if one is configured,
// immediately before issuing each GET; when the source has no credentials
// for a host the request is simply made anonymously.
package fetchauth
