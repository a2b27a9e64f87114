// Copyright (c) The reqtmpl Authors
// SPDX-License-Identifier: MPL-2.0

// Package fetch executes GET requests for parsed URI templates and decodes
// their JSON responses into typed results.
//
// A [Client] holds the long-lived pieces shared across requests: the pooled
// HTTP client and an optional credentials source. Each call to [Get] expands
// a template with per-request variable values, issues a single GET with no
// retries, and decodes the body into the caller's result type.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"

	"github.com/reqtmpl/reqtmpl"
	"github.com/reqtmpl/reqtmpl/fetchauth"
	"github.com/reqtmpl/reqtmpl/hostname"
)

const (
	// Arbitrary-but-small time limit to prevent UI "hangs" on unresponsive
	// servers. This is used only when the caller doesn't provide their own
	// HTTP client.
	requestTimeout = 10 * time.Second

	// 1MB - to prevent abusive services from using loads of our memory.
	// Overridable with WithMaxResponseBytes.
	defaultMaxResponseBytes = 1 * 1024 * 1024
)

// Client is the main type in this package. It carries the state shared by
// all requests: a single pooled HTTP client reused across calls to amortize
// connection setup, and an optional per-host credentials source.
//
// A Client has no per-request mutable state, so a single instance may be
// used concurrently from any number of goroutines.
type Client struct {
	httpClient *http.Client
	credsSrc   fetchauth.CredentialsSource
	maxBody    int64
}

// ErrRequestFailed represents the error that occurs when a request cannot
// complete at the network level: connection refused, DNS failure, timeout,
// context cancellation and the like. Non-success HTTP statuses are not
// reported this way; see [Get].
type ErrRequestFailed struct {
	URI string
	err error
}

func (e ErrRequestFailed) Error() string {
	wrappedError := fmt.Errorf("failed to request %s: %w", e.URI, e.err)
	return wrappedError.Error()
}

// Unwrap returns another [error] value representing the underlying problem.
//
// This is intended for use with the standard library errors package, and its
// "Is", "As", and "Unwrap" functions.
func (e ErrRequestFailed) Unwrap() error {
	return e.err
}

// New returns a new client initialized with the given options.
//
// Use [WithHTTPClient] to specify an HTTP client to use when making
// requests. If no client is provided then a pooled one is created
// automatically and reused for the lifetime of the Client.
//
// Use [WithCredentials] to specify a [fetchauth.CredentialsSource] that can
// provide credentials to attach to outgoing requests. If none is provided
// then all requests are made anonymously.
func New(options ...ClientOption) *Client {
	ret := &Client{
		maxBody: defaultMaxResponseBytes,
	}
	for _, opt := range options {
		opt.applyOption(ret)
	}

	if ret.httpClient == nil {
		ret.httpClient = cleanhttp.DefaultPooledClient()
		ret.httpClient.Timeout = requestTimeout
	}

	return ret
}

// CredentialsSource returns the credentials source associated with the
// receiver, or an empty credentials source if none is associated.
func (c *Client) CredentialsSource() fetchauth.CredentialsSource {
	if c.credsSrc == nil {
		// We'll return an empty one just to save the caller from having to
		// protect against the nil case, since this interface already allows
		// for the possibility of there being no credentials at all.
		return fetchauth.NoCredentials
	}
	return c.credsSrc
}

// Get expands the given template with the given variable values, issues a
// single GET request for the resulting URI, and decodes the JSON response
// body into a value of type T.
//
// A response with a non-success (non-2xx) status yields the zero value of T
// and a nil error: HTTP-level failures are deliberately swallowed rather
// than surfaced, so callers that need to observe them should register a
// [RequestTrace] whose RequestHTTPFailure hook reports the status. Network
// failures are returned as [ErrRequestFailed], and malformed response bodies
// propagate as decode errors.
//
// The request is attempted exactly once, with no retries; ctx is honored
// while the round trip is outstanding and is the only cancellation point.
func Get[T any](ctx context.Context, client *Client, tmpl *reqtmpl.Template, vars reqtmpl.Vars, options ...RequestOption) (T, error) {
	var zero T
	cfg := newRequestConfig(options)

	uri := tmpl.Expand(vars)
	trace := requestTraceFromContext(ctx)
	ctx = trace.requestStart(ctx, uri)

	req, err := http.NewRequestWithContext(ctx, "GET", uri, nil)
	if err != nil {
		err = fmt.Errorf("invalid request URI %q (from template %q): %w", uri, tmpl.String(), err)
		trace.requestFailure(ctx, uri, err)
		return zero, err
	}
	req.Header.Set("Accept", "application/json")

	client.prepareCredentials(ctx, req)

	resp, err := client.httpClient.Do(req)
	if err != nil {
		reqErr := ErrRequestFailed{URI: uri, err: err}
		trace.requestFailure(ctx, uri, reqErr)
		return zero, reqErr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		trace.requestHTTPFailure(ctx, uri, resp.StatusCode)
		return zero, nil
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			err = fmt.Errorf("response from %s has a malformed Content-Type %q", uri, contentType)
			trace.requestFailure(ctx, uri, err)
			return zero, err
		}
		if mediaType != "application/json" {
			err = fmt.Errorf("response from %s has an unsupported Content-Type %q", uri, mediaType)
			trace.requestFailure(ctx, uri, err)
			return zero, err
		}
	}

	// This doesn't catch chunked encoding, because ContentLength is -1 in
	// that case; the LimitReader below bounds those.
	if resp.ContentLength > client.maxBody {
		err = fmt.Errorf("response from %s is too large (got %d bytes; limit %d)", uri, resp.ContentLength, client.maxBody)
		trace.requestFailure(ctx, uri, err)
		return zero, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, client.maxBody))
	if err != nil {
		err = fmt.Errorf("error reading response body from %s: %w", uri, err)
		trace.requestFailure(ctx, uri, err)
		return zero, err
	}

	var result T
	if err := cfg.decode(body, &result); err != nil {
		trace.requestFailure(ctx, uri, err)
		return zero, err
	}

	trace.requestSuccess(ctx, uri, resp.StatusCode)
	return result, nil
}

// prepareCredentials attaches credentials for the request's hostname, if the
// client has a credentials source and the source has credentials for that
// host. Any failure to obtain credentials just means the request proceeds
// anonymously.
func (c *Client) prepareCredentials(ctx context.Context, req *http.Request) {
	if c.credsSrc == nil || req.URL.Host == "" {
		return
	}
	host, err := hostname.ForComparison(req.URL.Host)
	if err != nil {
		return
	}
	creds, err := c.credsSrc.ForHost(ctx, host)
	if err != nil || creds == nil {
		return
	}
	creds.PrepareRequest(req)
}

func defaultDecode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response as JSON: %w", err)
	}
	return nil
}
