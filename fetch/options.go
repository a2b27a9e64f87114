// Copyright (c) The reqtmpl Authors
// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/reqtmpl/reqtmpl/fetchauth"
)

type ClientOption interface {
	applyOption(client *Client)
}

type clientOption func(client *Client)

func (o clientOption) applyOption(client *Client) {
	o(client)
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return clientOption(func(client *Client) {
		client.httpClient = httpClient
	})
}

func WithCredentials(creds fetchauth.CredentialsSource) ClientOption {
	return clientOption(func(client *Client) {
		client.credsSrc = creds
	})
}

// WithMaxResponseBytes overrides the default cap on response body size.
func WithMaxResponseBytes(limit int64) ClientOption {
	return clientOption(func(client *Client) {
		client.maxBody = limit
	})
}

// RequestOption adjusts how a single [Get] call decodes its response.
type RequestOption interface {
	applyRequestOption(cfg *requestConfig)
}

type requestOption func(cfg *requestConfig)

func (o requestOption) applyRequestOption(cfg *requestConfig) {
	o(cfg)
}

type requestConfig struct {
	decode func(body []byte, v any) error
}

func newRequestConfig(options []RequestOption) *requestConfig {
	cfg := &requestConfig{
		decode: defaultDecode,
	}
	for _, opt := range options {
		opt.applyRequestOption(cfg)
	}
	return cfg
}

// StrictDecoding makes the decode step fail when the response body contains
// object fields not present in the result type, instead of silently
// discarding them.
func StrictDecoding() RequestOption {
	return requestOption(func(cfg *requestConfig) {
		cfg.decode = func(body []byte, v any) error {
			dec := json.NewDecoder(bytes.NewReader(body))
			dec.DisallowUnknownFields()
			if err := dec.Decode(v); err != nil {
				return fmt.Errorf("failed to decode response as JSON: %w", err)
			}
			return nil
		}
	})
}

// WithDecoder replaces the decode step wholesale, for responses that are not
// plain JSON or that need custom unmarshaling configuration. The function
// receives the full response body and the pointer to decode into.
func WithDecoder(decode func(body []byte, v any) error) RequestOption {
	return requestOption(func(cfg *requestConfig) {
		cfg.decode = decode
	})
}
