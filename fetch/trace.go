// Copyright (c) The reqtmpl Authors
// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"context"
)

// RequestTrace allows a caller of [Get] to be notified about
// potentially-interesting events during a request, in case they want to
// generate log messages, telemetry traces, or similar.
//
// Use [ContextWithRequestTrace] to derive a [context.Context] containing an
// instance of this type, and use that context when calling [Get].
//
// All of the function-typed fields may either be left as nil or set to a
// function with the specified signature. If nil then the call for the
// corresponding event will be skipped.
type RequestTrace struct {
	// RequestStart is called when a request is about to begin for the given
	// expanded URI.
	//
	// This should return a [context.Context] that is either exactly the
	// context given or a child of it, and it will then be passed as the
	// context to whichever completion callback fires for the request. This
	// can be used to track per-request values such as distributed tracing
	// spans.
	RequestStart func(ctx context.Context, uri string) context.Context

	// RequestSuccess is called after a request completes with a success
	// status and its body decodes without error.
	RequestSuccess func(ctx context.Context, uri string, status int)

	// RequestHTTPFailure is called when the server responds with a
	// non-success status. Such responses yield the result type's zero value
	// rather than an error, so this hook is the only way to observe the
	// status that was swallowed.
	RequestHTTPFailure func(ctx context.Context, uri string, status int)

	// RequestFailure is called when the request fails for any reason other
	// than a non-success status: network errors, oversized or mistyped
	// responses, and decode errors.
	RequestFailure func(ctx context.Context, uri string, err error)
}

func ContextWithRequestTrace(parent context.Context, trace *RequestTrace) context.Context {
	return context.WithValue(parent, requestTraceKey, trace)
}

func (t *RequestTrace) requestStart(ctx context.Context, uri string) context.Context {
	if t.RequestStart == nil {
		return ctx
	}
	return t.RequestStart(ctx, uri)
}

func (t *RequestTrace) requestSuccess(ctx context.Context, uri string, status int) {
	if t.RequestSuccess == nil {
		return
	}
	t.RequestSuccess(ctx, uri, status)
}

func (t *RequestTrace) requestHTTPFailure(ctx context.Context, uri string, status int) {
	if t.RequestHTTPFailure == nil {
		return
	}
	t.RequestHTTPFailure(ctx, uri, status)
}

func (t *RequestTrace) requestFailure(ctx context.Context, uri string, err error) {
	if t.RequestFailure == nil {
		return
	}
	t.RequestFailure(ctx, uri, err)
}

func requestTraceFromContext(ctx context.Context) *RequestTrace {
	trace, ok := ctx.Value(requestTraceKey).(*RequestTrace)
	if !ok {
		trace = noTrace
	}
	return trace
}

type requestTraceKeyType string

const requestTraceKey = requestTraceKeyType("")

var noTrace = &RequestTrace{}
