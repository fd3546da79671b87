package request

import (
	"context"

	"github.com/tanayvk/conduit/headers"
)

// MethodType is an HTTP request method.
type MethodType string

const (
	GET     MethodType = "GET"
	HEAD    MethodType = "HEAD"
	POST    MethodType = "POST"
	PUT     MethodType = "PUT"
	PATCH   MethodType = "PATCH"
	DELETE  MethodType = "DELETE"
	OPTIONS MethodType = "OPTIONS"
	TRACE   MethodType = "TRACE"
)

// Request is a single HTTP request. It is treated as immutable once dispatched
// into a pipeline; only PathParams is bound during routing.
type Request struct {
	Method  MethodType
	Path    string
	Headers *headers.Headers
	Body    []byte

	// PathParams holds values bound from pattern parameters during routing.
	PathParams map[string]string

	ctx context.Context
}

// New creates a request with the given method and path, ready for dispatch.
func New(method MethodType, path string) *Request {
	return &Request{
		Method:  method,
		Path:    path,
		Headers: headers.NewHeaders(),
	}
}

// Context returns the request's context, never nil.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// WithContext returns a shallow copy of the request carrying ctx. The original
// request is left untouched.
func (r *Request) WithContext(ctx context.Context) *Request {
	if ctx == nil {
		panic("nil context")
	}
	r2 := *r
	r2.ctx = ctx
	return &r2
}
