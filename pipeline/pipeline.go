// Package pipeline composes an ordered middleware chain around route dispatch.
//
// Stages wrap each other like balanced brackets: for stages [A, B] and
// handler H, execution runs A.pre, B.pre, H, B.post, A.post. A stage may
// short-circuit by returning without calling its continuation. The
// continuation must be invoked at most once per request; calling it again is
// a programming error with undefined behavior.
package pipeline

import (
	"errors"
	"sync/atomic"

	"github.com/tanayvk/conduit/request"
	"github.com/tanayvk/conduit/response"
	"github.com/tanayvk/conduit/router"
	"github.com/tanayvk/conduit/server"
)

// Middleware wraps a handler with pre/post logic, or replaces it entirely.
type Middleware func(server.Handler) server.Handler

var defaultNotFoundHandler server.Handler = func(r *request.Request) response.Response {
	return response.NewStatusResponse(response.StatusNotFound)
}

// Pipeline is an ordered middleware chain with a router as the terminal
// stage. Stages and routes are registered during startup; Seal composes the
// chain once and freezes the structure, after which Handle is safe for
// concurrent use.
type Pipeline struct {
	router          *router.Router
	stages          []Middleware
	notFoundHandler server.Handler

	sealed atomic.Bool
	final  server.Handler
}

// New creates a pipeline around the given router.
func New(r *router.Router) *Pipeline {
	return &Pipeline{
		router:          r,
		notFoundHandler: defaultNotFoundHandler,
	}
}

// Router returns the pipeline's router, for route registration before Seal.
func (p *Pipeline) Router() *router.Router {
	return p.router
}

// Use appends stages to the chain. Stages run in registration order on the
// way in and reverse order on the way out. Panics after Seal.
func (p *Pipeline) Use(m ...Middleware) {
	if p.sealed.Load() {
		panic("pipeline: middleware registered after seal")
	}
	p.stages = append(p.stages, m...)
}

// NotFound sets the handler invoked when no route matches. Panics after Seal.
func (p *Pipeline) NotFound(h server.Handler) {
	if p.sealed.Load() {
		panic("pipeline: not-found handler set after seal")
	}
	p.notFoundHandler = h
}

// Seal composes the middleware chain around the terminal dispatch stage and
// freezes the pipeline and its router. Must be called exactly once, before
// the first Handle.
func (p *Pipeline) Seal() {
	if !p.sealed.CompareAndSwap(false, true) {
		panic("pipeline: sealed twice")
	}
	p.router.Seal()

	h := server.Handler(p.dispatch)
	for i := len(p.stages) - 1; i >= 0; i-- {
		h = p.stages[i](h)
	}
	p.final = h
}

// Handle runs one request through the chain. Panics if the pipeline has not
// been sealed. Handler panics propagate to the caller unless an
// error-boundary stage (e.g. middleware.Recoverer) is registered.
func (p *Pipeline) Handle(r *request.Request) response.Response {
	if !p.sealed.Load() {
		panic("pipeline: Handle called before seal")
	}
	return p.final(r)
}

// Handler exposes the sealed pipeline as a plain handler for a transport.
func (p *Pipeline) Handler() server.Handler {
	return p.Handle
}

// dispatch is the terminal stage: resolve the route, bind path parameters and
// invoke the application handler. Routing failure is converted into a
// response here, never surfaced as an error.
func (p *Pipeline) dispatch(r *request.Request) response.Response {
	handler, params, err := p.router.Resolve(r.Method, r.Path)
	switch {
	case errors.Is(err, router.ErrMethodNotAllowed):
		return response.NewStatusResponse(response.StatusMethodNotAllowed)
	case errors.Is(err, router.ErrNotFound):
		return p.notFoundHandler(r)
	}

	r.PathParams = params
	resp := handler(r)

	if r.Method == request.HEAD {
		// HEAD responses carry headers only
		resp.WithBody(nil)
	}
	return resp
}
