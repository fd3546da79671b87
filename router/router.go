package router

import (
	"fmt"
	"sync/atomic"

	"github.com/tanayvk/conduit/request"
	"github.com/tanayvk/conduit/server"
)

// anyMethod is the pseudo-method under which Handle registers routes.
const anyMethod = "ANY"

type route struct {
	pattern *pattern
	handler server.Handler
	index   int // registration order, breaks specificity ties
}

// Router maps method+path to handlers via compiled patterns. Registration
// happens during startup; after Seal the router is immutable and safe for
// concurrent resolution.
type Router struct {
	routes  map[string][]*route
	nextIdx int
	sealed  atomic.Bool
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{routes: make(map[string][]*route)}
}

// Add registers a route for the given method. It panics on a malformed
// pattern or when called after Seal; both are programming errors.
func (r *Router) Add(method string, rawPattern string, handler server.Handler) {
	if r.sealed.Load() {
		panic("router: route registered after seal: " + rawPattern)
	}
	if handler == nil {
		panic("router: nil handler for pattern " + rawPattern)
	}
	p, err := compilePattern(rawPattern)
	if err != nil {
		panic(fmt.Sprintf("router: bad pattern %q: %v", rawPattern, err))
	}
	r.routes[method] = append(r.routes[method], &route{pattern: p, handler: handler, index: r.nextIdx})
	r.nextIdx++
}

// Get registers a new GET route.
func (r *Router) Get(pattern string, handler server.Handler) {
	r.Add("GET", pattern, handler)
}

// Post registers a new POST route.
func (r *Router) Post(pattern string, handler server.Handler) {
	r.Add("POST", pattern, handler)
}

// Put registers a new PUT route.
func (r *Router) Put(pattern string, handler server.Handler) {
	r.Add("PUT", pattern, handler)
}

// Patch registers a new PATCH route.
func (r *Router) Patch(pattern string, handler server.Handler) {
	r.Add("PATCH", pattern, handler)
}

// Delete registers a new DELETE route.
func (r *Router) Delete(pattern string, handler server.Handler) {
	r.Add("DELETE", pattern, handler)
}

// Options registers a new OPTIONS route.
func (r *Router) Options(pattern string, handler server.Handler) {
	r.Add("OPTIONS", pattern, handler)
}

// Head registers a new HEAD route.
func (r *Router) Head(pattern string, handler server.Handler) {
	r.Add("HEAD", pattern, handler)
}

// Handle registers a route for any HTTP method.
func (r *Router) Handle(pattern string, handler server.Handler) {
	r.Add(anyMethod, pattern, handler)
}

// Seal freezes the route table. Further registration panics.
func (r *Router) Seal() {
	r.sealed.Store(true)
}

// lookup finds the best matching route for one method: most literal segments
// first, earliest registration on ties.
func (r *Router) lookup(method string, pathSegs []string) (server.Handler, map[string]string, bool) {
	var best *route
	var bestParams map[string]string

	for _, rt := range r.routes[method] {
		params, ok := rt.pattern.match(pathSegs)
		if !ok {
			continue
		}
		if best == nil ||
			rt.pattern.literals > best.pattern.literals ||
			(rt.pattern.literals == best.pattern.literals && rt.index < best.index) {
			best = rt
			bestParams = params
		}
	}

	if best == nil {
		return nil, nil, false
	}
	return best.handler, bestParams, true
}

// Resolve maps a request's method and path to a handler and its bound path
// parameters. Resolution order:
//
//  1. Exact method match
//  2. For HEAD, the GET route (the caller strips the body)
//  3. The ANY-method route
//  4. ErrMethodNotAllowed if another method matches the path
//  5. ErrNotFound
//
// Resolve is a pure function of the sealed route table and is safe for
// concurrent use.
func (r *Router) Resolve(method request.MethodType, path string) (server.Handler, map[string]string, error) {
	pathSegs := splitPath(path)

	if h, params, ok := r.lookup(string(method), pathSegs); ok {
		return h, params, nil
	}

	if method == request.HEAD {
		if h, params, ok := r.lookup("GET", pathSegs); ok {
			return h, params, nil
		}
	}

	if h, params, ok := r.lookup(anyMethod, pathSegs); ok {
		return h, params, nil
	}

	for m := range r.routes {
		if m == string(method) || m == anyMethod {
			// already tried above
			continue
		}
		if _, _, ok := r.lookup(m, pathSegs); ok {
			return nil, nil, ErrMethodNotAllowed
		}
	}

	return nil, nil, ErrNotFound
}
