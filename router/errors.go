package router

import "errors"

// ErrNotFound is returned by Resolve when no registered pattern matches the
// request path. Routing failure is a representable outcome, not a fault.
var ErrNotFound = errors.New("no route matches path")

// ErrMethodNotAllowed is returned when the path matches a route registered
// under a different method.
var ErrMethodNotAllowed = errors.New("method not allowed for path")
