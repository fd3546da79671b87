package middleware

import (
	"context"
	"time"

	"github.com/tanayvk/conduit/pipeline"
	"github.com/tanayvk/conduit/request"
	"github.com/tanayvk/conduit/response"
	"github.com/tanayvk/conduit/server"
)

// Timeout bounds the time downstream stages and the handler may take. On
// expiry the stage returns 504, the request context is canceled so
// downstream work is abandoned, and any partially built response is
// discarded.
func Timeout(d time.Duration) pipeline.Middleware {
	return func(next server.Handler) server.Handler {
		return func(r *request.Request) response.Response {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			done := make(chan response.Response, 1)
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if rvr := recover(); rvr != nil {
						panicked <- rvr
					}
				}()
				done <- next(r.WithContext(ctx))
			}()

			select {
			case resp := <-done:
				return resp
			case rvr := <-panicked:
				// re-raise on the request goroutine so an outer
				// error boundary can see it
				panic(rvr)
			case <-ctx.Done():
				return response.NewStatusResponse(response.StatusGatewayTimeout)
			}
		}
	}
}
