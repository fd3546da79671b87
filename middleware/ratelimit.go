package middleware

import (
	"golang.org/x/time/rate"

	"github.com/tanayvk/conduit/pipeline"
	"github.com/tanayvk/conduit/request"
	"github.com/tanayvk/conduit/response"
	"github.com/tanayvk/conduit/server"
)

// RateLimit short-circuits requests that exceed the given sustained rate and
// burst. The limiter is shared across concurrent requests and handles its own
// synchronization.
func RateLimit(perSecond float64, burst int) pipeline.Middleware {
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)

	return func(next server.Handler) server.Handler {
		return func(r *request.Request) response.Response {
			if !limiter.Allow() {
				return response.NewStatusResponse(response.StatusTooManyRequests).
					WithHeader("retry-after", "1")
			}
			return next(r)
		}
	}
}
