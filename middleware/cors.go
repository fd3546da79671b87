package middleware

import (
	"slices"
	"strconv"
	"strings"

	"github.com/tanayvk/conduit/pipeline"
	"github.com/tanayvk/conduit/request"
	"github.com/tanayvk/conduit/response"
	"github.com/tanayvk/conduit/server"
)

// CORSOptions configures the CORS middleware.
type CORSOptions struct {
	// AllowedOrigins lists origins cross-origin requests may come from.
	// The special value "*" allows all origins. Defaults to ["*"].
	AllowedOrigins []string

	// AllowedMethods lists methods clients may use in cross-origin
	// requests. Defaults to the simple methods (GET, HEAD, POST).
	AllowedMethods []string

	// AllowedHeaders lists non-simple headers clients may send.
	AllowedHeaders []string

	// AllowCredentials indicates whether requests can include user
	// credentials such as cookies.
	AllowCredentials bool

	// MaxAge is how long (in seconds) preflight results may be cached.
	MaxAge int
}

// CORS answers preflight OPTIONS requests directly and decorates other
// responses with the CORS headers implied by opts.
func CORS(opts CORSOptions) pipeline.Middleware {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if len(opts.AllowedMethods) == 0 {
		opts.AllowedMethods = []string{"GET", "HEAD", "POST"}
	}
	allowAllOrigins := slices.Contains(opts.AllowedOrigins, "*")

	originAllowed := func(origin string) bool {
		if allowAllOrigins {
			return true
		}
		origin = strings.ToLower(origin)
		return slices.ContainsFunc(opts.AllowedOrigins, func(o string) bool {
			return strings.ToLower(o) == origin
		})
	}

	allowOriginValue := func(origin string) string {
		if allowAllOrigins && !opts.AllowCredentials {
			return "*"
		}
		return origin
	}

	return func(next server.Handler) server.Handler {
		return func(r *request.Request) response.Response {
			origin := r.Headers.Get("Origin")
			if origin == "" || !originAllowed(origin) {
				return next(r)
			}

			if r.Method == request.OPTIONS && r.Headers.Has("Access-Control-Request-Method") {
				// preflight, short-circuit
				resp := response.NewBaseResponse().
					WithStatusCode(response.StatusNoContent).
					WithHeader("access-control-allow-origin", allowOriginValue(origin)).
					WithHeader("access-control-allow-methods", strings.Join(opts.AllowedMethods, ", ")).
					WithHeader("vary", "Origin")
				if len(opts.AllowedHeaders) > 0 {
					resp.WithHeader("access-control-allow-headers", strings.Join(opts.AllowedHeaders, ", "))
				}
				if opts.AllowCredentials {
					resp.WithHeader("access-control-allow-credentials", "true")
				}
				if opts.MaxAge > 0 {
					resp.WithHeader("access-control-max-age", strconv.Itoa(opts.MaxAge))
				}
				return resp
			}

			resp := next(r)
			resp.GetHeaders().Set("access-control-allow-origin", allowOriginValue(origin))
			resp.GetHeaders().Add("vary", "Origin")
			if opts.AllowCredentials {
				resp.GetHeaders().Set("access-control-allow-credentials", "true")
			}
			return resp
		}
	}
}
