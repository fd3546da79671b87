package middleware

import (
	"encoding/base64"
	"strings"

	"github.com/tanayvk/conduit/pipeline"
	"github.com/tanayvk/conduit/request"
	"github.com/tanayvk/conduit/response"
	"github.com/tanayvk/conduit/server"
)

// Account is a username/password pair accepted by BasicAuth.
type Account struct {
	Username string
	Password string
}

// BasicAuth short-circuits requests that lack valid HTTP basic credentials.
func BasicAuth(accounts []Account) pipeline.Middleware {
	accountMap := make(map[string]string)
	for _, acc := range accounts {
		accountMap[acc.Username] = acc.Password
	}

	challenge := func() response.Response {
		return response.NewBaseResponse().
			WithStatusCode(response.StatusUnauthorized).
			WithHeader("www-authenticate", `Basic realm="Restricted"`)
	}

	return func(next server.Handler) server.Handler {
		return func(r *request.Request) response.Response {
			auth := r.Headers.Get("Authorization")
			if !strings.HasPrefix(auth, "Basic ") {
				return challenge()
			}

			payload, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(auth, "Basic "))
			if err != nil {
				return response.NewTextResponse("Invalid authorization header").
					WithStatusCode(response.StatusBadRequest)
			}

			user, pass, ok := strings.Cut(string(payload), ":")
			if !ok {
				return response.NewTextResponse("Invalid authorization header").
					WithStatusCode(response.StatusBadRequest)
			}

			actualPass, ok := accountMap[user]
			if !ok || actualPass != pass {
				return challenge()
			}

			return next(r)
		}
	}
}
