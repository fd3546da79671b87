package middleware

import (
	"log"
	"runtime/debug"

	"github.com/tanayvk/conduit/request"
	"github.com/tanayvk/conduit/response"
	"github.com/tanayvk/conduit/server"
)

// Recoverer is an error-boundary stage: it converts a panic anywhere
// downstream (later stages or the handler) into a 500 response. Register it
// outermost so it covers the whole chain.
func Recoverer(next server.Handler) server.Handler {
	return func(r *request.Request) (resp response.Response) {
		defer func() {
			if rvr := recover(); rvr != nil {
				log.Println("recovered from panic:", rvr)
				debug.PrintStack()
				resp = response.NewStatusResponse(response.StatusInternalServerError)
			}
		}()
		return next(r)
	}
}
