package server

import (
	"github.com/tanayvk/conduit/request"
	"github.com/tanayvk/conduit/response"
)

// Handler is a path handler function. Takes a request and returns a response.
type Handler func(*request.Request) response.Response
