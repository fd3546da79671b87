package server

import (
	"log"
	"runtime/debug"
	"time"

	"github.com/tanayvk/conduit/response"
)

// ServerOpts configures the TCP listener and connection handling.
type ServerOpts struct {
	// Address for the server to listen on, e.g. ":8080".
	Address string

	// ReadTimeout and WriteTimeout bound single read/write operations on
	// the connection. Zero disables the deadline.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// KeepAliveTimeout bounds how long an idle keep-alive connection is
	// held open. Zero closes connections after one request.
	KeepAliveTimeout time.Duration

	// Recovery takes the value of a recover() call after a panic escaped
	// the handler and returns the response written to the connection. The
	// connection is closed afterwards.
	Recovery func(any) response.Response
}

var defaultRecovery = func(r any) response.Response {
	log.Println("recovered from panic:", r)
	debug.PrintStack()
	return response.NewStatusResponse(response.StatusInternalServerError)
}
