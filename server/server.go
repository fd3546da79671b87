package server

import (
	"context"
	"log"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tanayvk/conduit/request"
	"github.com/tanayvk/conduit/response"
)

// Server accepts TCP connections and drives the handler once per parsed
// request. It is the transport collaborator of the pipeline; all routing and
// middleware behavior lives behind the Handler.
type Server struct {
	opts     ServerOpts
	listener net.Listener
	closed   atomic.Bool
	handler  Handler
}

// Close shuts the server down.
func (s *Server) Close() error {
	s.closed.Store(true)
	return s.listener.Close()
}

// Addr returns the listener address, useful when listening on port 0.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *Server) listen(started chan<- error) {
	listener, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		started <- err
		return
	}
	s.listener = listener
	started <- nil

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.closed.Load() {
				log.Println("unable to accept connection:", err)
			}
			return
		}

		if s.opts.ReadTimeout != 0 {
			conn.SetReadDeadline(time.Now().Add(s.opts.ReadTimeout))
		}
		if s.opts.WriteTimeout != 0 {
			conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	shouldCloseConn := s.opts.KeepAliveTimeout == 0

	// defers are stacked: recovery runs before the close

	defer func() {
		if shouldCloseConn {
			if err := conn.Close(); err != nil {
				log.Println("unable to close connection:", err)
			}
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			resp := s.opts.Recovery(r)
			resp.Write(conn)
			conn.Close()
		}
	}()

	// cancel in-flight work when the connection goes away
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for {
		if s.opts.KeepAliveTimeout != 0 {
			conn.SetDeadline(time.Now().Add(s.opts.KeepAliveTimeout))
		}

		req, err := request.RequestFromReader(conn)
		if err != nil {
			response.NewStatusResponse(response.StatusBadRequest).Write(conn)
			shouldCloseConn = true
			break
		}

		hostHeader := req.Headers.Get("host")
		if hostHeader == "" || strings.Contains(hostHeader, ",") {
			// exactly one host required
			response.NewStatusResponse(response.StatusBadRequest).Write(conn)
			shouldCloseConn = true
			break
		}

		resp := s.handler(req.WithContext(ctx))

		resp.GetHeaders().Set("date", time.Now().Format(time.RFC1123))
		if shouldCloseConn {
			resp.GetHeaders().Set("connection", "close")
		}

		if respEtag, reqEtag := resp.GetHeaders().Get("etag"), req.Headers.Get("if-none-match"); respEtag != "" && respEtag == reqEtag {
			resp = response.NewBaseResponse().WithStatusCode(response.StatusNotModified)
		}

		if err := resp.Write(conn); err != nil {
			log.Println("unable to write response to connection:", err)
			shouldCloseConn = true
			break
		}

		if strings.TrimSpace(strings.ToLower(req.Headers.Get("connection"))) == "close" {
			shouldCloseConn = true
		}
		if shouldCloseConn {
			break
		}
	}
}

func newServer(opts ServerOpts, handler Handler) *Server {
	if opts.Recovery == nil {
		opts.Recovery = defaultRecovery
	}
	if opts.Address == "" {
		opts.Address = ":8080"
	}
	return &Server{opts: opts, handler: handler}
}

// Serve starts the HTTP server with the given options and handler.
func Serve(opts ServerOpts, handler Handler) (*Server, error) {
	s := newServer(opts, handler)

	started := make(chan error, 1)
	go s.listen(started)

	if err := <-started; err != nil {
		return nil, err
	}
	return s, nil
}
