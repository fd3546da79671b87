package server_test

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanayvk/conduit/pipeline"
	"github.com/tanayvk/conduit/request"
	"github.com/tanayvk/conduit/response"
	"github.com/tanayvk/conduit/router"
	"github.com/tanayvk/conduit/server"
)

func startTestServer(t *testing.T) net.Addr {
	t.Helper()

	rt := router.NewRouter()
	rt.Get("/greet/{name}", func(r *request.Request) response.Response {
		return response.NewTextResponse("hello " + r.PathParams["name"])
	})
	rt.Get("/panic", func(r *request.Request) response.Response {
		panic("kaboom")
	})

	p := pipeline.New(rt)
	p.Seal()

	s, err := server.Serve(server.ServerOpts{Address: "127.0.0.1:0"}, p.Handler())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s.Addr()
}

func doRequest(t *testing.T, addr net.Addr, raw string) *http.Response {
	t.Helper()

	conn, err := net.Dial("tcp", addr.String())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	_, err = fmt.Fprint(conn, raw)
	require.NoError(t, err)

	resp, err := http.ReadResponse(bufio.NewReader(conn), nil)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestServeRoutedRequest(t *testing.T) {
	addr := startTestServer(t)

	resp := doRequest(t, addr, "GET /greet/ada HTTP/1.1\r\nHost: localhost\r\n\r\n")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello ada", string(body))
	assert.NotEmpty(t, resp.Header.Get("Date"))
}

func TestServeUnknownPath(t *testing.T) {
	addr := startTestServer(t)

	resp := doRequest(t, addr, "GET /nope HTTP/1.1\r\nHost: localhost\r\n\r\n")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeMalformedRequest(t *testing.T) {
	addr := startTestServer(t)

	resp := doRequest(t, addr, "garbage\r\n\r\n")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServeMissingHost(t *testing.T) {
	addr := startTestServer(t)

	resp := doRequest(t, addr, "GET /greet/ada HTTP/1.1\r\n\r\n")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServeRecoversPanic(t *testing.T) {
	addr := startTestServer(t)

	resp := doRequest(t, addr, "GET /panic HTTP/1.1\r\nHost: localhost\r\n\r\n")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestServeETagNotModified(t *testing.T) {
	rt := router.NewRouter()
	body := "cacheable content"
	etag := response.ETagFor([]byte(body))
	rt.Get("/cached", func(r *request.Request) response.Response {
		return response.NewTextResponse(body).WithHeader("etag", etag)
	})

	p := pipeline.New(rt)
	p.Seal()

	s, err := server.Serve(server.ServerOpts{Address: "127.0.0.1:0"}, p.Handler())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	raw := fmt.Sprintf("GET /cached HTTP/1.1\r\nHost: localhost\r\nIf-None-Match: %s\r\n\r\n", etag)
	resp := doRequest(t, s.Addr(), raw)
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
}
