package middleware

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"

	"github.com/tanayvk/conduit/request"
	"github.com/tanayvk/conduit/response"
	"github.com/tanayvk/conduit/server"
)

// compressMinSize is the smallest body worth compressing.
const compressMinSize = 256

// Compress negotiates a content coding from the Accept-Encoding header and
// compresses the response body. Brotli is preferred over gzip when the client
// accepts both. Responses that are small, already encoded, or bodyless pass
// through untouched.
func Compress(next server.Handler) server.Handler {
	return func(r *request.Request) response.Response {
		resp := next(r)

		if resp.GetBody() == nil || resp.GetHeaders().Has("content-encoding") {
			return resp
		}

		encoding := negotiateEncoding(r.Headers.Get("accept-encoding"))
		if encoding == "" {
			return resp
		}

		body, err := io.ReadAll(resp.GetBody())
		if err != nil {
			// body already consumed, nothing sane to send
			return resp.WithBody(nil)
		}
		if len(body) < compressMinSize {
			return resp.WithBody(bytes.NewReader(body))
		}

		compressed, err := encode(encoding, body)
		if err != nil {
			return resp.WithBody(bytes.NewReader(body))
		}

		return resp.
			WithHeader("content-encoding", encoding).
			WithHeader("content-length", strconv.Itoa(len(compressed))).
			WithBody(bytes.NewReader(compressed))
	}
}

func negotiateEncoding(acceptEncoding string) string {
	var hasGzip bool
	for _, part := range strings.Split(acceptEncoding, ",") {
		coding, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		switch strings.ToLower(coding) {
		case "br":
			return "br"
		case "gzip":
			hasGzip = true
		}
	}
	if hasGzip {
		return "gzip"
	}
	return ""
}

func encode(encoding string, body []byte) ([]byte, error) {
	var buf bytes.Buffer
	var w io.WriteCloser

	switch encoding {
	case "br":
		w = brotli.NewWriter(&buf)
	case "gzip":
		w = gzip.NewWriter(&buf)
	}

	if _, err := w.Write(body); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
