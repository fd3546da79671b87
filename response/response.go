package response

import (
	"io"

	"github.com/tanayvk/conduit/headers"
)

// Response is the result of handling a request. Implementations are mutable
// builders until written or returned to the transport.
type Response interface {
	GetStatusCode() StatusCode
	GetHeaders() *headers.Headers
	GetBody() io.Reader

	WithStatusCode(StatusCode) Response
	WithHeader(key, value string) Response
	WithHeaders(map[string]string) Response
	WithBody(io.Reader) Response

	// Write serializes the response in HTTP/1.1 wire format.
	Write(io.Writer) error
}

// BaseResponse is the default Response implementation, a fluent builder.
type BaseResponse struct {
	StatusCode StatusCode
	Headers    *headers.Headers
	Body       io.Reader
}

// NewBaseResponse creates an empty 200 response.
func NewBaseResponse() Response {
	return &BaseResponse{
		Headers:    headers.NewHeaders(),
		StatusCode: StatusOK,
	}
}

func (r *BaseResponse) GetStatusCode() StatusCode {
	return r.StatusCode
}

func (r *BaseResponse) GetHeaders() *headers.Headers {
	return r.Headers
}

func (r *BaseResponse) GetBody() io.Reader {
	return r.Body
}

func (r *BaseResponse) WithStatusCode(code StatusCode) Response {
	r.StatusCode = code
	return r
}

func (r *BaseResponse) WithHeader(key, value string) Response {
	r.Headers.Set(key, value)
	return r
}

func (r *BaseResponse) WithHeaders(hs map[string]string) Response {
	for key, value := range hs {
		r.Headers.Set(key, value)
	}
	return r
}

func (r *BaseResponse) WithBody(body io.Reader) Response {
	r.Body = body
	return r
}

func (r *BaseResponse) Write(w io.Writer) error {
	rw := NewWriter(w)
	if err := rw.WriteStatusLine(r.StatusCode); err != nil {
		return err
	}
	if err := rw.WriteHeaders(r.Headers); err != nil {
		return err
	}
	if r.Body != nil {
		if err := rw.WriteBody(r.Body); err != nil {
			return err
		}
	}
	return nil
}
