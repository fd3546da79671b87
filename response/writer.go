package response

import (
	"fmt"
	"io"

	"github.com/tanayvk/conduit/headers"
)

type writerState string

const (
	stateStatusLine writerState = "status line"
	stateHeaders    writerState = "headers"
	stateBody       writerState = "body"
	stateDone       writerState = "done"
)

func (ws writerState) advance() writerState {
	switch ws {
	case stateStatusLine:
		return stateHeaders
	case stateHeaders:
		return stateBody
	case stateBody:
		return stateDone
	default:
		panic("invalid writer state advance: " + ws)
	}
}

// Writer serializes a response section by section, enforcing the
// status-line/headers/body order.
type Writer struct {
	conn  io.Writer
	state writerState
}

func NewWriter(conn io.Writer) *Writer {
	return &Writer{conn: conn, state: stateStatusLine}
}

func (rw *Writer) WriteStatusLine(statusCode StatusCode) error {
	if rw.state != stateStatusLine {
		return ErrInvalidWriterState
	}
	_, err := fmt.Fprintf(rw.conn, "HTTP/1.1 %d %s\r\n", statusCode, GetStatusReason(statusCode))
	if err != nil {
		return err
	}
	rw.state = rw.state.advance()
	return nil
}

func (rw *Writer) WriteHeaders(h *headers.Headers) error {
	if rw.state != stateHeaders {
		return ErrInvalidWriterState
	}
	for k, v := range h.All() {
		if _, err := fmt.Fprintf(rw.conn, "%s: %s\r\n", k, v); err != nil {
			return err
		}
	}
	if _, err := rw.conn.Write([]byte("\r\n")); err != nil {
		return err
	}
	rw.state = rw.state.advance()
	return nil
}

func (rw *Writer) WriteBody(b io.Reader) error {
	if rw.state != stateBody {
		return ErrInvalidWriterState
	}
	if _, err := io.Copy(rw.conn, b); err != nil {
		return err
	}
	rw.state = rw.state.advance()
	return nil
}
