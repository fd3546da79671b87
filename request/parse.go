package request

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/tanayvk/conduit/headers"
)

// DefaultMaxBodySize caps how much request body RequestFromReader will buffer.
const DefaultMaxBodySize = 8 << 20 // 8 MiB

var requestLineRegex = regexp.MustCompile(`^(GET|HEAD|POST|PUT|PATCH|DELETE|OPTIONS|TRACE) ([^\s]+) HTTP/1\.1$`)

type requestLine struct {
	method MethodType
	target string
}

func parseRequestLine(line string) (*requestLine, error) {
	matches := requestLineRegex.FindStringSubmatch(line)
	if len(matches) != 3 {
		return nil, ErrIncorrectRequestLine
	}
	return &requestLine{method: MethodType(matches[1]), target: matches[2]}, nil
}

// readCRLFLine reads a single line terminated by `\r\n`, returned without the
// terminator.
func readCRLFLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", ErrIncompleteRequest
	}
	if !strings.HasSuffix(line, "\r\n") {
		return "", ErrIncompleteRequest
	}
	return strings.TrimSuffix(line, "\r\n"), nil
}

// RequestFromReader parses an HTTP/1.1 request (request line, header fields
// and a content-length delimited body) from the given reader.
func RequestFromReader(reader io.Reader) (*Request, error) {
	br := bufio.NewReader(reader)

	line, err := readCRLFLine(br)
	if err != nil {
		return nil, err
	}
	reqLine, err := parseRequestLine(line)
	if err != nil {
		return nil, err
	}

	hs := headers.NewHeaders()
	for {
		line, err := readCRLFLine(br)
		if err != nil {
			return nil, err
		}
		if line == "" {
			// double CRLF, headers over
			break
		}
		if err := hs.ParseFieldLine([]byte(line)); err != nil {
			return nil, err
		}
	}

	req := &Request{
		Method:  reqLine.method,
		Path:    reqLine.target,
		Headers: hs,
	}

	if cl := hs.Get("content-length"); cl != "" {
		length, err := strconv.Atoi(cl)
		if err != nil || length < 0 {
			return nil, ErrIncompleteRequest
		}
		if length > DefaultMaxBodySize {
			return nil, ErrBodyTooLarge
		}
		body := make([]byte, length)
		if _, err := io.ReadFull(br, body); err != nil {
			return nil, ErrIncompleteRequest
		}
		req.Body = body
	}

	return req, nil
}
