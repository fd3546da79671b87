package headers

import "errors"

// ErrMalformedHeader is returned when a header field line cannot be parsed.
var ErrMalformedHeader = errors.New("malformed header line")
