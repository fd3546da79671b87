package response

// StatusCode is an HTTP response status code.
type StatusCode int

const (
	StatusOK        StatusCode = 200
	StatusCreated   StatusCode = 201
	StatusAccepted  StatusCode = 202
	StatusNoContent StatusCode = 204

	StatusMovedPermanently StatusCode = 301
	StatusFound            StatusCode = 302
	StatusSeeOther         StatusCode = 303
	StatusNotModified      StatusCode = 304

	StatusBadRequest       StatusCode = 400
	StatusUnauthorized     StatusCode = 401
	StatusForbidden        StatusCode = 403
	StatusNotFound         StatusCode = 404
	StatusMethodNotAllowed StatusCode = 405
	StatusRequestTimeout   StatusCode = 408
	StatusConflict         StatusCode = 409
	StatusGone             StatusCode = 410
	StatusPayloadTooLarge  StatusCode = 413
	StatusUnsupportedMedia StatusCode = 415
	StatusUnprocessable    StatusCode = 422
	StatusTooManyRequests  StatusCode = 429

	StatusInternalServerError StatusCode = 500
	StatusNotImplemented      StatusCode = 501
	StatusBadGateway          StatusCode = 502
	StatusServiceUnavailable  StatusCode = 503
	StatusGatewayTimeout      StatusCode = 504
)

var reasonPhrases = map[StatusCode]string{
	StatusOK:        "OK",
	StatusCreated:   "Created",
	StatusAccepted:  "Accepted",
	StatusNoContent: "No Content",

	StatusMovedPermanently: "Moved Permanently",
	StatusFound:            "Found",
	StatusSeeOther:         "See Other",
	StatusNotModified:      "Not Modified",

	StatusBadRequest:       "Bad Request",
	StatusUnauthorized:     "Unauthorized",
	StatusForbidden:        "Forbidden",
	StatusNotFound:         "Not Found",
	StatusMethodNotAllowed: "Method Not Allowed",
	StatusRequestTimeout:   "Request Timeout",
	StatusConflict:         "Conflict",
	StatusGone:             "Gone",
	StatusPayloadTooLarge:  "Payload Too Large",
	StatusUnsupportedMedia: "Unsupported Media Type",
	StatusUnprocessable:    "Unprocessable Entity",
	StatusTooManyRequests:  "Too Many Requests",

	StatusInternalServerError: "Internal Server Error",
	StatusNotImplemented:      "Not Implemented",
	StatusBadGateway:          "Bad Gateway",
	StatusServiceUnavailable:  "Service Unavailable",
	StatusGatewayTimeout:      "Gateway Timeout",
}

// GetStatusReason returns the reason phrase for the given status code.
func GetStatusReason(s StatusCode) string {
	return reasonPhrases[s]
}
