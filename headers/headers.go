package headers

import (
	"iter"
	"maps"
	"regexp"
	"strings"
)

// https://datatracker.ietf.org/doc/html/rfc9110#name-tokens
var fieldNameRegex = regexp.MustCompile(`^[a-zA-Z0-9!#$%&'*\+\-.^_\x60\|~]+$`)

// Headers is a case-insensitive collection of HTTP header fields.
type Headers struct {
	fields map[string]string
}

// NewHeaders creates an empty Headers collection.
func NewHeaders() *Headers {
	return &Headers{fields: map[string]string{}}
}

func isValidFieldName(key string) bool {
	return fieldNameRegex.MatchString(key)
}

func validFieldValueByte(c byte) bool {
	switch {
	case c == 0x09: // HTAB
		return true
	case c == 0x20: // SP
		return true
	case 0x21 <= c && c <= 0x7E: // VCHAR
		return true
	case c >= 0x80: // obs-text
		return true
	}
	return false
}

func isValidFieldValue(val string) bool {
	for i := 0; i < len(val); i++ {
		if !validFieldValueByte(val[i]) {
			return false
		}
	}
	return true
}

func normalizeKey(key string) string {
	return strings.ToLower(key)
}

// Add appends a value to a header field. If the field already exists, the new
// value is joined to the existing one with a comma.
func (h *Headers) Add(key, value string) {
	if !isValidFieldName(key) || !isValidFieldValue(value) {
		// drop invalid fields to prevent response splitting
		return
	}

	key = normalizeKey(key)
	if existing, ok := h.fields[key]; ok {
		h.fields[key] = existing + ", " + value
	} else {
		h.fields[key] = value
	}
}

// Set replaces any existing value for a header field.
func (h *Headers) Set(key, value string) {
	if !isValidFieldName(key) || !isValidFieldValue(value) {
		return
	}
	h.fields[normalizeKey(key)] = value
}

// Get returns the value of a header field, or "" if absent.
func (h *Headers) Get(key string) string {
	return h.fields[normalizeKey(key)]
}

// Has reports whether a header field is present.
func (h *Headers) Has(key string) bool {
	_, ok := h.fields[normalizeKey(key)]
	return ok
}

// Remove deletes a header field.
func (h *Headers) Remove(key string) {
	delete(h.fields, normalizeKey(key))
}

// All returns an iterator over all header fields.
func (h *Headers) All() iter.Seq2[string, string] {
	return maps.All(h.fields)
}

// Size returns the number of header fields.
func (h *Headers) Size() int {
	return len(h.fields)
}

// Clone returns an independent copy of the headers.
func (h *Headers) Clone() *Headers {
	return &Headers{fields: maps.Clone(h.fields)}
}
