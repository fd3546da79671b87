package headers

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseInsensitivity(t *testing.T) {
	h := NewHeaders()
	h.Set("Content-Type", "text/plain")

	assert.Equal(t, "text/plain", h.Get("content-type"))
	assert.Equal(t, "text/plain", h.Get("CONTENT-TYPE"))
	assert.Equal(t, "text/plain", h.Get("Content-Type"))
	assert.True(t, h.Has("cOnTeNt-TyPe"))

	h.Remove("CONTENT-type")
	assert.False(t, h.Has("content-type"))
	assert.Equal(t, "", h.Get("Content-Type"))
}

func TestAddAppendsWithComma(t *testing.T) {
	h := NewHeaders()
	h.Add("Accept", "text/html")
	h.Add("accept", "application/json")

	assert.Equal(t, "text/html, application/json", h.Get("Accept"))
	assert.Equal(t, 1, h.Size())
}

func TestSetReplaces(t *testing.T) {
	h := NewHeaders()
	h.Add("X-Count", "1")
	h.Set("x-count", "2")

	assert.Equal(t, "2", h.Get("X-Count"))
}

func TestInvalidFieldsDropped(t *testing.T) {
	invalid := []struct {
		key, value string
	}{
		{"Invalid Name", "value"},      // space in name
		{"Bad:Colon", "value"},         // colon in name
		{"", "value"},                   // empty name
		{"X-Split", "evil\r\ninjected"}, // CR/LF in value
	}

	for _, tc := range invalid {
		h := NewHeaders()
		h.Add(tc.key, tc.value)
		assert.Equal(t, 0, h.Size(), "field %q should have been dropped", tc.key)
	}
}

func TestParseFieldLine(t *testing.T) {
	h := NewHeaders()
	require.NoError(t, h.ParseFieldLine([]byte("Host: localhost:8080")))
	assert.Equal(t, "localhost:8080", h.Get("host"))

	// extra whitespace around the value is trimmed
	h = NewHeaders()
	require.NoError(t, h.ParseFieldLine([]byte("Host:   localhost:8080   ")))
	assert.Equal(t, "localhost:8080", h.Get("Host"))

	// whitespace between key and colon is invalid
	// https://datatracker.ietf.org/doc/html/rfc9112#section-5
	h = NewHeaders()
	require.Error(t, h.ParseFieldLine([]byte("Host : localhost:8080")))

	// no colon at all
	h = NewHeaders()
	require.Error(t, h.ParseFieldLine([]byte("no colon here")))

	// invalid byte in key
	h = NewHeaders()
	require.Error(t, h.ParseFieldLine([]byte("HÂ©st: localhost")))

	// repeated field accumulates
	h = NewHeaders()
	require.NoError(t, h.ParseFieldLine([]byte("Accept: text/html")))
	require.NoError(t, h.ParseFieldLine([]byte("Accept: application/json")))
	assert.Equal(t, "text/html, application/json", h.Get("Accept"))
}

func TestClone(t *testing.T) {
	h := NewHeaders()
	h.Set("a", "1")
	h.Set("b", "2")

	c := h.Clone()
	c.Set("a", "changed")
	c.Set("c", "3")

	assert.Equal(t, "1", h.Get("a"))
	assert.False(t, h.Has("c"))
	assert.Equal(t, "changed", c.Get("a"))
}

func TestAll(t *testing.T) {
	h := NewHeaders()
	h.Set("a", "1")
	h.Set("b", "2")

	got := maps.Collect(h.All())
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, got)
}
