package middleware

import (
	"encoding/base64"
	"testing"

	"github.com/tanayvk/conduit/request"
	"github.com/tanayvk/conduit/response"
)

func okHandler(_ *request.Request) response.Response {
	return response.NewBaseResponse()
}

func TestBasicAuth_NoHeader(t *testing.T) {
	mw := BasicAuth([]Account{{Username: "user", Password: "pass"}})
	handler := mw(okHandler)

	resp := handler(request.New(request.GET, "/"))

	if resp.GetStatusCode() != response.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.GetStatusCode())
	}
	if resp.GetHeaders().Get("www-authenticate") == "" {
		t.Fatalf("expected www-authenticate header to be set")
	}
}

func TestBasicAuth_InvalidBase64(t *testing.T) {
	mw := BasicAuth([]Account{{Username: "user", Password: "pass"}})
	handler := mw(okHandler)

	req := request.New(request.GET, "/")
	req.Headers.Add("Authorization", "Basic not-base64!!")

	resp := handler(req)

	if resp.GetStatusCode() != response.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.GetStatusCode())
	}
}

func TestBasicAuth_Malformed_NoColon(t *testing.T) {
	mw := BasicAuth([]Account{{Username: "user", Password: "pass"}})
	handler := mw(okHandler)

	req := request.New(request.GET, "/")
	payload := base64.StdEncoding.EncodeToString([]byte("useronly"))
	req.Headers.Add("Authorization", "Basic "+payload)

	resp := handler(req)

	if resp.GetStatusCode() != response.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.GetStatusCode())
	}
}

func TestBasicAuth_WrongCredentials(t *testing.T) {
	mw := BasicAuth([]Account{{Username: "user", Password: "pass"}})
	handler := mw(okHandler)

	req := request.New(request.GET, "/")
	payload := base64.StdEncoding.EncodeToString([]byte("user:wrong"))
	req.Headers.Add("Authorization", "Basic "+payload)

	resp := handler(req)

	if resp.GetStatusCode() != response.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.GetStatusCode())
	}
}

func TestBasicAuth_ValidCredentials(t *testing.T) {
	mw := BasicAuth([]Account{{Username: "user", Password: "pass"}})
	handlerRan := false
	handler := mw(func(_ *request.Request) response.Response {
		handlerRan = true
		return response.NewBaseResponse()
	})

	req := request.New(request.GET, "/")
	payload := base64.StdEncoding.EncodeToString([]byte("user:pass"))
	req.Headers.Add("Authorization", "Basic "+payload)

	resp := handler(req)

	if resp.GetStatusCode() != response.StatusOK {
		t.Fatalf("expected 200, got %d", resp.GetStatusCode())
	}
	if !handlerRan {
		t.Fatalf("expected the handler to run for valid credentials")
	}
}
