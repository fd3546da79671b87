package middleware

import (
	"testing"
	"time"

	"github.com/tanayvk/conduit/request"
	"github.com/tanayvk/conduit/response"
)

func TestTimeout_FastHandlerPasses(t *testing.T) {
	handler := Timeout(time.Second)(okHandler)

	resp := handler(request.New(request.GET, "/"))
	if resp.GetStatusCode() != response.StatusOK {
		t.Fatalf("expected 200, got %d", resp.GetStatusCode())
	}
}

func TestTimeout_SlowHandlerYields504(t *testing.T) {
	released := make(chan struct{})
	handler := Timeout(10 * time.Millisecond)(func(r *request.Request) response.Response {
		<-r.Context().Done()
		close(released)
		return response.NewTextResponse("too late")
	})

	resp := handler(request.New(request.GET, "/"))
	if resp.GetStatusCode() != response.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", resp.GetStatusCode())
	}

	// downstream observed cancellation and was abandoned
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatalf("downstream handler never observed cancellation")
	}
}

func TestTimeout_DownstreamPanicReraised(t *testing.T) {
	handler := Timeout(time.Second)(func(_ *request.Request) response.Response {
		panic("boom")
	})

	defer func() {
		if recover() == nil {
			t.Fatalf("expected the downstream panic to propagate")
		}
	}()
	handler(request.New(request.GET, "/"))
}
