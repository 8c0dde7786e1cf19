package aiprovider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_StreamChatHappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing/incorrect Authorization header: %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "text/event-stream")
		chunks := []string{"Hello", ", ", "world", "!"}
		for _, c := range chunks {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", c)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL, APIKey: "test-key", Model: "gpt-test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var tokens []string
	got, err := client.StreamChat(context.Background(), []Message{{Role: "user", Content: "hi"}}, func(s string) {
		tokens = append(tokens, s)
	})
	if err != nil {
		t.Fatalf("StreamChat: %v", err)
	}
	if got != "Hello, world!" {
		t.Fatalf("got %q", got)
	}
	if len(tokens) != 4 {
		t.Fatalf("expected 4 token callbacks, got %d", len(tokens))
	}
}

func TestClient_NonOKStatusAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "boom")
	}))
	defer srv.Close()

	client, _ := New(Config{BaseURL: srv.URL, APIKey: "k", Model: "m"})
	_, err := client.StreamChat(context.Background(), nil, nil)
	var httpErr *ProviderHTTPError
	if err == nil {
		t.Fatal("expected error")
	}
	if !asProviderHTTPError(err, &httpErr) {
		t.Fatalf("expected ProviderHTTPError, got %T: %v", err, err)
	}
	if httpErr.StatusCode != 500 {
		t.Fatalf("expected 500, got %d", httpErr.StatusCode)
	}
}

func TestClient_AuthErrorOn401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, _ := New(Config{BaseURL: srv.URL, APIKey: "bad", Model: "m"})
	_, err := client.StreamChat(context.Background(), nil, nil)
	if _, ok := err.(*ProviderAuthError); !ok {
		t.Fatalf("expected ProviderAuthError, got %T: %v", err, err)
	}
}

func TestClient_CancellationSurfacesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"partial\"}}]}\n\n")
	}))
	defer srv.Close()

	client, _ := New(Config{BaseURL: srv.URL, APIKey: "k", Model: "m"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // already cancelled before the request is ever sent
	_, err := client.StreamChat(ctx, nil, nil)
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestNew_RejectsMissingConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected config error for empty Config")
	}
}

func asProviderHTTPError(err error, target **ProviderHTTPError) bool {
	if e, ok := err.(*ProviderHTTPError); ok {
		*target = e
		return true
	}
	return false
}
