package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewOpenAI_RequiresKey(t *testing.T) {
	if _, err := NewOpenAI(OpenAIOptions{}); err == nil {
		t.Fatal("expected error without api key")
	}
	if _, err := NewOpenAI(OpenAIOptions{APIKey: "   "}); err == nil {
		t.Fatal("expected error for blank api key")
	}
}

// chatStub emulates an OpenAI-compatible chat completion endpoint.
func chatStub(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			t.Error("missing Authorization header")
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAI_Complete(t *testing.T) {
	srv := chatStub(t, `{"category_id":"tech"}`)
	defer srv.Close()

	c, err := NewOpenAI(OpenAIOptions{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAI: %v", err)
	}
	got, err := c.Complete(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != `{"category_id":"tech"}` {
		t.Fatalf("content = %q", got)
	}
}

func TestOpenAI_Complete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c, err := NewOpenAI(OpenAIOptions{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAI: %v", err)
	}
	if _, err := c.Complete(context.Background(), "s", "u"); err != ErrEmptyCompletion {
		t.Fatalf("err = %v, want ErrEmptyCompletion", err)
	}
}

func TestOpenAI_Complete_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := NewOpenAI(OpenAIOptions{APIKey: "sk-test", BaseURL: srv.URL + "/v1", Timeout: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewOpenAI: %v", err)
	}
	if _, err := c.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected timeout error")
	}
}
