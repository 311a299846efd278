package suggest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChatOracle_Suggest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("model = %q", req.Model)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": `{"0":1,"1":2}`}},
			},
		})
	}))
	defer srv.Close()

	oracle := NewChatOracle(srv.URL, "test-key", "test-model")

	var plan map[string]int
	if err := oracle.Suggest(context.Background(), "distribute", &plan); err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}

	if plan["0"] != 1 || plan["1"] != 2 {
		t.Errorf("plan = %v", plan)
	}
}

func TestChatOracle_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "sorry, I cannot help"}},
			},
		})
	}))
	defer srv.Close()

	oracle := NewChatOracle(srv.URL, "k", "m")

	var plan map[string]int
	if err := oracle.Suggest(context.Background(), "distribute", &plan); err == nil {
		t.Error("expected error for non-JSON oracle reply")
	}
}

func TestChatOracle_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	oracle := NewChatOracle(srv.URL, "k", "m")

	var plan map[string]int
	if err := oracle.Suggest(context.Background(), "distribute", &plan); err == nil {
		t.Error("expected error for 500 response")
	}
}
