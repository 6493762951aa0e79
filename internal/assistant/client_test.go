package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Soulima01/Pranaya/internal/store"
)

func TestChatDecodesRoutedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("request body: %v", err)
		}
		if req.Message != "I drank 500ml" || req.UserID != "u1" {
			t.Errorf("request = %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "success",
			"routed_to": "tracker",
			"response": {"type": "tracker_log", "message": "Logged.", "data": {"category": "water", "quantity": "500ml", "extra": true}},
			"suggestions": ["How much should I drink?"]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	res, err := client.Chat(context.Background(), ChatRequest{
		Message: "I drank 500ml",
		UserID:  "u1",
		History: []string{"[PROFILE] Name:Asha"},
		Gender:  "Female",
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if res.RoutedTo != RouteTracker {
		t.Errorf("routed_to = %q", res.RoutedTo)
	}
	if res.Response.Message != "Logged." {
		t.Errorf("message = %q", res.Response.Message)
	}
	if len(res.Response.Data) == 0 {
		t.Error("data not carried through")
	}
	if len(res.Suggestions) != 1 {
		t.Errorf("suggestions = %v", res.Suggestions)
	}
}

func TestChatToleratesSparseResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routed_to": "something_new"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	res, err := client.Chat(context.Background(), ChatRequest{Message: "hi"})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if res.RoutedTo != "something_new" || res.Response.Message != "" || res.Suggestions != nil {
		t.Errorf("res = %+v", res)
	}
}

func TestChatErrorOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	if _, err := client.Chat(context.Background(), ChatRequest{Message: "hi"}); err == nil {
		t.Fatal("expected error on 500 response")
	}
}

func TestChatErrorOnUnreachableServer(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 500*time.Millisecond)
	if _, err := client.Chat(context.Background(), ChatRequest{Message: "hi"}); err == nil {
		t.Fatal("expected error when assistant is unreachable")
	}
}

func TestHealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"status": "online"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	if !client.Healthy(context.Background()) {
		t.Error("Healthy = false for an answering server")
	}

	down := NewClient("http://127.0.0.1:1", 500*time.Millisecond)
	if down.Healthy(context.Background()) {
		t.Error("Healthy = true for an unreachable server")
	}
}

func TestProfileContext(t *testing.T) {
	p := store.Profile{
		Name:       "Asha",
		Age:        "34",
		Weight:     "70",
		Gender:     store.GenderFemale,
		IsDiabetic: "Type 2",
	}
	got := ProfileContext(p)
	want := "[PROFILE] Name:Asha, Age:34, Weight:70, Gender:Female, Diabetic:Type 2"
	if got != want {
		t.Errorf("ProfileContext = %q, want %q", got, want)
	}
}
