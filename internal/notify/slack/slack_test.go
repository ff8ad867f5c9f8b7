package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeSlack serves the three Web API calls the notifier makes.
func fakeSlack(t *testing.T, posted *map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer xoxb-test" {
			t.Errorf("auth header = %q", got)
		}
		switch r.URL.Path {
		case "/users.lookupByEmail":
			if r.URL.Query().Get("email") != "operator@example.com" {
				t.Errorf("email = %q", r.URL.Query().Get("email"))
			}
			w.Write([]byte(`{"ok":true,"user":{"id":"U123"}}`))
		case "/conversations.open":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["users"] != "U123" {
				t.Errorf("users = %q, want U123", body["users"])
			}
			w.Write([]byte(`{"ok":true,"channel":{"id":"D456"}}`))
		case "/chat.postMessage":
			json.NewDecoder(r.Body).Decode(posted)
			w.Write([]byte(`{"ok":true}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestSend_ThreeCallFlow(t *testing.T) {
	posted := map[string]string{}
	srv := fakeSlack(t, &posted)
	defer srv.Close()

	n := New(srv.URL, "xoxb-test", "operator@example.com")
	lines := []string{"Waste drawer is 82% full. Please change ASAP.", "second alert"}
	if err := n.Send(context.Background(), "ignored subject", lines); err != nil {
		t.Fatalf("Send error: %v", err)
	}

	if posted["channel"] != "D456" {
		t.Fatalf("channel = %q, want D456", posted["channel"])
	}
	if posted["text"] != strings.Join(lines, "\n") {
		t.Fatalf("text = %q, want joined lines in order", posted["text"])
	}
}

func TestSend_SurfacesSlackError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"error":"users_not_found"}`))
	}))
	defer srv.Close()

	n := New(srv.URL, "xoxb-test", "nobody@example.com")
	err := n.Send(context.Background(), "", []string{"alert"})
	if err == nil || !strings.Contains(err.Error(), "users_not_found") {
		t.Fatalf("error = %v, want users_not_found surfaced", err)
	}
}

func TestSend_SurfacesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	n := New(srv.URL, "xoxb-test", "operator@example.com")
	if err := n.Send(context.Background(), "", []string{"alert"}); err == nil {
		t.Fatal("expected error for HTTP 503")
	}
}
