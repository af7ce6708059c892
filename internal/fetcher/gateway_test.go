package fetcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillsense-go/internal/errs"
)

func TestExtractJSON(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fence with prose", "Here is the result:\n```json\n{\"a\": 1}\n```\nHope it helps", `{"a": 1}`},
		{"no fence braces", `The answer is {"a": 1} as requested`, `{"a": 1}`},
		{"plain json", `{"a": 1}`, `{"a": 1}`},
		{"no json at all", "no structured data here", "no structured data here"},
	}

	for _, tc := range testCases {
		if got := ExtractJSON(tc.input); got != tc.want {
			t.Errorf("%s: ExtractJSON(%q) = %q, want %q", tc.name, tc.input, got, tc.want)
		}
	}
}

func TestChatJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want Bearer test-key", got)
		}

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req["model"] != "test-model" {
			t.Errorf("model = %v, want test-model", req["model"])
		}
		if rf, ok := req["response_format"].(map[string]interface{}); !ok || rf["type"] != "json_object" {
			t.Errorf("response_format = %v, want json_object", req["response_format"])
		}
		if msgs, ok := req["messages"].([]interface{}); !ok || len(msgs) != 2 {
			t.Errorf("messages = %v, want system plus user", req["messages"])
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"ok": true}`}},
			},
		})
	}))
	defer srv.Close()

	client := NewGatewayClient(srv.URL, "test-key", "test-model")
	content, err := client.ChatJSON(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("ChatJSON failed: %v", err)
	}
	if content != `{"ok": true}` {
		t.Errorf("content = %q", content)
	}
}

func TestChatJSONGatewayErrors(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"rate limited", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		}},
		{"no choices", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
		}},
	}

	for _, tc := range testCases {
		srv := httptest.NewServer(tc.handler)
		client := NewGatewayClient(srv.URL, "key", "test-model")

		_, err := client.ChatJSON(context.Background(), "system", "user")
		if !errs.Is(err, errs.GatewayError) {
			t.Errorf("%s: error kind = %v, want GatewayError", tc.name, errs.KindOf(err))
		}
		srv.Close()
	}
}
