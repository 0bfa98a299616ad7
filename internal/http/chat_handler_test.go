package http

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestChatHandlerSendAndConversation(t *testing.T) {
	env := setupTestRouter(nil)
	anaToken := registerAndConfirm(t, env, "Ana", "ana@x.com")
	brunoToken := registerAndConfirm(t, env, "Bruno", "bruno@x.com")

	rec := performRequest(env.router, http.MethodPost, "/api/chat/messages", map[string]string{
		"to":      "bruno@x.com",
		"content": "oi Bruno",
	}, anaToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("send: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = performRequest(env.router, http.MethodPost, "/api/chat/messages", map[string]string{
		"to":      "ana@x.com",
		"content": "oi Ana",
	}, brunoToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("send: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	// Os dois lados veem a mesma conversa, em ordem de envio.
	for _, tc := range []struct {
		token string
		other string
	}{
		{anaToken, "bruno@x.com"},
		{brunoToken, "ana@x.com"},
	} {
		rec = performRequest(env.router, http.MethodGet, "/api/chat/with/"+tc.other, nil, tc.token)
		if rec.Code != http.StatusOK {
			t.Fatalf("conversation: expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		var resp struct {
			Messages []struct {
				FromEmail string `json:"from_email"`
				Content   string `json:"content"`
			} `json:"messages"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode conversation: %v", err)
		}
		if len(resp.Messages) != 2 {
			t.Fatalf("expected 2 messages, got %s", rec.Body.String())
		}
		if resp.Messages[0].Content != "oi Bruno" || resp.Messages[1].Content != "oi Ana" {
			t.Fatalf("unexpected order: %s", rec.Body.String())
		}
	}
}

func TestChatHandlerSendToUnknownUser(t *testing.T) {
	env := setupTestRouter(nil)
	token := registerAndConfirm(t, env, "Ana", "ana@x.com")

	rec := performRequest(env.router, http.MethodPost, "/api/chat/messages", map[string]string{
		"to":      "ghost@x.com",
		"content": "oi",
	}, token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestChatHandlerSendToSelf(t *testing.T) {
	env := setupTestRouter(nil)
	token := registerAndConfirm(t, env, "Ana", "ana@x.com")

	rec := performRequest(env.router, http.MethodPost, "/api/chat/messages", map[string]string{
		"to":      "ana@x.com",
		"content": "oi eu",
	}, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
