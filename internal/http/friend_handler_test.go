package http

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestFriendHandlerInviteAcceptFlow(t *testing.T) {
	env := setupTestRouter(nil)
	anaToken := registerAndConfirm(t, env, "Ana", "ana@x.com")
	brunoToken := registerAndConfirm(t, env, "Bruno", "bruno@x.com")

	rec := performRequest(env.router, http.MethodPost, "/api/friends/invite", map[string]string{
		"email": "bruno@x.com",
	}, anaToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("invite: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = performRequest(env.router, http.MethodGet, "/api/friends/invites", nil, brunoToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("list invites: expected 200, got %d", rec.Code)
	}
	var invResp struct {
		Invites []struct {
			Email    string `json:"email"`
			Username string `json:"username"`
		} `json:"invites"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &invResp); err != nil {
		t.Fatalf("decode invites: %v", err)
	}
	if len(invResp.Invites) != 1 || invResp.Invites[0].Email != "ana@x.com" {
		t.Fatalf("unexpected invites: %s", rec.Body.String())
	}

	rec = performRequest(env.router, http.MethodPost, "/api/friends/accept", map[string]string{
		"email": "ana@x.com",
	}, brunoToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("accept: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	// A amizade vale para os dois lados.
	for _, tc := range []struct {
		token  string
		friend string
	}{
		{anaToken, "bruno@x.com"},
		{brunoToken, "ana@x.com"},
	} {
		rec = performRequest(env.router, http.MethodGet, "/api/friends", nil, tc.token)
		if rec.Code != http.StatusOK {
			t.Fatalf("list friends: expected 200, got %d", rec.Code)
		}
		var frResp struct {
			Friends []struct {
				Email string `json:"email"`
			} `json:"friends"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &frResp); err != nil {
			t.Fatalf("decode friends: %v", err)
		}
		if len(frResp.Friends) != 1 || frResp.Friends[0].Email != tc.friend {
			t.Fatalf("unexpected friends: %s", rec.Body.String())
		}
	}
}

func TestFriendHandlerInviteUnknownUser(t *testing.T) {
	env := setupTestRouter(nil)
	token := registerAndConfirm(t, env, "Ana", "ana@x.com")

	rec := performRequest(env.router, http.MethodPost, "/api/friends/invite", map[string]string{
		"email": "ghost@x.com",
	}, token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestFriendHandlerDuplicateInvite(t *testing.T) {
	env := setupTestRouter(nil)
	anaToken := registerAndConfirm(t, env, "Ana", "ana@x.com")
	registerAndConfirm(t, env, "Bruno", "bruno@x.com")

	body := map[string]string{"email": "bruno@x.com"}
	rec := performRequest(env.router, http.MethodPost, "/api/friends/invite", body, anaToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("invite: expected 200, got %d", rec.Code)
	}
	rec = performRequest(env.router, http.MethodPost, "/api/friends/invite", body, anaToken)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d", rec.Code)
	}
}

func TestFriendHandlerRemoveFriend(t *testing.T) {
	env := setupTestRouter(nil)
	anaToken := registerAndConfirm(t, env, "Ana", "ana@x.com")
	brunoToken := registerAndConfirm(t, env, "Bruno", "bruno@x.com")

	rec := performRequest(env.router, http.MethodPost, "/api/friends/invite", map[string]string{"email": "bruno@x.com"}, anaToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("invite: expected 200, got %d", rec.Code)
	}
	rec = performRequest(env.router, http.MethodPost, "/api/friends/accept", map[string]string{"email": "ana@x.com"}, brunoToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("accept: expected 200, got %d", rec.Code)
	}

	rec = performRequest(env.router, http.MethodPost, "/api/friends/remove", map[string]string{"email": "bruno@x.com"}, anaToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = performRequest(env.router, http.MethodGet, "/api/friends", nil, brunoToken)
	var frResp struct {
		Friends []struct {
			Email string `json:"email"`
		} `json:"friends"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &frResp); err != nil {
		t.Fatalf("decode friends: %v", err)
	}
	if len(frResp.Friends) != 0 {
		t.Fatalf("expected no friends after removal, got %s", rec.Body.String())
	}
}

func TestFriendHandlerRequiresAuth(t *testing.T) {
	env := setupTestRouter(nil)

	rec := performRequest(env.router, http.MethodGet, "/api/friends", nil, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
