package http

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestNewsHandlerPublishAndList(t *testing.T) {
	env := setupTestRouter([]string{"admin@x.com"})
	adminToken := registerAndConfirm(t, env, "Admin", "admin@x.com")

	rec := performRequest(env.router, http.MethodPost, "/api/news", map[string]string{
		"title":       "Lancamento",
		"description": "Nova versao no ar",
	}, adminToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("publish: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	// A listagem é publica.
	rec = performRequest(env.router, http.MethodGet, "/api/news", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var resp struct {
		News []struct {
			ID          string `json:"id"`
			AuthorEmail string `json:"author_email"`
			Title       string `json:"title"`
		} `json:"news"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode news: %v", err)
	}
	if len(resp.News) != 1 || resp.News[0].Title != "Lancamento" || resp.News[0].AuthorEmail != "admin@x.com" {
		t.Fatalf("unexpected news: %s", rec.Body.String())
	}

	rec = performRequest(env.router, http.MethodDelete, "/api/news/"+resp.News[0].ID, nil, adminToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = performRequest(env.router, http.MethodGet, "/api/news", nil, "")
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode news: %v", err)
	}
	if len(resp.News) != 0 {
		t.Fatalf("expected empty news after delete, got %s", rec.Body.String())
	}
}

func TestNewsHandlerPublishForbiddenForNonAdmin(t *testing.T) {
	env := setupTestRouter([]string{"admin@x.com"})
	token := registerAndConfirm(t, env, "Ana", "ana@x.com")

	rec := performRequest(env.router, http.MethodPost, "/api/news", map[string]string{
		"title": "Intrusa",
	}, token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestNewsHandlerDeleteUnknownID(t *testing.T) {
	env := setupTestRouter([]string{"admin@x.com"})
	adminToken := registerAndConfirm(t, env, "Admin", "admin@x.com")

	rec := performRequest(env.router, http.MethodDelete, "/api/news/nao-existe", nil, adminToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
