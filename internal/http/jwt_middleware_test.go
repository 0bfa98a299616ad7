package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dudussm91/NuksEdition/internal/domain"
	"github.com/Dudussm91/NuksEdition/internal/service"
)

func setupProtectedRouter(jwtSvc *service.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(jwtSvc), func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no claims"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})
	return r
}

func TestJWTAuthMiddlewareValidToken(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", 15*time.Minute, time.Hour)
	pair, err := jwtSvc.GeneratePair(domain.Account{ID: "acc-1", Email: "ana@x.com", Username: "Ana"})
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	r := setupProtectedRouter(jwtSvc)
	rec := performRequest(r, http.MethodGet, "/protected", nil, pair.AccessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestJWTAuthMiddlewareMissingToken(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", 15*time.Minute, time.Hour)

	r := setupProtectedRouter(jwtSvc)
	rec := performRequest(r, http.MethodGet, "/protected", nil, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", 15*time.Minute, time.Hour)
	pair, err := jwtSvc.GeneratePair(domain.Account{ID: "acc-1", Email: "ana@x.com"})
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	r := setupProtectedRouter(jwtSvc)
	rec := performRequest(r, http.MethodGet, "/protected", nil, pair.RefreshToken)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthMiddlewareWrongSecret(t *testing.T) {
	other := service.NewJWTService("outro-segredo", 15*time.Minute, time.Hour)
	pair, err := other.GeneratePair(domain.Account{ID: "acc-1", Email: "ana@x.com"})
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	jwtSvc := service.NewJWTService("secret", 15*time.Minute, time.Hour)
	r := setupProtectedRouter(jwtSvc)
	rec := performRequest(r, http.MethodGet, "/protected", nil, pair.AccessToken)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
