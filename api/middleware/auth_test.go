package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/relevant-recovery/recovery-backend/pkg/auth"
	"github.com/relevant-recovery/recovery-backend/pkg/config"
)

func adminAuthHandler(t *testing.T, jwtCfg config.JWTConfig, adminCfg config.AdminConfig, onRequest func(r *http.Request)) http.Handler {
	t.Helper()
	return AdminAuth(jwtCfg, adminCfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if onRequest != nil {
			onRequest(r)
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAdminAuthRejectsMissingToken(t *testing.T) {
	jwtCfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 10}
	adminCfg := config.AdminConfig{Email: "admin@example.org"}
	handler := adminAuthHandler(t, jwtCfg, adminCfg, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAdminAuthRejectsGarbageToken(t *testing.T) {
	jwtCfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 10}
	adminCfg := config.AdminConfig{Email: "admin@example.org"}
	handler := adminAuthHandler(t, jwtCfg, adminCfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAdminAuthRejectsWrongEmail(t *testing.T) {
	jwtCfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
	adminCfg := config.AdminConfig{Email: "admin@example.org"}
	token, err := auth.MintAdminToken(jwtCfg, time.Now(), "intruder@example.org")
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	handler := adminAuthHandler(t, jwtCfg, adminCfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestAdminAuthAllowsConfiguredAdmin(t *testing.T) {
	jwtCfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
	adminCfg := config.AdminConfig{Email: "Admin@Example.org"}
	token, err := auth.MintAdminToken(jwtCfg, time.Now(), "admin@example.org")
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	var seenEmail string
	handler := adminAuthHandler(t, jwtCfg, adminCfg, func(r *http.Request) {
		seenEmail = AdminEmailFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if seenEmail != "admin@example.org" {
		t.Fatalf("expected admin email in context, got %q", seenEmail)
	}
}

func TestAdminAuthAcceptsLegacyHeader(t *testing.T) {
	jwtCfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
	adminCfg := config.AdminConfig{Email: "admin@example.org"}
	token, err := auth.MintAdminToken(jwtCfg, time.Now(), "admin@example.org")
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	handler := adminAuthHandler(t, jwtCfg, adminCfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("x-auth-token", token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
