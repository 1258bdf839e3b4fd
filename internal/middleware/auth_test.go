package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"supaportal/backend/internal/app"
	"supaportal/backend/internal/supabase"
)

type fakeVerifier struct {
	users map[string]*app.User
	calls int
}

func (f *fakeVerifier) VerifyToken(_ context.Context, token string) (*app.User, error) {
	f.calls++
	if token == "down" {
		return nil, errors.New("supabase auth: connection refused")
	}
	if u, ok := f.users[token]; ok {
		return u, nil
	}
	return nil, supabase.ErrUnauthorized
}

func TestWithAuth(t *testing.T) {
	v := &fakeVerifier{users: map[string]*app.User{"good": {ID: "u-1", Email: "a@example.com"}}}

	var seen *app.Locals
	h := WithAuth(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = app.LocalsFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no_header", "", http.StatusUnauthorized},
		{"not_bearer", "Basic abc", http.StatusUnauthorized},
		{"empty_token", "Bearer   ", http.StatusUnauthorized},
		{"bad_token", "Bearer nope", http.StatusUnauthorized},
		{"auth_api_down", "Bearer down", http.StatusBadGateway},
		{"good_token", "Bearer good", http.StatusNoContent},
		{"lowercase_scheme", "bearer good", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want != http.StatusNoContent {
				var body app.Error
				if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || body.Message == "" {
					t.Fatalf("expected JSON error body, got %q (%v)", rec.Body.String(), err)
				}
				if seen != nil {
					t.Fatal("handler must not run on rejected requests")
				}
				return
			}
			if seen == nil || seen.User.ID != "u-1" || seen.AccessToken != "good" {
				t.Fatalf("locals = %+v", seen)
			}
		})
	}
}

func TestWithPlatform(t *testing.T) {
	var got app.Platform
	h := WithPlatform(app.Platform{Service: "api", Environment: "test"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = app.PlatformFrom(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got.Service != "api" || got.Environment != "test" {
		t.Fatalf("platform = %+v", got)
	}
}

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		user *app.User
		want bool
	}{
		{"nil", nil, false},
		{"no_metadata", &app.User{ID: "u"}, false},
		{"flag", &app.User{AppMetadata: map[string]any{"admin": true}}, true},
		{"role", &app.User{AppMetadata: map[string]any{"role": "admin"}}, true},
		{"roles", &app.User{AppMetadata: map[string]any{"roles": []interface{}{"staff", "admin"}}}, true},
		{"other_role", &app.User{AppMetadata: map[string]any{"role": "member"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAdmin(tt.user); got != tt.want {
				t.Errorf("IsAdmin = %v, want %v", got, tt.want)
			}
		})
	}
}
