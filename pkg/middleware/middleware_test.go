package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"furniture-store/internal/apperror"
	"furniture-store/pkg/utils"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubGate struct {
	principal *utils.Principal
	err       error
	header    string
}

func (g *stubGate) Authorize(ctx context.Context, header string) (*utils.Principal, error) {
	g.header = header
	return g.principal, g.err
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var body utils.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestAuthenticateSetsPrincipal(t *testing.T) {
	want := &utils.Principal{UserID: uuid.New(), Username: "alice"}
	gate := &stubGate{principal: want}

	var got uuid.UUID
	h := Authenticate(gate, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = utils.GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if got != want.UserID {
		t.Fatalf("user id in context = %v, want %v", got, want.UserID)
	}
	if gate.header != "Bearer tok" {
		t.Fatalf("gate saw header %q", gate.header)
	}
}

func TestAuthenticateRejects(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"auth", apperror.Auth("invalid token"), http.StatusUnauthorized},
		{"user gone", apperror.NotFound("user not found"), http.StatusNotFound},
		{"storage", apperror.Persistence("failed to verify token", context.DeadlineExceeded), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := Authenticate(&stubGate{err: tt.err}, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

			if called {
				t.Fatal("next handler ran")
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if body := decode(t, rec); body.Success {
				t.Fatal("success = true on rejection")
			}
		})
	}
}

func TestRecoverWritesEnvelope(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decode(t, rec); body.Success || body.Error == "" {
		t.Fatalf("body = %+v", body)
	}
}

func TestLoggerStoresRequestLogger(t *testing.T) {
	fallback := zap.NewNop()
	var scoped *zap.Logger

	h := chimw.RequestID(Logger(fallback)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scoped = utils.LoggerFromContext(r.Context(), nil)
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if scoped == nil {
		t.Fatal("no request-scoped logger in context")
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://shop.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	tests := []struct {
		origin string
		allow  bool
	}{
		{"http://localhost:3000", true},
		{"http://127.0.0.1:5173", true},
		{"https://shop.example.com", true},
		{"https://evil.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/cart", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			got := rec.Header().Get("Access-Control-Allow-Origin")
			if tt.allow && got != tt.origin {
				t.Fatalf("Allow-Origin = %q, want %q", got, tt.origin)
			}
			if !tt.allow && got != "" {
				t.Fatalf("Allow-Origin = %q, want none", got)
			}
		})
	}
}
