package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"furniture-store/internal/apperror"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantMsg string
	}{
		{"Bearer abc", "abc", ""},
		{"bearer abc", "abc", ""},
		{"BEARER   abc  ", "abc", ""},
		{"\tBearer abc", "abc", ""},
		{"", "", "missing authorization header"},
		{"   ", "", "missing authorization header"},
		{"Bearer", "", "invalid token"},
		{"Basic dXNlcjpwYXNz", "", "invalid token"},
		{"Bearer a b", "", "invalid token"},
		{"abc", "", "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if tt.wantMsg == "" {
				if err != nil || got != tt.want {
					t.Fatalf("BearerToken() = %q, %v; want %q", got, err, tt.want)
				}
				return
			}
			var appErr *apperror.Error
			if !errors.As(err, &appErr) || appErr.Kind != apperror.KindAuth || appErr.Message != tt.wantMsg {
				t.Fatalf("BearerToken() error = %v, want auth %q", err, tt.wantMsg)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com")
	header := env.login(t, "alice")

	principal, err := env.gate.Authorize(ctx, header)
	if err != nil {
		t.Fatalf("Authorize() error = %v", err)
	}
	if principal.UserID != alice || principal.Username != "alice" || principal.TokenID == "" {
		t.Fatalf("principal = %+v", principal)
	}
}

func TestAuthorizeRejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "alice", "alice@example.com")

	ghost, _ := env.tokens.Issue("ghost")

	issuedAt := time.Now().Add(-3 * time.Hour)
	env.tokens.Now = fixedNow(issuedAt)
	expired, _ := env.tokens.Issue("alice")
	env.tokens.Now = time.Now

	valid, _ := env.tokens.Issue("alice")

	revoked, _ := env.tokens.Issue("alice")
	principal, err := env.gate.Authorize(ctx, "Bearer "+revoked.Token)
	if err != nil {
		t.Fatalf("Authorize() error = %v", err)
	}
	if err := env.auth.Logout(ctx, principal); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	tests := []struct {
		name     string
		header   string
		wantKind apperror.Kind
		wantMsg  string
	}{
		{"missing header", "", apperror.KindAuth, "missing authorization header"},
		{"garbage token", "Bearer garbage", apperror.KindAuth, "invalid token"},
		{"tampered", "Bearer " + valid.Token + "x", apperror.KindAuth, "invalid token"},
		{"expired", "Bearer " + expired.Token, apperror.KindAuth, "invalid token"},
		{"expired and tampered", "Bearer " + expired.Token + "x", apperror.KindAuth, "invalid token"},
		{"revoked", "Bearer " + revoked.Token, apperror.KindAuth, "invalid token"},
		{"unknown user", "Bearer " + ghost.Token, apperror.KindNotFound, "user not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.gate.Authorize(ctx, tt.header)
			var appErr *apperror.Error
			if !errors.As(err, &appErr) || appErr.Kind != tt.wantKind || appErr.Message != tt.wantMsg {
				t.Fatalf("Authorize() error = %v, want %s %q", err, tt.wantKind, tt.wantMsg)
			}
		})
	}
}

func TestAuthorizeWithoutRevocation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "alice", "alice@example.com")
	header := env.login(t, "alice")

	gate := NewAccessGate(env.tokens, env.repo.User, nil, zapNop())
	auth := NewAuthService(env.repo.User, nil, env.tokens, zapNop())

	principal, err := gate.Authorize(ctx, header)
	if err != nil {
		t.Fatalf("Authorize() error = %v", err)
	}
	if err := auth.Logout(ctx, principal); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := gate.Authorize(ctx, header); err != nil {
		t.Fatalf("token should stay valid without revocation: %v", err)
	}
}
