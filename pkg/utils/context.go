package utils

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	PrincipalKey contextKey = "principal"
)

// Principal is the identity the access gate resolved for a request.
type Principal struct {
	UserID    uuid.UUID
	Username  string
	TokenID   string
	ExpiresAt time.Time
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	p, ok := GetPrincipalFromContext(ctx)
	if !ok || p.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return p.UserID, true
}

func GetPrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(*Principal)
	return p, ok && p != nil
}

func SetPrincipalContext(ctx context.Context, p *Principal) context.Context {
	ctx = context.WithValue(ctx, PrincipalKey, p)
	return context.WithValue(ctx, UserIDKey, p.UserID.String())
}
