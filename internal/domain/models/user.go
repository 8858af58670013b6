package models

import (
	"context"

	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
)

// User is the caller identity taken from a verified bearer token.
type User struct {
	ID   string         `json:"id"`
	Role types.UserRole `json:"role"`
}

func AnonymousUser() *User {
	return &User{Role: types.RoleAnonymous}
}

func (u *User) IsAnonymous() bool {
	return u == nil || u.Role == types.RoleAnonymous
}

type userCtxKey struct{}

func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns the user stored by the auth middleware, or nil.
func UserFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userCtxKey{}).(*User)
	return u
}
