package session

import (
	"context"

	"nubereats/internal/domain/model"
)

type ctxKey struct{}

// 認証済みユーザーをctxに載せる
func WithUser(ctx context.Context, u model.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

func UserFromContext(ctx context.Context) (model.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(model.User)
	return u, ok
}
