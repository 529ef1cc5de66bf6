package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"nubereats/internal/domain/model"
	"nubereats/internal/repository"
	"nubereats/internal/session"

	"github.com/labstack/echo/v4"
)

// JWTからユーザーIDを取り出す
type TokenVerifier interface {
	Verify(raw string) (int64, error)
}

// IDからユーザーを読む（UserRepositoryが満たす）
type UserLoader interface {
	FindByID(ctx context.Context, userID int64) (*model.User, error)
}

// トークンがあればユーザーをctxに載せる。なければ匿名のまま進む
// （ロールの確認はGraphQL側で操作ごとに行う）
func AuthJWT(verifier TokenVerifier, users UserLoader, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			raw := tokenFromHeader(req.Header.Get("Authorization"), req.Header.Get("x-jwt"))
			if raw == "" {
				return next(c)
			}

			userID, err := verifier.Verify(raw)
			if err != nil {
				return next(c)
			}

			user, err := users.FindByID(req.Context(), userID)
			if err != nil {
				if !errors.Is(err, repository.ErrNotFound) {
					logger.ErrorContext(req.Context(), "load user for token failed",
						slog.Int64("user_id", userID),
						slog.Any("error", err),
					)
				}
				return next(c)
			}

			//contextへ保存
			c.SetRequest(req.WithContext(session.WithUser(req.Context(), *user)))
			return next(c)
		}
	}
}

// Bearer形式を優先、なければx-jwt
func tokenFromHeader(authz, xjwt string) string {
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if tok := strings.TrimSpace(parts[1]); tok != "" {
			return tok
		}
	}
	return strings.TrimSpace(xjwt)
}
