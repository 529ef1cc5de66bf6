package repository

import (
	"context"
	"errors"

	"nubereats/internal/domain/model"
)

// 見つからないを統一
var ErrNotFound = errors.New("not found")

// 一意制約違反（email重複など）
var ErrAlreadyExists = errors.New("already exists")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（email重複はErrAlreadyExists）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// email / password / verified の更新
	Update(ctx context.Context, user *model.User) error
}

// メール認証コードの保存・取得
type VerificationRepository interface {
	Create(ctx context.Context, v *model.Verification) error
	//コードから取得（Userも一緒に読む）
	FindByCode(ctx context.Context, code string) (*model.Verification, error)
	DeleteByUserID(ctx context.Context, userID int64) error
}
