package auth

import (
	"context"
	"errors"
	"strings"

	"nubereats/internal/repository"
	"nubereats/internal/usecase"

	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	Email    string
	Password string
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// JWTを発行する約束
type TokenSigner interface {
	Sign(userID int64) (string, error)
}

type LoginUsecase struct {
	users    repository.UserRepository
	verifier PasswordVerifier
	signer   TokenSigner
}

func NewLoginUsecase(users repository.UserRepository, verifier PasswordVerifier, signer TokenSigner) *LoginUsecase {
	return &LoginUsecase{users: users, verifier: verifier, signer: signer}
}

// ログインしてトークンを返す
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (token string, err error) {
	defer usecase.CatchError(&err, "Couldn't log in")

	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if errors.Is(err, repository.ErrNotFound) {
		return "", usecase.NotFound("User not found")
	}
	if err != nil {
		return "", err
	}

	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return "", usecase.Forbidden("Wrong password")
	}
	return u.signer.Sign(user.ID)
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
