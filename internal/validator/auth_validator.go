package validator

import (
	"errors"
	"net/mail"
	"strings"

	"nubereats/internal/domain/model"
)

var (
	// 入力が不正
	ErrInvalidEmail    = errors.New("Email is not valid")
	ErrPasswordTooWeak = errors.New("Password must be at least 8 characters")
	ErrInvalidRole     = errors.New("Role is not valid")
)

const minPasswordLength = 8

// アカウント作成の入力を検証
func ValidateAccount(email, password string, role model.Role) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if !role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

// email形式
func ValidateEmail(email string) error {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return ErrInvalidEmail
	}
	return nil
}

// パスワード最低文字数
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooWeak
	}
	return nil
}
