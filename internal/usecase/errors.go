package usecase

import (
	"errors"
	"fmt"
)

// エラーの種類（メッセージ文字列ではなくこれで分岐する）
type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"
	KindForbidden         Kind = "FORBIDDEN"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	KindAlreadyExists     Kind = "ALREADY_EXISTS"
	KindInvalidInput      Kind = "INVALID_INPUT"
	KindUnexpected        Kind = "UNEXPECTED"
)

// usecaseが返すエラー。Messageはそのままクライアントに返す
type Error struct {
	Kind    Kind
	Message string
	Err     error // 元のエラー（ログ用）
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) error          { return NewError(KindNotFound, message) }
func Forbidden(message string) error         { return NewError(KindForbidden, message) }
func InvalidTransition(message string) error { return NewError(KindInvalidTransition, message) }
func AlreadyExists(message string) error     { return NewError(KindAlreadyExists, message) }
func InvalidInput(message string) error      { return NewError(KindInvalidInput, message) }

func Unexpected(message string, err error) error {
	return &Error{Kind: KindUnexpected, Message: message, Err: err}
}

func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// usecase.Error以外はUnexpected
func KindOf(err error) Kind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return KindUnexpected
}

// 各操作の最後にdeferで呼ぶ。
// panicやDBエラーはmessageのUnexpectedに包む（生のエラーは外に出さない）
func CatchError(errp *error, message string) {
	if r := recover(); r != nil {
		*errp = Unexpected(message, fmt.Errorf("panic: %v", r))
		return
	}
	if *errp == nil {
		return
	}
	if _, ok := AsError(*errp); ok {
		return
	}
	*errp = Unexpected(message, *errp)
}
