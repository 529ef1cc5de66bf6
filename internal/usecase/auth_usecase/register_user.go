package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"nubereats/internal/domain/model"
	"nubereats/internal/repository"
	"nubereats/internal/usecase"
	"nubereats/internal/validator"

	"golang.org/x/crypto/bcrypt"
)

// 会員登録の入力
type RegisterUserInput struct {
	Email    string
	Password string
	Role     model.Role
}

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 認証コードを作る約束（UUID）
type IDGenerator interface {
	NewID() string
}

// 認証メールの送信
type VerificationMailer interface {
	SendVerificationEmail(ctx context.Context, to, code string) error
}

const mailTimeout = 10 * time.Second

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	tx     repository.TransactionManager
	users  repository.UserRepository
	hasher PasswordHasher
	idGen  IDGenerator
	mailer VerificationMailer
	logger *slog.Logger
}

// DI
func NewRegisterUserUsecase(
	tx repository.TransactionManager,
	users repository.UserRepository,
	hasher PasswordHasher,
	idGen IDGenerator,
	mailer VerificationMailer,
	logger *slog.Logger,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		tx:     tx,
		users:  users,
		hasher: hasher,
		idGen:  idGen,
		mailer: mailer,
		logger: logger,
	}
}

// 会員登録実行（ユーザーと認証コードを1トランザクションで作り、commit後にメール）
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (err error) {
	defer usecase.CatchError(&err, "Couldn't create account")

	email := strings.TrimSpace(in.Email)
	if err := validator.ValidateAccount(email, in.Password, in.Role); err != nil {
		return usecase.InvalidInput(err.Error())
	}

	// email重複チェック
	_, err = u.users.FindByEmail(ctx, email)
	if err == nil {
		return errEmailTaken()
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return err
	}

	code := u.idGen.NewID()
	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		user := &model.User{
			Email:        email,
			PasswordHash: hashed,
			Role:         in.Role,
		}
		if err := r.Users().Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrAlreadyExists) {
				return errEmailTaken()
			}
			return err
		}
		return r.Verifications().Create(ctx, &model.Verification{Code: code, UserID: user.ID})
	})
	if err != nil {
		return err
	}

	sendVerification(ctx, u.mailer, u.logger, email, code)
	return nil
}

func errEmailTaken() error {
	return usecase.AlreadyExists("There is a user with that email already")
}

// commit後に呼ぶ。失敗はログだけ
func sendVerification(ctx context.Context, mailer VerificationMailer, logger *slog.Logger, to, code string) {
	if mailer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mailTimeout)
	defer cancel()

	if err := mailer.SendVerificationEmail(ctx, to, code); err != nil {
		logger.WarnContext(ctx, "verification mail failed",
			slog.String("to", to),
			slog.Any("error", err),
		)
	}
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}
