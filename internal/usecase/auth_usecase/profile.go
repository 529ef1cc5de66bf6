package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"nubereats/internal/domain/model"
	"nubereats/internal/repository"
	"nubereats/internal/usecase"
	"nubereats/internal/validator"
)

// nilの項目は変更しない
type EditProfileInput struct {
	Email    *string
	Password *string
}

type ProfileUsecase struct {
	tx     repository.TransactionManager
	users  repository.UserRepository
	hasher PasswordHasher
	idGen  IDGenerator
	mailer VerificationMailer
	logger *slog.Logger
}

func NewProfileUsecase(
	tx repository.TransactionManager,
	users repository.UserRepository,
	hasher PasswordHasher,
	idGen IDGenerator,
	mailer VerificationMailer,
	logger *slog.Logger,
) *ProfileUsecase {
	return &ProfileUsecase{
		tx:     tx,
		users:  users,
		hasher: hasher,
		idGen:  idGen,
		mailer: mailer,
		logger: logger,
	}
}

func (u *ProfileUsecase) UserProfile(ctx context.Context, userID int64) (user model.User, err error) {
	defer usecase.CatchError(&err, "User not found")

	found, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.User{}, usecase.NotFound("User not found")
	}
	if err != nil {
		return model.User{}, err
	}
	return *found, nil
}

// email変更時はverifiedを戻して新しいコードを送る
func (u *ProfileUsecase) EditProfile(ctx context.Context, current model.User, in EditProfileInput) (updated model.User, err error) {
	defer usecase.CatchError(&err, "Could not update profile")

	updated = current
	var code string

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if err := validator.ValidateEmail(email); err != nil {
			return model.User{}, usecase.InvalidInput(err.Error())
		}
		if email != current.Email {
			updated.Email = email
			updated.Verified = false
			code = u.idGen.NewID()
		}
	}
	if in.Password != nil {
		if err := validator.ValidatePassword(*in.Password); err != nil {
			return model.User{}, usecase.InvalidInput(err.Error())
		}
		hashed, err := u.hasher.Hash(*in.Password)
		if err != nil {
			return model.User{}, err
		}
		updated.PasswordHash = hashed
	}

	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Users().Update(ctx, &updated); err != nil {
			if errors.Is(err, repository.ErrAlreadyExists) {
				return errEmailTaken()
			}
			if errors.Is(err, repository.ErrNotFound) {
				return usecase.NotFound("User not found")
			}
			return err
		}
		if code == "" {
			return nil
		}
		//古いコードを消してから作り直す（ユーザーにつき1件）
		if err := r.Verifications().DeleteByUserID(ctx, updated.ID); err != nil {
			return err
		}
		return r.Verifications().Create(ctx, &model.Verification{Code: code, UserID: updated.ID})
	})
	if err != nil {
		return model.User{}, err
	}

	if code != "" {
		sendVerification(ctx, u.mailer, u.logger, updated.Email, code)
	}
	return updated, nil
}
