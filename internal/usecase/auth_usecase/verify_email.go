package auth

import (
	"context"
	"errors"

	"nubereats/internal/repository"
	"nubereats/internal/usecase"
)

type VerifyEmailUsecase struct {
	tx repository.TransactionManager
}

func NewVerifyEmailUsecase(tx repository.TransactionManager) *VerifyEmailUsecase {
	return &VerifyEmailUsecase{tx: tx}
}

// コードが一致したらverifiedにしてコードを消す
func (u *VerifyEmailUsecase) Execute(ctx context.Context, code string) (err error) {
	defer usecase.CatchError(&err, "Could not verify email")

	return u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		v, err := r.Verifications().FindByCode(ctx, code)
		if errors.Is(err, repository.ErrNotFound) {
			return usecase.NotFound("Verification not found")
		}
		if err != nil {
			return err
		}
		if v.User == nil {
			return usecase.NotFound("Verification not found")
		}

		user := *v.User
		user.Verified = true
		if err := r.Users().Update(ctx, &user); err != nil {
			return err
		}
		return r.Verifications().DeleteByUserID(ctx, user.ID)
	})
}
