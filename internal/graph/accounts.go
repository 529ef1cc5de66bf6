package graph

import (
	"context"

	"nubereats/internal/domain/model"
	auth "nubereats/internal/usecase/auth_usecase"
)

func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	user, err := authorize(ctx, "me")
	if err != nil {
		return nil, err
	}
	return &userResolver{u: user}, nil
}

type userProfileOutput struct {
	envelope
	user *model.User
}

func (o *userProfileOutput) User() *userResolver { return newUser(o.user) }

func (r *Resolver) UserProfile(ctx context.Context, args struct{ UserID int32 }) (*userProfileOutput, error) {
	if _, err := authorize(ctx, "userProfile"); err != nil {
		return nil, err
	}
	u, err := r.AccountSvc.UserProfile(ctx, int64(args.UserID))
	if err != nil {
		return &userProfileOutput{envelope: r.envelopeOf(ctx, "userProfile", err)}, nil
	}
	return &userProfileOutput{envelope: envelope{ok: true}, user: &u}, nil
}

type createAccountArgs struct {
	Input struct {
		Email    string
		Password string
		Role     string
	}
}

func (r *Resolver) CreateAccount(ctx context.Context, args createAccountArgs) (*envelope, error) {
	err := r.AccountSvc.CreateAccount(ctx, auth.RegisterUserInput{
		Email:    args.Input.Email,
		Password: args.Input.Password,
		Role:     model.Role(args.Input.Role),
	})
	out := r.envelopeOf(ctx, "createAccount", err)
	return &out, nil
}

type loginOutput struct {
	envelope
	token *string
}

func (o *loginOutput) Token() *string { return o.token }

func (r *Resolver) Login(ctx context.Context, args struct{ Input struct{ Email, Password string } }) (*loginOutput, error) {
	token, err := r.AccountSvc.Login(ctx, auth.LoginInput{Email: args.Input.Email, Password: args.Input.Password})
	if err != nil {
		return &loginOutput{envelope: r.envelopeOf(ctx, "login", err)}, nil
	}
	return &loginOutput{envelope: envelope{ok: true}, token: &token}, nil
}

func (r *Resolver) EditProfile(ctx context.Context, args struct{ Input struct{ Email, Password *string } }) (*envelope, error) {
	user, err := authorize(ctx, "editProfile")
	if err != nil {
		return nil, err
	}
	_, err = r.AccountSvc.EditProfile(ctx, user, auth.EditProfileInput{
		Email:    args.Input.Email,
		Password: args.Input.Password,
	})
	out := r.envelopeOf(ctx, "editProfile", err)
	return &out, nil
}

func (r *Resolver) VerifyEmail(ctx context.Context, args struct{ Input struct{ Code string } }) (*envelope, error) {
	out := r.envelopeOf(ctx, "verifyEmail", r.AccountSvc.VerifyEmail(ctx, args.Input.Code))
	return &out, nil
}
