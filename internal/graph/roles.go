package graph

import (
	"context"
	"errors"
	"slices"

	"nubereats/internal/domain/model"
	"nubereats/internal/session"
)

// ロール不足はenvelopeではなくGraphQLのエラーで返す
var ErrForbiddenResource = errors.New("Forbidden resource")

// ログインしていれば誰でも
const roleAny model.Role = "Any"

// 操作ごとの許可ロール。載っていない操作は誰でも呼べる
var operationRoles = map[string][]model.Role{
	"me":          {roleAny},
	"userProfile": {roleAny},
	"editProfile": {roleAny},

	"createRestaurant": {model.RoleOwner},
	"editRestaurant":   {model.RoleOwner},
	"deleteRestaurant": {model.RoleOwner},
	"createDish":       {model.RoleOwner},
	"editDish":         {model.RoleOwner},
	"deleteDish":       {model.RoleOwner},

	"createOrder":  {model.RoleClient},
	"getOrders":    {roleAny},
	"getOrder":     {roleAny},
	"editOrder":    {roleAny},
	"takeOrder":    {model.RoleDelivery},
	"orderUpdates": {roleAny},

	"pendingOrders": {model.RoleOwner},
	"cookedOrders":  {model.RoleDelivery},

	"createPayment": {model.RoleOwner},
	"getPayments":   {model.RoleOwner},
}

// ctxのユーザーが操作を呼べるか。公開操作ならユーザーなしでもok
func authorize(ctx context.Context, operation string) (model.User, error) {
	user, loggedIn := session.UserFromContext(ctx)

	roles, guarded := operationRoles[operation]
	if !guarded {
		return user, nil
	}
	if !loggedIn {
		return model.User{}, ErrForbiddenResource
	}
	if slices.Contains(roles, roleAny) || slices.Contains(roles, user.Role) {
		return user, nil
	}
	return model.User{}, ErrForbiddenResource
}
