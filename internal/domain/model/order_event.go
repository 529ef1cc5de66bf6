package model

type OrderEventType string

const (
	OrderEventNewPending OrderEventType = "NEW_PENDING_ORDER"
	OrderEventNewCooked  OrderEventType = "NEW_COOKED_ORDER"
	OrderEventNewUpdate  OrderEventType = "NEW_ORDER_UPDATE"
)

// 注文の通知（購読側でオーナー絞り込みができるようにOwnerIDを持つ）
type OrderEvent struct {
	Type    OrderEventType `json:"type"`
	Order   Order          `json:"order"`
	OwnerID int64          `json:"owner_id"`
}
