package pubsub

import "context"

// チャンネル名でbyte列を配る。Subscribeのchannelはctx終了で閉じる
type Broker interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}
