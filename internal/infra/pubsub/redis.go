package pubsub

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// 複数プロセスで購読を共有するとき用
type RedisBroker struct {
	Client *redis.Client
	Prefix string
}

func NewRedisBroker(client *redis.Client, prefix string) *RedisBroker {
	return &RedisBroker{Client: client, Prefix: prefix}
}

func (b *RedisBroker) key(channel string) string {
	return b.Prefix + channel
}

func (b *RedisBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := b.Client.Publish(ctx, b.key(channel), payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", channel, err)
	}
	return nil
}

func (b *RedisBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	ps := b.Client.Subscribe(ctx, b.key(channel))
	//購読が確定するまで待つ（直後のPublishを取りこぼさない）
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis subscribe %s: %w", channel, err)
	}

	in := ps.Channel()
	out := make(chan []byte)
	go func() {
		defer close(out)
		defer ps.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
