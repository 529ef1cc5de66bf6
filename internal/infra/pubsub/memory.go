package pubsub

import (
	"context"
	"fmt"
	"sync"
)

const memoryBufferSize = 16

// REDIS_ADDRがないとき（1プロセス内だけで配る）
type MemoryBroker struct {
	mu   sync.RWMutex
	subs map[string]map[*memorySub]struct{}
}

type memorySub struct {
	mu     sync.Mutex
	ch     chan []byte
	closed bool
}

// 待たずに送る。バッファが一杯ならfalse
func (s *memorySub) offer(payload []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.ch <- payload:
		return true
	default:
		return false
	}
}

func (s *memorySub) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	close(s.ch)
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[string]map[*memorySub]struct{})}
}

// 購読者の一覧だけロック中にコピーし、送信はロックの外で行う。
// 詰まった購読者の分は捨てて、件数をエラーで返す
func (b *MemoryBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	b.mu.RLock()
	subs := make([]*memorySub, 0, len(b.subs[channel]))
	for s := range b.subs[channel] {
		subs = append(subs, s)
	}
	b.mu.RUnlock()

	dropped := 0
	for _, s := range subs {
		if !s.offer(payload) {
			dropped++
		}
	}
	if dropped > 0 {
		return fmt.Errorf("memory broker: dropped message on %s for %d slow subscriber(s)", channel, dropped)
	}
	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	s := &memorySub{ch: make(chan []byte, memoryBufferSize)}

	b.mu.Lock()
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[*memorySub]struct{})
	}
	b.subs[channel][s] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs[channel], s)
		if len(b.subs[channel]) == 0 {
			delete(b.subs, channel)
		}
		b.mu.Unlock()
		s.close()
	}()
	return s.ch, nil
}

func (b *MemoryBroker) subscriberCount(channel string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[channel])
}
