package pubsub

import (
	"context"
	"strconv"

	"github.com/segmentio/kafka-go"
)

// kafka.Writerのうち使う部分
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// 注文イベントをKafkaにも残す（keyは注文ID）
type KafkaMirror struct {
	Writer messageWriter
}

func NewKafkaMirror(brokers []string, topic string) *KafkaMirror {
	return &KafkaMirror{Writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}}
}

func (m *KafkaMirror) Write(ctx context.Context, orderID int64, eventType string, payload []byte) error {
	return m.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(orderID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(eventType)},
		},
	})
}

func (m *KafkaMirror) Close() error {
	return m.Writer.Close()
}
