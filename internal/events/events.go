package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	ProductCreated = "product.created"
	ProductUpdated = "product.updated"
	ProductDeleted = "product.deleted"
)

// ProductEvent — сообщение об изменении продукта
type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  uint      `json:"product_id"`
	Name       string    `json:"name,omitempty"`
	Price      string    `json:"price,omitempty"`
	CategoryID uint      `json:"category_id,omitempty"`
	Images     []string  `json:"images,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher отправляет события об изменениях каталога
type Publisher interface {
	Publish(ctx context.Context, ev ProductEvent) error
	Close() error
}

// Noop используется, когда брокеры не настроены
type Noop struct{}

func (Noop) Publish(ctx context.Context, ev ProductEvent) error {
	zap.L().Debug("event dropped, no broker configured", zap.String("type", ev.Type), zap.Uint("product_id", ev.ProductID))
	return nil
}

func (Noop) Close() error { return nil }

// messageWriter — то, что нужно от kafka.Writer
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka публикует события JSON-ом, ключ сообщения — id продукта
type Kafka struct {
	w     messageWriter
	topic string
}

// события шлются по одному в запросе, ждать набора батча не нужно
const batchTimeout = 10 * time.Millisecond

func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			RequiredAcks:           kafka.RequireAll,
			MaxAttempts:            3,
			BatchTimeout:           batchTimeout,
		},
		topic: topic,
	}
}

func (k *Kafka) Publish(ctx context.Context, ev ProductEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(ev.ProductID), 10)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
		},
	}
	if err := k.w.WriteMessages(ctx, msg); err != nil {
		return errors.Wrapf(err, "publish %s to %s", ev.Type, k.topic)
	}
	return nil
}

func (k *Kafka) Close() error {
	return k.w.Close()
}
