package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafka_PublishEncodesEvent(t *testing.T) {
	w := &fakeWriter{}
	k := &Kafka{w: w, topic: "catalog.products"}
	ev := ProductEvent{Type: ProductCreated, ProductID: 42, Name: "Widget", Price: "9.99", Timestamp: time.Unix(0, 0).UTC()}

	require.NoError(t, k.Publish(context.Background(), ev))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "42", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, ProductCreated, string(msg.Headers[0].Value))

	var got ProductEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, ev, got)

	require.NoError(t, k.Close())
	assert.True(t, w.closed)
}

func TestKafka_PublishWrapsWriterError(t *testing.T) {
	k := &Kafka{w: &fakeWriter{err: errors.New("broker down")}, topic: "t"}
	err := k.Publish(context.Background(), ProductEvent{Type: ProductDeleted, ProductID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	assert.NoError(t, p.Publish(context.Background(), ProductEvent{Type: ProductUpdated}))
	assert.NoError(t, p.Close())
}

func TestNewKafka_WriterSettings(t *testing.T) {
	k := NewKafka([]string{"localhost:9092"}, "catalog.products")
	w, ok := k.w.(*kafka.Writer)
	require.True(t, ok)

	assert.Equal(t, "catalog.products", w.Topic)
	assert.Equal(t, batchTimeout, w.BatchTimeout)
	assert.Less(t, w.BatchTimeout, 100*time.Millisecond)
	assert.Equal(t, kafka.RequireAll, w.RequiredAcks)
	assert.NoError(t, k.Close())
}
