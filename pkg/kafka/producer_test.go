package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishEncodesValues(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, "gzip")
	ctx := context.Background()

	require.NoError(t, p.Publish(ctx, "reports", []byte("k1"), map[string]float64{"floor": 1.5}))
	require.NoError(t, p.Publish(ctx, "reports", nil, "raw"))
	require.NoError(t, p.PublishMessage(ctx, "logs", []int{1, 2}))

	require.Len(t, w.msgs, 3)
	assert.Equal(t, "reports", w.msgs[0].Topic)
	assert.Equal(t, []byte("k1"), w.msgs[0].Key)
	assert.JSONEq(t, `{"floor":1.5}`, string(w.msgs[0].Value))
	assert.Equal(t, "raw", string(w.msgs[1].Value))
	assert.Equal(t, "logs", w.msgs[2].Topic)
	assert.Equal(t, "[1,2]", string(w.msgs[2].Value))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishBatchErrors(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := NewProducerWithWriter(w, "snappy")

	assert.NoError(t, p.PublishBatch(context.Background(), "reports", nil))
	err := p.PublishBatch(context.Background(), "reports", []Message{{Value: "a"}, {Value: "b"}})
	assert.ErrorContains(t, err, "leader not available")

	err = p.Publish(context.Background(), "reports", nil, func() {})
	assert.ErrorContains(t, err, "marshal value")
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.Error(t, err)

	p, err := NewProducer(WithBrokers([]string{"localhost:9092"}), WithHashByKey(true), WithCompression("zstd"))
	require.NoError(t, err)
	assert.Equal(t, kafka.Zstd, parseCompression("zstd"))
	assert.NoError(t, p.Close())
}

func TestNewProducerValidatesAcks(t *testing.T) {
	_, err := NewProducer(WithBrokers([]string{"localhost:9092"}), WithRequiredAcks(2))
	assert.Error(t, err)

	p, err := NewProducer(
		WithBrokers([]string{"localhost:9092"}),
		WithAsync(true),
		WithBatching(10, 50*time.Millisecond),
		WithAsyncErrorHandler(func(string, int, error) {}),
	)
	require.NoError(t, err)
	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, 10, w.BatchSize)
	assert.NotNil(t, w.Completion)
	assert.NoError(t, p.Close())
}
