package producer

import (
	"context"
	"errors"
	"testing"

	"go-metallurg/internal/messaging/kafka"
	mock_kafka "go-metallurg/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	written []kafkago.Message
	failOn  string
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == w.failOn {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks each event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_kafka.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failOn: "a2"}

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{
			{ID: "e1", AggregateID: "a1", EventType: "assignment.completed", Topic: "t", Payload: []byte("{}"), RequestID: "req-1"},
			{ID: "e2", AggregateID: "a2", EventType: "assignment.completed", Topic: "t", Payload: []byte("{}"), RetryCount: 3},
		}, nil)
		repo.EXPECT().MarkSent(ctx, "e1").Return(nil)
		repo.EXPECT().MarkFailed(ctx, "e2", 3, "broker unavailable").Return(nil)

		err := processPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Len(t, writer.written, 1)
		assert.Equal(t, "t", writer.written[0].Topic)
		assert.Len(t, writer.written[0].Headers, 3)
	})

	t.Run("list failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_kafka.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, batchSize).Return(nil, errors.New("db down"))

		err := processPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())

		assert.Error(t, err)
	})
}
