package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ColdBlood237/odin-inventory/internal/cfg"
	"github.com/ColdBlood237/odin-inventory/internal/repository/memory"
	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/ColdBlood237/odin-inventory/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProducer struct {
	mock.Mock
}

func (m *mockProducer) WriteRawMessage(ctx context.Context, req *usecase.WriteRawMessageReq) error {
	return m.Called(ctx, req).Error(0)
}

func seedEvents(t *testing.T, repo *memory.OutboxRepo, n int) []uuid.UUID {
	t.Helper()

	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
		event, err := usecase.NewOutboxEvent(usecase.CategoryCreated, ids[i], map[string]any{"id": ids[i].String()})
		require.NoError(t, err)
		_, err = repo.Create(context.Background(), event)
		require.NoError(t, err)
	}
	return ids
}

func newWorker(repo OutboxStore, producer usecase.MessageProducer) *OutboxWorker {
	return NewOutboxWorker(repo, logger.NewDiscardLogger(), producer,
		&cfg.OutboxCfg{BatchSize: 2, PollInterval: time.Hour}, "")
}

func TestOutboxWorker_DrainPublishesAll(t *testing.T) {
	repo := memory.NewOutboxRepo()
	ids := seedEvents(t, repo, 5)

	producer := new(mockProducer)
	producer.On("WriteRawMessage", mock.Anything, mock.Anything).Return(nil)

	newWorker(repo, producer).drain(context.Background())

	producer.AssertNumberOfCalls(t, "WriteRawMessage", 5)
	first := producer.Calls[0].Arguments.Get(1).(*usecase.WriteRawMessageReq)
	assert.Equal(t, ids[0].String(), first.Key)
	assert.Equal(t, string(usecase.CategoryCreated), first.EventType)

	for _, event := range repo.Events() {
		assert.Equal(t, usecase.Processed, event.Status)
	}
}

func TestOutboxWorker_BrokerUnavailableStopsDrain(t *testing.T) {
	repo := memory.NewOutboxRepo()
	seedEvents(t, repo, 4)

	producer := new(mockProducer)
	producer.On("WriteRawMessage", mock.Anything, mock.Anything).
		Return(errors.New("dial tcp: connection refused"))

	newWorker(repo, producer).drain(context.Background())

	producer.AssertNumberOfCalls(t, "WriteRawMessage", 1)
	events := repo.Events()
	assert.Equal(t, usecase.Processing, events[0].Status)
	assert.Equal(t, usecase.Pending, events[2].Status)

	released, err := repo.ReleaseStale(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), released)
}

func TestOutboxWorker_PermanentFailureSkipsEvent(t *testing.T) {
	repo := memory.NewOutboxRepo()
	seedEvents(t, repo, 2)

	producer := new(mockProducer)
	producer.On("WriteRawMessage", mock.Anything, mock.Anything).Return(errors.New("message too large")).Once()
	producer.On("WriteRawMessage", mock.Anything, mock.Anything).Return(nil)

	newWorker(repo, producer).drain(context.Background())

	events := repo.Events()
	assert.Equal(t, usecase.Processing, events[0].Status)
	assert.Equal(t, usecase.Processed, events[1].Status)
}

func TestOutboxWorker_NotifyDoesNotBlock(t *testing.T) {
	w := newWorker(memory.NewOutboxRepo(), new(mockProducer))

	w.notify()
	w.notify()

	assert.Len(t, w.wake, 1)
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(errors.New("read: Connection Reset by peer")))
	assert.False(t, isRetryableError(errors.New("message too large")))
	assert.False(t, isRetryableError(nil))
}

func TestToMessage(t *testing.T) {
	msg := toMessage(usecase.NewWriteRawMessageReq("key", "item.deleted", []byte{1}))

	assert.Equal(t, []byte("key"), msg.Key)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, eventTypeHeader, msg.Headers[0].Key)
	assert.Equal(t, []byte("item.deleted"), msg.Headers[0].Value)
}
