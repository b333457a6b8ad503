package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ledger-core/internal/models"
)

func TestEventDispatcher_DeliversEvents(t *testing.T) {
	producer := new(MockKafkaProducer)
	event := models.NewTransferCompletedEvent(uuid.New(), uuid.New(), "5", time.Now())

	producer.On("SendLedgerEvent", mock.Anything, event).Return(nil).Once()

	dispatcher := NewEventDispatcher(producer, 2, 10, testLogger())
	dispatcher.Publish(event)

	require.NoError(t, dispatcher.Shutdown(context.Background()))
	producer.AssertExpectations(t)
}

func TestEventDispatcher_SendFailureDoesNotStopWorker(t *testing.T) {
	producer := new(MockKafkaProducer)
	first := models.NewTransferCompletedEvent(uuid.New(), uuid.New(), "1", time.Now())
	second := models.NewTransferCompletedEvent(uuid.New(), uuid.New(), "2", time.Now())

	producer.On("SendLedgerEvent", mock.Anything, first).Return(errors.New("broker down")).Once()
	producer.On("SendLedgerEvent", mock.Anything, second).Return(nil).Once()

	dispatcher := NewEventDispatcher(producer, 1, 10, testLogger())
	dispatcher.Publish(first)
	dispatcher.Publish(second)

	require.NoError(t, dispatcher.Shutdown(context.Background()))
	producer.AssertExpectations(t)
}

func TestEventDispatcher_FlushesQueueOnShutdown(t *testing.T) {
	producer := new(MockKafkaProducer)
	producer.On("SendLedgerEvent", mock.Anything, mock.Anything).Return(nil)

	dispatcher := NewEventDispatcher(producer, 1, 50, testLogger())
	for i := 0; i < 20; i++ {
		dispatcher.Publish(models.NewTransferCompletedEvent(uuid.New(), uuid.New(), "1", time.Now()))
	}

	require.NoError(t, dispatcher.Shutdown(context.Background()))
	producer.AssertNumberOfCalls(t, "SendLedgerEvent", 20)
}

func TestEventDispatcher_DropsWhenQueueFull(t *testing.T) {
	producer := new(MockKafkaProducer)
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	producer.On("SendLedgerEvent", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			select {
			case started <- struct{}{}:
			default:
			}
			<-release
		}).
		Return(nil)

	dispatcher := NewEventDispatcher(producer, 1, 1, testLogger())

	// the single worker holds the first event, the queue takes one more
	dispatcher.Publish(models.NewTransferCompletedEvent(uuid.New(), uuid.New(), "1", time.Now()))
	<-started
	dispatcher.Publish(models.NewTransferCompletedEvent(uuid.New(), uuid.New(), "2", time.Now()))
	dispatcher.Publish(models.NewTransferCompletedEvent(uuid.New(), uuid.New(), "3", time.Now()))

	close(release)
	require.NoError(t, dispatcher.Shutdown(context.Background()))
	producer.AssertNumberOfCalls(t, "SendLedgerEvent", 2)
}

func TestEventDispatcher_PublishAfterShutdown(t *testing.T) {
	producer := new(MockKafkaProducer)

	dispatcher := NewEventDispatcher(producer, 1, 10, testLogger())
	require.NoError(t, dispatcher.Shutdown(context.Background()))

	dispatcher.Publish(models.NewTransferCompletedEvent(uuid.New(), uuid.New(), "1", time.Now()))

	producer.AssertNotCalled(t, "SendLedgerEvent", mock.Anything, mock.Anything)
	assert.NoError(t, dispatcher.Shutdown(context.Background()), "second shutdown is a no-op")
}

func TestEventDispatcher_ShutdownTimeout(t *testing.T) {
	producer := new(MockKafkaProducer)
	release := make(chan struct{})
	started := make(chan struct{})
	producer.On("SendLedgerEvent", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil).Once()
	defer close(release)

	dispatcher := NewEventDispatcher(producer, 1, 10, testLogger())
	dispatcher.Publish(models.NewTransferCompletedEvent(uuid.New(), uuid.New(), "1", time.Now()))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := dispatcher.Shutdown(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
