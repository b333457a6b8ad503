package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger-core/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestKafkaProducer_SendLedgerEvent_Success(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, NewConfig())
	from, to := uuid.New(), uuid.New()
	event := models.NewTransferCompletedEvent(from, to, "10.50", time.Now())

	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got models.LedgerEvent
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.EventID != event.EventID || got.Amount != "10.50" || got.Type != models.EventTransferCompleted {
			return errors.New("unexpected payload")
		}
		return nil
	})

	producer := NewKafkaProducerFromSync(mockProducer, "ledger-events", testLogger())

	err := producer.SendLedgerEvent(context.Background(), event)

	assert.NoError(t, err)
	assert.NoError(t, producer.Close())
}

func TestKafkaProducer_SendLedgerEvent_Failure(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, NewConfig())
	expectedErr := errors.New("broker unavailable")
	mockProducer.ExpectSendMessageAndFail(expectedErr)

	producer := NewKafkaProducerFromSync(mockProducer, "ledger-events", testLogger())
	event := models.NewAccountCreatedEvent(&models.Account{ID: uuid.New(), CustomerID: uuid.New()}, time.Now())

	err := producer.SendLedgerEvent(context.Background(), event)

	assert.ErrorIs(t, err, expectedErr)
	assert.NoError(t, producer.Close())
}

type blockingSyncProducer struct {
	sarama.SyncProducer
	release chan struct{}
}

func (p *blockingSyncProducer) SendMessage(msg *sarama.ProducerMessage) (int32, int64, error) {
	<-p.release
	return 0, 0, nil
}

func TestKafkaProducer_SendLedgerEvent_ContextCanceled(t *testing.T) {
	blocking := &blockingSyncProducer{release: make(chan struct{})}
	defer close(blocking.release)

	producer := NewKafkaProducerFromSync(blocking, "ledger-events", testLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := producer.SendLedgerEvent(ctx, models.NewTransferCompletedEvent(uuid.New(), uuid.New(), "1", time.Now()))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNoOpProducer(t *testing.T) {
	producer := NewNoOpProducer(testLogger())

	assert.NoError(t, producer.SendLedgerEvent(context.Background(), models.LedgerEvent{EventID: uuid.New()}))
	assert.NoError(t, producer.Close())
}
