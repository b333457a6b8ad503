package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ledger-core/internal/kafka"
	"ledger-core/internal/models"
)

// EventPublisher accepts ledger events without blocking the caller.
type EventPublisher interface {
	Publish(event models.LedgerEvent)
}

// EventDispatcher fans queued ledger events out to a pool of workers that forward
// them to the producer.
type EventDispatcher struct {
	producer    kafka.Producer
	queue       chan models.LedgerEvent
	sendTimeout time.Duration
	log         *slog.Logger

	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewEventDispatcher(producer kafka.Producer, workers, queueSize int, log *slog.Logger) *EventDispatcher {
	d := &EventDispatcher{
		producer:    producer,
		queue:       make(chan models.LedgerEvent, queueSize),
		sendTimeout: 5 * time.Second,
		log:         log,
		stopCh:      make(chan struct{}),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	return d
}

func (d *EventDispatcher) Publish(event models.LedgerEvent) {
	select {
	case <-d.stopCh:
		d.log.Warn("dispatcher stopped, event dropped",
			slog.String("event_id", event.EventID.String()),
			slog.String("type", string(event.Type)))
		return
	default:
	}

	select {
	case d.queue <- event:
		d.log.Debug("ledger event queued",
			slog.String("event_id", event.EventID.String()),
			slog.String("type", string(event.Type)))
	default:
		d.log.Error("event queue is full, event dropped",
			slog.String("event_id", event.EventID.String()),
			slog.String("type", string(event.Type)))
	}
}

func (d *EventDispatcher) worker(id int) {
	defer d.wg.Done()
	d.log.Info("event worker started", slog.Int("worker_id", id))

	for {
		select {
		case event := <-d.queue:
			d.send(id, event)

		case <-d.stopCh:
			// flush what is already queued before leaving
			for {
				select {
				case event := <-d.queue:
					d.send(id, event)
				default:
					d.log.Info("event worker stopping", slog.Int("worker_id", id))
					return
				}
			}
		}
	}
}

func (d *EventDispatcher) send(workerID int, event models.LedgerEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	if err := d.producer.SendLedgerEvent(ctx, event); err != nil {
		d.log.Error("event send failed",
			slog.Int("worker_id", workerID),
			slog.String("event_id", event.EventID.String()),
			slog.String("error", err.Error()))
		return
	}
	d.log.Info("event sent",
		slog.Int("worker_id", workerID),
		slog.String("event_id", event.EventID.String()),
		slog.String("type", string(event.Type)))
}

func (d *EventDispatcher) Shutdown(ctx context.Context) error {
	d.log.Info("shutting down event dispatcher")
	d.stopOnce.Do(func() { close(d.stopCh) })

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.log.Info("all event workers stopped")
		return nil
	case <-ctx.Done():
		d.log.Warn("shutdown timeout exceeded")
		return ctx.Err()
	}
}
