package service

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"ledger-core/internal/models"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event models.LedgerEvent) {
	m.Called(event)
}

type MockKafkaProducer struct {
	mock.Mock
}

func (m *MockKafkaProducer) SendLedgerEvent(ctx context.Context, event models.LedgerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockKafkaProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}

// recordingPublisher collects events from concurrent callers
type recordingPublisher struct {
	mu     sync.Mutex
	events []models.LedgerEvent
}

func (p *recordingPublisher) Publish(event models.LedgerEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}
