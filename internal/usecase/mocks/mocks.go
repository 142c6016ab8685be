package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikey2shiesty/ZapSplit-sub002/internal/domain"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/usecase"
)

// MockSplitRepository is a mock implementation of SplitRepository.
type MockSplitRepository struct {
	mu     sync.RWMutex
	splits map[string]*domain.Split

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, split *domain.Split) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Split, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Split, error)
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id string, status domain.SplitStatus, updatedAt time.Time) error
	ListByUserFunc       func(ctx context.Context, userID string, limit, offset int) ([]*domain.Split, error)
}

func NewMockSplitRepository() *MockSplitRepository {
	return &MockSplitRepository{
		splits: make(map[string]*domain.Split),
	}
}

func (m *MockSplitRepository) Create(ctx context.Context, tx usecase.Transaction, split *domain.Split) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, split)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.splits[split.ID] = split
	return nil
}

func (m *MockSplitRepository) GetByID(ctx context.Context, id string) (*domain.Split, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.splits[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSplitNotFound
}

func (m *MockSplitRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Split, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockSplitRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.SplitStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.splits[id]; ok {
		s.Status = status
		s.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockSplitRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Split, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var splits []*domain.Split
	for _, s := range m.splits {
		if s.CreatorID == userID {
			splits = append(splits, s)
			continue
		}
		for _, p := range s.Participants {
			if p.UserID == userID {
				splits = append(splits, s)
				break
			}
		}
	}
	return splits, nil
}

// MockParticipantRepository is a mock implementation of ParticipantRepository.
type MockParticipantRepository struct {
	mu           sync.RWMutex
	participants map[string][]*domain.Participant

	CreateBatchFunc   func(ctx context.Context, tx usecase.Transaction, participants []*domain.Participant) error
	ListBySplitFunc   func(ctx context.Context, splitID string) ([]*domain.Participant, error)
	ListBySplitTxFunc func(ctx context.Context, tx usecase.Transaction, splitID string) ([]*domain.Participant, error)
	UpdatePaymentFunc func(ctx context.Context, tx usecase.Transaction, participant *domain.Participant) error
}

func NewMockParticipantRepository() *MockParticipantRepository {
	return &MockParticipantRepository{
		participants: make(map[string][]*domain.Participant),
	}
}

func (m *MockParticipantRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, participants []*domain.Participant) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tx, participants)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range participants {
		m.participants[p.SplitID] = append(m.participants[p.SplitID], p)
	}
	return nil
}

func (m *MockParticipantRepository) ListBySplit(ctx context.Context, splitID string) ([]*domain.Participant, error) {
	if m.ListBySplitFunc != nil {
		return m.ListBySplitFunc(ctx, splitID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Participant{}, m.participants[splitID]...), nil
}

func (m *MockParticipantRepository) ListBySplitTx(ctx context.Context, tx usecase.Transaction, splitID string) ([]*domain.Participant, error) {
	if m.ListBySplitTxFunc != nil {
		return m.ListBySplitTxFunc(ctx, tx, splitID)
	}
	return m.ListBySplit(ctx, splitID)
}

func (m *MockParticipantRepository) UpdatePayment(ctx context.Context, tx usecase.Transaction, participant *domain.Participant) error {
	if m.UpdatePaymentFunc != nil {
		return m.UpdatePaymentFunc(ctx, tx, participant)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.participants[participant.SplitID] {
		if p.UserID == participant.UserID {
			*p = *participant
			return nil
		}
	}
	return domain.ErrParticipantNotFound
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
// It enforces the per-split idempotency key uniqueness the real table
// gets from its unique constraint.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments []*domain.Payment
	keys     map[string]bool

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error
	ListBySplitFunc   func(ctx context.Context, splitID string) ([]*domain.Payment, error)
	ListBySplitTxFunc func(ctx context.Context, tx usecase.Transaction, splitID string) ([]*domain.Payment, error)
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		keys: make(map[string]bool),
	}
}

func paymentKey(splitID, idempotencyKey string) string {
	return fmt.Sprintf("%s|%s", splitID, idempotencyKey)
}

func (m *MockPaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, payment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := paymentKey(payment.SplitID, payment.IdempotencyKey)
	if m.keys[key] {
		return domain.ErrDuplicatePayment
	}
	m.keys[key] = true
	m.payments = append(m.payments, payment)
	return nil
}

func (m *MockPaymentRepository) ListBySplit(ctx context.Context, splitID string) ([]*domain.Payment, error) {
	if m.ListBySplitFunc != nil {
		return m.ListBySplitFunc(ctx, splitID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var payments []*domain.Payment
	for _, p := range m.payments {
		if p.SplitID == splitID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (m *MockPaymentRepository) ListBySplitTx(ctx context.Context, tx usecase.Transaction, splitID string) ([]*domain.Payment, error) {
	if m.ListBySplitTxFunc != nil {
		return m.ListBySplitTxFunc(ctx, tx, splitID)
	}
	return m.ListBySplit(ctx, splitID)
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			events = append(events, e)
		}
		if len(events) == limit {
			break
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*domain.OutboxEvent
	for _, e := range m.events {
		if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
			continue
		}
		kept = append(kept, e)
	}
	m.events = kept
	return nil
}

// Events returns a snapshot of every event created so far.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.OutboxEvent{}, m.events...)
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

// MockRetrier is a mock implementation of Retrier. The default runs
// the operation once with no retry.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
