package payment

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	ProviderMock     = "mock"
	mockIntentPrefix = "mock_payment_intent_"
)

// MockProvider confirms every intent it issued. Intent ids are mock_payment_intent_<unix-millis>,
// bumped by one millisecond when two intents would share a timestamp.
type MockProvider struct {
	mu      sync.Mutex
	lastID  int64
	intents map[string]*mockIntent
	now     func() time.Time
}

type mockIntent struct {
	Intent
	customerID string
	metadata   map[string]string
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		intents: make(map[string]*mockIntent),
		now:     time.Now,
	}
}

func (m *MockProvider) Name() string {
	return ProviderMock
}

func (m *MockProvider) CreateIntent(ctx context.Context, request *IntentRequest) (*Intent, error) {
	if _, err := toMinorUnits(request.Amount); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	stamp := now.UnixMilli()
	if stamp <= m.lastID {
		stamp = m.lastID + 1
	}
	m.lastID = stamp

	id := fmt.Sprintf("%s%d", mockIntentPrefix, stamp)
	intent := &mockIntent{
		Intent: Intent{
			ID:           id,
			ClientSecret: id + "_secret_" + uuid.NewString(),
			Provider:     ProviderMock,
			Amount:       request.Amount,
			Currency:     request.Currency,
			Status:       "requires_confirmation",
			CreatedAt:    now.Unix(),
		},
		customerID: request.CustomerID,
		metadata:   maps.Clone(request.Metadata),
	}
	m.intents[id] = intent

	copied := intent.Intent
	return &copied, nil
}

func (m *MockProvider) Confirm(ctx context.Context, intentID string) (*Confirmation, error) {
	if !strings.HasPrefix(intentID, mockIntentPrefix) {
		return nil, ErrIntentNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	intent, ok := m.intents[intentID]
	if !ok {
		return nil, ErrIntentNotFound
	}
	intent.Status = "succeeded"

	return &Confirmation{
		IntentID:    intent.ID,
		Status:      intent.Status,
		Amount:      intent.Amount,
		Currency:    intent.Currency,
		ConfirmedAt: m.now().Unix(),
		CustomerID:  intent.customerID,
		Metadata:    maps.Clone(intent.metadata),
	}, nil
}
