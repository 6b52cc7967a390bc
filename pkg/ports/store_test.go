package ports_test

import (
	"context"
	"testing"

	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/ports"
)

// MockStore is a minimal map-backed SessionStore used to exercise the contract itself.
type MockStore struct {
	data map[string]domain.Session
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]domain.Session),
	}
}

func (m *MockStore) Save(ctx context.Context, sessionID string, session *domain.Session) error {
	m.data[sessionID] = *session
	return nil
}

func (m *MockStore) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, ok := m.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (m *MockStore) Delete(ctx context.Context, sessionID string) error {
	delete(m.data, sessionID)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestSessionStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, NewMockStore())
}

func TestGeneratorFunc(t *testing.T) {
	var gen ports.Generator = ports.GeneratorFunc(func(ctx context.Context, prompt domain.PromptID, vars map[string]string) domain.Generation {
		return domain.Generated(string(prompt) + ":" + vars["text"])
	})

	got := gen.Generate(context.Background(), domain.PromptSummary, map[string]string{"text": "abc"})
	if got.Reply() != "summary:abc" {
		t.Errorf("Expected 'summary:abc', got %q", got.Reply())
	}
}
