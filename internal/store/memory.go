package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/healthlens/backend/internal/extraction"
)

// MemoryStore implements Store with in-memory maps. It backs local
// development and the service tests.
type MemoryStore struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	documents  map[string]*Document
	parameters map[string]*ParameterRecord
	now        func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions:   make(map[string]*Session),
		documents:  make(map[string]*Document),
		parameters: make(map[string]*ParameterRecord),
		now:        time.Now,
	}
}

// SetClock overrides the store clock for expiry tests.
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.now = now
}

func (m *MemoryStore) CreateSession(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *s
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = m.now()
	}
	m.sessions[s.Token] = &copied
	return nil
}

func (m *MemoryStore) VerifySession(_ context.Context, token string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	if !ok || s.Expired(m.now()) {
		return nil, ErrSessionInvalid
	}
	copied := *s
	return &copied, nil
}

func (m *MemoryStore) CreateDocument(_ context.Context, doc *Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *doc
	if copied.ID == "" {
		copied.ID = uuid.New().String()
		doc.ID = copied.ID
	}
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = m.now()
		doc.CreatedAt = copied.CreatedAt
	}
	copied.Parameters = append([]extraction.CanonicalParameter(nil), doc.Parameters...)
	m.documents[copied.ID] = &copied

	for _, p := range copied.Parameters {
		rec := &ParameterRecord{
			ID:                 uuid.New().String(),
			SessionID:          copied.SessionID,
			DocumentID:         copied.ID,
			CreatedAt:          copied.CreatedAt,
			CanonicalParameter: p,
		}
		m.parameters[rec.ID] = rec
	}
	return nil
}

func (m *MemoryStore) GetDocument(_ context.Context, sessionID, docID string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.documents[docID]
	if !ok || doc.SessionID != sessionID {
		return nil, ErrNotFound
	}
	copied := *doc
	copied.Parameters = append([]extraction.CanonicalParameter(nil), doc.Parameters...)
	return &copied, nil
}

func (m *MemoryStore) ListDocuments(_ context.Context, sessionID string) ([]*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Document
	for _, doc := range m.documents {
		if doc.SessionID != sessionID {
			continue
		}
		copied := *doc
		copied.Parameters = append([]extraction.CanonicalParameter(nil), doc.Parameters...)
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) DeleteDocument(_ context.Context, sessionID, docID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.documents[docID]
	if !ok || doc.SessionID != sessionID {
		return ErrNotFound
	}
	delete(m.documents, docID)
	for id, rec := range m.parameters {
		if rec.DocumentID == docID {
			delete(m.parameters, id)
		}
	}
	return nil
}

func (m *MemoryStore) ParameterHistory(_ context.Context, sessionID, parameter string, since time.Time) ([]ParameterRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []ParameterRecord
	for _, rec := range m.parameters {
		if rec.SessionID != sessionID || rec.Parameter != parameter {
			continue
		}
		if d, err := time.Parse("2006-01-02", rec.Date); err == nil && d.Before(since) {
			continue
		}
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
