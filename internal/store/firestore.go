package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/healthlens/backend/internal/extraction"
)

const (
	sessionsCollection   = "sessions"
	documentsCollection  = "documents"
	parametersCollection = "healthParameters"
)

// FirestoreStore implements the Store interface using Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) Store {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) CreateSession(ctx context.Context, session *Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	_, err := s.client.Collection(sessionsCollection).Doc(session.Token).Set(ctx, session)
	return err
}

func (s *FirestoreStore) VerifySession(ctx context.Context, token string) (*Session, error) {
	doc, err := s.client.Collection(sessionsCollection).Doc(token).Get(ctx)
	if err != nil {
		return nil, ErrSessionInvalid
	}
	var session Session
	if err := doc.DataTo(&session); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	if session.Expired(time.Now()) {
		return nil, ErrSessionInvalid
	}
	return &session, nil
}

func (s *FirestoreStore) CreateDocument(ctx context.Context, doc *Document) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	// Write the document and its parameter rows in one batch so a
	// failed upload never leaves orphaned parameters.
	batch := s.client.Batch()
	batch.Set(s.client.Collection(documentsCollection).Doc(doc.ID), doc)
	for _, p := range doc.Parameters {
		rec := ParameterRecord{
			ID:                 uuid.New().String(),
			SessionID:          doc.SessionID,
			DocumentID:         doc.ID,
			CreatedAt:          doc.CreatedAt,
			CanonicalParameter: p,
		}
		batch.Set(s.client.Collection(parametersCollection).Doc(rec.ID), rec)
	}
	_, err := batch.Commit(ctx)
	return err
}

func (s *FirestoreStore) GetDocument(ctx context.Context, sessionID, docID string) (*Document, error) {
	snap, err := s.client.Collection(documentsCollection).Doc(docID).Get(ctx)
	if err != nil {
		return nil, ErrNotFound
	}
	var doc Document
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.SessionID != sessionID {
		return nil, ErrNotFound
	}
	params, err := s.documentParameters(ctx, docID)
	if err != nil {
		return nil, err
	}
	doc.Parameters = params
	return &doc, nil
}

func (s *FirestoreStore) ListDocuments(ctx context.Context, sessionID string) ([]*Document, error) {
	snaps, err := s.client.Collection(documentsCollection).
		Where("sessionId", "==", sessionID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	out := make([]*Document, 0, len(snaps))
	for _, snap := range snaps {
		var doc Document
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		params, err := s.documentParameters(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		doc.Parameters = params
		out = append(out, &doc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *FirestoreStore) DeleteDocument(ctx context.Context, sessionID, docID string) error {
	snap, err := s.client.Collection(documentsCollection).Doc(docID).Get(ctx)
	if err != nil {
		return ErrNotFound
	}
	var doc Document
	if err := snap.DataTo(&doc); err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.SessionID != sessionID {
		return ErrNotFound
	}

	paramSnaps, err := s.client.Collection(parametersCollection).
		Where("documentId", "==", docID).
		Documents(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("failed to list document parameters: %w", err)
	}

	batch := s.client.Batch()
	batch.Delete(snap.Ref)
	for _, ps := range paramSnaps {
		batch.Delete(ps.Ref)
	}
	_, err = batch.Commit(ctx)
	return err
}

func (s *FirestoreStore) ParameterHistory(ctx context.Context, sessionID, parameter string, since time.Time) ([]ParameterRecord, error) {
	snaps, err := s.client.Collection(parametersCollection).
		Where("sessionId", "==", sessionID).
		Where("parameter", "==", parameter).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query parameter history: %w", err)
	}

	var out []ParameterRecord
	for _, snap := range snaps {
		var rec ParameterRecord
		if err := snap.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("failed to parse parameter record: %w", err)
		}
		if d, err := time.Parse("2006-01-02", rec.Date); err == nil && d.Before(since) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *FirestoreStore) documentParameters(ctx context.Context, docID string) ([]extraction.CanonicalParameter, error) {
	snaps, err := s.client.Collection(parametersCollection).
		Where("documentId", "==", docID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list document parameters: %w", err)
	}
	params := make([]extraction.CanonicalParameter, 0, len(snaps))
	for _, snap := range snaps {
		var rec ParameterRecord
		if err := snap.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("failed to parse parameter record: %w", err)
		}
		params = append(params, rec.CanonicalParameter)
	}
	return params, nil
}
