// Package store persists sessions, documents and their extracted
// health parameters.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/healthlens/backend/internal/extraction"
)

var (
	// ErrSessionInvalid covers unknown and expired session tokens.
	ErrSessionInvalid = errors.New("session token is invalid or expired")
	// ErrNotFound is returned for missing documents.
	ErrNotFound = errors.New("not found")
)

// Session is the pseudonymous caller identity. The authentication
// subsystem that mints tokens lives elsewhere; this package only
// verifies and touches them.
type Session struct {
	Token     string    `firestore:"token"`
	CreatedAt time.Time `firestore:"createdAt"`
	ExpiresAt time.Time `firestore:"expiresAt"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Document is a logical container owned by one session. Parameter rows
// are append-only: a re-upload creates a new document with new rows.
type Document struct {
	ID           string                          `json:"id" firestore:"id"`
	SessionID    string                          `json:"-" firestore:"sessionId"`
	Name         string                          `json:"name" firestore:"name"`
	DocumentType string                          `json:"documentType" firestore:"documentType"`
	TestDate     string                          `json:"testDate" firestore:"testDate"`
	Analysis     string                          `json:"analysis,omitempty" firestore:"analysis"`
	CreatedAt    time.Time                       `json:"createdAt" firestore:"createdAt"`
	Parameters   []extraction.CanonicalParameter `json:"healthParameters" firestore:"-"`
}

// ParameterRecord is one persisted canonical parameter, keyed to its
// owning document and session.
type ParameterRecord struct {
	ID         string    `firestore:"id"`
	SessionID  string    `firestore:"sessionId"`
	DocumentID string    `firestore:"documentId"`
	CreatedAt  time.Time `firestore:"createdAt"`

	extraction.CanonicalParameter
}

// Store is the persistence boundary for all handlers.
type Store interface {
	// CreateSession registers a new session token.
	CreateSession(ctx context.Context, s *Session) error
	// VerifySession resolves a token, failing with ErrSessionInvalid
	// when it is unknown or expired.
	VerifySession(ctx context.Context, token string) (*Session, error)

	// CreateDocument persists a document plus its canonical parameters.
	CreateDocument(ctx context.Context, doc *Document) error
	// GetDocument fetches one document with its parameters, scoped to
	// the owning session.
	GetDocument(ctx context.Context, sessionID, docID string) (*Document, error)
	// ListDocuments returns the session's documents with parameters,
	// newest first.
	ListDocuments(ctx context.Context, sessionID string) ([]*Document, error)
	// DeleteDocument removes a document and cascades to its parameters.
	DeleteDocument(ctx context.Context, sessionID, docID string) error

	// ParameterHistory returns every stored reading of one parameter
	// for the session since the given time, ordered by test date.
	ParameterHistory(ctx context.Context, sessionID, parameter string, since time.Time) ([]ParameterRecord, error)
}
