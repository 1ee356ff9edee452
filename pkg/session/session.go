// Package session tracks live viewer sessions.
//
// Every websocket connection to the live server owns one engine; its Session
// record describes the viewer (viewport, pattern, frame count) so operators can
// list what is connected. Sessions expire when they have not been touched for
// their TTL, which reaps records of viewers that vanished without closing.
//
//	store := session.NewMemoryStore()
//	sess := session.New(remoteAddr, session.DefaultTTL)
//	_ = store.Set(ctx, sess)
//	...
//	_ = store.Touch(ctx, sess.ID, func(s *session.Session) { s.Frames++ })
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("session not found")

// DefaultTTL is the idle lifetime of a session.
const DefaultTTL = 30 * time.Minute

// Session describes one connected viewer.
type Session struct {
	ID        string        `json:"id"`
	Remote    string        `json:"remote"`
	EngineID  string        `json:"engine_id,omitempty"`
	Pattern   string        `json:"pattern"`
	Width     float64       `json:"width"`
	Height    float64       `json:"height"`
	Frames    int           `json:"frames"`
	CreatedAt time.Time     `json:"created_at"`
	LastSeen  time.Time     `json:"last_seen"`
	TTL       time.Duration `json:"-"`
}

// New creates a session with a fresh ID.
func New(remote string, ttl time.Duration) *Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Remote:    remote,
		CreatedAt: now,
		LastSeen:  now,
		TTL:       ttl,
	}
}

// ExpiresAt returns when the session expires if it is not touched again.
func (s *Session) ExpiresAt() time.Time {
	return s.LastSeen.Add(s.TTL)
}

// IsExpired returns true if the session has been idle longer than its TTL.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt())
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID. Returns nil, nil if it doesn't exist or
	// has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, s *Session) error

	// Touch applies fn to a stored session and refreshes its LastSeen.
	// Returns ErrNotFound if the session doesn't exist.
	Touch(ctx context.Context, id string, fn func(*Session)) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error

	// List returns the live sessions, oldest first.
	List(ctx context.Context) ([]*Session, error)

	// Cleanup removes expired sessions and reports how many were removed.
	Cleanup(ctx context.Context) (int, error)
}
