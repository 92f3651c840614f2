// Package session holds the authenticated identity and credential token for
// the header, backed by a persistent slot repository.
//
// Contract:
//   - Restore: load persisted state once at mount; corrupt state is purged
//     and treated as logged out, never returned as an error.
//   - Commit: persist token and identity together, then publish.
//   - Clear: remove both; idempotent; memory is reset even if storage fails.
//   - Subscribe: observe identity changes (nil means logged out).
//
// A second, tab-scoped repository carries the one-shot logged-out marker.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/headerauth/internal/client/models"
	"github.com/dmitrijs2005/headerauth/internal/client/repositories/slots"
	"github.com/dmitrijs2005/headerauth/internal/common"
	"github.com/dmitrijs2005/headerauth/internal/logging"
	"github.com/google/uuid"
)

var (
	// ErrCorruptPersistedState describes an identity slot that could not be
	// decoded. Restore recovers from it by purging; it is only ever logged.
	ErrCorruptPersistedState = errors.New("corrupt persisted state")

	// ErrNoIdentity is returned by Commit when called without an identity.
	ErrNoIdentity = errors.New("identity is required")
)

// Listener is notified with the current identity after every change.
type Listener func(id *models.Identity)

type Store struct {
	persistent slots.Repository
	transient  slots.Repository
	log        logging.Logger

	mu        sync.RWMutex
	token     string
	identity  *models.Identity
	listeners map[uuid.UUID]Listener
	order     []uuid.UUID
}

// NewStore builds a store over a persistent repository (token and identity)
// and a transient one (logged-out marker).
func NewStore(persistent, transient slots.Repository, log logging.Logger) *Store {
	return &Store{
		persistent: persistent,
		transient:  transient,
		log:        log.With("component", "session"),
		listeners:  make(map[uuid.UUID]Listener),
	}
}

// Restore loads token and identity from persistent storage. It never fails:
// storage errors leave the store logged out, and a missing, "undefined" or
// unparsable identity is removed from storage.
func (s *Store) Restore(ctx context.Context) {
	id, token := s.load(ctx)

	s.mu.Lock()
	s.identity = id
	s.token = token
	s.mu.Unlock()

	s.publish(id)
}

func (s *Store) load(ctx context.Context) (*models.Identity, string) {
	raw, err := s.persistent.Get(ctx, common.SlotIdentity)
	if err != nil {
		s.log.Warn(ctx, "restore: identity slot unreadable", "error", err)
		return nil, ""
	}
	if raw == nil {
		return nil, ""
	}

	id, err := decodeIdentity(raw)
	if err != nil {
		s.log.Warn(ctx, "restore: discarding persisted identity", "error", err)
		if derr := s.persistent.Delete(ctx, common.SlotIdentity); derr != nil {
			s.log.Warn(ctx, "restore: purge failed", "error", derr)
		}
		return nil, ""
	}

	token, err := s.persistent.Get(ctx, common.SlotToken)
	if err != nil {
		s.log.Warn(ctx, "restore: token slot unreadable", "error", err)
	}
	return id, string(token)
}

func decodeIdentity(raw []byte) (*models.Identity, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == common.AbsentMarker || string(trimmed) == "null" {
		return nil, fmt.Errorf("%w: absence marker %q", ErrCorruptPersistedState, string(trimmed))
	}

	var id models.Identity
	if err := json.Unmarshal(trimmed, &id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPersistedState, err)
	}
	return &id, nil
}

// Commit persists token and identity in one repository write and replaces
// the in-memory state. On storage failure nothing changes.
func (s *Store) Commit(ctx context.Context, token string, id *models.Identity) error {
	if id == nil {
		return ErrNoIdentity
	}

	payload, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	if err := s.persistent.Put(ctx, map[string][]byte{
		common.SlotToken:    []byte(token),
		common.SlotIdentity: payload,
	}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.identity = id.Clone()
	s.mu.Unlock()

	s.log.Info(ctx, "session committed", "user", id.DisplayName(""), "token", logging.Redact(token))
	s.publish(id)
	return nil
}

// Clear forgets the session. The in-memory state is reset unconditionally;
// the returned error only reports a storage failure.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.identity = nil
	s.mu.Unlock()

	s.publish(nil)

	if err := s.persistent.Delete(ctx, common.SlotToken, common.SlotIdentity); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Identity returns a copy of the current identity, or nil when logged out.
func (s *Store) Identity() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity.Clone()
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// Subscribe registers fn for identity changes and returns its cancel func.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	id := uuid.New()

	s.mu.Lock()
	s.listeners[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, o := range s.order {
				if o == id {
					s.order = append(s.order[:i:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Store) publish(id *models.Identity) {
	s.mu.RLock()
	fns := make([]Listener, 0, len(s.order))
	for _, o := range s.order {
		fns = append(fns, s.listeners[o])
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(id.Clone())
	}
}

// MarkLoggedOut sets the one-shot marker read by the next mount.
func (s *Store) MarkLoggedOut(ctx context.Context) error {
	return s.transient.Put(ctx, map[string][]byte{
		common.SlotLoggedOut: []byte(common.LoggedOutValue),
	})
}

// ConsumeLoggedOutMarker reports whether the marker was set and removes it.
func (s *Store) ConsumeLoggedOutMarker(ctx context.Context) bool {
	v, err := s.transient.Get(ctx, common.SlotLoggedOut)
	if err != nil {
		s.log.Warn(ctx, "logged-out marker unreadable", "error", err)
		return false
	}
	if string(v) != common.LoggedOutValue {
		return false
	}
	if err := s.transient.Delete(ctx, common.SlotLoggedOut); err != nil {
		s.log.Warn(ctx, "logged-out marker not removed", "error", err)
	}
	return true
}
