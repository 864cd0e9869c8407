package api

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MJE43/haunted-slots-go/internal/engine"
	"github.com/MJE43/haunted-slots-go/internal/slot"
	"github.com/MJE43/haunted-slots-go/internal/store"
)

// Session binds one machine to one player connection. The mutex enforces the
// single-writer discipline the engine requires: spins against a session are
// serialized here, outside the core.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time
	SeedHash  string

	mu        sync.Mutex
	machine   *slot.Machine
	spinIndex int64
}

// Spin runs one spin under the session lock and returns the outcome together
// with its zero-based index in the session's spin sequence.
func (s *Session) Spin(bet decimal.Decimal) (*slot.SpinOutcome, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := s.machine.Spin(bet)
	if err != nil {
		return nil, 0, err
	}
	idx := s.spinIndex
	s.spinIndex++
	return out, idx, nil
}

// State snapshots the session's read-only view under the lock.
func (s *Session) State() (balance decimal.Decimal, freeSpins int, jackpots map[slot.Tier]decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Balance(), s.machine.FreeSpins(), s.machine.Jackpots()
}

// SessionManager owns the live, in-memory sessions. Sessions do not survive
// a process restart; only the journal does.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewSessionManager creates an empty manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[uuid.UUID]*Session)}
}

// Create builds a machine and registers a new session. A non-empty seed makes
// the session reproducible (and its hash lands in the journal); otherwise the
// machine is crypto-seeded.
func (sm *SessionManager) Create(cfg slot.Config, seed []byte) (*Session, error) {
	var (
		machine *slot.Machine
		err     error
	)
	if len(seed) > 0 {
		if len(seed) < engine.SeedSize {
			return nil, fmt.Errorf("seed must be at least %d bytes, got %d", engine.SeedSize, len(seed))
		}
		machine, err = slot.NewSeeded(cfg, seed)
	} else {
		machine, err = slot.New(cfg)
	}
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		SeedHash:  store.SeedHash(seed),
		machine:   machine,
	}
	sm.mu.Lock()
	sm.sessions[s.ID] = s
	sm.mu.Unlock()
	return s, nil
}

// Get returns a session by id.
func (sm *SessionManager) Get(id uuid.UUID) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sessions[id]
	return s, ok
}

// Count returns the number of live sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
