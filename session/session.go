// Package session tracks long-lived client conversations across runs.
//
// A [Manager] holds one [Session] per thread id, each owning the
// translator reused for that conversation's runs. Idle sessions are
// evicted by a background sweeper after a configurable timeout, and a
// max-session cap evicts the least recently used when new conversations
// keep arriving. The Manager is constructed explicitly and torn down
// with Close; there is no process-wide registry.
package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/spetersoncode/agui/translate"
)

// ErrManagerClosed is returned by GetOrCreate after Close.
var ErrManagerClosed = errors.New("session: manager closed")

// Defaults mirror the usual middleware configuration: sessions idle for
// twenty minutes are reclaimed, checked every five.
const (
	DefaultTimeout       = 20 * time.Minute
	DefaultSweepInterval = 5 * time.Minute
	DefaultMaxSessions   = 100
)

// Session is one client conversation. It owns the translator reused
// across the conversation's runs.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	translator *translate.Translator
}

// BeginRun claims the session for one run and returns its translator,
// cleared of any leftover aggregator state. The translator is not safe
// for concurrent use, so runs on the same thread are serialized: a
// second BeginRun blocks until EndRun releases the claim.
func (s *Session) BeginRun(runID string) *translate.Translator {
	s.mu.Lock()
	s.translator.BeginRun(runID)
	return s.translator
}

// EndRun releases the claim taken by BeginRun.
func (s *Session) EndRun() {
	s.mu.Unlock()
}

// Manager owns the session table. All methods are safe for concurrent
// use.
type Manager struct {
	timeout     time.Duration
	sweep       time.Duration
	maxSessions int
	log         *slog.Logger

	mu       sync.Mutex
	sessions map[string]*sessionEntry
	closed   bool

	stop chan struct{}
	done chan struct{}
}

type sessionEntry struct {
	session      *Session
	lastActivity time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithTimeout sets the idle timeout after which a session is evicted.
func WithTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		m.timeout = timeout
	}
}

// WithSweepInterval sets how often the idle sweeper runs.
func WithSweepInterval(interval time.Duration) Option {
	return func(m *Manager) {
		m.sweep = interval
	}
}

// WithMaxSessions caps the number of concurrent sessions. Creating one
// past the cap evicts the least recently used session.
func WithMaxSessions(max int) Option {
	return func(m *Manager) {
		m.maxSessions = max
	}
}

// WithLogger sets the logger for eviction events.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager creates a Manager and starts its idle sweeper. Callers
// must Close it when done.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		timeout:     DefaultTimeout,
		sweep:       DefaultSweepInterval,
		maxSessions: DefaultMaxSessions,
		log:         slog.Default(),
		sessions:    make(map[string]*sessionEntry),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	go m.sweeper()
	return m
}

// GetOrCreate returns the session for threadID, creating it if needed.
// Lookup counts as activity.
func (m *Manager) GetOrCreate(threadID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrManagerClosed
	}

	now := time.Now()
	if entry, ok := m.sessions[threadID]; ok {
		entry.lastActivity = now
		return entry.session, nil
	}

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		m.evictOldestLocked()
	}

	s := &Session{
		ID:         threadID,
		CreatedAt:  now,
		translator: translate.NewTranslator(threadID, ""),
	}
	m.sessions[threadID] = &sessionEntry{session: s, lastActivity: now}
	return s, nil
}

// Get returns the session for threadID without creating one.
func (m *Manager) Get(threadID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[threadID]
	if !ok {
		return nil, false
	}
	return entry.session, true
}

// Touch marks a session active, deferring idle eviction. Unknown ids
// are a no-op.
func (m *Manager) Touch(threadID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.sessions[threadID]; ok {
		entry.lastActivity = time.Now()
	}
}

// Remove drops a session. Unknown ids are a no-op.
func (m *Manager) Remove(threadID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, threadID)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ActiveIDs returns the thread ids of all live sessions.
func (m *Manager) ActiveIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Close stops the sweeper and drops all sessions. Subsequent
// GetOrCreate calls fail with ErrManagerClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		<-m.done
		return
	}
	m.closed = true
	clear(m.sessions)
	m.mu.Unlock()

	close(m.stop)
	<-m.done
}

func (m *Manager) sweeper() {
	defer close(m.done)
	ticker := time.NewTicker(m.sweep)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.evictIdle()
		}
	}
}

func (m *Manager) evictIdle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-m.timeout)
	for id, entry := range m.sessions {
		if entry.lastActivity.Before(cutoff) {
			delete(m.sessions, id)
			m.log.Info("session evicted", "threadId", id, "reason", "idle")
		}
	}
}

// evictOldestLocked removes the least recently used session. Caller
// holds m.mu.
func (m *Manager) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, entry := range m.sessions {
		if oldestID == "" || entry.lastActivity.Before(oldest) {
			oldestID = id
			oldest = entry.lastActivity
		}
	}
	if oldestID != "" {
		delete(m.sessions, oldestID)
		m.log.Info("session evicted", "threadId", oldestID, "reason", "capacity")
	}
}
