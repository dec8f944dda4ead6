package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/inamate/vecdraw/internal/control"
	"github.com/inamate/vecdraw/internal/typeid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many sessions")
)

const sweepInterval = time.Minute

// Manager owns every live session. Websocket clients are attached and
// detached through Run so that welcome and initial render messages go out
// in registration order.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	cfg         control.Config
	maxSessions int
	idleTimeout time.Duration
	now         func() time.Time

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewManager creates a manager. maxSessions <= 0 means no limit and
// idleTimeout <= 0 disables expiry.
func NewManager(cfg control.Config, maxSessions int, idleTimeout time.Duration) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		cfg:         cfg,
		maxSessions: maxSessions,
		idleTimeout: idleTimeout,
		now:         time.Now,
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		done:        make(chan struct{}),
	}
}

// Run processes client registrations and expires idle sessions until ctx
// is cancelled.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer func() {
		ticker.Stop()
		close(m.done)
		m.closeAll()
	}()

	for {
		select {
		case c := <-m.register:
			m.addClient(c)
		case c := <-m.unregister:
			m.removeClient(c)
		case <-ticker.C:
			m.Expire()
		case <-ctx.Done():
			return
		}
	}
}

// Register attaches a client to its session. It returns false once the
// manager has stopped.
func (m *Manager) Register(c *Client) bool {
	select {
	case m.register <- c:
		return true
	case <-m.done:
		return false
	}
}

func (m *Manager) Unregister(c *Client) {
	select {
	case m.unregister <- c:
	case <-m.done:
	}
}

func (m *Manager) addClient(c *Client) {
	c.session.addClient(c)
	c.session.touch(m.now())

	c.Send(newMessage(TypeWelcome, WelcomePayload{SessionID: c.session.ID, ClientID: c.ID}))
	c.Send(newMessage(TypeRender, c.session.Render()))

	slog.Info("client joined", "client", c.ID, "session", c.session.ID)
}

func (m *Manager) removeClient(c *Client) {
	if !c.session.removeClient(c) {
		return
	}
	c.session.touch(m.now())
	slog.Info("client left", "client", c.ID, "session", c.session.ID)
}

// Create starts a new session with an empty scene.
func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return nil, ErrTooManySessions
	}
	s := newSession(m.cfg, m.now())
	m.sessions[s.ID] = s
	slog.Info("session created", "session", s.ID)
	return s, nil
}

// Get returns a session and marks it used.
func (m *Manager) Get(id string) (*Session, error) {
	if err := typeid.Validate(id, typeid.PrefixSession); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(m.now())
	return s, nil
}

// Delete ends a session and disconnects its clients.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.closeClients(reasonSessionClosed)
	slog.Info("session deleted", "session", id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Expire deletes sessions that have no clients and have been idle longer
// than the idle timeout. It returns the ids removed.
func (m *Manager) Expire() []string {
	if m.idleTimeout <= 0 {
		return nil
	}
	cutoff := m.now().Add(-m.idleTimeout)

	m.mu.Lock()
	var expired []string
	for id, s := range m.sessions {
		last, clients := s.idleSince()
		if clients == 0 && last.Before(cutoff) {
			delete(m.sessions, id)
			expired = append(expired, id)
		}
	}
	m.mu.Unlock()

	for _, id := range expired {
		slog.Info("session expired", "session", id)
	}
	return expired
}

func (m *Manager) closeAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.closeClients(reasonShutdown)
	}
}
