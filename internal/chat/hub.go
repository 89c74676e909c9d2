package chat

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dune_tours/internal/domain"
)

var (
	ErrHubFull   = errors.New("chat: too many open sessions")
	ErrHubClosed = errors.New("chat: hub closed")
)

type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time
	*Widget
}

// Transcript is the wire view of a session.
type Transcript struct {
	ID       string          `json:"id"`
	Language domain.Language `json:"language"`
	State    State           `json:"state"`
	Messages []Message       `json:"messages"`
}

func (s *Session) Transcript() Transcript {
	return Transcript{
		ID:       s.ID.String(),
		Language: s.Language(),
		State:    s.State(),
		Messages: s.Messages(),
	}
}

// Hub owns every open chat session. Sessions idle for longer than the TTL
// are torn down like an explicit Delete.
type Hub struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	delay    time.Duration
	max      int
	ttl      time.Duration
	closed   bool

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewHub returns a hub whose replies arrive after delay. max <= 0 means
// unbounded; ttl <= 0 keeps idle sessions until they are deleted.
func NewHub(delay time.Duration, max int, ttl time.Duration) *Hub {
	h := &Hub{
		sessions: map[uuid.UUID]*Session{},
		delay:    delay,
		max:      max,
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	if ttl > 0 {
		h.wg.Add(1)
		go h.janitor(ttl / 2)
	}
	return h
}

func (h *Hub) Create(lang domain.Language) (*Session, error) {
	// reclaim abandoned sessions before judging capacity
	h.Sweep()

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrHubClosed
	}
	if h.max > 0 && len(h.sessions) >= h.max {
		return nil, ErrHubFull
	}
	s := &Session{ID: uuid.New(), CreatedAt: time.Now().UTC(), Widget: NewWidget(lang, h.delay)}
	h.sessions[s.ID] = s
	log.Debug().Str("session", s.ID.String()).Str("lang", string(s.Language())).Msg("chat session opened")
	return s, nil
}

// Get returns a live session and marks it active. Expired sessions are
// reported as not found even before the janitor reaches them.
func (h *Hub) Get(id string) (*Session, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: session %q", domain.ErrNotFound, id)
	}
	now := time.Now()
	h.mu.Lock()
	s, ok := h.sessions[uid]
	if ok && h.expired(s, now) {
		delete(h.sessions, uid)
		h.mu.Unlock()
		s.Close()
		return nil, fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	h.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	s.touch(now)
	return s, nil
}

// Delete tears the session down; any reply still pending is discarded.
func (h *Hub) Delete(id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: session %q", domain.ErrNotFound, id)
	}
	h.mu.Lock()
	s, ok := h.sessions[uid]
	delete(h.sessions, uid)
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}

	s.Close()
	log.Debug().Str("session", id).Msg("chat session closed")
	return nil
}

// Sweep closes every session idle for longer than the TTL and returns how
// many were reclaimed.
func (h *Hub) Sweep() int {
	if h.ttl <= 0 {
		return 0
	}
	now := time.Now()
	h.mu.Lock()
	var idle []*Session
	for id, s := range h.sessions {
		if h.expired(s, now) {
			idle = append(idle, s)
			delete(h.sessions, id)
		}
	}
	h.mu.Unlock()

	for _, s := range idle {
		s.Close()
	}
	if len(idle) > 0 {
		log.Debug().Int("sessions", len(idle)).Msg("idle chat sessions reclaimed")
	}
	return len(idle)
}

func (h *Hub) expired(s *Session, now time.Time) bool {
	return h.ttl > 0 && now.Sub(s.LastActive()) > h.ttl
}

func (h *Hub) janitor(every time.Duration) {
	defer h.wg.Done()
	if every <= 0 {
		every = time.Millisecond
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-h.stop:
			return
		case <-t.C:
			h.Sweep()
		}
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Close stops the janitor, tears down every session and refuses new ones.
// It is safe to call more than once.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	open := make([]*Session, 0, len(h.sessions))
	for id, s := range h.sessions {
		open = append(open, s)
		delete(h.sessions, id)
	}
	h.mu.Unlock()

	close(h.stop)
	h.wg.Wait()
	for _, s := range open {
		s.Close()
	}
	log.Info().Int("sessions", len(open)).Msg("chat hub closed")
}
