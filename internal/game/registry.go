package game

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
)

// SessionID identifies a single client connection.
type SessionID uuid.UUID

func NewSessionID() SessionID {
	return SessionID(uuid.New())
}

func (id SessionID) String() string {
	return uuid.UUID(id).String()
}

// Registry is the single source of truth for who is online.
// All access must go through its methods to ensure thread-safety.
type Registry struct {
	mu       sync.RWMutex
	bus      Bus
	sessions map[SessionID]*SessionState
}

// NewRegistry creates an empty registry delivering messages over bus.
func NewRegistry(bus Bus) *Registry {
	return &Registry{
		bus:      bus,
		sessions: make(map[SessionID]*SessionState),
	}
}

// Add registers an authenticated session. The session is subscribed to its
// own subject before it becomes visible, so any broadcast that can see the
// entry is delivered. Messages are queued on msgs. now starts the idle timer.
func (r *Registry) Add(id SessionID, char *Character, msgs chan []byte, now time.Time) (*SessionState, error) {
	ss := &SessionState{
		subscriber:   r.bus,
		subs:         make(map[string]func()),
		msgs:         msgs,
		Id:           id,
		Character:    char,
		LastActivity: now,
		done:         make(chan struct{}),
	}

	err := ss.Subscribe(SessionSubject(id))
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if _, exists := r.sessions[id]; exists {
		r.mu.Unlock()
		ss.UnsubscribeAll()
		return nil, ErrSessionExists
	}
	charId := char.Id()
	for _, other := range r.sessions {
		if other.Character.Id() == charId {
			r.mu.Unlock()
			ss.UnsubscribeAll()
			return nil, ErrCharacterOnline
		}
	}
	r.sessions[id] = ss
	r.mu.Unlock()

	return ss, nil
}

// Remove deregisters a session and drops its subscriptions.
func (r *Registry) Remove(id SessionID) error {
	r.mu.Lock()
	ss, exists := r.sessions[id]
	if !exists {
		r.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	r.mu.Unlock()

	ss.UnsubscribeAll()
	return nil
}

// Get returns the session state. Returns nil if the session is not registered.
func (r *Registry) Get(id SessionID) *SessionState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sessions[id]
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// IsOnline reports whether a character with the given name is registered.
func (r *Registry) IsOnline(name string) bool {
	id := NormalizeName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ss := range r.sessions {
		if ss.Character.Id() == id {
			return true
		}
	}
	return false
}

// MarkActive resets the session's idle timer to at.
func (r *Registry) MarkActive(id SessionID, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ss, ok := r.sessions[id]; ok {
		ss.LastActivity = at
	}
}

// ForEach calls fn for each session while holding the read lock. fn must not
// call back into the registry.
func (r *Registry) ForEach(fn func(SessionID, *SessionState)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, ss := range r.sessions {
		fn(id, ss)
	}
}

// Others returns the sessions other than exclude, ordered by character name.
func (r *Registry) Others(exclude SessionID) []*SessionState {
	r.mu.RLock()
	out := make([]*SessionState, 0, len(r.sessions))
	for id, ss := range r.sessions {
		if id != exclude {
			out = append(out, ss)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Character.Id() < out[j].Character.Id()
	})
	return out
}

// Send publishes data to a single session.
func (r *Registry) Send(id SessionID, data []byte) error {
	return r.bus.Publish(SessionSubject(id), data)
}

// Broadcast publishes data to every session registered at the time of the
// call except from. Returns the number of sessions the message was published to.
func (r *Registry) Broadcast(from SessionID, data []byte) (int, error) {
	targets := r.Others(from)

	el := errors.NewErrorList()
	sent := 0
	for _, ss := range targets {
		if err := r.Send(ss.Id, data); err != nil {
			el.Add(fmt.Errorf("publishing to %s: %w", ss.Id, err))
			continue
		}
		sent++
	}
	return sent, el.Err()
}

// SessionState holds the shared state of an authenticated session.
type SessionState struct {
	subscriber Subscriber
	msgs       chan []byte

	Id        SessionID
	Character *Character

	// Subscriptions
	subs   map[string]func()
	subsMu sync.Mutex

	// Session state
	Quit         bool
	LastActivity time.Time

	// Closed to signal the session's play loop to exit.
	done       chan struct{}
	kickOnce   sync.Once
	kickReason string
}

// Done returns the channel that is closed when the session is kicked.
func (s *SessionState) Done() <-chan struct{} {
	return s.done
}

// Kick closes the done channel, signaling the session to end with reason
// shown to the player. Only the first call has any effect.
func (s *SessionState) Kick(reason string) {
	s.kickOnce.Do(func() {
		s.kickReason = reason
		close(s.done)
	})
}

// KickReason returns the reason given to Kick. Only valid once Done is closed.
func (s *SessionState) KickReason() string {
	return s.kickReason
}

// Subscribe adds a new subscription delivering into the session's message
// channel. A full channel drops the message.
func (s *SessionState) Subscribe(subject string) error {
	if s.subscriber == nil {
		return fmt.Errorf("subscriber is nil")
	}

	unsub, err := s.subscriber.Subscribe(subject, func(data []byte) {
		select {
		case s.msgs <- data:
		default:
			slog.Warn("session message queue full, dropping message", "session", s.Id, "subject", subject)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribing to channel '%s': %w", subject, err)
	}

	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	// If we some how are subscribing to a channel we already think we have
	// unsubscribe from the existing one.
	if old, ok := s.subs[subject]; ok {
		old()
	}
	s.subs[subject] = unsub
	return nil
}

// Unsubscribe removes a subscription by name
func (s *SessionState) Unsubscribe(subject string) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if unsub, ok := s.subs[subject]; ok {
		unsub()
		delete(s.subs, subject)
	}
}

// UnsubscribeAll removes all subscriptions
func (s *SessionState) UnsubscribeAll() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for name, unsub := range s.subs {
		unsub()
		delete(s.subs, name)
	}
}
