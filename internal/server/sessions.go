package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"base64-converter/internal/converter"

	"github.com/google/uuid"
)

const sessionCookie = "b64_session"

type sessionEntry struct {
	id        string
	session   *converter.Session
	clipboard *clipboardRelay
	unsub     func()
	lastSeen  time.Time
	clients   int
}

type sessionStore struct {
	idle     time.Duration
	create   func(id string) *sessionEntry
	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

func newSessionStore(idle time.Duration, create func(id string) *sessionEntry) *sessionStore {
	return &sessionStore{
		idle:     idle,
		create:   create,
		sessions: make(map[string]*sessionEntry),
	}
}

// ensure returns the session behind the request cookie, creating the
// cookie and the session when either is missing. New sessions are built
// outside the store lock; when two requests race, the first stored wins.
func (s *sessionStore) ensure(w http.ResponseWriter, r *http.Request) *sessionEntry {
	id := s.ensureSessionID(w, r)

	s.mu.Lock()
	expired := s.pruneLocked(time.Now())
	entry, ok := s.sessions[id]
	if ok {
		entry.lastSeen = time.Now()
	}
	s.mu.Unlock()
	for _, old := range expired {
		old.close()
	}
	if ok {
		return entry
	}

	fresh := s.create(id)
	s.mu.Lock()
	entry, ok = s.sessions[id]
	if !ok {
		entry = fresh
		s.sessions[id] = entry
		log.Printf("session created session_id=%s", id)
	}
	entry.lastSeen = time.Now()
	s.mu.Unlock()
	if ok {
		fresh.close()
	}
	return entry
}

func (s *sessionStore) attach(entry *sessionEntry) {
	s.mu.Lock()
	entry.clients++
	entry.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *sessionStore) detach(entry *sessionEntry) {
	s.mu.Lock()
	if entry.clients > 0 {
		entry.clients--
	}
	entry.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *sessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// pruneLocked drops sessions idle for longer than s.idle that have no
// websocket attached. The caller closes the returned entries.
func (s *sessionStore) pruneLocked(now time.Time) []*sessionEntry {
	if s.idle <= 0 {
		return nil
	}
	var expired []*sessionEntry
	for id, entry := range s.sessions {
		if entry.clients > 0 || now.Sub(entry.lastSeen) < s.idle {
			continue
		}
		delete(s.sessions, id)
		expired = append(expired, entry)
		log.Printf("session expired session_id=%s", id)
	}
	return expired
}

func (s *sessionStore) closeAll() {
	s.mu.Lock()
	entries := make([]*sessionEntry, 0, len(s.sessions))
	for id, entry := range s.sessions {
		entries = append(entries, entry)
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	for _, entry := range entries {
		entry.close()
	}
}

func (e *sessionEntry) close() {
	if e.unsub != nil {
		e.unsub()
	}
	e.session.Close()
}

func (s *sessionStore) ensureSessionID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(sessionCookie)
	if err == nil && cookie.Value != "" {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return cookie.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) newSessionEntry(id string) *sessionEntry {
	relay := newClipboardRelay(s.ws, id, s.cfg.ClipboardTimeout())
	opts := s.cfg.SessionOptions()
	opts.Clipboard = relay
	var session *converter.Session
	opts.Tracker = s.usageTracker(id, func() converter.Mode {
		return session.State().Mode
	})

	session = converter.NewSession(opts)
	entry := &sessionEntry{
		id:        id,
		session:   session,
		clipboard: relay,
	}
	entry.unsub = session.Subscribe(func(st converter.State) {
		s.ws.Send(id, wsMessage{Type: "state", State: &st})
	})
	s.touchSession(id, session.State().Mode)
	return entry
}
