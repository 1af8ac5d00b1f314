package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"base64-converter/internal/converter"

	"github.com/gorilla/websocket"
)

type wsMessage struct {
	Type  string           `json:"type"`
	ID    string           `json:"id,omitempty"`
	Text  string           `json:"text,omitempty"`
	OK    bool             `json:"ok,omitempty"`
	State *converter.State `json:"state,omitempty"`
}

// wsConn serialises writes; gorilla connections allow one writer at a time.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

type wsHub struct {
	mu     sync.Mutex
	groups map[string]map[*wsConn]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{
		groups: make(map[string]map[*wsConn]struct{}),
	}
}

func (h *wsHub) Add(sessionID string, conn *wsConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[sessionID]
	if group == nil {
		group = make(map[*wsConn]struct{})
		h.groups[sessionID] = group
	}
	group[conn] = struct{}{}
}

func (h *wsHub) Remove(sessionID string, conn *wsConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[sessionID]
	if group == nil {
		return
	}
	delete(group, conn)
	_ = conn.conn.Close()
	if len(group) == 0 {
		delete(h.groups, sessionID)
	}
}

// Send writes payload to every page of a session and reports how many
// received it.
func (h *wsHub) Send(sessionID string, payload any) int {
	h.mu.Lock()
	group := h.groups[sessionID]
	conns := make([]*wsConn, 0, len(group))
	for conn := range group {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return 0
	}
	sent := 0
	for _, conn := range conns {
		if err := conn.write(data); err != nil {
			h.Remove(sessionID, conn)
			continue
		}
		sent++
	}
	return sent
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	entry := s.sessions.ensure(w, r)
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	var header http.Header
	if cookies := w.Header().Values("Set-Cookie"); len(cookies) > 0 {
		header = http.Header{"Set-Cookie": cookies}
	}
	raw, err := upgrader.Upgrade(w, r, header)
	if err != nil {
		return
	}
	conn := &wsConn{conn: raw}
	log.Printf("ws connected session_id=%s remote=%s", entry.id, r.RemoteAddr)
	s.sessions.attach(entry)
	s.ws.Add(entry.id, conn)

	st := entry.session.State()
	if data, err := json.Marshal(wsMessage{Type: "state", State: &st}); err == nil {
		_ = conn.write(data)
	}
	go s.readWS(entry, conn)
}

func (s *Server) readWS(entry *sessionEntry, conn *wsConn) {
	defer s.sessions.detach(entry)
	defer s.ws.Remove(entry.id, conn)
	for {
		_, payload, err := conn.conn.ReadMessage()
		if err != nil {
			log.Printf("ws disconnected session_id=%s error=%v", entry.id, err)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			log.Printf("ws message ignored session_id=%s error=%v", entry.id, err)
			continue
		}
		switch msg.Type {
		case "clipboard_ack":
			entry.clipboard.resolve(msg.ID, msg.OK)
		default:
			log.Printf("ws message ignored session_id=%s type=%s", entry.id, msg.Type)
		}
	}
}
