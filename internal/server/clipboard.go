package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	errNoClipboardClient = errors.New("no browser connected to receive the clipboard write")
	errClipboardDenied   = errors.New("browser refused the clipboard write")
)

// clipboardRelay writes to the browser clipboard by asking a connected
// page to do it and waiting for its acknowledgement.
type clipboardRelay struct {
	hub       *wsHub
	sessionID string
	timeout   time.Duration

	mu      sync.Mutex
	pending map[string]chan bool
}

func newClipboardRelay(hub *wsHub, sessionID string, timeout time.Duration) *clipboardRelay {
	return &clipboardRelay{
		hub:       hub,
		sessionID: sessionID,
		timeout:   timeout,
		pending:   make(map[string]chan bool),
	}
}

func (c *clipboardRelay) WriteText(ctx context.Context, text string) error {
	id := uuid.NewString()
	ack := make(chan bool, 1)
	c.mu.Lock()
	c.pending[id] = ack
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	if sent := c.hub.Send(c.sessionID, wsMessage{Type: "clipboard", ID: id, Text: text}); sent == 0 {
		return errNoClipboardClient
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	select {
	case ok := <-ack:
		if !ok {
			return errClipboardDenied
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resolve delivers a browser acknowledgement. Only the first answer for an
// id counts.
func (c *clipboardRelay) resolve(id string, ok bool) {
	c.mu.Lock()
	ack, found := c.pending[id]
	if found {
		delete(c.pending, id)
	}
	c.mu.Unlock()
	if found {
		ack <- ok
	}
}
