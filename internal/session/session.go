package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/inamate/vecdraw/internal/control"
	"github.com/inamate/vecdraw/internal/engine"
	"github.com/inamate/vecdraw/internal/scene"
	"github.com/inamate/vecdraw/internal/typeid"
)

var ErrUnknownPointerAction = errors.New("unknown pointer action")

// Session is one engine plus the websocket clients watching it. The engine
// is single-threaded; every call goes through mu.
type Session struct {
	ID string

	mu       sync.Mutex
	engine   *engine.Engine
	lastUsed time.Time
	clients  map[string]*Client
}

func newSession(cfg control.Config, now time.Time) *Session {
	return &Session{
		ID:       typeid.NewSessionID(),
		engine:   engine.NewEngine(cfg),
		lastUsed: now,
		clients:  make(map[string]*Client),
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastUsed = now
	s.mu.Unlock()
}

func (s *Session) idleSince() (time.Time, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed, len(s.clients)
}

// LoadSample replaces the scene with the sample drawing.
func (s *Session) LoadSample() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.LoadSample()
}

// Pointer feeds one pointer event to the engine and returns what changed.
func (s *Session) Pointer(action string, p PointerPayload) (*RenderPayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cursor string
	switch action {
	case PointerDown:
		cursor = s.engine.PointerDown(p.X, p.Y, p.Additive)
	case PointerMove:
		cursor = s.engine.PointerMove(p.X, p.Y)
	case PointerUp:
		cursor = s.engine.PointerUp(p.X, p.Y)
	case PointerCancel:
		s.engine.CancelGesture()
		cursor = s.engine.Hover(p.X, p.Y)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPointerAction, action)
	}

	out := s.renderLocked(false)
	out.Cursor = cursor
	return out, nil
}

// Execute runs a command against the engine.
func (s *Session) Execute(cmd engine.Command) (engine.Result, *RenderPayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.engine.Execute(cmd)
	if err != nil {
		slog.Debug("command failed", "session", s.ID, "type", cmd.Type, "error", err)
	}
	return res, s.renderLocked(false), err
}

// Render returns draw commands for every pane.
func (s *Session) Render() *RenderPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderLocked(true)
}

// RenderPane returns the draw commands of one pane, or of the whole scene
// when pane is empty.
func (s *Session) RenderPane(pane string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pane == "" {
		return s.engine.Render()
	}
	return s.engine.RenderPane(pane)
}

func (s *Session) SelectionBounds() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.GetSelectionBounds()
}

func (s *Session) Scene() engine.NodeInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.Describe(s.engine.Scene())
}

// renderLocked draws the dirty panes, or every pane when full is set.
func (s *Session) renderLocked(full bool) *RenderPayload {
	panes := s.engine.DirtyPanes()
	if full {
		panes = s.allPanesLocked()
	}

	out := &RenderPayload{
		Panes:           make(map[string]json.RawMessage, len(panes)),
		Selection:       s.engine.SelectionIDs(),
		SelectionBounds: json.RawMessage(s.engine.GetSelectionBounds()),
	}
	for _, p := range panes {
		out.Panes[p] = json.RawMessage(s.engine.RenderPane(p))
	}
	return out
}

func (s *Session) allPanesLocked() []string {
	seen := map[string]bool{engine.ControlsPane: true}
	scene.Walk(s.engine.Scene(), func(sh scene.Shape) bool {
		seen[sh.Pane()] = true
		return true
	})
	panes := make([]string, 0, len(seen))
	for p := range seen {
		panes = append(panes, p)
	}
	sort.Strings(panes)
	return panes
}

// --- Clients ---

func (s *Session) addClient(c *Client) {
	s.mu.Lock()
	s.clients[c.ID] = c
	s.mu.Unlock()
}

// removeClient reports whether c was still attached.
func (s *Session) removeClient(c *Client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.ID]; !ok {
		return false
	}
	delete(s.clients, c.ID)
	c.close("")
	return true
}

// closeClients detaches every client and closes its send channel. reason is
// shown to the browsers in the close frame.
func (s *Session) closeClients(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.clients {
		delete(s.clients, id)
		c.close(reason)
	}
}

func (s *Session) broadcast(msg *Message) {
	s.mu.Lock()
	clients := make([]*Client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		c.Send(msg)
	}
}

// handleMessage dispatches one message from a websocket client.
func (s *Session) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp, TypePointerCancel:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			sender.Send(newMessage(TypeError, ErrorPayload{Message: "invalid pointer payload"}))
			return
		}
		out, err := s.Pointer(msg.Type[len("pointer."):], p)
		if err != nil {
			sender.Send(newMessage(TypeError, ErrorPayload{Message: err.Error()}))
			return
		}
		if len(out.Panes) == 0 {
			sender.Send(newMessage(TypeRender, out))
			return
		}
		s.broadcast(newMessage(TypeRender, out))

	case TypeCommand:
		var p CommandPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			sender.Send(newMessage(TypeError, ErrorPayload{Message: "invalid command payload"}))
			return
		}
		res, out, err := s.Execute(p.Command)
		if err != nil {
			sender.Send(newMessage(TypeCommandNack, CommandNackPayload{ID: p.ID, Reason: err.Error()}))
		} else {
			sender.Send(newMessage(TypeCommandAck, CommandAckPayload{ID: p.ID, IDs: res.IDs}))
		}
		if len(out.Panes) > 0 {
			s.broadcast(newMessage(TypeRender, out))
		}

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", sender.ID)
		sender.Send(newMessage(TypeError, ErrorPayload{Message: "unknown message type: " + msg.Type}))
	}
}
