package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/coder/websocket"
	"github.com/gorilla/mux"

	"github.com/inamate/vecdraw/internal/engine"
	"github.com/inamate/vecdraw/internal/path"
	"github.com/inamate/vecdraw/internal/scene"
)

type Handler struct {
	manager        *Manager
	originPatterns []string
}

// NewHandler serves sessions from m. Websocket upgrades are accepted from
// the given origins, written as full URLs or bare hosts.
func NewHandler(m *Manager, origins []string) *Handler {
	return &Handler{manager: m, originPatterns: originPatterns(origins)}
}

// Routes registers the session endpoints on r.
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/sessions", h.Create).Methods("POST", "OPTIONS")
	r.HandleFunc("/sessions/{sessionId}", h.Delete).Methods("DELETE", "OPTIONS")
	r.HandleFunc("/sessions/{sessionId}/render", h.Render).Methods("GET")
	r.HandleFunc("/sessions/{sessionId}/scene", h.Scene).Methods("GET")
	r.HandleFunc("/sessions/{sessionId}/pointer", h.Pointer).Methods("POST", "OPTIONS")
	r.HandleFunc("/sessions/{sessionId}/commands", h.Command).Methods("POST", "OPTIONS")
	r.HandleFunc("/sessions/{sessionId}/selection/bounds", h.SelectionBounds).Methods("GET")
	r.HandleFunc("/sessions/{sessionId}/ws", h.WebSocket)
}

type createRequest struct {
	Sample bool `json:"sample"`
}

type createResponse struct {
	ID     string         `json:"id"`
	Render *RenderPayload `json:"render"`
}

type pointerRequest struct {
	Action string `json:"action"`
	PointerPayload
}

type commandResponse struct {
	IDs    []string       `json:"ids,omitempty"`
	Render *RenderPayload `json:"render"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}

	s, err := h.manager.Create()
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if req.Sample {
		if err := s.LoadSample(); err != nil {
			slog.Error("load sample failed", "session", s.ID, "error", err)
			h.manager.Delete(s.ID)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
	}

	writeJSON(w, http.StatusCreated, createResponse{ID: s.ID, Render: s.Render()})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Delete(mux.Vars(r)["sessionId"]); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Render returns draw commands for the whole scene, or for one pane with
// ?pane=.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Get(mux.Vars(r)["sessionId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeRaw(w, s.RenderPane(r.URL.Query().Get("pane")))
}

func (h *Handler) Scene(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Get(mux.Vars(r)["sessionId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Scene())
}

func (h *Handler) SelectionBounds(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Get(mux.Vars(r)["sessionId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeRaw(w, s.SelectionBounds())
}

func (h *Handler) Pointer(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Get(mux.Vars(r)["sessionId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var req pointerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	out, err := s.Pointer(req.Action, req.PointerPayload)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if len(out.Panes) > 0 {
		s.broadcast(newMessage(TypeRender, out))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Get(mux.Vars(r)["sessionId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var cmd engine.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if cmd.Type == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type is required"})
		return
	}

	res, out, err := s.Execute(cmd)
	if len(out.Panes) > 0 {
		s.broadcast(newMessage(TypeRender, out))
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, commandResponse{IDs: res.IDs, Render: out})
}

func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Get(mux.Vars(r)["sessionId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h.manager, s, conn)
	if !h.manager.Register(client) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// originPatterns reduces origins to the host patterns websocket.Accept
// matches against.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			o = u.Host
		}
		out = append(out, o)
	}
	return out
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
	case errors.Is(err, ErrTooManySessions):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "too many sessions"})
	case errors.Is(err, engine.ErrShapeNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, scene.ErrVetoed):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrUnknownPointerAction),
		errors.Is(err, engine.ErrUnknownCommand),
		errors.Is(err, engine.ErrNotAGroup),
		errors.Is(err, engine.ErrInvalidPathOp),
		errors.Is(err, engine.ErrMissingField),
		errors.Is(err, scene.ErrNegativeSize),
		errors.Is(err, scene.ErrNegativeRadius),
		errors.Is(err, scene.ErrCycle),
		errors.Is(err, scene.ErrSceneChild),
		errors.Is(err, scene.ErrNotChild),
		errors.Is(err, path.ErrNoCurrentPoint),
		errors.Is(err, path.ErrNoCubicPredecessor),
		errors.Is(err, path.ErrNoQuadPredecessor),
		errors.Is(err, path.ErrOutOfRange):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeRaw(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
