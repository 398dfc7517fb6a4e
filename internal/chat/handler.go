package chat

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/dealspot/subscription-deals-site/internal/intent"
	"github.com/dealspot/subscription-deals-site/internal/observability/metrics"
	"github.com/dealspot/subscription-deals-site/pkg/logging"
)

// Config controls chat pacing and history replay.
type Config struct {
	// ReplyDelay is how long the typing indicator shows before the bot reply.
	ReplyDelay time.Duration
	// ModalOpenDelay is the shorter pause between a purchase reply and the
	// open_modal nudge that follows it.
	ModalOpenDelay time.Duration
	// HistoryLimit caps how many messages are replayed on connect.
	HistoryLimit int64
}

// DefaultConfig matches the page's original pacing.
func DefaultConfig() Config {
	return Config{
		ReplyDelay:     time.Second,
		ModalOpenDelay: 300 * time.Millisecond,
		HistoryLimit:   50,
	}
}

// Handler manages chat widget connections and messages.
type Handler struct {
	matcher    *intent.Matcher
	transcript TranscriptStore
	metrics    *metrics.SiteMetrics
	cfg        Config
	logger     *logging.Logger
	widgetJS   []byte

	mu       sync.RWMutex
	sessions map[string]*wsConn // sessionID -> active connection
}

type wsConn struct {
	conn *websocket.Conn
	done chan struct{}
}

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type      string `json:"type"` // "message", "ping"
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type      string           `json:"type"` // "message", "typing", "open_modal", "history", "session", "pong", "error"
	Text      string           `json:"text,omitempty"`
	Role      string           `json:"role,omitempty"` // "bot" or "user"
	DealID    string           `json:"deal_id,omitempty"`
	SessionID string           `json:"session_id,omitempty"`
	Timestamp string           `json:"timestamp,omitempty"`
	Messages  []HistoryMessage `json:"messages,omitempty"`
}

// HistoryMessage is a simplified message for history responses.
type HistoryMessage struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// suggestedQuestions are the pre-written prompts the widget renders as
// clickable controls. Clicking one behaves as if the visitor typed it.
var suggestedQuestions = []string{
	"What deals do you have?",
	"Tell me about Netflix",
	"How does it work?",
	"Buy Spotify",
}

// NewHandler creates a chat handler.
func NewHandler(matcher *intent.Matcher, transcript TranscriptStore, m *metrics.SiteMetrics, cfg Config, widgetJS []byte, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultConfig().HistoryLimit
	}
	return &Handler{
		matcher:    matcher,
		transcript: transcript,
		metrics:    m,
		cfg:        cfg,
		logger:     logger,
		widgetJS:   widgetJS,
		sessions:   make(map[string]*wsConn),
	}
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// HandleWebSocket upgrades to WebSocket and handles real-time messaging.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = generateSessionID()
	}

	// Send session info
	_ = websocket.JSON.Send(conn, OutboundMessage{
		Type:      "session",
		SessionID: sessionID,
	})

	// Replay history if available
	if h.transcript != nil {
		if msgs, err := h.transcript.List(r.Context(), sessionID, h.cfg.HistoryLimit); err == nil && len(msgs) > 0 {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "history", Messages: toHistory(msgs)})
		}
	}

	// Register connection
	wsc := &wsConn{conn: conn, done: make(chan struct{})}
	h.mu.Lock()
	h.sessions[sessionID] = wsc
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		if h.sessions[sessionID] == wsc {
			delete(h.sessions, sessionID)
		}
		h.mu.Unlock()
		close(wsc.done)
	}()

	h.logger.Info("chat: connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("chat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}

		if msg.Type != "message" {
			continue
		}

		h.handleTurn(r.Context(), sessionID, msg.Text)
	}
}

// handleTurn runs one user turn over the WebSocket: append the user message,
// show typing, then deliver the bot reply after ReplyDelay and, for purchase
// matches, the open_modal nudge after a further ModalOpenDelay. The two
// timers are independent; turns submitted in quick succession may interleave,
// which is accepted.
func (h *Handler) handleTurn(ctx context.Context, sessionID, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	if h.transcript != nil {
		_ = h.transcript.Append(ctx, sessionID, Message{
			Role:      RoleUser,
			Text:      text,
			Timestamp: time.Now().UTC(),
		})
	}

	h.sendToSession(sessionID, OutboundMessage{Type: "typing"})

	resp, matched := h.respond(text)

	time.AfterFunc(h.cfg.ReplyDelay, func() {
		if h.transcript != nil {
			_ = h.transcript.Append(context.Background(), sessionID, Message{
				Role:      RoleBot,
				Text:      resp.Text,
				Timestamp: time.Now().UTC(),
			})
		}
		h.sendToSession(sessionID, OutboundMessage{
			Type:      "message",
			Role:      RoleBot,
			Text:      resp.Text,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})

		if resp.Action != nil && resp.Action.Type == intent.ActionOpenModal {
			dealID := resp.Action.DealID
			time.AfterFunc(h.cfg.ModalOpenDelay, func() {
				// The widget ignores this nudge while the visitor already
				// has the panel open.
				h.sendToSession(sessionID, OutboundMessage{Type: "open_modal", DealID: dealID})
			})
		}
	})

	h.logger.Info("chat: turn handled", "session_id", sessionID, "intent", string(matched))
}

func (h *Handler) respond(text string) (intent.Response, intent.Intent) {
	start := time.Now()
	resp, matched := h.matcher.Classify(text)
	h.metrics.ObserveChatRespondLatency(time.Since(start).Seconds())
	h.metrics.ObserveChatMessage(string(matched))
	return resp, matched
}

// sendToSession sends a message to an active WebSocket session.
func (h *Handler) sendToSession(sessionID string, msg OutboundMessage) {
	h.mu.RLock()
	wsc, ok := h.sessions[sessionID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	_ = websocket.JSON.Send(wsc.conn, msg)
}

// MessageResponse is the HTTP fallback reply. The delay hints let the
// widget pace the typing indicator and modal nudge itself.
type MessageResponse struct {
	SessionID    string          `json:"session_id"`
	Reply        intent.Response `json:"reply"`
	ReplyDelayMS int64           `json:"reply_delay_ms"`
	ModalDelayMS int64           `json:"modal_delay_ms"`
}

// HandleMessage is the HTTP fallback for sending messages.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		Text      string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		req.SessionID = generateSessionID()
	}

	if h.transcript != nil {
		_ = h.transcript.Append(r.Context(), req.SessionID, Message{
			Role:      RoleUser,
			Text:      req.Text,
			Timestamp: time.Now().UTC(),
		})
	}

	resp, _ := h.respond(req.Text)

	if h.transcript != nil {
		_ = h.transcript.Append(r.Context(), req.SessionID, Message{
			Role:      RoleBot,
			Text:      resp.Text,
			Timestamp: time.Now().UTC(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(MessageResponse{
		SessionID:    req.SessionID,
		Reply:        resp,
		ReplyDelayMS: h.cfg.ReplyDelay.Milliseconds(),
		ModalDelayMS: h.cfg.ModalOpenDelay.Milliseconds(),
	})
}

// HandleHistory returns chat history for a session.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	if h.transcript == nil {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"messages": []HistoryMessage{}})
		return
	}

	msgs, err := h.transcript.List(r.Context(), sessionID, h.cfg.HistoryLimit)
	if err != nil {
		h.logger.Error("chat: failed to load history", "error", err)
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"messages": toHistory(msgs)})
}

// HandleSuggestions returns the suggested-question prompts.
func (h *Handler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"suggestions": suggestedQuestions})
}

// HandleWidgetJS serves the embeddable page script.
func (h *Handler) HandleWidgetJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	_, _ = w.Write(h.widgetJS)
}

func toHistory(msgs []Message) []HistoryMessage {
	history := make([]HistoryMessage, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, HistoryMessage{
			Role:      m.Role,
			Text:      m.Text,
			Timestamp: m.Timestamp.Format(time.RFC3339),
		})
	}
	return history
}
