// Package console serves an interactive query loop over WebSocket. Each
// connection is one session; every inbound message gets exactly one reply.
package console

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/string-analyzer/internal/filter"
	"github.com/ziadkadry99/string-analyzer/internal/logger"
	"github.com/ziadkadry99/string-analyzer/internal/records"
)

// Path is where the console is mounted.
const Path = "/ws/query"

// Message types.
const (
	TypeQuery  = "query"
	TypeFilter = "filter"
	TypeResult = "result"
	TypeError  = "error"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Request is the incoming WebSocket message format.
type Request struct {
	Type    string           `json:"type"` // "query" or "filter"
	Query   string           `json:"query,omitempty"`
	Filters filter.FilterSet `json:"filters"`
}

// Response is the outgoing WebSocket message format.
type Response struct {
	Type      string `json:"type"` // "result" or "error"
	SessionID string `json:"session_id"`
	Result    any    `json:"result,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Console answers query and filter messages from records.Service.
type Console struct {
	svc *records.Service
	log *zap.Logger
}

// New creates a Console.
func New(svc *records.Service, log *zap.Logger) *Console {
	if log == nil {
		log = zap.NewNop()
	}
	return &Console{svc: svc, log: log}
}

// RegisterRoutes mounts the console on r.
func RegisterRoutes(r chi.Router, svc *records.Service, log *zap.Logger) {
	r.Get(Path, New(svc, log).ServeHTTP)
}

// ServeHTTP upgrades the connection and runs the session until the client
// disconnects.
func (c *Console) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.log.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	// The request context is cancelled by the timeout middleware, which
	// would otherwise cut long-lived sessions short.
	ctx := context.WithoutCancel(r.Context())
	sessionID := uuid.New().String()
	log := c.log.With(zap.String(logger.FieldSessionID, sessionID))
	log.Debug("console session opened")

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read", zap.Error(err))
			}
			log.Debug("console session closed")
			return
		}

		resp := c.Handle(ctx, sessionID, msg)
		if resp.Type == TypeError {
			log.Debug("console request failed", zap.String("error", resp.Error))
		}
		if err := conn.WriteJSON(resp); err != nil {
			log.Warn("websocket write", zap.Error(err))
			return
		}
	}
}

// Handle answers a single raw message.
func (c *Console) Handle(ctx context.Context, sessionID string, msg []byte) Response {
	var req Request
	if err := json.Unmarshal(msg, &req); err != nil {
		return errorResponse(sessionID, "invalid message format")
	}

	var (
		result any
		err    error
	)
	switch req.Type {
	case TypeQuery:
		if req.Query == "" {
			return errorResponse(sessionID, "query is required")
		}
		result, err = c.svc.Interpret(ctx, req.Query)
	case TypeFilter:
		result, err = c.svc.Filter(ctx, req.Filters)
	default:
		return errorResponse(sessionID, "unknown message type: "+req.Type)
	}
	if err != nil {
		if records.StatusFor(err) == http.StatusInternalServerError {
			c.log.Error("console request", zap.String(logger.FieldSessionID, sessionID), zap.Error(err))
		}
		return errorResponse(sessionID, records.ErrorMessage(err))
	}

	return Response{Type: TypeResult, SessionID: sessionID, Result: result}
}

func errorResponse(sessionID, message string) Response {
	return Response{Type: TypeError, SessionID: sessionID, Error: message}
}
