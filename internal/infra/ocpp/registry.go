package ocpp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sony/gobreaker"

	"github.com/JulianHBuecher/ev-server/internal/pkg/errs"
	"github.com/JulianHBuecher/ev-server/internal/usecase/commands"
)

// OCPP 1.6 JSON frame types
const (
	callMessage       = 2
	callResultMessage = 3
	callErrorMessage  = 4
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StatusNotificationHandler receives connector status reports pushed by
// connected charge points.
type StatusNotificationHandler func(ctx context.Context, tenantID uuid.UUID, stationID string, connectorID int, status string)

type connKey struct {
	tenantID  uuid.UUID
	stationID string
}

// Registry accepts inbound charge-point websocket connections and hands
// out per-station command clients. Stations connect to
// {wsPath}{tenantID}/{stationID}; a station without a live connection is
// unreachable for commands.
type Registry struct {
	mu          sync.RWMutex
	conns       map[connKey]*stationConn
	callTimeout time.Duration
	onStatus    StatusNotificationHandler
	logger      *slog.Logger
}

func NewRegistry(callTimeout time.Duration, logger *slog.Logger) *Registry {
	return &Registry{
		conns:       make(map[connKey]*stationConn),
		callTimeout: callTimeout,
		logger:      logger,
	}
}

// SetStatusNotificationHandler wires inbound StatusNotification calls to
// the connector state store. Must be called before serving connections.
func (r *Registry) SetStatusNotificationHandler(h StatusNotificationHandler) {
	r.onStatus = h
}

// ClientFor returns a command client for the station, or
// errs.ErrBackendUnreachable when it has no live connection.
func (r *Registry) ClientFor(_ context.Context, tenantID uuid.UUID, stationID string) (commands.ChargePointClient, error) {
	r.mu.RLock()
	sc, ok := r.conns[connKey{tenantID: tenantID, stationID: stationID}]
	r.mu.RUnlock()
	if !ok {
		return nil, errs.Mark(errs.New("no live connection for station "+stationID), errs.ErrBackendUnreachable)
	}
	return &Client{sc: sc, timeout: r.callTimeout}, nil
}

// HandleWebSocket upgrades an inbound charge-point connection. The URL
// path below the configured prefix is {tenantID}/{stationID}.
func (r *Registry) HandleWebSocket(wsPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, wsPath)
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) != 2 || parts[1] == "" {
			http.Error(w, "missing tenant or station id", http.StatusBadRequest)
			return
		}
		tenantID, err := uuid.Parse(parts[0])
		if err != nil {
			http.Error(w, "invalid tenant id", http.StatusBadRequest)
			return
		}
		stationID := parts[1]

		ws, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			r.logger.Error("websocket upgrade failed", "station_id", stationID, "error", err)
			return
		}

		sc := newStationConn(ws, stationID)
		key := connKey{tenantID: tenantID, stationID: stationID}

		r.mu.Lock()
		if old, ok := r.conns[key]; ok {
			old.close()
		}
		r.conns[key] = sc
		r.mu.Unlock()

		r.logger.Info("charge point connected", "tenant_id", tenantID, "station_id", stationID)
		r.readLoop(tenantID, sc)

		r.mu.Lock()
		if r.conns[key] == sc {
			delete(r.conns, key)
		}
		r.mu.Unlock()
		sc.close()
		r.logger.Info("charge point disconnected", "tenant_id", tenantID, "station_id", stationID)
	}
}

func (r *Registry) readLoop(tenantID uuid.UUID, sc *stationConn) {
	for {
		_, message, err := sc.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				r.logger.Error("websocket read error", "station_id", sc.stationID, "error", err)
			}
			return
		}
		if err := r.processMessage(tenantID, sc, message); err != nil {
			r.logger.Error("failed to process OCPP message",
				"station_id", sc.stationID, "error", err)
		}
	}
}

// processMessage routes one OCPP 1.6 JSON frame.
// Call:       [2, uniqueId, action, payload]
// CallResult: [3, uniqueId, payload]
// CallError:  [4, uniqueId, code, description, details]
func (r *Registry) processMessage(tenantID uuid.UUID, sc *stationConn, raw []byte) error {
	var msg []json.RawMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return errs.Wrap(err, "invalid OCPP message format")
	}
	if len(msg) < 3 {
		return errs.New("OCPP message too short")
	}

	var msgType int
	if err := json.Unmarshal(msg[0], &msgType); err != nil {
		return errs.Wrap(err, "invalid message type")
	}
	var uniqueID string
	if err := json.Unmarshal(msg[1], &uniqueID); err != nil {
		return errs.Wrap(err, "invalid unique id")
	}

	switch msgType {
	case callResultMessage:
		sc.resolve(uniqueID, msg[2], nil)
		return nil

	case callErrorMessage:
		var code string
		_ = json.Unmarshal(msg[2], &code)
		sc.resolve(uniqueID, nil, errs.New("charge point returned call error: "+code))
		return nil

	case callMessage:
		if len(msg) < 4 {
			return errs.New("OCPP call message too short")
		}
		var action string
		if err := json.Unmarshal(msg[2], &action); err != nil {
			return errs.Wrap(err, "invalid action")
		}
		return r.handleCall(tenantID, sc, uniqueID, action, msg[3])

	default:
		return errs.New("unknown OCPP message type")
	}
}

func (r *Registry) handleCall(tenantID uuid.UUID, sc *stationConn, uniqueID, action string, payload json.RawMessage) error {
	switch action {
	case "StatusNotification":
		var req struct {
			ConnectorID int    `json:"connectorId"`
			Status      string `json:"status"`
		}
		if err := json.Unmarshal(payload, &req); err != nil {
			return errs.Wrap(err, "invalid StatusNotification payload")
		}
		if r.onStatus != nil {
			r.onStatus(context.Background(), tenantID, sc.stationID, req.ConnectorID, req.Status)
		}
		return sc.writeFrame(callResultMessage, uniqueID, struct{}{})

	case "Heartbeat":
		return sc.writeFrame(callResultMessage, uniqueID, map[string]string{
			"currentTime": time.Now().UTC().Format(time.RFC3339),
		})

	default:
		// Acknowledge calls outside the reservation scope so the station
		// does not retry them forever.
		return sc.writeFrame(callResultMessage, uniqueID, struct{}{})
	}
}

// stationConn owns one live websocket plus the pending-call table used to
// correlate CallResult frames back to their callers.
type stationConn struct {
	ws        *websocket.Conn
	stationID string
	breaker   *gobreaker.CircuitBreaker

	writeMu   sync.Mutex
	pendingMu sync.Mutex
	pending   map[string]chan callOutcome
	closed    bool
}

type callOutcome struct {
	payload json.RawMessage
	err     error
}

func newStationConn(ws *websocket.Conn, stationID string) *stationConn {
	return &stationConn{
		ws:        ws,
		stationID: stationID,
		pending:   make(map[string]chan callOutcome),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "ocpp-" + stationID,
			Timeout: 30 * time.Second,
		}),
	}
}

func (sc *stationConn) writeFrame(msgType int, uniqueID string, payload any) error {
	frame, err := json.Marshal([]any{msgType, uniqueID, payload})
	if err != nil {
		return errs.Wrap(err, "failed to marshal OCPP frame")
	}
	sc.writeMu.Lock()
	defer sc.writeMu.Unlock()
	return sc.ws.WriteMessage(websocket.TextMessage, frame)
}

func (sc *stationConn) writeCall(uniqueID, action string, payload any) error {
	frame, err := json.Marshal([]any{callMessage, uniqueID, action, payload})
	if err != nil {
		return errs.Wrap(err, "failed to marshal OCPP call")
	}
	sc.writeMu.Lock()
	defer sc.writeMu.Unlock()
	return sc.ws.WriteMessage(websocket.TextMessage, frame)
}

// call performs one request/response round trip against the station.
func (sc *stationConn) call(ctx context.Context, action string, payload any) (json.RawMessage, error) {
	uniqueID := uuid.NewString()
	outcome := make(chan callOutcome, 1)

	sc.pendingMu.Lock()
	if sc.closed {
		sc.pendingMu.Unlock()
		return nil, errs.Mark(errs.New("connection closed"), errs.ErrBackendUnreachable)
	}
	sc.pending[uniqueID] = outcome
	sc.pendingMu.Unlock()

	defer func() {
		sc.pendingMu.Lock()
		delete(sc.pending, uniqueID)
		sc.pendingMu.Unlock()
	}()

	if err := sc.writeCall(uniqueID, action, payload); err != nil {
		return nil, errs.Wrap(err, "failed to send OCPP call")
	}

	select {
	case out := <-outcome:
		return out.payload, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (sc *stationConn) resolve(uniqueID string, payload json.RawMessage, err error) {
	sc.pendingMu.Lock()
	ch, ok := sc.pending[uniqueID]
	delete(sc.pending, uniqueID)
	sc.pendingMu.Unlock()
	if ok {
		ch <- callOutcome{payload: payload, err: err}
	}
}

func (sc *stationConn) close() {
	sc.pendingMu.Lock()
	sc.closed = true
	for id, ch := range sc.pending {
		delete(sc.pending, id)
		ch <- callOutcome{err: errs.Mark(errs.New("connection closed"), errs.ErrBackendUnreachable)}
	}
	sc.pendingMu.Unlock()
	_ = sc.ws.Close()
}
