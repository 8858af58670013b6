package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/Temutjin2k/fare-estimator/pkg/logger"
	wrap "github.com/Temutjin2k/fare-estimator/pkg/logger/wrapper"
	"github.com/Temutjin2k/fare-estimator/pkg/metrics"
)

var (
	ErrEmptyConn      = errors.New("connection is empty")
	ErrConnIsNotFound = errors.New("connection not found")
)

// ConnectionHub stores and manages every active WebSocket connection.
type ConnectionHub struct {
	clients map[string]*Conn
	service string
	l       logger.Logger
	mu      sync.Mutex
	wg      sync.WaitGroup
}

func NewConnHub(service string, l logger.Logger) *ConnectionHub {
	return &ConnectionHub{
		clients: make(map[string]*Conn),
		service: service,
		l:       l,
	}
}

// Add registers a connection in the hub.
// An existing connection with the same id is closed and replaced.
func (h *ConnectionHub) Add(newConn *Conn) error {
	if newConn == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "add_ws_connection")

	if existing, ok := h.clients[newConn.id]; ok {
		h.l.Warn(ctx,
			"replacing existing connection",
			"conn_id", existing.id,
		)
		if err := existing.Close(); err != nil {
			h.l.Warn(ctx,
				"failed to close existing conn",
				"conn_id", existing.id,
				"err", err.Error(),
			)
		}
	} else {
		h.wg.Add(1)
		metrics.WebSocketConnectionsGauge.WithLabelValues(h.service).Inc()
	}

	h.clients[newConn.id] = newConn

	return nil
}

// Delete closes the connection and removes it from the hub.
func (h *ConnectionHub) Delete(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "ws_connection_delete")

	conn, ok := h.clients[id]
	if !ok {
		return ErrConnIsNotFound
	}

	if err := conn.Close(); err != nil {
		h.l.Debug(ctx,
			"failed to close conn",
			"conn_id", conn.id,
			"err", err.Error(),
		)
	}

	delete(h.clients, id)
	h.wg.Done()
	metrics.WebSocketConnectionsGauge.WithLabelValues(h.service).Dec()

	return nil
}

// SendTo writes msg to one client.
// Returns ErrConnIsNotFound if the connection is not registered.
func (h *ConnectionHub) SendTo(id string, msg any) error {
	conn, err := h.GetConn(id)
	if err != nil {
		return err
	}
	return conn.Send(msg)
}

// Close closes every websocket connection.
func (h *ConnectionHub) Close() {
	ctx := wrap.WithAction(context.Background(), "hub_close")

	// copy clients under the lock, close outside of it
	h.mu.Lock()
	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	h.mu.Unlock()

	for _, id := range ids {
		_ = h.Delete(id)
	}

	h.wg.Wait()

	h.l.Info(ctx, "all websocket connections closed gracefully")
}

func (h *ConnectionHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// GetConn returns the connection registered under id.
func (h *ConnectionHub) GetConn(id string) (*Conn, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.clients[id]
	if !ok {
		return nil, ErrConnIsNotFound
	}
	return conn, nil
}
