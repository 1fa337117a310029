// Package viewer is the host presentation surface: a WebSocket hub that
// ships the static scene to connecting clients and fans out one frame
// message per tick, while feeding client control input (play/pause
// toggle, viewport resize) back into the frame loop.
package viewer

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/fleetglass/route-animator/core"
	"github.com/fleetglass/route-animator/frameloop"
	"github.com/fleetglass/route-animator/internal/logging"
	"github.com/fleetglass/route-animator/internal/observability"
)

// Wire message types.
const (
	msgHello  = "hello"
	msgFrame  = "frame"
	msgToggle = "toggle"
	msgResize = "resize"
)

const (
	writeTimeout  = 5 * time.Second
	readLimit     = 1 << 16
	sendQueueSize = 32
)

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type resizePayload struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type helloPayload struct {
	Scene   *core.Scene      `json:"scene"`
	ViewFit core.ViewFit     `json:"viewFit"`
	Camera  core.CameraState `json:"camera"`
	Palette []string         `json:"palette"`
}

// Controls is the slice of the frame loop the hub feeds client input
// into. Both calls are non-blocking on the loop side.
type Controls interface {
	Toggle()
	Resize(width, height int)
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected viewers and broadcasts frames to them. A slow
// client never stalls the frame loop: frames it cannot keep up with are
// dropped and counted.
type Hub struct {
	log      logging.Logger
	metrics  *observability.ViewerCollector
	controls Controls
	upgrader websocket.Upgrader

	hello []byte

	mu      sync.Mutex
	clients map[string]*client
}

// NewHub builds a hub serving the given static scene and framing. The
// hello message is marshaled once; per-frame messages carry the live
// camera state, so late resizes reach every client anyway.
func NewHub(log logging.Logger, metrics *observability.ViewerCollector, scene *core.Scene, fit core.ViewFit, cam core.CameraState) (*Hub, error) {
	payload, err := json.Marshal(helloPayload{
		Scene:   scene,
		ViewFit: fit,
		Camera:  cam,
		Palette: core.Palette,
	})
	if err != nil {
		return nil, err
	}
	hello, err := json.Marshal(wsMessage{Type: msgHello, Payload: payload})
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logging.Noop()
	}
	return &Hub{
		log:      log,
		metrics:  metrics,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		hello:    hello,
		clients:  make(map[string]*client),
	}, nil
}

// SetControls attaches the frame loop's control surface. Must be called
// before the server starts accepting connections; the hub and the loop
// reference each other, so wiring happens in two steps.
func (h *Hub) SetControls(c Controls) { h.controls = c }

// ServeWS upgrades the request and services the client until it
// disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendQueueSize),
	}
	c.send <- h.hello

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	h.metrics.ClientConnected()
	log := h.log.With(logging.String("client_id", c.id))
	log.Info(r.Context(), "viewer connected", logging.String("remote", r.RemoteAddr))

	go h.writeLoop(c)
	h.readLoop(c)

	h.mu.Lock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
	h.mu.Unlock()
	h.metrics.ClientDisconnected()
	log.Info(context.Background(), "viewer disconnected")
}

// Broadcast marshals the frame once and offers it to every connected
// client without blocking. Implements the frame loop's present step.
func (h *Hub) Broadcast(frame frameloop.Frame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}
	buf, err := json.Marshal(wsMessage{Type: msgFrame, Payload: payload})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.send <- buf:
		default:
			h.metrics.FrameDropped()
		}
	}
}

// ClientCount returns the number of currently connected viewers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for buf := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, buf); err != nil {
			return
		}
	}
}

func (h *Hub) readLoop(c *client) {
	c.conn.SetReadLimit(readLimit)
	for {
		var msg wsMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Type {
		case msgToggle:
			if h.controls != nil {
				h.controls.Toggle()
			}
		case msgResize:
			var rs resizePayload
			if err := json.Unmarshal(msg.Payload, &rs); err != nil {
				continue
			}
			if h.controls != nil {
				h.controls.Resize(rs.Width, rs.Height)
			}
		default:
			// ignore
		}
	}
}
