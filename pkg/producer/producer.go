// Package producer is the client side of the view-tree wire protocol.
// A producer owns node identity: it mints view ids, streams patches to
// the hosting surface and receives input events addressed to the
// handlers it registered.
package producer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cpsdqs/birb/pkg/protocol"
)

// ErrClosed is returned for operations on a closed client.
var ErrClosed = errors.New("producer: connection closed")

// EventHandler receives input events for one handler id.
type EventHandler func(protocol.Event)

// NodeListHandler receives host acknowledgements of freshly
// constructed nodes.
type NodeListHandler func([]protocol.ViewId)

// Config holds producer connection settings.
type Config struct {
	// HandshakeTimeout bounds the hello exchange. Default: 10 seconds.
	HandshakeTimeout time.Duration

	// WriteTimeout bounds each frame write. Default: 10 seconds.
	WriteTimeout time.Duration

	// Logger for connection events. Default: slog.Default.
	Logger *slog.Logger

	// OnNodesLive is called when the host acknowledges node
	// construction. Runs on the read goroutine.
	OnNodesLive NodeListHandler
}

// Client is a live producer connection.
type Client struct {
	conn    *websocket.Conn
	config  Config
	logger  *slog.Logger
	surface string

	writeMu sync.Mutex

	handlerMu sync.RWMutex
	handlers  map[protocol.HandlerID]EventHandler

	done      chan struct{}
	closeOnce sync.Once
}

// Dial connects to a hosting surface and performs the hello exchange.
// url is the WebSocket endpoint, e.g. "ws://localhost:8080/birb/live".
func Dial(ctx context.Context, url, surface string, config Config) (*Client, error) {
	if config.HandshakeTimeout == 0 {
		config.HandshakeTimeout = 10 * time.Second
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = 10 * time.Second
	}
	if config.Logger == nil {
		config.Logger = slog.Default().With("component", "producer")
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("producer: dial %s: %w", url, err)
	}

	c := &Client{
		conn:     conn,
		config:   config,
		logger:   config.Logger,
		surface:  surface,
		handlers: make(map[protocol.HandlerID]EventHandler),
		done:     make(chan struct{}),
	}

	if err := c.handshake(); err != nil {
		conn.Close()
		return nil, err
	}

	go c.readLoop()
	return c, nil
}

func (c *Client) handshake() error {
	hello := protocol.EncodeHello(&protocol.Hello{
		Version: protocol.ProtocolVersion,
		Surface: c.surface,
	})
	if err := c.writeFrame(protocol.Frame{Type: protocol.FrameHello, Payload: hello}); err != nil {
		return fmt.Errorf("producer: send hello: %w", err)
	}

	c.conn.SetReadDeadline(time.Now().Add(c.config.HandshakeTimeout))
	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("producer: hello reply: %w", err)
	}
	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		return fmt.Errorf("producer: hello reply: %w", err)
	}
	if frame.Type != protocol.FrameHello {
		return fmt.Errorf("producer: unexpected handshake frame type %v", frame.Type)
	}
	reply, err := protocol.DecodeHello(frame.Payload)
	if err != nil {
		return fmt.Errorf("producer: decode hello reply: %w", err)
	}
	if reply.Version != protocol.ProtocolVersion {
		return fmt.Errorf("producer: host speaks protocol version %d, want %d",
			reply.Version, protocol.ProtocolVersion)
	}
	c.conn.SetReadDeadline(time.Time{})
	return nil
}

// Send streams a patch batch to the host. Patches apply in slice order.
func (c *Client) Send(patches []protocol.Patch) error {
	return c.writeFrame(protocol.Frame{
		Type:    protocol.FramePatches,
		Payload: protocol.EncodePatches(patches),
	})
}

// CreateLayer mints a view id and sends an update patch constructing a
// layer node for it.
func (c *Client) CreateLayer(layer protocol.LayerPatch) (protocol.ViewId, error) {
	id := protocol.NewViewId()
	return id, c.Send([]protocol.Patch{protocol.NewLayerPatch(id, layer)})
}

// UpdateLayer sends the layer's full property snapshot.
func (c *Client) UpdateLayer(id protocol.ViewId, layer protocol.LayerPatch) error {
	return c.Send([]protocol.Patch{protocol.NewLayerPatch(id, layer)})
}

// Attach makes child a subview of parent.
func (c *Client) Attach(parent, child protocol.ViewId) error {
	return c.Send([]protocol.Patch{protocol.NewSubviewPatch(parent, child)})
}

// Remove removes a view and, on the host, its entire subtree.
func (c *Client) Remove(id protocol.ViewId) error {
	return c.Send([]protocol.Patch{protocol.NewRemovePatch(id)})
}

// Handle registers fn for events addressed to a view and event type.
// A nil fn unregisters the handler.
func (c *Client) Handle(view protocol.ViewId, t protocol.EventTypeID, fn EventHandler) {
	hid := protocol.HandlerID{View: view, Type: t}
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()
	if fn == nil {
		delete(c.handlers, hid)
		return
	}
	c.handlers[hid] = fn
}

// Ping sends a protocol-level ping.
func (c *Client) Ping() error {
	return c.writeFrame(protocol.Frame{
		Type:    protocol.FrameControl,
		Payload: []byte{byte(protocol.ControlPing)},
	})
}

// Close announces the close to the host and tears the connection down.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.writeFrame(protocol.Frame{
			Type:    protocol.FrameControl,
			Payload: []byte{byte(protocol.ControlClose)},
		})
		close(c.done)
		c.conn.Close()
	})
	return err
}

// Done is closed when the connection has shut down.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) writeFrame(frame protocol.Frame) error {
	data, err := frame.Encode()
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
	return c.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (c *Client) readLoop() {
	defer c.Close()
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				c.logger.Error("read error", "error", err)
			}
			return
		}
		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			c.logger.Error("frame decode error", "error", err)
			return
		}

		switch frame.Type {
		case protocol.FrameEvent:
			c.handleEvent(frame.Payload)

		case protocol.FrameNodeList:
			c.handleNodeList(frame.Payload)

		case protocol.FrameControl:
			c.handleControl(frame.Payload)

		default:
			c.logger.Warn("unexpected frame type", "type", frame.Type)
		}
	}
}

func (c *Client) handleEvent(payload []byte) {
	ev, err := protocol.DecodeEvent(payload)
	if err != nil {
		c.logger.Error("event decode error", "error", err)
		return
	}
	c.handlerMu.RLock()
	fn := c.handlers[ev.Handler]
	c.handlerMu.RUnlock()
	if fn == nil {
		// Handlers for removed views may still receive trailing
		// events; those are dropped here.
		c.logger.Debug("event without handler", "view", ev.Handler.View, "event", ev.Type)
		return
	}
	fn(*ev)
}

func (c *Client) handleNodeList(payload []byte) {
	ids, err := protocol.DecodeViewIdList(protocol.NewDecoder(payload))
	if err != nil {
		c.logger.Error("node list decode error", "error", err)
		return
	}
	if c.config.OnNodesLive != nil {
		c.config.OnNodesLive(ids)
	}
}

func (c *Client) handleControl(payload []byte) {
	if len(payload) == 0 {
		return
	}
	switch protocol.ControlType(payload[0]) {
	case protocol.ControlPing:
		if err := c.writeFrame(protocol.Frame{
			Type:    protocol.FrameControl,
			Payload: []byte{byte(protocol.ControlPong)},
		}); err != nil {
			c.logger.Error("pong error", "error", err)
		}
	case protocol.ControlPong:
		c.logger.Debug("received pong")
	case protocol.ControlClose:
		c.logger.Info("host requested close")
		c.Close()
	}
}
