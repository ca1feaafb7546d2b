package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"

	"github.com/cpsdqs/birb/pkg/host"
	"github.com/cpsdqs/birb/pkg/protocol"
)

// command runs on the session loop goroutine with exclusive access to
// the registry.
type command func(reg *host.Registry)

// Session is one producer connection and its node registry. The
// registry is owned by the session loop goroutine; external goroutines
// reach it through Emit and Do.
type Session struct {
	id       string
	server   *Server
	conn     *websocket.Conn
	config   *SessionConfig
	logger   *slog.Logger
	registry *host.Registry

	surface   string
	helloDone bool

	frames   chan []byte
	commands chan command
	send     chan []byte
	done     chan struct{}

	closeOnce sync.Once
}

func newSession(s *Server, conn *websocket.Conn) *Session {
	sess := &Session{
		id:       uuid.New().String(),
		server:   s,
		conn:     conn,
		config:   s.config.SessionConfig,
		frames:   make(chan []byte, 16),
		commands: make(chan command, 16),
		send:     make(chan []byte, s.config.SessionConfig.SendQueue),
		done:     make(chan struct{}),
	}
	sess.logger = s.logger.With("session", sess.id)
	sess.registry = host.NewRegistry(
		s.newBackend(sess.logger),
		func(ev protocol.Event, _ any) { sess.sendEvent(ev) },
		sess,
		sess.logger,
	)
	return sess
}

// ID returns the session's unique identifier.
func (sess *Session) ID() string {
	return sess.id
}

// Surface returns the surface name the producer announced in its hello
// frame, or "" before the handshake.
func (sess *Session) Surface() string {
	return sess.surface
}

// handleLive upgrades the connection and runs the session until either
// side closes it.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sess := newSession(s, conn)
	if !s.track(sess) {
		s.logger.Warn("session limit reached, rejecting producer")
		deadline := time.Now().Add(time.Second)
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "session limit"), deadline)
		conn.Close()
		return
	}
	sess.logger.Info("producer connected", "remote", conn.RemoteAddr())

	conn.SetReadLimit(sess.config.MaxMessageSize)
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(sess.config.ReadTimeout))
	})

	go sess.writeLoop()
	go sess.run()
	sess.readSocket()
}

// readSocket pulls raw messages off the wire and hands them to the
// session loop. It runs on the HTTP handler goroutine.
func (sess *Session) readSocket() {
	defer close(sess.frames)
	for {
		sess.conn.SetReadDeadline(time.Now().Add(sess.config.ReadTimeout))
		_, msg, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				sess.logger.Error("read error", "error", err)
			}
			return
		}
		select {
		case sess.frames <- msg:
		case <-sess.done:
			return
		}
	}
}

// run is the session loop. It is the only goroutine that touches the
// registry, so patches apply strictly in arrival order.
func (sess *Session) run() {
	defer func() {
		sess.server.metrics.nodesLive.Add(-float64(sess.registry.Len()))
		sess.logger.Info("producer disconnected", "nodes", sess.registry.Len())
		sess.Close()
	}()

	for {
		select {
		case msg, ok := <-sess.frames:
			if !ok {
				return
			}
			if !sess.handleMessage(msg) {
				return
			}
		case cmd := <-sess.commands:
			cmd(sess.registry)
		case <-sess.done:
			return
		}
	}
}

// handleMessage processes one wire message. It reports false when the
// session must terminate.
func (sess *Session) handleMessage(msg []byte) bool {
	sess.server.metrics.bytesReceived.Add(float64(len(msg)))

	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		sess.logger.Error("frame decode error", "error", err)
		sess.server.metrics.frameErrors.WithLabelValues("decode").Inc()
		return false
	}

	switch frame.Type {
	case protocol.FrameHello:
		return sess.handleHello(frame.Payload)

	case protocol.FramePatches:
		if !sess.helloDone {
			sess.logger.Error("patch frame before hello")
			sess.server.metrics.frameErrors.WithLabelValues("handshake").Inc()
			return false
		}
		return sess.applyPatches(frame.Payload)

	case protocol.FrameControl:
		return sess.handleControl(frame.Payload)

	default:
		// Events and node lists only flow host to producer.
		sess.logger.Warn("unexpected frame type", "type", frame.Type)
		sess.server.metrics.frameErrors.WithLabelValues("unexpected").Inc()
		return true
	}
}

func (sess *Session) handleHello(payload []byte) bool {
	hello, err := protocol.DecodeHello(payload)
	if err != nil {
		sess.logger.Error("hello decode error", "error", err)
		sess.server.metrics.frameErrors.WithLabelValues("decode").Inc()
		return false
	}
	if hello.Version != protocol.ProtocolVersion {
		sess.logger.Error("protocol version mismatch",
			"producer", hello.Version, "host", protocol.ProtocolVersion)
		sess.server.metrics.frameErrors.WithLabelValues("version").Inc()
		return false
	}
	if !sess.server.claimSurface(hello.Surface, sess) {
		sess.logger.Error("surface already has a producer", "surface", hello.Surface)
		sess.server.metrics.frameErrors.WithLabelValues("surface").Inc()
		return false
	}
	sess.helloDone = true
	sess.logger.Info("handshake complete", "surface", hello.Surface)

	sess.enqueue(protocol.Frame{
		Type:    protocol.FrameHello,
		Payload: protocol.EncodeHello(&protocol.Hello{Version: protocol.ProtocolVersion, Surface: hello.Surface}),
	})
	if sess.server.onSession != nil {
		sess.server.onSession(sess)
	}
	return true
}

// applyPatches decodes and applies a patch batch in order. A backend
// panic means the producer sent a node type this host cannot build;
// that is unrecoverable and ends the session.
func (sess *Session) applyPatches(payload []byte) (ok bool) {
	_, span := sess.server.tracer.Start(context.Background(), "session.apply_patches")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			sess.logger.Error("protocol violation, terminating session", "panic", r)
			sess.server.metrics.frameErrors.WithLabelValues("violation").Inc()
			ok = false
		}
	}()

	patches, err := protocol.DecodePatches(payload)
	if err != nil {
		sess.logger.Error("patch decode error", "error", err)
		sess.server.metrics.frameErrors.WithLabelValues("decode").Inc()
		return false
	}
	span.SetAttributes(attribute.Int("patch.count", len(patches)))

	before := sess.registry.Len()
	var created []protocol.ViewId
	for _, p := range patches {
		if sess.registry.Apply(p) {
			created = append(created, p.View)
		}
		sess.server.metrics.patchesApplied.WithLabelValues(p.Type.String()).Inc()
	}
	sess.server.metrics.nodesLive.Add(float64(sess.registry.Len() - before))

	// Acknowledge freshly constructed nodes so the producer can tell
	// when its handles became live.
	if len(created) > 0 {
		e := protocol.NewEncoder()
		protocol.EncodeViewIdList(e, created)
		sess.enqueue(protocol.Frame{Type: protocol.FrameNodeList, Payload: e.Bytes()})
	}
	return true
}

func (sess *Session) handleControl(payload []byte) bool {
	if len(payload) == 0 {
		sess.logger.Error("empty control frame")
		sess.server.metrics.frameErrors.WithLabelValues("decode").Inc()
		return false
	}
	switch protocol.ControlType(payload[0]) {
	case protocol.ControlPing:
		sess.enqueue(protocol.Frame{
			Type:    protocol.FrameControl,
			Payload: []byte{byte(protocol.ControlPong)},
		})
		return true
	case protocol.ControlPong:
		sess.logger.Debug("received pong")
		return true
	case protocol.ControlClose:
		sess.logger.Info("producer requested close")
		return false
	default:
		sess.logger.Warn("unknown control type", "type", payload[0])
		return true
	}
}

// Emit dispatches an input event to a view's producer-side handler. It
// may be called from any goroutine; the event is routed through the
// session loop so handler ids are derived under registry ownership.
// Events for views that are not live are dropped.
func (sess *Session) Emit(view protocol.ViewId, t protocol.EventTypeID, timestamp float64, data any) {
	sess.post(func(reg *host.Registry) {
		node, ok := reg.Node(view)
		if !ok {
			sess.logger.Warn("event for unknown view", "view", view, "event", t)
			return
		}
		node.Emit(t, timestamp, data)
	})
}

// Do runs fn on the session loop with exclusive registry access and
// waits for it to finish. It reports false when the session closed
// before fn could run.
func (sess *Session) Do(fn func(reg *host.Registry)) bool {
	ran := make(chan struct{})
	sess.post(func(reg *host.Registry) {
		fn(reg)
		close(ran)
	})
	select {
	case <-ran:
		return true
	case <-sess.done:
		return false
	}
}

func (sess *Session) post(cmd command) {
	select {
	case sess.commands <- cmd:
	case <-sess.done:
	}
}

// sendEvent encodes and queues an event frame. Runs on the session
// loop, as the registry's dispatch sink.
func (sess *Session) sendEvent(ev protocol.Event) {
	payload, err := protocol.EncodeEvent(&ev)
	if err != nil {
		sess.logger.Error("event encode error", "error", err, "event", ev.Type)
		return
	}
	sess.server.metrics.eventsSent.WithLabelValues(ev.Type.String()).Inc()
	sess.enqueue(protocol.Frame{Type: protocol.FrameEvent, Payload: payload})
}

func (sess *Session) enqueue(frame protocol.Frame) {
	data, err := frame.Encode()
	if err != nil {
		sess.logger.Error("frame encode error", "error", err, "type", frame.Type)
		return
	}
	// Block rather than drop: producers rely on every frame arriving.
	select {
	case sess.send <- data:
	case <-sess.done:
	}
}

// writeLoop owns the connection's write side: queued frames plus
// heartbeat pings.
func (sess *Session) writeLoop() {
	ticker := time.NewTicker(sess.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case data := <-sess.send:
			sess.conn.SetWriteDeadline(time.Now().Add(sess.config.WriteTimeout))
			if err := sess.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				sess.logger.Error("write error", "error", err)
				sess.Close()
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(sess.config.WriteTimeout)
			if err := sess.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				sess.logger.Error("ping error", "error", err)
				sess.Close()
				return
			}
		case <-sess.done:
			deadline := time.Now().Add(time.Second)
			sess.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			return
		}
	}
}

// Close tears the session down. Safe to call from any goroutine, and
// more than once.
func (sess *Session) Close() {
	sess.closeOnce.Do(func() {
		close(sess.done)
		sess.conn.Close()
		sess.server.untrack(sess)
	})
}
