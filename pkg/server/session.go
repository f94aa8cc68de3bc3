package server

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/glint-dev/glint/pkg/protocol"
)

// Session errors.
var (
	ErrSessionClosed = errors.New("server: session closed")
	ErrQueueFull     = errors.New("server: forward queue full")
)

// Session is one client connection: a WebSocket plus the forward queue that
// carries element deltas to it. Session implements element.ForwardQueue.
type Session struct {
	// ID uniquely identifies the session.
	ID string

	conn   *websocket.Conn
	config *Config
	logger *slog.Logger

	forward chan *protocol.Delta
	done    chan struct{}

	closeOnce sync.Once
	closed    atomic.Bool
	writeMu   sync.Mutex

	lastActive atomic.Int64
	deltasSent atomic.Uint64
	bytesSent  atomic.Uint64

	// onClose runs once when the session closes.
	onClose func(*Session)
}

func newSession(id string, conn *websocket.Conn, config *Config) *Session {
	s := &Session{
		ID:      id,
		conn:    conn,
		config:  config,
		logger:  config.Logger.With("session", id),
		forward: make(chan *protocol.Delta, config.QueueDepth),
		done:    make(chan struct{}),
	}
	s.touch()
	return s
}

// Push submits a delta for delivery. It implements element.ForwardQueue.
// Push never blocks: a full queue is an error so the caller fails fast
// instead of stalling the script.
func (s *Session) Push(d *protocol.Delta) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.forward <- d:
		return nil
	case <-s.done:
		return ErrSessionClosed
	default:
		return ErrQueueFull
	}
}

// Start launches the session loops.
func (s *Session) Start() {
	go s.readLoop()
	go s.forwardLoop()
	go s.heartbeatLoop()
}

// Close shuts the session down. Safe to call multiple times.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.done)
		if s.conn != nil {
			s.conn.Close()
		}
		if s.onClose != nil {
			s.onClose(s)
		}
		s.logger.Info("session closed",
			"deltas_sent", s.deltasSent.Load(),
			"bytes_sent", s.bytesSent.Load())
	})
}

// LastActive returns the time of the last client activity.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// readLoop consumes client frames. Clients only send control messages;
// anything else is a protocol error.
func (s *Session) readLoop() {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}
		s.touch()

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Error("frame decode error", "error", err)
			s.sendError(protocol.NewError(protocol.ErrInvalidFrame, "malformed frame"))
			continue
		}

		switch frame.Type {
		case protocol.FrameControl:
			s.handleControlFrame(frame.Payload)
		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type)
		}
	}
}

func (s *Session) handleControlFrame(payload []byte) {
	ct, pp, err := protocol.DecodeControl(payload)
	if err != nil {
		s.logger.Error("control decode error", "error", err)
		return
	}

	switch ct {
	case protocol.ControlPing:
		if pp != nil {
			s.writeFrame(protocol.NewFrame(protocol.FrameControl,
				protocol.EncodeControl(protocol.ControlPong, pp)))
		}
	case protocol.ControlPong:
		s.logger.Debug("received pong")
	case protocol.ControlClose:
		s.logger.Info("client closing")
		s.Close()
	}
}

// forwardLoop drains the forward queue and writes delta frames. Deltas
// queued close together are batched into one frame.
func (s *Session) forwardLoop() {
	for {
		select {
		case d := <-s.forward:
			batch := []*protocol.Delta{d}
		drain:
			for len(batch) < 64 {
				select {
				case more := <-s.forward:
					batch = append(batch, more)
				default:
					break drain
				}
			}
			s.sendDeltas(batch)

		case <-s.done:
			return
		}
	}
}

func (s *Session) sendDeltas(deltas []*protocol.Delta) {
	payload := protocol.EncodeDeltas(&protocol.DeltasFrame{Deltas: deltas})
	if len(payload) > protocol.MaxPayloadSize && len(deltas) > 1 {
		mid := len(deltas) / 2
		s.sendDeltas(deltas[:mid])
		s.sendDeltas(deltas[mid:])
		return
	}
	if s.writeFrame(protocol.NewFrame(protocol.FrameDeltas, payload)) {
		s.deltasSent.Add(uint64(len(deltas)))
	}
}

// sendError reports an error to the client. Fatal errors close the session.
func (s *Session) sendError(em *protocol.ErrorMessage) {
	s.writeFrame(protocol.NewFrame(protocol.FrameError, protocol.EncodeErrorMessage(em)))
	if em.Fatal {
		s.Close()
	}
}

// writeFrame writes one frame, reporting whether the write succeeded.
func (s *Session) writeFrame(f *protocol.Frame) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.closed.Load() {
		return false
	}
	if len(f.Payload) > protocol.MaxPayloadSize {
		s.logger.Error("frame payload too large", "type", f.Type, "size", len(f.Payload))
		return false
	}

	data := f.Encode()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		s.logger.Error("write error", "error", err)
		go s.Close()
		return false
	}
	s.bytesSent.Add(uint64(len(data)))
	return true
}

// heartbeatLoop pings the client so intermediaries keep the connection
// alive.
func (s *Session) heartbeatLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pp := &protocol.PingPong{Timestamp: uint64(time.Now().UnixMilli())}
			if !s.writeFrame(protocol.NewFrame(protocol.FrameControl,
				protocol.EncodeControl(protocol.ControlPing, pp))) {
				return
			}
		case <-s.done:
			return
		}
	}
}
