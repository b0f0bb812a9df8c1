package server

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/vtree/pkg/protocol"
)

var clientIDs atomic.Uint64

// client is one WebSocket connection. Frames are written only by its
// writeLoop.
type client struct {
	id   uint64
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newClient(conn *websocket.Conn, buffer int) *client {
	return &client{
		id:   clientIDs.Add(1),
		conn: conn,
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

// offer queues msg without blocking and reports whether it fit.
func (c *client) offer(msg []byte) bool {
	select {
	case <-c.done:
		return true
	default:
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// push queues msg, waiting for room unless the client closes.
func (c *client) push(msg []byte) bool {
	select {
	case c.send <- msg:
		return true
	case <-c.done:
		return false
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
	})
}

// HandleWebSocket upgrades the request and serves the client until it
// disconnects.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		s.recordError("upgrade")
		return
	}
	c := newClient(conn, s.config.ClientBuffer)
	logger := s.logger.With("client", c.id)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeLoop(c)
	}()

	joined := false
	s.streamer.Join(func(pf *protocol.PatchesFrame) {
		frames, err := protocol.PatchFrames(pf)
		if err != nil {
			logger.Error("encode snapshot failed", "error", err)
			return
		}
		for _, f := range frames {
			if !c.push(f.Encode()) {
				return
			}
		}
		s.mu.Lock()
		s.clients[c] = struct{}{}
		if s.metrics != nil {
			s.metrics.ClientConnected()
		}
		s.mu.Unlock()
		joined = true
	})
	if !joined {
		c.close()
		<-writerDone
		return
	}
	logger.Info("client connected", "remote", r.RemoteAddr)

	s.readLoop(c)

	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	c.close()
	<-writerDone

	if s.metrics != nil {
		s.metrics.ClientDisconnected()
	}
	logger.Info("client disconnected")
}

// writeLoop writes queued frames until the client closes, then closes the
// connection.
func (s *Server) writeLoop(c *client) {
	defer c.conn.Close()
	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
				s.logger.Debug("write failed", "client", c.id, "error", err)
				s.recordError("write")
				c.close()
				return
			}
			if s.metrics != nil && len(msg) > 0 && protocol.FrameType(msg[0]) == protocol.FramePatches {
				s.metrics.RecordFrame(len(msg))
			}
		case <-c.done:
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			return
		}
	}
}

// readLoop reads client frames until the connection fails or the client
// is closed.
func (s *Server) readLoop(c *client) {
	c.conn.SetReadLimit(s.config.MaxMessageSize)
	for {
		if s.config.ReadTimeout > 0 {
			c.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		}
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "client", c.id, "error", err)
				s.recordError("read")
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Warn("frame decode error", "client", c.id, "error", err)
			s.recordError("decode")
			s.sendError(c, protocol.ErrInvalidFrame, err.Error())
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEventFrame(c, frame.Payload)
		default:
			s.logger.Warn("unexpected frame type", "client", c.id, "type", frame.Type)
			s.sendError(c, protocol.ErrInvalidFrame, "unexpected frame type "+frame.Type.String())
		}
	}
}

// handleEventFrame dispatches a client event to the live tree. Events
// stamped with an older sequence number address a tree the client no
// longer shows and are rejected.
func (s *Server) handleEventFrame(c *client, payload []byte) {
	ev, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.logger.Warn("event decode error", "client", c.id, "error", err)
		s.recordError("decode")
		s.sendError(c, protocol.ErrInvalidEvent, "invalid event format")
		return
	}
	if seq := s.streamer.Seq(); ev.Seq != seq {
		s.sendError(c, protocol.ErrTargetNotFound, fmt.Sprintf("stale event: seq %d, current %d", ev.Seq, seq))
		return
	}

	n, err := s.dispatch(ev)
	if err != nil {
		s.logger.Warn("event dispatch failed", "client", c.id, "path", ev.Path, "event", ev.Name, "error", err)
		code := protocol.ErrTargetNotFound
		if _, panicked := err.(dispatchPanic); panicked {
			code = protocol.ErrDispatchFailed
		}
		s.sendError(c, code, err.Error())
		return
	}
	s.logger.Debug("event dispatched", "client", c.id, "path", ev.Path, "event", ev.Name, "listeners", n)
}

type dispatchPanic struct {
	value any
}

func (p dispatchPanic) Error() string {
	return fmt.Sprintf("listener panic: %v", p.value)
}

func (s *Server) dispatch(ev *protocol.Event) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = dispatchPanic{r}
		}
	}()
	if ev.HasValue {
		return s.doc.DispatchInput(ev.Path, ev.Name, ev.Value)
	}
	return s.doc.DispatchPath(ev.Path, ev.Name)
}

func (s *Server) sendError(c *client, code protocol.ErrorCode, message string) {
	msg := protocol.NewFrame(protocol.FrameError, protocol.EncodeErrorMessage(protocol.NewError(code, message))).Encode()
	if !c.offer(msg) {
		s.logger.Warn("error frame dropped", "client", c.id, "code", code)
	}
}
