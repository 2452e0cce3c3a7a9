package websocket

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/starlight/domain"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Clients only send control frames.
	maxMessageSize = 512

	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	// Same policy as the HTTP routes, which allow any origin.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Describer streams a star description fragment by fragment
type Describer interface {
	DescribeStream(ctx context.Context, coords domain.Coordinates, onDelta func(delta string) error) (*domain.Description, error)
}

// descriptionStream is one websocket connection serving one description
type descriptionStream struct {
	conn   *websocket.Conn
	id     string
	send   chan interface{}
	cancel context.CancelFunc
	logger *zap.Logger
}

// ServeDescriptionStream upgrades the request and streams the description of
// coords as delta frames followed by a done or error frame.
func ServeDescriptionStream(c echo.Context, describer Describer, coords domain.Coordinates, logger *zap.Logger) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", zap.Error(err))
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	streamID := uuid.NewString()
	stream := &descriptionStream{
		conn:   conn,
		id:     streamID,
		send:   make(chan interface{}, sendBufferSize),
		cancel: cancel,
		logger: logger.With(zap.String("streamID", streamID)),
	}

	stream.logger.Info("Description stream opened",
		zap.String("ra", coords.RA),
		zap.String("dec", coords.Dec))

	written := make(chan struct{})
	go stream.readPump()
	go func() {
		stream.writePump()
		close(written)
	}()

	description, err := describer.DescribeStream(ctx, coords, func(delta string) error {
		return stream.enqueue(ctx, CreateDeltaMessage(stream.id, delta))
	})
	if err != nil {
		stream.logger.Error("LLM completion failed", zap.Error(err))
		stream.enqueue(ctx, CreateErrorMessage(stream.id, ErrorCodeCompletionFailed, err.Error()))
	} else {
		stream.enqueue(ctx, CreateDoneMessage(stream.id, description))
	}

	close(stream.send)
	<-written

	stream.logger.Info("Description stream closed")
	return nil
}

// enqueue hands a frame to the write pump unless the stream was canceled
func (s *descriptionStream) enqueue(ctx context.Context, message interface{}) error {
	select {
	case s.send <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// readPump watches the connection so a client close cancels the backend call.
func (s *descriptionStream) readPump() {
	defer s.cancel()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.logger.Error("WebSocket error", zap.Error(err))
			}
			return
		}
	}
}

// writePump is the only writer on the connection. After a write failure it
// keeps draining send until it is closed.
func (s *descriptionStream) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	failed := false
	for {
		select {
		case message, ok := <-s.send:
			if !ok {
				if !failed {
					s.conn.SetWriteDeadline(time.Now().Add(writeWait))
					s.conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				}
				return
			}
			if failed {
				continue
			}

			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(message); err != nil {
				s.logger.Error("Failed to write message", zap.Error(err))
				failed = true
				s.cancel()
			}

		case <-ticker.C:
			if failed {
				continue
			}
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				failed = true
				s.cancel()
			}
		}
	}
}
