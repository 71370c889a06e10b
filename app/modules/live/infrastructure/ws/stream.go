package livews

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	liveservice "github.com/snake-playground/backend/app/modules/live/application"
	livedomain "github.com/snake-playground/backend/app/modules/live/domain"
	sharedtypes "github.com/snake-playground/backend/app/shared"
)

// CloseUnknownSession is sent when the watched player has no live session.
const CloseUnknownSession = 4004

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// frame is one message pushed to a spectator.
type frame struct {
	Type string              `json:"type"`
	Data livedomain.Snapshot `json:"data"`
}

const (
	frameGameState = "gameState"
	frameGameOver  = "gameOver"
)

// Stream streams live game state to spectators over a websocket. Each
// connection gets the current snapshot immediately, then one frame per tick
// until the game ends or the spectator disconnects.
type Stream struct {
	registry *liveservice.Registry
	interval time.Duration
	logger   *slog.Logger
}

// NewStream creates the spectator stream handler.
func NewStream(registry *liveservice.Registry, interval time.Duration, logger *slog.Logger) *Stream {
	return &Stream{
		registry: registry,
		interval: interval,
		logger:   logger,
	}
}

// Watch handles GET /live/players/{userID}/stream.
func (s *Stream) Watch(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WarnContext(r.Context(), "websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	watcher, snap, err := s.registry.Attach(userID)
	if err != nil {
		if errors.Is(err, liveservice.ErrSessionNotFound) {
			s.closeWith(conn, CloseUnknownSession, "player not found")
			return
		}
		s.logger.ErrorContext(r.Context(), "failed to join stream", slog.Any("error", err))
		s.closeWith(conn, websocket.CloseInternalServerErr, "internal error")
		return
	}
	defer watcher.Leave()

	// Reader goroutine: drain client messages and surface disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if over := s.send(conn, snap); over || !snap.IsAlive {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			snap, err := watcher.Snapshot()
			if err != nil {
				// The watched game was replaced or retired under us.
				s.closeWith(conn, CloseUnknownSession, "session is gone")
				return
			}
			if over := s.send(conn, snap); over || !snap.IsAlive {
				return
			}
		}
	}
}

// send pushes one frame and reports whether the stream should stop. A dead
// snapshot goes out as the terminal gameOver frame followed by a clean close.
func (s *Stream) send(conn *websocket.Conn, snap livedomain.Snapshot) bool {
	f := frame{Type: frameGameState, Data: snap}
	if !snap.IsAlive {
		f.Type = frameGameOver
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(f); err != nil {
		return true
	}

	if !snap.IsAlive {
		s.closeWith(conn, websocket.CloseNormalClosure, "game over")
	}
	return false
}

func (s *Stream) closeWith(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	conn.WriteMessage(websocket.CloseMessage, msg)
}
