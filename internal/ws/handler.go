package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/ladders-display/internal/render"
	"github.com/DoyleJ11/ladders-display/internal/session"
	"github.com/DoyleJ11/ladders-display/internal/store"
)

const writeTimeout = 3 * time.Second

type Poster interface {
	Post(m session.Msg) bool
}

// Handler streams one rendered view per published frame. Clients only
// listen; anything they send is discarded.
func Handler(s Poster, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan store.Frame, 8)
		watcherID := uuid.NewString()
		log := log.With(zap.String("watcher", watcherID))

		if !s.Post(session.Watch{ID: watcherID, Outbox: out}) {
			conn.Close(websocket.StatusTryAgainLater, "session stopped")
			return
		}
		defer s.Post(session.Unwatch{ID: watcherID})

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for f := range out {
				payload, err := json.Marshal(render.Render(f))
				if err != nil {
					log.Error("encode view", zap.Error(err))
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				err = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
				if err != nil {
					log.Debug("view write failed", zap.Error(err))
					break
				}
			}
			// Frames stopped: the session dropped us or is shutting down.
			conn.Close(websocket.StatusGoingAway, "stream ended")
		}()

		// Reader loop
		for {
			if _, _, err := conn.Read(r.Context()); err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("view stream closed", zap.Error(err))
				}
				return
			}
		}
	}
}
