package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/text/message"

	"github.com/DoyleJ11/ladders-display/internal/session"
	"github.com/DoyleJ11/ladders-display/internal/store"
	"github.com/DoyleJ11/ladders-display/internal/ws"
)

// Display is the part of *session.Session the API drives.
type Display interface {
	Post(m session.Msg) bool
	Frame(ctx context.Context) (store.Frame, bool)
}

type Options struct {
	Printer *message.Printer
	Logger  *zap.Logger
}

func SetupRoutes(d Display, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthz)
	r.Get("/view", GetView(d))
	r.Get("/view.txt", GetViewText(d, opts.Printer))
	r.Route("/color", func(r chi.Router) {
		r.Post("/cursor", SetCursor(d))
		r.Post("/move", MoveCursor(d))
		r.Post("/select", SelectColor(d))
	})
	r.Get("/ws", ws.Handler(d, log.Named("ws")))
	return r
}
