package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/message"

	"github.com/DoyleJ11/ladders-display/internal/palette"
	"github.com/DoyleJ11/ladders-display/internal/render"
	"github.com/DoyleJ11/ladders-display/internal/session"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("palette", func(fl validator.FieldLevel) bool {
			return palette.IndexOf(fl.Field().String()) >= 0
		})
	})
	return validate
}

type cursorRequest struct {
	Index *int `json:"index" validate:"required,min=0,max=7"`
}

type moveRequest struct {
	Delta int `json:"delta" validate:"required,oneof=-1 1"`
}

type selectRequest struct {
	Color string `json:"color" validate:"required,hexcolor,palette"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// messages maps field -> failed tag -> client text.
type bindMessages map[string]map[string]string

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// bindJSON decodes and validates the body; it writes the 400 itself.
func bindJSON(w http.ResponseWriter, r *http.Request, req any, messages bindMessages) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<10)).Decode(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad json"})
		return false
	}
	if err := validatorInstance().Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: resolveBindError(err, messages)})
		return false
	}
	return true
}

func resolveBindError(err error, messages bindMessages) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, verr := range verrs {
			if fieldMsgs, ok := messages[verr.Field()]; ok {
				if msg, ok := fieldMsgs[verr.Tag()]; ok {
					return msg
				}
			}
		}
	}
	return "invalid request"
}

func post(w http.ResponseWriter, d Display, m session.Msg) {
	if !d.Post(m) {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "session stopped"})
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func GetView(d Display) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, ok := d.Frame(r.Context())
		if !ok {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "session stopped"})
			return
		}
		writeJSON(w, http.StatusOK, render.Render(f))
	}
}

// GetViewText renders with p unless the request names a locale in ?lang=.
func GetViewText(d Display, p *message.Printer) http.HandlerFunc {
	if p == nil {
		p = render.NewPrinter("en")
	}
	return func(w http.ResponseWriter, r *http.Request) {
		f, ok := d.Frame(r.Context())
		if !ok {
			http.Error(w, "session stopped", http.StatusServiceUnavailable)
			return
		}
		printer := p
		if lang := r.URL.Query().Get("lang"); lang != "" {
			printer = render.NewPrinter(lang)
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, strings.Join(render.Text(render.Render(f), printer), "\n")+"\n")
	}
}

func SetCursor(d Display) http.HandlerFunc {
	messages := bindMessages{"Index": {
		"required": "index is required",
		"min":      "index must be between 0 and 7",
		"max":      "index must be between 0 and 7",
	}}
	return func(w http.ResponseWriter, r *http.Request) {
		var req cursorRequest
		if !bindJSON(w, r, &req, messages) {
			return
		}
		post(w, d, session.SetColorCursor{Index: *req.Index})
	}
}

func MoveCursor(d Display) http.HandlerFunc {
	messages := bindMessages{"Delta": {
		"required": "delta must be -1 or 1",
		"oneof":    "delta must be -1 or 1",
	}}
	return func(w http.ResponseWriter, r *http.Request) {
		var req moveRequest
		if !bindJSON(w, r, &req, messages) {
			return
		}
		post(w, d, session.MoveColorCursor{Delta: req.Delta})
	}
}

// SelectColor sends the color under the local cursor, or the one named in
// the body.
func SelectColor(d Display) http.HandlerFunc {
	messages := bindMessages{"Color": {
		"required": "color is required",
		"hexcolor": "color must be #RRGGBB",
		"palette":  "color is not in the palette",
	}}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			post(w, d, session.SelectColor{})
			return
		}
		var req selectRequest
		if !bindJSON(w, r, &req, messages) {
			return
		}
		post(w, d, session.SelectColorValue{Color: strings.ToUpper(req.Color)})
	}
}
