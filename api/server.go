package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/matt-g-everett/sketchtx/stream"
	"github.com/matt-g-everett/sketchtx/trace"
)

// Backend is what the Api drives.
type Backend interface {
	Controller() *stream.Controller
	Canvas() *stream.Canvas
	Do(ctx context.Context, fn func()) error
}

type Api struct {
	backend Backend
	mux     *http.ServeMux
}

func NewApi(backend Backend) *Api {
	a := new(Api)
	a.backend = backend
	a.mux = http.NewServeMux()
	a.mux.HandleFunc("GET /status", a.command(stream.CommandStatus))
	a.mux.HandleFunc("POST /play", a.command(stream.CommandPlay))
	a.mux.HandleFunc("POST /stop", a.command(stream.CommandStop))
	a.mux.HandleFunc("POST /reset", a.command(stream.CommandReset))
	a.mux.HandleFunc("POST /finish", a.command(stream.CommandFinish))
	a.mux.HandleFunc("POST /progress", a.command(stream.CommandProgress))
	a.mux.HandleFunc("POST /recalculate", a.command(stream.CommandRecalculate))
	a.mux.HandleFunc("POST /destroy", a.command(stream.CommandDestroy))
	a.mux.HandleFunc("POST /visible", a.command(stream.CommandVisible))
	a.mux.HandleFunc("GET /frame.png", a.frame)
	return a
}

// Handler returns the routes of the Api.
func (a *Api) Handler() http.Handler {
	return a.mux
}

// Serve listens on addr until ctx is cancelled.
func (a *Api) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: a.mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Listening on %s...", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *Api) command(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg := stream.ControlMessage{Type: kind}
		q := r.URL.Query()
		var err error
		if msg.Speed, err = floatParam(q.Get("speed")); err != nil {
			http.Error(w, "bad speed: "+err.Error(), http.StatusBadRequest)
			return
		}
		if msg.Value, err = floatParam(q.Get("value")); err != nil {
			http.Error(w, "bad value: "+err.Error(), http.StatusBadRequest)
			return
		}
		if v := q.Get("visible"); v != "" {
			visible, err := strconv.ParseBool(v)
			if err != nil {
				http.Error(w, "bad visible: "+err.Error(), http.StatusBadRequest)
				return
			}
			msg.Visible = &visible
		}

		status, err := a.backend.Controller().Exec(r.Context(), msg)
		code := http.StatusOK
		switch {
		case err == nil:
		case errors.Is(err, trace.ErrInvalidSpeed), errors.Is(err, stream.ErrMissingValue):
			code = http.StatusBadRequest
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			code = http.StatusServiceUnavailable
		default:
			code = http.StatusInternalServerError
		}
		writeJSON(w, code, status)
	}
}

func (a *Api) frame(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	var err error
	if derr := a.backend.Do(r.Context(), func() {
		err = a.backend.Canvas().EncodePNG(&buf)
	}); derr != nil {
		http.Error(w, derr.Error(), http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func floatParam(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%q is not a finite number", raw)
	}
	return &v, nil
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: response not written: %v", err)
	}
}
