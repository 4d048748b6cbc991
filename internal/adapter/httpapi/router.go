package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Router serves the operational endpoints next to the gRPC listener
type Router struct {
	Logger            zerolog.Logger
	Gatherer          prometheus.Gatherer
	SubmissionEnabled bool
}

// Handler builds the chi router. A nil Gatherer uses prometheus.DefaultGatherer.
func (rt Router) Handler() http.Handler {
	gatherer := rt.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(rt.logRequests)

	r.Get("/health/live", live)
	r.Get("/health/ready", rt.ready)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}

func live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// ready always succeeds; it reports whether submissions reach a sheet
func (rt Router) ready(w http.ResponseWriter, _ *http.Request) {
	submission := "disabled"
	if rt.SubmissionEnabled {
		submission = "enabled"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":     "ok",
		"submission": submission,
	})
}

func (rt Router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(recorder, r)

		status := recorder.Status()
		if status == 0 {
			status = http.StatusOK
		}
		rt.Logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Int("bytes", recorder.BytesWritten()).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}
