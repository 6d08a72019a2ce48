package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/example/hotel-booking/internal/application/usecases"
	"github.com/example/hotel-booking/internal/domain/hotel"
	"github.com/example/hotel-booking/internal/domain/reservation"
	"github.com/example/hotel-booking/internal/infrastructure/metrics"
)

type Server struct {
	Hotels       hotel.Catalog
	Reservations reservation.Store
	Ledger       reservation.Ledger
	Log          logrus.FieldLogger

	// Ping backs /healthz; nil means always healthy.
	Ping func(ctx context.Context) error
}

func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.Middleware)
	r.Use(s.logging)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	route(r, "/hotels", s.handleListHotels, http.MethodGet)
	route(r, "/hotels", s.handleCreateHotel, http.MethodPost)
	route(r, "/hotels/{id:[0-9]+}", s.handleGetHotel, http.MethodGet)
	route(r, "/available_hotels", s.handleAvailableHotels, http.MethodGet)
	route(r, "/reservation_confirmation", s.handleReservationConfirmation, http.MethodPost)
	route(r, "/reservations", s.handleListReservations, http.MethodGet)
	route(r, "/reservations/{confirmation_number}", s.handleGetReservation, http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
	})
	return r
}

// route registers path with and without a trailing slash.
func route(r *mux.Router, path string, h http.HandlerFunc, method string) {
	r.HandleFunc(path, h).Methods(method)
	r.HandleFunc(path+"/", h).Methods(method)
}

func (s *Server) log() logrus.FieldLogger {
	if s.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return s.Log
}

type loggingWriter struct {
	http.ResponseWriter
	status int
}

func (w *loggingWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &loggingWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(lw, r)
		s.log().WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   lw.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.Ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := s.Ping(ctx); err != nil {
			s.log().WithError(err).Warn("health check failed")
			http.Error(w, "unavailable\n", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) submitReservation() usecases.SubmitReservation {
	l := s.Ledger
	if l.Store == nil {
		l.Store = s.Reservations
	}
	if l.Log == nil {
		l.Log = s.log()
	}
	if l.OnCollision == nil {
		l.OnCollision = metrics.ConfirmationCollisions.Inc
	}
	return usecases.SubmitReservation{Ledger: l}
}

// Start serves h until ctx is done, then drains in-flight requests for at
// most shutdownTimeout.
func Start(ctx context.Context, addr string, h http.Handler, shutdownTimeout time.Duration, log logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
