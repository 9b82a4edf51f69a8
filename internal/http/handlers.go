package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/taxi-ledger/internal/taxi"
)

// Server exposes ride details and map artifacts over HTTP so maps can be
// opened from another machine than the one running the CLI.
type Server struct {
	Taxi   *taxi.System
	logger *slog.Logger
	mux    *mux.Router
}

func NewServer(sys *taxi.System, logger *slog.Logger) *Server {
	s := &Server{Taxi: sys, logger: logger, mux: mux.NewRouter()}
	s.registerMiddleware()
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) }).Methods("GET")
	s.mux.Handle("/metrics", promhttp.Handler())
	s.mux.HandleFunc("/api/v1/rides", s.handleListRides).Methods("GET")
	s.mux.HandleFunc("/api/v1/rides/{ride_id:[0-9]+}", s.handleRideDetails).Methods("GET")
	s.mux.HandleFunc("/rides/{ride_id:[0-9]+}/map", s.handleRideMap).Methods("GET")
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleListRides(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"rides": s.Taxi.Rides()})
}

func (s *Server) handleRideDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["ride_id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ride id")
		return
	}
	det, err := s.Taxi.RideDetails(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, det)
}

func (s *Server) handleRideMap(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["ride_id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ride id")
		return
	}
	ride, ok := s.Taxi.Ride(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("ride %d not found", id))
		return
	}
	http.ServeFile(w, r, ride.MapPath)
}

// MapURL is where the server publishes a ride's map when listening on addr.
func MapURL(addr string, rideID int) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Sprintf("http://%s/rides/%d/map", addr, rideID)
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s/rides/%d/map", net.JoinHostPort(host, port), rideID)
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"status": "error", "message": msg})
}
