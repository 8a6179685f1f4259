package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stealthcompany.com/satusehat/internal/metrics"
)

// SetupRoutes configures and returns the HTTP router
func (s *Server) SetupRoutes() *mux.Router {
	r := mux.NewRouter()

	r.Use(metrics.Middleware)

	r.HandleFunc("/health", s.HealthHandler).Methods("GET")

	// NIK lookup endpoints
	r.HandleFunc("/patients/{nik}", s.PatientHandler).Methods("GET")
	r.HandleFunc("/practitioners/{nik}", s.PractitionerHandler).Methods("GET")

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
