// Package api exposes the SatuSehat lookups over a small REST surface.
package api

import (
	"context"

	"stealthcompany.com/satusehat/internal/satusehat"
)

// Fetcher is the subset of the SatuSehat client the API needs.
type Fetcher interface {
	FetchPatient(ctx context.Context, nik, accessToken string) (*satusehat.Patient, error)
	FetchPractitioner(ctx context.Context, nik, accessToken string) (map[string]interface{}, error)
}

// Server wires the SatuSehat client and token storage into handlers.
type Server struct {
	fetcher   Fetcher
	tokenFile string
}

// NewServer creates the API server.
func NewServer(fetcher Fetcher, tokenFile string) *Server {
	return &Server{
		fetcher:   fetcher,
		tokenFile: tokenFile,
	}
}
