// Package satusehat is an HTTP client for the SatuSehat FHIR API.
package satusehat

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// NIKSystem is the identifier system URI used for NIK lookups.
const NIKSystem = "https://fhir.kemkes.go.id/id/nik"

// DefaultBaseURL points at the SatuSehat staging environment.
const DefaultBaseURL = "https://api-satusehat-stg.dto.kemkes.go.id"

// Client issues authenticated requests against a SatuSehat base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a SatuSehat client with an explicit HTTP timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	log.Debug().
		Str("base_url", baseURL).
		Dur("timeout", timeout).
		Msg("SatuSehat client initialized")

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}
