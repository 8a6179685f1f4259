package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"stealthcompany.com/satusehat/internal/jsonfilter"
	"stealthcompany.com/satusehat/internal/satusehat"
	"stealthcompany.com/satusehat/internal/tokenfile"
)

// filteredKeys is the denylist applied to every resource before it is
// returned.
var filteredKeys = jsonfilter.KeySet("other", "link")

// HealthHandler returns a liveness response
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// PatientHandler looks up a patient by NIK and returns the filtered
// resource
func (s *Server) PatientHandler(w http.ResponseWriter, r *http.Request) {
	nik := mux.Vars(r)["nik"]

	token, ok := s.loadToken(w, r)
	if !ok {
		return
	}

	patient, err := s.fetcher.FetchPatient(r.Context(), nik, token)
	if err != nil {
		s.writeFetchError(w, r, "Patient", err)
		return
	}

	log.Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("patient_id", patient.ID).
		Msg("Patient lookup served")

	writeJSON(w, http.StatusOK, jsonfilter.Filter(patient.Data, filteredKeys))
}

// PractitionerHandler looks up a practitioner by NIK and returns the
// filtered bundle
func (s *Server) PractitionerHandler(w http.ResponseWriter, r *http.Request) {
	nik := mux.Vars(r)["nik"]

	token, ok := s.loadToken(w, r)
	if !ok {
		return
	}

	bundle, err := s.fetcher.FetchPractitioner(r.Context(), nik, token)
	if err != nil {
		s.writeFetchError(w, r, "Practitioner", err)
		return
	}

	log.Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Practitioner lookup served")

	writeJSON(w, http.StatusOK, jsonfilter.Filter(bundle, filteredKeys))
}

// loadToken reads the persisted access token, answering 503 when no
// token has been stored yet.
func (s *Server) loadToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	token, err := tokenfile.Load(s.tokenFile)
	if err != nil {
		if errors.Is(err, tokenfile.ErrNotFound) {
			log.Warn().
				Str("path", r.URL.Path).
				Msg("Lookup refused, no access token stored")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"error": "no access token stored, run `satusehat token update` first",
			})
			return "", false
		}
		log.Error().Err(err).Msg("Failed to read token file")
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
		return "", false
	}
	return token, true
}

func (s *Server) writeFetchError(w http.ResponseWriter, r *http.Request, resourceType string, err error) {
	log.Error().
		Err(err).
		Str("path", r.URL.Path).
		Str("resource_type", resourceType).
		Msg("Upstream lookup failed")

	if satusehat.IsUnauthorized(err) {
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "access token rejected by SatuSehat, run `satusehat token update`",
		})
		return
	}

	var parseErr *satusehat.ParseError
	if errors.As(err, &parseErr) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": parseErr.Error(),
		})
		return
	}

	var svcErr *satusehat.ServiceError
	if errors.As(err, &svcErr) {
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": svcErr.Error(),
		})
		return
	}

	var argErr *satusehat.InvalidArgumentError
	if errors.As(err, &argErr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": argErr.Error(),
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
