package satusehat

import "encoding/json"

// TokenPayload is the OAuth2 token response body. SatuSehat encodes the
// numeric fields as strings, other deployments send plain numbers, so
// both are accepted.
type TokenPayload struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type,omitempty"`
	ExpiresIn   json.Number `json:"expires_in,omitempty"`
	IssuedAt    json.Number `json:"issued_at,omitempty"`
}

// Bundle is a FHIR search-result envelope.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	Type         string        `json:"type"`
	Total        int           `json:"total"`
	Entry        []BundleEntry `json:"entry"`
}

// BundleEntry wraps a single resource inside a bundle.
type BundleEntry struct {
	FullURL  string                 `json:"fullUrl"`
	Resource map[string]interface{} `json:"resource"`
}

// Patient is a patient resource from a NIK lookup. ID and ResourceType
// are lifted out of the document; Data holds the full decoded resource.
type Patient struct {
	ID           string
	ResourceType string
	Data         map[string]interface{}
}
