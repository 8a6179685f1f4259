package satusehat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"stealthcompany.com/satusehat/internal/metrics"
)

// FetchPatient looks up a patient by NIK and maps the first bundle
// entry into a typed record.
func (c *Client) FetchPatient(ctx context.Context, nik, accessToken string) (*Patient, error) {
	body, err := c.fetchResource(ctx, "Patient", nik, accessToken)
	if err != nil {
		return nil, err
	}

	var bundle Bundle
	if err := json.Unmarshal(body, &bundle); err != nil {
		return nil, &ParseError{Resource: "Patient", Reason: err.Error()}
	}
	if len(bundle.Entry) == 0 {
		return nil, &ParseError{Resource: "Patient", Reason: "bundle has no entries, no patient matched the NIK"}
	}

	resource := bundle.Entry[0].Resource
	if resource == nil {
		return nil, &ParseError{Resource: "Patient", Reason: "first bundle entry has no resource"}
	}

	patient := &Patient{Data: resource}
	if id, ok := resource["id"].(string); ok {
		patient.ID = id
	}
	if rt, ok := resource["resourceType"].(string); ok {
		patient.ResourceType = rt
	}

	log.Debug().
		Str("patient_id", patient.ID).
		Msg("Patient resolved")

	return patient, nil
}

// FetchPractitioner looks up a practitioner by NIK and returns the
// decoded search bundle as-is.
func (c *Client) FetchPractitioner(ctx context.Context, nik, accessToken string) (map[string]interface{}, error) {
	body, err := c.fetchResource(ctx, "Practitioner", nik, accessToken)
	if err != nil {
		return nil, err
	}

	var bundle map[string]interface{}
	if err := json.Unmarshal(body, &bundle); err != nil {
		return nil, &ParseError{Resource: "Practitioner", Reason: err.Error()}
	}

	return bundle, nil
}

// fetchResource issues an authenticated NIK identifier search for the
// given resource type and returns the raw response body.
func (c *Client) fetchResource(ctx context.Context, resourceType, nik, accessToken string) ([]byte, error) {
	if accessToken == "" {
		return nil, &InvalidArgumentError{Name: "access token"}
	}
	if nik == "" {
		return nil, &InvalidArgumentError{Name: "nik"}
	}

	searchURL := fmt.Sprintf("%s/%s?identifier=%s", c.baseURL, resourceType,
		url.QueryEscape(NIKSystem+"|"+nik))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", resourceType, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	fetchStart := time.Now()
	resp, err := c.httpClient.Do(req)
	fetchDuration := time.Since(fetchStart)

	if err != nil {
		metrics.RecordAPICall(resourceType, "error")
		metrics.RecordAPICallDuration(resourceType, fetchDuration)
		return nil, fmt.Errorf("failed to fetch %s: %w", resourceType, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordAPICall(resourceType, "error")
		metrics.RecordAPICallDuration(resourceType, fetchDuration)
		return nil, fmt.Errorf("failed to read %s response: %w", resourceType, err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.RecordAPICall(resourceType, "error")
		metrics.RecordAPICallDuration(resourceType, fetchDuration)
		return nil, &ServiceError{Status: resp.StatusCode, Body: string(body)}
	}

	metrics.RecordAPICall(resourceType, "success")
	metrics.RecordAPICallDuration(resourceType, fetchDuration)

	return body, nil
}
