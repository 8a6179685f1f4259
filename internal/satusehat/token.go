package satusehat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"stealthcompany.com/satusehat/internal/metrics"
)

// FetchToken performs the OAuth2 client-credentials exchange and
// returns the raw token payload. Credentials are validated before any
// network I/O.
func (c *Client) FetchToken(ctx context.Context, clientID, clientSecret string) (*TokenPayload, error) {
	if clientID == "" {
		return nil, &InvalidArgumentError{Name: "client_id"}
	}
	if clientSecret == "" {
		return nil, &InvalidArgumentError{Name: "client_secret"}
	}

	tokenURL := c.baseURL + "/oauth2/v1/accesstoken?grant_type=client_credentials"

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	fetchStart := time.Now()
	resp, err := c.httpClient.Do(req)
	fetchDuration := time.Since(fetchStart)

	if err != nil {
		metrics.RecordAPICall("token", "error")
		metrics.RecordAPICallDuration("token", fetchDuration)
		return nil, fmt.Errorf("failed to request access token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordAPICall("token", "error")
		metrics.RecordAPICallDuration("token", fetchDuration)
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.RecordAPICall("token", "error")
		metrics.RecordAPICallDuration("token", fetchDuration)
		return nil, &ServiceError{Status: resp.StatusCode, Body: string(body)}
	}

	metrics.RecordAPICall("token", "success")
	metrics.RecordAPICallDuration("token", fetchDuration)

	var payload TokenPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ParseError{Resource: "token", Reason: err.Error()}
	}

	log.Info().
		Str("token_type", payload.TokenType).
		Str("expires_in", payload.ExpiresIn.String()).
		Msg("Access token obtained")

	return &payload, nil
}
