package main

import (
	"bytes"
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"

	"stealthcompany.com/satusehat/internal/config"
	"stealthcompany.com/satusehat/internal/satusehat"
	"stealthcompany.com/satusehat/internal/tokenfile"
)

type fakeClient struct {
	token           *satusehat.TokenPayload
	tokenErr        error
	patient         *satusehat.Patient
	patientErr      error
	bundle          map[string]interface{}
	bundleErr       error
	lastNIK         string
	lastAccessToken string
}

func (f *fakeClient) FetchToken(ctx context.Context, clientID, clientSecret string) (*satusehat.TokenPayload, error) {
	return f.token, f.tokenErr
}

func (f *fakeClient) FetchPatient(ctx context.Context, nik, accessToken string) (*satusehat.Patient, error) {
	f.lastNIK = nik
	f.lastAccessToken = accessToken
	return f.patient, f.patientErr
}

func (f *fakeClient) FetchPractitioner(ctx context.Context, nik, accessToken string) (map[string]interface{}, error) {
	f.lastNIK = nik
	f.lastAccessToken = accessToken
	return f.bundle, f.bundleErr
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		BaseURL:   "https://example.test",
		TokenFile: filepath.Join(t.TempDir(), "access_token.txt"),
	}
}

func TestRunTokenGetMissingFile(t *testing.T) {
	cfg := testConfig(t)

	err := runTokenGet(cfg, &bytes.Buffer{})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, exitErr.Error(), "token update")
}

func TestRunTokenGetPrintsStoredToken(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, tokenfile.Save(cfg.TokenFile, "abc"))

	var out bytes.Buffer
	require.NoError(t, runTokenGet(cfg, &out))

	assert.Equal(t, "Access token: abc\n", out.String())
}

func TestRunTokenUpdateRequiresCredentials(t *testing.T) {
	cfg := testConfig(t)

	err := runTokenUpdate(context.Background(), cfg, &bytes.Buffer{})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, exitErr.Error(), "--client-id")
}

func TestFetchAndSaveTokenPersistsAccessToken(t *testing.T) {
	cfg := testConfig(t)
	cfg.ClientID = "id"
	cfg.ClientSecret = "secret"

	client := &fakeClient{
		token: &satusehat.TokenPayload{AccessToken: "abc", ExpiresIn: "3600"},
	}

	var out bytes.Buffer
	require.NoError(t, fetchAndSaveToken(context.Background(), cfg, client, &out))

	stored, err := tokenfile.Load(cfg.TokenFile)
	require.NoError(t, err)
	assert.Equal(t, "abc", stored)
	assert.Contains(t, out.String(), "Access token saved to")
}

func TestRunPatientWithoutStoredToken(t *testing.T) {
	cfg := testConfig(t)

	err := runPatient(context.Background(), cfg, &fakeClient{}, "317401", &bytes.Buffer{})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, exitErr.Error(), "token update")
}

func TestRunPatientPrintsFilteredJSON(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, tokenfile.Save(cfg.TokenFile, "tok"))

	client := &fakeClient{
		patient: &satusehat.Patient{
			ID:           "1",
			ResourceType: "Patient",
			Data: map[string]interface{}{
				"resourceType": "Patient",
				"id":           "1",
				"link":         []interface{}{"x"},
				"contact":      map[string]interface{}{"other": "y", "phone": "123"},
			},
		},
	}

	var out bytes.Buffer
	require.NoError(t, runPatient(context.Background(), cfg, client, "317401", &out))

	assert.Equal(t, "317401", client.lastNIK)
	assert.Equal(t, "tok", client.lastAccessToken)
	assert.Contains(t, out.String(), `"id": "1"`)
	assert.NotContains(t, out.String(), "link")
	assert.NotContains(t, out.String(), "other")
}

func TestRunPatientAnnotates401(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, tokenfile.Save(cfg.TokenFile, "stale"))

	client := &fakeClient{
		patientErr: &satusehat.ServiceError{Status: http.StatusUnauthorized, Body: "expired"},
	}

	err := runPatient(context.Background(), cfg, client, "317401", &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "token update")
	assert.True(t, satusehat.IsUnauthorized(err))
}

func TestRunPractitionerPrintsRawFilteredBundle(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, tokenfile.Save(cfg.TokenFile, "tok"))

	client := &fakeClient{
		bundle: map[string]interface{}{
			"resourceType": "Bundle",
			"link":         []interface{}{"self"},
			"entry": []interface{}{
				map[string]interface{}{
					"resource": map[string]interface{}{"id": "N9"},
				},
			},
		},
	}

	var out bytes.Buffer
	require.NoError(t, runPractitioner(context.Background(), cfg, client, "317402", &out))

	assert.Contains(t, out.String(), `"resourceType": "Bundle"`)
	assert.Contains(t, out.String(), `"id": "N9"`)
	assert.NotContains(t, out.String(), "link")
}

func TestRunPractitionerAnnotates401(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, tokenfile.Save(cfg.TokenFile, "stale"))

	client := &fakeClient{
		bundleErr: &satusehat.ServiceError{Status: http.StatusUnauthorized},
	}

	err := runPractitioner(context.Background(), cfg, client, "317402", &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "token update")
}

func TestNewAppCommands(t *testing.T) {
	app := newApp(testConfig(t))

	var names []string
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}

	assert.ElementsMatch(t, []string{"token", "patient", "practitioner", "serve"}, names)
}
