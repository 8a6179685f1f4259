package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"

	"stealthcompany.com/satusehat/internal/api"
	"stealthcompany.com/satusehat/internal/config"
	"stealthcompany.com/satusehat/internal/jsonfilter"
	"stealthcompany.com/satusehat/internal/metrics"
	"stealthcompany.com/satusehat/internal/satusehat"
	"stealthcompany.com/satusehat/internal/tokenfile"
)

// filteredKeys is the denylist applied to lookup results before
// printing.
var filteredKeys = jsonfilter.KeySet("other", "link")

// satuSehatClient is the client surface the CLI actions use.
type satuSehatClient interface {
	FetchToken(ctx context.Context, clientID, clientSecret string) (*satusehat.TokenPayload, error)
	FetchPatient(ctx context.Context, nik, accessToken string) (*satusehat.Patient, error)
	FetchPractitioner(ctx context.Context, nik, accessToken string) (map[string]interface{}, error)
}

func newApp(cfg config.Config) *cli.App {
	app := cli.NewApp()
	app.Name = "satusehat"
	app.Usage = "SatuSehat API client CLI"

	credentialFlags := []cli.Flag{
		cli.StringFlag{
			Name:   "client-id",
			Usage:  "Client ID for the SatuSehat API",
			EnvVar: "SATUSEHAT_CLIENT_ID",
		},
		cli.StringFlag{
			Name:   "client-secret",
			Usage:  "Client secret for the SatuSehat API",
			EnvVar: "SATUSEHAT_CLIENT_SECRET",
		},
		cli.StringFlag{
			Name:   "base-url",
			Usage:  "Base URL for the SatuSehat API",
			EnvVar: "SATUSEHAT_BASE_URL",
		},
	}

	nikFlag := cli.StringFlag{
		Name:  "nik",
		Usage: "National identity number to look up",
	}

	app.Commands = []cli.Command{
		{
			Name:  "token",
			Usage: "Manage the persisted access token",
			Subcommands: []cli.Command{
				{
					Name:  "get",
					Usage: "Print the persisted access token",
					Action: func(c *cli.Context) error {
						return runTokenGet(cfg, os.Stdout)
					},
				},
				{
					Name:  "update",
					Usage: "Fetch a new access token and persist it",
					Flags: credentialFlags,
					Action: func(c *cli.Context) error {
						resolved := cfg
						if v := c.String("client-id"); v != "" {
							resolved.ClientID = v
						}
						if v := c.String("client-secret"); v != "" {
							resolved.ClientSecret = v
						}
						if v := c.String("base-url"); v != "" {
							resolved.BaseURL = v
						}
						return runTokenUpdate(context.Background(), resolved, os.Stdout)
					},
				},
			},
		},
		{
			Name:  "patient",
			Usage: "Look up a patient by NIK",
			Flags: []cli.Flag{nikFlag},
			Action: func(c *cli.Context) error {
				client := satusehat.NewClient(cfg.BaseURL, cfg.Timeout)
				return runPatient(context.Background(), cfg, client, c.String("nik"), os.Stdout)
			},
		},
		{
			Name:  "practitioner",
			Usage: "Look up a practitioner by NIK",
			Flags: []cli.Flag{nikFlag},
			Action: func(c *cli.Context) error {
				client := satusehat.NewClient(cfg.BaseURL, cfg.Timeout)
				return runPractitioner(context.Background(), cfg, client, c.String("nik"), os.Stdout)
			},
		},
		{
			Name:  "serve",
			Usage: "Expose the NIK lookups over HTTP",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "port",
					Usage:  "Port to listen on",
					EnvVar: "API_PORT",
				},
			},
			Action: func(c *cli.Context) error {
				port := c.String("port")
				if port == "" {
					port = cfg.Port
				}
				return runServe(cfg, port)
			},
		},
	}

	return app
}

func runTokenGet(cfg config.Config, out io.Writer) error {
	token, err := tokenfile.Load(cfg.TokenFile)
	if err != nil {
		if errors.Is(err, tokenfile.ErrNotFound) {
			return cli.NewExitError(
				fmt.Sprintf("Error: %s not found. Run `satusehat token update` to fetch a new token.", cfg.TokenFile), 1)
		}
		return err
	}

	fmt.Fprintf(out, "Access token: %s\n", token)
	return nil
}

func runTokenUpdate(ctx context.Context, cfg config.Config, out io.Writer) error {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return cli.NewExitError("Error: --client-id and --client-secret are required for updating the token.", 1)
	}

	client := satusehat.NewClient(cfg.BaseURL, cfg.Timeout)
	return fetchAndSaveToken(ctx, cfg, client, out)
}

func fetchAndSaveToken(ctx context.Context, cfg config.Config, client satuSehatClient, out io.Writer) error {
	payload, err := client.FetchToken(ctx, cfg.ClientID, cfg.ClientSecret)
	if err != nil {
		return fmt.Errorf("failed to obtain access token: %w", err)
	}

	if err := tokenfile.Save(cfg.TokenFile, payload.AccessToken); err != nil {
		return err
	}

	rendered, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Access token obtained: %s\n", rendered)
	fmt.Fprintf(out, "Access token saved to %s\n", cfg.TokenFile)
	return nil
}

func runPatient(ctx context.Context, cfg config.Config, client satuSehatClient, nik string, out io.Writer) error {
	token, err := loadStoredToken(cfg)
	if err != nil {
		return err
	}

	patient, err := client.FetchPatient(ctx, nik, token)
	if err != nil {
		return annotateFetchError("patient", err)
	}

	return printFiltered(out, patient.Data)
}

func runPractitioner(ctx context.Context, cfg config.Config, client satuSehatClient, nik string, out io.Writer) error {
	token, err := loadStoredToken(cfg)
	if err != nil {
		return err
	}

	bundle, err := client.FetchPractitioner(ctx, nik, token)
	if err != nil {
		return annotateFetchError("practitioner", err)
	}

	return printFiltered(out, bundle)
}

func runServe(cfg config.Config, port string) error {
	client := satusehat.NewClient(cfg.BaseURL, cfg.Timeout)
	server := api.NewServer(client, cfg.TokenFile)

	metrics.StartSystemMetrics(15 * time.Second)

	log.Info().
		Str("port", port).
		Str("base_url", cfg.BaseURL).
		Msg("API server starting")

	return http.ListenAndServe(":"+port, server.SetupRoutes())
}

// loadStoredToken reads the persisted token and turns an absent file
// into actionable guidance.
func loadStoredToken(cfg config.Config) (string, error) {
	token, err := tokenfile.Load(cfg.TokenFile)
	if err != nil {
		if errors.Is(err, tokenfile.ErrNotFound) {
			return "", cli.NewExitError(
				fmt.Sprintf("Error: %s not found. Run `satusehat token update` to fetch a new token.", cfg.TokenFile), 1)
		}
		return "", err
	}
	return token, nil
}

// annotateFetchError adds a refresh suggestion when the API rejected
// the stored token.
func annotateFetchError(resource string, err error) error {
	if satusehat.IsUnauthorized(err) {
		return fmt.Errorf("failed to fetch %s: %w (token may be expired, run `satusehat token update`)", resource, err)
	}
	return fmt.Errorf("failed to fetch %s: %w", resource, err)
}

func printFiltered(out io.Writer, doc interface{}) error {
	rendered, err := json.MarshalIndent(jsonfilter.Filter(doc, filteredKeys), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(rendered))
	return nil
}
