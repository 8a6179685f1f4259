// Package tokenfile persists the access token as a single plaintext
// string in a local file.
package tokenfile

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// DefaultPath is the token file location relative to the working
// directory.
const DefaultPath = "access_token.txt"

// ErrNotFound reports that no token file exists yet.
var ErrNotFound = errors.New("token file not found")

// Save writes the access token as the sole content of the file,
// overwriting any previous token.
func Save(path, accessToken string) error {
	if path == "" {
		path = DefaultPath
	}
	if err := os.WriteFile(path, []byte(accessToken), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Load reads and trims the persisted token. A missing file yields
// ErrNotFound.
func Load(path string) (string, error) {
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
