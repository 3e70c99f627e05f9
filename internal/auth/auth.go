// Package auth stores the generation API key.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const credFileName = "credentials.json"

// EnvKeys are checked in order before the credentials file.
var EnvKeys = []string{"SPINWIN_API_KEY", "GEMINI_API_KEY"}

var ErrEmptyKey = errors.New("empty api key")

type Credential struct {
	Key       string    `json:"key"`
	Source    string    `json:"source"`     // env var name or "file"
	CreatedAt time.Time `json:"created_at"` // when we saved to file
}

func credsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".spinwin"), nil
}

// Path returns the credentials file location.
func Path() (string, error) {
	dir, err := credsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, credFileName), nil
}

// Get returns the active credential, or nil when there is none.
func Get() (*Credential, error) {
	// 1) env override
	for _, name := range EnvKeys {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return &Credential{Key: stripBearer(v), Source: name}, nil
		}
	}

	// 2) file
	p, err := Path()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var c Credential
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	c.Key = stripBearer(strings.TrimSpace(c.Key))
	if c.Key == "" {
		return nil, nil
	}
	c.Source = "file"
	return &c, nil
}

// Key returns the active API key or "".
func Key() string {
	c, err := Get()
	if err != nil || c == nil {
		return ""
	}
	return c.Key
}

// Set saves key to the credentials file.
func Set(key string) error {
	key = stripBearer(strings.TrimSpace(key))
	if key == "" {
		return ErrEmptyKey
	}
	dir, err := credsDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	c := Credential{
		Key:       key,
		Source:    "file",
		CreatedAt: time.Now(),
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	p := filepath.Join(dir, credFileName)
	// owner-only
	if err := os.WriteFile(p, b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Delete removes the credentials file. A missing file is not an error.
func Delete() error {
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// Mask hides all but the last four characters of key.
func Mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
