// Package toml loads handbook configuration from TOML files.
//
// The secrets file follows the layout of a Streamlit secrets.toml so an
// existing deployment's secrets can be reused as is.
package toml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fwojciec/handbook"
	gotoml "github.com/pelletier/go-toml/v2"
)

// Secret keys, used both in the secrets file and as environment variables.
const (
	KeyAPIKey = "SENDGRID_API_KEY"
	KeyFrom   = "SENDGRID_FROM_EMAIL"
	KeyTo     = "SENDGRID_TO_EMAIL"
)

type secretsFile struct {
	APIKey string `toml:"SENDGRID_API_KEY"`
	From   string `toml:"SENDGRID_FROM_EMAIL"`
	To     string `toml:"SENDGRID_TO_EMAIL"`
}

// LoadMailConfig reads the mail secrets from path. A missing file is not an
// error; it yields an empty config, which the dispatcher reports as
// unconfigured. Values from lookupEnv, when non-empty, win over the file.
func LoadMailConfig(path string, lookupEnv func(string) (string, bool)) (handbook.MailConfig, error) {
	var raw secretsFile

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return handbook.MailConfig{}, fmt.Errorf("read secrets: %w", err)
		default:
			if err := gotoml.Unmarshal(data, &raw); err != nil {
				return handbook.MailConfig{}, fmt.Errorf("parse secrets: %w", err)
			}
		}
	}

	cfg := handbook.MailConfig{
		APIKey: strings.TrimSpace(raw.APIKey),
		From:   strings.TrimSpace(raw.From),
		To:     strings.TrimSpace(raw.To),
	}

	if lookupEnv == nil {
		return cfg, nil
	}
	override := func(dst *string, key string) {
		if v, ok := lookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	override(&cfg.APIKey, KeyAPIKey)
	override(&cfg.From, KeyFrom)
	override(&cfg.To, KeyTo)

	return cfg, nil
}

// ParseHome decodes the idle page content.
func ParseHome(data []byte) (*handbook.Home, error) {
	var home handbook.Home
	if err := gotoml.Unmarshal(data, &home); err != nil {
		return nil, fmt.Errorf("parse home: %w", err)
	}
	for i, u := range home.Updates {
		if strings.TrimSpace(u.Title) == "" || strings.TrimSpace(u.URL) == "" {
			return nil, handbook.Errorf(handbook.EINVALID, "update %d needs a title and URL", i+1)
		}
	}
	return &home, nil
}

// LoadHome reads the idle page content from path.
func LoadHome(path string) (*handbook.Home, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read home: %w", err)
	}
	return ParseHome(data)
}
