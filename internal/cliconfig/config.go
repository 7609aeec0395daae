// Package cliconfig persists playctl's settings and cached token under the
// user's home directory.
package cliconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	DefaultAPIBaseURL = "https://ai.dev.craftsmanplus.com/api"
	DefaultRegion     = "us-east-1"
	ConfigDirName     = ".playconsole"
	ConfigFileName    = "config.json"

	// DirEnv overrides the config directory, mainly for tests.
	DirEnv = "PLAYCTL_CONFIG_DIR"
)

type Config struct {
	APIBaseURL      string `json:"api_base_url"`
	CognitoClientID string `json:"cognito_client_id,omitempty"`
	CognitoRegion   string `json:"cognito_region,omitempty"`
	AccessToken     string `json:"access_token,omitempty"`
	Username        string `json:"username,omitempty"`
	LastJobID       string `json:"last_job_id,omitempty"`
	LastJobURL      string `json:"last_job_url,omitempty"`
}

func Dir() string {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ConfigDirName)
}

func Path() string {
	return filepath.Join(Dir(), ConfigFileName)
}

func EnsureDir() error {
	return os.MkdirAll(Dir(), 0700)
}

func Load() (*Config, error) {
	cfg := &Config{APIBaseURL: DefaultAPIBaseURL, CognitoRegion: DefaultRegion}

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.CognitoRegion == "" {
		cfg.CognitoRegion = DefaultRegion
	}
	return cfg, nil
}

func (c *Config) Save() error {
	if err := EnsureDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// The file carries the access token; keep it private to the user.
	return os.WriteFile(Path(), data, 0600)
}

func (c *Config) IsLoggedIn() bool {
	return c.AccessToken != ""
}

func (c *Config) ClearAuth() {
	c.AccessToken = ""
	c.Username = ""
}

// RememberJob records the most recent submission so status and result
// commands can run without flags.
func (c *Config) RememberJob(jobID, resultURL string) {
	c.LastJobID = jobID
	c.LastJobURL = resultURL
}
