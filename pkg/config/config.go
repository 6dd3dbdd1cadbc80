// Package config resolves client configuration from flags and environment.
package config

import (
	"os"
	"path/filepath"
)

const (
	// DefaultAPIURL is the development host the console talks to when no
	// override is configured.
	DefaultAPIURL = "http://n8njd.test/api/v1"

	// DefaultAppName is shown in the console header.
	DefaultAppName = "Automation Inc."
)

// Config carries the resolved client settings shared by every command.
type Config struct {
	// APIURL is the base URL of the remote platform API, versioned prefix
	// included.
	APIURL string

	// AppName is the display name of the installation.
	AppName string

	// Home is the directory holding the persisted session and client state.
	Home string
}

// New builds a Config, filling unset fields with defaults. An empty home
// resolves to ~/.n8njd.
func New(apiURL, appName, home string) (*Config, error) {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	if appName == "" {
		appName = DefaultAppName
	}

	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		home = filepath.Join(userHome, ".n8njd")
	}

	return &Config{
		APIURL:  apiURL,
		AppName: appName,
		Home:    home,
	}, nil
}
