package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultServer = "http://localhost:8080/api"

// Profile is what boardctl remembers between runs.
type Profile struct {
	Server string `yaml:"server"`
	Token  string `yaml:"token,omitempty"`
}

func defaultProfilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "boardctl.yaml"
	}
	return filepath.Join(dir, "tgp-taskflow", "boardctl.yaml")
}

// loadProfile reads the profile at path. A missing file yields the defaults.
func loadProfile(path string) (*Profile, error) {
	profile := &Profile{Server: defaultServer}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return profile, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if profile.Server == "" {
		profile.Server = defaultServer
	}
	return profile, nil
}

// save writes the profile readable by the owner only; it holds a session
// token.
func (p *Profile) save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}
