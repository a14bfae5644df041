package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// configFile is the per-workspace configuration file name. It lives in the
// current directory so each puzzle workspace keeps independent settings.
const configFile = ".aochelper.json"

// errNotConfigured indicates no year has been stored in this workspace yet.
var errNotConfigured = errors.New("not configured: run `aochelper set year <year>` first")

// appConfig holds the workspace configuration.
type appConfig struct {
	Year       int    `json:"year"`
	SessionKey string `json:"session_key,omitempty"`
}

// loadConfig loads configuration from the specified path. A missing file or
// a file with no year stored yields errNotConfigured.
func loadConfig(path string) (appConfig, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return appConfig{}, errNotConfigured
		}
		return appConfig{}, fmt.Errorf("stat config: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), koanfjson.Parser()); err != nil {
		return appConfig{}, fmt.Errorf("load config: %w", err)
	}

	var cfg appConfig
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return appConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.SessionKey = strings.TrimSpace(cfg.SessionKey)
	if cfg.Year == 0 {
		return appConfig{}, errNotConfigured
	}
	return cfg, nil
}

// saveConfig writes configuration to the specified path.
func saveConfig(path string, cfg appConfig) error {
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	b = append(b, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// loadConfigForUpdate is loadConfig minus the year requirement, so a `set`
// can target a fresh workspace.
func loadConfigForUpdate(path string) (appConfig, error) {
	cfg, err := loadConfig(path)
	if err != nil && !errors.Is(err, errNotConfigured) {
		return appConfig{}, err
	}
	return cfg, nil
}

// saveYear stores the target year, preserving any stored session key.
func saveYear(path string, year int) error {
	cfg, err := loadConfigForUpdate(path)
	if err != nil {
		return err
	}
	cfg.Year = year
	return saveConfig(path, cfg)
}

// saveSessionKey stores an explicit session key, preserving the year.
func saveSessionKey(path string, key string) error {
	cfg, err := loadConfigForUpdate(path)
	if err != nil {
		return err
	}
	cfg.SessionKey = strings.TrimSpace(key)
	return saveConfig(path, cfg)
}
