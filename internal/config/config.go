// Package config loads the storefront TOML configuration.
// Defaults are used when the file is missing or a field is empty.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the storefront settings.
type Config struct {
	HTTPAddr      string
	StoragePath   string
	CatalogSeed   string
	AdminUsername string
	AdminPassword string
	LogLevel      string
}

const (
	defaultConfigPath    = "~/.config/storefront/config.toml"
	defaultHTTPAddr      = "127.0.0.1:9091"
	defaultStoragePath   = "~/.local/share/storefront/storefront.db"
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
	defaultLogLevel      = "info"
	memoryStorage        = ":memory:"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

func defaults() Config {
	return Config{
		HTTPAddr:      defaultHTTPAddr,
		StoragePath:   mustExpand(defaultStoragePath),
		AdminUsername: defaultAdminUsername,
		AdminPassword: defaultAdminPassword,
		LogLevel:      defaultLogLevel,
	}
}

// Load reads the config at path (or the default path), falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		HTTP struct {
			Addr string `toml:"addr"`
		} `toml:"http"`
		Storage struct {
			Path string `toml:"path"`
		} `toml:"storage"`
		Catalog struct {
			SeedFile string `toml:"seed_file"`
		} `toml:"catalog"`
		Admin struct {
			Username string `toml:"username"`
			Password string `toml:"password"`
		} `toml:"admin"`
		Log struct {
			Level string `toml:"level"`
		} `toml:"log"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.HTTP.Addr); v != "" {
		cfg.HTTPAddr = v
	}
	switch v := strings.TrimSpace(raw.Storage.Path); v {
	case "":
	case memoryStorage:
		cfg.StoragePath = memoryStorage
	default:
		cfg.StoragePath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.Catalog.SeedFile); v != "" {
		cfg.CatalogSeed = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.Admin.Username); v != "" {
		cfg.AdminUsername = v
	}
	if raw.Admin.Password != "" {
		cfg.AdminPassword = raw.Admin.Password
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Log.Level)); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// InMemory reports whether the config asks for non-durable storage.
func (c Config) InMemory() bool {
	return c.StoragePath == memoryStorage
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
