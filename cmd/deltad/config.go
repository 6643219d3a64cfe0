package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/deltakit/deltakit/internal/server"
)

type fileConfig struct {
	Addr          string   `toml:"addr"`
	CorsOrigins   []string `toml:"cors_origins"`
	AuthToken     string   `toml:"auth_token"`
	MaxInputBytes int      `toml:"max_input_bytes"`
	VerifyCopy    bool     `toml:"verify_copy"`
}

func loadServerConfig(path string) (server.Config, error) {
	cfg := server.DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return server.Config{}, fmt.Errorf("load deltad config: %w", err)
	}

	if meta.IsDefined("addr") {
		addr := strings.TrimSpace(raw.Addr)
		if addr == "" {
			return server.Config{}, fmt.Errorf("deltad config: addr must not be blank")
		}
		cfg.Addr = addr
	}

	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = normalizeOrigins(raw.CorsOrigins)
	}

	if meta.IsDefined("auth_token") {
		cfg.AuthToken = strings.TrimSpace(raw.AuthToken)
	}

	if meta.IsDefined("max_input_bytes") {
		if raw.MaxInputBytes <= 0 {
			return server.Config{}, fmt.Errorf("deltad config: max_input_bytes must be positive")
		}
		cfg.MaxInputBytes = raw.MaxInputBytes
	}

	if meta.IsDefined("verify_copy") {
		cfg.VerifyCopy = raw.VerifyCopy
	}

	return cfg, nil
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
