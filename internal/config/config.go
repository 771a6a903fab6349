// Package config handles loading voicelog.toml configuration files.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config represents the voicelog.toml configuration file. Every field
// can be overridden by an environment variable; env wins.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `toml:"listen-addr"`

	// BackendURL is the public URL of this service, baked into the
	// tools registered with the agent platform so it can call back.
	BackendURL string `toml:"backend-url"`

	// AgentStatePath is the file holding the persisted agent id.
	AgentStatePath string `toml:"agent-state-path"`

	Letta    Letta    `toml:"letta"`
	Database Database `toml:"database"`
}

// Letta contains agent-platform configuration.
type Letta struct {
	// APIKey authenticates against the platform. Agent features are
	// disabled when empty.
	APIKey string `toml:"api-key"`

	// BaseURL overrides the hosted platform endpoint.
	BaseURL string `toml:"base-url"`

	// Model is the LLM backing newly created agents.
	Model string `toml:"model"`
}

// Database contains storage configuration. A non-empty MongoURI selects
// the MongoDB backend; otherwise the SQLite file is used.
type Database struct {
	MongoURI   string `toml:"mongo-uri"`
	MongoName  string `toml:"mongo-name"`
	SQLitePath string `toml:"sqlite-path"`
}

// Load reads the config file at path (missing file is fine), applies
// defaults, and then environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ListenAddr:     ":5002",
		BackendURL:     "http://localhost:5002",
		AgentStatePath: ".voicelog_agent_id",
		Letta: Letta{
			Model: "openai/gpt-4o-mini",
		},
		Database: Database{
			MongoName:  "voicelog",
			SQLitePath: "voicelog.db",
		},
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err == nil {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setFromEnv(&cfg.ListenAddr, "VOICELOG_ADDR")
	setFromEnv(&cfg.BackendURL, "VOICELOG_BACKEND_URL")
	setFromEnv(&cfg.AgentStatePath, "VOICELOG_AGENT_STATE")
	setFromEnv(&cfg.Letta.APIKey, "LETTA_API_KEY")
	setFromEnv(&cfg.Letta.BaseURL, "LETTA_BASE_URL")
	setFromEnv(&cfg.Letta.Model, "LETTA_MODEL")
	setFromEnv(&cfg.Database.MongoURI, "MONGO_URI")
	setFromEnv(&cfg.Database.MongoName, "MONGO_DATABASE")
	setFromEnv(&cfg.Database.SQLitePath, "VOICELOG_DB")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
