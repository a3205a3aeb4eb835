package ops

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"main/internal/dedup"
)

const (
	defaultListen      = ":9000"
	defaultExecutorURL = "http://127.0.0.1:8000"
)

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	Listen   string         `json:"listen"`
	Token    string         `json:"token"`
	Executor ExecutorConfig `json:"executor"`
	Dedup    DedupConfig    `json:"dedup"`
	Audit    AuditConfig    `json:"audit"`
}

// ExecutorConfig locates the downstream execution service.
type ExecutorConfig struct {
	BaseURL string `json:"baseUrl"`
	Token   string `json:"token"`
}

// DedupConfig bounds the dedup window.
type DedupConfig struct {
	TTLSeconds int `json:"ttlSeconds"`
	MaxSize    int `json:"maxSize"`
}

// AuditConfig enables the PostgreSQL audit recorder when a DSN is set.
type AuditConfig struct {
	DSN string `json:"dsn"`
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	Listen         string
	Token          string
	TokenGenerated bool
	Executor       ExecutorConfig
	DedupTTL       time.Duration
	DedupMaxSize   int
	AuditDSN       string
}

// Load reads a JSON config file and resolves defaults. An empty path yields
// the default configuration.
func Load(path string) (Loaded, error) {
	var cfg FileConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Loaded{}, err
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Loaded{}, err
		}
	}
	return resolve(cfg)
}

func resolve(cfg FileConfig) (Loaded, error) {
	loaded := Loaded{
		Listen:       cfg.Listen,
		Token:        cfg.Token,
		Executor:     cfg.Executor,
		DedupTTL:     time.Duration(cfg.Dedup.TTLSeconds) * time.Second,
		DedupMaxSize: cfg.Dedup.MaxSize,
		AuditDSN:     cfg.Audit.DSN,
	}
	if loaded.Listen == "" {
		loaded.Listen = defaultListen
	}
	if loaded.Executor.BaseURL == "" {
		loaded.Executor.BaseURL = defaultExecutorURL
	}
	if loaded.DedupTTL <= 0 {
		loaded.DedupTTL = dedup.DefaultTTL
	}
	if loaded.DedupMaxSize <= 0 {
		loaded.DedupMaxSize = dedup.DefaultMaxSize
	}
	if loaded.Token == "" {
		token, err := generateToken()
		if err != nil {
			return Loaded{}, err
		}
		loaded.Token = token
		loaded.TokenGenerated = true
	}
	return loaded, nil
}

// generateToken returns 32 random bytes in hex, matching the length an
// operator would get from a manual `openssl rand -hex 32`.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
