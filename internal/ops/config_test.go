package ops

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	loaded, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9000", loaded.Listen)
	assert.Equal(t, "http://127.0.0.1:8000", loaded.Executor.BaseURL)
	assert.Equal(t, 5*time.Minute, loaded.DedupTTL)
	assert.Equal(t, 1000, loaded.DedupMaxSize)
	assert.True(t, loaded.TokenGenerated)
	assert.Len(t, loaded.Token, 64)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"listen": ":9100",
		"token": "fixed-token",
		"executor": {"baseUrl": "http://10.0.0.1:8000", "token": "qmt"},
		"dedup": {"ttlSeconds": 60, "maxSize": 10},
		"audit": {"dsn": "postgres://audit"}
	}`), 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9100", loaded.Listen)
	assert.Equal(t, "fixed-token", loaded.Token)
	assert.False(t, loaded.TokenGenerated)
	assert.Equal(t, "http://10.0.0.1:8000", loaded.Executor.BaseURL)
	assert.Equal(t, "qmt", loaded.Executor.Token)
	assert.Equal(t, time.Minute, loaded.DedupTTL)
	assert.Equal(t, 10, loaded.DedupMaxSize)
	assert.Equal(t, "postgres://audit", loaded.AuditDSN)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestGeneratedTokensDiffer(t *testing.T) {
	a, err := Load("")
	require.NoError(t, err)
	b, err := Load("")
	require.NoError(t, err)
	assert.NotEqual(t, a.Token, b.Token)
}
