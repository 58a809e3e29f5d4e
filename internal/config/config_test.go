package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".leakmon.yml")
	body := `
roots:
  - /srv/app
exclude: "vendor/**,*.min.js"
max_bytes: 5242880
min_confidence: 0.5
entropy_threshold: 0.8
disable: "email,phone_number"
read_timeout: "2s"
context_bytes: 200
skip_comments: false
test_path_markers: [testdata, fixtures]
`
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))

	cfg, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"/srv/app"}, cfg.Roots)
	require.NotNil(t, cfg.Exclude)
	assert.Equal(t, "vendor/**,*.min.js", *cfg.Exclude)
	require.NotNil(t, cfg.MaxBytes)
	assert.Equal(t, int64(5242880), *cfg.MaxBytes)
	require.NotNil(t, cfg.MinConfidence)
	assert.Equal(t, 0.5, *cfg.MinConfidence)
	require.NotNil(t, cfg.EntropyThreshold)
	assert.Equal(t, 0.8, *cfg.EntropyThreshold)
	require.NotNil(t, cfg.ReadTimeout)
	assert.Equal(t, "2s", *cfg.ReadTimeout)
	require.NotNil(t, cfg.ContextBytes)
	assert.Equal(t, 200, *cfg.ContextBytes)
	require.NotNil(t, cfg.SkipComments)
	assert.False(t, *cfg.SkipComments)
	assert.Equal(t, []string{"testdata", "fixtures"}, cfg.TestPathMarkers)
	// unset fields stay nil so merge logic can distinguish them
	assert.Nil(t, cfg.AuditLog)
	assert.Nil(t, cfg.NoColor)
}

func TestLoadLocalPrecedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".leakmon.yml"), []byte("min_token_length: 24\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leakmon.yml"), []byte("min_token_length: 32\n"), 0644))

	cfg, err := LoadLocal(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.MinTokenLength)
	assert.Equal(t, 24, *cfg.MinTokenLength, "dotfile wins over bare name")
}

func TestLoadLocalMissing(t *testing.T) {
	_, err := LoadLocal(t.TempDir())
	assert.Error(t, err)
}
