package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	store, err := cfg.GetStore()
	require.NoError(t, err)
	assert.Equal(t, "memory", store.Type)
	assert.True(t, store.Enabled)
	assert.Equal(t, 720*time.Hour, store.TTL)
	assert.Equal(t, time.Hour, store.CleanupFrequency)

	ext, err := cfg.GetExtractor()
	require.NoError(t, err)
	assert.Empty(t, ext.Denylist)
	assert.Empty(t, ext.Weights)
	assert.Equal(t, 15, ext.CompanyBonus)
	assert.True(t, ext.DecodeEntities)

	assist, err := cfg.GetAssist()
	require.NoError(t, err)
	assert.False(t, assist.Enabled)
	assert.Equal(t, 30*time.Second, assist.Timeout)
	assert.Equal(t, 15000, assist.MaxBodySize)

	mx, err := cfg.GetMX()
	require.NoError(t, err)
	assert.Equal(t, []string{"8.8.8.8:53", "1.1.1.1:53"}, mx.Servers)

	server, err := cfg.GetServer()
	require.NoError(t, err)
	assert.Equal(t, "http", server.IntakeType)

	smtp, err := cfg.GetSMTP()
	require.NoError(t, err)
	assert.Equal(t, int64(10*1024*1024), smtp.MaxMessageBytes)
}

func TestInvalidDuration(t *testing.T) {
	v := NewEmptyViper()
	v.Set("store.ttl", "soon")

	_, err := NewFromViper(v).GetStore()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.ttl")
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
extractor:
  denylist: [foo, bar]
  weights:
    - keyword: vertrieb
      score: 5
    - keyword: info
      score: -3
store:
  type: postgres
notify:
  telegram:
    chat_id: 123456
`), 0o600))

	cfg, err := NewFromFile(path)
	require.NoError(t, err)

	ext, err := cfg.GetExtractor()
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "bar"}, ext.Denylist)
	assert.Equal(t, []WeightConfig{{Keyword: "vertrieb", Score: 5}, {Keyword: "info", Score: -3}}, ext.Weights)

	store, err := cfg.GetStore()
	require.NoError(t, err)
	assert.Equal(t, "postgres", store.Type)

	assert.Equal(t, int64(123456), cfg.GetTelegram().ChatID)
}

func TestNewFromFile_Missing(t *testing.T) {
	_, err := NewFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNew_EnvOverride(t *testing.T) {
	t.Setenv("CONTACT_EXTRACTOR_STORE_TYPE", "sqlite")
	t.Setenv("CONTACT_EXTRACTOR_OPENAI_API_KEY", "sk-test")

	cfg, err := New()
	require.NoError(t, err)

	store, err := cfg.GetStore()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", store.Type)
	assert.Equal(t, "sk-test", cfg.GetOpenAI().APIKey)
}
