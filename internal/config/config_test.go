package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `
channel: somechannel
log_level: debug
actions:
  jump:
    key: Space
    time: 50
  combo:
    key: "A+B"
    time: 10
  notime:
    key: W
  badtime:
    key: S
    time: soon
control_keys:
  exit: F12
  pause: F11
`

func TestParseValid(t *testing.T) {
	cfg, err := Parse([]byte(validDoc))
	require.NoError(t, err)

	assert.Equal(t, "somechannel", cfg.Channel)
	assert.Equal(t, "debug", cfg.LogLevel)
	require.Len(t, cfg.Actions, 4)

	assert.Equal(t, "Space", cfg.Actions["jump"].Key)
	assert.Equal(t, Millis(50), cfg.Actions["jump"].Time)
	assert.Equal(t, "A+B", cfg.Actions["combo"].Key)

	assert.False(t, cfg.Actions["notime"].Time.Present)
	assert.True(t, cfg.Actions["badtime"].Time.Present)
	assert.False(t, cfg.Actions["badtime"].Time.Valid)

	assert.Equal(t, "F12", cfg.ControlKeys.Exit)
	assert.Equal(t, "F11", cfg.ControlKeys.Pause)
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse([]byte(validDoc))
	require.NoError(t, err)

	assert.Equal(t, 20*time.Millisecond, cfg.Settle())
	assert.Equal(t, 100*time.Millisecond, cfg.DefaultHold())
	assert.Equal(t, DefaultLogFile, cfg.LogPath())
	assert.Equal(t, DefaultIngestAddr, cfg.IngestAddr())
	assert.True(t, cfg.ReadStdin())
}

func TestTunables(t *testing.T) {
	doc := validDoc + `
settle_ms: 0
default_hold_ms: 250
log_file: ""
ingest:
  listen: "off"
  stdin: false
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), cfg.Settle())
	assert.Equal(t, 250*time.Millisecond, cfg.DefaultHold())
	assert.Equal(t, "", cfg.LogPath())
	assert.Equal(t, "", cfg.IngestAddr())
	assert.False(t, cfg.ReadStdin())
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "channel: [unclosed"},
		{"missing channel", "actions: {jump: {key: Space}}\ncontrol_keys: {exit: F12, pause: F11}"},
		{"missing actions", "channel: c\ncontrol_keys: {exit: F12, pause: F11}"},
		{"actions is a list", "channel: c\nactions: [a, b]\ncontrol_keys: {exit: F12, pause: F11}"},
		{"action without key", "channel: c\nactions: {jump: {time: 10}}\ncontrol_keys: {exit: F12, pause: F11}"},
		{"action is scalar", "channel: c\nactions: {jump: Space}\ncontrol_keys: {exit: F12, pause: F11}"},
		{"empty action name", "channel: c\nactions: {\"\": {key: Space}}\ncontrol_keys: {exit: F12, pause: F11}"},
		{"missing exit key", "channel: c\nactions: {jump: {key: Space}}\ncontrol_keys: {pause: F11}"},
		{"missing pause key", "channel: c\nactions: {jump: {key: Space}}\ncontrol_keys: {exit: F12}"},
		{"negative settle", validDoc + "settle_ms: -1\n"},
		{"zero default hold", validDoc + "default_hold_ms: 0\n"},
		{"settle overflows duration", validDoc + "settle_ms: 9300000000000\n"},
		{"default hold overflows duration", validDoc + "default_hold_ms: 9300000000000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestTemplateIsValid(t *testing.T) {
	cfg, err := Parse(Template())
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Actions)
}

func TestManagerLoad(t *testing.T) {
	t.Run("missing file writes template", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		m := NewManager(path)

		cfg, err := m.Load()
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, ErrTemplateCreated)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, Template(), data)
	})

	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(validDoc), 0644))
		m := NewManager(path)

		cfg, err := m.Load()
		require.NoError(t, err)
		assert.Equal(t, "somechannel", cfg.Channel)
		assert.Equal(t, path, m.Path())
	})

	t.Run("default path", func(t *testing.T) {
		assert.Equal(t, DefaultPath, NewManager("").Path())
	})
}
