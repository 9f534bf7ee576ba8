package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/mode"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	chord, err := cfg.LeaderChord()
	require.NoError(t, err)
	assert.True(t, chord.Equals(key.Sequence{key.SymbolSpace, key.SymbolSpace}))

	m, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, mode.Normal, m)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `leader: ","
initial_mode: insert
keymaps:
  - /etc/keychord/keys.yaml
  - ~/keys
watch: false
debounce: 1s
log:
  level: debug
  file: /tmp/keychord.log
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, ",", cfg.Leader)
	assert.Equal(t, "insert", cfg.InitialMode)
	assert.Equal(t, []string{"/etc/keychord/keys.yaml", filepath.Join(home, "keys")}, cfg.Keymaps)
	assert.False(t, cfg.Watch)
	assert.Equal(t, time.Second, cfg.Debounce)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/keychord.log", cfg.Log.File)
	assert.Equal(t, path, cfg.File)

	p, err := cfg.Parser()
	require.NoError(t, err)
	seq, err := p.Parse("<Leader>w")
	require.NoError(t, err)
	assert.True(t, seq.Equals(key.SequenceOf(",w")))
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "watch: false\n"), nil)
	require.NoError(t, err)

	d := Defaults()
	assert.Equal(t, d.Leader, cfg.Leader)
	assert.Equal(t, d.InitialMode, cfg.InitialMode)
	assert.Equal(t, d.Debounce, cfg.Debounce)
	assert.Equal(t, d.Log.Level, cfg.Log.Level)
	assert.False(t, cfg.Watch)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\n")
	t.Setenv("KEYCHORD_LOG_LEVEL", "error")
	t.Setenv("KEYCHORD_INITIAL_MODE", "visual")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "visual", cfg.InitialMode)
}

func TestLoadFlagsOverrideEverything(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\nwatch: true\n")
	t.Setenv("KEYCHORD_LOG_LEVEL", "error")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", "", "")
	fs.Bool("watch", true, "")
	fs.StringSlice("keymap", nil, "")
	require.NoError(t, fs.Parse([]string{"--log-level=debug", "--keymap=a.yaml", "--keymap=b.yaml"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, cfg.Keymaps)
	// Unchanged flags do not override the file.
	assert.True(t, cfg.Watch)
}

func TestValidateReportsEverything(t *testing.T) {
	cfg := Defaults()
	cfg.Leader = "ab"
	cfg.InitialMode = "replace"
	cfg.Log.Level = "loud"
	cfg.Debounce = -time.Second

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "leader: want one symbol")
	assert.Contains(t, msg, "initial_mode")
	assert.Contains(t, msg, "log.level")
	assert.Contains(t, msg, "debounce")
}

func TestLeaderSymbol(t *testing.T) {
	tests := []struct {
		leader  string
		want    key.Symbol
		wantErr bool
	}{
		{"<Space>", key.SymbolSpace, false},
		{",", ',', false},
		{"\\", '\\', false},
		{"<Bslash>", key.SymbolBslash, false},
		{"", 0, true},
		{"<Nope>", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.leader, func(t *testing.T) {
			got, err := Config{Leader: tt.leader}.LeaderSymbol()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
