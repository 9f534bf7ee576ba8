// Package config loads keychord settings.
//
// Settings come from, in increasing priority: built-in defaults, a YAML
// config file, KEYCHORD_* environment variables and command-line flags.
//
//	leader: "<Space>"
//	initial_mode: normal
//	keymaps:
//	  - ~/.config/keychord/keymaps
//	watch: true
//	log:
//	  level: debug
//	  file: /tmp/keychord.log
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/mode"
	"github.com/dshills/keychord/internal/logging"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "KEYCHORD"

// Config holds all configuration options.
type Config struct {
	// Leader is the symbol <Leader> expands to, in notation form. The
	// default action is bound to the leader typed twice.
	Leader string `mapstructure:"leader"`

	// InitialMode is the mode the dispatcher starts in.
	InitialMode string `mapstructure:"initial_mode"`

	// Keymaps are keymap files or directories, loaded in order.
	Keymaps []string `mapstructure:"keymaps"`

	// Watch enables reloading keymaps when their files change.
	Watch bool `mapstructure:"watch"`

	// Debounce is how long to wait for keymap writes to settle.
	Debounce time.Duration `mapstructure:"debounce"`

	Log LogConfig `mapstructure:"log"`

	// File is the config file that was read, empty if none.
	File string `mapstructure:"-"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Dir returns the user config directory, ~/.config/keychord.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "keychord")
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	keymaps := []string{}
	if dir := Dir(); dir != "" {
		keymaps = append(keymaps, filepath.Join(dir, "keymaps"))
	}
	return Config{
		Leader:      "<Space>",
		InitialMode: mode.Normal.String(),
		Keymaps:     keymaps,
		Watch:       true,
		Debounce:    200 * time.Millisecond,
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads configuration. An explicit path must exist; without one the
// user config directory is searched and a missing file is not an error.
// Flags in fs that changed override everything else; fs may be nil.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if dir := Dir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Keymaps = expandHome(cfg.Keymaps)
	cfg.Log.File = expandPath(cfg.Log.File)
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("leader", d.Leader)
	v.SetDefault("initial_mode", d.InitialMode)
	v.SetDefault("keymaps", d.Keymaps)
	v.SetDefault("watch", d.Watch)
	v.SetDefault("debounce", d.Debounce)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"leader":    "leader",
	"mode":      "initial_mode",
	"keymap":    "keymaps",
	"watch":     "watch",
	"log-level": "log.level",
	"log-file":  "log.file",
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, cfgKey := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(cfgKey, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

// Validate checks every setting and reports all problems together.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.LeaderSymbol(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Mode(); err != nil {
		errs = append(errs, fmt.Errorf("initial_mode: %w", err))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce: must not be negative, got %s", c.Debounce))
	}
	return errors.Join(errs...)
}

// LeaderSymbol parses Leader, which must be a single symbol.
func (c Config) LeaderSymbol() (key.Symbol, error) {
	seq, err := key.ParseSequence(c.Leader)
	if err != nil {
		return 0, fmt.Errorf("leader: %w", err)
	}
	if seq.Len() != 1 {
		return 0, fmt.Errorf("leader: want one symbol, got %d in %q", seq.Len(), c.Leader)
	}
	return seq[0], nil
}

// LeaderChord returns the chord the default action is bound to: the leader
// typed twice.
func (c Config) LeaderChord() (key.Sequence, error) {
	sym, err := c.LeaderSymbol()
	if err != nil {
		return nil, err
	}
	return key.Sequence{sym, sym}, nil
}

// Mode parses InitialMode.
func (c Config) Mode() (mode.Mode, error) {
	return mode.Parse(c.InitialMode)
}

// Parser returns a key parser using the configured leader.
func (c Config) Parser() (*key.Parser, error) {
	sym, err := c.LeaderSymbol()
	if err != nil {
		return nil, err
	}
	return &key.Parser{Leader: sym}, nil
}

func expandHome(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = expandPath(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
