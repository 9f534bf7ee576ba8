package keymap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Format is a keymap file encoding.
type Format string

// Supported keymap formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported keymap file extension: %q", filepath.Ext(path))
	}
}

// Loader loads keymaps from configuration files.
type Loader struct {
	// searchPaths are directories to search for keymap files.
	searchPaths []string

	logger *zap.Logger
}

// NewLoader creates a new keymap loader.
func NewLoader() *Loader {
	return &Loader{
		searchPaths: make([]string, 0),
		logger:      zap.NewNop(),
	}
}

// SetLogger sets the logger used to report skipped files.
func (l *Loader) SetLogger(logger *zap.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// AddSearchPath adds a file or directory to search for keymap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// Files returns every keymap file found on the search paths, directories
// expanded in name order.
func (l *Loader) Files() []string {
	files := make([]string, 0)
	for _, path := range l.searchPaths {
		info, err := os.Stat(path)
		if err != nil {
			l.logger.Debug("keymap path skipped", zap.String("path", path), zap.Error(err))
			continue
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			l.logger.Warn("reading keymap directory", zap.String("path", path), zap.Error(err))
			continue
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, err := FormatFromPath(e.Name()); err == nil {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			files = append(files, filepath.Join(path, name))
		}
	}
	return files
}

// LoadFile loads a keymap from a YAML or JSON file.
// A keymap without a name is named after the file.
func (l *Loader) LoadFile(path string) (*Keymap, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	km, err := l.LoadReader(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if km.Name == "" {
		km.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if km.Source == "" {
		km.Source = path
	}
	return km, nil
}

// LoadReader loads a keymap from a reader.
func (l *Loader) LoadReader(r io.Reader, format Format) (*Keymap, error) {
	km := &Keymap{}
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(km)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatJSON:
		err = json.NewDecoder(r).Decode(km)
	default:
		return nil, fmt.Errorf("unsupported keymap format: %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}
	if km.Bindings == nil {
		km.Bindings = make([]Binding, 0)
	}
	return km, nil
}

// LoadAll loads every keymap on the search paths. Files that fail to load
// are reported in the joined error; the rest are still returned.
func (l *Loader) LoadAll() ([]*Keymap, error) {
	keymaps := make([]*Keymap, 0)
	var errs []error

	for _, path := range l.Files() {
		km, err := l.LoadFile(path)
		if err != nil {
			l.logger.Warn("keymap file skipped", zap.String("path", path), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		l.logger.Debug("keymap loaded", zap.String("path", path), zap.Int("bindings", len(km.Bindings)))
		keymaps = append(keymaps, km)
	}

	return keymaps, errors.Join(errs...)
}

// SaveFile writes a keymap to path in the format its extension names.
func (k *Keymap) SaveFile(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(k, "", "  ")
	default:
		data, err = yaml.Marshal(k)
	}
	if err != nil {
		return fmt.Errorf("marshaling keymap: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating keymap directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing keymap file: %w", err)
	}
	return nil
}
