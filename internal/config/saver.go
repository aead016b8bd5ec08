package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Storage saveStorageConfig `json:"storage"`
	Sticky  saveStickyConfig  `json:"sticky"`
	Keymap  KeymapConfig      `json:"keymap"`
	UI      UIConfig          `json:"ui"`
}

type saveStorageConfig struct {
	DataDir       string `json:"dataDir,omitempty"`
	DBFile        string `json:"dbFile,omitempty"`
	ImageDir      string `json:"imageDir,omitempty"`
	Driver        string `json:"driver,omitempty"`
	CapacityBytes int64  `json:"capacityBytes,omitempty"`
}

type saveStickyConfig struct {
	SaveDelay string `json:"saveDelay,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Storage: saveStorageConfig{
			DataDir:       cfg.Storage.DataDir,
			DBFile:        cfg.Storage.DBFile,
			ImageDir:      cfg.Storage.ImageDir,
			Driver:        cfg.Storage.Driver,
			CapacityBytes: cfg.Storage.CapacityBytes,
		},
		Sticky: saveStickyConfig{
			SaveDelay: cfg.Sticky.SaveDelay.String(),
		},
		Keymap: cfg.Keymap,
		UI:     cfg.UI,
	}
}

// Save writes the config to ~/.config/scratchpad/config.json.
// Top-level keys it does not manage are preserved.
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path, as YAML when path ends in .yaml or
// .yml and JSON otherwise. Top-level keys it does not manage are preserved.
func SaveTo(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	managed, err := json.Marshal(toSaveConfig(cfg))
	if err != nil {
		return err
	}

	var data []byte
	if isYAML(path) {
		data, err = mergeYAML(path, managed)
	} else {
		data, err = mergeJSON(path, managed)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func mergeJSON(path string, managed []byte) ([]byte, error) {
	merged := make(map[string]json.RawMessage)
	if existing, err := os.ReadFile(path); err == nil {
		// An unreadable existing file is replaced rather than blocking the save.
		_ = json.Unmarshal(existing, &merged)
	}

	var managedKeys map[string]json.RawMessage
	if err := json.Unmarshal(managed, &managedKeys); err != nil {
		return nil, err
	}
	for k, v := range managedKeys {
		merged[k] = v
	}
	return json.MarshalIndent(merged, "", "  ")
}

func mergeYAML(path string, managed []byte) ([]byte, error) {
	merged := make(map[string]any)
	if existing, err := os.ReadFile(path); err == nil {
		_ = yaml.Unmarshal(existing, &merged)
		if merged == nil {
			merged = make(map[string]any)
		}
	}

	var managedKeys map[string]any
	if err := json.Unmarshal(managed, &managedKeys); err != nil {
		return nil, err
	}
	for k, v := range managedKeys {
		merged[k] = v
	}
	return yaml.Marshal(merged)
}
