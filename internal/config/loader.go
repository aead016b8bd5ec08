package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	configDir  = ".config/scratchpad"
	configFile = "config.json"

	// EnvDataDir overrides Storage.DataDir.
	EnvDataDir = "SCRATCHPAD_DATA_DIR"
)

// rawConfig is the unmarshaling intermediary shared by JSON and YAML files.
type rawConfig struct {
	Storage rawStorageConfig `json:"storage" yaml:"storage"`
	Sticky  rawStickyConfig  `json:"sticky" yaml:"sticky"`
	Keymap  rawKeymapConfig  `json:"keymap" yaml:"keymap"`
	UI      rawUIConfig      `json:"ui" yaml:"ui"`
}

type rawStorageConfig struct {
	DataDir       string `json:"dataDir" yaml:"dataDir"`
	DBFile        string `json:"dbFile" yaml:"dbFile"`
	ImageDir      string `json:"imageDir" yaml:"imageDir"`
	Driver        string `json:"driver" yaml:"driver"`
	CapacityBytes *int64 `json:"capacityBytes" yaml:"capacityBytes"`
}

type rawStickyConfig struct {
	SaveDelay string `json:"saveDelay" yaml:"saveDelay"`
}

type rawKeymapConfig struct {
	Overrides map[string]string `json:"overrides" yaml:"overrides"`
}

type rawUIConfig struct {
	ShowFooter    *bool  `json:"showFooter" yaml:"showFooter"`
	StartCategory string `json:"startCategory" yaml:"startCategory"`
	ListWidth     int    `json:"listWidth" yaml:"listWidth"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/scratchpad/config.json.
// Files ending in .yaml or .yml are parsed as YAML.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var raw rawConfig
			if err := unmarshalRaw(path, data, &raw); err != nil {
				return nil, err
			}
			mergeConfig(cfg, &raw)
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		cfg.Storage.DataDir = dir
	}
	cfg.Storage.DataDir = ExpandPath(cfg.Storage.DataDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func unmarshalRaw(path string, data []byte, raw *rawConfig) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, raw)
	default:
		return json.Unmarshal(data, raw)
	}
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Storage
	if raw.Storage.DataDir != "" {
		cfg.Storage.DataDir = raw.Storage.DataDir
	}
	if raw.Storage.DBFile != "" {
		cfg.Storage.DBFile = raw.Storage.DBFile
	}
	if raw.Storage.ImageDir != "" {
		cfg.Storage.ImageDir = raw.Storage.ImageDir
	}
	if raw.Storage.Driver != "" {
		cfg.Storage.Driver = raw.Storage.Driver
	}
	if raw.Storage.CapacityBytes != nil {
		cfg.Storage.CapacityBytes = *raw.Storage.CapacityBytes
	}

	// Sticky
	if raw.Sticky.SaveDelay != "" {
		if d, err := time.ParseDuration(raw.Sticky.SaveDelay); err == nil {
			cfg.Sticky.SaveDelay = d
		}
	}

	// Keymap
	for k, v := range raw.Keymap.Overrides {
		cfg.Keymap.Overrides[k] = v
	}

	// UI
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.StartCategory != "" {
		cfg.UI.StartCategory = raw.UI.StartCategory
	}
	if raw.UI.ListWidth > 0 {
		cfg.UI.ListWidth = raw.UI.ListWidth
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// testConfigPath redirects ConfigPath in tests.
var testConfigPath string

// SetTestConfigPath points ConfigPath at path. Tests only.
func SetTestConfigPath(path string) { testConfigPath = path }

// ResetTestConfigPath undoes SetTestConfigPath.
func ResetTestConfigPath() { testConfigPath = "" }

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
