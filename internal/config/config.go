package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Storage StorageConfig `json:"storage"`
	Sticky  StickyConfig  `json:"sticky"`
	Keymap  KeymapConfig  `json:"keymap"`
	UI      UIConfig      `json:"ui"`
}

// StorageConfig locates the note database and the image folder.
type StorageConfig struct {
	DataDir  string `json:"dataDir"`  // root for notes.db, images/ and the log (supports ~ expansion)
	DBFile   string `json:"dbFile"`   // database file name, relative to DataDir unless absolute
	ImageDir string `json:"imageDir"` // image folder, relative to DataDir unless absolute
	Driver   string `json:"driver"`   // "sqlite" (pure Go) or "sqlite3" (cgo)

	// CapacityBytes is the ceiling used for the dashboard usage gauge.
	// Zero disables the gauge.
	CapacityBytes int64 `json:"capacityBytes"`
}

// StickyConfig configures sticky-note autosave.
type StickyConfig struct {
	SaveDelay time.Duration `json:"saveDelay"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter    bool   `json:"showFooter"`
	StartCategory string `json:"startCategory"` // category or "Dashboard"; empty restores the last one
	ListWidth     int    `json:"listWidth"`     // columns for the note list pane
}

const (
	DriverSQLite  = "sqlite"
	DriverSQLite3 = "sqlite3"

	defaultDataDir   = "~/.local/share/scratchpad"
	defaultDBFile    = "notes.db"
	defaultImageDir  = "images"
	defaultListWidth = 32
	defaultSaveDelay = time.Second
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir:  defaultDataDir,
			DBFile:   defaultDBFile,
			ImageDir: defaultImageDir,
			Driver:   DriverSQLite,
		},
		Sticky: StickyConfig{
			SaveDelay: defaultSaveDelay,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowFooter: true,
			ListWidth:  defaultListWidth,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Storage.Driver != DriverSQLite && c.Storage.Driver != DriverSQLite3 {
		c.Storage.Driver = DriverSQLite
	}
	if c.Storage.CapacityBytes < 0 {
		c.Storage.CapacityBytes = 0
	}
	if c.Sticky.SaveDelay <= 0 {
		c.Sticky.SaveDelay = defaultSaveDelay
	}
	if c.UI.ListWidth <= 0 {
		c.UI.ListWidth = defaultListWidth
	}
	return nil
}
