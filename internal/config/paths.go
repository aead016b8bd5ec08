package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const dirPerm = 0o755

// Paths are the resolved on-disk locations derived from StorageConfig.
type Paths struct {
	Root   string
	DB     string
	Images string
	Log    string
}

// ResolvePaths resolves the storage locations and creates the directories.
// Failing to create them is fatal for the caller: the store cannot open.
func ResolvePaths(s StorageConfig) (Paths, error) {
	root := ExpandPath(s.DataDir)
	if root == "" {
		return Paths{}, fmt.Errorf("resolve data dir: empty path")
	}

	p := Paths{
		Root:   root,
		DB:     underRoot(root, s.DBFile),
		Images: underRoot(root, s.ImageDir),
		Log:    filepath.Join(root, "scratchpad.log"),
	}

	for _, dir := range []string{p.Root, filepath.Dir(p.DB), p.Images} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return Paths{}, fmt.Errorf("create data dir %q: %w", dir, err)
		}
	}

	return p, nil
}

func underRoot(root, name string) string {
	name = ExpandPath(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(root, name)
}
