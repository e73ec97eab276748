package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"todolite/internal/store/jsonstore"
)

// EnvDataDir overrides where the todo document lives. Useful for tests and
// for keeping a list per project directory.
const EnvDataDir = "TODOLITE_DATA_DIR"

const appDirName = ".todolite"

// DataDir resolves the data directory: the env override if set, otherwise a
// dot directory under the user's home. The directory is not created here;
// the store creates it on first save.
func DataDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, appDirName), nil
}

// DataFile resolves the full path of the persisted todo document.
func DataFile() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, jsonstore.FileName), nil
}
