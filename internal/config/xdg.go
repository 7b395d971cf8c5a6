package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDir is the XDG data directory of isovisor: $XDG_DATA_HOME/isovisor, or
// ~/.local/share/isovisor.
func DataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "isovisor"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "isovisor"), nil
}
