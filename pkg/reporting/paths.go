package reporting

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultPathManager implements path management functionality
type DefaultPathManager struct{}

// NewDefaultPathManager creates a new path manager
func NewDefaultPathManager() *DefaultPathManager {
	return &DefaultPathManager{}
}

// GetDefaultOutputDir returns results/{SYMBOL}
func (p *DefaultPathManager) GetDefaultOutputDir(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		s = "UNKNOWN"
	}
	return filepath.Join("results", s)
}

// EnsureDirectoryExists creates the parent directory of path if it doesn't exist
func (p *DefaultPathManager) EnsureDirectoryExists(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// DefaultOutputDir is a package-level convenience function
func DefaultOutputDir(symbol string) string {
	return NewDefaultPathManager().GetDefaultOutputDir(symbol)
}
