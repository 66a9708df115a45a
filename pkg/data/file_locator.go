package data

import (
	"log"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileLocator implements FileLocator for standard file system operations
type DefaultFileLocator struct{}

// NewDefaultFileLocator creates a new default file locator
func NewDefaultFileLocator() *DefaultFileLocator {
	return &DefaultFileLocator{}
}

// FindDataFile attempts to locate the daily history of a symbol.
// Layouts tried, for each extension:
//
//	{dataRoot}/{SYMBOL}{ext}
//	{dataRoot}/{symbol}{ext}
//	{dataRoot}/{SYMBOL}/daily{ext}
//
// Returns empty string if no file is found
func (f *DefaultFileLocator) FindDataFile(dataRoot, symbol string, extensions ...string) string {
	if len(extensions) == 0 {
		extensions = []string{".csv"}
	}
	upper := strings.ToUpper(symbol)
	lower := strings.ToLower(symbol)

	var attemptedPaths []string
	for _, ext := range extensions {
		candidates := []string{
			filepath.Join(dataRoot, upper+ext),
			filepath.Join(dataRoot, lower+ext),
			filepath.Join(dataRoot, upper, "daily"+ext),
		}
		for _, path := range candidates {
			attemptedPaths = append(attemptedPaths, path)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}

	log.Printf("⚠️ No data file found for %s in:", symbol)
	for _, path := range attemptedPaths {
		log.Printf("   - %s", path)
	}

	return ""
}
