package utils

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// FileExists simply checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates directory if it doesn't exist
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// LoadTOMLFile parses a TOML file into the provided struct
func LoadTOMLFile(path string, v interface{}) error {
	if _, err := toml.DecodeFile(path, v); err != nil {
		return err
	}
	return nil
}

// SaveTOMLFile saves a struct to a TOML file
func SaveTOMLFile(v interface{}, path string) error {
	file, err := os.Create(path)
	if err != nil {
		log.Errorf("Failed to create file: %v", err)
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(v)
}

// ParseTOMLWithRecovery parses whatever valid sections a broken TOML file
// still has, so a single bad key doesn't throw away the whole config.
func ParseTOMLWithRecovery(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw := make(map[string]any)
	if _, err := toml.Decode(string(data), &raw); err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v", path, err)
		return nil, err
	}
	return raw, nil
}

// ExtractSection pulls one section out of partially parsed TOML data
func ExtractSection(data map[string]any, name string) (map[string]any, bool) {
	section, ok := data[name].(map[string]any)
	return section, ok
}

// ExtractInt64 safely extracts an int value from a map
func ExtractInt64(data map[string]any, key string) (int, bool) {
	if val, ok := data[key].(int64); ok {
		return int(val), true
	}
	return 0, false
}

// ExtractString safely extracts a string value from a map
func ExtractString(data map[string]any, key string) (string, bool) {
	val, ok := data[key].(string)
	return val, ok
}

// ExtractBool safely extracts a bool value from a map
func ExtractBool(data map[string]any, key string) (bool, bool) {
	if val, ok := data[key].(bool); ok {
		return val, true
	}
	return false, false
}

// GetExecutableDir returns the directory of the current executable.
// Callers fall back to builtin defaults when even this fails.
func GetExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}

// WritableDir reports whether a directory exists (creating it if needed)
// and can actually be written to.
func WritableDir(dirPath string) bool {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		log.Warnf("Cannot create directory %s: %v", dirPath, err)
		return false
	}
	testFile := filepath.Join(dirPath, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		log.Warnf("Cannot write to directory %s: %v", dirPath, err)
		return false
	}
	os.Remove(testFile)
	return true
}
