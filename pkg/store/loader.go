package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Format identifies a dataset file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON           // plain JSON document
	FormatBinary         // msgpack encoded document
)

// DetectFormat picks the codec from the file extension.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON
	case ".bin", ".msgpack":
		return FormatBinary
	}
	return FormatUnknown
}

// LoadFile reads and decodes a dataset file, then validates it.
func LoadFile(filename string) (*Data, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", filename, err)
	}

	var data Data
	switch DetectFormat(filename) {
	case FormatJSON:
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode dataset %s: %w", filename, err)
		}
	case FormatBinary:
		if err := msgpack.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode dataset %s: %w", filename, err)
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", filename)
	}

	Validate(&data, filename)
	return &data, nil
}

// Validate sanity-checks a loaded dataset. Problems are logged, never fatal:
// a store with a missing ID still renders, it just can't be looked up.
func Validate(data *Data, origin string) {
	if len(data.Stores) == 0 {
		log.Warnf("Dataset %s contains no stores", origin)
		return
	}

	missingIDs := 0
	seen := make(map[string]bool, len(data.Stores))
	for _, s := range data.Stores {
		if s.StoreID == "" {
			missingIDs++
			continue
		}
		if seen[s.StoreID] {
			log.Warnf("Duplicate store id in dataset: %s", s.StoreID)
		}
		seen[s.StoreID] = true
	}
	if missingIDs > 0 {
		log.Warnf("Dataset %s has %d stores without an id", origin, missingIDs)
	}
	log.Debugf("Loaded %d stores from %s", len(data.Stores), origin)
}

// WriteBinary writes the msgpack form of a dataset, for deploys that prefer
// the smaller binary file over JSON.
func WriteBinary(data *Data, filename string) error {
	raw, err := msgpack.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return os.WriteFile(filename, raw, 0644)
}
