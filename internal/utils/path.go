package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Dataset filenames probed inside a candidate directory, in order.
var datasetNames = []string{"stores.json", "stores.bin", "stores.msgpack"}

// ResolveDataFile locates the store dataset file. The user path wins when it
// points straight at a file; otherwise it is treated as a directory and the
// usual candidates are probed:
//  1. user path relative to the executable dir
//  2. user path relative to the working dir
//  3. data/ next to the executable
func ResolveDataFile(userPath string) (string, error) {
	if userPath != "" && FileExists(userPath) {
		if stat, err := os.Stat(userPath); err == nil && !stat.IsDir() {
			return userPath, nil
		}
	}

	var candidates []string
	if filepath.IsAbs(userPath) {
		candidates = append(candidates, userPath)
	}
	if execDir, err := GetExecutableDir(); err == nil {
		candidates = append(candidates, filepath.Join(execDir, userPath))
		candidates = append(candidates, filepath.Join(execDir, "data"))
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userPath))
	}

	for _, dir := range candidates {
		if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
			continue
		}
		for _, name := range datasetNames {
			full := filepath.Join(dir, name)
			if FileExists(full) {
				log.Debugf("Found dataset file: %s", full)
				return full, nil
			}
		}
		log.Debugf("No dataset file in candidate dir: %s", dir)
	}

	return "", os.ErrNotExist
}
