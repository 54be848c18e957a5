package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath makes p usable from any working directory. "~/" expands to the
// home directory, absolute paths are returned cleaned, and relative paths are
// joined onto baseDir. An empty p stays empty.
func ResolvePath(p, baseDir string) string {
	if p == "" {
		return ""
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if filepath.IsAbs(p) || baseDir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}
