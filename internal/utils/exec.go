package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// IsExecutable reports whether the file at path can be run. On Windows the
// extension must be listed in PATHEXT; elsewhere an execute bit must be set.
func IsExecutable(path string, info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return hasExecutableExt(path, os.Getenv("PATHEXT"))
	}
	return info.Mode().Perm()&0111 != 0
}

// hasExecutableExt checks the extension of path against a PATHEXT value,
// falling back to .com, .exe, .bat and .cmd when pathext is empty.
func hasExecutableExt(path, pathext string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	if pathext == "" {
		pathext = ".COM;.EXE;.BAT;.CMD"
	}
	for _, candidate := range SplitAndTrim(pathext, ";") {
		if !strings.HasPrefix(candidate, ".") {
			candidate = "." + candidate
		}
		if strings.EqualFold(candidate, ext) {
			return true
		}
	}
	return false
}
