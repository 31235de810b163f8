package config

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
)

// windowsVar matches %NAME% references.
var windowsVar = regexp.MustCompile(`%([^%]+)%`)

// expandPath resolves environment references and a leading ~ in p.
// $VAR works everywhere; %VAR% and ~\ are also accepted on Windows.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = expandWindowsEnv(p)
	}

	rest, ok := homeRelative(p)
	if !ok {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if rest == "" {
		return home
	}
	return filepath.Join(home, rest)
}

// homeRelative reports whether p starts at the home directory and returns
// the remainder.
func homeRelative(p string) (string, bool) {
	if p == "~" {
		return "", true
	}
	if len(p) < 2 || p[0] != '~' {
		return "", false
	}
	if p[1] == '/' || (runtime.GOOS == "windows" && p[1] == '\\') {
		return p[2:], true
	}
	return "", false
}

// expandWindowsEnv replaces %NAME% with the variable's value. Unknown
// names are left as written.
func expandWindowsEnv(p string) string {
	return windowsVar.ReplaceAllStringFunc(p, func(ref string) string {
		if val, ok := os.LookupEnv(ref[1 : len(ref)-1]); ok {
			return val
		}
		return ref
	})
}
