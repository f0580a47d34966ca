package config

import (
	"os"
	"path/filepath"
)

const (
	appName        = "typesprint"
	configFileName = "config.toml"
	dbFileName     = appName + ".db"
)

// baseDir is an XDG base directory: an environment override plus a fallback
// relative to the home directory.
type baseDir struct {
	env      string
	fallback []string
}

var (
	configHome = baseDir{env: "XDG_CONFIG_HOME", fallback: []string{".config"}}
	dataHome   = baseDir{env: "XDG_DATA_HOME", fallback: []string{".local", "share"}}
)

// appPath joins name under the typesprint directory of d. Without a usable
// home directory it resolves against the working directory.
func (d baseDir) appPath(name string) string {
	if v := os.Getenv(d.env); v != "" {
		return filepath.Join(v, appName, name)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	parts := append([]string{home}, d.fallback...)
	return filepath.Join(append(parts, appName, name)...)
}

// DefaultDBPath returns where session results are stored when history is on.
func DefaultDBPath() string {
	return dataHome.appPath(dbFileName)
}

// DefaultConfigPath returns the TOML config path.
func DefaultConfigPath() string {
	return configHome.appPath(configFileName)
}
