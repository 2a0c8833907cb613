// Package config loads civic settings from defaults, a config file,
// CIVIC_* environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config keys
const (
	KeyDB             = "db"
	KeyJSON           = "json"
	KeyListSort       = "list.sort"
	KeyListStrictSort = "list.strict-sort"
	KeyExportFormat   = "export.format"
)

const (
	// LocalConfigName is looked up in the working directory first.
	LocalConfigName = "civic.yaml"
	// DataDirName holds the default database and user config under $HOME.
	DataDirName = ".civic"
	// DefaultDBName is the database file created when no path is configured.
	DefaultDBName = "citizen.db"
)

var v *viper.Viper

// Initialize sets up the viper configuration singleton.
// Should be called once at application startup, and again by tests that
// change the environment.
func Initialize() error {
	v = viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CIVIC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyDB, DefaultDBPath())
	v.SetDefault(KeyJSON, false)
	v.SetDefault(KeyListSort, "votes")
	v.SetDefault(KeyListStrictSort, true)
	v.SetDefault(KeyExportFormat, "json")

	path := FindConfigFile()
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return nil
}

// FindConfigFile returns the first existing config file: civic.yaml in the
// working directory, then ~/.civic/config.yaml. Returns "" when neither exists.
func FindConfigFile() string {
	candidates := []string{}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, LocalConfigName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DataDirName, "config.yaml"))
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// DefaultDBPath returns ~/.civic/citizen.db, or citizen.db in the working
// directory when the home directory cannot be determined.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultDBName
	}
	return filepath.Join(home, DataDirName, DefaultDBName)
}

// BindFlag lets an explicitly set command-line flag override key.
func BindFlag(key string, flag *pflag.Flag) error {
	if v == nil || flag == nil {
		return nil
	}
	return v.BindPFlag(key, flag)
}

// ConfigFileUsed returns the path of the loaded config file, if any.
func ConfigFileUsed() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// GetString retrieves a string configuration value
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool retrieves a boolean configuration value
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// AllSettings returns the effective configuration keyed by dotted name.
func AllSettings() map[string]interface{} {
	if v == nil {
		return map[string]interface{}{}
	}
	out := map[string]interface{}{}
	for _, key := range v.AllKeys() {
		out[key] = v.Get(key)
	}
	return out
}

// ResetForTesting clears the singleton so the next Initialize starts fresh.
func ResetForTesting() {
	v = nil
}
