// internal/logger/filter.go
package logger

import (
	"strings"
	"sync"
)

// Config holds logger settings, loadable from the [logger] config table.
type Config struct {
	// LogLevel is the minimum level to log ("debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`
	// LogFilePath is the log file path. Empty means the host decides.
	LogFilePath string `toml:"log_file"`
	// EnabledTags restricts DebugTagf output to these tags when non-empty.
	EnabledTags []string `toml:"enabled_tags"`
	// DisabledTags drops DebugTagf output for these tags. Overrides EnabledTags.
	DisabledTags []string `toml:"disabled_tags"`
}

var (
	filterMu     sync.RWMutex
	enabledTags  map[string]struct{}
	disabledTags map[string]struct{}
)

// SetTagFilter installs the tag allow/deny lists for DebugTagf.
func SetTagFilter(enabled, disabled []string) {
	filterMu.Lock()
	defer filterMu.Unlock()
	enabledTags = sliceToSet(enabled)
	disabledTags = sliceToSet(disabled)
}

func tagEnabled(tag string) bool {
	filterMu.RLock()
	defer filterMu.RUnlock()
	tag = strings.ToLower(tag)
	if disabledTags != nil {
		if _, found := disabledTags[tag]; found {
			return false
		}
	}
	if enabledTags != nil {
		_, found := enabledTags[tag]
		return found
	}
	return true
}

func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
