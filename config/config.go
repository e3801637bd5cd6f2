// Package config loads the cache's tunables from a HuJSON (JSON with
// comments) file, the way calvinalkan-agent-task's .tk.json config layer
// does: defaults, then an optional file overlaid on them. There is no
// separate overrides argument.
package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

// Config holds the tunables of an avc.Cache that are reasonable to change
// without a code change: bucket count is a fixed 512 and is deliberately
// not configurable here.
type Config struct {
	CacheThreshold int64  `json:"cache_threshold"`
	ReclaimBatch   int    `json:"reclaim_batch"`
	LogLevel       string `json:"log_level,omitempty"`
}

// Default returns the built-in tunables.
func Default() Config {
	return Config{
		CacheThreshold: 512,
		ReclaimBatch:   16,
		LogLevel:       "INFO",
	}
}

// Load reads path (HuJSON: JSON plus // and /* */ comments and trailing
// commas) and overlays it onto Default(). A missing file is not an error;
// Default() is returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}

	std, err := hujson.Standardize(raw)
	if err != nil {
		return Config{}, err
	}
	if err := json.Unmarshal(std, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path as pretty-printed JSON via an atomic rename, so a
// crash mid-write never corrupts the tunables file (used by the debug
// console's RELOAD command after an operator edits thresholds at runtime).
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return atomic.WriteFile(path, bytes.NewReader(data))
}
