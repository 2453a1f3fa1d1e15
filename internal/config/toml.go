// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Drill DrillConfig `toml:"drill"`
}

// DrillConfig maps drill-related settings.
type DrillConfig struct {
	Deck          *string `toml:"deck"`
	Difficulties  *[]int  `toml:"difficulties"`
	MaxDifficulty *int    `toml:"max-difficulty"`
	Recent        *int    `toml:"recent"`
	Interval      *int    `toml:"interval"`
	AutoPlay      *bool   `toml:"auto-play"`
	AutoAdvance   *bool   `toml:"auto-advance"`
	Syllables     *bool   `toml:"syllables"`
	Pronunciation *bool   `toml:"pronunciation"`
	Journal       *bool   `toml:"journal"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
