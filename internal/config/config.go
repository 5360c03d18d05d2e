package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Verbose bool   `mapstructure:"verbose"`
	NoColor bool   `mapstructure:"no_color"`
	Xcrun   string `mapstructure:"xcrun"`

	Boot       BootConfig       `mapstructure:"boot"`
	Screenshot ScreenshotConfig `mapstructure:"screenshot"`
}

// BootConfig holds defaults for the boot command
type BootConfig struct {
	Wait    bool          `mapstructure:"wait"`
	Timeout time.Duration `mapstructure:"timeout"`
	Open    bool          `mapstructure:"open"`
}

// ScreenshotConfig holds defaults for the screenshot command
type ScreenshotConfig struct {
	// Dir is where the suggested screenshot path points.
	Dir string `mapstructure:"dir"`
}

// Meta records where configuration came from.
type Meta struct {
	ConfigFile string
	EnvKeys    []string
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format: "text",
		Xcrun:  "xcrun",
		Boot: BootConfig{
			Timeout: 60 * time.Second,
		},
		Screenshot: ScreenshotConfig{
			Dir: ".",
		},
	}
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.xsim.yaml or ./.xsim.yml
// 2. ~/.xsim.yaml or ~/.xsim.yml
// 3. $XDG_CONFIG_HOME/xsim/config.yaml (or ~/.config/xsim/config.yaml)
// 4. /etc/xsim/config.yaml
func Load() (*Config, error) {
	cfg, _, err := LoadWithMeta()
	return cfg, err
}

// LoadWithMeta is Load plus the file and environment keys that contributed.
func LoadWithMeta() (*Config, *Meta, error) {
	meta := &Meta{}
	cfg := Default()

	if configFile := findConfigFile(); configFile != "" {
		loaded, err := LoadFromFile(configFile)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
		meta.ConfigFile = configFile
	}

	// Override with environment variables
	meta.EnvKeys = applyEnvOverrides(cfg)

	return cfg, meta, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".xsim.yaml", ".xsim.yml", "xsim.yaml", "xsim.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	var searchPaths []string

	cwd, err := os.Getwd()
	if err == nil {
		searchPaths = append(searchPaths, cwd)
	}
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "xsim"))
	}
	searchPaths = append(searchPaths, "/etc/xsim")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		// Also check for config.yaml in subdirs
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config and
// returns the names of the variables it used.
func applyEnvOverrides(cfg *Config) []string {
	var used []string
	if v := os.Getenv("XSIM_FORMAT"); v != "" {
		cfg.Format = v
		used = append(used, "XSIM_FORMAT")
	}
	if v := os.Getenv("XSIM_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
		used = append(used, "XSIM_VERBOSE")
	}
	if v := os.Getenv("XSIM_NO_COLOR"); v == "true" || v == "1" {
		cfg.NoColor = true
		used = append(used, "XSIM_NO_COLOR")
	}
	if v := os.Getenv("XSIM_XCRUN"); v != "" {
		cfg.Xcrun = v
		used = append(used, "XSIM_XCRUN")
	}
	if v := os.Getenv("XSIM_SCREENSHOT_DIR"); v != "" {
		cfg.Screenshot.Dir = v
		used = append(used, "XSIM_SCREENSHOT_DIR")
	}
	return used
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}
