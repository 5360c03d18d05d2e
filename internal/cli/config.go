package cli

import (
	"fmt"
	"strings"

	"github.com/vburojevic/xsim/internal/output"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// configOutput is the ndjson shape of `config show`
type configOutput struct {
	Type          string   `json:"type"`
	SchemaVersion int      `json:"schemaVersion"`
	Format        string   `json:"format"`
	Verbose       bool     `json:"verbose"`
	NoColor       bool     `json:"no_color"`
	Xcrun         string   `json:"xcrun"`
	BootWait      bool     `json:"boot_wait"`
	BootTimeout   string   `json:"boot_timeout"`
	BootOpen      bool     `json:"boot_open"`
	ScreenshotDir string   `json:"screenshot_dir"`
	ConfigFile    string   `json:"config_file,omitempty"`
	EnvOverrides  []string `json:"env_overrides,omitempty"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.config()
	path := globals.configFile()

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(configOutput{
			Type:          "config",
			SchemaVersion: output.SchemaVersion,
			Format:        cfg.Format,
			Verbose:       cfg.Verbose,
			NoColor:       cfg.NoColor,
			Xcrun:         cfg.Xcrun,
			BootWait:      cfg.Boot.Wait,
			BootTimeout:   cfg.Boot.Timeout.String(),
			BootOpen:      cfg.Boot.Open,
			ScreenshotDir: cfg.Screenshot.Dir,
			ConfigFile:    path,
			EnvOverrides:  globals.EnvKeys,
		})
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintf(globals.Stdout, "  format:   %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  verbose:  %v\n", cfg.Verbose)
	fmt.Fprintf(globals.Stdout, "  no_color: %v\n", cfg.NoColor)
	fmt.Fprintf(globals.Stdout, "  xcrun:    %s\n", cfg.Xcrun)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Boot:")
	fmt.Fprintf(globals.Stdout, "  wait:    %v\n", cfg.Boot.Wait)
	fmt.Fprintf(globals.Stdout, "  timeout: %s\n", cfg.Boot.Timeout)
	fmt.Fprintf(globals.Stdout, "  open:    %v\n", cfg.Boot.Open)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Screenshot:")
	fmt.Fprintf(globals.Stdout, "  dir: %s\n", cfg.Screenshot.Dir)

	if path != "" {
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintf(globals.Stdout, "Loaded from: %s\n", path)
	}
	if len(globals.EnvKeys) > 0 {
		fmt.Fprintf(globals.Stdout, "Environment overrides: %s\n", strings.Join(globals.EnvKeys, ", "))
	}

	return nil
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := globals.configFile()

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(map[string]interface{}{
			"type":          "config_path",
			"schemaVersion": output.SchemaVersion,
			"path":          path,
		})
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Create one at:")
		fmt.Fprintln(globals.Stdout, "  ./.xsim.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.xsim.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.config/xsim/config.yaml")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}

	return nil
}

// ConfigGenerateCmd generates a sample configuration file
type ConfigGenerateCmd struct{}

const sampleConfig = `# xsim configuration file
# Place this file at ./.xsim.yaml, ~/.xsim.yaml, or ~/.config/xsim/config.yaml

# Output format: "text" (default) or "ndjson"
format: text

# Log every simctl invocation to stderr
verbose: false

# Disable colored output
no_color: false

# xcrun binary to invoke (a path, or a name looked up on PATH)
xcrun: xcrun

boot:
  # Wait until the simulator reports Booted before returning
  wait: false

  # How long to wait when wait is enabled
  timeout: 60s

  # Open Simulator.app after booting
  open: false

screenshot:
  # Directory used for the suggested screenshot path
  dir: .
`

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	_, err := fmt.Fprint(globals.Stdout, sampleConfig)
	return err
}
