package cli

import (
	"io"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vburojevic/xsim/internal/config"
	"github.com/vburojevic/xsim/internal/output"
	"github.com/vburojevic/xsim/internal/prompt"
	"github.com/vburojevic/xsim/internal/simulator"
)

// CLI is the root command structure for xsim
type CLI struct {
	// Global flags
	Format  string `short:"f" default:"${config_format}" enum:"text,ndjson" help:"Output format"`
	Verbose bool   `short:"v" help:"Log every simctl invocation to stderr"`
	NoColor bool   `help:"Disable colored output"`
	Xcrun   string `default:"${config_xcrun}" help:"Path to the xcrun binary"`

	// Commands
	List       ListCmd       `cmd:"" help:"List simulators grouped by runtime, newest first"`
	ListRemote ListRemoteCmd `cmd:"" name:"list-remote" help:"List device types that can be created"`
	Create     CreateCmd     `cmd:"" help:"Interactively create a simulator"`
	Delete     DeleteCmd     `cmd:"" help:"Interactively delete simulators"`
	Boot       BootCmd       `cmd:"" help:"Interactively boot a simulator"`
	Screenshot ScreenshotCmd `cmd:"" help:"Capture a screenshot from a booted simulator"`

	Version    VersionCmd    `cmd:"" help:"Show version information"`
	Config     ConfigCmd     `cmd:"" help:"Show or manage configuration"`
	Doctor     DoctorCmd     `cmd:"" help:"Check system requirements and configuration"`
	Completion CompletionCmd `cmd:"" help:"Generate shell completions"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format  string
	Verbose bool
	Xcrun   string
	Stdin   *os.File
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
	Logger  *zap.Logger
	Clock   clock.Clock

	// OpenPath is the binary used to bring Simulator.app forward.
	OpenPath string

	// Prompter overrides the terminal prompter, used by tests.
	Prompter prompt.Prompter

	ConfigFile string
	EnvKeys    []string
}

// NewGlobals creates a new Globals instance from CLI flags
func NewGlobals(cli *CLI) *Globals {
	return NewGlobalsWithConfig(cli, config.Default())
}

// NewGlobalsWithConfig creates a new Globals instance with config fallbacks
func NewGlobalsWithConfig(cli *CLI, cfg *config.Config) *Globals {
	if cfg == nil {
		cfg = config.Default()
	}
	g := &Globals{
		Format:  cli.Format,
		Verbose: cli.Verbose || cfg.Verbose,
		Xcrun:   cli.Xcrun,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
		Clock:   clock.New(),
	}
	if g.Xcrun == "" {
		g.Xcrun = cfg.Xcrun
	}
	if cli.NoColor || cfg.NoColor {
		output.DisableColor()
	}
	g.Logger = newLogger(g.Verbose, g.Stderr)
	return g
}

func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core)
}

func (g *Globals) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// Debug prints a debug message if verbose mode is enabled
func (g *Globals) Debug(format string, args ...interface{}) {
	g.logger().Sugar().Debugf(format, args...)
}

// Manager builds a simulator manager honoring the global xcrun override.
func (g *Globals) Manager() *simulator.Manager {
	return simulator.NewManager(
		simulator.WithXcrunPath(g.Xcrun),
		simulator.WithOpenPath(g.OpenPath),
		simulator.WithLogger(g.logger()),
		simulator.WithClock(g.Clock),
	)
}

func (g *Globals) config() *config.Config {
	if g.Config == nil {
		return config.Default()
	}
	return g.Config
}

// configFile is the file the config was loaded from, if any.
func (g *Globals) configFile() string {
	if g.ConfigFile != "" {
		return g.ConfigFile
	}
	return config.ConfigFile()
}

func (g *Globals) now() clock.Clock {
	if g.Clock == nil {
		return clock.New()
	}
	return g.Clock
}

// prompter returns the injected prompter, or a terminal one when stdin is a TTY.
func (g *Globals) prompter() (prompt.Prompter, error) {
	if g.Prompter != nil {
		return g.Prompter, nil
	}
	if g.Stdin == nil || (!isatty.IsTerminal(g.Stdin.Fd()) && !isatty.IsCygwinTerminal(g.Stdin.Fd())) {
		return nil, errNotInteractive
	}
	return prompt.NewTerminal(g.Stdin, g.Stderr), nil
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteVersion(Version, Commit)
	}
	_, err := io.WriteString(globals.Stdout, "xsim version "+Version+" ("+Commit+")\n")
	return err
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
