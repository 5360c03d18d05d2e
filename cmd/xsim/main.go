package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/vburojevic/xsim/internal/cli"
	"github.com/vburojevic/xsim/internal/config"
)

const quickStart = `xsim - interactive front-end for xcrun simctl

Common commands:
  xsim list                 Simulators grouped by runtime, newest first
  xsim list-remote          Device types you can create
  xsim create               Pick a device type and runtime, then name it
  xsim boot                 Pick a simulator to boot
  xsim screenshot           Capture a booted simulator
  xsim delete               Pick simulators to delete

Run 'xsim --help' for all commands and 'xsim doctor' if simctl misbehaves.
`

// exitMissingCommand matches kong's exit code for argument errors.
const exitMissingCommand = 80

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// A bare invocation is a missing command, not a request for help.
	if len(args) == 0 {
		fmt.Fprint(stderr, quickStart)
		fmt.Fprintln(stderr, "\nxsim: error: expected a command")
		return exitMissingCommand
	}

	cfg, meta, err := config.LoadWithMeta()
	if err != nil {
		fmt.Fprintf(stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
		meta = nil
	}

	var c cli.CLI

	// Config values become flag defaults; explicit flags still win.
	vars := kong.Vars{
		"config_format":       cfg.Format,
		"config_xcrun":        cfg.Xcrun,
		"config_boot_timeout": cfg.Boot.Timeout.String(),
	}

	parser, err := kong.New(&c,
		kong.Name("xsim"),
		kong.Description("Interactive front-end for the iOS Simulator manager (xcrun simctl)"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Writers(stdout, stderr),
		vars,
	)
	if err != nil {
		fmt.Fprintf(stderr, "xsim: %v\n", err)
		return 1
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		parser.FatalIfErrorf(err)
		return exitMissingCommand
	}

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	globals.Stdout = stdout
	globals.Stderr = stderr
	if meta != nil {
		globals.ConfigFile = meta.ConfigFile
		globals.EnvKeys = meta.EnvKeys
	}
	defer func() { _ = globals.Logger.Sync() }()

	if err := ctx.Run(globals); err != nil {
		return 1
	}
	return 0
}
