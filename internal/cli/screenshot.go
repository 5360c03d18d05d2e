package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"

	"github.com/vburojevic/xsim/internal/output"
	"github.com/vburojevic/xsim/internal/simulator"
)

// ScreenshotCmd captures a screenshot from a booted simulator
type ScreenshotCmd struct{}

// Run executes the screenshot command
func (c *ScreenshotCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := globals.Manager()

	devices, err := mgr.ListDevices(ctx)
	if err != nil {
		return reportToolFailure(globals, "LIST_FAILED", err)
	}

	candidates := simulator.ScreenshotCandidates(devices)
	if len(candidates) == 0 {
		reportInfo(globals, "No booted simulators found; boot one with `xsim boot`")
		return nil
	}

	p, err := globals.prompter()
	if err != nil {
		return handlePromptError(globals, err)
	}
	device, err := selectDevice(ctx, p, "Select a simulator to capture", candidates)
	if err != nil {
		return handlePromptError(globals, err)
	}

	suggested := c.suggestedPath(globals, device.Name)
	path, err := p.Input(ctx, "Save screenshot to", suggested)
	if err != nil {
		return handlePromptError(globals, err)
	}
	path = expandHome(strings.TrimSpace(path))
	if path == "" {
		path = suggested
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			reportFailure(globals, "SCREENSHOT_FAILED", fmt.Sprintf("cannot create %s: %v", dir, err), "")
			return nil
		}
	}

	if err := mgr.Screenshot(ctx, device.UDID, path); err != nil {
		return reportToolFailure(globals, "SCREENSHOT_FAILED", err)
	}

	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteResult(output.ResultOutput{
			Action:  "screenshot",
			Success: true,
			UDID:    device.UDID,
			Name:    device.Name,
			Path:    path,
			Bytes:   size,
		})
	}

	msg := fmt.Sprintf("Saved screenshot of %s to %s", device.Name, path)
	if size > 0 {
		msg += " (" + humanize.Bytes(uint64(size)) + ")"
	}
	reportSuccess(globals, msg)
	return nil
}

// suggestedPath is <screenshot dir>/<device name>-<timestamp>.png
func (c *ScreenshotCmd) suggestedPath(globals *Globals, deviceName string) string {
	dir := expandHome(globals.config().Screenshot.Dir)
	if dir == "" {
		dir = "."
	}
	stamp := globals.now().Now().Format("20060102-150405")
	return filepath.Join(dir, fileSafe(deviceName)+"-"+stamp+".png")
}

// fileSafe replaces anything but letters, digits, '-', '_' and '.' with '-'.
func fileSafe(name string) string {
	safe := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '-'
	}, name)
	for strings.Contains(safe, "--") {
		safe = strings.ReplaceAll(safe, "--", "-")
	}
	safe = strings.Trim(safe, "-")
	if safe == "" {
		return "screenshot"
	}
	return safe
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
