package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"howett.net/plist"

	"github.com/vburojevic/xsim/internal/config"
	"github.com/vburojevic/xsim/internal/domain"
	"github.com/vburojevic/xsim/internal/output"
	"github.com/vburojevic/xsim/internal/simulator"
)

// xcodeSelectPath is the binary that reports the active developer directory.
var xcodeSelectPath = "xcode-select"

// DoctorCmd checks system requirements and configuration
type DoctorCmd struct{}

// checkResult represents a single diagnostic check
type checkResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// doctorReport is the complete diagnostic report
type doctorReport struct {
	Type          string        `json:"type"`
	SchemaVersion int           `json:"schemaVersion"`
	Timestamp     string        `json:"timestamp"`
	Checks        []checkResult `json:"checks"`
	AllPassed     bool          `json:"all_passed"`
	ErrorCount    int           `json:"error_count"`
	WarnCount     int           `json:"warn_count"`
}

// xcodeVersionInfo is the part of Xcode's version.plist we report.
type xcodeVersionInfo struct {
	ShortVersion string `plist:"CFBundleShortVersionString"`
	BuildVersion string `plist:"ProductBuildVersion"`
}

// Run executes the doctor command
func (c *DoctorCmd) Run(globals *Globals) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	checks := []checkResult{
		c.checkXcrun(ctx, globals),
		c.checkSimctl(ctx, globals),
		c.checkXcode(ctx),
		c.checkConfig(globals),
		c.checkSimulators(ctx, globals),
	}

	errorCount := lo.CountBy(checks, func(r checkResult) bool { return r.Status == "error" })
	warnCount := lo.CountBy(checks, func(r checkResult) bool { return r.Status == "warning" })

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(doctorReport{
			Type:          "doctor",
			SchemaVersion: output.SchemaVersion,
			Timestamp:     globals.now().Now().UTC().Format(time.RFC3339),
			Checks:        checks,
			AllPassed:     errorCount == 0,
			ErrorCount:    errorCount,
			WarnCount:     warnCount,
		})
	}

	fmt.Fprintln(globals.Stdout, output.Styles.Title.Render("xsim Doctor"))
	fmt.Fprintln(globals.Stdout)

	for _, check := range checks {
		var icon string
		switch check.Status {
		case "ok":
			icon = output.Styles.Success.Render("✓")
		case "warning":
			icon = output.Styles.Warning.Render("⚠")
		case "error":
			icon = output.Styles.Danger.Render("✗")
		}

		fmt.Fprintf(globals.Stdout, "%s %s\n", icon, check.Name)
		if check.Message != "" {
			fmt.Fprintf(globals.Stdout, "  %s\n", check.Message)
		}
		if check.Details != "" {
			fmt.Fprintf(globals.Stdout, "  %s\n", output.Styles.Muted.Render(check.Details))
		}
	}

	fmt.Fprintln(globals.Stdout)
	if errorCount == 0 && warnCount == 0 {
		fmt.Fprintln(globals.Stdout, "All checks passed!")
	} else {
		fmt.Fprintf(globals.Stdout, "Errors: %d, Warnings: %d\n", errorCount, warnCount)
	}

	return nil
}

func (c *DoctorCmd) checkXcrun(ctx context.Context, globals *Globals) checkResult {
	out, err := exec.CommandContext(ctx, globals.Xcrun, "--version").Output()
	if err != nil {
		return checkResult{
			Name:    "xcrun",
			Status:  "error",
			Message: "xcrun not found or not working",
			Details: "Install Xcode Command Line Tools: xcode-select --install",
		}
	}
	return checkResult{
		Name:    "xcrun",
		Status:  "ok",
		Message: strings.TrimSpace(string(out)),
	}
}

func (c *DoctorCmd) checkSimctl(ctx context.Context, globals *Globals) checkResult {
	if err := exec.CommandContext(ctx, globals.Xcrun, "simctl", "help").Run(); err != nil {
		return checkResult{
			Name:    "simctl",
			Status:  "error",
			Message: "simctl not accessible",
			Details: "Ensure Xcode is properly installed",
		}
	}
	return checkResult{
		Name:    "simctl",
		Status:  "ok",
		Message: "simctl available",
	}
}

func (c *DoctorCmd) checkXcode(ctx context.Context) checkResult {
	out, err := exec.CommandContext(ctx, xcodeSelectPath, "-p").Output()
	if err != nil {
		return checkResult{
			Name:    "Xcode",
			Status:  "error",
			Message: "Xcode not found",
			Details: "Install Xcode from the App Store or run: xcode-select --install",
		}
	}
	developerDir := strings.TrimSpace(string(out))

	// Xcode.app, Xcode-16.0.app, Xcode-beta.app, ...
	if !strings.Contains(developerDir, "Xcode") || !strings.Contains(developerDir, ".app") {
		return checkResult{
			Name:    "Xcode",
			Status:  "warning",
			Message: "Only Command Line Tools installed",
			Details: "Full Xcode is required for simulators: " + developerDir,
		}
	}

	info, err := readXcodeVersion(developerDir)
	if err != nil {
		return checkResult{
			Name:    "Xcode",
			Status:  "warning",
			Message: "Xcode found but its version could not be read",
			Details: err.Error(),
		}
	}
	msg := "Xcode " + info.ShortVersion
	if info.BuildVersion != "" {
		msg += " (" + info.BuildVersion + ")"
	}
	return checkResult{
		Name:    "Xcode",
		Status:  "ok",
		Message: msg,
		Details: developerDir,
	}
}

// readXcodeVersion reads Contents/version.plist next to the developer dir.
func readXcodeVersion(developerDir string) (xcodeVersionInfo, error) {
	var info xcodeVersionInfo
	data, err := os.ReadFile(filepath.Join(filepath.Dir(developerDir), "version.plist"))
	if err != nil {
		return info, err
	}
	if _, err := plist.Unmarshal(data, &info); err != nil {
		return info, fmt.Errorf("parse version.plist: %w", err)
	}
	if info.ShortVersion == "" {
		return info, fmt.Errorf("version.plist has no CFBundleShortVersionString")
	}
	return info, nil
}

func (c *DoctorCmd) checkConfig(globals *Globals) checkResult {
	configPath := globals.configFile()
	if configPath == "" {
		return checkResult{
			Name:    "Config",
			Status:  "ok",
			Message: "Using defaults (no config file)",
			Details: "Create with: xsim config generate > ~/.xsim.yaml",
		}
	}

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return checkResult{
			Name:    "Config",
			Status:  "error",
			Message: "Config file has errors",
			Details: err.Error(),
		}
	}

	absPath, _ := filepath.Abs(configPath)
	return checkResult{
		Name:    "Config",
		Status:  "ok",
		Message: fmt.Sprintf("Loaded from: %s", absPath),
		Details: fmt.Sprintf("Format: %s, Xcrun: %s", cfg.Format, cfg.Xcrun),
	}
}

func (c *DoctorCmd) checkSimulators(ctx context.Context, globals *Globals) checkResult {
	devices, err := globals.Manager().ListDevices(ctx)
	if err != nil {
		return checkResult{
			Name:    "Simulators",
			Status:  "error",
			Message: "Failed to list simulators",
			Details: err.Error(),
		}
	}

	if len(devices) == 0 {
		return checkResult{
			Name:    "Simulators",
			Status:  "warning",
			Message: "No simulators found",
			Details: "Create one with: xsim create",
		}
	}

	booted := lo.CountBy(devices, func(d domain.Device) bool { return d.IsBooted() })
	groups := simulator.GroupByRuntime(devices)
	runtimeList := lo.Map(groups, func(g domain.RuntimeGroup, _ int) string {
		return fmt.Sprintf("%s (%d)", g.Version.String(), len(g.Devices))
	})

	return checkResult{
		Name:    "Simulators",
		Status:  "ok",
		Message: fmt.Sprintf("%d simulator(s), %d booted", len(devices), booted),
		Details: strings.Join(runtimeList, ", "),
	}
}
