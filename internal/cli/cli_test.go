package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zapcore"

	"github.com/vburojevic/xsim/internal/config"
	"github.com/vburojevic/xsim/internal/domain"
	"github.com/vburojevic/xsim/internal/output"
	"github.com/vburojevic/xsim/internal/prompt/prompttest"
	"github.com/vburojevic/xsim/internal/simulator/simtest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	iPhoneType = "com.apple.CoreSimulator.SimDeviceType.iPhone-15-Pro"
	newUDID    = "0F3E5E51-7C4B-4E2B-9B0C-3C1D2A6C9E11"
)

// testGlobals wires a Globals to a stub xcrun, scripted prompts and a mock clock.
func testGlobals(format string, stub *simtest.Stub) (*Globals, *bytes.Buffer, *bytes.Buffer, *prompttest.Scripted) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	scripted := &prompttest.Scripted{}

	g := NewGlobals(&CLI{Format: format})
	g.Stdin = nil
	g.Stdout = stdout
	g.Stderr = stderr
	g.Clock = clock.NewMock()
	g.Prompter = scripted
	g.ConfigFile = "/nonexistent/.xsim.yaml"
	if stub != nil {
		g.Xcrun = stub.Path()
	}
	return g, stdout, stderr, scripted
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func udids(devices []domain.Device) []string {
	out := make([]string, 0, len(devices))
	for _, d := range devices {
		out = append(out, d.UDID)
	}
	return out
}

// fleet is a mixed set of devices across two runtimes.
func fleet() string {
	return simtest.DevicesJSON(map[string][]simtest.Device{
		simtest.IOS16: {
			{Name: "iPhone 14", UDID: "old-shutdown", State: domain.DeviceStateShutdown, Available: true},
		},
		simtest.IOS17: {
			{Name: "iPhone 15", UDID: "new-booted", State: domain.DeviceStateBooted, Available: true},
			{Name: "iPhone 15 Pro", UDID: "new-shutdown", State: domain.DeviceStateShutdown, Available: true},
			{Name: "iPad Air", UDID: "new-broken", State: domain.DeviceStateShutdown, Available: false},
		},
	})
}

// --- list ---

func TestListCmd_Run(t *testing.T) {
	t.Run("newest runtime first", func(t *testing.T) {
		stub := simtest.New(t).On("simctl list devices --json", fleet())
		globals, stdout, _, _ := testGlobals("text", stub)

		require.NoError(t, (&ListCmd{}).Run(globals))

		out := stdout.String()
		assert.Contains(t, out, "iOS 17.0")
		assert.Contains(t, out, "iOS 16.4")
		assert.Less(t, strings.Index(out, "new-booted"), strings.Index(out, "old-shutdown"))
		assert.Contains(t, out, "4 simulator(s) across 2 runtime(s), 1 booted")
	})

	t.Run("empty device map prints a message and no table", func(t *testing.T) {
		stub := simtest.New(t).On("simctl list devices --json", `{"devices":{}}`)
		globals, stdout, _, _ := testGlobals("text", stub)

		require.NoError(t, (&ListCmd{}).Run(globals))

		out := stdout.String()
		assert.Contains(t, out, "No simulators found")
		assert.NotContains(t, strings.ToLower(out), "identifier")
	})

	t.Run("booted only", func(t *testing.T) {
		stub := simtest.New(t).On("simctl list devices --json", fleet())
		globals, stdout, _, _ := testGlobals("ndjson", stub)

		require.NoError(t, (&ListCmd{BootedOnly: true}).Run(globals))

		lines := decodeLines(t, stdout)
		require.Len(t, lines, 1)
		assert.Equal(t, "device", lines[0]["type"])
		assert.Equal(t, "new-booted", lines[0]["udid"])
		assert.Equal(t, "iOS 17.0", lines[0]["version"])
	})

	t.Run("runtime filter matches display version", func(t *testing.T) {
		stub := simtest.New(t).On("simctl list devices --json", fleet())
		globals, stdout, _, _ := testGlobals("ndjson", stub)

		require.NoError(t, (&ListCmd{Runtime: "iOS 16"}).Run(globals))

		lines := decodeLines(t, stdout)
		require.Len(t, lines, 1)
		assert.Equal(t, "old-shutdown", lines[0]["udid"])
	})

	t.Run("tool failure exits cleanly with a message", func(t *testing.T) {
		stub := simtest.New(t).Fail("simctl list devices --json", "xcrun: error: invalid active developer path")
		globals, stdout, stderr, _ := testGlobals("text", stub)

		require.NoError(t, (&ListCmd{}).Run(globals))

		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "Error: ")
		assert.Contains(t, stderr.String(), "invalid active developer path")
		assert.Contains(t, stderr.String(), "xcode-select")
	})

	t.Run("malformed output is reported as an error record", func(t *testing.T) {
		stub := simtest.New(t).On("simctl list devices --json", `{"devices":[]}`)
		globals, stdout, _, _ := testGlobals("ndjson", stub)

		require.NoError(t, (&ListCmd{}).Run(globals))

		lines := decodeLines(t, stdout)
		require.Len(t, lines, 1)
		assert.Equal(t, "error", lines[0]["type"])
		assert.Equal(t, "LIST_FAILED", lines[0]["code"])
	})
}

// --- list-remote ---

func TestListRemoteCmd_Run(t *testing.T) {
	t.Run("renders device types", func(t *testing.T) {
		stub := simtest.New(t).On("simctl list devicetypes --json", simtest.DeviceTypesJSON)
		globals, stdout, _, _ := testGlobals("text", stub)

		require.NoError(t, (&ListRemoteCmd{}).Run(globals))

		out := stdout.String()
		assert.Contains(t, out, "iPhone 15 Pro")
		assert.Contains(t, out, "iPad Air (5th generation)")
		assert.Contains(t, out, iPhoneType)
	})

	t.Run("ndjson", func(t *testing.T) {
		stub := simtest.New(t).On("simctl list devicetypes --json", simtest.DeviceTypesJSON)
		globals, stdout, _, _ := testGlobals("ndjson", stub)

		require.NoError(t, (&ListRemoteCmd{}).Run(globals))

		lines := decodeLines(t, stdout)
		require.Len(t, lines, 2)
		assert.Equal(t, "device_type", lines[0]["type"])
		assert.Equal(t, "17.0.0", lines[0]["min_runtime"])
	})

	t.Run("empty list", func(t *testing.T) {
		stub := simtest.New(t).On("simctl list devicetypes --json", `{"devicetypes":[]}`)
		globals, stdout, _, _ := testGlobals("text", stub)

		require.NoError(t, (&ListRemoteCmd{}).Run(globals))
		assert.Contains(t, stdout.String(), "No device types found")
	})
}

// --- create ---

func createStub(t *testing.T) *simtest.Stub {
	return simtest.New(t).
		On("simctl list devicetypes --json", simtest.DeviceTypesJSON).
		On("simctl list runtimes --json", simtest.RuntimesJSON)
}

func TestCreateCmd_Run(t *testing.T) {
	t.Run("creates with the suggested name", func(t *testing.T) {
		stub := createStub(t).On("simctl create *", newUDID+"\n")
		globals, stdout, _, scripted := testGlobals("text", stub)
		scripted.Selects = []string{iPhoneType, simtest.IOS17}
		scripted.Inputs = []string{prompttest.KeepInitial}

		require.NoError(t, (&CreateCmd{}).Run(globals))

		require.Len(t, scripted.InputInitials, 1)
		assert.Equal(t, "iPhone 15 Pro (iOS 17.0)", scripted.InputInitials[0])
		assert.Equal(t,
			[]string{"simctl create iPhone 15 Pro (iOS 17.0) " + iPhoneType + " " + simtest.IOS17},
			stub.CallsWithPrefix("simctl create"))
		assert.Contains(t, stdout.String(), "Created iPhone 15 Pro (iOS 17.0) ("+newUDID+")")
	})

	t.Run("only available runtimes are offered", func(t *testing.T) {
		stub := createStub(t)
		globals, _, _, scripted := testGlobals("text", stub)
		scripted.Selects = []string{iPhoneType}

		require.NoError(t, (&CreateCmd{}).Run(globals))

		require.Len(t, scripted.Offered, 2)
		require.Len(t, scripted.Offered[1], 1)
		assert.Equal(t, simtest.IOS17, scripted.Offered[1][0].Value)
		assert.Empty(t, stub.CallsWithPrefix("simctl create"))
	})

	t.Run("custom name", func(t *testing.T) {
		stub := createStub(t).On("simctl create *", newUDID+"\n")
		globals, stdout, _, scripted := testGlobals("ndjson", stub)
		scripted.Selects = []string{iPhoneType, simtest.IOS17}
		scripted.Inputs = []string{"  Test Phone  "}

		require.NoError(t, (&CreateCmd{}).Run(globals))

		lines := decodeLines(t, stdout)
		require.Len(t, lines, 1)
		assert.Equal(t, "result", lines[0]["type"])
		assert.Equal(t, "create", lines[0]["action"])
		assert.Equal(t, "Test Phone", lines[0]["name"])
		assert.Equal(t, newUDID, lines[0]["udid"])
	})

	t.Run("incompatible runtime gets a dedicated message", func(t *testing.T) {
		stub := createStub(t).Fail("simctl create *",
			"An error was encountered processing the command (domain=com.apple.CoreSimulator.SimError, code=403):\nIncompatible device")
		globals, _, stderr, scripted := testGlobals("text", stub)
		scripted.Selects = []string{iPhoneType, simtest.IOS17}
		scripted.Inputs = []string{prompttest.KeepInitial}

		require.NoError(t, (&CreateCmd{}).Run(globals))

		assert.Contains(t, stderr.String(), "iPhone 15 Pro cannot run iOS 17.0")
		assert.Contains(t, stderr.String(), "list-remote")
	})

	t.Run("other failures", func(t *testing.T) {
		stub := createStub(t).Fail("simctl create *", "Invalid device type")
		globals, stdout, _, scripted := testGlobals("ndjson", stub)
		scripted.Selects = []string{iPhoneType, simtest.IOS17}
		scripted.Inputs = []string{prompttest.KeepInitial}

		require.NoError(t, (&CreateCmd{}).Run(globals))

		lines := decodeLines(t, stdout)
		require.Len(t, lines, 1)
		assert.Equal(t, "CREATE_FAILED", lines[0]["code"])
		assert.Contains(t, lines[0]["message"], "Invalid device type")
	})
}

func TestDefaultDeviceName(t *testing.T) {
	assert.Equal(t, "iPad Air (iOS 16.4)", defaultDeviceName("iPad Air", "iOS 16.4"))
}

// --- delete ---

func TestDeleteCmd_Run(t *testing.T) {
	t.Run("declined confirmation deletes nothing", func(t *testing.T) {
		stub := simtest.New(t).
			On("simctl list devices --json", fleet()).
			On("simctl delete *", "")
		globals, stdout, _, scripted := testGlobals("text", stub)
		scripted.MultiSelects = [][]string{{"old-shutdown", "new-booted"}}
		scripted.Confirms = []bool{false}

		require.NoError(t, (&DeleteCmd{}).Run(globals))

		assert.Empty(t, stub.CallsWithPrefix("simctl delete"))
		assert.Contains(t, stdout.String(), "Deletion cancelled")
	})

	t.Run("deletes each selection in order and keeps going after a failure", func(t *testing.T) {
		stub := simtest.New(t).
			On("simctl list devices --json", fleet()).
			Fail("simctl delete new-booted", "Unable to delete a booted device").
			On("simctl delete *", "")
		globals, stdout, stderr, scripted := testGlobals("text", stub)
		scripted.MultiSelects = [][]string{{"new-booted", "old-shutdown"}}
		scripted.Confirms = []bool{true}

		require.NoError(t, (&DeleteCmd{}).Run(globals))

		assert.Equal(t, []string{"simctl delete new-booted", "simctl delete old-shutdown"},
			stub.CallsWithPrefix("simctl delete"))
		assert.Contains(t, stderr.String(), "failed to delete iPhone 15")
		assert.Contains(t, stdout.String(), "Deleted iPhone 14 (old-shutdown)")
		assert.Contains(t, stdout.String(), "1 of 2 deletion(s) failed")
	})

	t.Run("ndjson reports one result per device", func(t *testing.T) {
		stub := simtest.New(t).
			On("simctl list devices --json", fleet()).
			On("simctl delete *", "")
		globals, stdout, _, scripted := testGlobals("ndjson", stub)
		scripted.MultiSelects = [][]string{{"new-shutdown", "new-broken"}}
		scripted.Confirms = []bool{true}

		require.NoError(t, (&DeleteCmd{}).Run(globals))

		lines := decodeLines(t, stdout)
		require.Len(t, lines, 2)
		for _, l := range lines {
			assert.Equal(t, "delete", l["action"])
			assert.Equal(t, true, l["success"])
		}
	})

	t.Run("empty selection skips the confirmation", func(t *testing.T) {
		stub := simtest.New(t).On("simctl list devices --json", fleet())
		globals, stdout, _, scripted := testGlobals("text", stub)
		scripted.MultiSelects = [][]string{{}}

		require.NoError(t, (&DeleteCmd{}).Run(globals))

		assert.Len(t, scripted.Titles, 1)
		assert.Contains(t, stdout.String(), "No simulators selected")
	})

	t.Run("unavailable devices are offered too", func(t *testing.T) {
		stub := simtest.New(t).On("simctl list devices --json", fleet())
		globals, _, _, scripted := testGlobals("text", stub)

		require.NoError(t, (&DeleteCmd{}).Run(globals))

		require.Len(t, scripted.Offered, 1)
		assert.Len(t, scripted.Offered[0], 4)
	})
}

// --- boot ---

func TestBootCmd_Run(t *testing.T) {
	t.Run("all booted", func(t *testing.T) {
		stub := simtest.New(t).On("simctl list devices --json", simtest.DevicesJSON(map[string][]simtest.Device{
			simtest.IOS17: {{Name: "iPhone 15", UDID: "a", State: domain.DeviceStateBooted, Available: true}},
		}))
		globals, stdout, _, scripted := testGlobals("text", stub)

		require.NoError(t, (&BootCmd{}).Run(globals))

		assert.Contains(t, stdout.String(), "No available simulators to boot")
		assert.Empty(t, scripted.Titles)
	})

	t.Run("offers available devices that are not booted", func(t *testing.T) {
		stub := simtest.New(t).
			On("simctl list devices --json", fleet()).
			On("simctl boot *", "")
		globals, stdout, _, scripted := testGlobals("text", stub)
		scripted.Selects = []string{"new-shutdown"}

		require.NoError(t, (&BootCmd{}).Run(globals))

		require.Len(t, scripted.Offered, 1)
		var offered []string
		for _, c := range scripted.Offered[0] {
			offered = append(offered, c.Value)
		}
		assert.ElementsMatch(t, []string{"new-shutdown", "old-shutdown"}, offered)
		assert.Equal(t, []string{"simctl boot new-shutdown"}, stub.CallsWithPrefix("simctl boot"))
		assert.Contains(t, stdout.String(), "Booted iPhone 15 Pro (new-shutdown)")
	})

	t.Run("boot failure", func(t *testing.T) {
		stub := simtest.New(t).
			On("simctl list devices --json", fleet()).
			Fail("simctl boot *", "Unable to boot device because it cannot be located on disk")
		globals, _, stderr, scripted := testGlobals("text", stub)
		scripted.Selects = []string{"old-shutdown"}

		require.NoError(t, (&BootCmd{}).Run(globals))
		assert.Contains(t, stderr.String(), "cannot be located on disk")
	})

	t.Run("open brings Simulator.app forward", func(t *testing.T) {
		stub := simtest.New(t).
			On("simctl list devices --json", fleet()).
			On("simctl boot *", "")
		open := simtest.New(t).On("-a Simulator", "")
		globals, stdout, stderr, scripted := testGlobals("text", stub)
		globals.OpenPath = open.Path()
		scripted.Selects = []string{"old-shutdown"}

		require.NoError(t, (&BootCmd{Open: true}).Run(globals))

		assert.Equal(t, []string{"-a Simulator"}, open.Calls())
		assert.NotContains(t, stderr.String(), "Warning")
		assert.Contains(t, stdout.String(), "Booted iPhone 14 (old-shutdown)")
	})

	t.Run("open failure is only a warning", func(t *testing.T) {
		stub := simtest.New(t).
			On("simctl list devices --json", fleet()).
			On("simctl boot *", "")
		open := simtest.New(t).Fail("-a Simulator", "Unable to find application named 'Simulator'")
		globals, stdout, stderr, scripted := testGlobals("text", stub)
		globals.OpenPath = open.Path()
		scripted.Selects = []string{"old-shutdown"}

		require.NoError(t, (&BootCmd{Open: true}).Run(globals))

		assert.Contains(t, stderr.String(), "Warning: could not open Simulator.app")
		assert.Contains(t, stderr.String(), "Unable to find application")
		assert.Contains(t, stdout.String(), "Booted iPhone 14 (old-shutdown)")
	})

	t.Run("open is skipped unless requested", func(t *testing.T) {
		stub := simtest.New(t).
			On("simctl list devices --json", fleet()).
			On("simctl boot *", "")
		open := simtest.New(t).On("-a Simulator", "")
		globals, _, _, scripted := testGlobals("text", stub)
		globals.OpenPath = open.Path()
		scripted.Selects = []string{"old-shutdown"}

		require.NoError(t, (&BootCmd{}).Run(globals))
		assert.Empty(t, open.Calls())
	})

	t.Run("cancelled selection", func(t *testing.T) {
		stub := simtest.New(t).On("simctl list devices --json", fleet())
		globals, stdout, _, _ := testGlobals("text", stub)

		require.NoError(t, (&BootCmd{}).Run(globals))

		assert.Contains(t, stdout.String(), "Cancelled")
		assert.Empty(t, stub.CallsWithPrefix("simctl boot"))
	})

	t.Run("needs a terminal", func(t *testing.T) {
		stub := simtest.New(t).On("simctl list devices --json", fleet())
		globals, _, stderr, _ := testGlobals("text", stub)
		globals.Prompter = nil
		globals.Stdin = nil

		err := (&BootCmd{}).Run(globals)

		var cliErr *CLIError
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, "NOT_INTERACTIVE", cliErr.Code)
		assert.Contains(t, stderr.String(), "NOT_INTERACTIVE")
	})
}

func TestPromptFailureExitsNonZero(t *testing.T) {
	stub := simtest.New(t).On("simctl list devices --json", fleet())
	globals, _, stderr, scripted := testGlobals("text", stub)
	scripted.Selects = []string{"not-offered"}

	err := (&BootCmd{}).Run(globals)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "PROMPT_FAILED")
	assert.Empty(t, stub.CallsWithPrefix("simctl boot"))
}

func TestReportInfoUsesInfoStyle(t *testing.T) {
	globals, stdout, _, _ := testGlobals("text", nil)
	reportInfo(globals, "No simulators found")
	assert.Equal(t, output.Styles.Info.Render("No simulators found")+"\n", stdout.String())
}

func TestNewGlobalsWithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Xcrun = "/opt/xcrun"
	cfg.Verbose = true

	g := NewGlobalsWithConfig(&CLI{Format: "text"}, cfg)

	assert.Equal(t, "/opt/xcrun", g.Xcrun)
	assert.True(t, g.Verbose)
	assert.True(t, g.Logger.Core().Enabled(zapcore.DebugLevel))

	quiet := NewGlobals(&CLI{Format: "text", Xcrun: "/usr/bin/xcrun"})
	assert.Equal(t, "/usr/bin/xcrun", quiet.Xcrun)
	assert.False(t, quiet.Logger.Core().Enabled(zapcore.DebugLevel))
}

// --- screenshot ---

func TestScreenshotCmd_Run(t *testing.T) {
	t.Run("only booted devices are candidates", func(t *testing.T) {
		stub := simtest.New(t).
			On("simctl list devices --json", fleet()).
			On("simctl io * screenshot *", "Wrote screenshot\n")
		globals, stdout, _, scripted := testGlobals("text", stub)
		path := filepath.Join(t.TempDir(), "shots", "home.png")
		scripted.Selects = []string{"new-booted"}
		scripted.Inputs = []string{path}

		require.NoError(t, (&ScreenshotCmd{}).Run(globals))

		require.Len(t, scripted.Offered, 1)
		require.Len(t, scripted.Offered[0], 1)
		assert.Equal(t, "new-booted", scripted.Offered[0][0].Value)
		assert.Equal(t, []string{"simctl io new-booted screenshot " + path}, stub.CallsWithPrefix("simctl io"))
		assert.DirExists(t, filepath.Dir(path))
		assert.Contains(t, stdout.String(), "Saved screenshot of iPhone 15 to "+path)
	})

	t.Run("suggested path uses the configured dir and clock", func(t *testing.T) {
		stub := simtest.New(t).On("simctl list devices --json", fleet())
		globals, _, _, scripted := testGlobals("text", stub)
		dir := t.TempDir()
		globals.Config.Screenshot.Dir = dir
		mock := clock.NewMock()
		mock.Set(time.Date(2024, 5, 1, 12, 30, 45, 0, time.Local))
		globals.Clock = mock
		scripted.Selects = []string{"new-booted"}

		require.NoError(t, (&ScreenshotCmd{}).Run(globals))

		require.Len(t, scripted.InputInitials, 1)
		assert.Equal(t, filepath.Join(dir, "iPhone-15-20240501-123045.png"), scripted.InputInitials[0])
		assert.Empty(t, stub.CallsWithPrefix("simctl io"))
	})

	t.Run("ndjson reports the file size", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "shot.png")
		require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0o644))
		stub := simtest.New(t).
			On("simctl list devices --json", fleet()).
			On("simctl io * screenshot *", "")
		globals, stdout, _, scripted := testGlobals("ndjson", stub)
		scripted.Selects = []string{"new-booted"}
		scripted.Inputs = []string{path}

		require.NoError(t, (&ScreenshotCmd{}).Run(globals))

		lines := decodeLines(t, stdout)
		require.Len(t, lines, 1)
		assert.Equal(t, "screenshot", lines[0]["action"])
		assert.Equal(t, path, lines[0]["path"])
		assert.Equal(t, float64(2048), lines[0]["bytes"])
	})

	t.Run("nothing booted", func(t *testing.T) {
		stub := simtest.New(t).On("simctl list devices --json", simtest.DevicesJSON(map[string][]simtest.Device{
			simtest.IOS17: {{Name: "iPhone 15", UDID: "a", State: domain.DeviceStateBooting, Available: true}},
		}))
		globals, stdout, _, scripted := testGlobals("text", stub)

		require.NoError(t, (&ScreenshotCmd{}).Run(globals))

		assert.Contains(t, stdout.String(), "No booted simulators found")
		assert.Empty(t, scripted.Titles)
	})

	t.Run("capture failure", func(t *testing.T) {
		stub := simtest.New(t).
			On("simctl list devices --json", fleet()).
			Fail("simctl io * screenshot *", "Error: No devices are booted.")
		globals, _, stderr, scripted := testGlobals("text", stub)
		scripted.Selects = []string{"new-booted"}
		scripted.Inputs = []string{filepath.Join(t.TempDir(), "x.png")}

		require.NoError(t, (&ScreenshotCmd{}).Run(globals))
		assert.Contains(t, stderr.String(), "No devices are booted")
	})
}

func TestFileSafe(t *testing.T) {
	assert.Equal(t, "iPhone-15-Pro-Max", fileSafe("iPhone 15 Pro Max"))
	assert.Equal(t, "iPad-Air-5th-generation", fileSafe("iPad Air (5th generation)"))
	assert.Equal(t, "screenshot", fileSafe("///"))
}

// --- supporting commands ---

func TestVersionCmd_Run(t *testing.T) {
	globals, stdout, _, _ := testGlobals("ndjson", nil)
	require.NoError(t, (&VersionCmd{}).Run(globals))

	lines := decodeLines(t, stdout)
	require.Len(t, lines, 1)
	assert.Equal(t, "version", lines[0]["type"])
	assert.Equal(t, Version, lines[0]["version"])
}

func TestConfigShowCmd_Run(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		globals, stdout, _, _ := testGlobals("text", nil)
		globals.EnvKeys = []string{"XSIM_FORMAT"}

		require.NoError(t, (&ConfigShowCmd{}).Run(globals))

		out := stdout.String()
		assert.Contains(t, out, "Current Configuration:")
		assert.Contains(t, out, "timeout: 1m0s")
		assert.Contains(t, out, "Loaded from: /nonexistent/.xsim.yaml")
		assert.Contains(t, out, "Environment overrides: XSIM_FORMAT")
	})

	t.Run("ndjson", func(t *testing.T) {
		globals, stdout, _, _ := testGlobals("ndjson", nil)

		require.NoError(t, (&ConfigShowCmd{}).Run(globals))

		lines := decodeLines(t, stdout)
		require.Len(t, lines, 1)
		assert.Equal(t, "config", lines[0]["type"])
		assert.Equal(t, "text", lines[0]["format"])
		assert.Equal(t, "1m0s", lines[0]["boot_timeout"])
	})
}

func TestConfigPathCmd_Run(t *testing.T) {
	globals, stdout, _, _ := testGlobals("ndjson", nil)
	require.NoError(t, (&ConfigPathCmd{}).Run(globals))

	lines := decodeLines(t, stdout)
	require.Len(t, lines, 1)
	assert.Equal(t, "config_path", lines[0]["type"])
	assert.Equal(t, "/nonexistent/.xsim.yaml", lines[0]["path"])
}

func TestConfigGenerateCmd_Run(t *testing.T) {
	globals, stdout, _, _ := testGlobals("text", nil)
	require.NoError(t, (&ConfigGenerateCmd{}).Run(globals))

	out := stdout.String()
	assert.Contains(t, out, "# xsim configuration file")
	assert.Contains(t, out, "format: text")
	assert.Contains(t, out, "timeout: 60s")

	// The sample must load cleanly.
	path := filepath.Join(t.TempDir(), "xsim.yaml")
	require.NoError(t, os.WriteFile(path, stdout.Bytes(), 0o644))
	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, cfg.Boot.Timeout)
	assert.Equal(t, ".", cfg.Screenshot.Dir)
}

func TestCompletionCmd_Run(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish"} {
		t.Run(shell, func(t *testing.T) {
			globals, stdout, _, _ := testGlobals("text", nil)
			require.NoError(t, (&CompletionCmd{Shell: shell}).Run(globals))

			out := stdout.String()
			assert.Contains(t, out, "xsim")
			assert.Contains(t, out, "list-remote")
			assert.Contains(t, out, "screenshot")
		})
	}

	t.Run("unknown shell", func(t *testing.T) {
		globals, _, _, _ := testGlobals("text", nil)
		assert.Error(t, (&CompletionCmd{Shell: "tcsh"}).Run(globals))
	})
}

// --- doctor ---

const versionPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleShortVersionString</key>
	<string>16.2</string>
	<key>ProductBuildVersion</key>
	<string>16C5032a</string>
</dict>
</plist>
`

func fakeXcode(t *testing.T) string {
	t.Helper()
	contents := filepath.Join(t.TempDir(), "Xcode.app", "Contents")
	developer := filepath.Join(contents, "Developer")
	require.NoError(t, os.MkdirAll(developer, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(contents, "version.plist"), []byte(versionPlist), 0o644))
	return developer
}

func TestReadXcodeVersion(t *testing.T) {
	info, err := readXcodeVersion(fakeXcode(t))
	require.NoError(t, err)
	assert.Equal(t, "16.2", info.ShortVersion)
	assert.Equal(t, "16C5032a", info.BuildVersion)

	_, err = readXcodeVersion(filepath.Join(t.TempDir(), "Developer"))
	assert.Error(t, err)
}

func TestDoctorCmd_Run(t *testing.T) {
	developer := fakeXcode(t)
	selectScript := filepath.Join(t.TempDir(), "xcode-select")
	require.NoError(t, os.WriteFile(selectScript, []byte("#!/bin/sh\necho '"+developer+"'\n"), 0o755))
	orig := xcodeSelectPath
	xcodeSelectPath = selectScript
	t.Cleanup(func() { xcodeSelectPath = orig })

	stub := simtest.New(t).
		On("--version", "xcrun version 70.\n").
		On("simctl help", "usage: simctl\n").
		On("simctl list devices --json", fleet())
	globals, stdout, _, _ := testGlobals("ndjson", stub)

	require.NoError(t, (&DoctorCmd{}).Run(globals))

	lines := decodeLines(t, stdout)
	require.Len(t, lines, 1)
	report := lines[0]
	assert.Equal(t, "doctor", report["type"])

	checks := report["checks"].([]interface{})
	require.Len(t, checks, 5)
	byName := map[string]map[string]interface{}{}
	for _, c := range checks {
		m := c.(map[string]interface{})
		byName[m["name"].(string)] = m
	}
	assert.Equal(t, "ok", byName["xcrun"]["status"])
	assert.Equal(t, "ok", byName["simctl"]["status"])
	assert.Equal(t, "Xcode 16.2 (16C5032a)", byName["Xcode"]["message"])
	assert.Equal(t, "error", byName["Config"]["status"])
	assert.Equal(t, "4 simulator(s), 1 booted", byName["Simulators"]["message"])
	assert.Equal(t, "iOS 17.0 (3), iOS 16.4 (1)", byName["Simulators"]["details"])
}

// --- helpers ---

func TestHintForTooling(t *testing.T) {
	assert.Contains(t, hintForTooling(assert.AnError), "xsim doctor")
	assert.Empty(t, hintForTooling(nil))
}

func TestDevicesByUDID_KeepsChoiceOrder(t *testing.T) {
	devices := []domain.Device{{UDID: "a", Name: "A"}, {UDID: "b", Name: "B"}}
	chosen := deviceChoices([]domain.Device{devices[1], devices[0]})
	assert.Equal(t, []string{"b", "a"}, udids(devicesByUDID(devices, chosen)))
}

func TestSelectDevice_Canceled(t *testing.T) {
	_, err := selectDevice(context.Background(), &prompttest.Scripted{}, "pick", []domain.Device{{UDID: "a"}})
	assert.Error(t, err)
}
