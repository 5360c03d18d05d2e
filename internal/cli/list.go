package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/vburojevic/xsim/internal/domain"
	"github.com/vburojevic/xsim/internal/output"
	"github.com/vburojevic/xsim/internal/simulator"
)

// ListCmd lists available simulators
type ListCmd struct {
	BootedOnly bool   `short:"b" help:"Show only booted simulators"`
	Runtime    string `help:"Filter by runtime version (e.g., '17', 'iOS 17')"`
}

// Run executes the list command
func (c *ListCmd) Run(globals *Globals) error {
	ctx := context.Background()

	devices, err := globals.Manager().ListDevices(ctx)
	if err != nil {
		return reportToolFailure(globals, "LIST_FAILED", err)
	}

	if c.BootedOnly {
		devices = filterBooted(devices)
	}
	if c.Runtime != "" {
		devices = filterByRuntime(devices, c.Runtime)
	}

	if len(devices) == 0 {
		reportInfo(globals, "No simulators found")
		return nil
	}

	groups := simulator.GroupByRuntime(devices)
	if globals.Format == "ndjson" {
		return c.outputNDJSON(globals, groups)
	}
	return c.outputText(globals, groups)
}

func (c *ListCmd) outputNDJSON(globals *Globals, groups []domain.RuntimeGroup) error {
	w := output.NewNDJSONWriter(globals.Stdout)
	for _, d := range simulator.Flatten(groups) {
		if err := w.WriteDevice(d); err != nil {
			return err
		}
	}
	return nil
}

func (c *ListCmd) outputText(globals *Globals, groups []domain.RuntimeGroup) error {
	if err := output.DeviceTable(globals.Stdout, groups); err != nil {
		return err
	}

	total, booted := 0, 0
	for _, g := range groups {
		for _, d := range g.Devices {
			total++
			if d.IsBooted() {
				booted++
			}
		}
	}
	fmt.Fprintf(globals.Stdout, "\n%d simulator(s) across %d runtime(s), %d booted\n", total, len(groups), booted)
	return nil
}

func filterBooted(devices []domain.Device) []domain.Device {
	var booted []domain.Device
	for _, d := range devices {
		if d.IsBooted() {
			booted = append(booted, d)
		}
	}
	return booted
}

// filterByRuntime matches against both the raw identifier and the display
// version, so "17", "iOS 17" and "iOS-17" all work.
func filterByRuntime(devices []domain.Device, runtime string) []domain.Device {
	runtime = strings.ToLower(runtime)
	var filtered []domain.Device
	for _, d := range devices {
		if strings.Contains(strings.ToLower(d.RuntimeIdentifier), runtime) ||
			strings.Contains(strings.ToLower(d.Version()), runtime) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
