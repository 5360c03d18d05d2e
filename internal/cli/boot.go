package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/vburojevic/xsim/internal/output"
	"github.com/vburojevic/xsim/internal/simulator"
)

// BootCmd interactively boots a simulator
type BootCmd struct {
	Wait    bool          `short:"w" help:"Wait until the simulator reports Booted"`
	Timeout time.Duration `default:"${config_boot_timeout}" help:"How long --wait waits"`
	Open    bool          `short:"o" help:"Open Simulator.app after booting"`
}

// Run executes the boot command
func (c *BootCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := globals.Manager()

	devices, err := mgr.ListDevices(ctx)
	if err != nil {
		return reportToolFailure(globals, "LIST_FAILED", err)
	}

	candidates := simulator.BootCandidates(devices)
	if len(candidates) == 0 {
		reportInfo(globals, "No available simulators to boot")
		return nil
	}

	p, err := globals.prompter()
	if err != nil {
		return handlePromptError(globals, err)
	}
	device, err := selectDevice(ctx, p, "Select a simulator to boot", candidates)
	if err != nil {
		return handlePromptError(globals, err)
	}

	if err := mgr.BootDevice(ctx, device.UDID); err != nil {
		return reportToolFailure(globals, "BOOT_FAILED", err)
	}

	if c.Wait || globals.config().Boot.Wait {
		timeout := c.Timeout
		if timeout <= 0 {
			timeout = globals.config().Boot.Timeout
		}
		globals.Debug("waiting up to %s for %s", timeout, device.UDID)
		if err := mgr.WaitForBoot(ctx, device.UDID, timeout); err != nil {
			reportFailure(globals, "BOOT_TIMEOUT", fmt.Sprintf("%s did not finish booting: %v", device.Name, err), "")
			return nil
		}
	}

	if c.Open || globals.config().Boot.Open {
		if err := mgr.OpenSimulatorApp(ctx); err != nil {
			globals.Debug("open Simulator.app: %v", err)
			fmt.Fprintf(globals.Stderr, "Warning: could not open Simulator.app: %v\n", err)
		}
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteResult(output.ResultOutput{
			Action:  "boot",
			Success: true,
			UDID:    device.UDID,
			Name:    device.Name,
		})
	}
	reportSuccess(globals, fmt.Sprintf("Booted %s (%s)", device.Name, device.UDID))
	return nil
}
