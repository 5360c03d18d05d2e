package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/vburojevic/xsim/internal/domain"
	"github.com/vburojevic/xsim/internal/output"
	"github.com/vburojevic/xsim/internal/prompt"
	"github.com/vburojevic/xsim/internal/simulator"
)

// CreateCmd interactively creates a simulator
type CreateCmd struct{}

// Run executes the create command
func (c *CreateCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := globals.Manager()

	types, err := mgr.ListDeviceTypes(ctx)
	if err != nil {
		return reportToolFailure(globals, "LIST_REMOTE_FAILED", err)
	}
	runtimes, err := mgr.ListRuntimes(ctx)
	if err != nil {
		return reportToolFailure(globals, "LIST_RUNTIMES_FAILED", err)
	}
	runtimes = simulator.AvailableRuntimes(runtimes)

	if len(types) == 0 {
		reportInfo(globals, "No device types found")
		return nil
	}
	if len(runtimes) == 0 {
		reportInfo(globals, "No available runtimes found; install one from Xcode > Settings > Platforms")
		return nil
	}

	p, err := globals.prompter()
	if err != nil {
		return handlePromptError(globals, err)
	}

	deviceType, err := p.Select(ctx, "Select a device type", deviceTypeChoices(types))
	if err != nil {
		return handlePromptError(globals, err)
	}
	runtime, err := p.Select(ctx, "Select a runtime", runtimeChoices(runtimes))
	if err != nil {
		return handlePromptError(globals, err)
	}

	defaultName := defaultDeviceName(deviceType.Label, runtime.Label)
	name, err := p.Input(ctx, "Simulator name", defaultName)
	if err != nil {
		return handlePromptError(globals, err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName
	}

	globals.Debug("creating %q type=%s runtime=%s", name, deviceType.Value, runtime.Value)
	udid, err := mgr.CreateDevice(ctx, name, deviceType.Value, runtime.Value)
	if err != nil {
		if simulator.IsIncompatibleDevice(err) {
			reportFailure(globals, "INCOMPATIBLE_DEVICE",
				fmt.Sprintf("%s cannot run %s", deviceType.Label, runtime.Label),
				"Pick a runtime inside the device type's supported range; see `xsim list-remote`")
			return nil
		}
		return reportToolFailure(globals, "CREATE_FAILED", err)
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteResult(output.ResultOutput{
			Action:  "create",
			Success: true,
			UDID:    udid,
			Name:    name,
		})
	}
	reportSuccess(globals, fmt.Sprintf("Created %s (%s)", name, udid))
	return nil
}

// defaultDeviceName suggests "<device type> (<runtime>)".
func defaultDeviceName(deviceType, runtime string) string {
	return fmt.Sprintf("%s (%s)", deviceType, runtime)
}

func deviceTypeChoices(types []domain.DeviceType) []prompt.Choice {
	return lo.Map(types, func(dt domain.DeviceType, _ int) prompt.Choice {
		return prompt.Choice{
			Label:       dt.Name,
			Description: fmt.Sprintf("%s • runtimes %s – %s", dt.Identifier, dt.MinRuntimeVersionString, dt.MaxRuntimeVersionString),
			Value:       dt.Identifier,
		}
	})
}

func runtimeChoices(runtimes []domain.Runtime) []prompt.Choice {
	return lo.Map(runtimes, func(r domain.Runtime, _ int) prompt.Choice {
		return prompt.Choice{
			Label:       r.Name,
			Description: r.Identifier,
			Value:       r.Identifier,
		}
	})
}
