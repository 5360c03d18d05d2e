package cli

import (
	"context"
	"fmt"

	"github.com/vburojevic/xsim/internal/output"
)

// DeleteCmd interactively deletes simulators
type DeleteCmd struct{}

// Run executes the delete command
func (c *DeleteCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := globals.Manager()

	devices, err := mgr.ListDevices(ctx)
	if err != nil {
		return reportToolFailure(globals, "LIST_FAILED", err)
	}
	if len(devices) == 0 {
		reportInfo(globals, "No simulators found")
		return nil
	}

	p, err := globals.prompter()
	if err != nil {
		return handlePromptError(globals, err)
	}

	chosen, err := p.MultiSelect(ctx, "Select simulators to delete", deviceChoices(devices))
	if err != nil {
		return handlePromptError(globals, err)
	}
	if len(chosen) == 0 {
		reportInfo(globals, "No simulators selected")
		return nil
	}

	confirmed, err := p.Confirm(ctx, fmt.Sprintf("Delete %d simulator(s)? This cannot be undone.", len(chosen)), false)
	if err != nil {
		return handlePromptError(globals, err)
	}
	if !confirmed {
		reportInfo(globals, "Deletion cancelled")
		return nil
	}

	w := output.NewNDJSONWriter(globals.Stdout)
	failed := 0
	// One simctl call per device, in order; a failure does not stop the rest.
	for _, d := range devicesByUDID(devices, chosen) {
		err := mgr.DeleteDevice(ctx, d.UDID)
		if globals.Format == "ndjson" {
			res := output.ResultOutput{Action: "delete", Success: err == nil, UDID: d.UDID, Name: d.Name}
			if err != nil {
				res.Error = err.Error()
			}
			if werr := w.WriteResult(res); werr != nil {
				return werr
			}
		} else if err != nil {
			reportFailure(globals, "DELETE_FAILED", fmt.Sprintf("failed to delete %s: %v", d.Name, err), "")
		} else {
			reportSuccess(globals, fmt.Sprintf("Deleted %s (%s)", d.Name, d.UDID))
		}
		if err != nil {
			failed++
		}
	}

	if globals.Format != "ndjson" && failed > 0 {
		fmt.Fprintf(globals.Stdout, "%d of %d deletion(s) failed\n", failed, len(chosen))
	}
	return nil
}
