package cli

import (
	"context"

	"github.com/vburojevic/xsim/internal/output"
)

// ListRemoteCmd lists the device types simctl can create
type ListRemoteCmd struct{}

// Run executes the list-remote command
func (c *ListRemoteCmd) Run(globals *Globals) error {
	ctx := context.Background()

	types, err := globals.Manager().ListDeviceTypes(ctx)
	if err != nil {
		return reportToolFailure(globals, "LIST_REMOTE_FAILED", err)
	}
	if len(types) == 0 {
		reportInfo(globals, "No device types found")
		return nil
	}

	if globals.Format == "ndjson" {
		w := output.NewNDJSONWriter(globals.Stdout)
		for _, dt := range types {
			if err := w.WriteDeviceType(dt); err != nil {
				return err
			}
		}
		return nil
	}
	return output.DeviceTypeTable(globals.Stdout, types)
}
