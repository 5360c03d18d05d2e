package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vburojevic/xsim/internal/domain"
)

// DeviceTable renders devices in the order of groups, one row per device.
func DeviceTable(w io.Writer, groups []domain.RuntimeGroup) error {
	table := tablewriter.NewWriter(w)
	table.Header("Name", "Version", "Identifier", "State", "Available")

	for _, g := range groups {
		version := g.Version.String()
		for _, d := range g.Devices {
			row := []string{
				d.Name,
				version,
				d.UDID,
				StateStyle(d.State).Render(string(d.State)),
				AvailabilityText(d.IsAvailable),
			}
			if err := table.Append(row); err != nil {
				return err
			}
		}
	}
	return table.Render()
}

// DeviceTypeTable renders the device types simctl can create.
func DeviceTypeTable(w io.Writer, types []domain.DeviceType) error {
	table := tablewriter.NewWriter(w)
	table.Header("Name", "Identifier", "Min Runtime", "Max Runtime")

	for _, dt := range types {
		row := []string{
			dt.Name,
			dt.Identifier,
			dt.MinRuntimeVersionString,
			dt.MaxRuntimeVersionString,
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
