package simulator

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/vburojevic/xsim/internal/domain"
)

// GroupByRuntime buckets devices by runtime identifier. Groups come back
// newest OS version first; devices inside a group are sorted by name.
func GroupByRuntime(devices []domain.Device) []domain.RuntimeGroup {
	byRuntime := lo.GroupBy(devices, func(d domain.Device) string {
		return d.RuntimeIdentifier
	})

	groups := make([]domain.RuntimeGroup, 0, len(byRuntime))
	for id, devs := range byRuntime {
		sort.SliceStable(devs, func(i, j int) bool {
			if devs[i].Name != devs[j].Name {
				return strings.ToLower(devs[i].Name) < strings.ToLower(devs[j].Name)
			}
			return devs[i].UDID < devs[j].UDID
		})
		groups = append(groups, domain.RuntimeGroup{
			Identifier: id,
			Version:    domain.ParseRuntimeVersion(id),
			Devices:    devs,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i].Version, groups[j].Version
		if a.Newer(b) {
			return true
		}
		if b.Newer(a) {
			return false
		}
		return groups[i].Identifier < groups[j].Identifier
	})
	return groups
}

// Flatten returns the devices of groups in group order.
func Flatten(groups []domain.RuntimeGroup) []domain.Device {
	return lo.FlatMap(groups, func(g domain.RuntimeGroup, _ int) []domain.Device {
		return g.Devices
	})
}

// BootCandidates keeps available devices that are not booted yet.
func BootCandidates(devices []domain.Device) []domain.Device {
	return lo.Filter(devices, func(d domain.Device, _ int) bool {
		return d.CanBoot()
	})
}

// ScreenshotCandidates keeps available devices that are booted.
func ScreenshotCandidates(devices []domain.Device) []domain.Device {
	return lo.Filter(devices, func(d domain.Device, _ int) bool {
		return d.CanScreenshot()
	})
}

// AvailableRuntimes drops runtimes simctl marks unusable.
func AvailableRuntimes(runtimes []domain.Runtime) []domain.Runtime {
	return lo.Filter(runtimes, func(r domain.Runtime, _ int) bool {
		return r.IsAvailable
	})
}
