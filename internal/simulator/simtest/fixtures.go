package simtest

import (
	"encoding/json"

	"github.com/vburojevic/xsim/internal/domain"
)

// Runtime identifiers used across fixtures.
const (
	IOS17 = "com.apple.CoreSimulator.SimRuntime.iOS-17-0"
	IOS16 = "com.apple.CoreSimulator.SimRuntime.iOS-16-4"
)

// Device is a fixture row for DevicesJSON.
type Device struct {
	Name      string
	UDID      string
	State     domain.DeviceState
	Available bool
}

// DevicesJSON renders what `simctl list devices --json` prints for the given
// runtime buckets.
func DevicesJSON(byRuntime map[string][]Device) string {
	resp := domain.SimctlDevicesResponse{Devices: map[string][]domain.SimctlDevice{}}
	for runtime, devs := range byRuntime {
		list := make([]domain.SimctlDevice, 0, len(devs))
		for _, d := range devs {
			list = append(list, domain.SimctlDevice{
				UDID:        d.UDID,
				Name:        d.Name,
				State:       string(d.State),
				IsAvailable: d.Available,
			})
		}
		resp.Devices[runtime] = list
	}
	data, err := json.Marshal(resp)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// DeviceTypesJSON is a minimal `simctl list devicetypes --json` payload.
const DeviceTypesJSON = `{
  "devicetypes": [
    {
      "name": "iPhone 15 Pro",
      "identifier": "com.apple.CoreSimulator.SimDeviceType.iPhone-15-Pro",
      "minRuntimeVersionString": "17.0.0",
      "maxRuntimeVersionString": "65535.255.255",
      "productFamily": "iPhone"
    },
    {
      "name": "iPad Air (5th generation)",
      "identifier": "com.apple.CoreSimulator.SimDeviceType.iPad-Air-5th-generation",
      "minRuntimeVersionString": "15.4.0",
      "maxRuntimeVersionString": "65535.255.255",
      "productFamily": "iPad"
    }
  ]
}`

// RuntimesJSON is a minimal `simctl list runtimes --json` payload with one
// unavailable runtime.
const RuntimesJSON = `{
  "runtimes": [
    {
      "name": "iOS 17.0",
      "identifier": "com.apple.CoreSimulator.SimRuntime.iOS-17-0",
      "version": "17.0",
      "isAvailable": true
    },
    {
      "name": "iOS 15.0",
      "identifier": "com.apple.CoreSimulator.SimRuntime.iOS-15-0",
      "version": "15.0",
      "isAvailable": false
    }
  ]
}`
