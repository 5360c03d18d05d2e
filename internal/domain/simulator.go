package domain

import "time"

// DeviceState represents the current state of a simulator
type DeviceState string

const (
	DeviceStateShutdown     DeviceState = "Shutdown"
	DeviceStateBooted       DeviceState = "Booted"
	DeviceStateBooting      DeviceState = "Booting"
	DeviceStateCreating     DeviceState = "Creating"
	DeviceStateShuttingDown DeviceState = "Shutting Down"
)

// Device represents an iOS Simulator device
type Device struct {
	UDID                 string      `json:"udid"`
	Name                 string      `json:"name"`
	State                DeviceState `json:"state"`
	IsAvailable          bool        `json:"isAvailable"`
	DeviceTypeIdentifier string      `json:"deviceTypeIdentifier,omitempty"`
	RuntimeIdentifier    string      `json:"runtime"`
	LastBootedAt         *time.Time  `json:"lastBootedAt,omitempty"`
}

// IsBooted returns true if the device is currently booted
func (d *Device) IsBooted() bool {
	return d.State == DeviceStateBooted
}

// CanBoot reports whether the device is a candidate for `simctl boot`.
func (d *Device) CanBoot() bool {
	return d.IsAvailable && !d.IsBooted()
}

// CanScreenshot reports whether the device can produce a screenshot.
func (d *Device) CanScreenshot() bool {
	return d.IsAvailable && d.IsBooted()
}

// Version returns the display version of the device's runtime.
func (d *Device) Version() string {
	return ParseRuntimeVersion(d.RuntimeIdentifier).String()
}

// RuntimeGroup holds the devices simctl reported under one runtime identifier.
type RuntimeGroup struct {
	Identifier string         `json:"identifier"`
	Version    RuntimeVersion `json:"-"`
	Devices    []Device       `json:"devices"`
}

// DeviceType is a hardware template usable with `simctl create`.
type DeviceType struct {
	Name                    string `json:"name"`
	Identifier              string `json:"identifier"`
	MinRuntimeVersionString string `json:"minRuntimeVersionString"`
	MaxRuntimeVersionString string `json:"maxRuntimeVersionString"`
	ProductFamily           string `json:"productFamily,omitempty"`
}

// Runtime is an installed simulator OS runtime.
type Runtime struct {
	Name        string `json:"name"`
	Identifier  string `json:"identifier"`
	Version     string `json:"version,omitempty"`
	IsAvailable bool   `json:"isAvailable"`
}

// SimctlDevicesResponse matches `xcrun simctl list devices --json` output
type SimctlDevicesResponse struct {
	Devices map[string][]SimctlDevice `json:"devices"`
}

// SimctlDevice represents a device from simctl JSON output
type SimctlDevice struct {
	UDID                 string  `json:"udid"`
	Name                 string  `json:"name"`
	State                string  `json:"state"`
	IsAvailable          bool    `json:"isAvailable"`
	DeviceTypeIdentifier string  `json:"deviceTypeIdentifier"`
	LastBootedAt         *string `json:"lastBootedAt,omitempty"`
}

// SimctlDeviceTypesResponse matches `xcrun simctl list devicetypes --json` output
type SimctlDeviceTypesResponse struct {
	DeviceTypes []DeviceType `json:"devicetypes"`
}

// SimctlRuntimesResponse matches `xcrun simctl list runtimes --json` output
type SimctlRuntimesResponse struct {
	Runtimes []Runtime `json:"runtimes"`
}
