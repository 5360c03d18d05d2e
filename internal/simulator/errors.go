package simulator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	incompatibleDeviceText = "Incompatible device"
	alreadyBootedText      = "current state: Booted"
)

// CommandError is returned when simctl exits non-zero. Output holds whatever
// simctl printed on stdout and stderr. Tool is empty for simctl itself.
type CommandError struct {
	Tool   string
	Args   []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	sub := e.Tool
	if sub == "" {
		sub = "simctl"
	}
	if len(e.Args) > 0 {
		sub += " " + e.Args[0]
	}
	if e.Output != "" {
		return fmt.Sprintf("%s failed: %s", sub, e.Output)
	}
	return fmt.Sprintf("%s failed: %v", sub, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// UnexpectedOutputError reports simctl output that does not have the shape
// this tool reads.
type UnexpectedOutputError struct {
	Command string
	Reason  string
}

func (e *UnexpectedOutputError) Error() string {
	return fmt.Sprintf("unexpected output from simctl %s: %s", e.Command, e.Reason)
}

// IsIncompatibleDevice reports whether simctl rejected a device type and
// runtime combination.
func IsIncompatibleDevice(err error) bool {
	return outputContains(err, incompatibleDeviceText)
}

// IsAlreadyBooted reports whether simctl refused to boot a device that was
// already running.
func IsAlreadyBooted(err error) bool {
	return outputContains(err, alreadyBootedText)
}

func outputContains(err error, text string) bool {
	var ce *CommandError
	if !errors.As(err, &ce) {
		return false
	}
	return strings.Contains(ce.Output, text)
}

// validateDevices checks `list devices --json` output is an object of arrays
// under "devices" before it is decoded.
func validateDevices(output []byte) error {
	const command = "list devices"
	if !gjson.ValidBytes(output) {
		return &UnexpectedOutputError{Command: command, Reason: "output is not valid JSON"}
	}
	devices := gjson.GetBytes(output, "devices")
	if !devices.Exists() {
		return &UnexpectedOutputError{Command: command, Reason: `missing "devices" key`}
	}
	if !devices.IsObject() {
		return &UnexpectedOutputError{Command: command, Reason: `"devices" is not an object`}
	}

	var bad string
	devices.ForEach(func(key, value gjson.Result) bool {
		if !value.IsArray() {
			bad = key.String()
			return false
		}
		return true
	})
	if bad != "" {
		return &UnexpectedOutputError{Command: command, Reason: fmt.Sprintf("runtime %q does not hold a device list", bad)}
	}
	return nil
}

// validateArray checks output carries a JSON array under key.
func validateArray(output []byte, command, key string) error {
	if !gjson.ValidBytes(output) {
		return &UnexpectedOutputError{Command: command, Reason: "output is not valid JSON"}
	}
	r := gjson.GetBytes(output, key)
	if !r.Exists() {
		return &UnexpectedOutputError{Command: command, Reason: fmt.Sprintf("missing %q key", key)}
	}
	if !r.IsArray() {
		return &UnexpectedOutputError{Command: command, Reason: fmt.Sprintf("%q is not an array", key)}
	}
	return nil
}
