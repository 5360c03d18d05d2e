package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vburojevic/xsim/internal/domain"
)

// Manager handles simulator discovery and lifecycle operations
type Manager struct {
	xcrunPath    string
	openPath     string
	pollInterval time.Duration
	clock        clock.Clock
	logger       *zap.Logger
}

// Option configures a Manager
type Option func(*Manager)

// WithXcrunPath overrides the xcrun binary used for every simctl call.
func WithXcrunPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.xcrunPath = path
		}
	}
}

// WithOpenPath overrides the binary used to bring Simulator.app forward.
func WithOpenPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.openPath = path
		}
	}
}

// WithLogger sets the logger used for subprocess tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock replaces the wall clock, used by boot polling.
func WithClock(c clock.Clock) Option {
	return func(m *Manager) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithPollInterval sets how often WaitForBoot re-reads device state.
func WithPollInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.pollInterval = d
		}
	}
}

// NewManager creates a new simulator manager
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		xcrunPath:    "xcrun",
		openPath:     "open",
		pollInterval: 2 * time.Second,
		clock:        clock.New(),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// simctl runs `xcrun simctl <args>` and returns stdout. The argument vector is
// passed straight to exec; nothing goes through a shell.
func (m *Manager) simctl(ctx context.Context, args ...string) ([]byte, error) {
	argv := append([]string{"simctl"}, args...)
	cmd := exec.CommandContext(ctx, m.xcrunPath, argv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := m.clock.Now()
	err := cmd.Run()
	m.logger.Debug("simctl",
		zap.Strings("args", args),
		zap.Duration("took", m.clock.Since(start)),
		zap.Error(err),
	)
	if err != nil {
		return nil, &CommandError{
			Args:   args,
			Output: strings.TrimSpace(stdout.String() + "\n" + stderr.String()),
			Err:    err,
		}
	}
	return stdout.Bytes(), nil
}

// ListDevices returns every simulator simctl knows about, available or not,
// ordered newest runtime first and by name within a runtime.
func (m *Manager) ListDevices(ctx context.Context) ([]domain.Device, error) {
	output, err := m.simctl(ctx, "list", "devices", "--json")
	if err != nil {
		return nil, err
	}
	if err := validateDevices(output); err != nil {
		return nil, err
	}

	var resp domain.SimctlDevicesResponse
	if err := json.Unmarshal(output, &resp); err != nil {
		return nil, &UnexpectedOutputError{Command: "list devices", Reason: err.Error()}
	}

	var devices []domain.Device
	for runtime, devs := range resp.Devices {
		for _, d := range devs {
			var lastBooted *time.Time
			if d.LastBootedAt != nil {
				if t, err := time.Parse(time.RFC3339, *d.LastBootedAt); err == nil {
					lastBooted = &t
				}
			}

			devices = append(devices, domain.Device{
				UDID:                 d.UDID,
				Name:                 d.Name,
				State:                domain.DeviceState(d.State),
				IsAvailable:          d.IsAvailable,
				DeviceTypeIdentifier: d.DeviceTypeIdentifier,
				RuntimeIdentifier:    runtime,
				LastBootedAt:         lastBooted,
			})
		}
	}

	return Flatten(GroupByRuntime(devices)), nil
}

// ListDeviceTypes returns the hardware templates simctl can create.
func (m *Manager) ListDeviceTypes(ctx context.Context) ([]domain.DeviceType, error) {
	output, err := m.simctl(ctx, "list", "devicetypes", "--json")
	if err != nil {
		return nil, err
	}
	if err := validateArray(output, "list devicetypes", "devicetypes"); err != nil {
		return nil, err
	}

	var resp domain.SimctlDeviceTypesResponse
	if err := json.Unmarshal(output, &resp); err != nil {
		return nil, &UnexpectedOutputError{Command: "list devicetypes", Reason: err.Error()}
	}
	return resp.DeviceTypes, nil
}

// ListRuntimes returns the installed simulator runtimes.
func (m *Manager) ListRuntimes(ctx context.Context) ([]domain.Runtime, error) {
	output, err := m.simctl(ctx, "list", "runtimes", "--json")
	if err != nil {
		return nil, err
	}
	if err := validateArray(output, "list runtimes", "runtimes"); err != nil {
		return nil, err
	}

	var resp domain.SimctlRuntimesResponse
	if err := json.Unmarshal(output, &resp); err != nil {
		return nil, &UnexpectedOutputError{Command: "list runtimes", Reason: err.Error()}
	}
	return resp.Runtimes, nil
}

// CreateDevice creates a simulator and returns the UDID simctl assigned to it.
func (m *Manager) CreateDevice(ctx context.Context, name, deviceTypeID, runtimeID string) (string, error) {
	output, err := m.simctl(ctx, "create", name, deviceTypeID, runtimeID)
	if err != nil {
		return "", err
	}

	// simctl may print warnings first; the UDID is the last line.
	udid := lastLine(string(output))
	if _, err := uuid.Parse(udid); err != nil {
		return "", &UnexpectedOutputError{
			Command: "create",
			Reason:  fmt.Sprintf("device may have been created, but no UDID could be read from %q", strings.TrimSpace(string(output))),
		}
	}
	return udid, nil
}

func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

// DeleteDevice deletes a simulator by UDID
func (m *Manager) DeleteDevice(ctx context.Context, udid string) error {
	_, err := m.simctl(ctx, "delete", udid)
	return err
}

// BootDevice boots a simulator by UDID
func (m *Manager) BootDevice(ctx context.Context, udid string) error {
	_, err := m.simctl(ctx, "boot", udid)
	if err != nil {
		// Already booted is not an error
		if IsAlreadyBooted(err) {
			return nil
		}
		return err
	}
	return nil
}

// Screenshot captures the screen of a booted simulator into path.
func (m *Manager) Screenshot(ctx context.Context, udid, path string) error {
	_, err := m.simctl(ctx, "io", udid, "screenshot", path)
	return err
}

// OpenSimulatorApp brings Simulator.app to the foreground.
func (m *Manager) OpenSimulatorApp(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, m.openPath, "-a", "Simulator")
	if output, err := cmd.CombinedOutput(); err != nil {
		return &CommandError{Tool: "open", Args: []string{"-a", "Simulator"}, Output: strings.TrimSpace(string(output)), Err: err}
	}
	return nil
}

// GetDeviceInfo returns the current info for a device by UDID
func (m *Manager) GetDeviceInfo(ctx context.Context, udid string) (*domain.Device, error) {
	devices, err := m.ListDevices(ctx)
	if err != nil {
		return nil, err
	}

	for _, d := range devices {
		if d.UDID == udid {
			return &d, nil
		}
	}

	return nil, fmt.Errorf("device not found: %s", udid)
}

// WaitForBoot waits for a device to finish booting
func (m *Manager) WaitForBoot(ctx context.Context, udid string, timeout time.Duration) error {
	deadline := m.clock.Now().Add(timeout)
	ticker := m.clock.Ticker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if m.clock.Now().After(deadline) {
				return fmt.Errorf("timeout waiting for device to boot")
			}

			device, err := m.GetDeviceInfo(ctx, udid)
			if err != nil {
				m.logger.Debug("boot poll failed", zap.String("udid", udid), zap.Error(err))
				continue
			}

			if device.IsBooted() {
				return nil
			}
		}
	}
}
