package output

import (
	"encoding/json"
	"io"

	"github.com/vburojevic/xsim/internal/domain"
)

// SchemaVersion is stamped on every record. Bump it when a field changes
// meaning or goes away.
const SchemaVersion = 1

// NDJSONWriter writes records as newline-delimited JSON
type NDJSONWriter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &NDJSONWriter{
		w:       w,
		encoder: enc,
	}
}

// DeviceOutput is one simulator in `list` output
type DeviceOutput struct {
	Type          string `json:"type"` // Always "device"
	SchemaVersion int    `json:"schemaVersion"`
	Name          string `json:"name"`
	Version       string `json:"version"`
	Runtime       string `json:"runtime"`
	UDID          string `json:"udid"`
	State         string `json:"state"`
	Available     bool   `json:"available"`
}

// DeviceTypeOutput is one template in `list-remote` output
type DeviceTypeOutput struct {
	Type          string `json:"type"` // Always "device_type"
	SchemaVersion int    `json:"schemaVersion"`
	Name          string `json:"name"`
	Identifier    string `json:"identifier"`
	MinRuntime    string `json:"min_runtime"`
	MaxRuntime    string `json:"max_runtime"`
}

// ResultOutput reports the outcome of one simctl action
type ResultOutput struct {
	Type          string `json:"type"` // Always "result"
	SchemaVersion int    `json:"schemaVersion"`
	Action        string `json:"action"`
	Success       bool   `json:"success"`
	UDID          string `json:"udid,omitempty"`
	Name          string `json:"name,omitempty"`
	Path          string `json:"path,omitempty"`
	Bytes         int64  `json:"bytes,omitempty"`
	Error         string `json:"error,omitempty"`
}

// InfoOutput represents an informational message
type InfoOutput struct {
	Type          string `json:"type"` // Always "info"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
}

// VersionOutput describes the build
type VersionOutput struct {
	Type          string `json:"type"` // Always "version"
	SchemaVersion int    `json:"schemaVersion"`
	Version       string `json:"version"`
	Commit        string `json:"commit"`
}

// WriteDevice outputs a device record
func (w *NDJSONWriter) WriteDevice(d domain.Device) error {
	return w.encoder.Encode(&DeviceOutput{
		Type:          "device",
		SchemaVersion: SchemaVersion,
		Name:          d.Name,
		Version:       d.Version(),
		Runtime:       d.RuntimeIdentifier,
		UDID:          d.UDID,
		State:         string(d.State),
		Available:     d.IsAvailable,
	})
}

// WriteDeviceType outputs a device type record
func (w *NDJSONWriter) WriteDeviceType(dt domain.DeviceType) error {
	return w.encoder.Encode(&DeviceTypeOutput{
		Type:          "device_type",
		SchemaVersion: SchemaVersion,
		Name:          dt.Name,
		Identifier:    dt.Identifier,
		MinRuntime:    dt.MinRuntimeVersionString,
		MaxRuntime:    dt.MaxRuntimeVersionString,
	})
}

// WriteResult outputs an action result
func (w *NDJSONWriter) WriteResult(r ResultOutput) error {
	r.Type = "result"
	r.SchemaVersion = SchemaVersion
	return w.encoder.Encode(&r)
}

// WriteError outputs an error
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	err := domain.NewErrorOutput(code, message)
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	err.SchemaVersion = SchemaVersion
	return w.encoder.Encode(err)
}

// WriteInfo outputs an informational message
func (w *NDJSONWriter) WriteInfo(message string) error {
	return w.encoder.Encode(&InfoOutput{
		Type:          "info",
		SchemaVersion: SchemaVersion,
		Message:       message,
	})
}

// WriteVersion outputs build metadata
func (w *NDJSONWriter) WriteVersion(version, commit string) error {
	return w.encoder.Encode(&VersionOutput{
		Type:          "version",
		SchemaVersion: SchemaVersion,
		Version:       version,
		Commit:        commit,
	})
}

// WriteRaw outputs raw JSON data
func (w *NDJSONWriter) WriteRaw(v interface{}) error {
	return w.encoder.Encode(v)
}
