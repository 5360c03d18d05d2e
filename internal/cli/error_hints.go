package cli

import (
	"errors"
	"os"
	"os/exec"
	"strings"
)

// hintForTooling suggests a fix for common xcrun/Xcode problems and falls
// back to pointing at doctor.
func hintForTooling(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	if strings.Contains(msg, "invalid active developer path") {
		return "Xcode CLI tools not configured; run `xcode-select --install` or `sudo xcode-select -s /Applications/Xcode.app/Contents/Developer` (then `xsim doctor`)"
	}
	if strings.Contains(strings.ToLower(msg), "license") && strings.Contains(strings.ToLower(msg), "xcodebuild") {
		return "Xcode license may not be accepted; try `sudo xcodebuild -license accept` (then `xsim doctor`)"
	}
	if isCommandNotFound(err, "xcrun") {
		return "xcrun not found; install Xcode Command Line Tools with `xcode-select --install` (then `xsim doctor`)"
	}
	if strings.Contains(msg, "unexpected output from simctl") {
		return "Your Xcode version may print a different format; run `xsim doctor`"
	}

	return "Run `xsim doctor` for diagnostics"
}

func isCommandNotFound(err error, name string) bool {
	if err == nil {
		return false
	}

	var ee *exec.Error
	if errors.As(err, &ee) && errors.Is(ee.Err, exec.ErrNotFound) {
		if strings.EqualFold(ee.Name, name) || strings.HasSuffix(ee.Name, string(os.PathSeparator)+name) {
			return true
		}
	}

	var pe *os.PathError
	if errors.As(err, &pe) && (errors.Is(pe.Err, exec.ErrNotFound) || errors.Is(pe.Err, os.ErrNotExist)) {
		if strings.EqualFold(pe.Path, name) || strings.HasSuffix(pe.Path, string(os.PathSeparator)+name) {
			return true
		}
	}

	// Fallback to string matching for wrapped errors.
	msg := err.Error()
	if strings.Contains(msg, "executable file not found") && strings.Contains(msg, name) {
		return true
	}
	if strings.Contains(msg, "no such file or directory") && strings.Contains(msg, name) {
		return true
	}

	return false
}
