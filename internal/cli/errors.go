package cli

import (
	"errors"
	"fmt"

	"github.com/vburojevic/xsim/internal/output"
	"github.com/vburojevic/xsim/internal/prompt"
)

// CLIError is a failure that ends the process with a non-zero exit.
type CLIError struct {
	Code    string
	Message string
	Hint    string
}

func (e *CLIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

var errNotInteractive = &CLIError{
	Code:    "NOT_INTERACTIVE",
	Message: "this command needs an interactive terminal",
	Hint:    "Run it from a terminal, or use 'xsim list' and 'xcrun simctl' directly for scripting",
}

// outputErrorCommon normalizes error emission across commands, respecting
// ndjson vs text formats so scripts always get machine-readable failures.
func outputErrorCommon(globals *Globals, code, message string) error {
	if globals != nil && globals.Format == "ndjson" {
		output.NewNDJSONWriter(globals.Stdout).WriteError(code, message)
	} else if globals != nil {
		fmt.Fprintf(globals.Stderr, "Error [%s]: %s\n", code, message)
	}
	return errors.New(message)
}

// reportFailure prints a failed simctl step. It never returns an error: a
// failed invocation ends the command, not the process.
func reportFailure(globals *Globals, code, message, hint string) {
	if globals.Format == "ndjson" {
		output.NewNDJSONWriter(globals.Stdout).WriteError(code, message, hint)
		return
	}
	fmt.Fprintln(globals.Stderr, output.Styles.Danger.Render("Error: ")+message)
	if hint != "" {
		fmt.Fprintln(globals.Stderr, output.Styles.Hint.Render("Hint: "+hint))
	}
}

// reportToolFailure is reportFailure for errors returned by the simulator manager.
func reportToolFailure(globals *Globals, code string, err error) error {
	globals.Debug("%s: %v", code, err)
	reportFailure(globals, code, err.Error(), hintForTooling(err))
	return nil
}

// reportInfo prints an informational message such as an empty result.
func reportInfo(globals *Globals, message string) {
	if globals.Format == "ndjson" {
		output.NewNDJSONWriter(globals.Stdout).WriteInfo(message)
		return
	}
	fmt.Fprintln(globals.Stdout, output.Styles.Info.Render(message))
}

// reportSuccess prints a success line in text mode; ndjson callers write a
// result record instead.
func reportSuccess(globals *Globals, message string) {
	fmt.Fprintln(globals.Stdout, output.Styles.Success.Render("✓ ")+message)
}

// handlePromptError turns a prompt failure into the command's outcome.
// Backing out of a prompt is a normal exit.
func handlePromptError(globals *Globals, err error) error {
	if errors.Is(err, prompt.ErrCanceled) {
		reportInfo(globals, "Cancelled")
		return nil
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		if globals.Format == "ndjson" {
			output.NewNDJSONWriter(globals.Stdout).WriteError(cliErr.Code, cliErr.Message, cliErr.Hint)
		} else {
			fmt.Fprintf(globals.Stderr, "Error [%s]: %s\n", cliErr.Code, cliErr.Message)
			if cliErr.Hint != "" {
				fmt.Fprintln(globals.Stderr, output.Styles.Hint.Render("Hint: "+cliErr.Hint))
			}
		}
		return cliErr
	}
	return outputErrorCommon(globals, "PROMPT_FAILED", err.Error())
}
