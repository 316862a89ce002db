package models

import (
	"fmt"
	"strings"
)

/**
returned when scheduler output did not contain what we were looking for.
this is expected during normal operation (e.g. a job that has not been dispatched yet has no memory line), so callers
usually log it and carry on
*/
type NoMatchError struct {
	Expected string
}

func (e *NoMatchError) Error() string {
	if e.Expected == "" {
		return "string did not match expected format"
	}
	return fmt.Sprintf("no %s found in output", e.Expected)
}

/**
returned when a scheduler command could not be run or exited non-zero
*/
type SchedulerQueryError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *SchedulerQueryError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr != "" {
		return fmt.Sprintf("scheduler query '%s' failed with exit code %d: %s (%s)", e.Command, e.ExitCode, e.Err, stderr)
	}
	return fmt.Sprintf("scheduler query '%s' failed with exit code %d: %s", e.Command, e.ExitCode, e.Err)
}

func (e *SchedulerQueryError) Unwrap() error {
	return e.Err
}
