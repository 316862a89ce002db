package main

import (
	"fmt"
	"github.com/guardian/simmonitor/common/models"
	"golang.org/x/text/encoding"
	"io"
	"log"
)

type JobLauncher struct {
	Shell          string
	SubmitKeyword  string
	OutputEncoding encoding.Encoding
	Discoverer     *JobIdDiscoverer
	Terminal       io.Writer
	ErrTerminal    io.Writer
}

/**
turns the command as given on the command line into the one we actually run, pinned to the selected host
*/
func (l *JobLauncher) PrepareCommand(rawCommand string, host string) string {
	command := PinCommandToHost(CleanCommand(rawCommand), l.SubmitKeyword, host)
	log.Printf("INFO: Submission command is: %s", command)
	return command
}

/**
starts the submission as a child process in the given mode
*/
func (l *JobLauncher) Launch(mode models.LaunchMode, command string) (Submission, error) {
	switch mode {
	case models.MODE_CAPTURE:
		s, err := StartCaptureSubmission(l.Shell, command, l.OutputEncoding, l.Terminal, l.ErrTerminal)
		if err != nil {
			return nil, err
		}
		return s, nil
	case models.MODE_DETACH:
		if l.Discoverer == nil {
			return nil, fmt.Errorf("detach mode needs a job id discoverer")
		}
		s, err := StartDetachedSubmission(l.Shell, command, l.Discoverer, l.Terminal, l.ErrTerminal)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("launch mode '%s' is not recognised", mode)
	}
}
