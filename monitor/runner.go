package main

import (
	"bytes"
	"github.com/guardian/simmonitor/common/helpers"
	"golang.org/x/text/encoding"
	"log"
	"os/exec"
)

/**
helper function to run the given command to completion and capture output
*/
func RunCommand(cmd *exec.Cmd) ([]byte, []byte, error) {
	log.Print("DEBUG: exec command is ", cmd)
	var outContent bytes.Buffer
	var errContent bytes.Buffer
	cmd.Stdout = &outContent
	cmd.Stderr = &errContent

	completeErr := cmd.Run()
	if completeErr != nil {
		exitErr, isExitError := completeErr.(*exec.ExitError)
		if isExitError {
			log.Print("Failure code: ", exitErr)
			log.Printf("Subprocess exited with an error: \n%s", errContent.String())
		} else {
			log.Print("Could not run subprocess: ", completeErr)
		}
		return outContent.Bytes(), errContent.Bytes(), completeErr
	}

	return outContent.Bytes(), errContent.Bytes(), nil
}

/**
exit code of a failed command, or -1 if it never got as far as exiting
*/
func ExitCodeFor(err error) int {
	if exitErr, isExitError := err.(*exec.ExitError); isExitError {
		return exitErr.ExitCode()
	}
	return -1
}

/**
starts the given command and returns its stdout as a channel of lines (see helpers.AsyncNewlineReader).
the caller must drain the line channel before calling cmd.Wait
*/
func RunCommandStreaming(cmd *exec.Cmd, outputEncoding encoding.Encoding) (chan *string, chan error, error) {
	outPipe, pipeErr := cmd.StdoutPipe()
	if pipeErr != nil {
		return nil, nil, pipeErr
	}

	startErr := cmd.Start()
	if startErr != nil {
		log.Print("Could not start command: ", startErr)
		return nil, nil, startErr
	}

	outChan, errChan := helpers.AsyncNewlineReader(outPipe, helpers.NewDecoder(outputEncoding), 100)
	return outChan, errChan, nil
}
