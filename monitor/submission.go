package main

import (
	"context"
	"fmt"
	mapset "github.com/deckarep/golang-set"
	"github.com/guardian/simmonitor/common/models"
	"golang.org/x/text/encoding"
	"io"
	"log"
	"os/exec"
	"strings"
	"sync"
	"syscall"
)

/**
a submitted simulation: the child process we started, plus a way to find out the scheduler's id for the job
*/
type Submission interface {
	//closed once the child process has exited, whatever the exit status
	Done() <-chan struct{}
	//asks the child process to stop. does not wait for it to do so
	Terminate() error
	//blocks until the scheduler job id is known, or it's clear that it never will be
	JobId(ctx context.Context) (string, error)
}

type childProcess struct {
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error
}

func newChildProcess(cmd *exec.Cmd) *childProcess {
	return &childProcess{
		cmd:  cmd,
		done: make(chan struct{}),
	}
}

func (c *childProcess) wait() {
	c.waitErr = c.cmd.Wait()
	if c.waitErr != nil {
		log.Printf("INFO: Submission process exited: %s", c.waitErr)
	} else {
		log.Print("INFO: Submission process exited normally")
	}
	close(c.done)
}

func (c *childProcess) Done() <-chan struct{} {
	return c.done
}

func (c *childProcess) Terminate() error {
	select {
	case <-c.done:
		return nil
	default:
	}
	if c.cmd.Process == nil {
		return nil
	}
	return c.cmd.Process.Signal(syscall.SIGTERM)
}

/**
capture mode: the submission's stdout is copied to the terminal line by line and kept, and the first
"Job <nnn>" in it gives us the job id
*/
type captureSubmission struct {
	*childProcess
	terminal io.Writer
	jobIdCh  chan string
	outputMu sync.Mutex
	output   strings.Builder
}

func StartCaptureSubmission(shell string, command string, outputEncoding encoding.Encoding, terminal io.Writer, errTerminal io.Writer) (*captureSubmission, error) {
	cmd := exec.Command(shell, "-c", command)
	cmd.Stderr = errTerminal

	lines, errs, startErr := RunCommandStreaming(cmd, outputEncoding)
	if startErr != nil {
		return nil, startErr
	}

	s := &captureSubmission{
		childProcess: newChildProcess(cmd),
		terminal:     terminal,
		jobIdCh:      make(chan string, 1),
	}
	go s.consume(lines, errs)
	return s, nil
}

func (s *captureSubmission) consume(lines chan *string, errs chan error) {
	found := false
	defer func() {
		close(s.jobIdCh)
		s.wait()
	}()

	for {
		select {
		case line := <-lines:
			if line == nil {
				return
			}
			fmt.Fprintln(s.terminal, *line)
			s.outputMu.Lock()
			s.output.WriteString(*line + "\n")
			s.outputMu.Unlock()
			if !found {
				if jobId, err := models.ExtractJobId(*line); err == nil {
					found = true
					s.jobIdCh <- jobId
				}
			}
		case err := <-errs:
			log.Printf("ERROR: Could not read submission output: %s", err)
			return
		}
	}
}

func (s *captureSubmission) JobId(ctx context.Context) (string, error) {
	select {
	case jobId, ok := <-s.jobIdCh:
		if !ok {
			return "", &models.NoMatchError{Expected: "job id"}
		}
		return jobId, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

/**
everything the submission has printed so far
*/
func (s *captureSubmission) Output() string {
	s.outputMu.Lock()
	defer s.outputMu.Unlock()
	return s.output.String()
}

/**
detach mode: the submission runs in its own process group with its output going straight to the terminal, and
the job id is worked out afterwards from the scheduler's job list
*/
type detachSubmission struct {
	*childProcess
	discoverer *JobIdDiscoverer
	before     mapset.Set
}

func StartDetachedSubmission(shell string, command string, discoverer *JobIdDiscoverer, terminal io.Writer, errTerminal io.Writer) (*detachSubmission, error) {
	before := discoverer.Snapshot()

	cmd := exec.Command(shell, "-c", command)
	cmd.Stdout = terminal
	cmd.Stderr = errTerminal
	detachProcessGroup(cmd)

	startErr := cmd.Start()
	if startErr != nil {
		log.Print("Could not start command: ", startErr)
		return nil, startErr
	}

	s := &detachSubmission{
		childProcess: newChildProcess(cmd),
		discoverer:   discoverer,
		before:       before,
	}
	go s.wait()
	return s, nil
}

func (s *detachSubmission) JobId(ctx context.Context) (string, error) {
	return s.discoverer.Discover(ctx, s.before)
}
