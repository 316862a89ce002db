package main

import (
	"github.com/guardian/simmonitor/common/helpers"
	"github.com/guardian/simmonitor/common/models"
	"golang.org/x/text/encoding"
	"os/exec"
	"strings"
)

/**
the queries we make of the batch scheduler. each returns the raw (decoded) text output, or a
*models.SchedulerQueryError if the command could not be run or exited non-zero
*/
type Scheduler interface {
	HostStatus(group string) (string, error)
	JobDetail(jobId string) (string, error)
	RunningJobs() (string, error)
}

/**
talks to LSF through bhosts/bjobs, or whatever the config names instead
*/
type LsfScheduler struct {
	config         helpers.SchedulerConfig
	outputEncoding encoding.Encoding
}

func NewLsfScheduler(config helpers.SchedulerConfig) (*LsfScheduler, error) {
	enc, encErr := helpers.EncodingForName(config.OutputEncoding)
	if encErr != nil {
		return nil, encErr
	}
	return &LsfScheduler{
		config:         config,
		outputEncoding: enc,
	}, nil
}

func (s *LsfScheduler) OutputEncoding() encoding.Encoding {
	return s.outputEncoding
}

func (s *LsfScheduler) query(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	outContent, errContent, runErr := RunCommand(cmd)
	if runErr != nil {
		return helpers.DecodeOutput(outContent, s.outputEncoding), &models.SchedulerQueryError{
			Command:  strings.Join(append([]string{name}, args...), " "),
			ExitCode: ExitCodeFor(runErr),
			Stderr:   helpers.DecodeOutput(errContent, s.outputEncoding),
			Err:      runErr,
		}
	}
	return helpers.DecodeOutput(outContent, s.outputEncoding), nil
}

func (s *LsfScheduler) HostStatus(group string) (string, error) {
	if group == "" {
		return s.query(s.config.HostsCommand)
	}
	return s.query(s.config.HostsCommand, group)
}

func (s *LsfScheduler) JobDetail(jobId string) (string, error) {
	return s.query(s.config.JobsCommand, "-l", jobId)
}

/**
lists the invoking user's unfinished jobs. some LSF versions exit non-zero when there are none, which is not
a failure as far as we are concerned
*/
func (s *LsfScheduler) RunningJobs() (string, error) {
	output, err := s.query(s.config.JobsCommand)
	if err != nil {
		if queryErr, isQueryErr := err.(*models.SchedulerQueryError); isQueryErr && strings.Contains(queryErr.Stderr, "No unfinished job found") {
			return "", nil
		}
		return "", err
	}
	return output, nil
}
