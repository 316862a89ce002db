package main

import (
	"errors"
	"github.com/guardian/simmonitor/common/helpers"
	"github.com/guardian/simmonitor/common/models"
	"io/ioutil"
	"os"
	"path"
	"testing"
)

/**
writes an executable shell script into a temporary directory, returning its path and a cleanup function
*/
func writeTestScript(t *testing.T, content string) (string, func()) {
	tempDir, err := ioutil.TempDir("", "fakelsf")
	if err != nil {
		t.Fatal(err)
	}
	scriptPath := path.Join(tempDir, "fake.sh")
	writeErr := ioutil.WriteFile(scriptPath, []byte("#!/bin/sh\n"+content), 0755)
	if writeErr != nil {
		t.Fatal(writeErr)
	}
	return scriptPath, func() { os.RemoveAll(tempDir) }
}

func testSchedulerConfig() helpers.SchedulerConfig {
	return helpers.DefaultConfig().Scheduler
}

func TestLsfSchedulerPassesArguments(t *testing.T) {
	config := testSchedulerConfig()
	config.HostsCommand = "echo"
	config.JobsCommand = "echo"
	scheduler, err := NewLsfScheduler(config)
	if err != nil {
		t.Fatal("NewLsfScheduler failed unexpectedly: ", err)
	}

	hostOutput, hostErr := scheduler.HostStatus("adas_gls")
	if hostErr != nil || hostOutput != "adas_gls\n" {
		t.Errorf("HostStatus returned '%s', %v", hostOutput, hostErr)
	}

	detailOutput, detailErr := scheduler.JobDetail("4321")
	if detailErr != nil || detailOutput != "-l 4321\n" {
		t.Errorf("JobDetail returned '%s', %v", detailOutput, detailErr)
	}

	runningOutput, runningErr := scheduler.RunningJobs()
	if runningErr != nil || runningOutput != "\n" {
		t.Errorf("RunningJobs returned '%s', %v", runningOutput, runningErr)
	}
}

func TestLsfSchedulerQueryFailure(t *testing.T) {
	scriptPath, cleanup := writeTestScript(t, "echo 'adas_gls: No such host group' >&2\nexit 255\n")
	defer cleanup()

	config := testSchedulerConfig()
	config.HostsCommand = scriptPath
	scheduler, _ := NewLsfScheduler(config)

	_, err := scheduler.HostStatus("adas_gls")
	var queryErr *models.SchedulerQueryError
	if !errors.As(err, &queryErr) {
		t.Fatalf("expected a SchedulerQueryError, got %v", err)
	}
	if queryErr.ExitCode != 255 {
		t.Errorf("expected exit code 255, got %d", queryErr.ExitCode)
	}
	if queryErr.Command != scriptPath+" adas_gls" {
		t.Errorf("unexpected command in error: %s", queryErr.Command)
	}
	if queryErr.Stderr != "adas_gls: No such host group\n" {
		t.Errorf("unexpected stderr in error: %s", queryErr.Stderr)
	}
}

func TestLsfSchedulerMissingCommand(t *testing.T) {
	config := testSchedulerConfig()
	config.JobsCommand = "/no/such/bjobs"
	scheduler, _ := NewLsfScheduler(config)

	_, err := scheduler.JobDetail("4321")
	queryErr, isQueryErr := err.(*models.SchedulerQueryError)
	if !isQueryErr {
		t.Fatalf("expected a SchedulerQueryError, got %v", err)
	}
	if queryErr.ExitCode != -1 {
		t.Errorf("expected exit code -1 for a command that never ran, got %d", queryErr.ExitCode)
	}
}

func TestLsfSchedulerNoUnfinishedJobs(t *testing.T) {
	scriptPath, cleanup := writeTestScript(t, "echo 'No unfinished job found' >&2\nexit 255\n")
	defer cleanup()

	config := testSchedulerConfig()
	config.JobsCommand = scriptPath
	scheduler, _ := NewLsfScheduler(config)

	output, err := scheduler.RunningJobs()
	if err != nil {
		t.Error("no unfinished jobs should not be an error: ", err)
	}
	if output != "" {
		t.Errorf("expected empty output, got '%s'", output)
	}
}

func TestLsfSchedulerDecodesOutput(t *testing.T) {
	//"你好" in GBK
	scriptPath, cleanup := writeTestScript(t, "printf '\\304\\343\\272\\303\\n'\n")
	defer cleanup()

	config := testSchedulerConfig()
	config.HostsCommand = scriptPath
	config.OutputEncoding = "gbk"
	scheduler, err := NewLsfScheduler(config)
	if err != nil {
		t.Fatal("NewLsfScheduler failed unexpectedly: ", err)
	}

	output, _ := scheduler.HostStatus("")
	if output != "你好\n" {
		t.Errorf("expected decoded output, got '%s'", output)
	}
}

func TestLsfSchedulerBadEncoding(t *testing.T) {
	config := testSchedulerConfig()
	config.OutputEncoding = "klingon"
	_, err := NewLsfScheduler(config)
	if err == nil {
		t.Error("expected an error for an unknown output encoding")
	}
}
