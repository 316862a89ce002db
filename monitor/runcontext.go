package main

import (
	"github.com/google/uuid"
	"github.com/guardian/simmonitor/common/models"
	"github.com/jinzhu/copier"
	"log"
	"time"
)

/**
everything about the current run, built once at startup and passed to everything that needs it
*/
type RunContext struct {
	RunId        uuid.UUID
	StartTime    time.Time
	Host         string
	Mode         models.LaunchMode
	JobId        string
	LogPath      string
	Log          *LogWriter
	SampleCount  int
	PeakMaxBytes int64
}

func NewRunContext(host string, mode models.LaunchMode, logDir string) *RunContext {
	startTime := time.Now()
	logWriter := NewLogWriter(logDir, startTime)
	return &RunContext{
		RunId:     uuid.New(),
		StartTime: startTime,
		Host:      host,
		Mode:      mode,
		LogPath:   logWriter.Path,
		Log:       logWriter,
	}
}

func (rc *RunContext) HaveJobId() bool {
	return rc.JobId != ""
}

func (rc *RunContext) RecordSample(sample models.MemorySample) {
	rc.SampleCount += 1
	if sample.MaxBytes > rc.PeakMaxBytes {
		rc.PeakMaxBytes = sample.MaxBytes
	}
}

/**
projects the run context onto a summary for storage
*/
func (rc *RunContext) Summary(finalState models.RunState, endTime time.Time) models.RunSummary {
	var summary models.RunSummary
	copyErr := copier.Copy(&summary, rc)
	if copyErr != nil {
		log.Printf("WARNING: Could not copy run context into summary: %s", copyErr)
	}
	summary.EndTime = endTime
	summary.FinalState = finalState
	return summary
}
