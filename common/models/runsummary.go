package models

import (
	"github.com/google/uuid"
	"strconv"
	"time"
)

type RunState string

const (
	STATE_SUBMITTED  RunState = "SUBMITTED"
	STATE_POLLING    RunState = "POLLING"
	STATE_TERMINATED RunState = "TERMINATED"
	STATE_CANCELLED  RunState = "CANCELLED"
	STATE_NO_JOB_ID  RunState = "NO_JOB_ID"
)

func (s RunState) IsTerminal() bool {
	switch s {
	case STATE_TERMINATED, STATE_CANCELLED, STATE_NO_JOB_ID:
		return true
	default:
		return false
	}
}

type LaunchMode string

const (
	MODE_CAPTURE LaunchMode = "capture"
	MODE_DETACH  LaunchMode = "detach"
)

func ParseLaunchMode(from string) (LaunchMode, bool) {
	switch LaunchMode(from) {
	case MODE_CAPTURE:
		return MODE_CAPTURE, true
	case MODE_DETACH:
		return MODE_DETACH, true
	default:
		return "", false
	}
}

/**
what we know about a run once it has finished. this is what gets stored for later inspection, the log file
remains the primary record
*/
type RunSummary struct {
	RunId        uuid.UUID  `json:"runId" mapstructure:"runId"`
	StartTime    time.Time  `json:"startTime" mapstructure:"startTime"`
	EndTime      time.Time  `json:"endTime" mapstructure:"endTime"`
	Host         string     `json:"host" mapstructure:"host"`
	JobId        string     `json:"jobId" mapstructure:"jobId"`
	Mode         LaunchMode `json:"mode" mapstructure:"mode"`
	LogPath      string     `json:"logPath" mapstructure:"logPath"`
	FinalState   RunState   `json:"finalState" mapstructure:"finalState"`
	SampleCount  int        `json:"sampleCount" mapstructure:"sampleCount"`
	PeakMaxBytes int64      `json:"peakMaxBytes" mapstructure:"peakMaxBytes"`
}

func (s RunSummary) hashFields() map[string]string {
	return map[string]string{
		"runId":        s.RunId.String(),
		"startTime":    s.StartTime.Format(time.RFC3339Nano),
		"endTime":      s.EndTime.Format(time.RFC3339Nano),
		"host":         s.Host,
		"jobId":        s.JobId,
		"mode":         string(s.Mode),
		"logPath":      s.LogPath,
		"finalState":   string(s.FinalState),
		"sampleCount":  strconv.Itoa(s.SampleCount),
		"peakMaxBytes": strconv.FormatInt(s.PeakMaxBytes, 10),
	}
}
