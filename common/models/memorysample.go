package models

import (
	"github.com/docker/go-units"
	"regexp"
	"strings"
	"time"
)

const TIMESTAMP_FORMAT = "2006-01-02 15:04:05"

type MemorySample struct {
	Timestamp time.Time `json:"timestamp"`
	JobId     string    `json:"jobId"`
	MaxMem    string    `json:"maxMem"`
	AvgMem    string    `json:"avgMem"`
	MaxBytes  int64     `json:"maxBytes"`
	AvgBytes  int64     `json:"avgBytes"`
}

var maxMemParser = regexp.MustCompile(`MAX MEM:\s*([0-9.]+\s*\w+)`)
var avgMemParser = regexp.MustCompile(`AVG MEM:\s*([0-9.]+\s*\w+)`)

/**
scans long-format job detail output for the line carrying both "MAX MEM:" and "AVG MEM:" and pulls out the
value+unit strings, e.g. "512.3 Mbytes". only the first such line is considered.
if there is no such line a NoMatchError is returned along with empty strings
*/
func ParseMemoryUsage(detail string) (string, string, error) {
	for _, line := range strings.Split(detail, "\n") {
		if strings.Contains(line, "MAX MEM:") && strings.Contains(line, "AVG MEM:") {
			var maxMem, avgMem string
			if match := maxMemParser.FindStringSubmatch(line); match != nil {
				maxMem = match[1]
			}
			if match := avgMemParser.FindStringSubmatch(line); match != nil {
				avgMem = match[1]
			}
			return maxMem, avgMem, nil
		}
	}
	return "", "", &NoMatchError{Expected: "memory usage line"}
}

/**
builds a sample from job detail output. a sample is always returned, with blank fields if the output had no memory
line; the error tells the caller that this happened.
*/
func NewMemorySample(jobId string, detail string, at time.Time) (MemorySample, error) {
	maxMem, avgMem, parseErr := ParseMemoryUsage(detail)
	return MemorySample{
		Timestamp: at,
		JobId:     jobId,
		MaxMem:    maxMem,
		AvgMem:    avgMem,
		MaxBytes:  MemoryStringToBytes(maxMem),
		AvgBytes:  MemoryStringToBytes(avgMem),
	}, parseErr
}

/**
converts a scheduler memory string such as "12.5 Gbytes" to a byte count, using binary multiples.
returns 0 if the string is blank or can't be understood
*/
func MemoryStringToBytes(memString string) int64 {
	trimmed := strings.TrimSpace(memString)
	lowered := strings.ToLower(trimmed)
	if strings.HasSuffix(lowered, "bytes") {
		trimmed = strings.TrimSpace(trimmed[:len(trimmed)-len("bytes")])
	}
	if trimmed == "" {
		return 0
	}
	value, err := units.RAMInBytes(trimmed)
	if err != nil {
		return 0
	}
	return value
}

func (s MemorySample) SectionHeader() string {
	return s.Timestamp.Format(TIMESTAMP_FORMAT)
}

func (s MemorySample) LogLines() []string {
	return []string{
		"Job ID: " + s.JobId,
		"MAX MEM: " + s.MaxMem,
		"AVG MEM: " + s.AvgMem,
	}
}
