package main

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"
)

/**
anything that can be written to the run log as a section
*/
type LogSection interface {
	SectionHeader() string
	LogLines() []string
}

/**
append-only text log for a single run. the file is opened, appended to and closed for every section, so whatever
has been written survives if the monitor dies
*/
type LogWriter struct {
	Path string
}

func LogFileName(startTime time.Time) string {
	return fmt.Sprintf("simulation_log_%s.txt", startTime.Format("20060102_150405"))
}

func NewLogWriter(logDir string, startTime time.Time) *LogWriter {
	return &LogWriter{Path: path.Join(logDir, LogFileName(startTime))}
}

func (w *LogWriter) AppendSection(section LogSection) error {
	var sb strings.Builder
	sb.WriteString("\n=== " + section.SectionHeader() + " ===\n")
	for _, line := range section.LogLines() {
		sb.WriteString(line + "\n")
	}

	f, openErr := os.OpenFile(w.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if openErr != nil {
		return openErr
	}
	_, writeErr := f.WriteString(sb.String())
	closeErr := f.Close()
	if writeErr != nil {
		return writeErr
	}
	return closeErr
}
