package models

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

const sampleJobDetail = `
Job <4321>, User <simuser>, Project <default>, Status <RUN>, Queue <normal>, Command <./run_sim.sh>
Thu Oct 16 10:01:12: Submitted from host <login01>, CWD <$HOME/sim>;
Thu Oct 16 10:01:14: Started 1 Task(s) on Host(s) <adas-node02>;

 MEMORY USAGE:
 MAX MEM: 512.3 Mbytes;  AVG MEM: 300.1 Mbytes

 SCHEDULING PARAMETERS:
`

func TestParseMemoryUsage(t *testing.T) {
	maxMem, avgMem, err := ParseMemoryUsage(sampleJobDetail)
	if err != nil {
		t.Error("ParseMemoryUsage failed unexpectedly: ", err)
	}
	if maxMem != "512.3 Mbytes" {
		t.Errorf("max mem was '%s', expected '512.3 Mbytes'", maxMem)
	}
	if avgMem != "300.1 Mbytes" {
		t.Errorf("avg mem was '%s', expected '300.1 Mbytes'", avgMem)
	}
}

func TestParseMemoryUsageMissingLine(t *testing.T) {
	maxMem, avgMem, err := ParseMemoryUsage("Job <4321>, User <simuser>, Status <PEND>\n MAX MEM: 1 Gbytes\n")
	if err == nil {
		t.Error("ParseMemoryUsage should report a missing memory line")
	} else {
		_, isRightType := err.(*NoMatchError)
		if !isRightType {
			t.Errorf("Got an error %s for missing line, expected NoMatchError", reflect.TypeOf(err))
		}
	}
	if maxMem != "" || avgMem != "" {
		t.Errorf("expected blank fields, got '%s' and '%s'", maxMem, avgMem)
	}
}

func TestNewMemorySampleAlwaysReturnsSample(t *testing.T) {
	at := time.Date(2026, 10, 16, 10, 11, 12, 0, time.Local)
	sample, err := NewMemorySample("4321", "nothing useful here", at)
	if err == nil {
		t.Error("expected a NoMatchError for output without a memory line")
	}
	if sample.JobId != "4321" || !sample.Timestamp.Equal(at) {
		t.Errorf("sample did not carry job id and timestamp: %v", sample)
	}
	if sample.MaxMem != "" || sample.AvgMem != "" || sample.MaxBytes != 0 {
		t.Errorf("sample should have blank memory fields: %v", sample)
	}

	lines := sample.LogLines()
	if !reflect.DeepEqual(lines, []string{"Job ID: 4321", "MAX MEM: ", "AVG MEM: "}) {
		t.Errorf("unexpected log lines %v", lines)
	}
	if sample.SectionHeader() != "2026-10-16 10:11:12" {
		t.Errorf("unexpected section header %s", sample.SectionHeader())
	}
}

func TestNewMemorySampleWithData(t *testing.T) {
	detail := strings.Replace(sampleJobDetail, "512.3 Mbytes", "2 Gbytes", 1)
	sample, err := NewMemorySample("4321", detail, time.Now())
	if err != nil {
		t.Error("NewMemorySample failed unexpectedly: ", err)
	}
	if sample.MaxMem != "2 Gbytes" {
		t.Errorf("max mem was '%s'", sample.MaxMem)
	}
	if sample.MaxBytes != 2147483648 {
		t.Errorf("max bytes was %d, expected 2147483648", sample.MaxBytes)
	}
}

func TestMemoryStringToBytes(t *testing.T) {
	expected := map[string]int64{
		"512 Mbytes": 536870912,
		"2 Gbytes":   2147483648,
		"64 Kbytes":  65536,
		"300 bytes":  300,
		"":           0,
		"lots":       0,
	}
	for input, want := range expected {
		got := MemoryStringToBytes(input)
		if got != want {
			t.Errorf("MemoryStringToBytes('%s') returned %d, expected %d", input, got, want)
		}
	}
}
