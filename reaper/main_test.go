package main

import (
	"bytes"
	"github.com/alicebob/miniredis"
	"github.com/go-redis/redis/v7"
	"github.com/google/uuid"
	"github.com/guardian/simmonitor/common/models"
	"strings"
	"testing"
	"time"
)

func storeTestRun(t *testing.T, client redis.Cmdable, endTime time.Time) uuid.UUID {
	summary := models.RunSummary{
		RunId:        uuid.New(),
		StartTime:    endTime.Add(-time.Hour),
		EndTime:      endTime,
		Host:         "h2",
		JobId:        "4321",
		Mode:         models.MODE_CAPTURE,
		LogPath:      "simulation_log_20261016_090000.txt",
		FinalState:   models.STATE_TERMINATED,
		SampleCount:  6,
		PeakMaxBytes: 1610612736,
	}
	err := models.StoreRunSummary(summary, client)
	if err != nil {
		t.Fatal("could not store test run: ", err)
	}
	models.PublishSample(summary.RunId, models.MemorySample{JobId: "4321"}, client)
	return summary.RunId
}

func setupTestRedis() (*miniredis.Miniredis, *redis.Client) {
	s, err := miniredis.Run()
	if err != nil {
		panic(err)
	}
	return s, redis.NewClient(&redis.Options{Addr: s.Addr()})
}

func TestReapRuns(t *testing.T) {
	s, testClient := setupTestRedis()
	defer s.Close()

	now := time.Now()
	old1 := storeTestRun(t, testClient, now.Add(-72*time.Hour))
	recent := storeTestRun(t, testClient, now.Add(-1*time.Hour))
	old2 := storeTestRun(t, testClient, now.Add(-48*time.Hour))
	unfinished := storeTestRun(t, testClient, time.Time{})

	//a page size of 1 makes sure removal doesn't upset the paging
	expired, err := ReapRuns(now.Add(-36*time.Hour), 1, false, testClient)
	if err != nil {
		t.Fatal("ReapRuns failed unexpectedly: ", err)
	}
	if len(expired) != 2 || expired[0] != old1 || expired[1] != old2 {
		t.Errorf("expected %s and %s to expire, got %v", old1, old2, expired)
	}

	remaining, _, _ := models.ListRunIds(0, 10, testClient)
	if len(remaining) != 2 || remaining[0] != recent || remaining[1] != unfinished {
		t.Errorf("expected %s and %s to remain, got %v", recent, unfinished, remaining)
	}
	_, loadErr := models.LoadRunSummary(old1, testClient)
	if loadErr != redis.Nil {
		t.Errorf("expected the summary for %s to be gone, got %v", old1, loadErr)
	}
	samples, _ := models.ListSamples(old2, testClient)
	if len(samples) != 0 {
		t.Errorf("expected the samples for %s to be gone, got %v", old2, samples)
	}
}

func TestReapRunsDryRun(t *testing.T) {
	s, testClient := setupTestRedis()
	defer s.Close()

	now := time.Now()
	old := storeTestRun(t, testClient, now.Add(-72*time.Hour))
	storeTestRun(t, testClient, now)

	expired, err := ReapRuns(now.Add(-36*time.Hour), 100, true, testClient)
	if err != nil {
		t.Fatal("ReapRuns failed unexpectedly: ", err)
	}
	if len(expired) != 1 || expired[0] != old {
		t.Errorf("expected %s to expire, got %v", old, expired)
	}

	remaining, _, _ := models.ListRunIds(0, 10, testClient)
	if len(remaining) != 2 {
		t.Errorf("dry run should not remove anything, %d runs remain", len(remaining))
	}
}

func TestListRuns(t *testing.T) {
	s, testClient := setupTestRedis()
	defer s.Close()

	runId := storeTestRun(t, testClient, time.Date(2026, 10, 16, 10, 0, 0, 0, time.Local))
	testClient.RPush(models.RUN_INDEX_KEY, uuid.New().String())

	var out bytes.Buffer
	err := ListRuns(10, testClient, &out)
	if err != nil {
		t.Fatal("ListRuns failed unexpectedly: ", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one listed run, got %d: %s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], runId.String()+"\t2026-10-16 09:00:00\t2026-10-16 10:00:00\th2\t4321\tTERMINATED\t6 samples\tpeak 1.5GiB") {
		t.Errorf("unexpected listing %s", lines[0])
	}
}

func TestIsExpired(t *testing.T) {
	cutoff := time.Now()
	if IsExpired(&models.RunSummary{}, cutoff) {
		t.Error("a run with no end time should never expire")
	}
	if !IsExpired(&models.RunSummary{EndTime: cutoff.Add(-time.Second)}, cutoff) {
		t.Error("a run that ended before the cutoff should expire")
	}
	if IsExpired(&models.RunSummary{EndTime: cutoff.Add(time.Second)}, cutoff) {
		t.Error("a run that ended after the cutoff should not expire")
	}
}
