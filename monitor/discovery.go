package main

import (
	"context"
	mapset "github.com/deckarep/golang-set"
	"github.com/guardian/simmonitor/common/models"
	"log"
	"time"
)

/**
finds the scheduler id of a job we submitted without seeing the submission output.
the running-job list is compared against a snapshot taken before submission; if no new job turns up the first
running job is taken instead, which is only right when a single job is in flight for this user
*/
type JobIdDiscoverer struct {
	scheduler Scheduler
	delay     time.Duration
	attempts  int
}

func NewJobIdDiscoverer(scheduler Scheduler, delay time.Duration, attempts int) *JobIdDiscoverer {
	if attempts < 1 {
		attempts = 1
	}
	return &JobIdDiscoverer{
		scheduler: scheduler,
		delay:     delay,
		attempts:  attempts,
	}
}

func (d *JobIdDiscoverer) runningJobIds() ([]string, error) {
	output, err := d.scheduler.RunningJobs()
	if err != nil {
		return nil, err
	}
	return models.ParseRunningJobIds(output), nil
}

/**
the set of job ids running right now. a failed query gives an empty set
*/
func (d *JobIdDiscoverer) Snapshot() mapset.Set {
	snapshot := mapset.NewSet()
	jobIds, err := d.runningJobIds()
	if err != nil {
		log.Printf("WARNING: Could not list running jobs before submission: %s", err)
		return snapshot
	}
	for _, jobId := range jobIds {
		snapshot.Add(jobId)
	}
	return snapshot
}

func (d *JobIdDiscoverer) Discover(ctx context.Context, before mapset.Set) (string, error) {
	var lastSeen []string

	for attempt := 1; attempt <= d.attempts; attempt++ {
		timer := time.NewTimer(d.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}

		current, err := d.runningJobIds()
		if err != nil {
			log.Printf("WARNING: Could not list running jobs on attempt %d: %s", attempt, err)
			continue
		}
		lastSeen = current

		currentSet := mapset.NewSet()
		for _, jobId := range current {
			currentSet.Add(jobId)
		}
		newJobs := currentSet.Difference(before)
		if newJobs.Cardinality() > 1 {
			log.Printf("WARNING: %d new jobs appeared since submission, taking the first one listed", newJobs.Cardinality())
		}
		for _, jobId := range current {
			if newJobs.Contains(jobId) {
				log.Printf("INFO: Found new job %s on attempt %d", jobId, attempt)
				return jobId, nil
			}
		}
		log.Printf("DEBUG: No new job on attempt %d of %d", attempt, d.attempts)
	}

	if len(lastSeen) > 0 {
		log.Printf("WARNING: Could not identify the submitted job, assuming it is the first running job %s", lastSeen[0])
		return lastSeen[0], nil
	}
	return "", &models.NoMatchError{Expected: "running job"}
}
