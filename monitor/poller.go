package main

import (
	"errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/guardian/simmonitor/common/models"
	"log"
	"time"
)

/**
somewhere other than the log file that samples should go. optional
*/
type SamplePublisher interface {
	PublishSample(runId uuid.UUID, sample models.MemorySample) error
}

type MemoryPoller struct {
	scheduler Scheduler
	publisher SamplePublisher
	now       func() time.Time
}

func NewMemoryPoller(scheduler Scheduler, publisher SamplePublisher) *MemoryPoller {
	return &MemoryPoller{
		scheduler: scheduler,
		publisher: publisher,
		now:       time.Now,
	}
}

var ErrNoJobId = errors.New("no job id to sample")

/**
queries the scheduler for the job's memory usage and appends a section to the run log.
this never aborts the run. the returned error tells the caller what went wrong, but it has already been logged:
- ErrNoJobId if there is no job to ask about; nothing is recorded
- *models.SchedulerQueryError if the query failed; nothing is recorded
- *models.NoMatchError if the output had no memory line; a sample with blank fields IS recorded
- a filesystem error if the log could not be appended to
*/
func (p *MemoryPoller) Sample(rc *RunContext) error {
	if !rc.HaveJobId() {
		log.Print("WARNING: No job id found, can't sample memory usage")
		return ErrNoJobId
	}

	detail, queryErr := p.scheduler.JobDetail(rc.JobId)
	if queryErr != nil {
		log.Printf("WARNING: Could not query memory usage for job %s: %s", rc.JobId, queryErr)
		return queryErr
	}

	sample, parseErr := models.NewMemorySample(rc.JobId, detail, p.now())
	if parseErr != nil {
		log.Printf("WARNING: No memory usage reported for job %s yet, recording blank sample", rc.JobId)
	}
	log.Printf("DEBUG: memory sample is %s", spew.Sdump(sample))

	writeErr := rc.Log.AppendSection(sample)
	if writeErr != nil {
		log.Printf("ERROR: Could not append sample to %s: %s", rc.Log.Path, writeErr)
		return writeErr
	}
	rc.RecordSample(sample)

	if p.publisher != nil {
		pubErr := p.publisher.PublishSample(rc.RunId, sample)
		if pubErr != nil {
			log.Printf("WARNING: Could not publish sample for run %s: %s", rc.RunId, pubErr)
		}
	}
	return parseErr
}
