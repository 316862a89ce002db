package main

import (
	"context"
	"github.com/guardian/simmonitor/common/models"
	"log"
	"time"
)

/**
drives a single submitted job from submission to a terminal state:

	SUBMITTED -> POLLING -> TERMINATED
	POLLING -> CANCELLED (interrupt)
	SUBMITTED -> NO_JOB_ID
	SUBMITTED -> CANCELLED (interrupt before the job id is known)

every path that has a job id ends with one last sample, so the log always has the end-of-run figures
*/
type Lifecycle struct {
	rc        *RunContext
	poller    *MemoryPoller
	interval  time.Duration
	watchFile string
	state     models.RunState
}

/**
watchFile is only honoured in capture mode, and may be empty
*/
func NewLifecycle(rc *RunContext, poller *MemoryPoller, interval time.Duration, watchFile string) *Lifecycle {
	return &Lifecycle{
		rc:        rc,
		poller:    poller,
		interval:  interval,
		watchFile: watchFile,
	}
}

func (l *Lifecycle) State() models.RunState {
	return l.state
}

func (l *Lifecycle) transition(to models.RunState) {
	log.Printf("INFO: Run %s: %s -> %s", l.rc.RunId, l.state, to)
	l.state = to
}

func (l *Lifecycle) Run(ctx context.Context, sub Submission) models.RunState {
	l.transition(models.STATE_SUBMITTED)

	jobId, idErr := sub.JobId(ctx)
	if idErr != nil {
		if ctx.Err() != nil {
			log.Print("INFO: Interrupted before the job id was known")
			l.terminate(sub)
			l.transition(models.STATE_CANCELLED)
		} else {
			log.Printf("WARNING: Could not get a job id (%s), memory usage will not be monitored", idErr)
			l.transition(models.STATE_NO_JOB_ID)
		}
		l.recordFileInfo()
		return l.state
	}

	l.rc.JobId = jobId
	log.Printf("INFO: Got job id %s", jobId)

	select {
	case <-sub.Done():
		l.transition(models.STATE_TERMINATED)
	default:
		l.transition(models.STATE_POLLING)
		l.poll(ctx, sub)
	}

	l.poller.Sample(l.rc)
	l.recordFileInfo()
	return l.state
}

/**
samples once per interval until the child exits or we are cancelled. the wait between samples is interrupted by
either of those, so neither has to wait out the interval
*/
func (l *Lifecycle) poll(ctx context.Context, sub Submission) {
	for {
		select {
		case <-sub.Done():
			l.transition(models.STATE_TERMINATED)
			return
		case <-ctx.Done():
			l.cancel(sub)
			return
		default:
		}

		l.poller.Sample(l.rc)

		timer := time.NewTimer(l.interval)
		select {
		case <-sub.Done():
			timer.Stop()
			l.transition(models.STATE_TERMINATED)
			return
		case <-ctx.Done():
			timer.Stop()
			l.cancel(sub)
			return
		case <-timer.C:
		}
	}
}

func (l *Lifecycle) cancel(sub Submission) {
	log.Print("INFO: Run interrupted by user, stopping the simulation")
	l.terminate(sub)
	l.transition(models.STATE_CANCELLED)
}

func (l *Lifecycle) terminate(sub Submission) {
	err := sub.Terminate()
	if err != nil {
		log.Printf("WARNING: Could not signal the submission process: %s", err)
	}
}

func (l *Lifecycle) recordFileInfo() {
	if l.watchFile == "" || l.rc.Mode != models.MODE_CAPTURE {
		return
	}
	info := models.NewFileMetadata(l.watchFile)
	writeErr := l.rc.Log.AppendSection(info)
	if writeErr != nil {
		log.Printf("ERROR: Could not append file information to %s: %s", l.rc.Log.Path, writeErr)
	}
}
