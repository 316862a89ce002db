package main

import (
	"flag"
	"fmt"
	"github.com/docker/go-units"
	"github.com/go-redis/redis/v7"
	"github.com/google/uuid"
	"github.com/guardian/simmonitor/common/helpers"
	"github.com/guardian/simmonitor/common/models"
	"io"
	"log"
	"os"
	"time"
)

func SetupRedis(config *helpers.Config) (*redis.Client, error) {
	log.Printf("Connecting to Redis on %s", config.Redis.Address)
	client := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Address,
		Password: config.Redis.Password,
		DB:       config.Redis.DBNum,
	})

	_, err := client.Ping().Result()
	if err != nil {
		log.Printf("Could not contact Redis: %s", err)
		return nil, err
	}
	log.Printf("Done.")
	return client, nil
}

/**
calls the given function for every stored run, oldest first. runs that are indexed but have no summary are skipped
*/
func ForEachRun(pageSize int64, redisClient redis.Cmdable, cb func(summary *models.RunSummary) error) error {
	var cursor int64 = 0
	for {
		runIds, nextCursor, err := models.ListRunIds(cursor, pageSize, redisClient)
		if err != nil {
			return err
		}

		for _, runId := range runIds {
			summary, loadErr := models.LoadRunSummary(runId, redisClient)
			if loadErr == redis.Nil {
				log.Printf("WARNING: Run %s is indexed but has no summary", runId)
				continue
			} else if loadErr != nil {
				return loadErr
			}
			cbErr := cb(summary)
			if cbErr != nil {
				return cbErr
			}
		}

		if nextCursor == 0 {
			return nil
		}
		cursor = nextCursor
	}
}

/**
true if the run finished before the cutoff. runs with no end time are never expired
*/
func IsExpired(summary *models.RunSummary, cutoffTime time.Time) bool {
	return !summary.EndTime.IsZero() && summary.EndTime.Before(cutoffTime)
}

/**
finds every expired run and removes it, unless dryRun is set. returns the ids of the expired runs.
removing shifts the run index, so everything is collected before anything is removed
*/
func ReapRuns(cutoffTime time.Time, pageSize int64, dryRun bool, redisClient redis.Cmdable) ([]uuid.UUID, error) {
	expired := make([]uuid.UUID, 0)
	listErr := ForEachRun(pageSize, redisClient, func(summary *models.RunSummary) error {
		if IsExpired(summary, cutoffTime) {
			expired = append(expired, summary.RunId)
		}
		return nil
	})
	if listErr != nil {
		return nil, listErr
	}

	for _, runId := range expired {
		if dryRun {
			log.Printf("Would remove old run %s", runId)
			continue
		}
		log.Printf("Removing old run %s", runId)
		err := models.RemoveRun(runId, redisClient)
		if err != nil {
			return expired, err
		}
	}
	return expired, nil
}

func FormatSummary(summary *models.RunSummary) string {
	var endTime string
	if summary.EndTime.IsZero() {
		endTime = "-"
	} else {
		endTime = summary.EndTime.Format(models.TIMESTAMP_FORMAT)
	}
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s\t%d samples\tpeak %s\t%s",
		summary.RunId,
		summary.StartTime.Format(models.TIMESTAMP_FORMAT),
		endTime,
		summary.Host,
		summary.JobId,
		summary.FinalState,
		summary.SampleCount,
		units.BytesSize(float64(summary.PeakMaxBytes)),
		summary.LogPath,
	)
}

func ListRuns(pageSize int64, redisClient redis.Cmdable, out io.Writer) error {
	return ForEachRun(pageSize, redisClient, func(summary *models.RunSummary) error {
		_, err := fmt.Fprintln(out, FormatSummary(summary))
		return err
	})
}

func main() {
	configPath := flag.String("config", "config/monitorconfig.yaml", "yaml config `file` giving the redis connection")
	maxAgeHours := flag.Int64("maxage", 36, "delete runs that finished longer ago than this many hours")
	pageSize := flag.Int64("pagesize", 100, "pull this many runs from the database at once")
	dryRun := flag.Bool("dryrun", true, "don't actually delete anything")
	listOnly := flag.Bool("list", false, "list stored runs instead of deleting anything")

	flag.Parse()

	log.Printf("Reading config from %s", *configPath)
	config, configReadErr := helpers.ReadConfig(*configPath)
	log.Print("Done.")

	if configReadErr != nil {
		log.Fatal("No configuration, can't continue")
	}
	if config.Redis.Address == "" {
		log.Fatal("No redis address configured, nothing to do")
	}

	redisClient, redisErr := SetupRedis(config)
	if redisErr != nil {
		log.Fatal("Could not connect to redis")
	}

	if *listOnly {
		listErr := ListRuns(*pageSize, redisClient, os.Stdout)
		if listErr != nil {
			log.Fatalf("ERROR: Could not list runs: %s", listErr)
		}
		return
	}

	log.Printf("Dryrun is %t", *dryRun)
	startTime := time.Now()
	log.Printf("Reaping of old data starting at %s", startTime)

	cutoffTime := startTime.Add(-time.Duration(*maxAgeHours) * time.Hour)
	log.Printf("Cutoff time is %s", cutoffTime)

	expired, reapErr := ReapRuns(cutoffTime, *pageSize, *dryRun, redisClient)
	if reapErr != nil {
		log.Fatalf("ERROR: Could not reap old runs: %s", reapErr)
	}

	endTime := time.Now()
	log.Printf("Reaping run completed at %s and took %d seconds; %d runs expired", endTime, endTime.Unix()-startTime.Unix(), len(expired))
}
