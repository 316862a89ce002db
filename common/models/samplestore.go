package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/davecgh/go-spew/spew"
	"github.com/go-redis/redis/v7"
	"github.com/google/uuid"
	"log"
)

const RUN_INDEX_KEY = "simmonitor:runs"

func samplesKey(runId uuid.UUID) string {
	return fmt.Sprintf("simmonitor:samples:%s", runId)
}

func runKey(runId uuid.UUID) string {
	return fmt.Sprintf("simmonitor:run:%s", runId)
}

/**
appends a sample to the list kept for the given run
*/
func PublishSample(runId uuid.UUID, sample MemorySample, redisClient redis.Cmdable) error {
	content, marshalErr := json.Marshal(sample)
	if marshalErr != nil {
		log.Printf("Could not format content: %s. Offending data was %s", marshalErr, spew.Sdump(sample))
		return marshalErr
	}

	_, err := redisClient.RPush(samplesKey(runId), string(content)).Result()
	return err
}

/**
returns every sample stored for the given run, oldest first
*/
func ListSamples(runId uuid.UUID, redisClient redis.Cmdable) ([]MemorySample, error) {
	dbKey := samplesKey(runId)
	rawData, err := redisClient.LRange(dbKey, 0, -1).Result()
	if err != nil {
		log.Printf("Could not range %s: %s", dbKey, err)
		return nil, err
	}

	result := make([]MemorySample, len(rawData))
	for i, rawEntry := range rawData {
		marshalErr := json.Unmarshal([]byte(rawEntry), &result[i])
		if marshalErr != nil {
			log.Printf("ERROR: Bad data in %s: %s. Offending data was %s.", dbKey, marshalErr, rawEntry)
			return nil, marshalErr
		}
	}
	return result, nil
}

/**
stores the summary as a hash and adds the run to the index if it's not there already
*/
func StoreRunSummary(summary RunSummary, redisClient redis.Cmdable) error {
	dbKey := runKey(summary.RunId)

	existed, existErr := redisClient.Exists(dbKey).Result()
	if existErr != nil {
		log.Printf("Could not check for existing summary %s: %s", dbKey, existErr)
		return existErr
	}

	pipe := redisClient.Pipeline()
	defer pipe.Close()

	for field, value := range summary.hashFields() {
		pipe.HSet(dbKey, field, value)
	}
	if existed == 0 {
		pipe.RPush(RUN_INDEX_KEY, summary.RunId.String())
	}

	_, err := pipe.Exec()
	if err != nil {
		log.Printf("Could not store run summary %s: %s", dbKey, err)
		return err
	}
	return nil
}

/**
retrieves the summary for the given run. returns redis.Nil if there is no such run
*/
func LoadRunSummary(runId uuid.UUID, redisClient redis.Cmdable) (*RunSummary, error) {
	dbKey := runKey(runId)
	rawContent, getErr := redisClient.HGetAll(dbKey).Result()
	if getErr != nil {
		log.Printf("Could not retrieve run summary for %s: %s", runId, getErr)
		return nil, getErr
	}
	if len(rawContent) == 0 {
		return nil, redis.Nil
	}

	var summary RunSummary
	decodeErr := CustomisedMapStructureDecode(rawContent, &summary)
	if decodeErr != nil {
		log.Printf("Corrupted information in the datastore for %s: %s", dbKey, decodeErr)
		return nil, decodeErr
	}
	return &summary, nil
}

/**
returns a page of run ids, oldest first. the second return value is the cursor for the next page, or 0
if there are no more
*/
func ListRunIds(cursor int64, pageSize int64, redisClient redis.Cmdable) ([]uuid.UUID, int64, error) {
	if pageSize <= 0 {
		return nil, 0, errors.New("page size must be positive")
	}

	rawData, err := redisClient.LRange(RUN_INDEX_KEY, cursor, cursor+pageSize-1).Result()
	if err != nil {
		log.Printf("Could not range %s: %s", RUN_INDEX_KEY, err)
		return nil, 0, err
	}

	result := make([]uuid.UUID, 0, len(rawData))
	for _, rawEntry := range rawData {
		runId, parseErr := uuid.Parse(rawEntry)
		if parseErr != nil {
			log.Printf("ERROR: Bad data in the run index: %s. Offending data was %s.", parseErr, rawEntry)
			continue
		}
		result = append(result, runId)
	}

	var nextCursor int64
	if int64(len(rawData)) == pageSize {
		nextCursor = cursor + pageSize
	}
	return result, nextCursor, nil
}

/**
removes everything stored for the given run
*/
func RemoveRun(runId uuid.UUID, redisClient redis.Cmdable) error {
	_, delErr := redisClient.Del(samplesKey(runId), runKey(runId)).Result()
	if delErr != nil {
		log.Printf("Could not remove data for run %s: %s", runId, delErr)
		return delErr
	}
	_, remErr := redisClient.LRem(RUN_INDEX_KEY, 0, runId.String()).Result()
	if remErr != nil {
		log.Printf("Could not remove run %s from the index: %s", runId, remErr)
	}
	return remErr
}
