package main

import (
	"github.com/go-redis/redis/v7"
	"github.com/google/uuid"
	"github.com/guardian/simmonitor/common/helpers"
	"github.com/guardian/simmonitor/common/models"
	"log"
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
sends samples and the final run summary to redis so that the run can be looked at later
*/
type RedisPublisher struct {
	redisClient redis.Cmdable
}

func NewRedisPublisher(redisClient redis.Cmdable) *RedisPublisher {
	return &RedisPublisher{redisClient: redisClient}
}

func (p *RedisPublisher) PublishSample(runId uuid.UUID, sample models.MemorySample) error {
	return models.PublishSample(runId, sample, p.redisClient)
}

func (p *RedisPublisher) PublishSummary(summary models.RunSummary) error {
	return models.StoreRunSummary(summary, p.redisClient)
}
