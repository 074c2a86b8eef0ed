// Package tasks models the redis-backed state of training jobs. Each
// training run has one TrainTask document; the owning job has a JobTask
// document with shared flags like user cancellation.
package tasks

import (
	"fmt"

	"text2phenotype.com/tbl/redis"
)

type Client struct {
	Trainings TrainTasks
	Jobs      JobTasks
}

// NewClient is the preferred way of working with task documents.
func NewClient() (Client, error) {
	jobsRedisClient, err := redis.NewClient(JobsDB)
	if err != nil {
		return Client{}, err
	}
	trainRedisClient, err := redis.NewClient(TrainingsDB)
	if err != nil {
		return Client{}, err
	}
	return Client{
		Jobs:      JobTasks{client: jobsRedisClient},
		Trainings: TrainTasks{client: trainRedisClient},
	}, nil
}

func (client *Client) Close() {
	_ = client.Trainings.client.Close()
	_ = client.Jobs.client.Close()
}

func cachedPropertiesKey(redisKey string) string {
	return fmt.Sprintf("%s-cached-properties", redisKey)
}
