package tasks

import "text2phenotype.com/tbl/redis"

const JobsDB redis.DB = 1

type JobTask struct {
	UserCanceled           bool `json:"user_canceled"`
	StopTrainingsOnFailure bool `json:"stop_trainings_on_failure"`
}

type JobTasks struct {
	client redis.Client
}

func (tasks JobTasks) GetCached(redisKey string) (*JobTask, error) {
	var task JobTask
	key := cachedPropertiesKey(redisKey)
	if err := tasks.client.GetDocument(key, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
