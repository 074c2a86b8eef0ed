package tasks

import "text2phenotype.com/tbl/redis"

const TrainingsDB redis.DB = 2

type TaskStatus string

const (
	TaskStatusProcessing       TaskStatus = "processing"
	TaskStatusSubmitted        TaskStatus = "submitted"
	TaskStatusStarted          TaskStatus = "started"
	TaskStatusFailed           TaskStatus = "failed"
	TaskStatusCompletedSuccess TaskStatus = "completed - success"
	TaskStatusCompletedFailure TaskStatus = "completed - failure"
	TaskStatusCanceled         TaskStatus = "canceled"
)

func (s TaskStatus) Complete() bool {
	return s == TaskStatusCompletedSuccess || s == TaskStatusCompletedFailure || s == TaskStatusCanceled
}

func (s TaskStatus) Submitted() bool {
	return s == TaskStatusSubmitted || s == TaskStatusStarted || s == TaskStatusProcessing
}

// TrainTask is the redis document describing one corpus-to-model training
// run.
type TrainTask struct {
	JobID         string            `json:"job_id"`
	ConfigName    string            `json:"config_name"`
	CorpusFileKey string            `json:"corpus_file_key"`
	TaskStatuses  TrainTaskStatuses `json:"task_statuses"`
}

type TrainTaskStatuses struct {
	Brill TrainTaskInfo `json:"brill"`
}

type TrainTaskInfo struct {
	RulesFileKey     string     `json:"rules_file_key"`
	ModelFileKey     string     `json:"model_file_key"`
	ReportFileKey    string     `json:"report_file_key"`
	StartedAt        *string    `json:"started_at"`
	CompletedAt      *string    `json:"completed_at"`
	Attempts         int        `json:"attempts"`
	Status           TaskStatus `json:"status"`
	ErrorMessages    []string   `json:"error_messages"`
	RulesLearned     int        `json:"rules_learned"`
	BaselineAccuracy *float64   `json:"baseline_accuracy"`
	PatchedAccuracy  *float64   `json:"patched_accuracy"`
}

type TrainTasks struct {
	client redis.Client
}

func (tasks TrainTasks) Get(redisKey string) (*TrainTask, error) {
	var task TrainTask
	if err := tasks.client.GetDocument(redisKey, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (tasks TrainTasks) Update(redisKey string, updateFunc func(task *TrainTask)) error {
	var task TrainTask
	return tasks.client.UpdateDocument(redisKey, &task, func() {
		updateFunc(&task)
	})
}
