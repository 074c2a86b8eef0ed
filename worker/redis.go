package worker

import (
	"fmt"

	"text2phenotype.com/tbl/tasks"
)

type redisTransactions interface {
	getTrainTask(redisKey string) (*tasks.TrainTask, error)
	getJobTask(task *Task) (*tasks.JobTask, error)
	onTaskStarted(task *Task) error
	onTaskCancelled(task *Task, errorMessages ...string) error
	onTaskExceededRetries(task *Task, maxRetries int) error
	onTaskFailedWithError(task *Task, err error) error
	onTaskComplete(task *Task, summary *TrainingSummary) error
	close()
}

type redisClientWrapper struct {
	tasksClient *tasks.Client
}

func (wrapper *redisClientWrapper) close() {
	wrapper.tasksClient.Close()
}

func (wrapper *redisClientWrapper) onTaskStarted(task *Task) error {
	return wrapper.tasksClient.Trainings.Update(task.redisKey, func(task *tasks.TrainTask) {
		task.TaskStatuses.Brill.Status = tasks.TaskStatusStarted
		task.TaskStatuses.Brill.Attempts += 1
		task.TaskStatuses.Brill.StartedAt = getFormattedNow()
		task.TaskStatuses.Brill.CompletedAt = nil
	})
}

func (wrapper *redisClientWrapper) onTaskCancelled(task *Task, errorMessages ...string) error {
	return wrapper.tasksClient.Trainings.Update(task.redisKey, func(trainTask *tasks.TrainTask) {
		trainTask.TaskStatuses.Brill.Status = tasks.TaskStatusCanceled
		trainTask.TaskStatuses.Brill.StartedAt = getFormattedNow()
		trainTask.TaskStatuses.Brill.CompletedAt = getFormattedNow()
		trainTask.TaskStatuses.Brill.Attempts += 1
		trainTask.TaskStatuses.Brill.ErrorMessages = append(
			trainTask.TaskStatuses.Brill.ErrorMessages,
			errorMessages...,
		)
	})
}

func (wrapper *redisClientWrapper) onTaskExceededRetries(task *Task, maxRetries int) error {
	return wrapper.tasksClient.Trainings.Update(task.redisKey, func(trainTask *tasks.TrainTask) {
		trainTask.TaskStatuses.Brill.Status = tasks.TaskStatusCompletedFailure
		trainTask.TaskStatuses.Brill.StartedAt = getFormattedNow()
		trainTask.TaskStatuses.Brill.CompletedAt = getFormattedNow()
		trainTask.TaskStatuses.Brill.Attempts += 1
		trainTask.TaskStatuses.Brill.ErrorMessages = append(
			trainTask.TaskStatuses.Brill.ErrorMessages,
			fmt.Sprintf(
				"Task has exceeded retries. (Attempts: %d, max retries: %d )",
				trainTask.TaskStatuses.Brill.Attempts,
				maxRetries,
			),
		)
	})
}

func (wrapper *redisClientWrapper) onTaskFailedWithError(task *Task, err error) error {
	return wrapper.tasksClient.Trainings.Update(task.redisKey, func(trainTask *tasks.TrainTask) {
		trainTask.TaskStatuses.Brill.Status = tasks.TaskStatusFailed
		trainTask.TaskStatuses.Brill.CompletedAt = getFormattedNow()
		trainTask.TaskStatuses.Brill.ErrorMessages = append(trainTask.TaskStatuses.Brill.ErrorMessages, err.Error())
	})
}

func (wrapper *redisClientWrapper) onTaskComplete(task *Task, summary *TrainingSummary) error {
	return wrapper.tasksClient.Trainings.Update(task.redisKey, func(trainTask *tasks.TrainTask) {
		if !trainTask.TaskStatuses.Brill.Status.Complete() {
			trainTask.TaskStatuses.Brill.Status = tasks.TaskStatusCompletedSuccess
		}
		trainTask.TaskStatuses.Brill.CompletedAt = getFormattedNow()
		trainTask.TaskStatuses.Brill.RulesFileKey = getRulesFileKey(task)
		trainTask.TaskStatuses.Brill.ModelFileKey = getModelFileKey(task)
		trainTask.TaskStatuses.Brill.ReportFileKey = getReportFileKey(task)
		if summary != nil {
			trainTask.TaskStatuses.Brill.RulesLearned = summary.RulesLearned
			trainTask.TaskStatuses.Brill.BaselineAccuracy = &summary.BaselineAccuracy
			trainTask.TaskStatuses.Brill.PatchedAccuracy = &summary.PatchedAccuracy
		}
	})
}

func (wrapper *redisClientWrapper) getTrainTask(redisKey string) (*tasks.TrainTask, error) {
	return wrapper.tasksClient.Trainings.Get(redisKey)
}

func (wrapper *redisClientWrapper) getJobTask(task *Task) (*tasks.JobTask, error) {
	return wrapper.tasksClient.Jobs.GetCached(task.trainTask.JobID)
}
