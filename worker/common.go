package worker

import (
	"fmt"
	"path"
	"time"
)

func artifactKey(task *Task, fileName string) string {
	return path.Join(
		"processed",
		"models",
		task.trainTask.JobID,
		"trainings",
		task.redisKey,
		fileName,
	)
}

func getRulesFileKey(task *Task) string {
	return artifactKey(task, fmt.Sprintf("%s.brill_rules.yaml", task.redisKey))
}

func getModelFileKey(task *Task) string {
	return artifactKey(task, fmt.Sprintf("%s.brill_model.json", task.redisKey))
}

func getReportFileKey(task *Task) string {
	return artifactKey(task, fmt.Sprintf("%s.brill_report.json", task.redisKey))
}

const RFC3339Micro = "2006-01-02T15:04:05.000000-07:00"

func getFormattedNow() *string {
	now := time.Now().UTC().Format(RFC3339Micro)
	return &now
}
