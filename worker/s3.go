package worker

import (
	"text2phenotype.com/tbl/s3client"
)

type s3Transactions interface {
	getCorpusData(task *Task) ([]byte, error)
	saveRulesFile(task *Task, data string) error
	saveModelFile(task *Task, data string) error
	saveReportFile(task *Task, data string) error
	close()
}

type s3ClientWrapper struct {
	s3Client *s3client.Client
}

func (wrapper *s3ClientWrapper) close() {
	wrapper.s3Client.Close()
}

func (wrapper *s3ClientWrapper) getCorpusData(task *Task) ([]byte, error) {
	return wrapper.s3Client.Download(task.trainTask.CorpusFileKey)
}

func (wrapper *s3ClientWrapper) saveRulesFile(task *Task, data string) error {
	return wrapper.s3Client.Upload(data, getRulesFileKey(task))
}

func (wrapper *s3ClientWrapper) saveModelFile(task *Task, data string) error {
	return wrapper.s3Client.Upload(data, getModelFileKey(task))
}

func (wrapper *s3ClientWrapper) saveReportFile(task *Task, data string) error {
	return wrapper.s3Client.Upload(data, getReportFileKey(task))
}
