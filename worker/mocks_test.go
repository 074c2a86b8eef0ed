package worker

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"text2phenotype.com/tbl/tasks"
)

type failingMethod struct {
	fail bool
}

type withValue struct {
	fail          bool
	returnedValue interface{}
}

type redisMock struct {
	config redisMockConfig
	calls  redisMockCalls
}

type redisMockConfig struct {
	getTrainTask          withValue
	getJobTask            withValue
	onTaskCancelled       failingMethod
	onTaskStarted         failingMethod
	onTaskExceededRetries failingMethod
	onTaskFailedWithError failingMethod
	onTaskComplete        failingMethod
}

type redisMockCalls struct {
	getTrainTask          bool
	getJobTask            bool
	onTaskCancelled       bool
	onTaskStarted         bool
	onTaskExceededRetries bool
	onTaskFailedWithError bool
	onTaskComplete        bool
}

type rmqMock struct {
	config rmqMockConfig
	calls  rmqMockCalls
}

type rmqMockConfig struct {
	pingSequencer       failingMethod
	acknowledgeDelivery failingMethod
}

type rmqMockCalls struct {
	pingSequencer       bool
	acknowledgeDelivery bool
	rejectDelivery      bool
}

type s3Mock struct {
	config s3MockConfig
	calls  s3MockCalls
}

type s3MockConfig struct {
	getCorpusData  withValue
	saveRulesFile  failingMethod
	saveModelFile  failingMethod
	saveReportFile failingMethod
}

type s3MockCalls struct {
	getCorpusData  bool
	saveRulesFile  bool
	saveModelFile  bool
	saveReportFile bool
}

func (mock *s3Mock) close() {}

func (mock *rmqMock) close() {}

func (mock *redisMock) close() {}

var errMocked = errors.New("mocked failure")

func (mock *redisMock) getTrainTask(redisKey string) (*tasks.TrainTask, error) {
	mock.calls.getTrainTask = true
	if mock.config.getTrainTask.fail {
		return nil, errMocked
	}
	return mock.config.getTrainTask.returnedValue.(*tasks.TrainTask), nil
}

func (mock *redisMock) getJobTask(task *Task) (*tasks.JobTask, error) {
	mock.calls.getJobTask = true
	if mock.config.getJobTask.fail {
		return nil, errMocked
	}
	return mock.config.getJobTask.returnedValue.(*tasks.JobTask), nil
}

func (mock *redisMock) onTaskStarted(task *Task) error {
	mock.calls.onTaskStarted = true
	if mock.config.onTaskStarted.fail {
		return errMocked
	}
	return nil
}

func (mock *redisMock) onTaskCancelled(task *Task, errorMessages ...string) error {
	mock.calls.onTaskCancelled = true
	if mock.config.onTaskCancelled.fail {
		return errMocked
	}
	return nil
}

func (mock *redisMock) onTaskExceededRetries(task *Task, maxRetries int) error {
	mock.calls.onTaskExceededRetries = true
	if mock.config.onTaskExceededRetries.fail {
		return errMocked
	}
	return nil
}

func (mock *redisMock) onTaskFailedWithError(task *Task, err error) error {
	mock.calls.onTaskFailedWithError = true
	if mock.config.onTaskFailedWithError.fail {
		return errMocked
	}
	return nil
}

func (mock *redisMock) onTaskComplete(task *Task, summary *TrainingSummary) error {
	mock.calls.onTaskComplete = true
	if mock.config.onTaskComplete.fail {
		return errMocked
	}
	return nil
}

func (mock *rmqMock) pingSequencer(task *Task, message Message) error {
	mock.calls.pingSequencer = true
	if mock.config.pingSequencer.fail {
		return errMocked
	}
	return nil
}

func (mock *rmqMock) acknowledgeDelivery(delivery *amqp.Delivery) error {
	mock.calls.acknowledgeDelivery = true
	if mock.config.acknowledgeDelivery.fail {
		return errMocked
	}
	return nil
}

func (mock *rmqMock) rejectDelivery(delivery *amqp.Delivery, brlLogger *zerolog.Logger) {
	mock.calls.rejectDelivery = true
}

func (mock *rmqMock) getDeliveriesCh() <-chan amqp.Delivery {
	return nil
}

func (mock *rmqMock) getReqChanErrorsCh() <-chan *amqp.Error {
	return nil
}

func (mock *rmqMock) getRespChanErrorsCh() <-chan *amqp.Error {
	return nil
}

func (mock *s3Mock) getCorpusData(task *Task) ([]byte, error) {
	mock.calls.getCorpusData = true
	if mock.config.getCorpusData.fail {
		return nil, errMocked
	}
	return mock.config.getCorpusData.returnedValue.([]byte), nil
}

func (mock *s3Mock) saveRulesFile(task *Task, data string) error {
	mock.calls.saveRulesFile = true
	if mock.config.saveRulesFile.fail {
		return errMocked
	}
	return nil
}

func (mock *s3Mock) saveModelFile(task *Task, data string) error {
	mock.calls.saveModelFile = true
	if mock.config.saveModelFile.fail {
		return errMocked
	}
	return nil
}

func (mock *s3Mock) saveReportFile(task *Task, data string) error {
	mock.calls.saveReportFile = true
	if mock.config.saveReportFile.fail {
		return errMocked
	}
	return nil
}
