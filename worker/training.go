package worker

import (
	"encoding/json"
	"fmt"

	"text2phenotype.com/tbl/brill"
	"text2phenotype.com/tbl/corpus"
	"text2phenotype.com/tbl/utils"
)

// TrainingSummary is persisted into the redis task document and, as JSON,
// next to the artifacts in S3.
type TrainingSummary struct {
	ConfigName       string  `json:"config_name"`
	CorpusTokens     int     `json:"corpus_tokens"`
	RulesLearned     int     `json:"rules_learned"`
	RulesFingerprint uint64  `json:"rules_fingerprint"`
	BaselineErrors   int     `json:"baseline_errors"`
	ErrorTrace       []int   `json:"error_trace"`
	BaselineAccuracy float64 `json:"baseline_accuracy"`
	PatchedAccuracy  float64 `json:"patched_accuracy"`
}

// runTraining executes one full train request: fetch corpus, split, build
// the baseline lexicon, learn rules on the patch partition and measure
// generalization on the held-out test partition.
func (worker *Worker) runTraining(task *Task) (summary *TrainingSummary, err error) {
	defer utils.RecoverWithError(&err)

	cfg, ok := worker.configs[task.trainTask.ConfigName]
	if !ok {
		return nil, fmt.Errorf("unknown configuration %q", task.trainTask.ConfigName)
	}

	task.brlLogger.Info().Msgf("Processing message from RMQ, attempt # %d", task.trainTask.TaskStatuses.Brill.Attempts)
	data, err := worker.s3.getCorpusData(task)
	if err != nil {
		task.brlLogger.Err(err).Caller().Msg("Could not fetch corpus data from s3")
		return nil, fmt.Errorf("failed fetch corpus from s3: %w", err)
	}

	fullCorpus, err := corpus.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse corpus: %w", err)
	}
	parts, err := corpus.Split(fullCorpus, cfg.Params.Split)
	if err != nil {
		return nil, err
	}

	lexicon := brill.NewLexicon(parts.Initial, cfg.Params.Train.ProperNounTag)
	result, err := brill.Learn(lexicon, parts.Patch, brill.LearnOptions{
		MaxIterations: cfg.Params.Train.MaxIterations,
		Workers:       cfg.Params.Train.ScoringWorkers,
	})
	if err != nil {
		return nil, err
	}

	testGold := parts.Test.Tags()
	baselineTest := lexicon.TagAll(parts.Test.Words())
	baselineAccuracy, err := brill.Accuracy(baselineTest, testGold)
	if err != nil {
		return nil, err
	}
	patchedTest, err := brill.Replay(result.Rules, lexicon, result.TagSet, parts.Test.Words())
	if err != nil {
		return nil, err
	}
	patchedAccuracy, err := brill.Accuracy(patchedTest, testGold)
	if err != nil {
		return nil, err
	}

	summary = &TrainingSummary{
		ConfigName:       cfg.Name,
		CorpusTokens:     len(fullCorpus),
		RulesLearned:     len(result.Rules),
		RulesFingerprint: result.Rules.Fingerprint(),
		BaselineErrors:   result.InitialErrors,
		ErrorTrace:       result.ErrorTrace,
		BaselineAccuracy: baselineAccuracy,
		PatchedAccuracy:  patchedAccuracy,
	}
	task.brlLogger.Info().
		Int("rules", summary.RulesLearned).
		Float64("baseline_accuracy", baselineAccuracy).
		Float64("patched_accuracy", patchedAccuracy).
		Msg("Finished training, saving artifacts to s3")

	if err = worker.saveArtifacts(task, lexicon, result, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (worker *Worker) saveArtifacts(task *Task, lexicon *brill.Lexicon, result brill.LearnResult, summary *TrainingSummary) error {
	rulesData, err := result.Rules.Encode()
	if err != nil {
		return err
	}
	if err = worker.s3.saveRulesFile(task, string(rulesData)); err != nil {
		task.brlLogger.Err(err).Msg("Got error while trying to save rules artifact")
		return err
	}

	modelData, err := brill.NewModel(lexicon, result).Encode()
	if err != nil {
		return err
	}
	if err = worker.s3.saveModelFile(task, string(modelData)); err != nil {
		task.brlLogger.Err(err).Msg("Got error while trying to save model artifact")
		return err
	}

	reportData, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	if err = worker.s3.saveReportFile(task, string(reportData)); err != nil {
		task.brlLogger.Err(err).Msg("Got error while trying to save training report")
		return err
	}
	return nil
}
