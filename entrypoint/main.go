package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"text2phenotype.com/tbl/api"
	"text2phenotype.com/tbl/brill"
	"text2phenotype.com/tbl/corpus"
	"text2phenotype.com/tbl/logger"
	"text2phenotype.com/tbl/types"
	"text2phenotype.com/tbl/utils"
	"text2phenotype.com/tbl/worker"
)

type Config struct {
	ConfigPath    string `envconfig:"BRL_CONFIG_PATH" required:"true"`
	ModelsPath    string `envconfig:"BRL_MODELS_PATH"`
	RestAPIActive bool   `envconfig:"BRL_REST_API_ACTIVE" default:"false"`
	RestAPIPort   string `envconfig:"BRL_REST_API_PORT" default:"10000"`
}

const configLoadMaxRetries = 5

func main() {
	logger.SetupLogging()
	brlLogger := logger.NewLogger("Main")
	fatalErrLogger := brlLogger.Fatal().Caller()
	trainFile := flag.String("train", "", "tagged corpus file for a local one-shot training run")
	trainConfig := flag.String("config", "default", "configuration name for -train")
	flag.Parse()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		fatalErrLogger.Err(err).Msg("Failed to read environment")
		os.Exit(1)
	}

	// local one-shot training, no broker involved
	if *trainFile != "" {
		if err := trainLocal(config.ConfigPath, *trainConfig, *trainFile); err != nil {
			fatalErrLogger.Err(err).Msg("Local training failed")
			os.Exit(1)
		}
		return
	}

	configsChannel := make(chan []types.Configuration)
	go func() {
		for retry := 0; retry < configLoadMaxRetries; retry++ {
			cfgs, err := types.LoadConfigurations(config.ConfigPath)
			if err != nil {
				brlLogger.Err(err).Msg("Failed to load configurations. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			brlLogger.Info().Msgf("Loaded %d configurations", len(cfgs))
			// The store stays unlocked here: the worker interns corpus
			// words as train tasks arrive, not at startup.
			configsChannel <- cfgs
			return
		}
		fatalErrLogger.Msg("Could not load configurations after 5 retries, exiting")
		os.Exit(1)
	}()

	// block until configurations load
	cfgs := <-configsChannel

	if config.RestAPIActive {
		go func() {
			brlLogger.Info().Msg("Starting API service")
			models, err := loadModels(config.ModelsPath)
			if err != nil {
				fatalErrLogger.Err(err).Msg("Failed to load model artifacts")
				os.Exit(1)
			}
			brlLogger.Info().Msgf("Loaded %d models", len(models))
			apiRequest := &api.Request{
				Models:   models,
				Defaults: defaultRequestParams(cfgs),
			}
			http.HandleFunc("/", apiRequest.ProcessData)
			host := fmt.Sprintf(":%s", config.RestAPIPort)
			brlLogger.Info().Msgf("REST API on %s", host)
			err = http.ListenAndServe(host, nil)
			fatalErrLogger.Err(err).Msg("REST API stopped with error")
		}()
	}

	brlLogger.Info().Msg("Start Brill Worker")
	for {
		rmqWorker, err := worker.New(cfgs)
		if err != nil {
			brlLogger.Fatal().Err(err).Msg("Could not initialize RMQ worker")
			os.Exit(1)
		}
		err = rmqWorker.StartWorker()
		if err != nil {
			brlLogger.Err(err).Msg("Worker returned with error. Launching new in 5 seconds")
			time.Sleep(5 * time.Second)
		}
	}
}

// trainLocal runs one training pass against a corpus file on disk and writes
// the rules and model artifacts next to it.
func trainLocal(configPath, configName, corpusPath string) error {
	brlLogger := logger.NewLogger("Train")

	cfgs, err := types.LoadConfigurations(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configurations: %w", err)
	}
	var cfg *types.Configuration
	for i := range cfgs {
		if cfgs[i].Name == configName {
			cfg = &cfgs[i]
			break
		}
	}
	if cfg == nil {
		return fmt.Errorf("unknown configuration %q", configName)
	}

	tagged, err := corpus.LoadFile(corpusPath)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	utils.GlobalStringStore().Lock()
	parts, err := corpus.Split(tagged, cfg.Params.Split)
	if err != nil {
		return err
	}
	brlLogger.Info().
		Int("tokens", len(tagged)).
		Int("initial", len(parts.Initial)).
		Int("patch", len(parts.Patch)).
		Int("test", len(parts.Test)).
		Msg("Corpus loaded and split")

	lexicon := brill.NewLexicon(parts.Initial, cfg.Params.Train.ProperNounTag)
	result, err := brill.Learn(lexicon, parts.Patch, brill.LearnOptions{
		MaxIterations: cfg.Params.Train.MaxIterations,
		Workers:       cfg.Params.Train.ScoringWorkers,
	})
	if err != nil {
		return err
	}

	testWords := parts.Test.Words()
	testTags := parts.Test.Tags()
	baselineAcc, err := brill.Accuracy(lexicon.TagAll(testWords), testTags)
	if err != nil {
		return err
	}
	patched, err := brill.Replay(result.Rules, lexicon, result.TagSet, testWords)
	if err != nil {
		return err
	}
	patchedAcc, err := brill.Accuracy(patched, testTags)
	if err != nil {
		return err
	}
	brlLogger.Info().
		Int("rules", len(result.Rules)).
		Float64("baseline_accuracy", baselineAcc).
		Float64("patched_accuracy", patchedAcc).
		Msg("Training finished")

	base := strings.TrimSuffix(corpusPath, filepath.Ext(corpusPath))
	rulesData, err := result.Rules.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(base+".brill_rules.yaml", rulesData, 0644); err != nil {
		return err
	}
	modelData, err := brill.NewModel(lexicon, result).Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(base+".brill_model.json", modelData, 0644); err != nil {
		return err
	}
	brlLogger.Info().Str("prefix", base).Msg("Artifacts written")
	return nil
}

// loadModels reads every model artifact in dirPath, keyed by file name with
// the artifact suffix stripped.
func loadModels(dirPath string) (map[string]brill.Model, error) {
	const suffix = ".brill_model.json"
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}
	models := make(map[string]brill.Model)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		model, err := brill.LoadModelFromFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", entry.Name(), err)
		}
		models[strings.TrimSuffix(entry.Name(), suffix)] = model
	}
	return models, nil
}

func defaultRequestParams(cfgs []types.Configuration) types.RequestParams {
	for _, cfg := range cfgs {
		if !cfg.RequestParams.IsEmpty() {
			return cfg.RequestParams
		}
	}
	return types.RequestParams{}
}
