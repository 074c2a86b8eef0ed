package types

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"text2phenotype.com/tbl/logger"
	"text2phenotype.com/tbl/utils"
)

const (
	// DefaultProperNounTag is the Brown corpus proper noun tag assigned to
	// unseen capitalized words.
	DefaultProperNounTag = "NP"

	DefaultMaxIterations  = 250
	DefaultScoringWorkers = 4
)

// RequestParams are the per-request overridable parameters of the tagging API.
type RequestParams struct {
	Model      string `yaml:"model" json:"model"`
	ApplyRules *bool  `yaml:"apply_rules" json:"apply_rules,omitempty"`
}

func (rParams RequestParams) IsEmpty() bool {
	return len(rParams.Model) == 0 && rParams.ApplyRules == nil
}

func (rParams RequestParams) GetHashCode() uint64 {
	applyRules := "1"
	if rParams.ApplyRules != nil && !*rParams.ApplyRules {
		applyRules = "0"
	}
	return utils.HashString(strings.ToLower(rParams.Model) + "|" + applyRules)
}

// TrainParams control one run of the rule learner.
type TrainParams struct {
	MaxIterations  int    `yaml:"max_iterations" json:"max_iterations"`
	ScoringWorkers int    `yaml:"scoring_workers" json:"scoring_workers"`
	ProperNounTag  string `yaml:"proper_noun_tag" json:"proper_noun_tag"`
}

// SplitParams give the corpus shares of the three partitions, by token
// count, taken in order with no shuffling.
type SplitParams struct {
	InitialShare float64 `yaml:"initial_share" json:"initial_share"`
	PatchShare   float64 `yaml:"patch_share" json:"patch_share"`
	TestShare    float64 `yaml:"test_share" json:"test_share"`
}

type ParamsConfig struct {
	Train TrainParams `yaml:"train" json:"train"`
	Split SplitParams `yaml:"split" json:"split"`
}

// Configuration is one named training setup loaded from a YAML file.
type Configuration struct {
	Name          string        `json:"name"`
	FilePath      string        `json:"file_path"`
	RequestParams RequestParams `yaml:"request_params" json:"request_params"`
	Params        ParamsConfig  `yaml:"params" json:"params"`
}

func (cfg *Configuration) applyDefaults() {
	if cfg.Params.Train.MaxIterations <= 0 {
		cfg.Params.Train.MaxIterations = DefaultMaxIterations
	}
	if cfg.Params.Train.ScoringWorkers <= 0 {
		cfg.Params.Train.ScoringWorkers = DefaultScoringWorkers
	}
	if cfg.Params.Train.ProperNounTag == "" {
		cfg.Params.Train.ProperNounTag = DefaultProperNounTag
	}
	if cfg.Params.Split.InitialShare == 0 && cfg.Params.Split.PatchShare == 0 && cfg.Params.Split.TestShare == 0 {
		cfg.Params.Split = SplitParams{InitialShare: 0.8, PatchShare: 0.1, TestShare: 0.1}
	}
}

func (cfg Configuration) validate() error {
	split := cfg.Params.Split
	if split.InitialShare <= 0 || split.PatchShare <= 0 || split.TestShare < 0 {
		return errors.New("initial and patch shares must be positive")
	}
	if total := split.InitialShare + split.PatchShare + split.TestShare; total > 1.0+1e-9 {
		return fmt.Errorf("partition shares sum to %v, must not exceed 1", total)
	}
	return nil
}

// LoadConfigurations reads every *.yaml file in dirPath into a Configuration.
// Files that fail to parse or validate are logged and skipped.
func LoadConfigurations(dirPath string) ([]Configuration, error) {
	brlLogger := logger.NewLogger("LoadConfigurations")

	files, err := ioutil.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	configChan := make(chan Configuration, len(files))
	for _, f := range files {
		// Skip dirs and non-yaml files
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}

		wg.Add(1)
		go func(file os.FileInfo) {
			defer wg.Done()
			cfg := Configuration{
				Name:     strings.Split(file.Name(), ".yaml")[0],
				FilePath: path.Join(dirPath, file.Name()),
			}
			buf, err := ioutil.ReadFile(cfg.FilePath)
			if err != nil {
				brlLogger.Err(err).Str("file", cfg.FilePath).Msg("Failed to read configuration")
				return
			}
			if err := yaml.Unmarshal(buf, &cfg); err != nil {
				brlLogger.Err(err).Str("file", cfg.FilePath).Msg("Failed to parse configuration")
				return
			}
			cfg.applyDefaults()
			if err := cfg.validate(); err != nil {
				brlLogger.Err(err).Str("file", cfg.FilePath).Msg("Invalid configuration")
				return
			}

			configChan <- cfg
		}(f)
	}

	go func() {
		wg.Wait()
		close(configChan)
	}()

	configs := make([]Configuration, 0, len(configChan))
	for cfg := range configChan {
		configs = append(configs, cfg)
	}
	return configs, nil
}
