package brill

import (
	"sort"
	"sync"

	"text2phenotype.com/tbl/logger"
	"text2phenotype.com/tbl/types"
)

// LearnOptions bound one learner run. Zero values fall back to the
// configuration defaults.
type LearnOptions struct {
	// MaxIterations is the safety valve against corpora whose gains shrink
	// asymptotically; natural termination is the first iteration with no
	// positive-gain candidate.
	MaxIterations int
	// Workers is the number of goroutines scoring candidates within one
	// iteration. Scoring is side-effect-free, and the reduction is
	// deterministic regardless of worker count or scheduling.
	Workers int
}

// LearnResult is everything a learner run produces. Rules is ordered and
// replayable via ApplyAll against any other corpus.
type LearnResult struct {
	Rules types.RuleSet
	// TagSet is the vocabulary the rules range over: training tags plus any
	// gold tags only the patch corpus exhibited.
	TagSet types.TagSet
	// Final is the patch corpus predicted sequence after all accepted rules.
	Final []string
	// InitialErrors is the baseline error count on the patch corpus.
	InitialErrors int
	// ErrorTrace holds the error count after each accepted rule; it is
	// strictly decreasing.
	ErrorTrace []int
}

type tagPair struct {
	from string
	to   string
}

// Learn greedily grows an ordered rule set on the patch corpus. Each
// iteration derives the error classes actually occurring between the current
// prediction and gold, instantiates every template candidate for them,
// scores all candidates against the current sequence, and commits the single
// best one. Ties on gain break by rule signature, so identical corpora
// always yield byte-identical rule sets.
func Learn(lexicon *Lexicon, patch types.TaggedCorpus, opts LearnOptions) (LearnResult, error) {
	brlLogger := logger.NewLogger("Rule learner")

	if opts.MaxIterations <= 0 {
		opts.MaxIterations = types.DefaultMaxIterations
	}
	if opts.Workers <= 0 {
		opts.Workers = types.DefaultScoringWorkers
	}

	gold := patch.Tags()
	x := lexicon.TagAll(patch.Words())
	tagSet := lexicon.TagSet()
	for _, tag := range gold {
		// gold tags of the patch corpus may include tags the training
		// partition never exhibited
		tagSet.Add(tag)
	}

	errorCount, err := Errors(x, gold)
	if err != nil {
		return LearnResult{}, err
	}

	result := LearnResult{
		TagSet:        tagSet,
		Final:         x,
		InitialErrors: errorCount,
	}
	brlLogger.Info().
		Int("tokens", len(gold)).
		Int("baseline_errors", errorCount).
		Msg("Starting rule search")

	for iteration := 0; iteration < opts.MaxIterations; iteration++ {
		candidates := candidatePool(x, gold, tagSet)
		if len(candidates) == 0 {
			break
		}

		gains := scoreCandidates(candidates, x, gold, errorCount, opts.Workers)

		bestIndex, bestGain := -1, 0
		for i, candidate := range candidates {
			switch {
			case gains[i] > bestGain:
				bestIndex, bestGain = i, gains[i]
			case gains[i] == bestGain && bestIndex >= 0 &&
				candidate.Compare(candidates[bestIndex]) < 0:
				bestIndex = i
			}
		}
		if bestIndex < 0 {
			break
		}

		best := candidates[bestIndex]
		x = Apply(best, x)
		errorCount -= bestGain
		result.Rules = append(result.Rules, best)
		result.ErrorTrace = append(result.ErrorTrace, errorCount)
		result.Final = x

		brlLogger.Debug().
			Str("rule", best.String()).
			Int("gain", bestGain).
			Int("errors", errorCount).
			Int("iteration", iteration+1).
			Msg("Accepted rule")
	}

	brlLogger.Info().
		Int("rules", len(result.Rules)).
		Int("errors", errorCount).
		Msg("Rule search finished")
	return result, nil
}

// candidatePool instantiates templates for every (wrong, correct) pair
// occurring among current mismatches. The pool is computed fresh each
// iteration; yesterday's candidates are never reused.
func candidatePool(x, gold []string, tagSet types.TagSet) []types.Rule {
	seen := make(map[tagPair]struct{})
	for i := range x {
		if x[i] != gold[i] {
			seen[tagPair{from: x[i], to: gold[i]}] = struct{}{}
		}
	}

	pairs := make([]tagPair, 0, len(seen))
	for pair := range seen {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].from != pairs[j].from {
			return pairs[i].from < pairs[j].from
		}
		return pairs[i].to < pairs[j].to
	})

	var pool []types.Rule
	for _, pair := range pairs {
		pool = append(pool, Candidates(pair.from, pair.to, tagSet)...)
	}
	return pool
}

// scoreCandidates evaluates every candidate against the current sequence
// concurrently. Workers own disjoint index ranges of the result slice, so no
// locking is needed; the caller reduces sequentially.
func scoreCandidates(candidates []types.Rule, x, gold []string, errorCount, workers int) []int {
	gains := make([]int, len(candidates))
	if workers > len(candidates) {
		workers = len(candidates)
	}

	var wg sync.WaitGroup
	chunk := (len(candidates) + workers - 1) / workers
	for start := 0; start < len(candidates); start += chunk {
		end := start + chunk
		if end > len(candidates) {
			end = len(candidates)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				newX := Apply(candidates[i], x)
				newErrors, err := Errors(newX, gold)
				if err != nil {
					// Apply preserves length, so this cannot happen.
					panic(err)
				}
				gains[i] = errorCount - newErrors
			}
		}(start, end)
	}
	wg.Wait()

	return gains
}

// Replay validates a learned rule set against a tag set, baseline-tags the
// words and applies every rule in order. This is how a rule artifact is
// evaluated against a held-out corpus.
func Replay(rules types.RuleSet, lexicon *Lexicon, tagSet types.TagSet, words []string) ([]string, error) {
	if err := rules.Validate(tagSet); err != nil {
		return nil, err
	}
	return ApplyAll(rules, lexicon.TagAll(words)), nil
}
