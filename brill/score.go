package brill

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch reports predicted and gold sequences of different
// lengths. Rules only relabel, never insert or delete, so this is a contract
// violation by the caller, not a recoverable condition.
var ErrLengthMismatch = errors.New("predicted and gold sequences differ in length")

// Errors counts the positions where the predicted tag disagrees with gold.
func Errors(predicted, gold []string) (int, error) {
	if len(predicted) != len(gold) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(predicted), len(gold))
	}

	count := 0
	for i := range predicted {
		if predicted[i] != gold[i] {
			count++
		}
	}
	return count, nil
}

// Accuracy returns the share of agreeing positions as a percentage. An empty
// pair of sequences counts as fully accurate.
func Accuracy(predicted, gold []string) (float64, error) {
	mismatches, err := Errors(predicted, gold)
	if err != nil {
		return 0, err
	}
	if len(gold) == 0 {
		return 100.0, nil
	}
	return 100.0 * float64(len(gold)-mismatches) / float64(len(gold)), nil
}
