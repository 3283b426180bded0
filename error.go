package res1d

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when a merge is requested with no input
	// result files. It is reported before any I/O happens.
	ErrEmptyInput = errors.New("no result files supplied")

	// ErrUnsupportedResultType is returned by the merger factory when no
	// merge policy is registered for the declared result type.
	ErrUnsupportedResultType = errors.New("no merge policy for result type")

	// ErrMissingCompanionQuantity marks a primary statistic whose derived
	// companion (Time, Count or Duration) is absent in a source file. The
	// merge recovers by skipping that entry's contribution from the file.
	ErrMissingCompanionQuantity = errors.New("missing companion quantity")
)

// stageError wraps a fatal failure with the merge stage and the file it
// happened on, so the caller can tell where the merge aborted.
func stageError(stage Stage, filePath string, err error) error {
	if filePath == "" {
		return fmt.Errorf("merge failed at stage %s: %w", stage, err)
	}
	return fmt.Errorf("merge failed at stage %s on %s: %w", stage, filePath, err)
}
