package res1d

import (
	"fmt"

	"github.com/google/uuid"
)

// MergeInput holds the input parameters of a merge operation. Only
// FilePaths is required. A nil Store defaults to the local file system; an
// empty DestinationPath leaves the merge result in memory only.
type MergeInput struct {
	FilePaths       []string
	DestinationPath string
	Store           ResultStore
	Logger          *MergeLogger
	Reporter        StatusReporter
}

// Merge loads the input result files, consolidates them according to the
// first file's result type and optionally saves the merged structure to
// the destination path. The merged data is written into the first file's
// in-memory structure, which is returned.
func Merge(input MergeInput) (*ResultData, error) {
	if len(input.FilePaths) == 0 {
		return nil, ErrEmptyInput
	}
	store := input.Store
	if store == nil {
		store = NewFileResultStore()
	}
	logger := input.Logger
	if logger == nil {
		logger = NewMergeLogger(MergeLoggerInput{RunID: uuid.New().String()})
	}

	logger.Stage(StageLoad, "files", len(input.FilePaths))
	results := make([]*ResultData, len(input.FilePaths))
	for i, path := range input.FilePaths {
		rd, err := LoadResultDataFrom(store, path)
		if err != nil {
			return nil, stageError(StageLoad, path, err)
		}
		results[i] = rd
	}

	merged, err := MergeResultData(results, logger, input.Reporter)
	if err != nil {
		return nil, err
	}

	if input.DestinationPath != "" {
		logger.Stage(StageSave, "path", input.DestinationPath)
		if err := merged.SaveTo(store, input.DestinationPath); err != nil {
			return nil, stageError(StageSave, input.DestinationPath, err)
		}
	}
	return merged, nil
}

// MergeFiles merges the result files at the given paths into a new file at
// the destination path on the local file system.
func MergeFiles(filePaths []string, destinationPath string) (*ResultData, error) {
	return Merge(MergeInput{FilePaths: filePaths, DestinationPath: destinationPath})
}

// MergeLTS merges already loaded LTS result structures. The destination is
// the first structure's own handle; saving is the caller's separate step.
func MergeLTS(results []*ResultData) (*ResultData, error) {
	if len(results) == 0 {
		return nil, ErrEmptyInput
	}
	if !results[0].IsLTS() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedResultType, results[0].ResultType)
	}
	return MergeResultData(results, nil, nil)
}

// MergeResultData selects a merge policy from the first structure's result
// type and runs the merge over the already loaded inputs, in input order.
func MergeResultData(results []*ResultData, logger *MergeLogger, reporter StatusReporter) (*ResultData, error) {
	if len(results) == 0 {
		return nil, ErrEmptyInput
	}
	if logger == nil {
		logger = NewMergeLogger(MergeLoggerInput{RunID: uuid.New().String()})
	}

	switch resultType := results[0].ResultType; resultType {
	case LTSEvents:
		return newLTSMerger(results, extremePolicy{}, logger, reporter).merge()
	case LTSAnnual, LTSMonthly:
		return newLTSMerger(results, periodicPolicy{}, logger, reporter).merge()
	case ResultTypeHD, ResultTypeRR, ResultTypeHDRR:
		return mergeRegular(results, logger, reporter)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedResultType, resultType)
	}
}

// mergeRegular concatenates non-statistical result files time step by time
// step. The first file becomes the destination; every other file
// contributes its steps after the first one, which is assumed identical to
// the destination's current last step. All inputs must share the same
// item and element layout; that precondition is the caller's to uphold.
func mergeRegular(results []*ResultData, logger *MergeLogger, reporter StatusReporter) (*ResultData, error) {
	report(reporter, logger, StatusReport{Status: COMPUTING, Stage: StageMergeEntries})
	dest := results[0]
	for _, src := range results[1:] {
		logger.Stage(StageMergeEntries, "file", src.Connection.FilePath)
		if err := appendTimeSteps(dest, src); err != nil {
			report(reporter, logger, StatusReport{Status: FAILED, Stage: StageMergeEntries})
			return nil, stageError(StageMergeEntries, src.Connection.FilePath, err)
		}
	}
	report(reporter, logger, StatusReport{Status: SUCCEEDED, Progress: 100})
	return dest, nil
}

func appendTimeSteps(dest *ResultData, src *ResultData) error {
	if len(src.TimesList) < 2 {
		return nil
	}
	if len(dest.TimesList) == 0 {
		return fmt.Errorf("destination has no time steps to append after")
	}
	if len(src.DataItems) != len(dest.DataItems) {
		return fmt.Errorf("item layout mismatch: destination has %d items, source has %d", len(dest.DataItems), len(src.DataItems))
	}

	// Timestamps shift by the destination's elapsed span so the appended
	// period continues where the destination currently ends.
	destStart := dest.TimesList[0]
	elapsed := dest.TimesList[len(dest.TimesList)-1].Sub(destStart)
	srcStart := src.TimesList[0]

	for step := 1; step < len(src.TimesList); step++ {
		for i, item := range dest.DataItems {
			srcItem := src.DataItems[i]
			row := make([]float64, item.NumberOfElements())
			for element := range row {
				value, err := srcItem.TimeData.GetValue(step, element)
				if err != nil {
					return fmt.Errorf("reading item %s: %w", srcItem.Quantity.ID, err)
				}
				row[element] = value
			}
			if err := item.TimeData.AddTimeStep(row); err != nil {
				return fmt.Errorf("appending to item %s: %w", item.Quantity.ID, err)
			}
		}
		dest.TimesList = append(dest.TimesList, destStart.Add(elapsed).Add(src.TimesList[step].Sub(srcStart)))
	}
	return nil
}

// report delivers a status update when a reporter is attached. Failures
// are logged and otherwise ignored.
func report(reporter StatusReporter, logger *MergeLogger, statusReport StatusReport) {
	if reporter == nil {
		return
	}
	if err := reporter.Report(statusReport); err != nil {
		logger.Warn("failed to deliver status report", "error", err.Error())
	}
}
