package res1d

type Status string

const (
	COMPUTING Status = "Computing"
	FAILED    Status = "Failed"
	SUCCEEDED Status = "Succeeded"
)

// Stage names one step of the merge state machine, in execution order.
type Stage string

const (
	StageLoad          Stage = "Load"
	StageCreateMaps    Stage = "CreateMaps"
	StageMergeEntries  Stage = "MergeDataEntries"
	StageSortResults   Stage = "SortResults"
	StageProcess       Stage = "ProcessResults"
	StageUpdateTimes   Stage = "UpdateTimesList"
	StageUpdateResults Stage = "UpdateResultData"
	StageSave          Stage = "SaveToFile"
)

type StatusReport struct {
	RunID    string `json:"run_id,omitempty"`
	Status   Status `json:"status"`
	Stage    Stage  `json:"stage,omitempty"`
	Progress int    `json:"progress,omitempty"`
}

// StatusReporter receives progress updates while a merge runs. Reporting is
// best effort; a failed report never aborts the merge.
type StatusReporter interface {
	Report(report StatusReport) error
}
