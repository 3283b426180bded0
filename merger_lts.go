package res1d

import (
	"errors"
	"time"
)

// eventTimeEpoch anchors the synthetic time axis of merged extreme
// results. Slot i of the axis stands for ranked event i, not a wall-clock
// moment; the real occurrence time lives in the companion Time quantity.
var eventTimeEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// mergePolicy captures what differs between the two LTS result kinds. The
// orchestrator is policy-agnostic; the policy decides how entries merge,
// how event lists order, how duplicates collapse and how the time axis is
// rebuilt.
type mergePolicy interface {
	// isDerivedQuantity reports whether a quantity is a companion of a
	// primary statistic. Companions are never merged directly; they are
	// pulled in while merging their primary.
	isDerivedQuantity(q Quantity) bool

	// mergeEntry appends the events of one primary entry of one source
	// file to the accumulated list, reading that file's companion
	// quantities through its own entry map.
	mergeEntry(src *ResultData, entries entryMap, primary DataEntry, list *EventList) error

	// compare orders two events for the final sort.
	compare(a, b Event) int

	// processResults post-processes the sorted lists in place.
	processResults(lists map[EntryID]*EventList)

	// updateTimesList rebuilds the destination's time axis from the final
	// lists. It reports false when no entry had any events and the axis
	// was left untouched.
	updateTimesList(rd *ResultData, lists map[EntryID]*EventList) bool

	// writeEntry writes one final event list back into the destination
	// entry and its companions.
	writeEntry(entries entryMap, target DataEntry, list *EventList) error
}

// ltsMerger consolidates long-term statistics result files. The per-entry
// event lists are keyed by the first file's entries; every input file
// contributes through its own entry map because physical array layout can
// differ file to file.
type ltsMerger struct {
	results  []*ResultData
	policy   mergePolicy
	entries  entryMap
	lists    map[EntryID]*EventList
	logger   *MergeLogger
	reporter StatusReporter
}

func newLTSMerger(results []*ResultData, policy mergePolicy, logger *MergeLogger, reporter StatusReporter) *ltsMerger {
	return &ltsMerger{
		results:  results,
		policy:   policy,
		logger:   logger,
		reporter: reporter,
	}
}

// merge runs the stages of the merge state machine in strict order and
// returns the first input structure holding the consolidated result.
func (m *ltsMerger) merge() (*ResultData, error) {
	report(m.reporter, m.logger, StatusReport{Status: COMPUTING, Stage: StageCreateMaps})
	m.createMaps()

	if err := m.mergeDataEntries(); err != nil {
		report(m.reporter, m.logger, StatusReport{Status: FAILED, Stage: StageMergeEntries})
		return nil, err
	}

	m.sortResults()

	m.logger.Stage(StageProcess)
	m.policy.processResults(m.lists)

	m.updateTimesList()

	if err := m.updateResultData(); err != nil {
		report(m.reporter, m.logger, StatusReport{Status: FAILED, Stage: StageUpdateResults})
		return nil, err
	}

	report(m.reporter, m.logger, StatusReport{Status: SUCCEEDED, Progress: 100})
	return m.results[0], nil
}

// createMaps builds the write-target entry map and one empty event list
// per entry from the first input file.
func (m *ltsMerger) createMaps() {
	m.logger.Stage(StageCreateMaps)
	m.entries = m.results[0].entryMap()
	m.lists = make(map[EntryID]*EventList, len(m.entries))
	for id := range m.entries {
		m.lists[id] = NewEventList(id)
	}
}

// mergeDataEntries walks every input file in caller order and appends each
// primary entry's events to the accumulated lists. Overlapping periods are
// not deduplicated here; the policy handles collapsing later. A missing
// companion quantity skips that entry's contribution from that file only.
func (m *ltsMerger) mergeDataEntries() error {
	for i, rd := range m.results {
		m.logger.Stage(StageMergeEntries, "file", rd.Connection.FilePath, "index", i)
		fileEntries := rd.entryMap()
		for _, primary := range rd.DataEntries() {
			if m.policy.isDerivedQuantity(primary.Item.Quantity) {
				continue
			}
			list, ok := m.lists[primary.ID]
			if !ok {
				// Entry not present in the first file; nowhere to merge it.
				m.logger.Debug("entry absent from destination, skipping", "entry", primary.ID.String())
				continue
			}
			if err := m.policy.mergeEntry(rd, fileEntries, primary, list); err != nil {
				if errors.Is(err, ErrMissingCompanionQuantity) {
					m.logger.Warn("skipping entry contribution", "entry", primary.ID.String(), "error", err.Error())
					continue
				}
				return stageError(StageMergeEntries, rd.Connection.FilePath, err)
			}
		}
	}
	return nil
}

func (m *ltsMerger) sortResults() {
	m.logger.Stage(StageSortResults)
	for _, list := range m.lists {
		list.Sort(m.policy.compare)
	}
}

func (m *ltsMerger) updateTimesList() {
	m.logger.Stage(StageUpdateTimes)
	if !m.policy.updateTimesList(m.results[0], m.lists) {
		// No entry produced any events; the destination keeps its
		// previous axis.
		m.logger.Warn("no events merged, time axis left unchanged")
	}
}

// updateResultData writes every final event list back into the first
// file's in-memory structure. Source structures are never mutated.
func (m *ltsMerger) updateResultData() error {
	m.logger.Stage(StageUpdateResults)
	for id, list := range m.lists {
		target, ok := m.entries[id]
		if !ok {
			continue
		}
		if m.policy.isDerivedQuantity(target.Item.Quantity) {
			continue
		}
		if err := m.policy.writeEntry(m.entries, target, list); err != nil {
			if errors.Is(err, ErrMissingCompanionQuantity) {
				m.logger.Warn("skipping entry write", "entry", id.String(), "error", err.Error())
				continue
			}
			return stageError(StageUpdateResults, m.results[0].Connection.FilePath, err)
		}
	}
	return nil
}
