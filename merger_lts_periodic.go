package res1d

import (
	"strings"
	"time"
)

const (
	countSuffix    = "Count"
	durationSuffix = "Duration"
)

// periodicPolicy merges LTS annual and monthly results: per-calendar-period
// accumulators with companion quantities suffixed "Count" and "Duration".
// Global entries are system-wide totals and carry no companions.
type periodicPolicy struct{}

func (p periodicPolicy) isDerivedQuantity(q Quantity) bool {
	return strings.Contains(q.Description, ", Count") || strings.Contains(q.Description, ", Duration")
}

func (p periodicPolicy) hasCompanions(id EntryID) bool {
	return id.Group != GlobalItem
}

func (p periodicPolicy) mergeEntry(src *ResultData, entries entryMap, primary DataEntry, list *EventList) error {
	var countEntry, durationEntry DataEntry
	var err error
	if p.hasCompanions(primary.ID) {
		if countEntry, err = entries.derivedEntry(countSuffix, primary); err != nil {
			return err
		}
		if durationEntry, err = entries.derivedEntry(durationSuffix, primary); err != nil {
			return err
		}
	}

	steps := primary.NumberOfTimeSteps()
	if len(src.TimesList) < steps {
		steps = len(src.TimesList)
	}
	for step := 0; step < steps; step++ {
		value, err := primary.Value(step)
		if err != nil {
			return err
		}
		ev := Event{Value: value, Period: src.TimesList[step]}
		if p.hasCompanions(primary.ID) {
			count, err := countEntry.Value(step)
			if err != nil {
				return err
			}
			duration, err := durationEntry.Value(step)
			if err != nil {
				return err
			}
			ev.Count = int(count)
			ev.Duration = duration
		}
		list.Append(ev)
	}
	return nil
}

// compare orders events ascending by time period only.
func (p periodicPolicy) compare(a, b Event) int {
	return a.Period.Compare(b.Period)
}

// processResults collapses duplicate periods. Two input files covering
// part of the same calendar period must produce one accumulator with
// summed totals, not two entries. The scan runs backward so removals do
// not disturb unvisited pairs.
func (p periodicPolicy) processResults(lists map[EntryID]*EventList) {
	for _, list := range lists {
		events := list.Events
		for i := len(events) - 1; i > 0; i-- {
			if events[i].Period.Equal(events[i-1].Period) {
				events[i-1].Value += events[i].Value
				events[i-1].Count += events[i].Count
				events[i-1].Duration += events[i].Duration
				events = append(events[:i], events[i+1:]...)
			}
		}
		list.Events = events
	}
}

// updateTimesList takes any non-empty entry's collapsed periods as the
// canonical calendar sequence. After collapsing, every entry that has
// events shares that sequence.
func (p periodicPolicy) updateTimesList(rd *ResultData, lists map[EntryID]*EventList) bool {
	for _, list := range lists {
		if list.Len() == 0 {
			continue
		}
		times := make([]time.Time, list.Len())
		for i, ev := range list.Events {
			times[i] = ev.Period
		}
		rd.TimesList = times
		return true
	}
	return false
}

func (p periodicPolicy) writeEntry(entries entryMap, target DataEntry, list *EventList) error {
	var countEntry, durationEntry DataEntry
	var err error
	if p.hasCompanions(target.ID) {
		if countEntry, err = entries.derivedEntry(countSuffix, target); err != nil {
			return err
		}
		if durationEntry, err = entries.derivedEntry(durationSuffix, target); err != nil {
			return err
		}
	}
	for i, ev := range list.Events {
		if err := target.SetValue(i, ev.Value); err != nil {
			return err
		}
		if p.hasCompanions(target.ID) {
			if err := countEntry.SetValue(i, float64(ev.Count)); err != nil {
				return err
			}
			if err := durationEntry.SetValue(i, ev.Duration); err != nil {
				return err
			}
		}
	}
	return nil
}
