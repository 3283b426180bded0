package res1d

import (
	"cmp"
	"strings"
	"time"
)

const timeSuffix = "Time"

// extremePolicy merges LTS extreme-event results: top-ranked events per
// location and quantity, each with an occurrence time carried in a
// companion quantity suffixed "Time".
type extremePolicy struct{}

func (p extremePolicy) isDerivedQuantity(q Quantity) bool {
	return strings.Contains(q.Description, ", Time")
}

func (p extremePolicy) mergeEntry(src *ResultData, entries entryMap, primary DataEntry, list *EventList) error {
	timeEntry, err := entries.derivedEntry(timeSuffix, primary)
	if err != nil {
		return err
	}
	for step := 0; step < primary.NumberOfTimeSteps(); step++ {
		value, err := primary.Value(step)
		if err != nil {
			return err
		}
		occurrence, err := timeEntry.Value(step)
		if err != nil {
			return err
		}
		list.Append(Event{Value: value, Time: occurrence})
	}
	return nil
}

// compare orders events descending by value; ties break ascending by
// occurrence time, so the earlier of two equal extremes ranks first.
func (p extremePolicy) compare(a, b Event) int {
	if c := cmp.Compare(b.Value, a.Value); c != 0 {
		return c
	}
	return cmp.Compare(a.Time, b.Time)
}

// processResults is a no-op: sorting alone is the complete extreme
// semantics. Lists are not capped to a fixed top-N; any capping happened
// upstream in the simulation.
func (p extremePolicy) processResults(lists map[EntryID]*EventList) {}

// updateTimesList sizes the axis to the longest event list and fills it
// with placeholder timestamps, one second apart from the reference epoch.
// Slot i means "ranked event i".
func (p extremePolicy) updateTimesList(rd *ResultData, lists map[EntryID]*EventList) bool {
	maxLen := 0
	for _, list := range lists {
		if list.Len() > maxLen {
			maxLen = list.Len()
		}
	}
	times := make([]time.Time, maxLen)
	for i := range times {
		times[i] = eventTimeEpoch.Add(time.Duration(i) * time.Second)
	}
	rd.TimesList = times
	return true
}

func (p extremePolicy) writeEntry(entries entryMap, target DataEntry, list *EventList) error {
	timeEntry, err := entries.derivedEntry(timeSuffix, target)
	if err != nil {
		return err
	}
	for i, ev := range list.Events {
		if err := target.SetValue(i, ev.Value); err != nil {
			return err
		}
		if err := timeEntry.SetValue(i, ev.Time); err != nil {
			return err
		}
	}
	return nil
}
