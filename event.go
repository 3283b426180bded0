package res1d

import (
	"slices"
	"time"
)

// Event is one record in a long-term statistics series. Extreme results use
// Value and Time (the occurrence time on the engine's numeric timescale).
// Periodic results use Value, Count, Duration and Period; Count and
// Duration stay zero for global entries, which have no companions.
type Event struct {
	Value    float64
	Time     float64
	Count    int
	Duration float64
	Period   time.Time
}

// EventList accumulates the events of one entry across all input files.
// It is appended to per source file, then sorted and collapsed in place,
// then consumed to write the merged values back.
type EventList struct {
	ID     EntryID
	Events []Event
}

func NewEventList(id EntryID) *EventList {
	return &EventList{ID: id}
}

func (el *EventList) Append(ev Event) {
	el.Events = append(el.Events, ev)
}

func (el *EventList) Len() int {
	return len(el.Events)
}

// Sort orders the list in place with a policy comparator. The sort is
// stable so equal events keep their file-supplied order.
func (el *EventList) Sort(compare func(a, b Event) int) {
	slices.SortStableFunc(el.Events, compare)
}
