package res1d

import "fmt"

// EntryID is the stable cross-file join key of one time series. Physical
// array positions differ between independently loaded files, so entries are
// matched on this key rather than on slice indexes.
type EntryID struct {
	QuantityID        string
	Group             ItemTypeGroup
	NumberWithinGroup int
	ElementIndex      int
}

func NewEntryID(item *DataItem, elementIndex int) EntryID {
	return EntryID{
		QuantityID:        item.Quantity.ID,
		Group:             item.ItemTypeGroup,
		NumberWithinGroup: item.NumberWithinGroup,
		ElementIndex:      elementIndex,
	}
}

// WithQuantity derives the sibling key of a companion quantity at the same
// location, e.g. the "...Time" series belonging to a primary statistic.
func (id EntryID) WithQuantity(quantityID string) EntryID {
	id.QuantityID = quantityID
	return id
}

func (id EntryID) String() string {
	return fmt.Sprintf("%s/%s[%d]/element[%d]", id.Group, id.QuantityID, id.NumberWithinGroup, id.ElementIndex)
}

// DataEntry addresses one element's time series within a data item.
type DataEntry struct {
	ID           EntryID
	Item         *DataItem
	ElementIndex int
}

func (de DataEntry) NumberOfTimeSteps() int {
	return de.Item.TimeData.NumberOfTimeSteps()
}

func (de DataEntry) Value(timeStepIndex int) (float64, error) {
	return de.Item.TimeData.GetValue(timeStepIndex, de.ElementIndex)
}

// SetValue writes a value at the given time step, first growing the
// underlying buffer with delete-value-filled steps when the index lies
// beyond the current length. Different entries may end up with different
// step counts; the merge relies on that to write sparse results.
func (de DataEntry) SetValue(timeStepIndex int, value float64) error {
	de.Item.TimeData.EnsureLength(timeStepIndex + 1)
	return de.Item.TimeData.SetValue(timeStepIndex, de.ElementIndex, value)
}

// DataEntries enumerates every data item x element combination of the
// result file, one DataEntry per element.
func (rd *ResultData) DataEntries() []DataEntry {
	entries := make([]DataEntry, 0, len(rd.DataItems))
	for _, item := range rd.DataItems {
		for element := 0; element < item.NumberOfElements(); element++ {
			entries = append(entries, DataEntry{
				ID:           NewEntryID(item, element),
				Item:         item,
				ElementIndex: element,
			})
		}
	}
	return entries
}

// entryMap keys every data entry of one loaded file by its EntryID.
// Within one file the id is unique per entry.
type entryMap map[EntryID]DataEntry

func (rd *ResultData) entryMap() entryMap {
	m := make(entryMap)
	for _, de := range rd.DataEntries() {
		m[de.ID] = de
	}
	return m
}

// derivedEntry looks up the companion entry of a primary statistic in the
// same file. A missing companion means the derived quantity was not
// computed for this element; callers skip the entry in that case.
func (m entryMap) derivedEntry(suffix string, primary DataEntry) (DataEntry, error) {
	id := primary.ID.WithQuantity(primary.ID.QuantityID + suffix)
	de, ok := m[id]
	if !ok {
		return DataEntry{}, fmt.Errorf("%w: no %q companion for %s", ErrMissingCompanionQuantity, suffix, primary.ID)
	}
	return de, nil
}
