package res1d

import (
	"errors"
	"testing"
)

func TestEntryIDSiblingKey(t *testing.T) {
	rd := extremeTestFile([]float64{10, 7}, []float64{1, 2})
	primary := rd.DataEntries()[0]

	sibling := primary.ID.WithQuantity(primary.ID.QuantityID + "Time")
	if sibling.QuantityID != "WaterLevelMaximumTime" {
		t.Errorf("sibling quantity: got %s", sibling.QuantityID)
	}
	if sibling.Group != primary.ID.Group ||
		sibling.NumberWithinGroup != primary.ID.NumberWithinGroup ||
		sibling.ElementIndex != primary.ID.ElementIndex {
		t.Error("sibling key must keep the location fields")
	}
}

func TestDataEntriesEnumeration(t *testing.T) {
	discharge := Quantity{ID: "Discharge", Description: "Discharge"}
	rd := &ResultData{
		DataItems: []*DataItem{
			newTestDataItem(discharge, ReachItem, 0, 3, [][]float64{{1, 2, 3}}),
			newTestDataItem(waterLevelMax, NodeItem, 1, 2, [][]float64{{4, 5}}),
		},
	}

	entries := rd.DataEntries()
	if len(entries) != 5 {
		t.Fatalf("got %d entries, want 5 (3 + 2 elements)", len(entries))
	}

	m := rd.entryMap()
	if len(m) != 5 {
		t.Fatalf("entry map holds %d entries, want 5", len(m))
	}
	for _, de := range entries {
		if m[de.ID].ElementIndex != de.ElementIndex {
			t.Errorf("entry map mismatch for %s", de.ID)
		}
	}
}

func TestDataEntrySetValueExpands(t *testing.T) {
	rd := extremeTestFile([]float64{10}, []float64{1})
	entry := rd.DataEntries()[0]

	if err := entry.SetValue(4, 42); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if entry.NumberOfTimeSteps() != 5 {
		t.Fatalf("got %d time steps after sparse write, want 5", entry.NumberOfTimeSteps())
	}

	v, err := entry.Value(4)
	if err != nil || v != 42 {
		t.Fatalf("written value: got %v (%v)", v, err)
	}
	filler, err := entry.Value(2)
	if err != nil || filler != DeleteValue {
		t.Fatalf("intermediate slot: got %v (%v), want delete value", filler, err)
	}
	original, err := entry.Value(0)
	if err != nil || original != 10 {
		t.Fatalf("original value: got %v (%v), want 10", original, err)
	}
}

func TestDerivedEntryLookup(t *testing.T) {
	rd := extremeTestFile([]float64{10}, []float64{1})
	m := rd.entryMap()
	primary := rd.DataEntries()[0]

	timeEntry, err := m.derivedEntry("Time", primary)
	if err != nil {
		t.Fatalf("derivedEntry: %v", err)
	}
	if timeEntry.ID.QuantityID != "WaterLevelMaximumTime" {
		t.Errorf("derived entry quantity: got %s", timeEntry.ID.QuantityID)
	}

	_, err = m.derivedEntry("Count", primary)
	if !errors.Is(err, ErrMissingCompanionQuantity) {
		t.Fatalf("got %v, want ErrMissingCompanionQuantity", err)
	}
}
