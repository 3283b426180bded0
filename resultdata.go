package res1d

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DeleteValue marks a missing observation in a time series. Slots created
// by lazy expansion are filled with it until a merge writes real data.
const DeleteValue float64 = -1e-30

// ResultType discriminates what kind of simulation result a file holds.
// LTS types carry statistics instead of a chronological simulation.
type ResultType string

const (
	ResultTypeUnknown ResultType = "Unknown"
	ResultTypeHD      ResultType = "HD"
	ResultTypeRR      ResultType = "RR"
	ResultTypeHDRR    ResultType = "HDRR"
	LTSEvents         ResultType = "LTSEvents"
	LTSAnnual         ResultType = "LTSAnnual"
	LTSMonthly        ResultType = "LTSMonthly"
)

// ItemTypeGroup identifies which part of the network a data item belongs to.
type ItemTypeGroup string

const (
	NodeItem      ItemTypeGroup = "Node"
	ReachItem     ItemTypeGroup = "Reach"
	CatchmentItem ItemTypeGroup = "Catchment"
	GlobalItem    ItemTypeGroup = "Global"
)

// Quantity describes one physical quantity stored in a result file.
type Quantity struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// DerivedQuantity builds the descriptor of a companion quantity computed
// alongside a primary statistic, e.g. DischargeMaximum -> DischargeMaximumTime
// with description "Discharge Maximum, Time".
func DerivedQuantity(q Quantity, suffix string) Quantity {
	return Quantity{
		ID:          q.ID + suffix,
		Description: fmt.Sprintf("%s, %s", q.Description, suffix),
	}
}

// TimeData is the time x element value buffer of one data item.
// Values is time-major: Values[step][element].
type TimeData struct {
	Values      [][]float64 `json:"values"`
	NumElements int         `json:"number_of_elements"`
}

func NewTimeData(numElements int) *TimeData {
	return &TimeData{NumElements: numElements}
}

func (td *TimeData) NumberOfTimeSteps() int {
	return len(td.Values)
}

func (td *TimeData) GetValue(timeStepIndex int, elementIndex int) (float64, error) {
	if timeStepIndex < 0 || timeStepIndex >= len(td.Values) {
		return 0, fmt.Errorf("time step index %d out of range [0,%d)", timeStepIndex, len(td.Values))
	}
	if elementIndex < 0 || elementIndex >= td.NumElements {
		return 0, fmt.Errorf("element index %d out of range [0,%d)", elementIndex, td.NumElements)
	}
	return td.Values[timeStepIndex][elementIndex], nil
}

func (td *TimeData) SetValue(timeStepIndex int, elementIndex int, value float64) error {
	if timeStepIndex < 0 || timeStepIndex >= len(td.Values) {
		return fmt.Errorf("time step index %d out of range [0,%d)", timeStepIndex, len(td.Values))
	}
	if elementIndex < 0 || elementIndex >= td.NumElements {
		return fmt.Errorf("element index %d out of range [0,%d)", elementIndex, td.NumElements)
	}
	td.Values[timeStepIndex][elementIndex] = value
	return nil
}

// EnsureLength grows the buffer by appending delete-value-filled time steps
// until it holds at least n steps. Shrinking never happens here.
func (td *TimeData) EnsureLength(n int) {
	for len(td.Values) < n {
		step := make([]float64, td.NumElements)
		for i := range step {
			step[i] = DeleteValue
		}
		td.Values = append(td.Values, step)
	}
}

// AddTimeStep appends one time step worth of element values.
func (td *TimeData) AddTimeStep(values []float64) error {
	if len(values) != td.NumElements {
		return fmt.Errorf("time step has %d values, item has %d elements", len(values), td.NumElements)
	}
	td.Values = append(td.Values, values)
	return nil
}

// DataItem holds one quantity's time series over all elements of one
// item type group.
type DataItem struct {
	Quantity          Quantity      `json:"quantity"`
	ItemTypeGroup     ItemTypeGroup `json:"item_type_group"`
	NumberWithinGroup int           `json:"number_within_group"`
	TimeData          *TimeData     `json:"time_data"`
}

func (di *DataItem) NumberOfElements() int {
	if di.TimeData == nil {
		return 0
	}
	return di.TimeData.NumElements
}

// Connection ties an in-memory result structure to its backing file.
type Connection struct {
	FilePath string
	store    ResultStore
}

// ResultData is the in-memory structure of one result file.
type ResultData struct {
	ID               *uuid.UUID       `json:"id,omitempty"`
	ResultType       ResultType       `json:"result_type"`
	TimesList        []time.Time      `json:"times_list"`
	DataItems        []*DataItem      `json:"data_items"`
	CustomAttributes ResultAttributes `json:"attributes,omitempty"`
	Connection       Connection       `json:"-"`
}

// IsLTS reports whether the result holds long-term statistics rather than
// a chronological simulation.
func (rd *ResultData) IsLTS() bool {
	switch rd.ResultType {
	case LTSEvents, LTSAnnual, LTSMonthly:
		return true
	}
	return false
}

// QuantityIDs lists every quantity id in data item order.
func (rd *ResultData) QuantityIDs() []string {
	ids := make([]string, len(rd.DataItems))
	for i, di := range rd.DataItems {
		ids[i] = di.Quantity.ID
	}
	return ids
}

// LoadResultData reads a result file from the local file system.
func LoadResultData(path string) (*ResultData, error) {
	return LoadResultDataFrom(NewFileResultStore(), path)
}

// LoadResultDataFrom reads a result file through the given store.
func LoadResultDataFrom(store ResultStore, path string) (*ResultData, error) {
	reader, err := store.Get(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open result file %s: %w", path, err)
	}
	defer reader.Close()

	rd := ResultData{}
	if err := json.NewDecoder(reader).Decode(&rd); err != nil {
		return nil, fmt.Errorf("failed to load result file %s: %w", path, err)
	}
	if rd.ID == nil {
		id := uuid.New()
		rd.ID = &id
	}
	rd.Connection = Connection{FilePath: path, store: store}
	return &rd, nil
}

// Save persists the result structure to the path held by its connection.
func (rd *ResultData) Save() error {
	if rd.Connection.FilePath == "" {
		return fmt.Errorf("result data has no connection file path")
	}
	store := rd.Connection.store
	if store == nil {
		store = NewFileResultStore()
	}
	return rd.SaveTo(store, rd.Connection.FilePath)
}

// SaveTo persists the result structure through the given store.
func (rd *ResultData) SaveTo(store ResultStore, path string) error {
	data, err := json.Marshal(rd)
	if err != nil {
		return fmt.Errorf("failed to marshal result data: %w", err)
	}
	if err := store.Put(path, data); err != nil {
		return fmt.Errorf("failed to save result file %s: %w", path, err)
	}
	rd.Connection = Connection{FilePath: path, store: store}
	return nil
}
