package domain

import "time"

// Direction of a sync cycle
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Inbound streams
const (
	StreamActivities = "activities"
	StreamPageViews  = "pageViews"
)

// UnitResult is the outcome of one isolated unit of a sync cycle.
// Outbound units are (region, category) pairs; inbound units are the activity streams.
type UnitResult struct {
	Region   string    `json:"region,omitempty"`
	Stream   string    `json:"stream,omitempty"`
	Category Category  `json:"category"`
	Fetched  int       `json:"fetched"`
	New      int       `json:"new"`
	Uploaded bool      `json:"uploaded"`
	Rotated  bool      `json:"rotated"`
	Stored   int       `json:"stored"`
	Error    string    `json:"error,omitempty"`
	Duration float64   `json:"duration_seconds"`
	EndedAt  time.Time `json:"ended_at"`
}

// Failed reports whether the unit recorded an error
func (u UnitResult) Failed() bool {
	return u.Error != ""
}

// SyncReport summarizes one sync cycle
type SyncReport struct {
	RunID      string       `json:"run_id"`
	Direction  Direction    `json:"direction"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Units      []UnitResult `json:"units"`
}

// Failures counts the failed units
func (r *SyncReport) Failures() int {
	n := 0
	for _, u := range r.Units {
		if u.Failed() {
			n++
		}
	}
	return n
}

// Add appends a unit outcome
func (r *SyncReport) Add(u UnitResult) {
	r.Units = append(r.Units, u)
}
