package model

import "time"

// ReportSummary describes a saved configuration without loading it.
type ReportSummary struct {
	Name       string
	Columns    int
	Filters    int
	Parameters int
	UpdatedAt  time.Time
}

// RunRecord is one completed run of a saved configuration.
type RunRecord struct {
	ID         int64
	Report     string
	RanAt      time.Time
	Total      int
	Matched    int
	Parameters map[string]string
}
