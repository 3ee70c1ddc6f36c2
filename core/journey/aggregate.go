package journey

import (
	"math"
	"sort"
	"time"

	"github.com/trezcool/ngazi/core/report"
)

// Status values written by the administrative pipeline.
const (
	StatusCompleted  = "Completed"
	StatusInProgress = "In Progress"
)

type (
	Stats struct {
		Total           int `json:"total"`
		Completed       int `json:"completed"`
		InProgress      int `json:"in_progress"`
		Upcoming        int `json:"upcoming"`
		ProgressPercent int `json:"progress_percent"`
	}

	// DerivedView is the dashboard view model for one student: their
	// journey items, at most one extracted report per item, aggregate
	// counters and the overall program date span. It is rebuilt wholesale
	// from fresh inputs, never patched.
	DerivedView struct {
		Items   []Item                    `json:"items"`
		Reports map[string]report.Extract `json:"reports"` // keyed by journey item id
		Stats   Stats                     `json:"stats"`
		Range   DateRange                 `json:"range"`
	}
)

// AssociateReports reduces a list of report records to at most one
// extracted report per journey item: records are ordered by recency
// (a stable re-sort guards against unsorted callers) and the first seen
// per item wins. Records with no item linkage are dropped.
func AssociateReports(reports []report.Record) map[string]report.Extract {
	sorted := make([]report.Record, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })

	out := make(map[string]report.Extract, len(sorted))
	for _, rec := range sorted {
		if !rec.JourneyItemID.Valid || rec.JourneyItemID.String == "" {
			continue
		}
		if _, ok := out[rec.JourneyItemID.String]; ok {
			continue // a more recent report already claimed this item
		}
		out[rec.JourneyItemID.String] = rec.Extract()
	}
	return out
}

// isCompleted reports whether the item counts as completed at `now`:
// either the pipeline marked it so, or its end date is a proper calendar
// date strictly in the past. Free-text end dates never complete an item.
func isCompleted(it Item, now time.Time) bool {
	if it.Status.Valid && it.Status.String == StatusCompleted {
		return true
	}
	if end, ok := it.EndDate.Time(); ok {
		return end.Before(now)
	}
	return false
}

// Aggregate builds the derived journey view from raw items and reports.
// Each item is classified into exactly one of completed / in progress /
// upcoming, evaluated in that order, so the counters always sum to the
// total. `now` is injected so the date-based completion check stays
// deterministic under test.
func Aggregate(items []Item, reports []report.Record, now time.Time) DerivedView {
	view := DerivedView{
		Items:   items,
		Reports: AssociateReports(reports),
		Range:   ComputeOverallDateRange(items),
	}
	if view.Items == nil {
		view.Items = []Item{}
	}

	stats := Stats{Total: len(items)}
	for _, it := range items {
		switch {
		case isCompleted(it, now):
			stats.Completed++
		case it.Status.Valid && it.Status.String == StatusInProgress:
			stats.InProgress++
		}
	}
	stats.Upcoming = stats.Total - stats.Completed - stats.InProgress
	if stats.Total > 0 {
		stats.ProgressPercent = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	view.Stats = stats
	return view
}
