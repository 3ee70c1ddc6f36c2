package journey

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/ngazi/core/report"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)

func item(id, status, start, end string) Item {
	return Item{
		ID:          id,
		Particulars: "Session " + id,
		Status:      null.NewString(status, status != ""),
		StartDate:   DateFromString(start),
		EndDate:     DateFromString(end),
	}
}

func record(id, itemID, reportType string, createdAt time.Time) report.Record {
	return report.Record{
		ID:            id,
		AttendeeID:    "j1",
		JourneyItemID: null.NewString(itemID, itemID != ""),
		ReportType:    reportType,
		ReportData:    json.RawMessage(`{"meta": {"mentor_name": "M ` + id + `"}}`),
		CreatedAt:     createdAt,
	}
}

func TestAggregate_counters(t *testing.T) {
	items := []Item{
		item("a", StatusCompleted, "2024-01-01", "2024-01-15"),
		item("b", "", "2024-01-20", "2024-02-01"), // completed by date
		item("c", StatusInProgress, "2024-05-20", ""),
		item("d", "", "2024-07-01", "2024-07-15"), // upcoming
		item("e", "", "October Week 6", ""),       // free-text dates never complete
	}

	view := Aggregate(items, nil, testNow)

	assert.Equal(t, 5, view.Stats.Total)
	assert.Equal(t, 2, view.Stats.Completed)
	assert.Equal(t, 1, view.Stats.InProgress)
	assert.Equal(t, 2, view.Stats.Upcoming)
	assert.Equal(t, 40, view.Stats.ProgressPercent)
	assert.Equal(t, view.Stats.Total, view.Stats.Completed+view.Stats.InProgress+view.Stats.Upcoming)
}

func TestAggregate_completedStatusWinsOverInProgress(t *testing.T) {
	// an item marked In Progress whose end date already passed counts as
	// completed: classification is evaluated completed -> inProgress -> upcoming
	view := Aggregate([]Item{item("a", StatusInProgress, "2024-01-01", "2024-02-01")}, nil, testNow)
	assert.Equal(t, 1, view.Stats.Completed)
	assert.Equal(t, 0, view.Stats.InProgress)
	assert.Equal(t, 0, view.Stats.Upcoming)
}

func TestAggregate_endDateBoundary(t *testing.T) {
	// strictly before "now": an end date of today (local midnight) has passed
	// by noon, an end date of tomorrow has not
	today := testNow.Format("2006-01-02")
	tomorrow := testNow.AddDate(0, 0, 1).Format("2006-01-02")

	view := Aggregate([]Item{item("a", "", "", today), item("b", "", "", tomorrow)}, nil, testNow)
	assert.Equal(t, 1, view.Stats.Completed)
	assert.Equal(t, 1, view.Stats.Upcoming)
}

func TestAggregate_empty(t *testing.T) {
	view := Aggregate(nil, nil, testNow)
	assert.Equal(t, Stats{}, view.Stats)
	assert.NotNil(t, view.Items)
	assert.NotNil(t, view.Reports)
	assert.False(t, view.Range.Start.Valid)
	assert.False(t, view.Range.End.Valid)
}

func TestAggregate_progressPercentBounds(t *testing.T) {
	lists := [][]Item{
		nil,
		{item("a", StatusCompleted, "", "")},
		{item("a", "", "", ""), item("b", StatusCompleted, "", ""), item("c", StatusInProgress, "", "")},
	}
	for _, items := range lists {
		stats := Aggregate(items, nil, testNow).Stats
		assert.GreaterOrEqual(t, stats.ProgressPercent, 0)
		assert.LessOrEqual(t, stats.ProgressPercent, 100)
		assert.GreaterOrEqual(t, stats.Upcoming, 0)
		assert.Equal(t, stats.Total, stats.Completed+stats.InProgress+stats.Upcoming)
	}
}

func TestAggregate_reportAssociation(t *testing.T) {
	older := testNow.Add(-48 * time.Hour)
	newer := testNow.Add(-2 * time.Hour)

	items := []Item{item("a", "", "", ""), item("b", "", "", "")}
	reports := []report.Record{
		// pre-sorted descending by created_at: first seen per item wins
		record("r2", "a", "Diagnostic Interview", newer),
		record("r1", "a", "Diagnostic Interview", older),
		record("r3", "", "AI Mock Interview", newer), // no linkage: dropped
	}

	view := Aggregate(items, reports, testNow)

	assert.Len(t, view.Reports, 1)
	got, ok := view.Reports["a"]
	if assert.True(t, ok) {
		assert.Equal(t, "r2", got.ReportID)
		assert.Equal(t, "M r2", got.MentorName.String)
	}
}

func TestAssociateReports_resortsUnsortedInput(t *testing.T) {
	older := testNow.Add(-48 * time.Hour)
	newer := testNow.Add(-2 * time.Hour)

	// oldest first: the aggregator must still pick the most recent
	out := AssociateReports([]report.Record{
		record("r1", "a", "Diagnostic Interview", older),
		record("r2", "a", "Diagnostic Interview", newer),
	})
	assert.Equal(t, "r2", out["a"].ReportID)
}

func TestAggregate_idempotent(t *testing.T) {
	items := []Item{
		item("a", StatusCompleted, "2024-01-01", "2024-01-15"),
		item("b", StatusInProgress, "2024-05-20", ""),
	}
	reports := []report.Record{record("r1", "a", "Resume Review", testNow.Add(-time.Hour))}

	first := Aggregate(items, reports, testNow)
	second := Aggregate(items, reports, testNow)
	assert.Equal(t, first, second)
}
