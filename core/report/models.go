package report

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
)

var ErrNotFound = errors.New("report not found")

type (
	// Record is a mentor- or system-generated evaluation tied to one
	// journey item. Records are created by the external reporting
	// pipeline and are read-only here.
	Record struct {
		ID            string          `json:"id"`
		AttendeeID    string          `json:"attendee_id"`
		JourneyItemID null.String     `json:"journey_item_id"` // null: cannot be associated to any item
		ReportType    string          `json:"report_type"`
		ReportData    json.RawMessage `json:"report_data"`
		CreatedAt     time.Time       `json:"created_at"`
	}

	// Extract carries the convenience fields pulled out of a Record's
	// semi-structured payload for the dashboard; missing nested fields
	// are null, never an error.
	Extract struct {
		ReportID         string       `json:"report_id"`
		ReportType       string       `json:"report_type"`
		Route            Route        `json:"route"`
		MentorName       null.String  `json:"mentor_name"`
		OverallRating    null.Float64 `json:"overall_rating"`
		OverallScore     null.Float64 `json:"overall_score"`
		ImprovementAreas []string     `json:"improvement_areas"`
		StrongestAspects []string     `json:"strongest_aspects"`
		CreatedAt        time.Time    `json:"created_at"`
	}

	Repository interface {
		// FilterReportsByAttendeeIDs returns all reports belonging to the
		// given attendee ids, ordered by created_at descending.
		FilterReportsByAttendeeIDs(ctx context.Context, attendeeIDs []string) ([]Record, error)
		GetReportByID(ctx context.Context, id string) (Record, error)
	}
)

// payload mirrors the known parts of report_data; its shape varies by
// report type and anything missing simply stays zero-valued.
type payload struct {
	Meta struct {
		MentorName    null.String  `json:"mentor_name"`
		OverallRating null.Float64 `json:"overall_rating"`
		OverallScore  null.Float64 `json:"overall_score"`
	} `json:"meta"`
	FeedbackSummary struct {
		ImprovementAreas []string `json:"improvement_areas"`
		StrongestAspects []string `json:"strongest_aspects"`
	} `json:"feedback_summary"`
}

// Extract pulls the convenience fields out of the record's payload.
// A malformed or partial payload yields null fields.
func (r Record) Extract() Extract {
	var p payload
	if len(r.ReportData) > 0 {
		_ = json.Unmarshal(r.ReportData, &p)
	}
	return Extract{
		ReportID:         r.ID,
		ReportType:       r.ReportType,
		Route:            ClassifyRoute(r.ReportType),
		MentorName:       p.Meta.MentorName,
		OverallRating:    p.Meta.OverallRating,
		OverallScore:     p.Meta.OverallScore,
		ImprovementAreas: p.FeedbackSummary.ImprovementAreas,
		StrongestAspects: p.FeedbackSummary.StrongestAspects,
		CreatedAt:        r.CreatedAt,
	}
}
