package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Extract(t *testing.T) {
	createdAt := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)

	t.Run("full payload", func(t *testing.T) {
		rec := Record{
			ID:         "r1",
			ReportType: "Diagnostic Interview",
			CreatedAt:  createdAt,
			ReportData: json.RawMessage(`{
				"meta": {"mentor_name": "Asha K", "overall_rating": 4.5, "overall_score": 78},
				"feedback_summary": {
					"improvement_areas": ["system design"],
					"strongest_aspects": ["communication", "fundamentals"]
				},
				"sections": [{"title": "intro"}]
			}`),
		}
		got := rec.Extract()
		assert.Equal(t, "r1", got.ReportID)
		assert.Equal(t, RouteDiagnostic, got.Route)
		assert.Equal(t, "Asha K", got.MentorName.String)
		assert.Equal(t, 4.5, got.OverallRating.Float64)
		assert.Equal(t, 78.0, got.OverallScore.Float64)
		assert.Equal(t, []string{"system design"}, got.ImprovementAreas)
		assert.Equal(t, []string{"communication", "fundamentals"}, got.StrongestAspects)
		assert.Equal(t, createdAt, got.CreatedAt)
	})

	t.Run("missing nested fields yield null, never an error", func(t *testing.T) {
		rec := Record{ID: "r2", ReportType: "Quarterly Summary", ReportData: json.RawMessage(`{"meta": {}}`)}
		got := rec.Extract()
		assert.False(t, got.MentorName.Valid)
		assert.False(t, got.OverallRating.Valid)
		assert.False(t, got.OverallScore.Valid)
		assert.Empty(t, got.ImprovementAreas)
		assert.Equal(t, RouteDefault, got.Route)
	})

	t.Run("empty payload", func(t *testing.T) {
		got := Record{ID: "r3", ReportType: "AI Mock Interview"}.Extract()
		assert.False(t, got.MentorName.Valid)
		assert.Equal(t, RouteAI, got.Route)
	})

	t.Run("malformed payload is absorbed", func(t *testing.T) {
		got := Record{ID: "r4", ReportData: json.RawMessage(`{"meta": 42`)}.Extract()
		assert.False(t, got.MentorName.Valid)
	})
}
