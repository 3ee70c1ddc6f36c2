package journey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/ngazi/core/report"
)

func diagnosticModuleItem(category string) Item {
	return Item{
		ID:          "a",
		Particulars: "Week 2 Session",
		Product: &Product{
			ID:   "p1",
			Name: "Career Sprint",
			Module: &Module{
				ID:          "m1",
				Description: null.StringFrom("Mentor-led evaluation"),
				Category:    null.StringFrom(category),
				Mode:        null.StringFrom("Online"),
			},
		},
	}
}

func TestResolveSessionDetail_isDiagnostic(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want bool
	}{
		{name: "by particulars", item: Item{Particulars: "Diagnostic Interview with mentor"}, want: true},
		{name: "particulars case-insensitive", item: Item{Particulars: "DIAGNOSTIC INTERVIEW"}, want: true},
		{name: "by module category", item: diagnosticModuleItem("Diagnostic"), want: true},
		{name: "category any case", item: diagnosticModuleItem("dIaGnOsTiC"), want: true},
		{name: "neither", item: diagnosticModuleItem("Technical"), want: false},
		{name: "plain item", item: Item{Particulars: "Resume workshop"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSessionDetail(tt.item, nil)
			assert.Equal(t, tt.want, got.IsDiagnostic)
			if tt.want {
				assert.Equal(t, DiagnosticAgenda, got.Agenda)
				assert.Equal(t, DiagnosticPrepTips, got.PrepTips)
			} else {
				assert.Empty(t, got.Agenda)
				assert.Empty(t, got.PrepTips)
			}
		})
	}
}

func TestResolveSessionDetail_noReport(t *testing.T) {
	got := ResolveSessionDetail(Item{ID: "a", Particulars: "Resume workshop"}, nil)
	assert.False(t, got.HasReport)
	assert.False(t, got.ReportRoute.Valid)
	assert.Nil(t, got.Report)
	assert.Nil(t, got.Mentor)
	assert.True(t, got.Placeholder.Valid)
}

func TestResolveSessionDetail_withReport(t *testing.T) {
	rpt := &report.Extract{
		ReportID:      "r1",
		ReportType:    "AI Mock Interview",
		Route:         report.RouteAI,
		MentorName:    null.StringFrom("Asha K"),
		OverallRating: null.Float64From(4.5),
	}
	got := ResolveSessionDetail(Item{ID: "a", Particulars: "Mock round"}, rpt)

	assert.True(t, got.HasReport)
	assert.Equal(t, null.StringFrom("ai"), got.ReportRoute)
	assert.False(t, got.Placeholder.Valid)
	if assert.NotNil(t, got.Mentor) {
		assert.Equal(t, "Asha K", got.Mentor.Name)
		assert.Equal(t, 4.5, got.Mentor.OverallRating.Float64)
	}
}

func TestResolveSessionDetail_reportWithoutMentor(t *testing.T) {
	rpt := &report.Extract{ReportID: "r1", ReportType: "AI Mock Interview", Route: report.RouteAI}
	got := ResolveSessionDetail(Item{ID: "a"}, rpt)
	assert.True(t, got.HasReport)
	assert.Nil(t, got.Mentor)
}

func TestResolveSessionDetail_displayFields(t *testing.T) {
	it := diagnosticModuleItem("Diagnostic")
	it.StartDate = DateFromString("2024-01-15")
	it.EndDate = DateFromString("October Week 6")

	got := ResolveSessionDetail(it, nil)
	assert.Equal(t, null.StringFrom("15 Jan 2024"), got.StartDisplay)
	assert.Equal(t, null.StringFrom("October Week 6"), got.EndDisplay)
	assert.Equal(t, null.StringFrom("Mentor-led evaluation"), got.ModuleDescription)
	assert.Equal(t, null.StringFrom("Online"), got.ModuleMode)
}

func TestResolveSessionDetail_idempotent(t *testing.T) {
	it := diagnosticModuleItem("Diagnostic")
	rpt := &report.Extract{ReportID: "r1", Route: report.RoutePractice, MentorName: null.StringFrom("Asha K")}
	assert.Equal(t, ResolveSessionDetail(it, rpt), ResolveSessionDetail(it, rpt))
}
