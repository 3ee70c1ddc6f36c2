package journey

import (
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/ngazi/core/report"
)

// Fixed reference content shown for every diagnostic-interview session.
var (
	DiagnosticAgenda = []string{
		"Introductions and context (5 min)",
		"Walk-through of your background and goals (15 min)",
		"Mock interview round with your mentor (25 min)",
		"Feedback, scoring and next steps (15 min)",
	}

	DiagnosticPrepTips = []string{
		"Keep your resume handy; the mentor will refer to it.",
		"Pick a quiet spot with a stable connection for online sessions.",
		"Be ready to talk through one project in depth.",
		"Treat the mock round like the real thing; feedback is based on it.",
	}
)

const noReportPlaceholder = "Report not available yet. It will show up here once it has been published."

type (
	MentorBlock struct {
		Name          string       `json:"name"`
		OverallRating null.Float64 `json:"overall_rating"`
		OverallScore  null.Float64 `json:"overall_score"`
	}

	// DetailView is the supplementary content for one selected journey
	// item: display dates, module info, the mentor block when a report
	// names a mentor, diagnostic reference content, and either the report
	// route or a placeholder state.
	DetailView struct {
		Item              Item            `json:"item"`
		StartDisplay      null.String     `json:"start_display"`
		EndDisplay        null.String     `json:"end_display"`
		ModuleDescription null.String     `json:"module_description"`
		ModuleMode        null.String     `json:"module_mode"`
		IsDiagnostic      bool            `json:"is_diagnostic"`
		HasReport         bool            `json:"has_report"`
		ReportRoute       null.String     `json:"report_route"`
		Report            *report.Extract `json:"report,omitempty"`
		Mentor            *MentorBlock    `json:"mentor,omitempty"`
		Agenda            []string        `json:"agenda,omitempty"`
		PrepTips          []string        `json:"prep_tips,omitempty"`
		Placeholder       null.String     `json:"placeholder"`
	}
)

// ResolveSessionDetail decides which supplementary blocks to show for a
// selected item and its associated report, if any. Pure; safe to call
// repeatedly with the same arguments.
func ResolveSessionDetail(item Item, rpt *report.Extract) DetailView {
	view := DetailView{
		Item:         item,
		StartDisplay: item.StartDate.Display(),
		EndDisplay:   item.EndDate.Display(),
		IsDiagnostic: item.IsDiagnostic(),
		HasReport:    rpt != nil,
	}

	if item.Product != nil && item.Product.Module != nil {
		view.ModuleDescription = item.Product.Module.Description
		view.ModuleMode = item.Product.Module.Mode
	}

	if rpt != nil {
		view.Report = rpt
		view.ReportRoute = null.StringFrom(string(rpt.Route))
		if rpt.MentorName.Valid && rpt.MentorName.String != "" {
			view.Mentor = &MentorBlock{
				Name:          rpt.MentorName.String,
				OverallRating: rpt.OverallRating,
				OverallScore:  rpt.OverallScore,
			}
		}
	} else {
		view.Placeholder = null.StringFrom(noReportPlaceholder)
	}

	if view.IsDiagnostic {
		view.Agenda = DiagnosticAgenda
		view.PrepTips = DiagnosticPrepTips
	}
	return view
}
