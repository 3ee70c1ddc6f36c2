package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/trezcool/ngazi/core/journey"
	"github.com/trezcool/ngazi/core/report"
	"github.com/trezcool/ngazi/core/user"
	testutil "github.com/trezcool/ngazi/tests"
)

func Test_journeyApi_studentView(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	freshman := testutil.CreateUser(t, usrRepo, "Freshman", "freshie", "freshie@test.cd", "", []string{user.RoleStudent}, true)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin", "admin@test.cd", "", []string{user.RoleAdmin}, true)

	jny := testutil.SeedJourney(t, db, student.ID, "SWE Career Track", true)
	_ = testutil.SeedJourney(t, db, student.ID, "Old Track", false) // inactive; excluded

	// seeded in start-date order relative to testNow (2024-06-01)
	itResume := testutil.SeedItem(t, db, jny.ID, "Resume Review", "2024-04-01", "2024-04-15", journey.StatusCompleted, nil)
	itDiag := testutil.SeedItem(t, db, jny.ID, "Diagnostic Interview", "2024-05-01", "2024-05-10", "", nil)
	itCurrent := testutil.SeedItem(t, db, jny.ID, "System Design", "2024-05-20", "October Week 6", journey.StatusInProgress, nil)
	itNext := testutil.SeedItem(t, db, jny.ID, "Mock Interview", "2024-07-01", "2024-07-10", "", nil)

	// the most recent report per item wins
	_ = testutil.SeedReport(t, db, jny.ID, itResume.ID, "Resume Review Report", nil, testNow.Add(-72*time.Hour))
	rptResume := testutil.SeedReport(t, db, jny.ID, itResume.ID, "Resume Review Report", nil, testNow.Add(-24*time.Hour))
	rptDiag := testutil.SeedReport(t, db, jny.ID, itDiag.ID, "Diagnostic Interview Report",
		map[string]interface{}{"meta": map[string]interface{}{"mentor_name": "Coach K"}}, testNow.Add(-48*time.Hour))
	_ = testutil.SeedReport(t, db, jny.ID, "", "Orphan Report", nil, testNow) // no item linkage; dropped

	wantView := marchallObj(t, journey.DerivedView{
		Items: []journey.Item{itResume, itDiag, itCurrent, itNext},
		Reports: map[string]report.Extract{
			itResume.ID: rptResume.Extract(),
			itDiag.ID:   rptDiag.Extract(),
		},
		Stats: journey.Stats{Total: 4, Completed: 2, InProgress: 1, Upcoming: 1, ProgressPercent: 50},
		Range: journey.DateRange{
			Start: journey.ParseDisplayDate(itResume.StartDate.Raw()),
			End:   journey.ParseDisplayDate(itNext.EndDate.Raw()),
		},
	})
	emptyView := marchallObj(t, journey.DerivedView{
		Items:   []journey.Item{},
		Reports: map[string]report.Extract{},
	})

	tests := []httpTest{
		{name: "Auth required", path: "/v1/journey", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Student gets own view", path: "/v1/journey", token: getToken(t, student), wantData: wantView},
		{name: "No enrollment yields empty view", path: "/v1/journey", token: getToken(t, freshman), wantData: emptyView},
		{
			name: "Student cannot view others", path: "/v1/journey?student_id=" + student.ID, token: getToken(t, freshman),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{name: "Admin can view any student", path: "/v1/journey?student_id=" + student.ID, token: getToken(t, admin), wantData: wantView},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Refresh rebuilds the view", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/journey/refresh", getToken(t, student))
		app.ServeHTTP(rec, req)

		tt := httpTest{wantCode: http.StatusOK, wantData: wantView}
		checkCodeAndData(t, tt, rec)
	})
}

func Test_journeyApi_sessionDetail(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	other := testutil.CreateUser(t, usrRepo, "Other", "other1", "other@test.cd", "", []string{user.RoleStudent}, true)

	jny := testutil.SeedJourney(t, db, student.ID, "SWE Career Track", true)
	otherJny := testutil.SeedJourney(t, db, other.ID, "Data Track", true)

	module := &journey.Module{ID: "mod-1"}
	itDiag := testutil.SeedItem(t, db, jny.ID, "Diagnostic Interview", "2024-05-01", "2024-05-10", journey.StatusCompleted,
		&journey.Product{ID: "prod-1", Name: "Career Prep", Module: module})
	itNext := testutil.SeedItem(t, db, jny.ID, "Mock Interview", "2024-07-01", "2024-07-10", "", nil)
	itOther := testutil.SeedItem(t, db, otherJny.ID, "Resume Review", "2024-05-01", "2024-05-10", "", nil)

	_ = testutil.SeedReport(t, db, jny.ID, itDiag.ID, "Diagnostic Interview Report", map[string]interface{}{
		"meta":             map[string]interface{}{"mentor_name": "Coach K", "overall_rating": 4.5, "overall_score": 8.2},
		"feedback_summary": map[string]interface{}{"improvement_areas": []string{"pacing"}, "strongest_aspects": []string{"clarity"}},
	}, testNow.Add(-24*time.Hour))

	studentToken := getToken(t, student)
	tests := []httpTest{
		{name: "Auth required", path: "/v1/journey/items/" + itDiag.ID, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Unknown item", path: "/v1/journey/items/lol", token: studentToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "journey item not found"}),
		},
		{
			name: "Cannot view another student's item", path: "/v1/journey/items/" + itOther.ID, token: studentToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "journey item not found"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Diagnostic session with report", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/journey/items/"+itDiag.ID, studentToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var view journey.DetailView
		if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if !view.IsDiagnostic {
			t.Error("failed! IsDiagnostic = false")
		}
		if len(view.Agenda) == 0 || len(view.PrepTips) == 0 {
			t.Error("failed! missing diagnostic agenda or prep tips")
		}
		if !view.HasReport || view.Report == nil {
			t.Fatal("failed! report missing")
		}
		if view.ReportRoute.String != string(report.RouteDiagnostic) {
			t.Errorf("ReportRoute = %q; want %q", view.ReportRoute.String, report.RouteDiagnostic)
		}
		if view.Mentor == nil || view.Mentor.Name != "Coach K" {
			t.Errorf("Mentor = %+v; want Coach K", view.Mentor)
		}
		if view.Placeholder.Valid {
			t.Errorf("Placeholder = %q; want null", view.Placeholder.String)
		}
		if want := "1 May 2024"; view.StartDisplay.String != want {
			t.Errorf("StartDisplay = %q; want %q", view.StartDisplay.String, want)
		}
	})

	t.Run("Upcoming session without report", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/journey/items/"+itNext.ID, studentToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var view journey.DetailView
		if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if view.IsDiagnostic {
			t.Error("failed! IsDiagnostic = true")
		}
		if view.HasReport || view.Report != nil {
			t.Error("failed! unexpected report")
		}
		if view.Mentor != nil {
			t.Errorf("Mentor = %+v; want nil", view.Mentor)
		}
		if !view.Placeholder.Valid {
			t.Error("failed! missing placeholder")
		}
	})
}

func Test_journeyApi_report(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	other := testutil.CreateUser(t, usrRepo, "Other", "other1", "other@test.cd", "", []string{user.RoleStudent}, true)

	jny := testutil.SeedJourney(t, db, student.ID, "SWE Career Track", true)
	otherJny := testutil.SeedJourney(t, db, other.ID, "Data Track", true)

	itResume := testutil.SeedItem(t, db, jny.ID, "Resume Review", "2024-04-01", "2024-04-15", journey.StatusCompleted, nil)
	rpt := testutil.SeedReport(t, db, jny.ID, itResume.ID, "AI Practice Interview Report", map[string]interface{}{
		"meta": map[string]interface{}{"mentor_name": "Coach K", "overall_score": 7.5},
	}, testNow.Add(-24*time.Hour))
	otherRpt := testutil.SeedReport(t, db, otherJny.ID, "", "Resume Review Report", nil, testNow)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/reports/" + rpt.ID, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Unknown report", path: "/v1/reports/lol", token: getToken(t, student),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "report not found"}),
		},
		{
			name: "Cannot view another student's report", path: "/v1/reports/" + otherRpt.ID, token: getToken(t, student),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "report not found"}),
		},
		{
			name: "Hybrid label routes to the practice viewer", path: "/v1/reports/" + rpt.ID, token: getToken(t, student),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, journey.ReportView{Record: rpt, Route: report.RoutePractice, Extract: rpt.Extract()}),
		},
		{
			name: "Owner of the enrollment sees it too", path: "/v1/reports/" + otherRpt.ID, token: getToken(t, other),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, journey.ReportView{Record: otherRpt, Route: report.RouteResume, Extract: otherRpt.Extract()}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
