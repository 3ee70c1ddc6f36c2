package report

import "testing"

func TestClassifyRoute(t *testing.T) {
	tests := []struct {
		label string
		want  Route
	}{
		{"Diagnostic Interview", RouteDiagnostic},
		{"Diagnostic Interview Report", RouteDiagnostic},
		{"DIAGNOSTIC", RouteDiagnostic},
		{"Resume Review", RouteResume},
		{"Practice Interview", RoutePractice},
		{"AI Mock Interview", RouteAI},
		{"AI Mock Interview Report", RouteAI},
		// precedence: practice is checked before ai
		{"AI Practice Interview", RoutePractice},
		// diagnostic wins over everything
		{"AI Diagnostic Session", RouteDiagnostic},
		{"Quarterly Summary", RouteDefault},
		{"", RouteDefault},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := ClassifyRoute(tt.label); got != tt.want {
				t.Errorf("ClassifyRoute(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}
