package report

import "strings"

// Route is the symbolic category used to pick which report-viewer page
// a report opens in.
type Route string

const (
	RouteDiagnostic Route = "diagnostic"
	RouteResume     Route = "resume"
	RoutePractice   Route = "practice"
	RouteAI         Route = "ai"
	RouteDefault    Route = "default" // generic profile view
)

// Keyword precedence is a deliberate tie-break for hybrid labels: an
// "AI Practice Interview" report opens the practice viewer because that
// check comes first. Do not reorder without signoff from whoever owns the
// report taxonomy.
var routeKeywords = []struct {
	keyword string
	route   Route
}{
	{"diagnostic", RouteDiagnostic},
	{"resume", RouteResume},
	{"practice", RoutePractice},
	{"ai", RouteAI},
}

// ClassifyRoute maps a free-text report-type label to a viewer route.
// Case-insensitive substring match, first keyword wins; unknown or empty
// labels fall through to the default route. Never fails.
func ClassifyRoute(reportType string) Route {
	label := strings.ToLower(reportType)
	for _, rk := range routeKeywords {
		if strings.Contains(label, rk.keyword) {
			return rk.route
		}
	}
	return RouteDefault
}
