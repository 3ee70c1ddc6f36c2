package journey

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/ngazi/core/report"
)

type fakeRepo struct {
	journeyIDs map[string][]string // studentID -> active journey ids
	items      []Item
}

func (r *fakeRepo) ActiveJourneyIDs(_ context.Context, studentID string) ([]string, error) {
	return r.journeyIDs[studentID], nil
}

func (r *fakeRepo) ItemsByJourneyIDs(_ context.Context, journeyIDs []string) ([]Item, error) {
	wanted := make(map[string]struct{}, len(journeyIDs))
	for _, id := range journeyIDs {
		wanted[id] = struct{}{}
	}
	var items []Item
	for _, it := range r.items {
		if _, ok := wanted[it.JourneyID]; ok {
			items = append(items, it)
		}
	}
	return items, nil
}

func (r *fakeRepo) GetItemByID(_ context.Context, id string) (Item, error) {
	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, ErrItemNotFound
}

type fakeReportRepo struct {
	records []report.Record
}

func (r *fakeReportRepo) FilterReportsByAttendeeIDs(_ context.Context, attendeeIDs []string) ([]report.Record, error) {
	wanted := make(map[string]struct{}, len(attendeeIDs))
	for _, id := range attendeeIDs {
		wanted[id] = struct{}{}
	}
	var records []report.Record
	for _, rec := range r.records {
		if _, ok := wanted[rec.AttendeeID]; ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (r *fakeReportRepo) GetReportByID(_ context.Context, id string) (report.Record, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return report.Record{}, report.ErrNotFound
}

type fakeCache struct {
	views        map[string]*DerivedView
	sets, gets   int
	invalidation int
}

func newFakeCache() *fakeCache {
	return &fakeCache{views: make(map[string]*DerivedView)}
}

func (c *fakeCache) GetView(_ context.Context, studentID string) (*DerivedView, bool) {
	c.gets++
	view, ok := c.views[studentID]
	return view, ok
}

func (c *fakeCache) SetView(_ context.Context, studentID string, view *DerivedView) {
	c.sets++
	c.views[studentID] = view
}

func (c *fakeCache) InvalidateView(_ context.Context, studentID string) {
	c.invalidation++
	delete(c.views, studentID)
}

func serviceFixtures() (*fakeRepo, *fakeReportRepo) {
	itA := item("a", StatusCompleted, "2024-04-01", "2024-04-15")
	itA.JourneyID = "j1"
	itB := item("b", "", "2024-07-01", "2024-07-10")
	itB.JourneyID = "j1"
	itC := item("c", "", "2024-05-01", "2024-05-10")
	itC.JourneyID = "jx" // another student's journey

	repo := &fakeRepo{
		journeyIDs: map[string][]string{
			"student": {"j1"},
			"other":   {"jx"},
		},
		items: []Item{itA, itB, itC},
	}
	rptRepo := &fakeReportRepo{
		records: []report.Record{
			record("r1", "a", "Resume Review Report", testNow.Add(-1)),
			{ID: "rx", AttendeeID: "jx", ReportType: "Resume Review Report", CreatedAt: testNow},
		},
	}
	return repo, rptRepo
}

func Test_service_StudentView_cache(t *testing.T) {
	repo, rptRepo := serviceFixtures()
	cache := newFakeCache()
	svc := NewServiceMock(repo, rptRepo, cache, testNow)
	ctx := context.Background()

	// miss: build and store
	view, err := svc.StudentView(ctx, "student")
	assert.NoError(t, err)
	assert.Equal(t, 2, view.Stats.Total)
	assert.Equal(t, 1, view.Stats.Completed)
	assert.Equal(t, 1, cache.sets)

	// hit: the stored view is returned as-is
	cache.views["student"] = &DerivedView{Stats: Stats{Total: 99}}
	view, err = svc.StudentView(ctx, "student")
	assert.NoError(t, err)
	assert.Equal(t, 99, view.Stats.Total)
	assert.Equal(t, 1, cache.sets)

	// refresh: drop and rebuild
	view, err = svc.RefreshView(ctx, "student")
	assert.NoError(t, err)
	assert.Equal(t, 2, view.Stats.Total)
	assert.Equal(t, 1, cache.invalidation)
	assert.Equal(t, 2, cache.sets)
}

func Test_service_StudentView_noCache(t *testing.T) {
	repo, rptRepo := serviceFixtures()
	svc := NewServiceMock(repo, rptRepo, nil, testNow)

	view, err := svc.StudentView(context.Background(), "student")
	assert.NoError(t, err)
	assert.Equal(t, 2, view.Stats.Total)
	assert.Contains(t, view.Reports, "a")
	assert.NotContains(t, view.Reports, "c")
}

func Test_service_SessionDetail(t *testing.T) {
	repo, rptRepo := serviceFixtures()
	svc := NewServiceMock(repo, rptRepo, nil, testNow)
	ctx := context.Background()

	t.Run("own item resolves with its report", func(t *testing.T) {
		view, err := svc.SessionDetail(ctx, "student", "a")
		assert.NoError(t, err)
		assert.True(t, view.HasReport)
		assert.Equal(t, "r1", view.Report.ReportID)
	})

	t.Run("own item without report gets placeholder", func(t *testing.T) {
		view, err := svc.SessionDetail(ctx, "student", "b")
		assert.NoError(t, err)
		assert.False(t, view.HasReport)
		assert.True(t, view.Placeholder.Valid)
	})

	t.Run("another student's item is not found", func(t *testing.T) {
		_, err := svc.SessionDetail(ctx, "student", "c")
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("unknown item is not found", func(t *testing.T) {
		_, err := svc.SessionDetail(ctx, "student", "lol")
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func Test_service_Report(t *testing.T) {
	repo, rptRepo := serviceFixtures()
	svc := NewServiceMock(repo, rptRepo, nil, testNow)
	ctx := context.Background()

	t.Run("own report resolves with its route", func(t *testing.T) {
		view, err := svc.Report(ctx, "student", "r1")
		assert.NoError(t, err)
		assert.Equal(t, report.RouteResume, view.Route)
		assert.Equal(t, "r1", view.Extract.ReportID)
	})

	t.Run("another student's report is not found", func(t *testing.T) {
		_, err := svc.Report(ctx, "student", "rx")
		assert.ErrorIs(t, err, report.ErrNotFound)
	})

	t.Run("unknown report is not found", func(t *testing.T) {
		_, err := svc.Report(ctx, "student", "lol")
		assert.ErrorIs(t, err, report.ErrNotFound)
	})
}
