package journey

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trezcool/ngazi/core/report"
)

var (
	// errors
	ErrItemNotFound = errors.New("journey item not found")
)

type (
	Repository interface {
		// ActiveJourneyIDs returns the ids of the student's active
		// program enrollments.
		ActiveJourneyIDs(ctx context.Context, studentID string) ([]string, error)
		// ItemsByJourneyIDs returns all items belonging to the given
		// journeys, with product and module embedded when present,
		// ordered by start_date ascending.
		ItemsByJourneyIDs(ctx context.Context, journeyIDs []string) ([]Item, error)
		GetItemByID(ctx context.Context, id string) (Item, error)
	}

	// ViewCache caches whole rebuilt views; there is no partial update
	// path by design.
	ViewCache interface {
		GetView(ctx context.Context, studentID string) (*DerivedView, bool)
		SetView(ctx context.Context, studentID string, view *DerivedView)
		InvalidateView(ctx context.Context, studentID string)
	}

	ReportView struct {
		Record  report.Record  `json:"record"`
		Route   report.Route   `json:"route"`
		Extract report.Extract `json:"extract"`
	}

	Service interface {
		StudentView(ctx context.Context, studentID string) (DerivedView, error)
		SessionDetail(ctx context.Context, studentID, itemID string) (DetailView, error)
		Report(ctx context.Context, studentID, reportID string) (ReportView, error)
		RefreshView(ctx context.Context, studentID string) (DerivedView, error)
	}

	service struct {
		repo       Repository
		reportRepo report.Repository
		cache      ViewCache
		nowFunc    func() time.Time // mockable
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, reportRepo report.Repository, cache ViewCache) Service {
	return &service{
		repo:       repo,
		reportRepo: reportRepo,
		cache:      cache,
		nowFunc:    time.Now,
	}
}

// fetch runs the two independent source queries concurrently and joins on
// both before anything is derived.
func (svc *service) fetch(ctx context.Context, journeyIDs []string) ([]Item, []report.Record, error) {
	var (
		items   []Item
		reports []report.Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		items, err = svc.repo.ItemsByJourneyIDs(gctx, journeyIDs)
		return err
	})
	g.Go(func() (err error) {
		reports, err = svc.reportRepo.FilterReportsByAttendeeIDs(gctx, journeyIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return items, reports, nil
}

func (svc *service) buildView(ctx context.Context, studentID string) (DerivedView, error) {
	journeyIDs, err := svc.repo.ActiveJourneyIDs(ctx, studentID)
	if err != nil {
		return DerivedView{}, err
	}

	var (
		items   []Item
		reports []report.Record
	)
	if len(journeyIDs) > 0 {
		if items, reports, err = svc.fetch(ctx, journeyIDs); err != nil {
			return DerivedView{}, err
		}
	}

	view := Aggregate(items, reports, svc.nowFunc())
	if svc.cache != nil {
		svc.cache.SetView(ctx, studentID, &view)
	}
	return view, nil
}

func (svc *service) StudentView(ctx context.Context, studentID string) (DerivedView, error) {
	if svc.cache != nil {
		if view, ok := svc.cache.GetView(ctx, studentID); ok {
			return *view, nil
		}
	}
	return svc.buildView(ctx, studentID)
}

// RefreshView drops any cached view and rebuilds from fresh inputs.
func (svc *service) RefreshView(ctx context.Context, studentID string) (DerivedView, error) {
	if svc.cache != nil {
		svc.cache.InvalidateView(ctx, studentID)
	}
	return svc.buildView(ctx, studentID)
}

func (svc *service) SessionDetail(ctx context.Context, studentID, itemID string) (DetailView, error) {
	item, err := svc.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return DetailView{}, err
	}

	journeyIDs, err := svc.repo.ActiveJourneyIDs(ctx, studentID)
	if err != nil {
		return DetailView{}, err
	}
	if !containsString(journeyIDs, item.JourneyID) {
		return DetailView{}, ErrItemNotFound
	}

	reports, err := svc.reportRepo.FilterReportsByAttendeeIDs(ctx, []string{item.JourneyID})
	if err != nil {
		return DetailView{}, err
	}

	var rpt *report.Extract
	if extract, ok := AssociateReports(reports)[item.ID]; ok {
		rpt = &extract
	}
	return ResolveSessionDetail(item, rpt), nil
}

func (svc *service) Report(ctx context.Context, studentID, reportID string) (ReportView, error) {
	rec, err := svc.reportRepo.GetReportByID(ctx, reportID)
	if err != nil {
		return ReportView{}, err
	}

	// a report is only visible to the student whose enrollment it belongs to
	journeyIDs, err := svc.repo.ActiveJourneyIDs(ctx, studentID)
	if err != nil {
		return ReportView{}, err
	}
	if !containsString(journeyIDs, rec.AttendeeID) {
		return ReportView{}, report.ErrNotFound
	}

	return ReportView{
		Record:  rec,
		Route:   report.ClassifyRoute(rec.ReportType),
		Extract: rec.Extract(),
	}, nil
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
