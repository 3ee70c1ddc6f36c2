package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/ngazi/core/report"
)

type reportRepository struct {
	db *reportTable
}

var _ report.Repository = (*reportRepository)(nil) // interface compliance check

func NewReportRepository(db *DB) *reportRepository {
	return &reportRepository{db: db.report}
}

func (repo *reportRepository) FilterReportsByAttendeeIDs(_ context.Context, attendeeIDs []string) ([]report.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	wanted := make(map[string]struct{}, len(attendeeIDs))
	for _, id := range attendeeIDs {
		wanted[id] = struct{}{}
	}

	records := make([]report.Record, 0)
	for _, rec := range repo.db.table {
		if _, ok := wanted[rec.AttendeeID]; ok {
			records = append(records, *rec)
		}
	}
	// created_at descending, as the real query guarantees
	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt.After(records[j].CreatedAt) })
	return records, nil
}

func (repo *reportRepository) GetReportByID(_ context.Context, id string) (report.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rec, ok := repo.db.table[id]; ok {
		return *rec, nil
	}
	return report.Record{}, report.ErrNotFound
}

// SeedReport inserts a record; reports are written by the external
// reporting pipeline in production.
func (repo *reportRepository) SeedReport(rec report.Record) report.Record {
	repo.db.Lock()
	defer repo.db.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	repo.db.table[rec.ID] = &rec
	return rec
}
