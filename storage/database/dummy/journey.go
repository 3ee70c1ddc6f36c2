package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/ngazi/core/journey"
)

type journeyRepository struct {
	db *journeyTable
}

var _ journey.Repository = (*journeyRepository)(nil) // interface compliance check

func NewJourneyRepository(db *DB) *journeyRepository {
	return &journeyRepository{db: db.journey}
}

func (repo *journeyRepository) ActiveJourneyIDs(_ context.Context, studentID string) ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	ids := make([]string, 0)
	for _, j := range repo.db.journeys {
		if j.StudentID == studentID && j.IsActive {
			ids = append(ids, j.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (repo *journeyRepository) ItemsByJourneyIDs(_ context.Context, journeyIDs []string) ([]journey.Item, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	wanted := make(map[string]struct{}, len(journeyIDs))
	for _, id := range journeyIDs {
		wanted[id] = struct{}{}
	}

	items := make([]journey.Item, 0)
	for _, it := range repo.db.items {
		if _, ok := wanted[it.JourneyID]; ok {
			items = append(items, *it)
		}
	}
	// start_date ascending, absent last; ties break on id for stable output
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i].StartDate.Raw(), items[j].StartDate.Raw()
		switch {
		case a.Valid && !b.Valid:
			return true
		case !a.Valid && b.Valid:
			return false
		case a.String != b.String:
			return a.String < b.String
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (repo *journeyRepository) GetItemByID(_ context.Context, id string) (journey.Item, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if it, ok := repo.db.items[id]; ok {
		return *it, nil
	}
	return journey.Item{}, journey.ErrItemNotFound
}

// Seed helpers; journeys and items are written by the external
// administrative pipeline in production, so only the dummy layer exposes
// creation.

func (repo *journeyRepository) SeedJourney(j journey.Journey) journey.Journey {
	repo.db.Lock()
	defer repo.db.Unlock()

	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	repo.db.journeys[j.ID] = &j
	return j
}

func (repo *journeyRepository) SeedItem(it journey.Item) journey.Item {
	repo.db.Lock()
	defer repo.db.Unlock()

	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	repo.db.items[it.ID] = &it
	return it
}
