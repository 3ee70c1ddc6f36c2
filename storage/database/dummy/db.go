package dummydb

import (
	"sync"

	"github.com/trezcool/ngazi/core/journey"
	"github.com/trezcool/ngazi/core/report"
	"github.com/trezcool/ngazi/core/user"
)

// DB is an in-memory stand-in for the real database; it backs tests and
// local development without a running Postgres.
type DB struct {
	user    *userTable
	journey *journeyTable
	report  *reportTable
}

type userTable struct {
	sync.RWMutex
	table map[string]*user.User
}

type journeyTable struct {
	sync.RWMutex
	journeys map[string]*journey.Journey
	items    map[string]*journey.Item
}

type reportTable struct {
	sync.RWMutex
	table map[string]*report.Record
}

func Open() (*DB, error) {
	return &DB{
		user:    &userTable{table: make(map[string]*user.User)},
		journey: &journeyTable{journeys: make(map[string]*journey.Journey), items: make(map[string]*journey.Item)},
		report:  &reportTable{table: make(map[string]*report.Record)},
	}, nil
}
