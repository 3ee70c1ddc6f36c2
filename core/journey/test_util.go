package journey

import (
	"time"

	"github.com/trezcool/ngazi/core/report"
)

type serviceMock struct {
	service
}

// NewServiceMock returns a Service with a frozen clock so that the
// date-based completion checks stay deterministic in tests.
func NewServiceMock(repo Repository, reportRepo report.Repository, cache ViewCache, now time.Time) Service {
	return &serviceMock{
		service: service{
			repo:       repo,
			reportRepo: reportRepo,
			cache:      cache,
			nowFunc:    func() time.Time { return now },
		},
	}
}
