package testutil

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/ngazi/core/journey"
	"github.com/trezcool/ngazi/core/report"
	"github.com/trezcool/ngazi/core/user"
	dummydb "github.com/trezcool/ngazi/storage/database/dummy"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func SeedJourney(t *testing.T, db *dummydb.DB, studentID, title string, isActive bool) journey.Journey {
	t.Helper()

	return dummydb.NewJourneyRepository(db).SeedJourney(journey.Journey{
		StudentID: studentID,
		Title:     title,
		IsActive:  isActive,
		CreatedAt: time.Now().UTC(),
	})
}

func SeedItem(
	t *testing.T,
	db *dummydb.DB,
	journeyID, particulars, startDate, endDate, status string,
	product *journey.Product,
) journey.Item {
	t.Helper()

	return dummydb.NewJourneyRepository(db).SeedItem(journey.Item{
		JourneyID:   journeyID,
		Particulars: particulars,
		StartDate:   journey.DateFromString(startDate),
		EndDate:     journey.DateFromString(endDate),
		Status:      null.NewString(status, status != ""),
		Product:     product,
	})
}

func SeedReport(
	t *testing.T,
	db *dummydb.DB,
	attendeeID, itemID, reportType string,
	data map[string]interface{},
	createdAt time.Time,
) report.Record {
	t.Helper()

	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			t.Fatalf("SeedReport() failed: %v", err)
		}
		raw = b
	}
	return dummydb.NewReportRepository(db).SeedReport(report.Record{
		AttendeeID:    attendeeID,
		JourneyItemID: null.NewString(itemID, itemID != ""),
		ReportType:    reportType,
		ReportData:    raw,
		CreatedAt:     createdAt,
	})
}
