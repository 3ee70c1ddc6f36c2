package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/ngazi/core/report"
)

type reportRow struct {
	ID            string      `db:"id"`
	AttendeeID    string      `db:"attendee_id"`
	JourneyItemID null.String `db:"journey_item_id"`
	ReportType    string      `db:"report_type"`
	ReportData    []byte      `db:"report_data"`
	CreatedAt     time.Time   `db:"created_at"`
}

type reportRepository struct {
	db *sqlx.DB
}

var _ report.Repository = (*reportRepository)(nil) // interface compliance check

func NewReportRepository(db *sqlx.DB) *reportRepository {
	return &reportRepository{db: db}
}

func (repo reportRepository) fromRow(row reportRow) report.Record {
	return report.Record{
		ID:            row.ID,
		AttendeeID:    row.AttendeeID,
		JourneyItemID: row.JourneyItemID,
		ReportType:    row.ReportType,
		ReportData:    json.RawMessage(row.ReportData),
		CreatedAt:     row.CreatedAt,
	}
}

func (repo reportRepository) FilterReportsByAttendeeIDs(ctx context.Context, attendeeIDs []string) ([]report.Record, error) {
	var rows []reportRow
	q := `SELECT * FROM report WHERE attendee_id = ANY($1) ORDER BY created_at DESC`
	if err := repo.db.SelectContext(ctx, &rows, q, pq.Array(attendeeIDs)); err != nil {
		return nil, errors.Wrap(err, "querying reports")
	}

	recs := make([]report.Record, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, repo.fromRow(row))
	}
	return recs, nil
}

func (repo reportRepository) GetReportByID(ctx context.Context, id string) (report.Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return report.Record{}, report.ErrNotFound
	}

	var row reportRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM report WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return report.Record{}, report.ErrNotFound
		}
		return report.Record{}, errors.Wrap(err, "finding report")
	}
	return repo.fromRow(row), nil
}
