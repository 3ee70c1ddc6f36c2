package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/ngazi/core/journey"
)

// itemRow flattens the journey_item LEFT JOIN product LEFT JOIN module
// projection; product and module columns are all null when unlinked.
type itemRow struct {
	ID           string       `db:"id"`
	JourneyID    string       `db:"journey_id"`
	Particulars  string       `db:"particulars"`
	StartDate    null.String  `db:"start_date"`
	EndDate      null.String  `db:"end_date"`
	Status       null.String  `db:"status"`
	DeliveryMode null.String  `db:"delivery_mode"`
	TotalHours   null.Float64 `db:"total_hours"`

	ProductID   null.String `db:"product_id"`
	ProductName null.String `db:"product_name"`

	ModuleID          null.String `db:"module_id"`
	ModuleDescription null.String `db:"module_description"`
	ModuleCategory    null.String `db:"module_category"`
	ModuleMode        null.String `db:"module_mode"`
}

const itemQuery = `
SELECT ji.id,
       ji.journey_id,
       ji.particulars,
       ji.start_date,
       ji.end_date,
       ji.status,
       ji.delivery_mode,
       ji.total_hours,
       p.id          AS product_id,
       p.name        AS product_name,
       m.id          AS module_id,
       m.description AS module_description,
       m.category    AS module_category,
       m.mode        AS module_mode
FROM journey_item ji
         LEFT JOIN product p ON p.id = ji.product_id
         LEFT JOIN module m ON m.id = p.module_id`

type journeyRepository struct {
	db *sqlx.DB
}

var _ journey.Repository = (*journeyRepository)(nil) // interface compliance check

func NewJourneyRepository(db *sqlx.DB) *journeyRepository {
	return &journeyRepository{db: db}
}

func (repo journeyRepository) fromRow(row itemRow) journey.Item {
	it := journey.Item{
		ID:           row.ID,
		JourneyID:    row.JourneyID,
		Particulars:  row.Particulars,
		StartDate:    journey.NewDate(row.StartDate),
		EndDate:      journey.NewDate(row.EndDate),
		Status:       row.Status,
		DeliveryMode: row.DeliveryMode,
		TotalHours:   row.TotalHours,
	}
	if row.ProductID.Valid {
		it.Product = &journey.Product{
			ID:   row.ProductID.String,
			Name: row.ProductName.String,
		}
		if row.ModuleID.Valid {
			it.Product.Module = &journey.Module{
				ID:          row.ModuleID.String,
				Description: row.ModuleDescription,
				Category:    row.ModuleCategory,
				Mode:        row.ModuleMode,
			}
		}
	}
	return it
}

func (repo journeyRepository) ActiveJourneyIDs(ctx context.Context, studentID string) ([]string, error) {
	if _, err := uuid.Parse(studentID); err != nil {
		return nil, nil
	}

	var ids []string
	q := `SELECT id FROM journey WHERE student_id = $1 AND is_active`
	if err := repo.db.SelectContext(ctx, &ids, q, studentID); err != nil {
		return nil, errors.Wrap(err, "querying active journeys")
	}
	return ids, nil
}

func (repo journeyRepository) ItemsByJourneyIDs(ctx context.Context, journeyIDs []string) ([]journey.Item, error) {
	var rows []itemRow
	q := itemQuery + `
WHERE ji.journey_id = ANY($1)
ORDER BY ji.start_date ASC NULLS LAST, ji.id`
	if err := repo.db.SelectContext(ctx, &rows, q, pq.Array(journeyIDs)); err != nil {
		return nil, errors.Wrap(err, "querying journey items")
	}

	items := make([]journey.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, repo.fromRow(row))
	}
	return items, nil
}

func (repo journeyRepository) GetItemByID(ctx context.Context, id string) (journey.Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return journey.Item{}, journey.ErrItemNotFound
	}

	var row itemRow
	q := itemQuery + `
WHERE ji.id = $1`
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		if err == sql.ErrNoRows {
			return journey.Item{}, journey.ErrItemNotFound
		}
		return journey.Item{}, errors.Wrap(err, "finding journey item")
	}
	return repo.fromRow(row), nil
}
