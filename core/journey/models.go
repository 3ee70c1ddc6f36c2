package journey

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

type (
	// Module is the catalog entry a product points at.
	Module struct {
		ID          string      `json:"id"`
		Description null.String `json:"description"`
		Category    null.String `json:"category"`
		Mode        null.String `json:"mode"`
	}

	Product struct {
		ID     string  `json:"id"`
		Name   string  `json:"name"`
		Module *Module `json:"module,omitempty"`
	}

	// Item is one scheduled unit of a student's program. Items are
	// created and updated by the external administrative pipeline and
	// are read-only from this layer's perspective.
	Item struct {
		ID           string       `json:"id"`
		JourneyID    string       `json:"journey_id"`
		Particulars  string       `json:"particulars"`
		StartDate    DateValue    `json:"start_date"`
		EndDate      DateValue    `json:"end_date"`
		Status       null.String  `json:"status"` // absent means not started / unspecified
		DeliveryMode null.String  `json:"delivery_mode"`
		TotalHours   null.Float64 `json:"total_hours"`
		Product      *Product     `json:"product,omitempty"`
	}

	// Journey is a student's program enrollment; its id is the attendee
	// id that report records reference.
	Journey struct {
		ID        string    `json:"id"`
		StudentID string    `json:"student_id"`
		Title     string    `json:"title"`
		IsActive  bool      `json:"is_active"`
		CreatedAt time.Time `json:"created_at"`
	}
)

const diagnosticParticulars = "diagnostic interview"

func (it Item) moduleCategory() null.String {
	if it.Product == nil || it.Product.Module == nil {
		return null.String{}
	}
	return it.Product.Module.Category
}

// IsDiagnostic reports whether the item is a diagnostic-interview session,
// either by its title or by its module's category.
func (it Item) IsDiagnostic() bool {
	if strings.Contains(strings.ToLower(it.Particulars), diagnosticParticulars) {
		return true
	}
	if cat := it.moduleCategory(); cat.Valid {
		return strings.EqualFold(cat.String, "diagnostic")
	}
	return false
}
