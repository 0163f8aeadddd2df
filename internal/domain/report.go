package domain

import (
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

var Outcomes = []Outcome{
	OutcomeCreated,
	OutcomeUpdated,
	OutcomeSkipped,
	OutcomeFailed,
}

func (o Outcome) String() string {
	return string(o)
}

// RowOutcome records what happened to a single source row.
type RowOutcome struct {
	Row        int     `json:"row"`
	SKU        string  `json:"sku,omitempty"`
	Name       string  `json:"name,omitempty"`
	Outcome    Outcome `json:"outcome"`
	ProductID  string  `json:"product_id,omitempty"`
	CategoryID string  `json:"category_id,omitempty"`
	Reason     string  `json:"reason,omitempty"`
	Err        error   `json:"-"`
}

// ImportReport accumulates per-row outcomes of one import run.
type ImportReport struct {
	RunID             uuid.UUID    `json:"run_id"`
	StartedAt         time.Time    `json:"started_at"`
	FinishedAt        time.Time    `json:"finished_at"`
	ProductTypeID     string       `json:"product_type_id"`
	CategoriesCreated int          `json:"categories_created"`
	Rows              []RowOutcome `json:"rows"`
}

func NewImportReport() *ImportReport {
	return &ImportReport{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
		Rows:      make([]RowOutcome, 0),
	}
}

func (r *ImportReport) Add(outcome RowOutcome) {
	r.Rows = append(r.Rows, outcome)
}

// Count returns how many rows ended with the given outcome.
func (r *ImportReport) Count(outcome Outcome) int {
	n := 0
	for _, row := range r.Rows {
		if row.Outcome == outcome {
			n++
		}
	}
	return n
}

// Failures returns the failed rows in source order.
func (r *ImportReport) Failures() []RowOutcome {
	failed := make([]RowOutcome, 0)
	for _, row := range r.Rows {
		if row.Outcome == OutcomeFailed {
			failed = append(failed, row)
		}
	}
	return failed
}
