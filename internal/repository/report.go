package repository

import (
	"context"
	"fmt"
	"time"

	"catalog/loader/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS import_runs (
	id                 UUID PRIMARY KEY,
	started_at         TIMESTAMPTZ NOT NULL,
	finished_at        TIMESTAMPTZ NOT NULL,
	product_type_id    TEXT NOT NULL,
	categories_created INTEGER NOT NULL,
	created            INTEGER NOT NULL,
	updated            INTEGER NOT NULL,
	skipped            INTEGER NOT NULL,
	failed             INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS import_row_outcomes (
	run_id      UUID NOT NULL REFERENCES import_runs (id) ON DELETE CASCADE,
	row_number  INTEGER NOT NULL,
	sku         TEXT NOT NULL,
	name        TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	product_id  TEXT NOT NULL,
	category_id TEXT NOT NULL,
	reason      TEXT NOT NULL,
	PRIMARY KEY (run_id, row_number)
);`

// RunSummary is one stored import run.
type RunSummary struct {
	ID                string
	StartedAt         time.Time
	FinishedAt        time.Time
	CategoriesCreated int
	Created           int
	Updated           int
	Skipped           int
	Failed            int
}

type ReportRepository interface {
	EnsureSchema(ctx context.Context) error
	SaveReport(ctx context.Context, report *domain.ImportReport) error
	RecentRuns(ctx context.Context, limit int) ([]RunSummary, error)
}

type reportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepository {
	return &reportRepository{
		db: db,
	}
}

func (r *reportRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create report tables: %w", err)
	}
	return nil
}

// SaveReport stores a run and all of its row outcomes in one transaction.
func (r *reportRepository) SaveReport(ctx context.Context, report *domain.ImportReport) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
	INSERT INTO import_runs (id, started_at, finished_at, product_type_id, categories_created, created, updated, skipped, failed)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		report.RunID.String(),
		report.StartedAt,
		report.FinishedAt,
		report.ProductTypeID,
		report.CategoriesCreated,
		report.Count(domain.OutcomeCreated),
		report.Count(domain.OutcomeUpdated),
		report.Count(domain.OutcomeSkipped),
		report.Count(domain.OutcomeFailed),
	)
	if err != nil {
		return fmt.Errorf("failed to save import run: %w", err)
	}

	batch := &pgx.Batch{}
	for _, row := range report.Rows {
		batch.Queue(`
		INSERT INTO import_row_outcomes (run_id, row_number, sku, name, outcome, product_id, category_id, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			report.RunID.String(), row.Row, row.SKU, row.Name, row.Outcome.String(), row.ProductID, row.CategoryID, row.Reason)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save row outcomes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit import run: %w", err)
	}
	return nil
}

func (r *reportRepository) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := r.db.Query(ctx, `
	SELECT id::text, started_at, finished_at, categories_created, created, updated, skipped, failed
	FROM import_runs
	ORDER BY started_at DESC
	LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query import runs: %w", err)
	}

	runs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (RunSummary, error) {
		var s RunSummary
		err := row.Scan(&s.ID, &s.StartedAt, &s.FinishedAt, &s.CategoriesCreated, &s.Created, &s.Updated, &s.Skipped, &s.Failed)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read import runs: %w", err)
	}
	return runs, nil
}
