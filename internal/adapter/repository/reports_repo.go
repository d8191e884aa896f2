package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"resume-architect/internal/model"
)

// ReportsRepo persists produced score reports and export records. Writes are
// best-effort: the pipeline works without a database, so a nil pool turns
// every call into a no-op.
type ReportsRepo struct {
	pool *pgxpool.Pool
}

func NewReportsRepo(pool *pgxpool.Pool) *ReportsRepo {
	return &ReportsRepo{pool: pool}
}

func (r *ReportsRepo) SaveReport(ctx context.Context, digest string, report model.ScoreReport) error {
	if r.pool == nil {
		return nil
	}
	body, err := json.Marshal(report)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO score_reports (digest, overall, issue_count, report, created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (digest) DO UPDATE SET overall = EXCLUDED.overall, issue_count = EXCLUDED.issue_count, report = EXCLUDED.report`,
		digest, report.Overall, report.IssueCount, body, time.Now().UTC())
	return err
}

// SaveExport records metadata about a produced artifact (never the bytes).
func (r *ReportsRepo) SaveExport(ctx context.Context, sessionID uuid.UUID, variant, filename string, byteSize int) error {
	if r.pool == nil {
		return nil
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO export_records (id, session_id, variant, filename, byte_size, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		uuid.New(), sessionID, variant, filename, byteSize, time.Now().UTC())
	return err
}
