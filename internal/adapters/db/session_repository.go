// internal/adapters/db/session_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/barstock/internal/core/domain"
	"github.com/ammerola/barstock/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var sessionColumns = []string{
	"id", "start_date", "completed_date",
	"total_products", "counted_products", "out_of_stock_count", "low_stock_count",
	"COALESCE(export_key, '')", "archived_at",
}

// sessionRepository implements ports.SessionHistoryRepository
type sessionRepository struct {
	db     *Database
	logger *slog.Logger
}

var _ ports.SessionHistoryRepository = (*sessionRepository)(nil)

// NewSessionRepository creates a new session history repository
func NewSessionRepository(db *Database, logger *slog.Logger) ports.SessionHistoryRepository {
	return &sessionRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "session_history")),
	}
}

// Save upserts an archived session and replaces its records
func (r *sessionRepository) Save(ctx context.Context, h *domain.SessionHistory) error {
	if h == nil || h.ID == "" {
		return fmt.Errorf("session history id is required")
	}
	if h.ArchivedAt.IsZero() {
		h.ArchivedAt = time.Now().UTC()
	}

	err := r.db.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO inventory_sessions (
				id, start_date, completed_date,
				total_products, counted_products, out_of_stock_count, low_stock_count,
				export_key, archived_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)
			ON CONFLICT (id) DO UPDATE SET
				start_date = EXCLUDED.start_date,
				completed_date = EXCLUDED.completed_date,
				total_products = EXCLUDED.total_products,
				counted_products = EXCLUDED.counted_products,
				out_of_stock_count = EXCLUDED.out_of_stock_count,
				low_stock_count = EXCLUDED.low_stock_count,
				export_key = COALESCE(EXCLUDED.export_key, inventory_sessions.export_key),
				archived_at = EXCLUDED.archived_at`,
			h.ID, h.StartDate, h.CompletedDate,
			h.TotalProducts, h.CountedProducts, h.OutOfStockCount, h.LowStockCount,
			h.ExportKey, h.ArchivedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert session: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM inventory_session_records WHERE session_id = $1`, h.ID); err != nil {
			return fmt.Errorf("failed to clear session records: %w", err)
		}

		if len(h.Records) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for i, rec := range h.Records {
			batch.Queue(`
				INSERT INTO inventory_session_records (
					session_id, product_id, product_name, category,
					full_bottles, partial_bottle, stock_level, updated_at, position
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				h.ID, rec.ProductID, rec.ProductName, string(rec.Category),
				rec.FullBottles, rec.PartialBottle, rec.StockLevel, nullTime(rec.UpdatedAt), i,
			)
		}

		results := tx.SendBatch(ctx, batch)
		for range h.Records {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("failed to insert session record: %w", err)
			}
		}
		return results.Close()
	})
	if err != nil {
		return fmt.Errorf("failed to save session history: %w", err)
	}

	r.logger.DebugContext(ctx, "session history saved",
		slog.String("session_id", h.ID),
		slog.Int("records", len(h.Records)))
	return nil
}

// FindByID retrieves an archived session with its records
func (r *sessionRepository) FindByID(ctx context.Context, id string) (*domain.SessionHistory, error) {
	query, args, err := squirrel.Select(sessionColumns...).
		From("inventory_sessions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	h, err := scanSession(r.db.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	rows, err := r.db.pool.Query(ctx, `
		SELECT product_id, product_name, category, full_bottles, partial_bottle, stock_level, updated_at
		FROM inventory_session_records
		WHERE session_id = $1
		ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query session records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec       domain.HistoryRecord
			category  string
			updatedAt *time.Time
		)
		if err := rows.Scan(&rec.ProductID, &rec.ProductName, &category,
			&rec.FullBottles, &rec.PartialBottle, &rec.StockLevel, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session record: %w", err)
		}
		rec.Category = domain.Category(category)
		if updatedAt != nil {
			rec.UpdatedAt = updatedAt.UTC()
		}
		h.Records = append(h.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session records: %w", err)
	}

	return h, nil
}

// List returns one page of archived sessions, newest first
func (r *sessionRepository) List(ctx context.Context, params ports.HistoryListParams) (*ports.HistoryListResult, error) {
	params = normalizeListParams(params)

	countSQL, countArgs, err := buildCountQuery(params).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	listSQL, listArgs, err := buildListQuery(params).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.pool.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.SessionHistory, 0, params.PageSize)
	for rows.Next() {
		h, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		items = append(items, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}

	totalPages := int((total + int64(params.PageSize) - 1) / int64(params.PageSize))

	return &ports.HistoryListResult{
		Items:      items,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}

// SetExportKey records where the exported count sheet was stored
func (r *sessionRepository) SetExportKey(ctx context.Context, id, key string) error {
	tag, err := r.db.pool.Exec(ctx, `UPDATE inventory_sessions SET export_key = $2 WHERE id = $1`, id, key)
	if err != nil {
		return fmt.Errorf("failed to set export key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteOlderThan removes sessions completed before cutoff
func (r *sessionRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.pool.Exec(ctx, `DELETE FROM inventory_sessions WHERE completed_date < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old sessions: %w", err)
	}

	if n := tag.RowsAffected(); n > 0 {
		r.logger.InfoContext(ctx, "old sessions deleted",
			slog.Int64("count", n),
			slog.Time("cutoff", cutoff))
	}
	return tag.RowsAffected(), nil
}

func normalizeListParams(p ports.HistoryListParams) ports.HistoryListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

func applyHistoryFilters(qb squirrel.SelectBuilder, p ports.HistoryListParams) squirrel.SelectBuilder {
	if p.From != nil {
		qb = qb.Where(squirrel.GtOrEq{"completed_date": *p.From})
	}
	if p.To != nil {
		qb = qb.Where(squirrel.Lt{"completed_date": *p.To})
	}
	return qb
}

func buildCountQuery(p ports.HistoryListParams) squirrel.SelectBuilder {
	qb := squirrel.Select("COUNT(*)").
		From("inventory_sessions").
		PlaceholderFormat(squirrel.Dollar)
	return applyHistoryFilters(qb, p)
}

func buildListQuery(p ports.HistoryListParams) squirrel.SelectBuilder {
	qb := squirrel.Select(sessionColumns...).
		From("inventory_sessions").
		PlaceholderFormat(squirrel.Dollar)
	return applyHistoryFilters(qb, p).
		OrderBy("completed_date DESC", "id").
		Limit(uint64(p.PageSize)).
		Offset(uint64((p.Page - 1) * p.PageSize))
}

func scanSession(row pgx.Row) (*domain.SessionHistory, error) {
	var h domain.SessionHistory
	if err := row.Scan(
		&h.ID, &h.StartDate, &h.CompletedDate,
		&h.TotalProducts, &h.CountedProducts, &h.OutOfStockCount, &h.LowStockCount,
		&h.ExportKey, &h.ArchivedAt,
	); err != nil {
		return nil, err
	}
	h.StartDate = h.StartDate.UTC()
	h.CompletedDate = h.CompletedDate.UTC()
	h.ArchivedAt = h.ArchivedAt.UTC()
	return &h, nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
