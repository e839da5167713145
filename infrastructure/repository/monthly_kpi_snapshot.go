package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/fund-kpi-api/infrastructure/database/postgres"
	"github.com/vfg2006/fund-kpi-api/internal/domain"
	"github.com/vfg2006/fund-kpi-api/pkg/utils"
)

//go:generate mockgen -source=monthly_kpi_snapshot.go -destination=mocks/mock_monthly_kpi_snapshot.go -package=mocks

const (
	monthlyKPISnapshotsTable = "monthly_kpi_snapshots mks"
	snapshotColumns          = "mks.id, mks.quantity, mks.year, mks.boundary_index, mks.boundary_ts, mks.value, mks.created_at, mks.updated_at"
)

type MonthlyKPISnapshotRepository interface {
	SaveOrUpdate(ctx context.Context, entry *domain.MonthlyKPISnapshotEntry) error
	// SaveAll grava as linhas de um ano numa única transação quando a conexão suporta
	SaveAll(ctx context.Context, entries []*domain.MonthlyKPISnapshotEntry) error
	GetByYear(ctx context.Context, year int) ([]*domain.MonthlyKPISnapshotEntry, error)
	GetAvailableYears(ctx context.Context) ([]int, error)
	DeleteOlderThan(ctx context.Context, years int) (int64, error)
}

type monthlyKPISnapshotRepository struct {
	conn postgres.Queryer
	now  func() time.Time
}

func NewMonthlyKPISnapshotRepository(conn postgres.Queryer) MonthlyKPISnapshotRepository {
	return &monthlyKPISnapshotRepository{
		conn: conn,
		now:  time.Now,
	}
}

func (r *monthlyKPISnapshotRepository) SaveOrUpdate(ctx context.Context, entry *domain.MonthlyKPISnapshotEntry) error {
	return saveEntry(ctx, r.conn, entry)
}

func (r *monthlyKPISnapshotRepository) SaveAll(ctx context.Context, entries []*domain.MonthlyKPISnapshotEntry) error {
	if len(entries) == 0 {
		return nil
	}

	saveAll := func(q postgres.Queryer) error {
		for _, entry := range entries {
			if err := saveEntry(ctx, q, entry); err != nil {
				return fmt.Errorf("snapshot %s/%d/%d: %w", entry.Quantity, entry.Year, entry.BoundaryIndex, err)
			}
		}
		return nil
	}

	if tx, ok := r.conn.(postgres.Transactor); ok {
		return tx.RunInTransaction(ctx, func(tx *sql.Tx) error {
			return saveAll(tx)
		})
	}

	return saveAll(r.conn)
}

func saveEntry(ctx context.Context, conn postgres.Queryer, entry *domain.MonthlyKPISnapshotEntry) error {
	if entry.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar id do snapshot: %w", err)
		}
		entry.ID = id
	}

	sqlQuery, args, err := saveOrUpdateQuery(entry)
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *monthlyKPISnapshotRepository) GetByYear(ctx context.Context, year int) ([]*domain.MonthlyKPISnapshotEntry, error) {
	sqlQuery, args, err := getByYearQuery(year)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.MonthlyKPISnapshotEntry, 0)
	for rows.Next() {
		entry, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshot mensal: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

// GetAvailableYears retorna os anos com snapshots armazenados, em ordem crescente
func (r *monthlyKPISnapshotRepository) GetAvailableYears(ctx context.Context) ([]int, error) {
	query, args, err := availableYearsQuery()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	years := make([]int, 0)
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("erro ao escanear ano: %w", err)
		}
		years = append(years, year)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return years, nil
}

func (r *monthlyKPISnapshotRepository) DeleteOlderThan(ctx context.Context, years int) (int64, error) {
	sqlQuery, args, err := deleteOlderThanQuery(r.now().Year() - years)
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func saveOrUpdateQuery(entry *domain.MonthlyKPISnapshotEntry) (string, []interface{}, error) {
	return squirrel.StatementBuilder.
		Insert("monthly_kpi_snapshots").
		Columns("id", "quantity", "year", "boundary_index", "boundary_ts", "value").
		Values(
			entry.ID,
			string(entry.Quantity),
			entry.Year,
			entry.BoundaryIndex,
			int64(entry.BoundaryTS),
			entry.Value,
		).
		Suffix(`
			ON CONFLICT (quantity, year, boundary_index) DO UPDATE SET
				boundary_ts = EXCLUDED.boundary_ts,
				value = EXCLUDED.value,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func getByYearQuery(year int) (string, []interface{}, error) {
	return squirrel.
		Select(snapshotColumns).
		From(monthlyKPISnapshotsTable).
		Where(squirrel.Eq{"mks.year": year}).
		OrderBy("mks.quantity ASC", "mks.boundary_index ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func availableYearsQuery() (string, []interface{}, error) {
	return squirrel.
		Select("DISTINCT year").
		From("monthly_kpi_snapshots").
		OrderBy("year ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func deleteOlderThanQuery(cutoffYear int) (string, []interface{}, error) {
	return squirrel.Delete("monthly_kpi_snapshots").
		Where(squirrel.Lt{"year": cutoffYear}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func scanSnapshot(rows *sql.Rows) (*domain.MonthlyKPISnapshotEntry, error) {
	entry := &domain.MonthlyKPISnapshotEntry{}
	var quantity string
	var boundaryTS int64

	err := rows.Scan(
		&entry.ID,
		&quantity,
		&entry.Year,
		&entry.BoundaryIndex,
		&boundaryTS,
		&entry.Value,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Quantity = domain.Quantity(quantity)
	entry.BoundaryTS = domain.MonthBoundary(boundaryTS)

	return entry, nil
}
