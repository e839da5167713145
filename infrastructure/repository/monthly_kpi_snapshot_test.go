package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/fund-kpi-api/internal/domain"
)

func TestSaveOrUpdateQuery(t *testing.T) {
	entry := &domain.MonthlyKPISnapshotEntry{
		ID:            "abc",
		Quantity:      domain.QuantityAUM,
		Year:          2020,
		BoundaryIndex: 3,
		BoundaryTS:    1585699200,
		Value:         "1500000000000000000",
	}

	query, args, err := saveOrUpdateQuery(entry)
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO monthly_kpi_snapshots (id,quantity,year,boundary_index,boundary_ts,value) VALUES ($1,$2,$3,$4,$5,$6)")
	assert.Contains(t, query, "ON CONFLICT (quantity, year, boundary_index) DO UPDATE SET")
	assert.Equal(t, []interface{}{"abc", "aum", 2020, 3, int64(1585699200), "1500000000000000000"}, args)
}

func TestGetByYearQuery(t *testing.T) {
	query, args, err := getByYearQuery(2021)
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT "+snapshotColumns+" FROM monthly_kpi_snapshots mks WHERE mks.year = $1 ORDER BY mks.quantity ASC, mks.boundary_index ASC",
		query,
	)
	assert.Equal(t, []interface{}{2021}, args)
}

func TestAvailableYearsQuery(t *testing.T) {
	query, args, err := availableYearsQuery()
	require.NoError(t, err)

	assert.Equal(t, "SELECT DISTINCT year FROM monthly_kpi_snapshots ORDER BY year ASC", query)
	assert.Empty(t, args)
}

func TestDeleteOlderThanQuery(t *testing.T) {
	query, args, err := deleteOlderThanQuery(2019)
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM monthly_kpi_snapshots WHERE year < $1", query)
	assert.Equal(t, []interface{}{2019}, args)
}

type recordingQueryer struct {
	execs  []string
	failAt int
}

func (q *recordingQueryer) ExecContext(_ context.Context, query string, _ ...interface{}) (sql.Result, error) {
	q.execs = append(q.execs, query)
	if q.failAt > 0 && len(q.execs) == q.failAt {
		return nil, errors.New("falha de escrita")
	}
	return nil, nil
}

func (q *recordingQueryer) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("não suportado")
}

func (q *recordingQueryer) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func snapshotEntries() []*domain.MonthlyKPISnapshotEntry {
	return []*domain.MonthlyKPISnapshotEntry{
		{Quantity: domain.QuantityInvestors, Year: 2020, BoundaryIndex: 0, Value: "10"},
		{Quantity: domain.QuantityInvestors, Year: 2020, BoundaryIndex: 1, Value: "15"},
	}
}

func TestSaveAll_WithoutTransaction(t *testing.T) {
	conn := &recordingQueryer{}
	repo := NewMonthlyKPISnapshotRepository(conn)

	entries := snapshotEntries()
	require.NoError(t, repo.SaveAll(context.Background(), entries))

	assert.Len(t, conn.execs, 2)
	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
	}
}

func TestSaveAll_StopsOnFirstError(t *testing.T) {
	conn := &recordingQueryer{failAt: 1}
	repo := NewMonthlyKPISnapshotRepository(conn)

	err := repo.SaveAll(context.Background(), snapshotEntries())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "investors/2020/0")
	assert.Len(t, conn.execs, 1)
}

func TestSaveAll_Empty(t *testing.T) {
	conn := &recordingQueryer{}
	require.NoError(t, NewMonthlyKPISnapshotRepository(conn).SaveAll(context.Background(), nil))
	assert.Empty(t, conn.execs)
}
