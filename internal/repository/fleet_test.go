package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langchou/fleetquery/internal/nlq"
)

type fakeRows struct {
	data   [][]any
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Scan(dest ...any) error                       { return errors.New("not supported") }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.data[r.pos-1], nil
}

type fakeQuerier struct {
	rows    *fakeRows
	err     error
	gotSQL  string
	gotArgs []any
}

func (q *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.gotSQL = sql
	q.gotArgs = args
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func TestFleetRepository_QueryRows(t *testing.T) {
	rows := &fakeRows{data: [][]any{
		{"EV001", "Model A", 10.0},
		{"EV002", "Model B", 15.0},
	}}
	fq := &fakeQuerier{rows: rows}
	repo := NewFleetRepositoryWith(fq)

	intent := nlq.Classify("Which EVs have low charge?")
	cond, ok := nlq.BuildCondition(intent, time.Now())
	require.True(t, ok)
	query, ok := nlq.BuildQuery(intent, cond)
	require.True(t, ok)

	got, err := repo.QueryRows(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, []nlq.Row{{"EV001", "Model A", 10.0}, {"EV002", "Model B", 15.0}}, got)
	assert.Equal(t, "SELECT id, model, state_of_charge FROM vehicles WHERE state_of_charge < $1 ORDER BY id", fq.gotSQL)
	assert.Equal(t, []any{20.0}, fq.gotArgs)
	assert.True(t, rows.closed)
}

func TestFleetRepository_QueryRowsEmpty(t *testing.T) {
	repo := NewFleetRepositoryWith(&fakeQuerier{rows: &fakeRows{}})
	query, ok := nlq.BuildQuery(nlq.Intent{Kind: nlq.IntentSummary, Operation: nlq.SummaryFleetHealth}, nil)
	require.True(t, ok)

	got, err := repo.QueryRows(context.Background(), query)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFleetRepository_QueryError(t *testing.T) {
	boom := errors.New("connection refused")
	repo := NewFleetRepositoryWith(&fakeQuerier{err: boom})
	query, _ := nlq.BuildQuery(nlq.Intent{Kind: nlq.IntentSummary, Operation: nlq.SummaryAverageCharge}, nil)

	_, err := repo.QueryRows(context.Background(), query)
	assert.ErrorIs(t, err, boom)
}

func TestFleetRepository_RowsError(t *testing.T) {
	boom := errors.New("broken pipe")
	repo := NewFleetRepositoryWith(&fakeQuerier{rows: &fakeRows{err: boom}})
	query, _ := nlq.BuildQuery(nlq.Intent{Kind: nlq.IntentSummary, Operation: nlq.SummaryAverageCharge}, nil)

	_, err := repo.QueryRows(context.Background(), query)
	assert.ErrorIs(t, err, boom)
}

func TestFleetRepository_RejectsUnsafeQuery(t *testing.T) {
	fq := &fakeQuerier{rows: &fakeRows{}}
	repo := NewFleetRepositoryWith(fq)

	_, err := repo.QueryRows(context.Background(), &nlq.Query{Table: "users", Columns: []string{"id"}})
	assert.ErrorIs(t, err, nlq.ErrUnsafeIdentifier)
	assert.Empty(t, fq.gotSQL)
}

func TestIsSelect(t *testing.T) {
	assert.True(t, isSelect("SELECT 1"))
	assert.True(t, isSelect("  select id FROM vehicles"))
	assert.False(t, isSelect("DELETE FROM vehicles"))
	assert.False(t, isSelect("SELECT 1; DROP TABLE vehicles"))
	assert.False(t, isSelect("SEL"))
}
