package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/langchou/fleetquery/internal/metrics"
	"github.com/langchou/fleetquery/internal/nlq"
)

type stubStore struct {
	rows    []nlq.Row
	err     error
	calls   int
	queries []*nlq.Query
	block   bool
}

func (s *stubStore) QueryRows(ctx context.Context, q *nlq.Query) ([]nlq.Row, error) {
	s.calls++
	s.queries = append(s.queries, q)
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.rows, s.err
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestAssistant(t *testing.T, store RowQuerier, opts ...Option) (*Assistant, *metrics.Metrics) {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	clock := WithClock(func() time.Time { return time.Date(2024, time.June, 15, 9, 30, 0, 0, time.UTC) })
	return NewAssistant(store, zap.NewNop(), m, append([]Option{clock}, opts...)...), m
}

func TestAssistant_Answer(t *testing.T) {
	tests := []struct {
		name     string
		question string
		rows     []nlq.Row
		want     string
		rule     string
	}{
		{
			name:     "vehicle status",
			question: "What is the status of EV001?",
			rows:     []nlq.Row{{"EV001", "Model A", 10.0, "Poor", int32(35000), date(2024, 5, 1)}},
			want:     "Vehicle Status: ('EV001', 'Model A', 10.0, 'Poor', 35000, '2024-05-01')",
			rule:     "vehicle_status",
		},
		{
			name:     "low charge",
			question: "Which EVs have low charge?",
			rows:     []nlq.Row{{"EV001", "Model A", 10.0}, {"EV002", "Model B", 15.5}},
			want:     "Vehicles matching the charge condition: Model A (ID: EV001, SoC: 10.0%), Model B (ID: EV002, SoC: 15.5%)",
			rule:     "charge_low",
		},
		{
			name:     "general risk without rows",
			question: "Which EVs are at risk of brake failure?",
			want:     nlq.MsgNoRisk,
			rule:     "general_risk",
		},
		{
			name:     "average charge",
			question: "What is the average state of charge?",
			rows:     []nlq.Row{{44.123, int64(20)}},
			want:     "Fleet Summary: Average State of Charge = 44.12%, Total Vehicles = 20",
			rule:     "average_charge",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubStore{rows: tt.rows}
			a, _ := newTestAssistant(t, store)

			got := a.Answer(context.Background(), tt.question)
			assert.Equal(t, tt.want, got.Response)
			assert.Equal(t, tt.rule, got.Rule)
			assert.Equal(t, 1, store.calls)
		})
	}
}

func TestAssistant_Unknown(t *testing.T) {
	store := &stubStore{}
	a, m := newTestAssistant(t, store)

	got := a.Answer(context.Background(), "tell me a joke")
	assert.Equal(t, nlq.MsgUnknown, got.Response)
	assert.Equal(t, nlq.IntentUnknown, got.Intent.Kind)
	assert.Empty(t, got.Rule)
	assert.Zero(t, store.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues("unknown")))
}

func TestAssistant_NoQuery(t *testing.T) {
	store := &stubStore{}
	a, _ := newTestAssistant(t, store)

	got := a.Answer(context.Background(), "Which EVs are at risk of ?")
	assert.Equal(t, nlq.MsgNoQuery, got.Response)
	assert.Equal(t, nlq.IntentGeneralRisk, got.Intent.Kind)
	assert.Zero(t, store.calls)
}

func TestAssistant_StoreErrorEqualsNoRows(t *testing.T) {
	failing := &stubStore{err: errors.New("connection refused")}
	a, m := newTestAssistant(t, failing)
	empty := &stubStore{}
	b, _ := newTestAssistant(t, empty)

	for _, q := range []string{
		"What is the status of EV003?",
		"Which EVs have high charge?",
		"Is EV001 at risk of battery failure?",
		"Which EVs are expected to malfunction next month?",
		"Show fleet health",
	} {
		assert.Equal(t, b.Answer(context.Background(), q).Response, a.Answer(context.Background(), q).Response, q)
	}
	assert.Equal(t, 5.0, testutil.ToFloat64(m.StoreErrors))
}

func TestAssistant_MalfunctionWindowUsesClock(t *testing.T) {
	store := &stubStore{}
	a, _ := newTestAssistant(t, store)

	a.Answer(context.Background(), "Which EVs are expected to malfunction next month?")
	require.Len(t, store.queries, 1)

	pred := store.queries[0].Where.Predicates[0]
	assert.Equal(t, nlq.FieldPredictionDate, pred.Field)
	assert.Equal(t, []any{date(2024, 7, 1), date(2024, 7, 31)}, pred.Values)
}

func TestAssistant_StoreTimeout(t *testing.T) {
	store := &stubStore{block: true}
	a, m := newTestAssistant(t, store, WithStoreTimeout(10*time.Millisecond))

	got := a.Answer(context.Background(), "Which EVs have medium charge?")
	assert.Equal(t, nlq.MsgNoCharge, got.Response)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreErrors))
}

func TestAssistant_NilStoreAndMetrics(t *testing.T) {
	a := NewAssistant(nil, zap.NewNop(), nil)
	got := a.Answer(context.Background(), "fleet health please")
	assert.Equal(t, nlq.MsgNoFleetHealth, got.Response)
}
