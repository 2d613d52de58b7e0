package nlq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveWindow(t *testing.T) {
	now := time.Date(2024, time.December, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		spec TimeSpec
		now  time.Time
		want Window
	}{
		{"next month rolls the year", TimeSpec{Kind: TimeNextMonth}, now, Window{date(2025, time.January, 1), date(2025, time.January, 31)}},
		{"next month leap february", TimeSpec{Kind: TimeNextMonth}, time.Date(2024, time.January, 31, 23, 0, 0, 0, time.UTC), Window{date(2024, time.February, 1), date(2024, time.February, 29)}},
		{"next 180 days", TimeSpec{Kind: TimeDays, Days: 180}, now, Window{date(2024, time.December, 15), date(2025, time.June, 13)}},
		{"next year is 365 days", TimeSpec{Kind: TimeDays, Days: 365}, now, Window{date(2024, time.December, 15), date(2025, time.December, 15)}},
		{"whole year", TimeSpec{Kind: TimeYear, Year: 2025}, now, Window{date(2025, time.January, 1), date(2025, time.December, 31)}},
		{"specific month", TimeSpec{Kind: TimeMonth, Year: 2025, Month: time.January}, now, Window{date(2025, time.January, 1), date(2025, time.January, 31)}},
		{"specific leap month", TimeSpec{Kind: TimeMonth, Year: 2024, Month: time.February}, now, Window{date(2024, time.February, 1), date(2024, time.February, 29)}},
		{"empty spec uses default", TimeSpec{}, now, Window{date(2024, time.December, 15), date(2025, time.June, 13)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveWindow(tt.spec, tt.now))
		})
	}
}

func TestResolveWindow_AbsoluteIgnoresNow(t *testing.T) {
	spec := TimeSpec{Kind: TimeMonth, Year: 2025, Month: time.January}
	a := ResolveWindow(spec, date(2020, time.March, 3))
	b := ResolveWindow(spec, date(2031, time.August, 9))
	assert.Equal(t, a, b)
}

func TestChargeTier_Contains(t *testing.T) {
	tiers := []ChargeTier{TierLow, TierMedium, TierHigh}
	for soc := 0.0; soc <= 100.0; soc += 0.5 {
		matched := 0
		for _, tier := range tiers {
			if tier.Contains(soc) {
				matched++
			}
		}
		assert.Equal(t, 1, matched, "soc %.1f", soc)
	}

	assert.True(t, TierMedium.Contains(20))
	assert.True(t, TierMedium.Contains(80))
	assert.True(t, TierLow.Contains(19.99))
	assert.True(t, TierHigh.Contains(80.01))
	assert.False(t, ChargeTier("unknown").Contains(50))
}

func TestBuildCondition(t *testing.T) {
	now := time.Date(2024, time.December, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		intent Intent
		want   []Predicate
	}{
		{
			name:   "vehicle status",
			intent: Intent{Kind: IntentVehicleStatus, VehicleID: "ev001"},
			want:   []Predicate{{Field: FieldVehicleKey, Op: OpEq, Values: []any{"EV001"}}},
		},
		{
			name:   "specific vehicle risk",
			intent: Intent{Kind: IntentSpecificVehicleRisk, VehicleID: "EV2", RiskType: "Brake Failure"},
			want: []Predicate{
				{Field: FieldVehicleID, Op: OpEq, Values: []any{"EV2"}},
				{Field: FieldAlertType, Op: OpEqFold, Values: []any{"brake failure"}},
			},
		},
		{
			name:   "general risk",
			intent: Intent{Kind: IntentGeneralRisk, RiskType: "flat tire"},
			want:   []Predicate{{Field: FieldAlertType, Op: OpEqFold, Values: []any{"flat tire"}}},
		},
		{
			name:   "low charge",
			intent: Intent{Kind: IntentChargeLevel, Tier: TierLow},
			want:   []Predicate{{Field: FieldStateOfCharge, Op: OpLt, Values: []any{20.0}}},
		},
		{
			name:   "medium charge",
			intent: Intent{Kind: IntentChargeLevel, Tier: TierMedium},
			want:   []Predicate{{Field: FieldStateOfCharge, Op: OpBetween, Values: []any{20.0, 80.0}}},
		},
		{
			name:   "high charge",
			intent: Intent{Kind: IntentChargeLevel, Tier: TierHigh},
			want:   []Predicate{{Field: FieldStateOfCharge, Op: OpGt, Values: []any{80.0}}},
		},
		{
			name:   "malfunction next month",
			intent: Intent{Kind: IntentMalfunction, Window: &TimeSpec{Kind: TimeNextMonth}},
			want: []Predicate{{
				Field:  FieldPredictionDate,
				Op:     OpBetween,
				Values: []any{date(2025, time.January, 1), date(2025, time.January, 31)},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, ok := BuildCondition(tt.intent, now)
			require.True(t, ok)
			require.NotNil(t, cond)
			assert.Equal(t, tt.want, cond.Predicates)
		})
	}
}

func TestBuildCondition_None(t *testing.T) {
	now := time.Now()
	intents := []Intent{
		Unknown(),
		{Kind: IntentSummary, Operation: SummaryAverageCharge},
		{Kind: IntentSummary, Operation: SummaryFleetHealth},
		{Kind: IntentVehicleStatus},
		{Kind: IntentSpecificVehicleRisk, VehicleID: "EV1", RiskType: " ? "},
		{Kind: IntentGeneralRisk},
		{Kind: IntentChargeLevel, Tier: "extreme"},
		{Kind: IntentMalfunction},
	}

	for _, intent := range intents {
		cond, ok := BuildCondition(intent, now)
		assert.False(t, ok, "intent %+v", intent)
		assert.Nil(t, cond)
	}
}
