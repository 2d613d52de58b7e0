package nlq

import (
	"time"

	"github.com/langchou/fleetquery/internal/models"
)

// Field 可用于过滤的字段，只允许使用下列常量
type Field string

const (
	FieldVehicleKey     Field = "id" // vehicles 表主键
	FieldVehicleID      Field = "vehicle_id"
	FieldAlertType      Field = "alert_type"
	FieldStateOfCharge  Field = "state_of_charge"
	FieldPredictionDate Field = "prediction_date"
)

var knownFields = map[Field]bool{
	FieldVehicleKey:     true,
	FieldVehicleID:      true,
	FieldAlertType:      true,
	FieldStateOfCharge:  true,
	FieldPredictionDate: true,
}

// Op 比较操作
type Op string

const (
	OpEq      Op = "="
	OpEqFold  Op = "lower =" // LOWER(field) = 小写的绑定值
	OpLt      Op = "<"
	OpGt      Op = ">"
	OpBetween Op = "between" // 两端都包含
)

// Predicate 单个谓词；Values 只作为绑定参数传给数据库，不拼接进 SQL
type Predicate struct {
	Field  Field `json:"field"`
	Op     Op    `json:"op"`
	Values []any `json:"values"`
}

// Condition 多个谓词的 AND 组合
type Condition struct {
	Predicates []Predicate `json:"predicates"`
}

func newCondition(preds ...Predicate) *Condition {
	return &Condition{Predicates: preds}
}

// Window 时间窗口，起止日期都包含
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ResolveWindow 结合当前日期把时间表达解析为具体日期区间
func ResolveWindow(spec TimeSpec, now time.Time) Window {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch spec.Kind {
	case TimeNextMonth:
		start := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, loc)
		end := time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, loc)
		return Window{Start: start, End: end}
	case TimeYear:
		return Window{
			Start: time.Date(spec.Year, time.January, 1, 0, 0, 0, 0, loc),
			End:   time.Date(spec.Year, time.December, 31, 0, 0, 0, 0, loc),
		}
	case TimeMonth:
		start := time.Date(spec.Year, spec.Month, 1, 0, 0, 0, 0, loc)
		return Window{
			Start: start,
			End:   time.Date(spec.Year, spec.Month+1, 0, 0, 0, 0, 0, loc),
		}
	case TimeDays:
		return Window{Start: today, End: today.AddDate(0, 0, spec.Days)}
	}
	return Window{Start: today, End: today.AddDate(0, 0, defaultMalfunctionDays)}
}

// BuildCondition 根据意图生成查询条件
// Summary 和 Unknown 没有条件；参数缺失（如空的风险类型）视为无法生成
func BuildCondition(intent Intent, now time.Time) (*Condition, bool) {
	switch intent.Kind {
	case IntentVehicleStatus:
		id := models.NormalizeVehicleID(intent.VehicleID)
		if id == "" {
			return nil, false
		}
		return newCondition(Predicate{Field: FieldVehicleKey, Op: OpEq, Values: []any{id}}), true

	case IntentSpecificVehicleRisk:
		id := models.NormalizeVehicleID(intent.VehicleID)
		risk := cleanRiskType(intent.RiskType)
		if id == "" || risk == "" {
			return nil, false
		}
		return newCondition(
			Predicate{Field: FieldVehicleID, Op: OpEq, Values: []any{id}},
			Predicate{Field: FieldAlertType, Op: OpEqFold, Values: []any{risk}},
		), true

	case IntentGeneralRisk:
		risk := cleanRiskType(intent.RiskType)
		if risk == "" {
			return nil, false
		}
		return newCondition(Predicate{Field: FieldAlertType, Op: OpEqFold, Values: []any{risk}}), true

	case IntentChargeLevel:
		return chargeCondition(intent.Tier)

	case IntentMalfunction:
		if intent.Window == nil {
			return nil, false
		}
		w := ResolveWindow(*intent.Window, now)
		return newCondition(Predicate{Field: FieldPredictionDate, Op: OpBetween, Values: []any{w.Start, w.End}}), true
	}
	return nil, false
}

func chargeCondition(tier ChargeTier) (*Condition, bool) {
	switch tier {
	case TierLow:
		return newCondition(Predicate{Field: FieldStateOfCharge, Op: OpLt, Values: []any{lowChargeBelow}}), true
	case TierMedium:
		return newCondition(Predicate{Field: FieldStateOfCharge, Op: OpBetween, Values: []any{lowChargeBelow, highChargeAbove}}), true
	case TierHigh:
		return newCondition(Predicate{Field: FieldStateOfCharge, Op: OpGt, Values: []any{highChargeAbove}}), true
	}
	return nil, false
}
