package nlq

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsafeIdentifier 查询中出现了白名单以外的表名、列名或操作
var ErrUnsafeIdentifier = errors.New("unsafe identifier in query")

// Table 查询目标表
type Table string

const (
	TableVehicles    Table = "vehicles"
	TableAlerts      Table = "alerts"
	TablePredictions Table = "maintenance_predictions"
)

var knownTables = map[Table]bool{
	TableVehicles:    true,
	TableAlerts:      true,
	TablePredictions: true,
}

// 各意图的投影列
var (
	vehicleColumns    = []string{"id", "model", "state_of_charge", "health_status", "mileage", "last_service_date"}
	chargeColumns     = []string{"id", "model", "state_of_charge"}
	alertColumns      = []string{"vehicle_id", "alert_type", "alert_date", "severity"}
	predictionColumns = []string{"vehicle_id", "predicted_issue", "prediction_date", "confidence_level"}
	averageColumns    = []string{"AVG(state_of_charge) AS avg_charge", "COUNT(*) AS total_vehicles"}
	healthColumns     = []string{"health_status", "COUNT(*) AS count"}
)

var knownColumns = map[string]bool{}

func init() {
	for _, cols := range [][]string{vehicleColumns, chargeColumns, alertColumns, predictionColumns, averageColumns, healthColumns} {
		for _, c := range cols {
			knownColumns[c] = true
		}
	}
}

// Query 结构化查询，由 SQL 渲染为参数化语句
type Query struct {
	Table    Table      `json:"table"`
	Columns  []string   `json:"columns"`
	Distinct bool       `json:"distinct,omitempty"`
	Where    *Condition `json:"where,omitempty"`
	GroupBy  []string   `json:"group_by,omitempty"`
	OrderBy  []string   `json:"order_by,omitempty"`
}

// BuildQuery 根据意图和条件构造查询；无法构造时返回 false
func BuildQuery(intent Intent, cond *Condition) (*Query, bool) {
	switch intent.Kind {
	case IntentVehicleStatus:
		if cond == nil {
			return nil, false
		}
		return &Query{Table: TableVehicles, Columns: vehicleColumns, Where: cond, OrderBy: []string{"id"}}, true

	case IntentSpecificVehicleRisk, IntentGeneralRisk:
		if cond == nil {
			return nil, false
		}
		return &Query{
			Table:    TableAlerts,
			Columns:  alertColumns,
			Distinct: intent.Kind == IntentGeneralRisk,
			Where:    cond,
			OrderBy:  []string{"vehicle_id", "alert_date"},
		}, true

	case IntentChargeLevel:
		if cond == nil {
			return nil, false
		}
		return &Query{Table: TableVehicles, Columns: chargeColumns, Where: cond, OrderBy: []string{"id"}}, true

	case IntentMalfunction:
		if cond == nil {
			return nil, false
		}
		return &Query{
			Table:    TablePredictions,
			Columns:  predictionColumns,
			Distinct: true,
			Where:    cond,
			OrderBy:  []string{"prediction_date", "vehicle_id"},
		}, true

	case IntentSummary:
		switch intent.Operation {
		case SummaryAverageCharge:
			return &Query{Table: TableVehicles, Columns: averageColumns}, true
		case SummaryFleetHealth:
			return &Query{
				Table:   TableVehicles,
				Columns: healthColumns,
				GroupBy: []string{"health_status"},
				OrderBy: []string{"health_status"},
			}, true
		}
	}
	return nil, false
}

// SQL 渲染为 PostgreSQL 语句和绑定参数 ($1, $2, ...)
// 表名、列名和字段只能来自白名单，用户输入只会出现在参数中
func (q *Query) SQL() (string, []any, error) {
	if !knownTables[q.Table] {
		return "", nil, fmt.Errorf("%w: table %q", ErrUnsafeIdentifier, q.Table)
	}
	if len(q.Columns) == 0 {
		return "", nil, fmt.Errorf("%w: empty projection", ErrUnsafeIdentifier)
	}
	for _, lists := range [][]string{q.Columns, q.GroupBy, q.OrderBy} {
		for _, c := range lists {
			if !knownColumns[c] {
				return "", nil, fmt.Errorf("%w: column %q", ErrUnsafeIdentifier, c)
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	if q.Distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(strings.Join(q.Columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(string(q.Table))

	var args []any
	if q.Where != nil && len(q.Where.Predicates) > 0 {
		clauses := make([]string, 0, len(q.Where.Predicates))
		for _, p := range q.Where.Predicates {
			clause, err := renderPredicate(p, len(args)+1)
			if err != nil {
				return "", nil, err
			}
			clauses = append(clauses, clause)
			args = append(args, p.Values...)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(clauses, " AND "))
	}

	if len(q.GroupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(q.GroupBy, ", "))
	}
	if len(q.OrderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(q.OrderBy, ", "))
	}

	return sb.String(), args, nil
}

func renderPredicate(p Predicate, argIndex int) (string, error) {
	if !knownFields[p.Field] {
		return "", fmt.Errorf("%w: field %q", ErrUnsafeIdentifier, p.Field)
	}

	want := 1
	if p.Op == OpBetween {
		want = 2
	}
	if len(p.Values) != want {
		return "", fmt.Errorf("predicate on %s: want %d values, got %d", p.Field, want, len(p.Values))
	}

	switch p.Op {
	case OpEq, OpLt, OpGt:
		return fmt.Sprintf("%s %s $%d", p.Field, p.Op, argIndex), nil
	case OpEqFold:
		return fmt.Sprintf("LOWER(%s) = $%d", p.Field, argIndex), nil
	case OpBetween:
		return fmt.Sprintf("%s BETWEEN $%d AND $%d", p.Field, argIndex, argIndex+1), nil
	}
	return "", fmt.Errorf("%w: op %q", ErrUnsafeIdentifier, p.Op)
}
