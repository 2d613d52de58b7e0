package nlq

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Row 一行查询结果，列顺序与 Query.Columns 一致
type Row []any

// 回答模板
const (
	MsgUnknown = "I'm sorry, I couldn't understand your query. " +
		"Please try rephrasing or asking about specific conditions, such as " +
		"'Which EVs are at risk of brake failure?' or 'Which EVs are expected to malfunction in 2025?'."
	MsgNoQuery   = "No valid SQL query generated for the intent. Please refine your query."
	MsgUnhandled = "Unhandled query. Please try a different question or refer to the query examples."

	MsgNoVehicle     = "No data available for the specified vehicle ID."
	MsgNoRisk        = "No matching vehicles found for the specified condition in the database."
	MsgNoCharge      = "No vehicles match the specified charge condition."
	MsgNoMalfunction = "No vehicles are expected to malfunction in the specified time period."
	MsgNoFleetData   = "No fleet data available."
	MsgNoFleetHealth = "No fleet health data available."
)

const dateLayout = "2006-01-02"

// Format 将查询结果渲染为回答，相同输入总是得到相同输出
func Format(intent Intent, rows []Row) string {
	switch intent.Kind {
	case IntentUnknown:
		return MsgUnknown

	case IntentVehicleStatus:
		if len(rows) == 0 {
			return MsgNoVehicle
		}
		return "Vehicle Status: " + formatTuple(rows[0])

	case IntentSpecificVehicleRisk, IntentGeneralRisk:
		return formatRisk(rows)

	case IntentChargeLevel:
		if len(rows) == 0 {
			return MsgNoCharge
		}
		parts := make([]string, 0, len(rows))
		for _, row := range rows {
			parts = append(parts, fmt.Sprintf("%s (ID: %s, SoC: %s%%)",
				text(col(row, 1)), text(col(row, 0)), text(col(row, 2))))
		}
		return "Vehicles matching the charge condition: " + strings.Join(parts, ", ")

	case IntentMalfunction:
		if len(rows) == 0 {
			return MsgNoMalfunction
		}
		parts := make([]string, 0, len(rows))
		for _, row := range rows {
			parts = append(parts, fmt.Sprintf("Vehicle %s (%s) on %s with confidence %s",
				text(col(row, 0)), text(col(row, 1)), text(col(row, 2)), fixed2(col(row, 3))))
		}
		return "Predicted malfunctions: " + strings.Join(parts, ", ")

	case IntentSummary:
		switch intent.Operation {
		case SummaryAverageCharge:
			if len(rows) == 0 || col(rows[0], 0) == nil {
				return MsgNoFleetData
			}
			return fmt.Sprintf("Fleet Summary: Average State of Charge = %s%%, Total Vehicles = %s",
				fixed2(col(rows[0], 0)), text(col(rows[0], 1)))
		case SummaryFleetHealth:
			if len(rows) == 0 {
				return MsgNoFleetHealth
			}
			parts := make([]string, 0, len(rows))
			for _, row := range rows {
				parts = append(parts, fmt.Sprintf("%s: %s vehicles", text(col(row, 0)), text(col(row, 1))))
			}
			return "Fleet Health Summary: " + strings.Join(parts, ", ")
		}
	}
	return MsgUnhandled
}

func formatRisk(rows []Row) string {
	if len(rows) == 0 {
		return MsgNoRisk
	}
	parts := make([]string, 0, len(rows))
	for _, row := range rows {
		parts = append(parts, fmt.Sprintf("Vehicle %s: %s reported on %s with severity %s",
			text(col(row, 0)), text(col(row, 1)), text(col(row, 2)), text(col(row, 3))))
	}
	return "Vehicles at risk: " + strings.Join(parts, "; ")
}

// col 越界时返回 nil，避免列数不符时 panic
func col(row Row, i int) any {
	if i < 0 || i >= len(row) {
		return nil
	}
	return row[i]
}

// formatTuple 形如 ('EV001', 'Model A', 10.0, 'Poor', 35000, '2024-05-01')
func formatTuple(row Row) string {
	items := make([]string, len(row))
	for i, v := range row {
		switch v.(type) {
		case nil:
			items[i] = "NULL"
		case string, []byte, time.Time, fmt.Stringer:
			items[i] = "'" + text(v) + "'"
		default:
			items[i] = text(v)
		}
	}
	return "(" + strings.Join(items, ", ") + ")"
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(dateLayout)
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// formatFloat 最短表示，整数值保留一位小数 (10 → "10.0")
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// fixed2 数值保留两位小数，非数值原样输出
func fixed2(v any) string {
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', 2, 64)
	}
	return text(v)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}
