// Package nlq 将车队相关的自然语言问题解析为意图、查询条件和参数化 SQL，
// 并把查询结果渲染为一句可读的回答。
//
// 处理流程: 文本 → Classify → BuildCondition → BuildQuery → (外部存储执行) → Format
//
// 包内所有函数都是纯函数，不持有状态，也不做任何 I/O。
package nlq

import "time"

// IntentKind 意图类型
type IntentKind string

const (
	IntentUnknown             IntentKind = "unknown"
	IntentVehicleStatus       IntentKind = "vehicle_status"
	IntentSpecificVehicleRisk IntentKind = "specific_vehicle_risk"
	IntentChargeLevel         IntentKind = "charge_level"
	IntentGeneralRisk         IntentKind = "general_risk"
	IntentMalfunction         IntentKind = "malfunction"
	IntentSummary             IntentKind = "summary"
)

// ChargeTier 电量档位
type ChargeTier string

const (
	TierLow    ChargeTier = "low"    // < 20
	TierMedium ChargeTier = "medium" // 20 ~ 80 (含两端)
	TierHigh   ChargeTier = "high"   // > 80
)

// 电量档位阈值 (%)
const (
	lowChargeBelow  = 20.0
	highChargeAbove = 80.0
)

// Contains 判断电量是否落在该档位内，与 SQL 条件保持一致
func (t ChargeTier) Contains(soc float64) bool {
	switch t {
	case TierLow:
		return soc < lowChargeBelow
	case TierMedium:
		return soc >= lowChargeBelow && soc <= highChargeAbove
	case TierHigh:
		return soc > highChargeAbove
	}
	return false
}

// SummaryOp 汇总类型
type SummaryOp string

const (
	SummaryAverageCharge SummaryOp = "average_charge"
	SummaryFleetHealth   SummaryOp = "fleet_health"
)

// TimeSpecKind 时间表达类型
type TimeSpecKind string

const (
	TimeNextMonth TimeSpecKind = "next_month" // 下一个自然月
	TimeDays      TimeSpecKind = "days"       // 从今天起 N 天
	TimeYear      TimeSpecKind = "year"       // 指定年份全年
	TimeMonth     TimeSpecKind = "month"      // 指定年月
)

// TimeSpec 问题中出现的时间表达，尚未结合当前日期解析
type TimeSpec struct {
	Kind  TimeSpecKind `json:"kind"`
	Days  int          `json:"days,omitempty"`
	Year  int          `json:"year,omitempty"`
	Month time.Month   `json:"month,omitempty"`
}

// 故障预测的默认时间窗口 (天)
const defaultMalfunctionDays = 180

// Intent 分类结果，按 Kind 区分，只有对应意图的字段有值
type Intent struct {
	Kind      IntentKind `json:"intent"`
	VehicleID string     `json:"vehicle_id,omitempty"`
	RiskType  string     `json:"risk_type,omitempty"`
	Tier      ChargeTier `json:"tier,omitempty"`
	Window    *TimeSpec  `json:"window,omitempty"`
	Operation SummaryOp  `json:"operation,omitempty"`
}

// Unknown 无法识别的意图
func Unknown() Intent {
	return Intent{Kind: IntentUnknown}
}
