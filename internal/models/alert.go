package models

import "time"

// Severity 告警级别
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Alert 车辆告警记录
// VehicleID 不做外键约束，可能指向不存在的车辆
type Alert struct {
	ID        int64     `json:"id" db:"id"`
	VehicleID string    `json:"vehicle_id" db:"vehicle_id"`
	AlertType string    `json:"alert_type" db:"alert_type"` // 例如 "Brake Failure"
	AlertDate time.Time `json:"alert_date" db:"alert_date"`
	Severity  Severity  `json:"severity" db:"severity"`
}
