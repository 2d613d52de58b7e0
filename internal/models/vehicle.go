package models

import (
	"strings"
	"time"
)

// HealthStatus 车辆健康状态
type HealthStatus string

const (
	HealthPoor      HealthStatus = "Poor"
	HealthFair      HealthStatus = "Fair"
	HealthGood      HealthStatus = "Good"
	HealthExcellent HealthStatus = "Excellent"
)

// Vehicle 车队车辆
type Vehicle struct {
	ID              string       `json:"id" db:"id"` // EV + 数字，统一大写
	Model           string       `json:"model" db:"model"`
	StateOfCharge   float64      `json:"state_of_charge" db:"state_of_charge"` // 0-100 (%)
	HealthStatus    HealthStatus `json:"health_status" db:"health_status"`
	Mileage         int          `json:"mileage" db:"mileage"`
	LastServiceDate time.Time    `json:"last_service_date" db:"last_service_date"`
}

// NormalizeVehicleID 车辆 ID 比较前统一转为大写
func NormalizeVehicleID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
