package models

import "time"

// MaintenancePrediction 故障预测记录
type MaintenancePrediction struct {
	ID              int64     `json:"id" db:"id"`
	VehicleID       string    `json:"vehicle_id" db:"vehicle_id"`
	PredictedIssue  string    `json:"predicted_issue" db:"predicted_issue"`
	PredictionDate  time.Time `json:"prediction_date" db:"prediction_date"`
	ConfidenceLevel float64   `json:"confidence_level" db:"confidence_level"` // 0.0-1.0
}
