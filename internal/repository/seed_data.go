package repository

import (
	"time"

	"github.com/langchou/fleetquery/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// 示例车队数据
var sampleVehicles = []models.Vehicle{
	{ID: "EV001", Model: "Model A", StateOfCharge: 10.0, HealthStatus: models.HealthPoor, Mileage: 35000, LastServiceDate: day(2024, 5, 1)},
	{ID: "EV002", Model: "Model B", StateOfCharge: 15.0, HealthStatus: models.HealthFair, Mileage: 22000, LastServiceDate: day(2024, 3, 10)},
	{ID: "EV003", Model: "Model C", StateOfCharge: 20.0, HealthStatus: models.HealthGood, Mileage: 18000, LastServiceDate: day(2024, 2, 20)},
	{ID: "EV004", Model: "Model D", StateOfCharge: 25.0, HealthStatus: models.HealthGood, Mileage: 25000, LastServiceDate: day(2024, 4, 15)},
	{ID: "EV005", Model: "Model E", StateOfCharge: 18.0, HealthStatus: models.HealthPoor, Mileage: 30000, LastServiceDate: day(2024, 1, 5)},
	{ID: "EV006", Model: "Model F", StateOfCharge: 12.0, HealthStatus: models.HealthFair, Mileage: 40000, LastServiceDate: day(2024, 6, 1)},
	{ID: "EV007", Model: "Model G", StateOfCharge: 8.0, HealthStatus: models.HealthPoor, Mileage: 45000, LastServiceDate: day(2024, 5, 20)},
	{ID: "EV008", Model: "Model H", StateOfCharge: 22.0, HealthStatus: models.HealthGood, Mileage: 15000, LastServiceDate: day(2024, 3, 25)},
	{ID: "EV009", Model: "Model I", StateOfCharge: 30.0, HealthStatus: models.HealthFair, Mileage: 12000, LastServiceDate: day(2024, 2, 1)},
	{ID: "EV010", Model: "Model J", StateOfCharge: 28.0, HealthStatus: models.HealthExcellent, Mileage: 5000, LastServiceDate: day(2024, 3, 15)},
	{ID: "EV011", Model: "Model K", StateOfCharge: 85.0, HealthStatus: models.HealthGood, Mileage: 6000, LastServiceDate: day(2024, 2, 25)},
	{ID: "EV012", Model: "Model L", StateOfCharge: 95.0, HealthStatus: models.HealthExcellent, Mileage: 2000, LastServiceDate: day(2024, 1, 30)},
	{ID: "EV013", Model: "Model M", StateOfCharge: 82.0, HealthStatus: models.HealthFair, Mileage: 8000, LastServiceDate: day(2024, 4, 10)},
	{ID: "EV014", Model: "Model N", StateOfCharge: 50.0, HealthStatus: models.HealthGood, Mileage: 12000, LastServiceDate: day(2024, 3, 20)},
	{ID: "EV015", Model: "Model O", StateOfCharge: 75.0, HealthStatus: models.HealthExcellent, Mileage: 10000, LastServiceDate: day(2024, 2, 10)},
	{ID: "EV016", Model: "Model P", StateOfCharge: 5.0, HealthStatus: models.HealthPoor, Mileage: 47000, LastServiceDate: day(2024, 6, 5)},
	{ID: "EV017", Model: "Model Q", StateOfCharge: 40.0, HealthStatus: models.HealthGood, Mileage: 20000, LastServiceDate: day(2024, 3, 18)},
	{ID: "EV018", Model: "Model R", StateOfCharge: 90.0, HealthStatus: models.HealthExcellent, Mileage: 3000, LastServiceDate: day(2024, 1, 5)},
	{ID: "EV019", Model: "Model S", StateOfCharge: 78.0, HealthStatus: models.HealthFair, Mileage: 11000, LastServiceDate: day(2024, 2, 28)},
	{ID: "EV020", Model: "Model T", StateOfCharge: 15.0, HealthStatus: models.HealthPoor, Mileage: 35000, LastServiceDate: day(2024, 4, 1)},
}

var sampleAlerts = []models.Alert{
	{VehicleID: "EV001", AlertType: "Brake Failure", AlertDate: day(2024, 12, 25), Severity: models.SeverityHigh},
	{VehicleID: "EV002", AlertType: "Engine Warning", AlertDate: day(2024, 12, 18), Severity: models.SeverityMedium},
	{VehicleID: "EV003", AlertType: "Low Coolant", AlertDate: day(2024, 12, 28), Severity: models.SeverityLow},
	{VehicleID: "EV004", AlertType: "Battery Issue", AlertDate: day(2024, 11, 25), Severity: models.SeverityHigh},
	{VehicleID: "EV005", AlertType: "Flat Tire", AlertDate: day(2024, 12, 10), Severity: models.SeverityMedium},
	{VehicleID: "EV006", AlertType: "Brake Pads Worn", AlertDate: day(2024, 12, 15), Severity: models.SeverityHigh},
	{VehicleID: "EV007", AlertType: "Transmission Issue", AlertDate: day(2024, 12, 20), Severity: models.SeverityHigh},
	{VehicleID: "EV008", AlertType: "Oil Change Needed", AlertDate: day(2024, 12, 5), Severity: models.SeverityLow},
	{VehicleID: "EV009", AlertType: "Steering Issue", AlertDate: day(2024, 11, 30), Severity: models.SeverityMedium},
	{VehicleID: "EV010", AlertType: "Suspension Problem", AlertDate: day(2024, 12, 18), Severity: models.SeverityHigh},
	{VehicleID: "EV011", AlertType: "Suspension Failure", AlertDate: day(2024, 12, 22), Severity: models.SeverityHigh},
	{VehicleID: "EV012", AlertType: "Engine Overheating", AlertDate: day(2024, 12, 21), Severity: models.SeverityHigh},
	{VehicleID: "EV013", AlertType: "Battery Replacement", AlertDate: day(2024, 11, 27), Severity: models.SeverityCritical},
	{VehicleID: "EV014", AlertType: "Wheel Alignment Needed", AlertDate: day(2024, 12, 14), Severity: models.SeverityMedium},
	{VehicleID: "EV015", AlertType: "Airbag Fault", AlertDate: day(2024, 11, 29), Severity: models.SeverityHigh},
	{VehicleID: "EV016", AlertType: "Fuel Pump Failure", AlertDate: day(2024, 12, 25), Severity: models.SeverityHigh},
	{VehicleID: "EV017", AlertType: "Exhaust System Warning", AlertDate: day(2024, 12, 11), Severity: models.SeverityLow},
	{VehicleID: "EV018", AlertType: "Catalytic Converter Issue", AlertDate: day(2024, 12, 17), Severity: models.SeverityMedium},
	{VehicleID: "EV019", AlertType: "Alternator Failure", AlertDate: day(2024, 12, 23), Severity: models.SeverityHigh},
	{VehicleID: "EV020", AlertType: "Suspension Noise", AlertDate: day(2024, 12, 20), Severity: models.SeverityLow},
	{VehicleID: "EV021", AlertType: "Engine Misfire", AlertDate: day(2024, 12, 15), Severity: models.SeverityHigh},
	{VehicleID: "EV022", AlertType: "Radiator Leak", AlertDate: day(2024, 12, 10), Severity: models.SeverityCritical},
	{VehicleID: "EV023", AlertType: "Turbocharger Issue", AlertDate: day(2024, 12, 5), Severity: models.SeverityMedium},
	{VehicleID: "EV024", AlertType: "Timing Belt Worn", AlertDate: day(2024, 12, 12), Severity: models.SeverityHigh},
	{VehicleID: "EV025", AlertType: "Brake Fluid Low", AlertDate: day(2024, 12, 18), Severity: models.SeverityMedium},
	{VehicleID: "EV026", AlertType: "Power Steering Issue", AlertDate: day(2024, 12, 9), Severity: models.SeverityHigh},
	{VehicleID: "EV027", AlertType: "Shock Absorber Fault", AlertDate: day(2024, 12, 13), Severity: models.SeverityMedium},
	{VehicleID: "EV028", AlertType: "Engine Knocking", AlertDate: day(2024, 12, 24), Severity: models.SeverityCritical},
	{VehicleID: "EV029", AlertType: "Suspension Damage", AlertDate: day(2024, 12, 26), Severity: models.SeverityCritical},
	{VehicleID: "EV030", AlertType: "Clutch Problem", AlertDate: day(2024, 12, 30), Severity: models.SeverityHigh},
}

var samplePredictions = []models.MaintenancePrediction{
	{VehicleID: "EV001", PredictedIssue: "Brake Replacement", PredictionDate: day(2024, 12, 29), ConfidenceLevel: 0.75},
	{VehicleID: "EV002", PredictedIssue: "Engine Overhaul", PredictionDate: day(2024, 12, 27), ConfidenceLevel: 0.80},
	{VehicleID: "EV003", PredictedIssue: "Coolant Leak", PredictionDate: day(2024, 12, 30), ConfidenceLevel: 0.70},
	{VehicleID: "EV004", PredictedIssue: "Battery Replacement", PredictionDate: day(2025, 1, 15), ConfidenceLevel: 0.85},
	{VehicleID: "EV005", PredictedIssue: "Tire Change", PredictionDate: day(2025, 1, 20), ConfidenceLevel: 0.65},
	{VehicleID: "EV006", PredictedIssue: "Brake Fluid Replacement", PredictionDate: day(2025, 2, 18), ConfidenceLevel: 0.90},
	{VehicleID: "EV007", PredictedIssue: "Transmission Overhaul", PredictionDate: day(2025, 4, 25), ConfidenceLevel: 0.88},
	{VehicleID: "EV008", PredictedIssue: "Oil Filter Replacement", PredictionDate: day(2025, 5, 5), ConfidenceLevel: 0.72},
	{VehicleID: "EV009", PredictedIssue: "Steering Adjustment", PredictionDate: day(2025, 10, 10), ConfidenceLevel: 0.68},
	{VehicleID: "EV010", PredictedIssue: "Suspension Check", PredictionDate: day(2025, 12, 15), ConfidenceLevel: 0.80},
}
