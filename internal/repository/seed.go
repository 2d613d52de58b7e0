package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SeedResult 写入的示例数据行数
type SeedResult struct {
	Vehicles    int
	Alerts      int
	Predictions int
}

// Seed 写入示例车队数据，重复执行不会产生重复记录
// vehicles 按主键去重；alerts / maintenance_predictions 只在表为空时写入
func (db *DB) Seed(ctx context.Context) (*SeedResult, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback(ctx)

	result := &SeedResult{}

	batch := &pgx.Batch{}
	for _, v := range sampleVehicles {
		batch.Queue(`
			INSERT INTO vehicles (id, model, state_of_charge, health_status, mileage, last_service_date)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`, v.ID, v.Model, v.StateOfCharge, string(v.HealthStatus), v.Mileage, v.LastServiceDate)
	}
	n, err := execBatch(ctx, tx, batch)
	if err != nil {
		return nil, fmt.Errorf("seed vehicles: %w", err)
	}
	result.Vehicles = n

	empty, err := tableEmpty(ctx, tx, "alerts")
	if err != nil {
		return nil, err
	}
	if empty {
		batch = &pgx.Batch{}
		for _, a := range sampleAlerts {
			batch.Queue(`
				INSERT INTO alerts (vehicle_id, alert_type, alert_date, severity)
				VALUES ($1, $2, $3, $4)
			`, a.VehicleID, a.AlertType, a.AlertDate, string(a.Severity))
		}
		if result.Alerts, err = execBatch(ctx, tx, batch); err != nil {
			return nil, fmt.Errorf("seed alerts: %w", err)
		}
	}

	empty, err = tableEmpty(ctx, tx, "maintenance_predictions")
	if err != nil {
		return nil, err
	}
	if empty {
		batch = &pgx.Batch{}
		for _, p := range samplePredictions {
			batch.Queue(`
				INSERT INTO maintenance_predictions (vehicle_id, predicted_issue, prediction_date, confidence_level)
				VALUES ($1, $2, $3, $4)
			`, p.VehicleID, p.PredictedIssue, p.PredictionDate, p.ConfidenceLevel)
		}
		if result.Predictions, err = execBatch(ctx, tx, batch); err != nil {
			return nil, fmt.Errorf("seed maintenance predictions: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit seed: %w", err)
	}
	return result, nil
}

// execBatch 执行批量语句，返回受影响的总行数
func execBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) (int, error) {
	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	total := 0
	for i := 0; i < batch.Len(); i++ {
		tag, err := br.Exec()
		if err != nil {
			return 0, err
		}
		total += int(tag.RowsAffected())
	}
	return total, br.Close()
}

// tableEmpty 表名只来自代码常量
func tableEmpty(ctx context.Context, tx pgx.Tx, table string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s)", table)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", table, err)
	}
	return !exists, nil
}
