package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB 数据库连接池封装
type DB struct {
	Pool *pgxpool.Pool
}

// New 创建数据库连接
func New(ctx context.Context, databaseURL string, maxConns, minConns int32) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	// 连接池配置
	if maxConns > 0 {
		config.MaxConns = maxConns
	}
	if minConns > 0 && minConns <= config.MaxConns {
		config.MinConns = minConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// 测试连接
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close 关闭连接池
func (db *DB) Close() {
	db.Pool.Close()
}

// Ping 检查数据库连接
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Migrate 执行数据库迁移
func (db *DB) Migrate(ctx context.Context) error {
	migrations := []string{
		migrationCreateVehicles,
		migrationCreateAlerts,
		migrationCreateMaintenancePredictions,
	}

	for _, m := range migrations {
		if _, err := db.Pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("execute migration: %w", err)
		}
	}

	return nil
}

// 数据库迁移 SQL
const migrationCreateVehicles = `
CREATE TABLE IF NOT EXISTS vehicles (
    id TEXT PRIMARY KEY,
    model TEXT,
    state_of_charge DOUBLE PRECISION,
    health_status TEXT,
    mileage INT,
    last_service_date DATE
);
CREATE INDEX IF NOT EXISTS idx_vehicles_state_of_charge ON vehicles(state_of_charge);
`

// alerts / maintenance_predictions 的 vehicle_id 不加外键，允许孤立记录
const migrationCreateAlerts = `
CREATE TABLE IF NOT EXISTS alerts (
    id BIGSERIAL PRIMARY KEY,
    vehicle_id TEXT NOT NULL,
    alert_type TEXT NOT NULL,
    alert_date DATE NOT NULL,
    severity TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_alerts_vehicle_id ON alerts(vehicle_id);
CREATE INDEX IF NOT EXISTS idx_alerts_alert_type_lower ON alerts(LOWER(alert_type));
`

const migrationCreateMaintenancePredictions = `
CREATE TABLE IF NOT EXISTS maintenance_predictions (
    id BIGSERIAL PRIMARY KEY,
    vehicle_id TEXT NOT NULL,
    predicted_issue TEXT NOT NULL,
    prediction_date DATE NOT NULL,
    confidence_level DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_maintenance_predictions_date ON maintenance_predictions(prediction_date);
`
