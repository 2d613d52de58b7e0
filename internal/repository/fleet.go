package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/langchou/fleetquery/internal/nlq"
)

// ErrNotReadOnly 拒绝执行非 SELECT 语句
var ErrNotReadOnly = errors.New("statement is not read-only")

// Querier pgxpool.Pool / pgx.Tx / pgx.Conn 都满足该接口
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// FleetRepository 车队只读查询
type FleetRepository struct {
	q Querier
}

// NewFleetRepository 创建车队查询仓库
func NewFleetRepository(db *DB) *FleetRepository {
	return &FleetRepository{q: db.Pool}
}

// NewFleetRepositoryWith 使用任意 Querier，测试时传入假实现
func NewFleetRepositoryWith(q Querier) *FleetRepository {
	return &FleetRepository{q: q}
}

// QueryRows 执行结构化查询，按列顺序返回所有行
func (r *FleetRepository) QueryRows(ctx context.Context, query *nlq.Query) ([]nlq.Row, error) {
	sql, args, err := query.SQL()
	if err != nil {
		return nil, err
	}
	if !isSelect(sql) {
		return nil, ErrNotReadOnly
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", query.Table, err)
	}
	defer rows.Close()

	var result []nlq.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", query.Table, err)
		}
		result = append(result, nlq.Row(values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", query.Table, err)
	}

	return result, nil
}

func isSelect(sql string) bool {
	s := strings.TrimSpace(sql)
	if len(s) < len("SELECT") {
		return false
	}
	return strings.EqualFold(s[:len("SELECT")], "SELECT") && !strings.Contains(s, ";")
}
