package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/langchou/fleetquery/internal/metrics"
	"github.com/langchou/fleetquery/internal/nlq"
	"github.com/langchou/fleetquery/internal/state"
)

// RowQuerier 执行结构化查询的存储，repository.FleetRepository 实现该接口
type RowQuerier interface {
	QueryRows(ctx context.Context, q *nlq.Query) ([]nlq.Row, error)
}

// Answer 一次问答的结果
type Answer struct {
	Intent   nlq.Intent `json:"intent"`
	Response string     `json:"response"`
	Rule     string     `json:"rule,omitempty"` // 命中的分类规则，未命中为空
}

// Assistant 车队问答服务
type Assistant struct {
	store        RowQuerier
	logger       *zap.Logger
	metrics      *metrics.Metrics
	now          func() time.Time
	storeTimeout time.Duration
}

// Option Assistant 可选配置
type Option func(*Assistant)

// WithClock 替换时钟，时间窗口相对于该时钟计算
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) {
		if now != nil {
			a.now = now
		}
	}
}

// WithStoreTimeout 限制单次存储查询的时长，0 表示不限制
func WithStoreTimeout(d time.Duration) Option {
	return func(a *Assistant) {
		a.storeTimeout = d
	}
}

// NewAssistant 创建问答服务
func NewAssistant(store RowQuerier, logger *zap.Logger, m *metrics.Metrics, opts ...Option) *Assistant {
	a := &Assistant{
		store:   store,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Answer 回答一个问题，总是返回一句话；存储错误按无结果处理
func (a *Assistant) Answer(ctx context.Context, text string) Answer {
	start := time.Now()
	lc := state.NewLifecycle()

	intent, rule := nlq.ClassifyRule(text)
	answer := Answer{Intent: intent, Rule: rule}

	defer func() {
		a.metrics.ObserveQuery(string(intent.Kind), time.Since(start))
		a.logger.Debug("Question answered",
			zap.String("intent", string(intent.Kind)),
			zap.String("rule", rule),
			zap.String("state", lc.State()),
			zap.String("reason", lc.Reason()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}()

	if intent.Kind == nlq.IntentUnknown {
		a.step(lc.Reject("unknown intent"))
		answer.Response = nlq.Format(intent, nil)
		return answer
	}
	a.step(lc.Trigger(state.EventClassify))

	cond, _ := nlq.BuildCondition(intent, a.now())
	query, ok := nlq.BuildQuery(intent, cond)
	if !ok {
		a.step(lc.Reject("no query"))
		answer.Response = nlq.MsgNoQuery
		return answer
	}
	a.step(lc.Trigger(state.EventPlan))

	rows := a.fetch(ctx, query)
	answer.Response = nlq.Format(intent, rows)
	a.step(lc.Trigger(state.EventAnswer))

	return answer
}

// fetch 执行查询；失败时记录日志并返回空结果
func (a *Assistant) fetch(ctx context.Context, query *nlq.Query) []nlq.Row {
	if a.store == nil {
		return nil
	}

	if a.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.storeTimeout)
		defer cancel()
	}

	rows, err := a.store.QueryRows(ctx, query)
	if err != nil {
		a.metrics.StoreError()
		a.logger.Warn("Failed to query fleet store",
			zap.String("table", string(query.Table)),
			zap.Error(err),
		)
		return nil
	}
	return rows
}

func (a *Assistant) step(err error) {
	if err != nil {
		a.logger.Error("Invalid lifecycle transition", zap.Error(err))
	}
}
