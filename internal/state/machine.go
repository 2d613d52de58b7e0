package state

import (
	"context"
	"fmt"
	"time"

	"github.com/looplab/fsm"
)

// 请求状态常量
const (
	StateReceived   = "received"
	StateClassified = "classified"
	StatePlanned    = "planned"
	StateAnswered   = "answered"
	StateRejected   = "rejected"
)

// 事件常量
const (
	EventClassify = "classify"
	EventPlan     = "plan"
	EventAnswer   = "answer"
	EventReject   = "reject"
)

// Transition 一次状态转换记录
type Transition struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	At   time.Time `json:"at"`
}

// Lifecycle 单个问题的处理状态机，只在一个请求内使用，不共享
type Lifecycle struct {
	fsm     *fsm.FSM
	history []Transition
	reason  string
	now     func() time.Time
}

// NewLifecycle 创建状态机，初始状态为 received
func NewLifecycle() *Lifecycle {
	return newLifecycle(time.Now)
}

func newLifecycle(now func() time.Time) *Lifecycle {
	l := &Lifecycle{now: now}

	l.fsm = fsm.NewFSM(
		StateReceived,
		fsm.Events{
			{Name: EventClassify, Src: []string{StateReceived}, Dst: StateClassified},
			{Name: EventPlan, Src: []string{StateClassified}, Dst: StatePlanned},
			{Name: EventAnswer, Src: []string{StatePlanned}, Dst: StateAnswered},

			// 无法识别或无法生成查询
			{Name: EventReject, Src: []string{StateReceived, StateClassified}, Dst: StateRejected},
		},
		fsm.Callbacks{
			"after_event": func(_ context.Context, e *fsm.Event) {
				if e.Src != e.Dst {
					l.history = append(l.history, Transition{From: e.Src, To: e.Dst, At: l.now()})
				}
			},
		},
	)

	return l
}

// State 当前状态
func (l *Lifecycle) State() string {
	return l.fsm.Current()
}

// Trigger 触发事件
func (l *Lifecycle) Trigger(event string) error {
	if err := l.fsm.Event(context.Background(), event); err != nil {
		return fmt.Errorf("trigger event %s: %w", event, err)
	}
	return nil
}

// Reject 转到 rejected 并记录原因
func (l *Lifecycle) Reject(reason string) error {
	if err := l.Trigger(EventReject); err != nil {
		return err
	}
	l.reason = reason
	return nil
}

// Reason rejected 的原因，其他状态为空
func (l *Lifecycle) Reason() string {
	return l.reason
}

// Done 是否已到达终止状态
func (l *Lifecycle) Done() bool {
	s := l.fsm.Current()
	return s == StateAnswered || s == StateRejected
}

// CanTransition 检查是否可以转换
func (l *Lifecycle) CanTransition(event string) bool {
	return l.fsm.Can(event)
}

// History 返回状态转换记录的副本
func (l *Lifecycle) History() []Transition {
	out := make([]Transition, len(l.history))
	copy(out, l.history)
	return out
}
