package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/constant"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/logger"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/infra"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/retry"
)

const (
	TypeRunStarted   = "run.started"
	TypeRunCompleted = "run.completed"
	TypeUnevaluated  = "run.unevaluated"
)

type RunEvent struct {
	Type      string `json:"type"`
	Run       string `json:"run"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type Emitter interface {
	EmitRunStarted(run string, info any) error
	EmitRunCompleted(run string, summary any) error
	EmitUnevaluated(run string, count int) error
	Emit(event RunEvent) error
	Close()
}

type Options struct {
	// MaxAttempts per event, default retry.DefaultMaxAttempts.
	MaxAttempts int
	// InitialInterval between attempts, default retry.DefaultInterval.
	InitialInterval time.Duration
}

type emitter struct {
	pub     infra.Publisher
	subject string
	opts    Options
}

// NewEmitter publishes every event to <subjectPrefix>.run.
func NewEmitter(pub infra.Publisher, subjectPrefix string, opts Options) Emitter {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = retry.DefaultMaxAttempts
	}
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = retry.DefaultInterval
	}
	return &emitter{
		pub:     pub,
		subject: fmt.Sprintf("%s.%s", subjectPrefix, constant.RunEventSubject),
		opts:    opts,
	}
}

func (e *emitter) EmitRunStarted(run string, info any) error {
	return e.Emit(RunEvent{Type: TypeRunStarted, Run: run, Data: info})
}

func (e *emitter) EmitRunCompleted(run string, summary any) error {
	return e.Emit(RunEvent{Type: TypeRunCompleted, Run: run, Data: summary})
}

func (e *emitter) EmitUnevaluated(run string, count int) error {
	return e.Emit(RunEvent{Type: TypeUnevaluated, Run: run, Data: map[string]int{"count": count}})
}

func (e *emitter) Emit(event RunEvent) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UTC().Unix()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return retry.Exponential(func() error {
		return e.pub.Publish(e.subject, data)
	}, retry.ExponentialConfig{
		InitialInterval: e.opts.InitialInterval,
		MaxAttempts:     e.opts.MaxAttempts,
		OnRetry: func(err error, next time.Duration) {
			logger.Warn("Publish failed, retrying", "subject", e.subject, "type", event.Type, "next", next, "err", err)
		},
	})
}

func (e *emitter) Close() {
	if e.pub != nil {
		e.pub.Close()
	}
}

type noopEmitter struct{}

// NewNoopEmitter drops every event. It stands in when NATS is disabled.
func NewNoopEmitter() Emitter { return noopEmitter{} }

func (noopEmitter) EmitRunStarted(string, any) error   { return nil }
func (noopEmitter) EmitRunCompleted(string, any) error { return nil }
func (noopEmitter) EmitUnevaluated(string, int) error  { return nil }
func (noopEmitter) Emit(RunEvent) error                { return nil }
func (noopEmitter) Close()                             {}
