package model

import (
	"time"

	"go.uber.org/zap"
)

// Reporter receives progress notifications around a build. It cannot affect the result.
type Reporter interface {
	BeginTask(description string)
	EndTask()
}

// NopReporter ignores all notifications
type NopReporter struct{}

func (NopReporter) BeginTask(string) {}
func (NopReporter) EndTask()         {}

// LogReporter logs the start and the duration of each task
type LogReporter struct {
	Log   *zap.Logger
	task  string
	start time.Time
}

func NewLogReporter(log *zap.Logger) *LogReporter {
	return &LogReporter{Log: log}
}

func (r *LogReporter) BeginTask(description string) {
	r.task, r.start = description, time.Now()
	r.Log.Info(description + "...")
}

func (r *LogReporter) EndTask() {
	r.Log.Info(r.task+" done", zap.Duration("elapsed", time.Since(r.start)))
}
