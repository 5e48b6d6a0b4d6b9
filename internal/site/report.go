package site

import (
	"fmt"
	"time"
)

// StageResult enumerates per-stage classification outcomes.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultWarning  StageResult = "warning"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
)

// stageWarning marks a stage error as non-fatal: the stage completed with
// degraded output and the build continues.
type stageWarning struct{ msg string }

func (w stageWarning) Error() string { return w.msg }

func warnf(format string, args ...any) error {
	return stageWarning{msg: fmt.Sprintf(format, args...)}
}

// Build outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeFailed   = "failed"
	OutcomeCanceled = "canceled"
)

// StageOutcome captures the result of one executed stage.
type StageOutcome struct {
	Result   StageResult
	Duration time.Duration
	Err      string
}

// Report summarizes one build run.
type Report struct {
	BuildID       string
	Start         time.Time
	End           time.Time
	Outcome       string
	Stages        map[StageName]StageOutcome
	PagesRendered int
	AssetsCopied  int
}

// Duration returns the total wall-clock build time.
func (r *Report) Duration() time.Duration {
	return r.End.Sub(r.Start)
}
