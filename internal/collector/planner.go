package collector

import (
	"time"

	"lpec/internal/models"
	"lpec/internal/providers"
)

// Planner derives the effective collection start from the operator input,
// the last checkpoint and the current time, then partitions the span into
// query windows.
type Planner struct {
	logger providers.Logger
}

func NewPlanner(logger providers.Logger) *Planner {
	return &Planner{logger: logger}
}

// EffectiveStart resolves the collection start, first match wins:
//  1. nothing known: 24h lookback
//  2. checkpoint only: the checkpoint's stored window start (restarting an
//     in-progress window from its beginning, not from time_curr)
//  3. operator start only: the operator start
//  4. both, checkpoint newer: the checkpoint's window start
//  5. both, checkpoint not newer: 24h lookback. The operator value is
//     dropped on this branch; longstanding behavior, kept for checkpoint
//     compatibility with existing deployments.
func (p *Planner) EffectiveStart(opStart *time.Time, cp *models.CheckpointRecord, now time.Time) time.Time {
	def := now.Add(-24 * time.Hour).Truncate(time.Second)

	switch {
	case opStart == nil && cp == nil:
		p.logger.Debugf(providers.TypeCollect, "time_start check: no operator start and no checkpoint")
		return def

	case opStart == nil:
		if t, ok := models.ToBoundedInstant(cp.TimeStart, now); ok {
			p.logger.Debugf(providers.TypeCollect, "time_start check: no operator start, checkpoint present")
			return t
		}
		p.logger.Warnf(providers.TypeCollect, "Validating time format. out of range. time_val=%q", cp.TimeStart)
		return def

	case cp == nil:
		p.logger.Debugf(providers.TypeCollect, "time_start check: operator start and no checkpoint")
		return *opStart

	default:
		if t, ok := models.ToBoundedInstant(cp.TimeStart, now); ok && t.After(*opStart) {
			p.logger.Debugf(providers.TypeCollect, "time_start check: checkpoint newer than operator start")
			return t
		}
		p.logger.Debugf(providers.TypeCollect, "time_start check: fallthrough to default lookback")
		return def
	}
}

// SpanDays reports the whole days covered by [start, now]. It drives both
// the chunk-size choice and the driver's large-range log.
func (p *Planner) SpanDays(start, now time.Time) int {
	return int(now.Sub(start).Hours() / 24)
}

// Windows partitions [start, now] into sub-windows. Spans under a week use
// 1-day chunks, anything larger 3-day chunks. Every window ends one second
// before the next begins; the final window is clamped to now.
func (p *Planner) Windows(start, now time.Time) []models.QueryWindow {
	totalDays := p.SpanDays(start, now)
	chunk := 1
	if totalDays >= 7 {
		chunk = 3
	}

	var windows []models.QueryWindow
	for i := 0; i <= totalDays; i += chunk {
		from := start.Add(time.Duration(i) * 24 * time.Hour)
		if !from.Before(now) {
			break
		}
		to := from.Add(time.Duration(chunk)*24*time.Hour - time.Second)
		if to.After(now) {
			to = now
		}
		windows = append(windows, models.QueryWindow{From: from, To: to})
	}
	return windows
}
