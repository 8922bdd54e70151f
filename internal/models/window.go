package models

import "time"

// QueryWindow is one bounded time range submitted as a single reporting
// query. To is always clamped to "now" by the planner.
type QueryWindow struct {
	From time.Time
	To   time.Time
}
