package ui

import "sync/atomic"

// Stats accumulates the end-of-run download summary.
type Stats struct {
	Chapters atomic.Int64
	Pages    atomic.Int64
	Bytes    atomic.Int64
	Skipped  atomic.Int64
}
