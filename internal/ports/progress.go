package ports

import "github.com/devbush/ytbatch/internal/domain"

// ProgressSink receives progress events of one download
type ProgressSink interface {
	OnProgress(event domain.ProgressEvent)
}

// ProgressSinkFactory creates a fresh sink for every download invocation
type ProgressSinkFactory func() ProgressSink

// ProgressFunc adapts a function to ProgressSink
type ProgressFunc func(event domain.ProgressEvent)

// OnProgress calls f(event)
func (f ProgressFunc) OnProgress(event domain.ProgressEvent) {
	f(event)
}

// NopSink discards progress events
var NopSink ProgressSink = ProgressFunc(func(domain.ProgressEvent) {})
