package cache

// Metrics receives engine counters. Class labels are plain strings so
// implementations need not import this package.
type Metrics interface {
	Hit(class string)
	Miss(class string)
	Stale(class string)
	FetchError(class string)
	Invalidated(class string, count int)
}

// NoopMetrics discards every observation.
type NoopMetrics struct{}

func (NoopMetrics) Hit(string)              {}
func (NoopMetrics) Miss(string)             {}
func (NoopMetrics) Stale(string)            {}
func (NoopMetrics) FetchError(string)       {}
func (NoopMetrics) Invalidated(string, int) {}
