package search

// Option configures an Engine.
type Option func(*Engine)

// WithObserver registers a callback invoked after every completed round.
// It runs on the search goroutine and must not block for long.
func WithObserver(fn func(Round)) Option {
	return func(e *Engine) { e.observer = fn }
}

// WithMaxRounds stops the search as exhausted after n rounds. n <= 0 means unlimited.
func WithMaxRounds(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxRounds = n
		}
	}
}

// WithConcurrency bounds the number of concurrent lookups within a round.
// n <= 0 means unbounded.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}
