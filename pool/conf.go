package pool

import "golang.org/x/time/rate"

// config holds the tunables a pool is constructed with.
type config struct {
	workers  int
	queueCap int
	limiter  *rate.Limiter
}

// Option configures a pool at construction time.
type Option func(*config)

// WithWorkers sets the number of worker goroutines. Values below 1 fall
// back to DefaultWorkerCount.
//
// Example:
//
//	p := pool.New[string](pool.WithWorkers(8))
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithQueueCapacity sets the initial capacity of the intake queue and the
// size of the completion buffer. It is a sizing hint, not a bound:
// submissions are never rejected for lack of space. Defaults to the worker
// count.
func WithQueueCapacity(n int) Option {
	return func(c *config) {
		c.queueCap = n
	}
}

// WithRateLimit limits how often tasks may start, at perSecond starts per
// second with the given burst. Both values must be positive: a limiter
// with no burst allowance can never admit a task, so a non-positive rate
// or burst disables limiting instead.
//
// Example:
//
//	// at most 5 task starts per second, bursts of 10
//	p := pool.New[Response](pool.WithRateLimit(5.0, 10))
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *config) {
		if perSecond > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// newConfig applies the options and fills in defaults.
func newConfig(opts ...Option) *config {
	conf := &config{}
	for _, opt := range opts {
		opt(conf)
	}
	if conf.workers < 1 {
		conf.workers = DefaultWorkerCount()
	}
	if conf.queueCap < 1 {
		conf.queueCap = conf.workers
	}
	return conf
}
