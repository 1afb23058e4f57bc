package core

import (
	"github.com/rs/zerolog"

	"github.com/utkarsh5026/bearpool/pool"
)

// config holds the per-run settings.
type config struct {
	workers   int
	queueCap  int
	perSecond float64
	burst     int
	logger    zerolog.Logger
}

// Option configures a single Run.
type Option func(*config)

// WithWorkers overrides the worker count of the run's pool. Values below 1
// keep the default of one worker per usable CPU, minimum one.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithQueueCapacity sizes the pool's intake queue and completion buffer.
// A hint only; submissions are never rejected for lack of space.
func WithQueueCapacity(n int) Option {
	return func(c *config) {
		c.queueCap = n
	}
}

// WithRateLimit throttles task starts across the whole run, at perSecond
// starts per second with the given burst. Both values must be positive;
// otherwise the run stays unthrottled.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *config) {
		c.perSecond, c.burst = perSecond, burst
	}
}

// WithLogger sets the sink for the run's diagnostics: scheduled and
// finished bears at debug level, task and callback failures at error
// level, each tagged with the bear's name. Runs are silent by default.
//
// Example:
//
//	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	err := core.Run(ctx, bears, collect, core.WithLogger(log))
func WithLogger(log zerolog.Logger) Option {
	return func(c *config) {
		c.logger = log
	}
}

func newConfig(opts ...Option) *config {
	conf := &config{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(conf)
	}
	return conf
}

// poolOptions translates the run settings into pool construction options.
func (c *config) poolOptions() []pool.Option {
	var opts []pool.Option
	if c.workers > 0 {
		opts = append(opts, pool.WithWorkers(c.workers))
	}
	if c.queueCap > 0 {
		opts = append(opts, pool.WithQueueCapacity(c.queueCap))
	}
	if c.perSecond > 0 && c.burst > 0 {
		opts = append(opts, pool.WithRateLimit(c.perSecond, c.burst))
	}
	return opts
}
