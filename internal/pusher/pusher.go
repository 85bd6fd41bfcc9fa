package pusher

import (
	"context"
	"regexp"
	"time"

	"codeberg.org/cryolab/fridgewatch/internal/errors"
	"codeberg.org/cryolab/fridgewatch/internal/logger"
	"codeberg.org/cryolab/fridgewatch/internal/metricmap"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/prometheus/common/expfmt"
)

type Config struct {
	URL         string
	JobName     string
	MachineName string
	Timeout     time.Duration
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if c.URL == "" {
		return errFactory.WithMessage(ErrInvalidConfig, "pushgateway URL is required")
	}
	if c.JobName == "" {
		return errFactory.WithMessage(ErrInvalidConfig, "job name is required")
	}
	if c.MachineName == "" {
		return errFactory.WithMessage(ErrInvalidConfig, "machine name is required")
	}
	if c.Timeout <= 0 {
		return errFactory.WithMessage(ErrInvalidConfig, "timeout must be positive")
	}

	return nil
}

// Pusher replaces the batch for one job/instance group at a Pushgateway.
// Each push is a single PUT: the gateway swaps the whole group atomically,
// so metrics a run no longer produces do not linger from earlier runs.
type Pusher struct {
	cfg Config
}

func New(cfg Config) (*Pusher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Pusher{cfg: cfg}, nil
}

var metricNameRe = regexp.MustCompile(`[^a-zA-Z0-9_:]`)

// safeName sanitizes a canonical name into a legal Prometheus metric name.
// Canonical names from the mapper are already legal; this guards raw keys
// that made it through a generic rule.
func safeName(name string) string {
	safe := metricNameRe.ReplaceAllString(name, "_")
	if safe != "" && safe[0] >= '0' && safe[0] <= '9' {
		safe = "m_" + safe
	}

	return safe
}

// Push sends the batch, bounded by the configured timeout. All-or-nothing:
// on any failure the gateway keeps the previous group untouched and the
// error is fatal for the run.
func (p *Pusher) Push(ctx context.Context, samples []metricmap.MetricSample) error {
	errFactory := errors.New()

	registry := prometheus.NewRegistry()
	for _, s := range samples {
		gauge := prometheus.NewGauge(prometheus.GaugeOpts{
			Name: safeName(s.Name),
			Help: s.Help,
		})
		gauge.Set(s.Value)
		if err := registry.Register(gauge); err != nil {
			return errFactory.Wrap(ErrPushFailed, err)
		}
	}

	heartbeat := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "last_push_timestamp_seconds",
		Help: "Unix epoch of the most recent successful push",
	})
	heartbeat.SetToCurrentTime()
	if err := registry.Register(heartbeat); err != nil {
		return errFactory.Wrap(ErrPushFailed, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	err := push.New(p.cfg.URL, p.cfg.JobName).
		Grouping("instance", p.cfg.MachineName).
		Gatherer(registry).
		Format(expfmt.NewFormat(expfmt.TypeTextPlain)).
		PushContext(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return errFactory.Wrap(ErrPushTimeout, err)
		}

		return errFactory.Wrap(ErrPushFailed, err)
	}

	logger.Info().
		Int("samples", len(samples)).
		Str("url", p.cfg.URL).
		Str("job", p.cfg.JobName).
		Str("instance", p.cfg.MachineName).
		Msg("Pushed metric batch")

	return nil
}
