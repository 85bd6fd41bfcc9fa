package collector

import (
	"context"
	"sort"
	"sync"
	"time"

	"codeberg.org/cryolab/fridgewatch/internal/errors"
	"codeberg.org/cryolab/fridgewatch/internal/logdir"
	"codeberg.org/cryolab/fridgewatch/internal/logger"
	"codeberg.org/cryolab/fridgewatch/internal/metricmap"
	"codeberg.org/cryolab/fridgewatch/internal/parser"
)

type Config struct {
	LogsDir string
	Workers int
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if c.LogsDir == "" {
		return errFactory.WithMessage(ErrInvalidConfig, "logs_dir is required")
	}
	if c.Workers <= 0 {
		return errFactory.WithMessage(ErrInvalidConfig, "workers must be positive")
	}

	return nil
}

// Collector drives one run: resolve today's folder, discover its files,
// parse and map each one independently, and assemble the batch. One file's
// failure is recorded and never stops the others.
type Collector struct {
	cfg    Config
	mapper *metricmap.Mapper
	now    func() time.Time
}

// Option adjusts a Collector at construction time.
type Option func(*Collector)

// WithClock overrides the clock used to pick the date folder.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) {
		c.now = now
	}
}

func New(cfg Config, mapper *metricmap.Mapper, opts ...Option) (*Collector, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if mapper == nil {
		return nil, errFactory.WithMessage(ErrInvalidConfig, "mapper is required")
	}

	c := &Collector{
		cfg:    cfg,
		mapper: mapper,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Run executes one collection pass. A missing date folder is not an error:
// the run completes with an empty, unresolved result so the caller can skip
// the push and still exit cleanly. Only an unusable log root fails the run.
func (c *Collector) Run(ctx context.Context) (*Result, error) {
	day := c.now()

	dayPath, err := logdir.Resolve(c.cfg.LogsDir, day)
	if err != nil {
		if errors.HasCode(err, logdir.ErrMissingDateFolder) {
			logger.Info().
				Str("folder", logdir.FolderName(day)).
				Msg("Date folder not present yet, nothing to collect")

			return &Result{}, nil
		}

		return nil, err
	}

	sources, err := logdir.Discover(dayPath, day)
	if err != nil {
		return nil, errors.New().Wrap(ErrCollectFailed, err)
	}

	result := &Result{
		Resolved: true,
		Files:    len(sources),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	sem := make(chan struct{}, c.cfg.Workers)

	for _, src := range sources {
		select {
		case <-ctx.Done():
			return nil, errors.New().Wrap(ErrCollectFailed, ctx.Err())
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(src logdir.SourceFile) {
			defer wg.Done()
			defer func() { <-sem }()

			samples, failure := c.collectFile(src)

			mu.Lock()
			defer mu.Unlock()
			result.Samples = append(result.Samples, samples...)
			if failure != nil {
				result.Failures = append(result.Failures, *failure)
			}
		}(src)
	}
	wg.Wait()

	c.finalize(result)
	c.logSummary(day, result)

	return result, nil
}

// collectFile parses and maps one source file. Returns the mapped samples
// and, if the whole file failed, a Failure describing why.
func (c *Collector) collectFile(src logdir.SourceFile) ([]metricmap.MetricSample, *Failure) {
	parsed, err := parser.Parse(src)
	if err != nil {
		logger.Warn().
			Str("file", src.Name).
			Str("kind", string(src.Kind)).
			Err(err).
			Msg("Source file failed, continuing with remaining files")

		return nil, &Failure{Kind: src.Kind, File: src.Name, Err: err}
	}

	for _, lineErr := range parsed.LineErrors {
		logger.Debug().
			Str("file", src.Name).
			Int("line", lineErr.Line).
			Err(lineErr.Err).
			Msg("Skipped malformed line")
	}

	samples := make([]metricmap.MetricSample, 0, len(parsed.Samples))
	for _, raw := range parsed.Samples {
		if mapped, ok := c.mapper.Map(raw); ok {
			samples = append(samples, mapped)
		}
	}

	return samples, nil
}

// finalize sorts the batch and drops duplicate names. Duplicates mean the
// metric table is malformed; the batch stays usable, deterministically.
func (c *Collector) finalize(result *Result) {
	sort.Slice(result.Samples, func(i, j int) bool {
		return result.Samples[i].Name < result.Samples[j].Name
	})

	deduped := result.Samples[:0]
	for _, s := range result.Samples {
		if len(deduped) > 0 && s.Name == deduped[len(deduped)-1].Name {
			logger.Error().
				Str("metric", s.Name).
				Msg("Duplicate canonical metric name in batch, metric table is malformed")
			continue
		}
		deduped = append(deduped, s)
	}
	result.Samples = deduped
}

func (c *Collector) logSummary(day time.Time, result *Result) {
	event := logger.Info().
		Str("folder", logdir.FolderName(day)).
		Int("files_attempted", result.Files).
		Int("files_failed", len(result.Failures)).
		Int("samples", len(result.Samples))

	for _, f := range result.Failures {
		logger.Warn().
			Str("file", f.File).
			Str("kind", string(f.Kind)).
			Err(f.Err).
			Msg("Source failed this run")
	}

	event.Msg("Collection run finished")
}
