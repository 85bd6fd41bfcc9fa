package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/cryolab/fridgewatch/internal/collector"
	"codeberg.org/cryolab/fridgewatch/internal/config"
	"codeberg.org/cryolab/fridgewatch/internal/errors"
	"codeberg.org/cryolab/fridgewatch/internal/logdir"
	"codeberg.org/cryolab/fridgewatch/internal/logger"
	"codeberg.org/cryolab/fridgewatch/internal/metricmap"
	"codeberg.org/cryolab/fridgewatch/internal/pid"
	"codeberg.org/cryolab/fridgewatch/internal/pusher"
	"codeberg.org/cryolab/fridgewatch/internal/runlog"
)

func main() {
	os.Exit(run())
}

// run executes one harvest-and-push pass and returns the process exit code.
// Zero means the run completed, even when some files failed or there was
// nothing to collect yet; non-zero is reserved for conditions the external
// scheduler should alarm on: bad configuration, an unusable log root, or a
// failed push.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.LogLevel, logger.IsService()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	logger.Debug().Msg("Config loaded")

	if err := pid.Write(); err != nil {
		if errors.HasCode(err, errors.ErrAlreadyRunning) {
			logger.Warn().Msg("Previous run still in flight, skipping this one")
			return 0
		}
		logger.Error().Err(err).Msg("Failed to write PID file")
		return 1
	}
	defer func() {
		if err := pid.Remove(); err != nil {
			logger.Error().Err(err).Msg("Failed to remove PID file")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	history, err := runlog.NewService(runlog.Config{
		DBPath:  cfg.RunHistoryDB,
		Enabled: cfg.RunHistory,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize run history")
		return 1
	}
	defer func() {
		if err := history.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close run history")
		}
	}()

	mapper, err := metricmap.NewMapper(metricmap.DefaultTable())
	if err != nil {
		logger.Error().Err(err).Msg("Metric table is malformed")
		return 1
	}

	c, err := collector.New(collector.Config{
		LogsDir: cfg.LogsDir,
		Workers: cfg.Workers,
	}, mapper)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize collector")
		return 1
	}

	start := time.Now()
	record := &runlog.RunRecord{
		Timestamp: start,
		Folder:    logdir.FolderName(start),
	}

	result, err := c.Run(ctx)
	if err != nil {
		logger.ErrorWithCode(err).Msg("Collection run failed")
		record.Error = err.Error()
		recordRun(ctx, history, record)
		return 1
	}

	record.FilesTotal = result.Files
	record.FilesFailed = len(result.Failures)
	record.Samples = len(result.Samples)

	if result.Empty() {
		logger.Info().
			Bool("date_folder_present", result.Resolved).
			Msg("Empty batch, nothing to push")
		recordRun(ctx, history, record)
		return 0
	}

	p, err := pusher.New(pusher.Config{
		URL:         cfg.PushgatewayURL,
		JobName:     cfg.JobName,
		MachineName: cfg.MachineName,
		Timeout:     time.Duration(cfg.PushTimeout) * time.Second,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize pusher")
		record.Error = err.Error()
		recordRun(ctx, history, record)
		return 1
	}

	if err := p.Push(ctx, result.Samples); err != nil {
		logger.ErrorWithCode(err).Msg("Push failed")
		record.Error = err.Error()
		recordRun(ctx, history, record)
		return 1
	}

	record.Pushed = true
	recordRun(ctx, history, record)

	return 0
}

func recordRun(ctx context.Context, history runlog.Recorder, record *runlog.RunRecord) {
	if err := history.Record(ctx, record); err != nil {
		logger.Warn().Err(err).Msg("Failed to record run history")
	}
}
