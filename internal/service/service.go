package service

import (
	"context"
	"fmt"
	"time"

	"blitz/internal/config"
	"blitz/internal/log"
	"blitz/internal/metrics"
	"blitz/internal/types"
	"blitz/internal/utils"
	"blitz/pkg/dispatch"
	"blitz/pkg/history"
	"blitz/pkg/stats"
)

type Result struct {
	Summary stats.Summary
	Record  *types.RunRecord
}

// BenchService runs one load test and hands the outcome to the optional sinks.
type BenchService struct {
	cfg        *config.Config
	dispatcher *dispatch.Dispatcher
	store      history.Store
	metrics    *metrics.Metrics
}

// NewBenchService wires a run. store may be nil when history is disabled.
func NewBenchService(cfg *config.Config, dispatcher *dispatch.Dispatcher, store history.Store) *BenchService {
	return &BenchService{
		cfg:        cfg,
		dispatcher: dispatcher,
		store:      store,
		metrics:    metrics.New(),
	}
}

func (s *BenchService) Metrics() *metrics.Metrics {
	return s.metrics
}

// Run measures the target. A failed request anywhere fails the whole run; nothing is
// recorded or exported in that case.
func (s *BenchService) Run(ctx context.Context) (*Result, error) {
	log.Logger.Infof("Benchmarking %s: %d requests per worker, %d workers",
		s.cfg.URL, s.dispatcher.PerWorker(), s.dispatcher.Concurrency())

	started := time.Now()
	facts, err := s.dispatcher.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run aborted: %w", err)
	}
	elapsed := time.Since(started)

	summary := stats.Summarize(facts)
	record := types.NewRunRecord(utils.NewRunID(), s.cfg.URL, s.dispatcher.Concurrency(), s.cfg.Requests, started, elapsed, summary)
	log.Logger.Infof("Run %s finished %d requests in %v", record.ID, summary.Count, elapsed)

	s.metrics.Observe(facts, s.dispatcher.Concurrency())
	if s.cfg.MetricsFile != "" {
		if err := s.metrics.WriteTextfile(s.cfg.MetricsFile); err != nil {
			return nil, fmt.Errorf("write metrics file: %w", err)
		}
	}

	if s.store != nil {
		if err := s.store.Save(ctx, record); err != nil {
			return nil, fmt.Errorf("record run %s: %w", record.ID, err)
		}
		log.Logger.Debugf("Recorded run %s", record.ID)
	}

	return &Result{Summary: summary, Record: record}, nil
}
