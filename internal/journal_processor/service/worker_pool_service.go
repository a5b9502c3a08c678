package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/shared"
)

// WorkerPoolProcessingService fans posting requests out to an ants
// worker pool while keeping the per-message result available to the
// consumer, so offsets still commit only after processing finishes.
type WorkerPoolProcessingService struct {
	baseService ProcessingService
	pool        *ants.Pool
	logger      *slog.Logger
	// Guards the in-flight results map
	mu      sync.Mutex
	results map[string]chan error
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolProcessingService(
	baseService ProcessingService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolProcessingService, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolProcessingService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
		results:     make(map[string]chan error),
	}, nil
}

// ProcessEntry submits a posting request to the worker pool and waits
// for its result.
func (s *WorkerPoolProcessingService) ProcessEntry(ctx context.Context, request *shared.PostingRequest) error {
	logger := s.logger
	if request.CorrelationID != "" {
		logger = s.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Submitting posting request to worker pool", "entry_id", request.EntryID.String())

	resultChan := make(chan error, 1)

	entryID := request.EntryID.String()
	s.mu.Lock()
	s.results[entryID] = resultChan
	s.mu.Unlock()

	// Copy the request so the worker never shares memory with the caller
	requestCopy := *request

	err := s.pool.Submit(func() {
		err := s.baseService.ProcessEntry(ctx, &requestCopy)

		resultChan <- err

		s.mu.Lock()
		delete(s.results, entryID)
		close(resultChan)
		s.mu.Unlock()
	})

	if err != nil {
		s.mu.Lock()
		delete(s.results, entryID)
		close(resultChan)
		s.mu.Unlock()

		logger.Error("Failed to submit posting request to worker pool",
			"entry_id", request.EntryID.String(),
			"error", err,
		)
		return err
	}

	return <-resultChan
}

// Shutdown gracefully shuts down the worker pool.
func (s *WorkerPoolProcessingService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

// Running returns the number of running workers in the pool.
func (s *WorkerPoolProcessingService) Running() int {
	return s.pool.Running()
}

// Capacity returns the capacity of the worker pool.
func (s *WorkerPoolProcessingService) Capacity() int {
	return s.pool.Cap()
}
