package components

import (
	"log/slog"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/config"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/account"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/outbox"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/journal_processor/service"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/platform/messaging/producers"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/platform/persistence"
)

// CreateProcessingService creates a new ProcessingService with all its dependencies.
func CreateProcessingService(
	pgDB *persistence.PostgresDB,
	accountRepo account.Repository,
	outboxRepo outbox.Repository,
	journalRepo journal.Repository,
	dlqProducer producers.DeadLetterPublisher,
	logger *slog.Logger,
	cfg *config.Config,
) service.ProcessingService {
	validator := NewEntryValidator(journalRepo, logger)
	accountRegistrar := NewAccountRegistrar(accountRepo, logger)
	outboxManager := NewOutboxManager(outboxRepo, logger)
	rejectionRecorder := NewRejectionRecorder(dlqProducer, logger)

	baseService := service.NewProcessingService(
		pgDB,
		validator,
		accountRegistrar,
		outboxManager,
		rejectionRecorder,
		logger,
	)

	workerPoolService, err := service.NewWorkerPoolProcessingService(
		baseService,
		service.WorkerPoolConfig{
			Size: cfg.WorkerPool.Size,
		},
		logger.With("component", "worker_pool"),
	)

	if err != nil {
		logger.Error("Failed to create worker pool service, falling back to base service", "error", err)
		return baseService
	}

	logger.Info("Created worker pool processing service", "pool_size", cfg.WorkerPool.Size)
	return workerPoolService
}
