package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// StaleOrderReaperJob cancels orders stuck in Pending for longer than the
// configured TTL. Cancelling returns their reserved stock to the catalog, so
// abandoned checkouts cannot hold inventory forever.
type StaleOrderReaperJob struct {
	queryHandler  queries.GetStalePendingOrdersQueryHandler
	cancelHandler commands.CancelOrderCommandHandler
	ttl           time.Duration
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewStaleOrderReaperJob creates a job that sweeps pending orders older than ttl.
func NewStaleOrderReaperJob(
	queryHandler queries.GetStalePendingOrdersQueryHandler,
	cancelHandler commands.CancelOrderCommandHandler,
	ttl time.Duration,
	logger *slog.Logger,
) *StaleOrderReaperJob {
	return &StaleOrderReaperJob{
		queryHandler:  queryHandler,
		cancelHandler: cancelHandler,
		ttl:           ttl,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "stale_order_reaper_job"),
	}
}

// Start begins the reaper job to run every minute.
func (j *StaleOrderReaperJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.reap(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Stale order reaper job started (running every minute)", "ttl", j.ttl)
	return nil
}

// Stop stops the reaper job.
func (j *StaleOrderReaperJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order reaper job stopped")
}

// reap cancels every pending order whose last update precedes now minus ttl.
// Each order is cancelled independently so one failure does not stop the sweep.
func (j *StaleOrderReaperJob) reap(ctx context.Context) {
	query, err := queries.NewGetStalePendingOrdersQuery(time.Now().Add(-j.ttl))
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to build stale order query", "error", err)
		return
	}

	staleOrders, err := j.queryHandler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to find stale pending orders", "error", err)
		return
	}

	for _, staleOrder := range staleOrders {
		cmd, cmdErr := commands.NewCancelOrderCommand(staleOrder.ID)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build cancel command",
				"order_number", staleOrder.OrderNumber, "error", cmdErr)
			continue
		}

		if _, cancelErr := j.cancelHandler.Handle(ctx, cmd); cancelErr != nil {
			// The order may have progressed between the query and the cancel.
			if errors.Is(cancelErr, order.ErrInvalidStateTransition) {
				continue
			}
			j.logger.ErrorContext(ctx, "Failed to cancel stale order",
				"order_number", staleOrder.OrderNumber, "error", cancelErr)
			continue
		}

		j.logger.InfoContext(ctx, "Cancelled stale pending order",
			"order_number", staleOrder.OrderNumber, "last_updated", staleOrder.UpdatedAt)
	}
}
