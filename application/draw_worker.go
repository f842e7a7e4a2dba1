package application

import (
	"context"
	"fmt"
	"time"

	"lotto/domain/entities"
	"lotto/domain/services"

	log "github.com/sirupsen/logrus"
)

// settingsRecheckInterval caps how long the workers sleep, so edits to the
// draw or broadcast intervals take effect without a restart.
const settingsRecheckInterval = time.Minute

// Announcer defines the interface for posting lottery announcements to the
// outside world
type Announcer interface {
	// AnnounceDrawResult posts the outcome of a completed or postponed draw
	AnnounceDrawResult(ctx context.Context, result *entities.DrawResult) error

	// AnnouncePot posts the current pot size and participation
	AnnouncePot(ctx context.Context, ledger *entities.Ledger, nextDrawTime *time.Time) error
}

// DrawWorker runs scheduled lottery draws
type DrawWorker struct {
	uowFactory      UnitOfWorkFactory
	announcer       Announcer
	startingBalance int64
}

// NewDrawWorker creates a new draw worker
func NewDrawWorker(uowFactory UnitOfWorkFactory, announcer Announcer, startingBalance int64) *DrawWorker {
	return &DrawWorker{
		uowFactory:      uowFactory,
		announcer:       announcer,
		startingBalance: startingBalance,
	}
}

// Start begins the draw worker. The returned function stops it.
func (w *DrawWorker) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})

	go func() {
		log.Info("Lottery draw worker started")

		for {
			waitDuration := w.tick(ctx)

			select {
			case <-ctx.Done():
				log.Info("Lottery draw worker shutting down (context cancelled)")
				return
			case <-stopChan:
				log.Info("Lottery draw worker shutting down (stop requested)")
				return
			case <-time.After(waitDuration):
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

// tick processes a due draw if there is one and returns how long to sleep
// before the next check. Scheduling state is re-read from the database every
// tick so interval changes apply live.
func (w *DrawWorker) tick(ctx context.Context) time.Duration {
	nextDrawTime, err := w.ensureScheduled(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to read draw schedule")
		return settingsRecheckInterval
	}

	if now := time.Now().UTC(); nextDrawTime.After(now) {
		wait := nextDrawTime.Sub(now)
		if wait > settingsRecheckInterval {
			wait = settingsRecheckInterval
		}
		return wait
	}

	if err := w.processDraw(ctx); err != nil {
		log.WithError(err).Error("Failed to process lottery draw")
		return settingsRecheckInterval
	}

	return 0
}

// ensureScheduled returns the next draw time, initializing it from the
// configured interval on first run
func (w *DrawWorker) ensureScheduled(ctx context.Context) (time.Time, error) {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return time.Time{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	nextDrawTime, err := uow.LedgerRepository().GetNextDrawTime(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if nextDrawTime != nil {
		return *nextDrawTime, nil
	}

	settings, err := uow.SettingsRepository().GetOrCreate(ctx)
	if err != nil {
		return time.Time{}, err
	}

	scheduled := time.Now().UTC().Add(settings.DrawInterval)
	if err := uow.LedgerRepository().SetNextDrawTime(ctx, scheduled); err != nil {
		return time.Time{}, err
	}
	if err := uow.Commit(); err != nil {
		return time.Time{}, err
	}

	log.WithField("nextDrawTime", scheduled).Info("Initialized lottery draw schedule")
	return scheduled, nil
}

// processDraw conducts a due draw in its own transaction and announces the
// result after commit
func (w *DrawWorker) processDraw(ctx context.Context) error {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Re-check under the row lock; another instance may have drawn already
	ledgerRepo := uow.LedgerRepository()
	if _, err := ledgerRepo.GetForUpdate(ctx); err != nil {
		uow.Rollback()
		return fmt.Errorf("failed to lock ledger: %w", err)
	}

	nextDrawTime, err := ledgerRepo.GetNextDrawTime(ctx)
	if err != nil {
		uow.Rollback()
		return fmt.Errorf("failed to get next draw time: %w", err)
	}
	if nextDrawTime == nil || nextDrawTime.After(time.Now().UTC()) {
		uow.Rollback()
		return nil
	}

	economy := services.NewEconomyService(
		uow.AccountRepository(),
		uow.BalanceHistoryRepository(),
		uow.EventBus(),
		w.startingBalance,
	)
	drawService := services.NewDrawService(
		ledgerRepo,
		uow.SettingsRepository(),
		uow.DrawHistoryRepository(),
		economy,
		uow.EventBus(),
	)

	result, err := drawService.ConductDraw(ctx)
	if err != nil {
		uow.Rollback()
		return fmt.Errorf("failed to conduct draw: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit draw: %w", err)
	}

	if w.announcer != nil {
		if err := w.announcer.AnnounceDrawResult(ctx, result); err != nil {
			log.WithError(err).Error("Failed to announce draw result")
		}
	}

	return nil
}
