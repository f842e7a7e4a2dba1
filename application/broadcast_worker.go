package application

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// BroadcastWorker periodically announces the current pot. The interval is
// re-read from settings on every lap; an interval of zero disables broadcasts
// until it is raised again.
type BroadcastWorker struct {
	uowFactory UnitOfWorkFactory
	announcer  Announcer
}

// NewBroadcastWorker creates a new broadcast worker
func NewBroadcastWorker(uowFactory UnitOfWorkFactory, announcer Announcer) *BroadcastWorker {
	return &BroadcastWorker{
		uowFactory: uowFactory,
		announcer:  announcer,
	}
}

// Start begins the broadcast worker. The returned function stops it.
func (w *BroadcastWorker) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})

	go func() {
		log.Info("Pot broadcast worker started")

		lastBroadcast := time.Now().UTC()

		for {
			interval, err := w.currentInterval(ctx)
			if err != nil {
				log.WithError(err).Error("Failed to read broadcast interval")
				interval = 0
			}

			now := time.Now().UTC()
			if interval > 0 && now.Sub(lastBroadcast) >= interval {
				if err := w.broadcast(ctx); err != nil {
					log.WithError(err).Error("Failed to broadcast pot")
				}
				lastBroadcast = now
			}

			wait := settingsRecheckInterval
			if interval > 0 {
				if remaining := interval - time.Now().UTC().Sub(lastBroadcast); remaining < wait {
					wait = remaining
				}
			}
			if wait < time.Second {
				wait = time.Second
			}

			select {
			case <-ctx.Done():
				log.Info("Pot broadcast worker shutting down (context cancelled)")
				return
			case <-stopChan:
				log.Info("Pot broadcast worker shutting down (stop requested)")
				return
			case <-time.After(wait):
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

// currentInterval reads the live broadcast interval, 0 when disabled
func (w *BroadcastWorker) currentInterval(ctx context.Context) (time.Duration, error) {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	settings, err := uow.SettingsRepository().GetOrCreate(ctx)
	if err != nil {
		return 0, err
	}
	return settings.BroadcastInterval, nil
}

// broadcast reads a fresh ledger snapshot and announces it
func (w *BroadcastWorker) broadcast(ctx context.Context) error {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	ledger, err := uow.LedgerRepository().Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}

	nextDrawTime, err := uow.LedgerRepository().GetNextDrawTime(ctx)
	if err != nil {
		return fmt.Errorf("failed to get next draw time: %w", err)
	}

	if w.announcer == nil {
		return nil
	}

	log.WithFields(log.Fields{
		"pot":          ledger.Pot,
		"participants": ledger.ParticipantCount(),
	}).Debug("Broadcasting pot")

	return w.announcer.AnnouncePot(ctx, ledger, nextDrawTime)
}
