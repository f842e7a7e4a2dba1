package cmd

import (
	"context"
	"fmt"

	"lotto/bot"
	"lotto/config"
	"lotto/database"
	"lotto/domain/events"
	"lotto/domain/interfaces"
	"lotto/infrastructure"
	"lotto/repository"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting lotto bot...")

	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	log.Infof("Connecting to NATS at %s...", cfg.NATSServers)
	natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := natsClient.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer natsClient.Close()

	subjectMapper := infrastructure.NewEventSubjectMapper()
	eventPublisher := infrastructure.NewNATSEventPublisher(natsClient, subjectMapper)
	if err := eventPublisher.EnsureLotteryEventStream(); err != nil {
		return fmt.Errorf("failed to ensure event stream: %w", err)
	}
	log.Info("NATS event publishing initialized")

	auditLogger := infrastructure.NewEventAuditLogger(natsClient, subjectMapper)
	if err := auditLogger.Start(); err != nil {
		return fmt.Errorf("failed to start event audit logger: %w", err)
	}

	// Each unit of work buffers its events and releases them on commit
	uowFactory := repository.NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return infrastructure.NewNATSTransactionalPublisher(eventPublisher)
	})

	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:           cfg.DiscordToken,
		GuildID:         cfg.GuildID,
		StartingBalance: cfg.StartingBalance,
	}
	discordBot, err := bot.New(botConfig, uowFactory, eventPublisher)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized")

	// Purchases are announced in-process off the same event the stream carries
	eventPublisher.RegisterLocalHandler(events.EventTypeTicketPurchased, func(ctx context.Context, e events.Event) error {
		purchase, ok := e.(events.TicketPurchasedEvent)
		if !ok {
			return fmt.Errorf("unexpected event payload %T for ticket purchase", e)
		}
		return discordBot.GetLotteryFeature().AnnounceTicketPurchase(ctx, purchase)
	})

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	return nil
}
