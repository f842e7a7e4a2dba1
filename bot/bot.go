package bot

import (
	"context"
	"fmt"

	"lotto/application"
	"lotto/bot/features/lottery"
	"lotto/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token           string
	GuildID         string
	StartingBalance int64
}

// Bot manages the Discord bot, the lottery feature, and the background workers
type Bot struct {
	config     Config
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory

	eventPublisher interfaces.EventPublisher

	lottery *lottery.Feature

	// Worker cleanup functions
	stopDrawWorker      func()
	stopBroadcastWorker func()
}

// New creates a new bot instance, opens the Discord session, registers the
// slash commands and starts the background workers
func New(config Config, uowFactory application.UnitOfWorkFactory, eventPublisher interfaces.EventPublisher) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	bot := &Bot{
		config:         config,
		session:        dg,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}

	bot.lottery = lottery.NewFeature(dg, uowFactory, config.StartingBalance)

	dg.AddHandler(bot.handleCommands)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Start background workers; the lottery feature doubles as the announcer
	ctx := context.Background()
	drawWorker := application.NewDrawWorker(uowFactory, bot.lottery, config.StartingBalance)
	bot.stopDrawWorker = drawWorker.Start(ctx)
	broadcastWorker := application.NewBroadcastWorker(uowFactory, bot.lottery)
	bot.stopBroadcastWorker = broadcastWorker.Start(ctx)
	log.Info("Background workers started")

	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	if b.stopDrawWorker != nil {
		b.stopDrawWorker()
	}
	if b.stopBroadcastWorker != nil {
		b.stopBroadcastWorker()
	}
	log.Info("Background workers stopped")

	return b.session.Close()
}

// GetSession returns the Discord session
func (b *Bot) GetSession() *discordgo.Session {
	return b.session
}

// GetLotteryFeature returns the lottery feature for event handler wiring
func (b *Bot) GetLotteryFeature() *lottery.Feature {
	return b.lottery
}

// handleCommands routes slash commands to appropriate handlers
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "lottery":
		b.lottery.HandleCommand(s, i)
	}
}
