package lottery

import (
	"context"
	"fmt"
	"time"

	"lotto/application"
	"lotto/bot/common"
	"lotto/domain/entities"
	"lotto/domain/events"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature represents the lottery feature
type Feature struct {
	session         *discordgo.Session
	uowFactory      application.UnitOfWorkFactory
	startingBalance int64
}

// NewFeature creates a new lottery feature instance
func NewFeature(session *discordgo.Session, uowFactory application.UnitOfWorkFactory, startingBalance int64) *Feature {
	return &Feature{
		session:         session,
		uowFactory:      uowFactory,
		startingBalance: startingBalance,
	}
}

// HandleCommand routes /lottery subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "No subcommand provided")
		return
	}

	switch options[0].Name {
	case "buy":
		f.handleBuy(s, i)
	case "info":
		f.handleInfo(s, i)
	case "balance":
		f.handleBalance(s, i)
	case "addpot":
		f.handleAddPot(s, i)
	case "draw":
		f.handleDraw(s, i)
	case "history":
		f.handleHistory(s, i)
	case "channel":
		f.handleChannel(s, i)
	case "configure":
		f.handleConfigure(s, i)
	default:
		log.Warnf("Unknown lottery subcommand: %s", options[0].Name)
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}

// announceChannelID reads the configured announcement channel. Returns 0 when
// no channel is configured.
func (f *Feature) announceChannelID(ctx context.Context) (int64, error) {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	settings, err := uow.SettingsRepository().GetOrCreate(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.HasAnnounceChannel() {
		return 0, nil
	}
	return settings.GetAnnounceChannelID(), nil
}

// AnnounceDrawResult posts the draw outcome to the configured announcement
// channel (implements application.Announcer)
func (f *Feature) AnnounceDrawResult(ctx context.Context, result *entities.DrawResult) error {
	channelID, err := f.announceChannelID(ctx)
	if err != nil {
		return err
	}
	if channelID == 0 {
		log.Debug("No announcement channel configured, skipping draw result announcement")
		return nil
	}

	embed := CreateDrawResultEmbed(result)
	if _, err := f.session.ChannelMessageSendEmbed(fmt.Sprintf("%d", channelID), embed); err != nil {
		return fmt.Errorf("failed to post draw result: %w", err)
	}

	fields := log.Fields{
		"channel_id": channelID,
		"postponed":  result.Postponed,
	}
	if !result.Postponed {
		fields["winner_id"] = result.Record.WinnerID
		fields["payout"] = result.Record.Payout
	}
	log.WithFields(fields).Info("Posted draw result to Discord")

	return nil
}

// AnnounceTicketPurchase posts a short purchase notice to the configured
// announcement channel. Wired as a local event handler, so failures only log.
func (f *Feature) AnnounceTicketPurchase(ctx context.Context, event events.TicketPurchasedEvent) error {
	channelID, err := f.announceChannelID(ctx)
	if err != nil {
		return err
	}
	if channelID == 0 {
		return nil
	}

	message := fmt.Sprintf("🎟️ <@%d> bought %d ticket(s)! The pot is now **%s coins**",
		event.ParticipantID, event.Quantity, common.FormatBalance(event.Pot))
	if _, err := f.session.ChannelMessageSend(fmt.Sprintf("%d", channelID), message); err != nil {
		return fmt.Errorf("failed to post purchase notice: %w", err)
	}
	return nil
}

// AnnouncePot posts the periodic pot broadcast to the configured announcement
// channel (implements application.Announcer)
func (f *Feature) AnnouncePot(ctx context.Context, ledger *entities.Ledger, nextDrawTime *time.Time) error {
	channelID, err := f.announceChannelID(ctx)
	if err != nil {
		return err
	}
	if channelID == 0 {
		return nil
	}

	embed := CreatePotBroadcastEmbed(ledger, nextDrawTime)
	if _, err := f.session.ChannelMessageSendEmbed(fmt.Sprintf("%d", channelID), embed); err != nil {
		return fmt.Errorf("failed to post pot broadcast: %w", err)
	}
	return nil
}
