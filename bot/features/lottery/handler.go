package lottery

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"lotto/bot/common"
	"lotto/config"
	"lotto/domain/entities"
	"lotto/domain/interfaces"
	"lotto/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// isAdmin reports whether the invoking member may run admin subcommands.
// Members with Manage Server qualify, as do the operator-configured admin IDs.
func isAdmin(i *discordgo.InteractionCreate, discordID int64) bool {
	if i.Member != nil && i.Member.Permissions&discordgo.PermissionManageServer != 0 {
		return true
	}
	return config.Get().IsAdminID(discordID)
}

// parseInvoker extracts the invoking user's Discord ID
func parseInvoker(i *discordgo.InteractionCreate) (int64, error) {
	if i.Member == nil || i.Member.User == nil {
		return 0, fmt.Errorf("interaction has no member")
	}
	return strconv.ParseInt(i.Member.User.ID, 10, 64)
}

// handleBuy handles /lottery buy [quantity]
func (f *Feature) handleBuy(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := parseInvoker(i)
	if err != nil {
		common.RespondWithError(s, i, "Invalid user ID")
		return
	}

	quantity := int64(1)
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		if opt.Name == "quantity" {
			quantity = opt.IntValue()
		}
	}

	// Defer to allow time for the purchase transaction
	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Failed to defer response: %v", err)
		return
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Failed to begin transaction: %v", err)
		common.UpdateMessageWithError(s, i, "Failed to process purchase")
		return
	}
	defer uow.Rollback()

	economy := services.NewEconomyService(
		uow.AccountRepository(),
		uow.BalanceHistoryRepository(),
		uow.EventBus(),
		f.startingBalance,
	)
	ticketShop := services.NewTicketShop(
		uow.LedgerRepository(),
		uow.SettingsRepository(),
		economy,
		uow.EventBus(),
	)

	result, err := ticketShop.PurchaseTickets(ctx, discordID, quantity)
	if err != nil {
		common.UpdateMessageWithError(s, i, purchaseErrorMessage(err))
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Failed to commit purchase: %v", err)
		common.UpdateMessageWithError(s, i, "Failed to complete purchase")
		return
	}

	embed := CreatePurchaseConfirmationEmbed(result)
	if err := common.UpdateMessage(s, i, embed); err != nil {
		log.Errorf("Failed to send purchase confirmation: %v", err)
	}
}

// purchaseErrorMessage maps purchase failures to user-facing messages
func purchaseErrorMessage(err error) string {
	var capErr *entities.CapacityExceededError
	switch {
	case errors.Is(err, entities.ErrInvalidAmount):
		return "Please enter a valid positive number of tickets"
	case errors.Is(err, entities.ErrInsufficientFunds):
		return "You don't have enough coins for that purchase"
	case errors.As(err, &capErr):
		if capErr.Remaining > 0 {
			return fmt.Sprintf("You can only buy %d more ticket(s) this round (max %d)", capErr.Remaining, capErr.MaxTickets)
		}
		return fmt.Sprintf("You already hold the maximum of %d tickets this round", capErr.MaxTickets)
	default:
		log.Errorf("Failed to purchase tickets: %v", err)
		return "Failed to purchase tickets"
	}
}

// handleInfo handles /lottery info
func (f *Feature) handleInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Failed to begin transaction: %v", err)
		common.RespondWithError(s, i, "Failed to load lottery info")
		return
	}
	defer uow.Rollback()

	ledger, err := uow.LedgerRepository().Get(ctx)
	if err != nil {
		log.Errorf("Failed to get ledger: %v", err)
		common.RespondWithError(s, i, "Failed to load lottery info")
		return
	}
	settings, err := uow.SettingsRepository().GetOrCreate(ctx)
	if err != nil {
		log.Errorf("Failed to get settings: %v", err)
		common.RespondWithError(s, i, "Failed to load lottery info")
		return
	}
	nextDrawTime, err := uow.LedgerRepository().GetNextDrawTime(ctx)
	if err != nil {
		log.Errorf("Failed to get next draw time: %v", err)
		common.RespondWithError(s, i, "Failed to load lottery info")
		return
	}

	embed := CreateLotteryInfoEmbed(ledger, settings, nextDrawTime)
	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Failed to respond with lottery info: %v", err)
	}
}

// handleBalance handles /lottery balance
func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := parseInvoker(i)
	if err != nil {
		common.RespondWithError(s, i, "Invalid user ID")
		return
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Failed to begin transaction: %v", err)
		common.RespondWithError(s, i, "Failed to load balance")
		return
	}
	defer uow.Rollback()

	economy := services.NewEconomyService(
		uow.AccountRepository(),
		uow.BalanceHistoryRepository(),
		uow.EventBus(),
		f.startingBalance,
	)
	account, err := economy.GetOrCreateAccount(ctx, discordID)
	if err != nil {
		log.Errorf("Failed to get account: %v", err)
		common.RespondWithError(s, i, "Failed to load balance")
		return
	}
	ledger, err := uow.LedgerRepository().Get(ctx)
	if err != nil {
		log.Errorf("Failed to get ledger: %v", err)
		common.RespondWithError(s, i, "Failed to load balance")
		return
	}

	// Account creation is lazy, so this read may have written a row
	if err := uow.Commit(); err != nil {
		log.Errorf("Failed to commit: %v", err)
		common.RespondWithError(s, i, "Failed to load balance")
		return
	}

	embed := CreateBalanceEmbed(account, ledger.TicketsOf(discordID))
	if err := common.RespondWithEmbed(s, i, embed, true); err != nil {
		log.Errorf("Failed to respond with balance: %v", err)
	}
}

// handleAddPot handles /lottery addpot <amount>
func (f *Feature) handleAddPot(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := parseInvoker(i)
	if err != nil {
		common.RespondWithError(s, i, "Invalid user ID")
		return
	}

	var amount int64
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		if opt.Name == "amount" {
			amount = opt.IntValue()
		}
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Failed to begin transaction: %v", err)
		common.RespondWithError(s, i, "Failed to process deposit")
		return
	}
	defer uow.Rollback()

	economy := services.NewEconomyService(
		uow.AccountRepository(),
		uow.BalanceHistoryRepository(),
		uow.EventBus(),
		f.startingBalance,
	)
	potService := services.NewPotService(
		uow.LedgerRepository(),
		uow.SettingsRepository(),
		economy,
		uow.EventBus(),
	)

	actor := interfaces.Actor{
		ParticipantID: discordID,
		Admin:         isAdmin(i, discordID),
	}
	newPot, err := potService.Deposit(ctx, actor, amount)
	if err != nil {
		common.RespondWithError(s, i, depositErrorMessage(err))
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Failed to commit deposit: %v", err)
		common.RespondWithError(s, i, "Failed to complete deposit")
		return
	}

	message := fmt.Sprintf("💰 <@%d> added %s coins to the pot! The pot is now **%s coins**",
		discordID, common.FormatBalance(amount), common.FormatBalance(newPot))
	if err := common.RespondWithMessage(s, i, message, false); err != nil {
		log.Errorf("Failed to respond to deposit: %v", err)
	}
}

// depositErrorMessage maps pot deposit failures to user-facing messages
func depositErrorMessage(err error) string {
	switch {
	case errors.Is(err, entities.ErrInvalidAmount):
		return "Please enter a valid positive amount"
	case errors.Is(err, entities.ErrInsufficientFunds):
		return "You don't have enough coins for that deposit"
	case errors.Is(err, entities.ErrDepositLimitExceeded):
		return "That deposit exceeds the maximum allowed amount"
	default:
		log.Errorf("Failed to deposit to pot: %v", err)
		return "Failed to process deposit"
	}
}

// handleDraw handles /lottery draw (admin-only manual draw)
func (f *Feature) handleDraw(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := parseInvoker(i)
	if err != nil {
		common.RespondWithError(s, i, "Invalid user ID")
		return
	}
	if !isAdmin(i, discordID) {
		common.RespondWithError(s, i, "You need Manage Server permissions to trigger a draw")
		return
	}

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Failed to defer response: %v", err)
		return
	}

	result, err := f.conductManualDraw(ctx)
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	if err := f.AnnounceDrawResult(ctx, result); err != nil {
		log.Errorf("Failed to announce draw result: %v", err)
	}

	if err := common.UpdateMessage(s, i, CreateDrawResultEmbed(result)); err != nil {
		log.Errorf("Failed to send draw confirmation: %v", err)
	}
}

// conductManualDraw runs a full draw in its own transaction
func (f *Feature) conductManualDraw(ctx context.Context) (*entities.DrawResult, error) {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, common.NewSystemError(err, "failed to begin draw transaction")
	}
	defer uow.Rollback()

	economy := services.NewEconomyService(
		uow.AccountRepository(),
		uow.BalanceHistoryRepository(),
		uow.EventBus(),
		f.startingBalance,
	)
	drawService := services.NewDrawService(
		uow.LedgerRepository(),
		uow.SettingsRepository(),
		uow.DrawHistoryRepository(),
		economy,
		uow.EventBus(),
	)

	result, err := drawService.ConductDraw(ctx)
	if err != nil {
		return nil, common.NewSystemError(err, "failed to conduct draw")
	}

	if err := uow.Commit(); err != nil {
		return nil, common.NewSystemError(err, "failed to commit draw")
	}
	return result, nil
}

// handleHistory handles /lottery history
func (f *Feature) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Failed to begin transaction: %v", err)
		common.RespondWithError(s, i, "Failed to load draw history")
		return
	}
	defer uow.Rollback()

	records, err := uow.DrawHistoryRepository().GetRecent(ctx, 10)
	if err != nil {
		log.Errorf("Failed to get draw history: %v", err)
		common.RespondWithError(s, i, "Failed to load draw history")
		return
	}

	if err := common.RespondWithEmbed(s, i, CreateHistoryEmbed(records), false); err != nil {
		log.Errorf("Failed to respond with history: %v", err)
	}
}

// handleChannel handles /lottery channel [channel] (admin-only)
func (f *Feature) handleChannel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := parseInvoker(i)
	if err != nil {
		common.RespondWithError(s, i, "Invalid user ID")
		return
	}
	if !isAdmin(i, discordID) {
		common.RespondWithError(s, i, "You need Manage Server permissions to change settings")
		return
	}

	var channelID *int64
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		if opt.Name == "channel" {
			channel := opt.ChannelValue(s)
			if channel != nil {
				parsed, err := strconv.ParseInt(channel.ID, 10, 64)
				if err != nil {
					common.RespondWithError(s, i, "Invalid channel selected")
					return
				}
				channelID = &parsed
			}
		}
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Failed to begin transaction: %v", err)
		common.RespondWithError(s, i, "Failed to update settings")
		return
	}
	defer uow.Rollback()

	settings, err := uow.SettingsRepository().GetOrCreate(ctx)
	if err != nil {
		log.Errorf("Failed to get settings: %v", err)
		common.RespondWithError(s, i, "Failed to update settings")
		return
	}
	settings.AnnounceChannelID = channelID
	if err := uow.SettingsRepository().Update(ctx, settings); err != nil {
		log.Errorf("Failed to update settings: %v", err)
		common.RespondWithError(s, i, "Failed to update settings")
		return
	}
	if err := uow.Commit(); err != nil {
		log.Errorf("Failed to commit settings: %v", err)
		common.RespondWithError(s, i, "Failed to update settings")
		return
	}

	var message string
	if channelID != nil {
		message = fmt.Sprintf("✅ Lottery announcements will be posted in <#%d>", *channelID)
	} else {
		message = "✅ Lottery announcements disabled"
	}
	if err := common.RespondWithMessage(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to channel update: %v", err)
	}
}

// handleConfigure handles /lottery configure (admin-only). Changes apply to the
// running schedulers without a restart.
func (f *Feature) handleConfigure(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := parseInvoker(i)
	if err != nil {
		common.RespondWithError(s, i, "Invalid user ID")
		return
	}
	if !isAdmin(i, discordID) {
		common.RespondWithError(s, i, "You need Manage Server permissions to change settings")
		return
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Failed to begin transaction: %v", err)
		common.RespondWithError(s, i, "Failed to update settings")
		return
	}
	defer uow.Rollback()

	settings, err := uow.SettingsRepository().GetOrCreate(ctx)
	if err != nil {
		log.Errorf("Failed to get settings: %v", err)
		common.RespondWithError(s, i, "Failed to update settings")
		return
	}

	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		switch opt.Name {
		case "draw_interval_minutes":
			settings.DrawInterval = time.Duration(opt.IntValue()) * time.Minute
		case "ticket_cost":
			settings.TicketCost = opt.IntValue()
		case "payout_percentage":
			settings.PayoutPercentage = opt.IntValue()
		case "max_tickets":
			settings.MaxTickets = opt.IntValue()
		case "max_deposit":
			settings.MaxDeposit = opt.IntValue()
		case "broadcast_interval_minutes":
			settings.BroadcastInterval = time.Duration(opt.IntValue()) * time.Minute
		}
	}

	if err := settings.Validate(); err != nil {
		common.RespondWithError(s, i, fmt.Sprintf("Invalid settings: %v", err))
		return
	}
	if err := uow.SettingsRepository().Update(ctx, settings); err != nil {
		log.Errorf("Failed to update settings: %v", err)
		common.RespondWithError(s, i, "Failed to update settings")
		return
	}
	if err := uow.Commit(); err != nil {
		log.Errorf("Failed to commit settings: %v", err)
		common.RespondWithError(s, i, "Failed to update settings")
		return
	}

	if err := common.RespondWithEmbed(s, i, CreateSettingsEmbed(settings), true); err != nil {
		log.Errorf("Failed to respond with settings: %v", err)
	}
}
