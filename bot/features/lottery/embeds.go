package lottery

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"lotto/bot/common"
	"lotto/domain/entities"
	"lotto/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// formatParticipants builds a mention list of the top ticket holders
func formatParticipants(tickets map[int64]int64) string {
	if len(tickets) == 0 {
		return "No participants yet"
	}

	type holder struct {
		participantID int64
		tickets       int64
	}
	holders := make([]holder, 0, len(tickets))
	for participantID, count := range tickets {
		if count > 0 {
			holders = append(holders, holder{participantID, count})
		}
	}
	if len(holders) == 0 {
		return "No participants yet"
	}
	sort.Slice(holders, func(i, j int) bool {
		if holders[i].tickets != holders[j].tickets {
			return holders[i].tickets > holders[j].tickets
		}
		return holders[i].participantID < holders[j].participantID
	})

	lines := make([]string, 0)
	maxShow := 5
	if len(holders) < maxShow {
		maxShow = len(holders)
	}
	for i := 0; i < maxShow; i++ {
		lines = append(lines, fmt.Sprintf("<@%d>: %d tickets", holders[i].participantID, holders[i].tickets))
	}
	if len(holders) > maxShow {
		lines = append(lines, fmt.Sprintf("...and %d more", len(holders)-maxShow))
	}
	return strings.Join(lines, "\n")
}

// CreateLotteryInfoEmbed creates the main lottery status embed
func CreateLotteryInfoEmbed(ledger *entities.Ledger, settings *entities.LotterySettings, nextDrawTime *time.Time) *discordgo.MessageEmbed {
	drawStr := "Not scheduled"
	if nextDrawTime != nil {
		drawStr = fmt.Sprintf("%s (%s)",
			common.FormatDiscordTimestamp(*nextDrawTime, "f"),
			common.FormatDiscordTimestamp(*nextDrawTime, "R"))
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Lottery - %s coins", common.FormatBalance(ledger.Pot)),
		Color:       common.ColorInfo,
		Description: fmt.Sprintf("Next draw: %s", drawStr),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Ticket Cost",
				Value:  common.FormatBalance(settings.TicketCost),
				Inline: true,
			},
			{
				Name:   "Max Tickets",
				Value:  fmt.Sprintf("%d per player", settings.MaxTickets),
				Inline: true,
			},
			{
				Name:   "Payout",
				Value:  fmt.Sprintf("%d%% of the pot", settings.PayoutPercentage),
				Inline: true,
			},
			{
				Name:   "Participants",
				Value:  formatParticipants(ledger.Tickets),
				Inline: false,
			},
		},
	}
}

// CreatePurchaseConfirmationEmbed creates an ephemeral embed for purchase confirmation
func CreatePurchaseConfirmationEmbed(result *interfaces.PurchaseResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Tickets Purchased!",
		Color:       common.ColorSuccess,
		Description: fmt.Sprintf("You bought %d ticket(s) for %s coins", result.Quantity, common.FormatBalance(result.Cost)),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Your Tickets",
				Value:  fmt.Sprintf("%d", result.TotalTickets),
				Inline: true,
			},
			{
				Name:   "Pot",
				Value:  common.FormatBalance(result.Pot),
				Inline: true,
			},
			{
				Name:   "New Balance",
				Value:  common.FormatBalance(result.NewBalance),
				Inline: true,
			},
		},
	}
}

// CreateBalanceEmbed creates an ephemeral balance embed
func CreateBalanceEmbed(account *entities.Account, tickets int64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Your Balance",
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Balance",
				Value:  fmt.Sprintf("%s coins", common.FormatBalance(account.Balance)),
				Inline: true,
			},
			{
				Name:   "Tickets This Round",
				Value:  fmt.Sprintf("%d", tickets),
				Inline: true,
			},
		},
	}
}

// CreateDrawResultEmbed creates an embed for a completed or postponed draw
func CreateDrawResultEmbed(result *entities.DrawResult) *discordgo.MessageEmbed {
	if result.Postponed {
		return &discordgo.MessageEmbed{
			Title: "Lottery Draw Postponed",
			Color: common.ColorWarning,
			Description: fmt.Sprintf("Nobody bought tickets this round. Next draw: %s",
				common.FormatDiscordTimestamp(result.NextDrawTime, "f")),
		}
	}

	record := result.Record
	return &discordgo.MessageEmbed{
		Title: "Lottery Draw Results",
		Color: common.ColorSuccess,
		Description: fmt.Sprintf("<@%d> won **%s coins**!", record.WinnerID,
			common.FormatBalance(record.Payout)),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Pot",
				Value:  common.FormatBalance(record.Pot),
				Inline: true,
			},
			{
				Name:   "Winning Odds",
				Value:  fmt.Sprintf("%d of %d tickets", record.WinnerTickets, record.TotalTickets),
				Inline: true,
			},
			{
				Name:   "Next Draw",
				Value:  common.FormatDiscordTimestamp(result.NextDrawTime, "f"),
				Inline: false,
			},
		},
	}
}

// CreatePotBroadcastEmbed creates the periodic pot announcement embed
func CreatePotBroadcastEmbed(ledger *entities.Ledger, nextDrawTime *time.Time) *discordgo.MessageEmbed {
	drawStr := "Not scheduled"
	if nextDrawTime != nil {
		drawStr = common.FormatDiscordTimestamp(*nextDrawTime, "R")
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Lottery Pot: %s coins", common.FormatBalance(ledger.Pot)),
		Color: common.ColorInfo,
		Description: fmt.Sprintf("%d participant(s) holding %d ticket(s). Drawing %s",
			ledger.ParticipantCount(), ledger.TotalTickets(), drawStr),
	}
}

// CreateHistoryEmbed creates an embed listing recent draw results
func CreateHistoryEmbed(records []*entities.DrawRecord) *discordgo.MessageEmbed {
	if len(records) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "Recent Draws",
			Color:       common.ColorInfo,
			Description: "No draws yet",
		}
	}

	lines := make([]string, 0, len(records))
	for _, record := range records {
		lines = append(lines, fmt.Sprintf("%s — <@%d> won %s of a %s pot",
			common.FormatDiscordTimestamp(record.DrawnAt, "d"),
			record.WinnerID,
			common.FormatBalance(record.Payout),
			common.FormatBalance(record.Pot)))
	}

	return &discordgo.MessageEmbed{
		Title:       "Recent Draws",
		Color:       common.ColorInfo,
		Description: strings.Join(lines, "\n"),
	}
}

// CreateSettingsEmbed shows the live lottery configuration
func CreateSettingsEmbed(settings *entities.LotterySettings) *discordgo.MessageEmbed {
	channelStr := "Not configured"
	if settings.HasAnnounceChannel() {
		channelStr = fmt.Sprintf("<#%d>", settings.GetAnnounceChannelID())
	}

	broadcastStr := "Disabled"
	if settings.BroadcastsEnabled() {
		broadcastStr = common.FormatDuration(settings.BroadcastInterval)
	}

	return &discordgo.MessageEmbed{
		Title: "Lottery Settings",
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Draw Interval", Value: common.FormatDuration(settings.DrawInterval), Inline: true},
			{Name: "Ticket Cost", Value: common.FormatBalance(settings.TicketCost), Inline: true},
			{Name: "Payout", Value: fmt.Sprintf("%d%%", settings.PayoutPercentage), Inline: true},
			{Name: "Max Tickets", Value: fmt.Sprintf("%d", settings.MaxTickets), Inline: true},
			{Name: "Deposit Limit", Value: common.FormatBalance(settings.MaxDeposit), Inline: true},
			{Name: "Pot Broadcasts", Value: broadcastStr, Inline: true},
			{Name: "Announce Channel", Value: channelStr, Inline: false},
		},
	}
}
