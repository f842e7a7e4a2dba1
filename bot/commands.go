package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "lottery",
			Description: "Recurring lottery commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "buy",
					Description: "Buy lottery tickets for the current round",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "quantity",
							Description: "Number of tickets to buy (default 1)",
							MinValue:    float64Ptr(1),
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "info",
					Description: "Show the current pot, participants and next draw time",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "balance",
					Description: "Check your coin balance and tickets this round",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "addpot",
					Description: "Add coins from your balance directly to the pot",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "Amount of coins to add",
							MinValue:    float64Ptr(1),
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "draw",
					Description: "Trigger a draw immediately (admin only)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "history",
					Description: "Show recent draw results",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "channel",
					Description: "Set the announcement channel (admin only)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type: discordgo.ApplicationCommandOptionChannel,
							Name: "channel",
							ChannelTypes: []discordgo.ChannelType{
								discordgo.ChannelTypeGuildText,
							},
							Description: "Channel for draw results and pot broadcasts (omit to disable)",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "configure",
					Description: "Adjust lottery settings (admin only)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "draw_interval_minutes",
							Description: "Minutes between scheduled draws",
							MinValue:    float64Ptr(1),
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "ticket_cost",
							Description: "Cost of one ticket in coins",
							MinValue:    float64Ptr(1),
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "payout_percentage",
							Description: "Percentage of the pot paid to the winner (0-100)",
							MinValue:    float64Ptr(0),
							MaxValue:    100,
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "max_tickets",
							Description: "Maximum tickets per participant per round",
							MinValue:    float64Ptr(1),
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "max_deposit",
							Description: "Maximum single pot deposit for non-admins",
							MinValue:    float64Ptr(1),
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "broadcast_interval_minutes",
							Description: "Minutes between pot broadcasts (0 disables them)",
							MinValue:    float64Ptr(0),
							Required:    false,
						},
					},
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	log.Infof("Registered %d slash commands", len(commands))
	return nil
}

func float64Ptr(v float64) *float64 {
	return &v
}
