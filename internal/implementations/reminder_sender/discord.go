package remindersender

import (
	"context"
	"fmt"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/reminder"

	"github.com/bwmarrin/discordgo"
)

// DiscordSession is the part of discordgo.Session needed to deliver a
// direct message.
type DiscordSession interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendComplex(
		channelID string,
		data *discordgo.MessageSend,
		options ...discordgo.RequestOption,
	) (*discordgo.Message, error)
}

type DiscordSender struct {
	session DiscordSession
}

func NewDiscord(session DiscordSession) *DiscordSender {
	if session == nil {
		panic(e.NewNilArgumentError("session"))
	}
	return &DiscordSender{session: session}
}

func (s *DiscordSender) SendReminder(ctx context.Context, rem reminder.Reminder) error {
	dmChannel, err := s.session.UserChannelCreate(rem.UserID.String())
	if err != nil {
		return fmt.Errorf("could not create DM channel for user %s: %w", rem.UserID, err)
	}

	text := fmt.Sprintf("Hey **<@%s>**, remember **%s**", rem.UserID, rem.Message)
	_, err = s.session.ChannelMessageSendComplex(dmChannel.ID, &discordgo.MessageSend{Content: text})
	if err != nil {
		return fmt.Errorf("could not send DM to user %s: %w", rem.UserID, err)
	}
	return nil
}
