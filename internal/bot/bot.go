package bot

import (
	"context"
	"errors"
	"fmt"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	ratelimiter "remindbot/internal/core/domain/rate_limiter"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	cancelreminder "remindbot/internal/core/services/cancel_reminder"
	clearreminders "remindbot/internal/core/services/clear_reminders"
	createreminder "remindbot/internal/core/services/create_reminder"
	listreminders "remindbot/internal/core/services/list_reminders"
	snoozereminder "remindbot/internal/core/services/snooze_reminder"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// MessageSession is the part of discordgo.Session the command handlers
// need to reply in the channel they were addressed from.
type MessageSession interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Bot routes prefix commands from Discord messages to the reminder
// services and renders their results back as channel replies.
type Bot struct {
	log            logging.Logger
	prefix         string
	createReminder services.Service[createreminder.Input, createreminder.Result]
	snoozeReminder services.Service[snoozereminder.Input, snoozereminder.Result]
	listReminders  services.Service[listreminders.Input, listreminders.Result]
	cancelReminder services.Service[cancelreminder.Input, cancelreminder.Result]
	clearReminders services.Service[clearreminders.Input, clearreminders.Result]
}

func New(
	log logging.Logger,
	prefix string,
	createReminder services.Service[createreminder.Input, createreminder.Result],
	snoozeReminder services.Service[snoozereminder.Input, snoozereminder.Result],
	listReminders services.Service[listreminders.Input, listreminders.Result],
	cancelReminder services.Service[cancelreminder.Input, cancelreminder.Result],
	clearReminders services.Service[clearreminders.Input, clearreminders.Result],
) *Bot {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if prefix == "" {
		panic("command prefix must not be empty")
	}
	if createReminder == nil {
		panic(e.NewNilArgumentError("createReminder"))
	}
	if snoozeReminder == nil {
		panic(e.NewNilArgumentError("snoozeReminder"))
	}
	if listReminders == nil {
		panic(e.NewNilArgumentError("listReminders"))
	}
	if cancelReminder == nil {
		panic(e.NewNilArgumentError("cancelReminder"))
	}
	if clearReminders == nil {
		panic(e.NewNilArgumentError("clearReminders"))
	}
	return &Bot{
		log:            log,
		prefix:         prefix,
		createReminder: createReminder,
		snoozeReminder: snoozeReminder,
		listReminders:  listReminders,
		cancelReminder: cancelReminder,
		clearReminders: clearReminders,
	}
}

// HandleMessageCreate is the discordgo handler, register it with
// session.AddHandler.
func (b *Bot) HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	b.handleMessage(context.Background(), s, m)
}

func (b *Bot) handleMessage(ctx context.Context, session MessageSession, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	command, params, ok := splitCommand(m.Content, b.prefix)
	if !ok {
		return
	}

	userID := user.ID(m.Author.ID)
	switch command {
	case "help":
		b.reply(ctx, session, m.ChannelID, helpText)
	case "remindme":
		b.handleRemindMe(ctx, session, m.ChannelID, userID, params)
	case "snooze":
		b.handleSnooze(ctx, session, m.ChannelID, userID, params)
	case "reminders":
		b.handleReminders(ctx, session, m.ChannelID, userID)
	case "forget":
		b.handleForget(ctx, session, m.ChannelID, userID)
	case "clear":
		b.handleClear(ctx, session, m.ChannelID, userID)
	}
}

func (b *Bot) handleRemindMe(
	ctx context.Context,
	session MessageSession,
	channelID string,
	userID user.ID,
	params string,
) {
	result, err := b.createReminder.Run(ctx, createreminder.Input{UserID: userID, Query: params})
	switch {
	case errors.Is(err, reminder.ErrQueryParsing):
		b.reply(ctx, session, channelID, invalidReminderText)
	case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
		b.reply(ctx, session, channelID, rateLimitedText)
	case err != nil:
		logging.Error(ctx, b.log, err, logging.Entry("userID", userID))
		b.reply(ctx, session, channelID, errorText)
	default:
		b.reply(ctx, session, channelID, fmt.Sprintf(
			reminderSetTextFmt,
			userID,
			result.Reminder.At.Format(timeLayout),
			result.Reminder.Message,
		))
	}
}

func (b *Bot) handleSnooze(
	ctx context.Context,
	session MessageSession,
	channelID string,
	userID user.ID,
	params string,
) {
	result, err := b.snoozeReminder.Run(ctx, snoozereminder.Input{UserID: userID, Query: params})
	switch {
	case errors.Is(err, reminder.ErrQueryParsing):
		b.reply(ctx, session, channelID, invalidSnoozeText)
	case errors.Is(err, reminder.ErrNothingToSnooze):
		b.reply(ctx, session, channelID, nothingToSnoozeText)
	case err != nil:
		logging.Error(ctx, b.log, err, logging.Entry("userID", userID))
		b.reply(ctx, session, channelID, errorText)
	default:
		b.reply(ctx, session, channelID, fmt.Sprintf(
			reminderSnoozedTextFmt,
			userID,
			result.Reminder.At.Format(timeLayout),
		))
	}
}

func (b *Bot) handleReminders(
	ctx context.Context,
	session MessageSession,
	channelID string,
	userID user.ID,
) {
	result, err := b.listReminders.Run(ctx, listreminders.Input{UserID: userID})
	if err != nil {
		logging.Error(ctx, b.log, err, logging.Entry("userID", userID))
		b.reply(ctx, session, channelID, errorText)
		return
	}
	if len(result.Reminders) == 0 {
		b.reply(ctx, session, channelID, noRemindersText)
		return
	}

	var sb strings.Builder
	sb.WriteString("Your upcoming reminders:")
	for _, rem := range result.Reminders {
		fmt.Fprintf(&sb, "\n- On **%s**: %s", rem.At.Format(timeLayout), rem.Message)
	}
	b.reply(ctx, session, channelID, sb.String())
}

func (b *Bot) handleForget(
	ctx context.Context,
	session MessageSession,
	channelID string,
	userID user.ID,
) {
	_, err := b.cancelReminder.Run(ctx, cancelreminder.Input{UserID: userID})
	switch {
	case errors.Is(err, reminder.ErrNothingToCancel):
		b.reply(ctx, session, channelID, nothingToForgetText)
	case err != nil:
		logging.Error(ctx, b.log, err, logging.Entry("userID", userID))
		b.reply(ctx, session, channelID, errorText)
	default:
		b.reply(ctx, session, channelID, forgottenText)
	}
}

func (b *Bot) handleClear(
	ctx context.Context,
	session MessageSession,
	channelID string,
	userID user.ID,
) {
	result, err := b.clearReminders.Run(ctx, clearreminders.Input{UserID: userID})
	if err != nil {
		logging.Error(ctx, b.log, err, logging.Entry("userID", userID))
		b.reply(ctx, session, channelID, errorText)
		return
	}
	b.reply(ctx, session, channelID, fmt.Sprintf(clearedTextFmt, result.Count, userID))
}

func (b *Bot) reply(ctx context.Context, session MessageSession, channelID string, text string) {
	if _, err := session.ChannelMessageSend(channelID, text); err != nil {
		b.log.Error(
			ctx,
			"Could not send reply.",
			logging.Entry("err", err),
			logging.Entry("channelID", channelID),
		)
	}
}

func splitCommand(content string, prefix string) (command string, params string, ok bool) {
	if !strings.HasPrefix(content, prefix) {
		return "", "", false
	}
	content = strings.TrimSpace(content[len(prefix):])
	if content == "" {
		return "", "", false
	}
	command, params, _ = strings.Cut(content, " ")
	return strings.ToLower(command), strings.TrimSpace(params), true
}
