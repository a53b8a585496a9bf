package bot

import (
	"context"
	"errors"
	"fmt"
	"remindbot/internal/core/domain/logging"
	ratelimiter "remindbot/internal/core/domain/rate_limiter"
	"remindbot/internal/core/domain/reminder"
	cancelreminder "remindbot/internal/core/services/cancel_reminder"
	clearreminders "remindbot/internal/core/services/clear_reminders"
	createreminder "remindbot/internal/core/services/create_reminder"
	listreminders "remindbot/internal/core/services/list_reminders"
	snoozereminder "remindbot/internal/core/services/snooze_reminder"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
)

const USER_ID = "100500"
const CHANNEL_ID = "200600"

type fakeService[T any, S any] struct {
	result    S
	err       error
	lastInput T
	called    bool
}

func (s *fakeService[T, S]) Run(ctx context.Context, input T) (S, error) {
	s.lastInput = input
	s.called = true
	return s.result, s.err
}

type fakeMessageSession struct {
	sentChannel string
	sentContent []string
	err         error
}

func (s *fakeMessageSession) ChannelMessageSend(
	channelID string,
	content string,
	options ...discordgo.RequestOption,
) (*discordgo.Message, error) {
	s.sentChannel = channelID
	s.sentContent = append(s.sentContent, content)
	return &discordgo.Message{}, s.err
}

func (s *fakeMessageSession) lastSent() string {
	if len(s.sentContent) == 0 {
		return ""
	}
	return s.sentContent[len(s.sentContent)-1]
}

type testSuite struct {
	suite.Suite
	create  *fakeService[createreminder.Input, createreminder.Result]
	snooze  *fakeService[snoozereminder.Input, snoozereminder.Result]
	list    *fakeService[listreminders.Input, listreminders.Result]
	cancel  *fakeService[cancelreminder.Input, cancelreminder.Result]
	clear   *fakeService[clearreminders.Input, clearreminders.Result]
	session *fakeMessageSession
	bot     *Bot
}

func (s *testSuite) SetupTest() {
	s.create = &fakeService[createreminder.Input, createreminder.Result]{}
	s.snooze = &fakeService[snoozereminder.Input, snoozereminder.Result]{}
	s.list = &fakeService[listreminders.Input, listreminders.Result]{}
	s.cancel = &fakeService[cancelreminder.Input, cancelreminder.Result]{}
	s.clear = &fakeService[clearreminders.Input, clearreminders.Result]{}
	s.session = &fakeMessageSession{}
	s.bot = New(
		logging.NewFakeLogger(),
		"!",
		s.create,
		s.snooze,
		s.list,
		s.cancel,
		s.clear,
	)
}

func TestBot(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) message(content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Content:   content,
			ChannelID: CHANNEL_ID,
			Author:    &discordgo.User{ID: USER_ID},
		},
	}
}

func (s *testSuite) TestHelp() {
	s.bot.handleMessage(context.Background(), s.session, s.message("!help"))

	s.Require().Equal(CHANNEL_ID, s.session.sentChannel)
	s.Require().Equal(helpText, s.session.lastSent())
}

func (s *testSuite) TestIgnoresMessagesWithoutPrefix() {
	s.bot.handleMessage(context.Background(), s.session, s.message("hello there"))

	s.Require().Empty(s.session.sentContent)
	s.Require().False(s.create.called)
}

func (s *testSuite) TestIgnoresBotAuthors() {
	m := s.message("!help")
	m.Author.Bot = true

	s.bot.handleMessage(context.Background(), s.session, m)

	s.Require().Empty(s.session.sentContent)
}

func (s *testSuite) TestIgnoresUnknownCommand() {
	s.bot.handleMessage(context.Background(), s.session, s.message("!dance"))

	s.Require().Empty(s.session.sentContent)
}

func (s *testSuite) TestRemindMe() {
	s.create.result = createreminder.Result{
		Reminder: reminder.Reminder{
			ID:      1,
			UserID:  USER_ID,
			Message: "feed the cat",
			At:      time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	s.bot.handleMessage(context.Background(), s.session, s.message("!remindme feed the cat tomorrow at noon"))

	s.Require().Equal(createreminder.Input{
		UserID: USER_ID,
		Query:  "feed the cat tomorrow at noon",
	}, s.create.lastInput)
	s.Require().Equal(
		fmt.Sprintf(reminderSetTextFmt, USER_ID, "March 1, 2023 12:00 PM", "feed the cat"),
		s.session.lastSent(),
	)
}

func (s *testSuite) TestRemindMeInvalidQuery() {
	s.create.err = fmt.Errorf("parse: %w", reminder.ErrQueryParsing)

	s.bot.handleMessage(context.Background(), s.session, s.message("!remindme feed the cat"))

	s.Require().Equal(invalidReminderText, s.session.lastSent())
}

func (s *testSuite) TestRemindMeRateLimited() {
	s.create.err = ratelimiter.ErrRateLimitExceeded

	s.bot.handleMessage(context.Background(), s.session, s.message("!remindme feed the cat in 1h"))

	s.Require().Equal(rateLimitedText, s.session.lastSent())
}

func (s *testSuite) TestRemindMeUnexpectedError() {
	s.create.err = errors.New("boom")

	s.bot.handleMessage(context.Background(), s.session, s.message("!remindme feed the cat in 1h"))

	s.Require().Equal(errorText, s.session.lastSent())
}

func (s *testSuite) TestSnooze() {
	s.snooze.result = snoozereminder.Result{
		Reminder: reminder.Reminder{
			ID:     1,
			UserID: USER_ID,
			At:     time.Date(2023, 3, 1, 12, 30, 0, 0, time.UTC),
		},
	}

	s.bot.handleMessage(context.Background(), s.session, s.message("!snooze for 30 minutes"))

	s.Require().Equal(snoozereminder.Input{UserID: USER_ID, Query: "for 30 minutes"}, s.snooze.lastInput)
	s.Require().Equal(
		fmt.Sprintf(reminderSnoozedTextFmt, USER_ID, "March 1, 2023 12:30 PM"),
		s.session.lastSent(),
	)
}

func (s *testSuite) TestSnoozeNothingFired() {
	s.snooze.err = reminder.ErrNothingToSnooze

	s.bot.handleMessage(context.Background(), s.session, s.message("!snooze for 30 minutes"))

	s.Require().Equal(nothingToSnoozeText, s.session.lastSent())
}

func (s *testSuite) TestRemindersEmpty() {
	s.bot.handleMessage(context.Background(), s.session, s.message("!reminders"))

	s.Require().Equal(noRemindersText, s.session.lastSent())
}

func (s *testSuite) TestReminders() {
	s.list.result = listreminders.Result{
		Reminders: []reminder.Reminder{
			{ID: 1, Message: "feed the cat", At: time.Date(2023, 3, 1, 9, 0, 0, 0, time.UTC)},
			{ID: 2, Message: "water plants", At: time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC)},
		},
	}

	s.bot.handleMessage(context.Background(), s.session, s.message("!reminders"))

	s.Require().Equal(listreminders.Input{UserID: USER_ID}, s.list.lastInput)
	s.Require().Contains(s.session.lastSent(), "feed the cat")
	s.Require().Contains(s.session.lastSent(), "water plants")
}

func (s *testSuite) TestForget() {
	s.bot.handleMessage(context.Background(), s.session, s.message("!forget"))

	s.Require().Equal(cancelreminder.Input{UserID: USER_ID}, s.cancel.lastInput)
	s.Require().Equal(forgottenText, s.session.lastSent())
}

func (s *testSuite) TestForgetNothingFired() {
	s.cancel.err = reminder.ErrNothingToCancel

	s.bot.handleMessage(context.Background(), s.session, s.message("!forget"))

	s.Require().Equal(nothingToForgetText, s.session.lastSent())
}

func (s *testSuite) TestClear() {
	s.clear.result = clearreminders.Result{Count: 3}

	s.bot.handleMessage(context.Background(), s.session, s.message("!clear"))

	s.Require().Equal(clearreminders.Input{UserID: USER_ID}, s.clear.lastInput)
	s.Require().Equal(fmt.Sprintf(clearedTextFmt, uint(3), USER_ID), s.session.lastSent())
}

func TestSplitCommand(t *testing.T) {
	cases := []struct {
		content string
		command string
		params  string
		ok      bool
	}{
		{content: "!help", command: "help", params: "", ok: true},
		{content: "!remindme feed the cat in 1h", command: "remindme", params: "feed the cat in 1h", ok: true},
		{content: "!REMINDME x in 1h", command: "remindme", params: "x in 1h", ok: true},
		{content: "! spaced", command: "spaced", params: "", ok: true},
		{content: "!", ok: false},
		{content: "no prefix", ok: false},
		{content: "", ok: false},
	}

	for _, testcase := range cases {
		command, params, ok := splitCommand(testcase.content, "!")
		if command != testcase.command || params != testcase.params || ok != testcase.ok {
			t.Errorf(
				"splitCommand(%q) = (%q, %q, %v), want (%q, %q, %v)",
				testcase.content,
				command, params, ok,
				testcase.command, testcase.params, testcase.ok,
			)
		}
	}
}
