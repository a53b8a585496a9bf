package services

import (
	"remindbot/internal/app/deps"
	drl "remindbot/internal/core/domain/rate_limiter"
	"remindbot/internal/core/services"
	cancelreminder "remindbot/internal/core/services/cancel_reminder"
	clearreminders "remindbot/internal/core/services/clear_reminders"
	createreminder "remindbot/internal/core/services/create_reminder"
	listreminders "remindbot/internal/core/services/list_reminders"
	ratelimiting "remindbot/internal/core/services/rate_limiting"
	schedulereminders "remindbot/internal/core/services/schedule_reminders"
	sendreminder "remindbot/internal/core/services/send_reminder"
	snoozereminder "remindbot/internal/core/services/snooze_reminder"
)

type Services struct {
	CreateReminder    services.Service[createreminder.Input, createreminder.Result]
	SnoozeReminder    services.Service[snoozereminder.Input, snoozereminder.Result]
	ListReminders     services.Service[listreminders.Input, listreminders.Result]
	CancelReminder    services.Service[cancelreminder.Input, cancelreminder.Result]
	ClearReminders    services.Service[clearreminders.Input, clearreminders.Result]
	ScheduleReminders services.Service[schedulereminders.Input, schedulereminders.Result]
	SendReminder      services.Service[sendreminder.Input, sendreminder.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.CreateReminder = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Minute, Value: deps.Config.CreateRateLimitPerMinute},
		createreminder.New(
			deps.Logger,
			deps.ReminderRepository,
			deps.ReminderQueryParser,
			deps.ReminderScheduler,
			deps.Now,
		),
	)
	s.SnoozeReminder = snoozereminder.New(
		deps.Logger,
		deps.ReminderRepository,
		deps.SnoozeQueryParser,
		deps.ReminderScheduler,
		deps.Now,
	)
	s.ListReminders = listreminders.New(deps.Logger, deps.ReminderRepository)
	s.CancelReminder = cancelreminder.New(deps.Logger, deps.ReminderRepository)
	s.ClearReminders = clearreminders.New(deps.Logger, deps.ReminderRepository)
	s.ScheduleReminders = schedulereminders.New(
		deps.Logger,
		deps.ReminderRepository,
		deps.ReminderScheduler,
		deps.Config.RequeueAfter,
		deps.Config.FiredRetention,
		deps.Now,
	)
	s.SendReminder = sendreminder.New(
		deps.Logger,
		deps.ReminderRepository,
		deps.ReminderSender,
		deps.Now,
	)

	return s
}
