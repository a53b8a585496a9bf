package schedulereminders

import (
	"context"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/services"
	"time"
)

type Input struct{}

type Result struct {
	ScheduledCount int
	PrunedCount    uint
}

// The horizon scan is the restart-safe delivery mechanism: every tick it
// claims due pending reminders for the queue and re-claims reminders whose
// earlier hand-off went stale (crash between scan and send). It also prunes
// fired reminders past the retention window so the store stays bounded.
type service struct {
	log                logging.Logger
	reminderRepository reminder.ReminderRepository
	scheduler          reminder.Scheduler
	requeueAfter       time.Duration
	retention          time.Duration
	now                func() time.Time
}

func New(
	log logging.Logger,
	reminderRepository reminder.ReminderRepository,
	scheduler reminder.Scheduler,
	requeueAfter time.Duration,
	retention time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
		scheduler:          scheduler,
		requeueAfter:       requeueAfter,
		retention:          retention,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()
	claimed, err := s.reminderRepository.Schedule(
		ctx,
		reminder.ScheduleInput{
			AtBefore:      now.Add(reminder.DURATION_FOR_SCHEDULING),
			ScheduledAt:   now,
			RequeueBefore: now.Add(-s.requeueAfter),
		},
	)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	for _, rem := range claimed {
		// One reminder failing to publish must not hold back the rest;
		// its stale marker gets it re-claimed on a later tick.
		if err := s.scheduler.ScheduleReminder(ctx, rem); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
			continue
		}
		result.ScheduledCount++
	}
	if result.ScheduledCount > 0 {
		s.log.Info(
			ctx,
			"Reminders handed to the delivery queue.",
			logging.Entry("count", result.ScheduledCount),
		)
	}

	pruned, err := s.reminderRepository.DeleteFiredBefore(ctx, now.Add(-s.retention))
	if err != nil {
		// Pruning is housekeeping, the next tick retries it.
		logging.Error(ctx, s.log, err)
		return result, nil
	}
	if pruned > 0 {
		s.log.Info(ctx, "Old fired reminders pruned.", logging.Entry("count", pruned))
	}
	result.PrunedCount = pruned
	return result, nil
}
