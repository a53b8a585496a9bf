package main

import (
	"context"
	"os"
	"os/signal"
	"remindbot/internal/app/deps"
	"remindbot/internal/app/services"
	"remindbot/internal/core/domain/logging"
	schedulereminders "remindbot/internal/core/services/schedule_reminders"
	"syscall"
	"time"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)

	ticker := time.NewTicker(deps.Config.SchedulingPeriod)
	defer ticker.Stop()

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(
		context.Background(),
		"Starting periodic reminder scheduler.",
		logging.Entry("periodMinutes", (deps.Config.SchedulingPeriod).Minutes()),
	)

loop:
	for {
		select {
		case <-stopCh:
			log.Info(context.Background(), "Stopping periodic reminder scheduler.")
			break loop
		case <-ticker.C:
			log.Info(context.Background(), "Launching reminders scheduling service.")
			result, err := services.ScheduleReminders.Run(context.Background(), schedulereminders.Input{})
			if err != nil {
				log.Error(context.Background(), "Scheduling service returned an error.", logging.Entry("err", err))
				continue
			}
			log.Info(
				context.Background(),
				"Reminders scheduling finished.",
				logging.Entry("scheduledCount", result.ScheduledCount),
				logging.Entry("prunedCount", result.PrunedCount),
			)
		}
	}
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
