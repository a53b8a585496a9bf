package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"remindbot/internal/app/consumers"
	"remindbot/internal/app/deps"
	"remindbot/internal/app/services"
	"remindbot/internal/bot"
	httpapp "remindbot/internal/http"
	"syscall"
	"time"

	dl "remindbot/internal/core/domain/logging"

	"github.com/bwmarrin/discordgo"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)
	shutdownConsumers := consumers.InitConsumers(deps, services)

	discordBot := bot.New(
		deps.Logger,
		deps.Config.CommandPrefix,
		services.CreateReminder,
		services.SnoozeReminder,
		services.ListReminders,
		services.CancelReminder,
		services.ClearReminders,
	)
	deps.Discord.AddHandler(discordBot.HandleMessageCreate)
	deps.Discord.Identify.Intents = discordgo.IntentsDirectMessages | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent
	if err := deps.Discord.Open(); err != nil {
		deps.Logger.Error(context.Background(), "Could not open Discord gateway connection.", dl.Entry("err", err))
		panic(err)
	}
	deps.Logger.Info(
		context.Background(),
		"Discord bot has started.",
		dl.Entry("commandPrefix", deps.Config.CommandPrefix),
	)

	router := httpapp.NewRouter(httpapp.RouterParams{
		Log:            deps.Logger,
		SseServer:      deps.SseServer,
		DB:             deps.DB,
		AllowedOrigins: deps.Config.AllowedOrigins,
		CreateReminder: services.CreateReminder,
		ListReminders:  services.ListReminders,
		ClearReminders: services.ClearReminders,
	})
	httpServer := httpapp.NewServer(deps.Config.HTTPAddress, router)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	shutdownConsumers()
	shutdown(context.Background(), httpServer, deps, shutdownDeps)
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("isTestMode", deps.Config.IsTestMode),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func shutdown(ctx context.Context, server *http.Server, deps *deps.Deps, shutDownDeps func()) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}

	shutDownDeps()
	deps.Logger.Info(ctx, "HTTP server has shutdowned.")
}
