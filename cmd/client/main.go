package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/songguesser/client/internal/dispatch"
	"github.com/songguesser/client/internal/playback"
	"github.com/songguesser/client/internal/roster"
	"github.com/songguesser/client/internal/session"
	"github.com/songguesser/client/internal/webui"
	"github.com/songguesser/client/internal/widget"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	addr := os.Getenv("SONG_GUESSER_ADDR")
	if addr == "" {
		// No session server address means there is nothing to join.
		logger.Info("SONG_GUESSER_ADDR not set, exiting")
		return
	}
	nick := getEnv("SONG_GUESSER_NICK", "Anonymous")
	httpAddr := getEnv("SONG_GUESSER_HTTP", "127.0.0.1:8080")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()
	sim := widget.NewSimulated(clock, logger.Named("widget"))
	channel := session.New(logger.Named("session"))
	sync := playback.NewSynchronizer(clock, logger.Named("playback"))
	ui := webui.NewServer(logger.Named("webui"))

	d := dispatch.New(dispatch.Config{
		Addr:     addr,
		Nickname: nick,
		Channel:  channel,
		Playback: sync,
		Bindings: roster.NewBindings(ui),
		Notifier: ui,
		Logger:   logger.Named("dispatch"),
	})
	ui.SetInbox(d.Inbox())

	sim.OnStateChange(func(st playback.WidgetState) {
		d.Inbox() <- dispatch.WidgetStateChanged{State: st}
	})
	sim.OnError(func() {
		d.Inbox() <- dispatch.WidgetError{}
	})
	sync.WaitForWidget(ctx, sim.Provide, func(w playback.Widget) {
		d.Inbox() <- dispatch.WidgetAttached{Widget: w}
	})

	httpSrv := &http.Server{Addr: httpAddr, Handler: ui.Routes()}
	go func() {
		logger.Info("presentation listening", zap.String("addr", httpAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("presentation server", zap.Error(err))
		}
	}()

	runErr := d.Run(ctx)
	_ = httpSrv.Shutdown(context.Background())
	if runErr != nil {
		logger.Fatal("session ended", zap.Error(runErr))
	}
	logger.Info("session closed")
}
