package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mcast/internal/config"
	"mcast/internal/metrics"
	"mcast/internal/session"
	"mcast/internal/util/logger/handlers/slogpretty"
	"mcast/internal/util/logger/sl"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	configPath := config.FetchPath()
	if configPath == "" {
		panic("config path is empty")
	}
	cfg := config.MustLoadConfig(configPath)

	log := setupLogger(cfg.Env)

	log.Info("starting multicast engine",
		slog.String("address", cfg.Address),
		slog.Int("port", cfg.Port),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalChanel := make(chan os.Signal, 1)
	signal.Notify(signalChanel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-signalChanel
		log.Info("Shutdown signal received", slog.Any("signal", sig))
		cancel()
	}()

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, log)
	}

	sess := session.New(log, m)

	go drainEvents(ctx, sess, log)

	instanceID, err := sess.Start(session.Config{
		Address:      cfg.Address,
		Port:         cfg.Port,
		Message:      cfg.Message,
		Interface:    cfg.Interface,
		SendInterval: cfg.SendInterval,
		ReadTimeout:  cfg.ReadTimeout,
	})
	if err != nil {
		log.Error("failed to start session", sl.Err(err))
		os.Exit(1)
	}
	log.Info("session running", slog.String("instance_id", instanceID))

	go watchConfig(ctx, configPath, sess, log)

	<-ctx.Done()

	if err := sess.Stop(); err != nil {
		log.Error("failed to stop session", sl.Err(err))
	}
	log.Info("engine shutting down gracefully")
}

// drainEvents forwards engine events into the log. The engine drops
// events when nobody drains them, so this runs for the process life.
func drainEvents(ctx context.Context, sess *session.Session, log *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-sess.Events():
			switch e := ev.(type) {
			case session.MessageEvent:
				log.Info("inbound message",
					slog.String("type", e.MsgType),
					slog.String("sender", e.SenderID),
					slog.String("text", e.Text),
					slog.String("time", e.Timestamp),
				)
			case session.StatusEvent:
				log.Info(e.Text)
			case session.ErrorEvent:
				log.Error(e.Text)
			case session.SentEvent:
				log.Debug("broadcast sent", slog.Uint64("count", e.Count))
			}
		}
	}
}

// watchConfig hot-applies the broadcast message when the config file
// changes, so the announced text updates without restarting the
// session.
func watchConfig(ctx context.Context, path string, sess *session.Session, log *slog.Logger) {
	const op = "main.watchConfig"
	log = log.With(slog.String("op", op))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error("failed to create config watcher", sl.Err(err))
		return
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		log.Error("failed to watch config file", sl.Err(err))
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := config.Load(path)
			if err != nil {
				log.Warn("config reload failed", sl.Err(err))
				continue
			}

			sess.UpdateMessage(cfg.Message)
			log.Info("broadcast message updated from config",
				slog.String("message", cfg.Message),
			)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Error("config watcher error", sl.Err(err))
		}
	}
}

func serveMetrics(addr string, log *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.Error("metrics server stopped", sl.Err(err))
	}
}

func setupLogger(env string) *slog.Logger {

	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
