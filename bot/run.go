package bot

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"peacebot/utils"
)

// Run connects to the gateway and blocks until SIGINT or SIGTERM. SIGHUP reloads
// the configuration.
func (b *Bot) Run() error {
	if err := b.Session.Open(); err != nil {
		return err
	}
	defer b.Close()

	if guilds := b.GetConfig().Bot.TestGuilds; len(guilds) > 0 {
		if err := b.refreshGuilds(guilds); err != nil {
			b.notify(utils.LogError, "Register commands", err.Error())
		}
	} else if err := b.RefreshCommands(""); err != nil {
		return err
	}

	metricsServer := b.startMetrics()

	b.logger.Info("Bot is now running. Press CTRL-C to exit.")
	b.notify(utils.LogInfo, "Startup", "Bot has started successfully.")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, os.Interrupt)
	for sig := range sc {
		if sig == syscall.SIGHUP {
			if err := b.ReloadConfig(); err != nil {
				b.notify(utils.LogWarn, "Reload", err.Error())
			}
			continue
		}
		break
	}

	b.notify(utils.LogInfo, "Shutdown", "Bot is shutting down.")
	if metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(ctx); err != nil {
			b.logger.Warn("metrics server shutdown", zap.Error(err))
		}
	}
	return nil
}

func (b *Bot) startMetrics() *http.Server {
	addr := b.GetConfig().Metrics.Addr
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		b.logger.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			b.logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	return srv
}

type logFunc func(ctx context.Context, webhookURL, module, operation, extraInfo string) error

// notify posts a lifecycle event to the log webhook, if one is configured.
func (b *Bot) notify(send logFunc, operation, details string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := send(ctx, b.GetConfig().LogWebhookURL, "System", operation, details); err != nil {
		b.logger.Warn("failed to send webhook log", zap.String("operation", operation), zap.Error(err))
	}
}
