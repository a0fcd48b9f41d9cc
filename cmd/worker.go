package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/terapiemd/booking-service/internal/config"
	"github.com/terapiemd/booking-service/internal/notify"
)

func newWorkerCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "notify-worker",
		Short: "Deliver notifications published to the Redis queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer log.Close()

			if cfg.Notifications.Mode != config.NotificationModeQueue {
				return errors.New("notify-worker: notifications.mode must be queue")
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			q, closeQueue, err := a.queue(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = closeQueue() }()

			timeout := time.Duration(cfg.Notifications.Timeout) * time.Second
			worker := notify.NewWorker(q, a.deliverer(), timeout, a.metrics, log)

			log.Info("Notification worker started")
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			log.Info("Notification worker stopped")
			return nil
		},
	}
}
