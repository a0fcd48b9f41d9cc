package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/terapiemd/booking-service/internal/config"
	bookingRepo "github.com/terapiemd/booking-service/internal/infra/storage/booking"
	"github.com/terapiemd/booking-service/internal/infra/storage/memory"
	messageRepo "github.com/terapiemd/booking-service/internal/infra/storage/message"
	reviewRepo "github.com/terapiemd/booking-service/internal/infra/storage/review"
	scheduleRepo "github.com/terapiemd/booking-service/internal/infra/storage/schedule"
	userRepo "github.com/terapiemd/booking-service/internal/infra/storage/user"
	"github.com/terapiemd/booking-service/internal/integrations/authadmin"
	"github.com/terapiemd/booking-service/internal/integrations/eventbus"
	"github.com/terapiemd/booking-service/internal/integrations/resend"
	"github.com/terapiemd/booking-service/internal/notify"
	bookingsService "github.com/terapiemd/booking-service/internal/service/bookings"
	scheduleService "github.com/terapiemd/booking-service/internal/service/schedule"
	createBookingUC "github.com/terapiemd/booking-service/internal/usecase/create_booking"
	createReviewUC "github.com/terapiemd/booking-service/internal/usecase/create_review"
	getAvailableSlotsUC "github.com/terapiemd/booking-service/internal/usecase/get_available_slots"
	sendMessageUC "github.com/terapiemd/booking-service/internal/usecase/send_message"
	updateStatusUC "github.com/terapiemd/booking-service/internal/usecase/update_booking_status"
	"github.com/terapiemd/booking-service/pkg/dbmetrics"
	"github.com/terapiemd/booking-service/pkg/logger"
	"github.com/terapiemd/booking-service/pkg/metrics"
	"github.com/terapiemd/booking-service/pkg/txmanager"
)

// bookingStore is the ledger as seen by every use case and service
type bookingStore interface {
	createBookingUC.BookingRepository
	createReviewUC.BookingRepository
	getAvailableSlotsUC.BookingRepository
	updateStatusUC.BookingRepository
	bookingsService.BookingRepository
}

type scheduleStore interface {
	getAvailableSlotsUC.ScheduleRepository
	scheduleService.ScheduleRepository
	bookingsService.ProviderRepository
}

type messageStore interface {
	sendMessageUC.MessageRepository
	bookingsService.MessageRepository
}

type reviewStore = createReviewUC.ReviewRepository

type txRunner interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// app holds the storage and collectors shared by the subcommands
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics

	db          *sql.DB
	executor    *dbmetrics.DB
	stopMetrics chan struct{}

	bookings  bookingStore
	schedules scheduleStore
	messages  messageStore
	reviews   reviewStore
	users     notify.PreferencesReader
	tx        txRunner
}

func newApp(cfg *config.Config, log *logger.Logger) (*app, error) {
	a := &app{
		cfg:         cfg,
		log:         log,
		stopMetrics: make(chan struct{}),
	}

	if cfg.Metrics.Enabled {
		a.metrics = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	if cfg.Storage.Driver == config.StorageDriverMemory {
		store := memory.NewStore()
		a.bookings = store.Bookings()
		a.schedules = store.Schedules()
		a.messages = store.Messages()
		a.reviews = store.Reviews()
		a.users = store.Users()
		a.tx = memory.NewTxManager()
		log.Warn("Using in-memory storage, data is lost on restart")
		return a, nil
	}

	if err := a.openDatabase(); err != nil {
		return nil, err
	}

	a.bookings = bookingRepo.NewRepository(a.executor)
	a.schedules = scheduleRepo.NewRepository(a.executor)
	a.messages = messageRepo.NewRepository(a.executor)
	a.reviews = reviewRepo.NewRepository(a.executor)
	a.users = userRepo.NewRepository(a.executor)
	a.tx = txmanager.NewTransactionManager(a.executor)

	return a, nil
}

func (a *app) openDatabase() error {
	cfg := a.cfg.Database

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}
	a.log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", cfg.Host, cfg.Port, cfg.DBName)

	a.db = db
	a.executor = dbmetrics.WrapWithDefault(db, a.metrics, a.stopMetrics)
	return nil
}

// deliverer renders and sends e-mails through the auth admin API and Resend
func (a *app) deliverer() *notify.Service {
	contacts := authadmin.NewClient(
		a.cfg.AuthAdmin.URL,
		a.cfg.AuthAdmin.ServiceRoleKey,
		time.Duration(a.cfg.AuthAdmin.Timeout)*time.Second,
		a.log,
	)
	sender := resend.NewClient(
		a.cfg.Email.BaseURL,
		a.cfg.Email.APIKey,
		time.Duration(a.cfg.Email.Timeout)*time.Second,
	)
	a.log.Info("Notification clients initialized (auth admin=%s, email=%s)", a.cfg.AuthAdmin.URL, a.cfg.Email.BaseURL)

	return notify.NewService(contacts, a.users, sender, notify.Config{
		BookingsFrom: a.cfg.Email.From,
		MessagesFrom: a.cfg.Email.MessagesFrom,
		AppURL:       a.cfg.Notifications.AppURL,
	}, a.log)
}

// queue connects to Redis and opens the notification list
func (a *app) queue(ctx context.Context) (*eventbus.RedisQueue, func() error, error) {
	client, err := eventbus.NewClient(ctx, a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	a.log.Info("Connected to Redis at %s, queue=%s", a.cfg.Redis.Addr, a.cfg.Notifications.Channel)
	return eventbus.NewRedisQueue(client, a.cfg.Notifications.Channel, a.log), client.Close, nil
}

// dispatcher picks the notification path from notifications.mode.
// drain waits for in-flight deliveries and releases the queue connection.
func (a *app) dispatcher(ctx context.Context) (notify.Dispatcher, func(ctx context.Context) error, error) {
	timeout := time.Duration(a.cfg.Notifications.Timeout) * time.Second

	switch a.cfg.Notifications.Mode {
	case config.NotificationModeQueue:
		q, closeQueue, err := a.queue(ctx)
		if err != nil {
			return nil, nil, err
		}
		a.log.Info("Notifications are published to the queue")
		return notify.NewQueueDispatcher(q, a.metrics, a.log), func(context.Context) error { return closeQueue() }, nil

	case config.NotificationModeDisabled:
		a.log.Warn("Notifications are disabled")
		return notify.Noop{}, func(context.Context) error { return nil }, nil

	default:
		d := notify.NewAsyncDispatcher(a.deliverer(), timeout, a.metrics, a.log)
		a.log.Info("Notifications are delivered in-process (timeout=%s)", timeout)
		return d, d.Wait, nil
	}
}

func (a *app) Close() {
	close(a.stopMetrics)
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error("Failed to close database: %v", err)
		}
	}
}
