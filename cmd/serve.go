package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/terapiemd/booking-service/internal/api/handlers"
	cancelBookingHandler "github.com/terapiemd/booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/terapiemd/booking-service/internal/api/handlers/create_booking"
	createReviewHandler "github.com/terapiemd/booking-service/internal/api/handlers/create_review"
	getAvailableSlotsHandler "github.com/terapiemd/booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/terapiemd/booking-service/internal/api/handlers/get_booking"
	getProviderBookingsHandler "github.com/terapiemd/booking-service/internal/api/handlers/get_provider_bookings"
	getScheduleHandler "github.com/terapiemd/booking-service/internal/api/handlers/get_schedule"
	getUserBookingsHandler "github.com/terapiemd/booking-service/internal/api/handlers/get_user_bookings"
	listMessagesHandler "github.com/terapiemd/booking-service/internal/api/handlers/list_messages"
	sendMessageHandler "github.com/terapiemd/booking-service/internal/api/handlers/send_message"
	updateBookingStatusHandler "github.com/terapiemd/booking-service/internal/api/handlers/update_booking_status"
	updateScheduleHandler "github.com/terapiemd/booking-service/internal/api/handlers/update_schedule"
	"github.com/terapiemd/booking-service/internal/api/middleware"
	"github.com/terapiemd/booking-service/internal/infra/storage/migrations"
	"github.com/terapiemd/booking-service/internal/notify"
	bookingsService "github.com/terapiemd/booking-service/internal/service/bookings"
	scheduleService "github.com/terapiemd/booking-service/internal/service/schedule"
	createBookingUC "github.com/terapiemd/booking-service/internal/usecase/create_booking"
	createReviewUC "github.com/terapiemd/booking-service/internal/usecase/create_review"
	getAvailableSlotsUC "github.com/terapiemd/booking-service/internal/usecase/get_available_slots"
	sendMessageUC "github.com/terapiemd/booking-service/internal/usecase/send_message"
	updateStatusUC "github.com/terapiemd/booking-service/internal/usecase/update_booking_status"
)

func newServeCmd(load loader) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer log.Close()

			log.Info("Starting booking-service %s...", Version)

			a, err := newApp(cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			if migrateUp && a.executor != nil {
				if err := migrations.Up(cmd.Context(), a.executor, log); err != nil {
					return err
				}
			}

			dispatcher, drain, err := a.dispatcher(cmd.Context())
			if err != nil {
				return err
			}

			router, err := a.router(dispatcher)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
				Handler:      router,
				ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
				WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
				IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("Starting server on %s", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case <-quit:
			case err := <-errCh:
				return fmt.Errorf("server failed to start: %w", err)
			}

			log.Info("Shutting down server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(),
				time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("Server forced to shutdown: %v", err)
			}

			// requests are done, let pending notifications finish
			if err := drain(shutdownCtx); err != nil {
				log.Warn("Notifications still pending at shutdown: %v", err)
			}

			log.Info("Server stopped gracefully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply database migrations before serving")
	return cmd
}

func (a *app) router(dispatcher notify.Dispatcher) (*mux.Router, error) {
	cfg, log := a.cfg, a.log

	// use cases and services
	slotsUseCase := getAvailableSlotsUC.NewUseCase(a.schedules, a.bookings, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		a.bookings,
		slotsUseCase,
		a.tx,
		dispatcher,
		a.metrics,
		createBookingUC.Options{
			EnforceSchedule: cfg.Booking.EnforceSchedule,
			RejectPastDates: cfg.Booking.RejectPastDates,
		},
		log,
	)
	updateStatusUseCase := updateStatusUC.NewUseCase(a.bookings, a.tx, dispatcher, a.metrics, log)
	sendMessageUseCase := sendMessageUC.NewUseCase(a.bookings, a.messages, dispatcher, log)
	createReviewUseCase := createReviewUC.NewUseCase(a.bookings, a.reviews, log)

	bookingSvc := bookingsService.NewService(a.bookings, a.schedules, a.messages, log)
	scheduleSvc := scheduleService.NewService(a.schedules, a.tx, log)

	// handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(slotsUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateStatusUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(updateStatusUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, log)
	listMessages := listMessagesHandler.NewHandler(bookingSvc, log)
	sendMessage := sendMessageHandler.NewHandler(sendMessageUseCase, log)
	createReview := createReviewHandler.NewHandler(createReviewUseCase, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(a.metrics))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter, err := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
			TrustedProxies:    cfg.RateLimit.TrustedProxies,
			MaxClients:        cfg.RateLimit.MaxClients,
		}, log)
		if err != nil {
			return nil, err
		}
		api.Use(limiter.Middleware())
		log.Info("Rate limiting enabled (%.1f req/s, burst %d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// public
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{kind}/{providerId}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// authenticated with the access token of the hosted auth provider
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.Issuer, log))

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/messages", listMessages.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/messages", sendMessage.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/review", createReview.Handle).Methods(http.MethodPost)

	protected.HandleFunc("/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/providers/me/bookings", getProviderBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/providers/{kind}/{providerId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	return r, nil
}
