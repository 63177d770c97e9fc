package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"stayprice/internal/app/commands"
	availabilityapp "stayprice/internal/app/handlers/availability"
	bookingapp "stayprice/internal/app/handlers/booking"
	pricingapp "stayprice/internal/app/handlers/pricing"
	roomsapp "stayprice/internal/app/handlers/rooms"
	"stayprice/internal/app/middleware"
	appoutbox "stayprice/internal/app/outbox"
	"stayprice/internal/app/queries"
	"stayprice/internal/app/uow"
	domainpricing "stayprice/internal/domain/pricing"
	"stayprice/internal/infra/broker/kafka"
	"stayprice/internal/infra/config"
	mongoinfra "stayprice/internal/infra/db/mongo"
	ginserver "stayprice/internal/infra/http/gin"
	"stayprice/internal/infra/obs"
	infraoutbox "stayprice/internal/infra/outbox"
	"stayprice/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	app, err := buildApplication(cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	if app.worker != nil {
		go func() {
			if err := app.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	worker   *infraoutbox.Worker
	ready    func() error
}

func buildApplication(cfg config.Config, logger *slog.Logger) (application, error) {
	calendar := loadSpecialDays(logger)

	var (
		uowFactory uow.UoWFactory
		outboxImpl appoutbox.Outbox
		idStore    middleware.IdempotencyStore
		worker     *infraoutbox.Worker
		ready      = func() error { return nil }
	)

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongoinfra.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, err
		}
		uowFactory = mongoinfra.Factory{
			DB:          client.DB,
			RoomRepo:    mongoinfra.NewRoomRepository(client.DB),
			RateStore:   mongoinfra.NewRateStore(client.DB),
			BookingRepo: mongoinfra.NewBookingRepository(client.DB),
		}
		store := infraoutbox.NewStore(client.DB)
		outboxImpl = store
		idStore = mongoinfra.NewIdempotencyStore(client.DB, cfg.IdempotencyTTL)
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return application{}, err
		}
		worker = &infraoutbox.Worker{
			Store:       store,
			Producer:    producer,
			Interval:    cfg.OutboxPollInterval,
			TopicPrefix: cfg.KafkaTopicPrefix,
			Backoff:     cfg.RetryBackoff,
		}
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
	default:
		uowFactory = memory.NewFactory()
		outboxImpl = memory.NewOutbox()
		idStore = memory.NewIdempotencyStore()
	}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, roomsapp.CreateRoomCommand{}.Key(), &roomsapp.CreateRoomHandler{
		Logger:     logger,
		UoWFactory: uowFactory,
		Outbox:     outboxImpl,
	})
	commands.RegisterHandler(commandBus, roomsapp.UpdateBasePriceCommand{}.Key(), &roomsapp.UpdateBasePriceHandler{
		UoWFactory: uowFactory,
		Outbox:     outboxImpl,
	})
	commands.RegisterHandler(commandBus, roomsapp.DeleteRoomCommand{}.Key(), &roomsapp.DeleteRoomHandler{
		UoWFactory: uowFactory,
		Outbox:     outboxImpl,
	})
	commands.RegisterHandler(commandBus, pricingapp.UpdateRoomPriceCommand{}.Key(), &pricingapp.UpdateRoomPriceHandler{
		Logger:     logger,
		UoWFactory: uowFactory,
		Outbox:     outboxImpl,
	})
	commands.RegisterHandler(commandBus, bookingapp.RequestBookingCommand{}.Key(), &bookingapp.RequestBookingHandler{
		UoWFactory: uowFactory,
		Calendar:   calendar,
		Outbox:     outboxImpl,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, pricingapp.GetRoomPricesQuery{}.Key(), &pricingapp.GetRoomPricesHandler{
		UoWFactory: uowFactory,
		Calendar:   calendar,
	})
	queries.RegisterHandler(queryBus, pricingapp.ValidateRoomPriceQuery{}.Key(), &pricingapp.ValidateRoomPriceHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, availabilityapp.GetRemainingCapacityQuery{}.Key(), &availabilityapp.GetRemainingCapacityHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, bookingapp.GetBookingQuery{}.Key(), &bookingapp.GetBookingHandler{
		UoWFactory: uowFactory,
	})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Validation(middleware.SelfValidator{}),
		middleware.Idempotency(idStore, nil),
		middleware.RoomLock(middleware.NewRoomLocks()),
		middleware.Transaction(uowFactory, nil),
		middleware.OutboxFlush(outboxImpl),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	return application{
		handlers: ginserver.Handlers{
			Room:         ginserver.RoomHandler{Commands: commandBusWithMiddleware},
			Pricing:      ginserver.PricingHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
			Availability: ginserver.AvailabilityHandler{Queries: queryBusWithMiddleware},
			Booking:      ginserver.BookingHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
		},
		worker: worker,
		ready:  ready,
	}, nil
}

// loadSpecialDays seeds the holiday calendar from SPECIAL_DAYS, a comma
// separated list of YYYY-MM-DD dates.
func loadSpecialDays(logger *slog.Logger) domainpricing.SpecialDayCalendar {
	cal := memory.NewSpecialDayCalendar()
	raw := os.Getenv("SPECIAL_DAYS")
	if raw == "" {
		return cal
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		day, err := time.Parse("2006-01-02", part)
		if err != nil {
			logger.Warn("skipping invalid special day", "value", part, "error", err)
			continue
		}
		cal.Add(day)
	}
	return cal
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
