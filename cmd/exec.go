package cmd

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go/v7"
	"github.com/redis/go-redis/v9"

	"ticket-marketplace/config"
	"ticket-marketplace/handlers"
	"ticket-marketplace/realtime"
	"ticket-marketplace/security"
	"ticket-marketplace/services"
	"ticket-marketplace/store"
	"ticket-marketplace/utils"
)

func Start() error {
	cfg := config.LoadConfig()

	db, err := store.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer db.Close()

	eventStore := store.NewEventStore(db)
	configStore := store.NewConfigStore(db)
	transactionLog := store.NewTransactionLog(db)

	// Optional Redis, used only by the rate limiter and the health check.
	var redisClient *redis.Client
	if cfg.RedisEnabled {
		redisClient, err = utils.NewRedisClient(cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	// The websocket hub is always a sink; PubNub mirrors the feed when
	// keys are configured.
	hub := realtime.NewHub()
	sinks := realtime.Fanout{hub}
	if cfg.PubNubPublishKey != "" && cfg.PubNubSubscribeKey != "" {
		pnConfig := pubnub.NewConfigWithUserId(pubnub.UserId(cfg.PubNubUUID))
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey
		sinks = append(sinks, realtime.NewPubNubSink(pubnub.NewPubNub(pnConfig)))
	}

	pool := services.NewTicketPool(transactionLog, sinks)
	lifecycle := services.NewLifecycle(pool, eventStore, configStore, transactionLog, sinks, cfg)

	configurationHandler := handlers.NewConfigurationHandler(lifecycle, configStore, eventStore)
	controlHandler := handlers.NewControlHandler(lifecycle)
	statusHandler := handlers.NewStatusHandler(pool, configStore, eventStore)
	rateLimiter := security.NewRateLimiter(redisClient, 30, time.Minute)

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.POST("/api/system-configuration/configure", configurationHandler.Configure)

	control := e.Group("/api/ticket-system-control", rateLimiter.ControlRateLimit())
	control.POST("/start", controlHandler.Start)
	control.POST("/stop", controlHandler.Stop)
	control.POST("/reset", controlHandler.Reset)

	e.GET("/api/system-status", statusHandler.SystemStatus)
	e.GET("/api/ticket-availability", statusHandler.TicketAvailability)

	e.GET("/ws-ticket-system", hub.ServeWS)

	e.GET("/health", func(c echo.Context) error {
		if redisClient != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			if err := utils.RedisHealthCheck(ctx, redisClient); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
		}
		if err := db.DB.DB().Ping(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	if cfg.EnableMetrics {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(":"+cfg.MetricsPort, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", "error", err)
			}
		}()
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: e,
	}

	// Graceful shutdown: stop the simulation, drop subscribers, then close
	// the listener.
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutdown signal received, cleaning up...")

		if err := lifecycle.Stop(); err != nil && !errors.Is(err, services.ErrNotRunning) {
			slog.Error("stopping simulation on shutdown failed", "error", err)
		}
		hub.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	log.Printf("Server listening on :%s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-shutdownDone
	return nil
}
