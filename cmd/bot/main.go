package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/StanleyOneG/ev-registration-bot/internal/bot"
	"github.com/StanleyOneG/ev-registration-bot/internal/config"
	calendarClient "github.com/StanleyOneG/ev-registration-bot/internal/infra/calendar"
	createBookingUC "github.com/StanleyOneG/ev-registration-bot/internal/usecase/create_booking"
	getFreeSlotsUC "github.com/StanleyOneG/ev-registration-bot/internal/usecase/get_free_slots"
	"github.com/StanleyOneG/ev-registration-bot/pkg/logger"
	"github.com/StanleyOneG/ev-registration-bot/pkg/metrics"
)

func main() {
	// .env носит только секреты; отсутствие файла не ошибка
	_ = godotenv.Load()

	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting ev-registration-bot...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Адаптер Google Calendar: по календарю на коммуну
	var calendarMetrics calendarClient.MetricsRecorder
	if metricsCollector != nil {
		calendarMetrics = metricsCollector
	}
	calendars, err := calendarClient.NewClient(ctx, cfg.Calendar, log, calendarMetrics)
	if err != nil {
		log.Fatal("Failed to initialize calendar client: %v", err)
	}

	// Инициализируем use cases
	getFreeSlotsUseCase := getFreeSlotsUC.NewUseCase(calendars, log)
	createBookingUseCase := createBookingUC.NewUseCase(calendars, log)

	// Контроллер диалогов
	var botMetrics bot.MetricsRecorder
	if metricsCollector != nil {
		botMetrics = metricsCollector
	}
	controller := bot.NewController(getFreeSlotsUseCase, createBookingUseCase, log, botMetrics)

	// Подключаемся к Telegram
	token, err := cfg.BotToken()
	if err != nil {
		log.Fatal("Failed to read bot token: %v", err)
	}
	telegram, err := bot.NewTelegram(token, cfg.Telegram.Debug, cfg.Telegram.PollTimeout, controller, log)
	if err != nil {
		log.Fatal("Failed to connect to telegram: %v", err)
	}

	// Служебный HTTP-сервер: метрики и health check
	r := mux.NewRouter()
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting ops server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Ops server failed to start: %v", err)
		}
	}()

	// Цикл обработки сообщений; блокируется до SIGINT/SIGTERM
	go func() {
		if err := telegram.Run(ctx); err != nil {
			log.Error("Telegram polling stopped: %v", err)
		}
		stop()
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Ops server forced to shutdown: %v", err)
	}

	log.Info("Stopped gracefully")
}
