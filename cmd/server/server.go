package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"nutrition-bot/internal/config"
	"nutrition-bot/internal/domain/chat"
	"nutrition-bot/internal/domain/ledger"
	"nutrition-bot/internal/domain/nutrition"
	"nutrition-bot/internal/domain/prompt"
	"nutrition-bot/internal/infrastructure/chatclient"
	"nutrition-bot/internal/infrastructure/logger"
	"nutrition-bot/internal/infrastructure/metrics"
	"nutrition-bot/internal/infrastructure/observability"
	"nutrition-bot/internal/infrastructure/sheets"
	"nutrition-bot/internal/interfaces/httpserver"
	"nutrition-bot/internal/utils/redact"
)

// @title Nutrition Bot API
// @version 1.0
// @description Calorie counting, meal planning and photo analysis backed by a chat-completion model.
// @BasePath /
type Application struct {
	httpServer    *httpserver.HTTPServer
	metricsServer *metrics.Server
	log           zerolog.Logger
}

func NewApplication(httpServer *httpserver.HTTPServer, metricsServer *metrics.Server, log zerolog.Logger) *Application {
	return &Application{
		httpServer:    httpServer,
		metricsServer: metricsServer,
		log:           log,
	}
}

// Start runs the API and metrics servers until ctx is cancelled or one of
// them fails.
func (a *Application) Start(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return a.httpServer.Run(ctx)
	})
	eg.Go(func() error {
		return a.metricsServer.Run(ctx)
	})
	return eg.Wait()
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	app, err := BuildApplication(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build application")
	}

	if !cfg.SheetsConfigured() {
		log.Warn().Msg("SHEET_ID or GOOGLE_SERVICE_ACCOUNT_JSON not set, /add-entry will answer 501")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY not set, chat requests are sent without authorization")
	}

	if err := app.Start(ctx); err != nil {
		log.Error().Err(err).Msg("application stopped with error")
		return
	}
	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
		}
	}
}

func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return zerolog.Logger{}, err
	}
	return log.With().Str("service", cfg.ServiceName).Str("env", cfg.Environment).Logger(), nil
}

func newPromptCatalog(cfg *config.Config) (*prompt.Catalog, error) {
	return prompt.Load(cfg.PromptsFile)
}

func newChatCompleter(cfg *config.Config, log zerolog.Logger) chat.Completer {
	return chatclient.New(cfg, log)
}

func newRedactor(cfg *config.Config) *redact.Redactor {
	return redact.New(redact.Level(cfg.LogPIILevel), cfg.ServiceName)
}

func newNutritionService(completer chat.Completer, catalog *prompt.Catalog, cfg *config.Config, redactor *redact.Redactor, log zerolog.Logger) (nutrition.Service, error) {
	return nutrition.NewService(completer, catalog, cfg.ChatResponseFormat, redactor, log)
}

func newLedgerAppender(cfg *config.Config, log zerolog.Logger) ledger.Appender {
	return sheets.NewAppender(cfg, log)
}

func newMetricsServer(cfg *config.Config, log zerolog.Logger) *metrics.Server {
	return metrics.NewServer(cfg.MetricsAddr(), cfg.ShutdownTimeout, log)
}
