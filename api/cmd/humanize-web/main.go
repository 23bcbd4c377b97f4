package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"humanize-ai/api/internal/config"
	"humanize-ai/api/internal/handle"
	"humanize-ai/api/internal/httpserver"
	"humanize-ai/api/internal/llm"
	"humanize-ai/api/internal/llm/gemini"
	"humanize-ai/api/internal/llm/sapling"
	"humanize-ai/api/internal/session"
	"humanize-ai/api/internal/store"
	"humanize-ai/api/internal/telegram"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("API keys not found; set GEMINI_API_KEY and SAPLING_API_KEY")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown LOG_LEVEL; using info")
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engines := &llm.Engines{
		Humanizer: gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
		Detector:  sapling.New(cfg.SaplingAPIKey, cfg.SaplingURL, cfg.HTTPTimeout),
	}

	sessions, sweeper, closeStore := openSessions(ctx, cfg)
	defer closeStore()
	go session.RunSweeper(ctx, sweeper, sweepInterval(cfg.SessionTTL))

	if cfg.TelegramBotToken != "" {
		startTelegram(ctx, cfg.TelegramBotToken, engines, sessions)
	}

	h := handle.New(engines, sessions)
	log.Info().Str("model", cfg.GeminiModel).Msg("humanize-web starting")
	if err := httpserver.Run(ctx, ":"+cfg.Port, httpserver.NewRouter(h)); err != nil {
		log.Fatal().Err(err).Msg("http server")
	}
}

type sweepingStore interface {
	session.Store
	session.Sweeper
}

// openSessions picks Postgres when DATABASE_URL is set, memory otherwise.
func openSessions(ctx context.Context, cfg *config.Config) (session.Store, session.Sweeper, func()) {
	var s sweepingStore
	if cfg.DatabaseURL == "" {
		s = session.NewMemoryStore(cfg.SessionTTL)
		log.Info().Dur("ttl", cfg.SessionTTL).Msg("sessions: in-memory")
		return s, s, func() {}
	}

	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("sessions: postgres")
	}
	repo := store.NewSessionRepo(db, cfg.SessionTTL)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("sessions: schema")
	}
	log.Info().Str("db", store.DSNSummary(cfg.DatabaseURL)).Msg("sessions: postgres")
	s = repo
	return s, s, func() { _ = db.Close() }
}

func sweepInterval(ttl time.Duration) time.Duration {
	if d := ttl / 4; d > time.Minute {
		return d
	}
	return time.Minute
}

func startTelegram(ctx context.Context, token string, engines *llm.Engines, sessions session.Store) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Fatal().Err(err).Msg("telegram")
	}
	bot.Debug = false
	log.Info().Str("bot", bot.Self.UserName).Msg("telegram polling enabled")

	r := telegram.NewRouter(bot, engines, sessions)
	go r.Run(ctx)
}
