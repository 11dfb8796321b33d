package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/words-without-friends/internal/board"
	"github.com/robalobadob/words-without-friends/internal/config"
	"github.com/robalobadob/words-without-friends/internal/dispatcher"
	"github.com/robalobadob/words-without-friends/internal/game"
	"github.com/robalobadob/words-without-friends/internal/httpserver"
	"github.com/robalobadob/words-without-friends/internal/slots"
	"github.com/robalobadob/words-without-friends/internal/static"
	"github.com/robalobadob/words-without-friends/internal/store"
	"github.com/robalobadob/words-without-friends/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	// Usage: words-without-friends [static-root]
	if len(os.Args) > 1 && os.Args[1] != "" {
		cfg.StaticRoot = os.Args[1]
	}

	corpus, err := words.Load(cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.WordsFile).Msg("failed to load word list")
	}
	log.Info().Str("source", corpus.Source()).Int("words", corpus.Len()).Msg("word list loaded")

	engine, err := game.New(corpus, game.Options{
		MinLength:   cfg.MinMasterLen,
		MaxAttempts: cfg.SelectAttempts,
	})
	if errors.Is(err, game.ErrCorpusExhausted) {
		log.Fatal().Err(err).Int("min_len", cfg.MinMasterLen).Msg("word list has no usable master word")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("start round engine")
	}

	files, err := static.New(cfg.StaticRoot)
	if err != nil {
		log.Fatal().Err(err).Str("root", cfg.StaticRoot).Msg("static root")
	}
	renderer, err := board.New()
	if err != nil {
		log.Fatal().Err(err).Msg("parse templates")
	}

	archive := store.NewMemoryStore(store.DefaultMemoryLimit)
	if cfg.RoundsDB != "" {
		if archive, err = store.OpenSQLite(cfg.RoundsDB); err != nil {
			log.Fatal().Err(err).Str("db", cfg.RoundsDB).Msg("open round archive")
		}
	}
	defer archive.Close()

	pool := slots.New(cfg.PoolSize)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var admin *httpserver.Server
	if cfg.AdminAddr != "" {
		admin = httpserver.New(engine, pool, archive)
		go func() {
			if err := admin.Start(cfg.AdminAddr); err != nil {
				log.Error().Err(err).Msg("admin server exited")
			}
		}()
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Addr).Msg("listen")
	}
	log.Info().Str("root", files.Root).Msg("starting words-without-friends")

	d := dispatcher.New(ln, dispatcher.Deps{
		Engine:   engine,
		Pool:     pool,
		Files:    files,
		Renderer: renderer,
		Archive:  archive,
	}, dispatcher.Timeouts{
		Read:      cfg.ReadTimeout,
		Write:     cfg.WriteTimeout,
		FullWrite: cfg.FullWriteTimeout,
		Drain:     cfg.DrainTimeout,
	})
	runErr := d.Run(ctx)

	if admin != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = admin.Shutdown(shutdownCtx)
		cancel()
	}
	if runErr != nil {
		log.Error().Err(runErr).Msg("dispatcher stopped")
		_ = archive.Close()
		os.Exit(1)
	}
	log.Info().Msg("shutdown complete")
}
