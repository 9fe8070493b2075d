package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/wordguess-backend/internal/config"
	"github.com/rocketscienceinc/wordguess-backend/internal/game"
	"github.com/rocketscienceinc/wordguess-backend/internal/repository"
	"github.com/rocketscienceinc/wordguess-backend/internal/repository/storage"
	"github.com/rocketscienceinc/wordguess-backend/internal/service"
	"github.com/rocketscienceinc/wordguess-backend/internal/transport/datamuse"
	"github.com/rocketscienceinc/wordguess-backend/internal/transport/leaderboardapi"
	"github.com/rocketscienceinc/wordguess-backend/internal/usecase"
	"github.com/rocketscienceinc/wordguess-backend/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	localBoardRepo := repository.NewLocalBoardRepository(redisStorage.Connection)
	globalBoardRepo := repository.NewGlobalBoardRepository(redisStorage.Connection)

	wordClient := datamuse.New(conf.WordAPI.BaseURL, conf.WordAPI.Timeout,
		conf.WordAPI.CandidateCount, conf.WordAPI.SimilarWordCount)
	boardClient := leaderboardapi.New(conf.Board.BaseURL, conf.Board.Timeout)

	nameService := service.NewPlayerNameService(conf.PlayerName)
	boardService := service.NewLeaderboardService(logger, localBoardRepo, boardClient, nameService)
	globalBoardService := service.NewGlobalBoardService(globalBoardRepo)

	session := game.NewSession(logger, gameRules(conf), wordClient, boardService)
	gameManager := usecase.NewGameManager(logger, session, boardService, nameService)

	restServer := rest.New(logger, gameManager, globalBoardService)

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := restServer.Start(conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func gameRules(conf *config.Config) game.Rules {
	return game.Rules{
		InitialScore:         conf.Rules.InitialScore,
		MaxAttempts:          conf.Rules.MaxAttempts,
		GuessPenalty:         conf.Rules.GuessPenalty,
		HintCost:             conf.Rules.HintCost,
		ThesaurusHintCost:    conf.Rules.ThesaurusHintCost,
		ThesaurusMinAttempts: conf.Rules.ThesaurusMinAttempts,
		SelectionRetries:     conf.Rules.SelectionRetries,
	}
}
