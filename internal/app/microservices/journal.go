package microservices

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Temutjin2k/fare-estimator/config"
	"github.com/Temutjin2k/fare-estimator/internal/adapter/http/server"
	repo "github.com/Temutjin2k/fare-estimator/internal/adapter/postgres"
	rabbitAdapter "github.com/Temutjin2k/fare-estimator/internal/adapter/rabbit"
	"github.com/Temutjin2k/fare-estimator/internal/service/auth"
	"github.com/Temutjin2k/fare-estimator/internal/service/journal"
	"github.com/Temutjin2k/fare-estimator/pkg/logger"
	"github.com/Temutjin2k/fare-estimator/pkg/postgres"
	"github.com/Temutjin2k/fare-estimator/pkg/rabbit"
	"github.com/Temutjin2k/fare-estimator/pkg/trm"
)

type JournalService struct {
	postgresDB   *postgres.PostgreDB
	rabbitClient *rabbit.RabbitMQ
	consumer     *rabbitAdapter.JournalConsumer
	journal      *journal.Service
	httpServer   *server.API

	cfg config.Config
	log logger.Logger
}

func NewJournal(ctx context.Context, cfg config.Config, log logger.Logger) (*JournalService, error) {
	s := &JournalService{cfg: cfg, log: log}
	service := string(cfg.Mode)

	var err error
	s.postgresDB, err = postgres.New(ctx, cfg.Database)
	if err != nil {
		log.Error(ctx, "Failed to setup database", err)
		return nil, err
	}

	if err := repo.EnsureSchema(ctx, s.postgresDB.Pool); err != nil {
		log.Error(ctx, "Failed to apply journal schema", err)
		s.close(ctx)
		return nil, err
	}

	s.rabbitClient, err = rabbit.New(ctx, cfg.RabbitMQ.GetDSN(), log)
	if err != nil {
		log.Error(ctx, "Failed to connect to rabbitmq", err)
		s.close(ctx)
		return nil, err
	}

	journalRepo := repo.NewJournalRepo(s.postgresDB.Pool, service)
	s.journal = journal.New(journalRepo, trm.New(s.postgresDB.Pool), log)
	s.consumer = rabbitAdapter.NewJournalConsumer(s.rabbitClient, service, log)

	s.httpServer, err = server.New(cfg, server.Services{
		Journal:             s.journal,
		JournalSortSafelist: repo.JournalSortSafelist,
		Auth:                auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL),
	}, log)
	if err != nil {
		log.Error(ctx, "Failed to setup http server", err)
		s.close(ctx)
		return nil, err
	}

	return s, nil
}

func (s *JournalService) Start(ctx context.Context) error {
	errCh := make(chan error, 2) // http server and consumer

	consumeCtx, stopConsumer := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.consumer.Consume(consumeCtx, s.journal); err != nil {
			errCh <- err
		}
	}()

	s.httpServer.Run(ctx, errCh)
	defer func() {
		stopConsumer()
		wg.Wait()
		s.close(ctx)
		s.log.Info(ctx, "journal service closed")
	}()

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	s.log.Info(ctx, "journal service started")

	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		s.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	}
}

func (s *JournalService) close(ctx context.Context) {
	if s.httpServer != nil {
		if err := s.httpServer.Stop(ctx); err != nil {
			s.log.Warn(ctx, "Failed to gracefully close http server", "error", err.Error())
		}
	}

	if s.rabbitClient != nil {
		if err := s.rabbitClient.Close(ctx); err != nil {
			s.log.Warn(ctx, "Failed to close rabbitmq", "error", err.Error())
		}
	}

	s.postgresDB.Close()
}
