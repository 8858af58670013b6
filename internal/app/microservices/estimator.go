package microservices

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Temutjin2k/fare-estimator/config"
	"github.com/Temutjin2k/fare-estimator/internal/adapter/http/server"
	"github.com/Temutjin2k/fare-estimator/internal/adapter/locationIQ"
	"github.com/Temutjin2k/fare-estimator/internal/adapter/memory"
	rabbitAdapter "github.com/Temutjin2k/fare-estimator/internal/adapter/rabbit"
	cache "github.com/Temutjin2k/fare-estimator/internal/adapter/redis"
	"github.com/Temutjin2k/fare-estimator/internal/adapter/tables"
	"github.com/Temutjin2k/fare-estimator/internal/service/auth"
	ridecalc "github.com/Temutjin2k/fare-estimator/internal/service/calculator"
	"github.com/Temutjin2k/fare-estimator/internal/service/estimator"
	"github.com/Temutjin2k/fare-estimator/internal/service/resolver"
	"github.com/Temutjin2k/fare-estimator/pkg/logger"
	"github.com/Temutjin2k/fare-estimator/pkg/rabbit"
	"github.com/Temutjin2k/fare-estimator/pkg/redis"
	ws "github.com/Temutjin2k/fare-estimator/pkg/wsHub"
)

const quoteEvictInterval = time.Minute

type EstimatorService struct {
	rabbitClient *rabbit.RabbitMQ // nil unless events are published
	redisClient  *goredis.Client  // nil when quotes live in memory
	hub          *ws.ConnectionHub
	httpServer   *server.API

	stopBackground context.CancelFunc

	cfg config.Config
	log logger.Logger
}

func NewEstimator(ctx context.Context, cfg config.Config, log logger.Logger) (*EstimatorService, error) {
	s := &EstimatorService{cfg: cfg, log: log}
	service := string(cfg.Mode)

	engineTables, err := tables.Load(cfg.Estimator.TablesPath)
	if err != nil {
		log.Error(ctx, "Failed to load estimation tables", err, "path", cfg.Estimator.TablesPath)
		return nil, err
	}

	var geocoder resolver.Geocoder
	if cfg.LocationIQ.Enabled {
		geocoder = locationIQ.New(cfg.LocationIQ.APIKey, cfg.LocationIQ.BaseURL, cfg.LocationIQ.Timeout)
		log.Info(ctx, "LocationIQ geocoding enabled", "base_url", cfg.LocationIQ.BaseURL)
	}

	seed := uint64(cfg.Estimator.NoiseSeed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	calc := ridecalc.New(engineTables, ridecalc.NewRandNoise(seed))

	bgCtx, stop := context.WithCancel(context.Background())
	s.stopBackground = stop

	var quotes estimator.QuoteStore
	if cfg.Redis.Enabled {
		s.redisClient, err = redis.New(ctx, cfg.Redis)
		if err != nil {
			log.Error(ctx, "Failed to connect to redis", err)
			s.close(ctx)
			return nil, err
		}
		quotes = cache.NewQuoteStore(s.redisClient, cfg.Estimator.QuoteTTL)
	} else {
		mem := memory.NewQuoteStore(cfg.Estimator.QuoteTTL)
		go mem.Run(bgCtx, quoteEvictInterval)
		quotes = mem
	}

	var publisher estimator.Publisher
	if cfg.Estimator.PublishEvents {
		s.rabbitClient, err = rabbit.New(ctx, cfg.RabbitMQ.GetDSN(), log)
		if err != nil {
			log.Error(ctx, "Failed to connect to rabbitmq", err)
			s.close(ctx)
			return nil, err
		}

		producer := rabbitAdapter.NewEstimatorProducer(s.rabbitClient, service, log)
		if err := producer.Setup(ctx); err != nil {
			log.Error(ctx, "Failed to declare estimator exchange", err)
			s.close(ctx)
			return nil, err
		}
		publisher = producer
	}

	estimatorService := estimator.New(
		calc,
		resolver.New(engineTables, geocoder, log),
		quotes,
		publisher,
		estimator.SleepDelayer{},
		estimator.Config{
			ServiceName:   service,
			EstimateDelay: cfg.Estimator.EstimateDelay,
			BookingDelay:  cfg.Estimator.BookingDelay,
		},
		log,
	)

	s.hub = ws.NewConnHub(service, log)

	s.httpServer, err = server.New(cfg, server.Services{
		Estimator: estimatorService,
		Hub:       s.hub,
		Auth:      auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL),
	}, log)
	if err != nil {
		log.Error(ctx, "Failed to setup http server", err)
		s.close(ctx)
		return nil, err
	}

	return s, nil
}

func (s *EstimatorService) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	s.httpServer.Run(ctx, errCh)
	defer func() {
		s.close(ctx)
		s.log.Info(ctx, "estimator service closed")
	}()

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	s.log.Info(ctx, "estimator service started",
		"estimate_delay", s.cfg.Estimator.EstimateDelay.String(),
		"booking_delay", s.cfg.Estimator.BookingDelay.String(),
		"redis", s.cfg.Redis.Enabled,
		"publish_events", s.cfg.Estimator.PublishEvents,
	)

	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		s.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	}
}

func (s *EstimatorService) close(ctx context.Context) {
	if s.httpServer != nil {
		if err := s.httpServer.Stop(ctx); err != nil {
			s.log.Warn(ctx, "Failed to gracefully close http server", "error", err.Error())
		}
	}

	if s.hub != nil {
		s.hub.Close()
	}

	if s.stopBackground != nil {
		s.stopBackground()
	}

	if s.rabbitClient != nil {
		if err := s.rabbitClient.Close(ctx); err != nil {
			s.log.Warn(ctx, "Failed to close rabbitmq", "error", err.Error())
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.log.Warn(ctx, "Failed to close redis", "error", err.Error())
		}
	}
}
