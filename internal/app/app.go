package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/alimikegami/food-rater/config"
	circuitbreaker "github.com/alimikegami/food-rater/internal/infrastructure/circuit-breaker"
	"github.com/alimikegami/food-rater/internal/infrastructure/message-queue/kafka"
	"github.com/alimikegami/food-rater/internal/infrastructure/tracing"
	"github.com/alimikegami/food-rater/internal/repository"
	"github.com/alimikegami/food-rater/internal/service"
)

type App struct {
	DB     *mongo.Database
	Config *config.Config
	Server *echo.Echo

	ProductService service.ProductService
	UserService    service.UserService

	metrics        *echo.Echo
	scheduler      gocron.Scheduler
	producer       *kafka.Producer
	reader         *kafkago.Reader
	tracing        *tracing.Tracing
	cancel         context.CancelFunc
}

// Setup builds the services and the router and starts the background work:
// catalog reconciliation, the voting consumer and tracing. It does not listen.
func (app *App) Setup(ctx context.Context) error {
	productRepo, userRepo, err := app.repositories()
	if err != nil {
		return err
	}

	var publisher service.EventPublisher
	if app.Config.KafkaConfig.BrokerAddress != "" {
		app.producer = kafka.CreateKafkaProducer(app.Config, circuitbreaker.CreateCircuitBreaker("voting-producer"))
		publisher = app.producer
	}

	app.ProductService = service.CreateProductService(productRepo, userRepo, service.NewCatalog(), publisher)
	app.UserService = service.CreateUserService(userRepo)

	if err := app.ProductService.RefreshCatalog(ctx); err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	bgCtx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel

	if err := app.startScheduler(bgCtx); err != nil {
		return err
	}

	if app.Config.KafkaConfig.BrokerAddress != "" {
		app.reader = kafka.CreateKafkaReader(app.Config)
		go app.ProductService.ConsumeEvent(bgCtx, app.reader)
	}

	if app.Config.TracingConfig.CollectorHost != "" {
		app.tracing, err = tracing.InitTracing(ctx, app.Config.TracingConfig.CollectorHost, app.Config.Environment)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize tracing")
		}
	}

	app.Server = NewRouter(app.Config, app.ProductService, app.UserService)

	if app.tracing != nil {
		app.Server.Use(echo.WrapMiddleware(otelhttp.NewMiddleware(tracing.ServiceName)))
		app.Server.Use(app.tracing.Middleware())
	}

	if app.Config.MetricsPort != "" {
		// Used empty string so that metrics are not prefixed with the service name
		app.Server.Use(echoprometheus.NewMiddleware(""))
		app.metrics = echo.New()
		app.metrics.HideBanner = true
		app.metrics.GET("/metrics", echoprometheus.NewHandler())
	}

	return nil
}

// Start runs Setup and serves until StopServer is called.
func (app *App) Start(ctx context.Context) error {
	if err := app.Setup(ctx); err != nil {
		return err
	}

	if app.metrics != nil {
		go func() {
			if err := app.metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("Failed to start metrics server")
			}
		}()
	}

	log.Info().Str("port", app.Config.ServicePort).Str("store", app.Config.StoreBackend).Msg("Starting server")

	if err := app.Server.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if app.cancel != nil {
		app.cancel()
	}

	var errs []error
	if app.Server != nil {
		errs = append(errs, app.Server.Shutdown(ctx))
	}
	if app.metrics != nil {
		errs = append(errs, app.metrics.Shutdown(ctx))
	}
	if app.scheduler != nil {
		errs = append(errs, app.scheduler.Shutdown())
	}
	if app.reader != nil {
		errs = append(errs, app.reader.Close())
	}
	if app.producer != nil {
		errs = append(errs, app.producer.Close())
	}
	if app.tracing != nil {
		errs = append(errs, app.tracing.Shutdown(ctx))
	}

	return errors.Join(errs...)
}

func (app *App) repositories() (repository.ProductRepository, repository.UserRepository, error) {
	switch app.Config.StoreBackend {
	case config.StoreBackendMemory:
		repo := repository.CreateNewMemoryRepository()
		return repo, repo, nil
	case config.StoreBackendMongoDB:
		if app.DB == nil {
			return nil, nil, errors.New("mongodb backend selected without a database")
		}
		return repository.CreateNewMongoDBProductRepository(app.DB), repository.CreateNewMongoDBUserRepository(app.DB), nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", app.Config.StoreBackend)
	}
}

func (app *App) startScheduler(ctx context.Context) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			app.Config.CacheRefreshInterval,
		),
		gocron.NewTask(
			func() {
				ctx, cancel := context.WithTimeout(ctx, app.Config.RequestTimeout)
				defer cancel()

				if err := app.ProductService.RefreshCatalog(ctx); err != nil {
					log.Error().Err(err).Str("component", "RefreshCatalog").Msg("")
				}
			},
		),
	)
	if err != nil {
		return err
	}

	s.Start()
	app.scheduler = s

	return nil
}
