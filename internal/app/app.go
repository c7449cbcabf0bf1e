package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/ColdBlood237/odin-inventory/internal/cfg"
	v1Grpc "github.com/ColdBlood237/odin-inventory/internal/delivery/v1/grpc"
	v1Http "github.com/ColdBlood237/odin-inventory/internal/delivery/v1/http"
	"github.com/ColdBlood237/odin-inventory/internal/infrastructure/kafka"
	minioInfra "github.com/ColdBlood237/odin-inventory/internal/infrastructure/minio"
	s3Repo "github.com/ColdBlood237/odin-inventory/internal/repository/minio"
	"github.com/ColdBlood237/odin-inventory/internal/repository/pgdb"
	pgdbConv "github.com/ColdBlood237/odin-inventory/internal/repository/pgdb/converter"
	"github.com/ColdBlood237/odin-inventory/internal/repository/redis"
	redisConv "github.com/ColdBlood237/odin-inventory/internal/repository/redis/converter"
	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/ColdBlood237/odin-inventory/pkg/closer"
	"github.com/ColdBlood237/odin-inventory/pkg/clients"
	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/ColdBlood237/odin-inventory/pkg/logger"
	"github.com/ColdBlood237/odin-inventory/pkg/postgres"
	"github.com/ColdBlood237/odin-inventory/pkg/tr"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	initTimeout        = 30 * time.Second
	shutdownTimeout    = 15 * time.Second
	forcedCloseTimeout = 2 * time.Second
	cleanupWaitTimeout = 5 * time.Second
)

// App — собранное приложение: хранилища, фоновые воркеры и серверы.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	// отменяется при остановке, чтобы фоновая очистка изображений не стартовала заново
	bgCtx    context.Context
	bgCancel context.CancelFunc

	categoryUC usecase.CategoryUC
	itemUC     usecase.ItemUC

	outboxWorker *kafka.OutboxWorker
	httpSrv      *v1Http.Server
	grpcSrv      *v1Grpc.GRPCServer
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(forcedCloseTimeout),
	}
	a.bgCtx, a.bgCancel = context.WithCancel(context.Background())

	if err := a.init(); err != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if cerr := a.closer.Close(closeCtx); cerr != nil {
			log.Warnf("partial init cleanup: %v", cerr)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

func (a *App) init() error {
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	db, err := initPGDB(ctx, a.logger, a.cfg)
	if err != nil {
		return err
	}
	a.closer.AddSimple("postgres", db.Close)

	txManager := tr.NewManager(db.Pool)
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, pgdbConv.NewCategoryConverter())
	itemRepo := pgdb.NewItemRepo(db.Pool, pgdbConv.NewItemConverter())
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverter())

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.Add("redis", func(context.Context) error { return redisClient.Close() })
	if err := redisClient.Ping(ctx); err != nil {
		a.logger.Errorf(err, "failed to connect to redis")
		return err
	}
	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.NewItemViewConverter(), a.cfg.Redis, a.logger)

	a.closer.AddSimple("background context", a.bgCancel)

	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize minio client")
		return err
	}
	if err := clients.EnsureBucket(ctx, minioClient, a.cfg.Minio.BucketName); err != nil {
		a.logger.Errorf(err, "failed to initialize MinIO bucket")
		return err
	}
	imagesInfra := minioInfra.NewMinioInfrastructure(s3Repo.NewImageRepo(minioClient, a.cfg.Minio), a.cfg.Minio, a.logger, a.bgCtx)
	a.closer.Add("minio cleanup", func(ctx context.Context) error {
		waitCtx, cancel := context.WithTimeout(ctx, cleanupWaitTimeout)
		defer cancel()
		if err := imagesInfra.WaitForCleanup(waitCtx); err != nil {
			a.logger.Warnf("MinIO cleanup did not finish before shutdown, some objects may remain: %v", err)
		}
		return nil
	})

	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	a.closer.Add("kafka producer", func(context.Context) error { return producer.Close() })
	if err := producer.EnsureTopic(ctx); err != nil {
		a.logger.Errorf(err, "failed to ensure kafka topic")
		return err
	}
	a.outboxWorker = kafka.NewOutboxWorker(outboxRepo, a.logger, producer, a.cfg.Outbox, db.DSN())

	policies := usecase.NewPolicies(a.cfg.Catalog.DuplicateNamePolicy, a.cfg.Catalog.ImagePolicy)
	a.categoryUC = usecase.NewCategoryUC(categoryRepo, itemRepo, outboxRepo, cacheRepo, txManager, imagesInfra, policies, a.logger)
	a.itemUC = usecase.NewItemUC(itemRepo, categoryRepo, outboxRepo, cacheRepo, txManager, imagesInfra, policies, a.logger)

	r := chi.NewRouter()
	v1Http.NewRouter(r, a.logger).Init(a.categoryUC, a.itemUC, a.cfg.Catalog.MaxImageSize)
	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)

	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)
	a.grpcSrv.RegisterServices(a.itemUC)

	return nil
}

// Run запускает серверы и воркер и блокируется до сигнала или фатальной ошибки.
func (a *App) Run() error {
	a.outboxWorker.Start(a.bgCtx)
	a.closer.AddSimple("outbox worker", a.outboxWorker.Stop)

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			grpcErrCh <- err
		}
	}()
	a.closer.Add("grpc server", a.grpcSrv.Stop)

	httpErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpErrCh <- err
		}
	}()
	a.closer.Add("http server", a.httpSrv.Stop)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-httpErrCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case sig := <-shutdown:
		a.logger.Infof("Received %s, stopping gracefully...", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown")
		if appErr == nil {
			appErr = err
		}
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

// CategoryUC и ItemUC отдают собранные сервисы для утилит вроде cmd/populate.
func (a *App) CategoryUC() usecase.CategoryUC { return a.categoryUC }

func (a *App) ItemUC() usecase.ItemUC { return a.itemUC }

// Close освобождает ресурсы без запуска серверов.
func (a *App) Close(ctx context.Context) error {
	return a.closer.Close(ctx)
}

func initPGDB(ctx context.Context, logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
