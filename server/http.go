package server

import (
	"catalog-service/config"
	"catalog-service/constant"
	"catalog-service/handler"
	"catalog-service/pkg/kv"
	"catalog-service/pkg/mailer"
	"catalog-service/pkg/payment"
	"catalog-service/pkg/rabbitmq"
	"catalog-service/pkg/storage"
	"catalog-service/pkg/token"
	"catalog-service/repository"
	"catalog-service/service"
	"context"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func RunHttp(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(Logger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Bool("isProduction", cfg.IsProduction()).Send()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, err := NewRepository(cfg)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("NewRepository")
		return
	}

	rdb, err := config.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("NewRedisClient")
		return
	}

	conn, err := config.NewRabbitMQConn(ctx, cfg.Queue)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("NewRabbitMQConn")
	}
	publisher, err := rabbitmq.NewPublisher(conn, cfg.Queue)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("NewPublisher")
		return
	}
	defer publisher.Close()

	objects := storage.NewMinioStorage(cfg.Storage, cfg.MinIOBucket)
	if err := objects.EnsureBucket(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("bucket", cfg.MinIOBucket).Msg("EnsureBucket")
	}

	svc := service.NewService(service.Dependencies{
		Repo:      repo,
		Tokens:    token.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL),
		KV:        kv.NewRedisStore(rdb),
		Mailer:    mailer.NewSendGrid(cfg.Mail),
		Storage:   objects,
		Publisher: publisher,
		Payments:  payment.NewStripe(cfg.Stripe),
	})

	if conn != nil {
		resultConsumer := rabbitmq.NewConsumer(conn, cfg.Queue, cfg.Server.Workers, handler.TranscodeResultHandler)
		go func() {
			err := resultConsumer.Consume(ctx, handler.ServiceDependencies{CatalogService: svc.Catalog})
			if err != nil && !errors.Is(err, context.Canceled) {
				zerolog.Ctx(ctx).Error().Err(err).Msg("Transcode result consumer error")
			}
		}()
	}

	scheduler, err := startRetention(ctx, cfg.Retention, svc.Tracking)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("schedule", cfg.Retention.Schedule).Msg("startRetention")
		return
	}
	if scheduler != nil {
		defer func() { <-scheduler.Stop().Done() }()
	}

	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger(*zerolog.Ctx(ctx)), handler.CORS(cfg.CORS.AllowOrigins))
	addHealth(r)
	handler.RegisterValidation()
	handler.New(svc, cfg.IsProduction()).Routes(r)

	srv := http.Server{
		Handler:           r,
		Addr:              fmt.Sprintf(":%s", cfg.Server.HttpPort),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Str("addr", srv.Addr).Msg("start http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
			cancel()
		}
	}()

	<-ctx.Done()
	zerolog.Ctx(ctx).Info().Msg("shutting down server")
	shutdownCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
	}

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("server shutdown")
}

// NewRepository opens gorm over the configured postgres handle.
func NewRepository(cfg *config.Config) (repository.Repository, error) {
	db, err := repository.OpenPostgres(cfg.DB, cfg.App.Environment == constant.EnvironmentDevelop.String())
	if err != nil {
		return nil, err
	}
	return repository.NewRepo(db), nil
}

func addHealth(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}

// Logger returns a base context carrying the root logger.
func Logger(cfg *config.Config) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.App.Environment == constant.EnvironmentDevelop.String() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}
