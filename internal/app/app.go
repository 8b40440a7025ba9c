package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nitintomar713/sacmtb-surya/internal/config"
	"github.com/nitintomar713/sacmtb-surya/internal/delivery/api"
	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/googleauth"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/mailer"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/media"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/mongodb"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/nats"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/razorpay"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/redisstore"
	"github.com/nitintomar713/sacmtb-surya/internal/usecase"
)

type App struct {
	cfg    *config.Config
	logger *logger.Logger
}

func New(cfg *config.Config) *App {
	return &App{
		cfg:    cfg,
		logger: logger.NewLogger(),
	}
}

func (a *App) Run() error {
	a.logger.Info("Starting SAC MTB backend")

	store, err := a.initMongoDB()
	if err != nil {
		return err
	}
	defer store.Close()

	db := store.Database()

	orderRepo, err := mongodb.NewOrderRepositoryMongo(db, a.logger)
	if err != nil {
		return fmt.Errorf("failed to init order repository: %w", err)
	}
	productRepo, err := mongodb.NewProductRepositoryMongo(db, a.logger)
	if err != nil {
		return fmt.Errorf("failed to init product repository: %w", err)
	}
	userRepo, err := mongodb.NewUserRepositoryMongo(db, a.logger)
	if err != nil {
		return fmt.Errorf("failed to init user repository: %w", err)
	}
	reviewRepo, err := mongodb.NewReviewRepositoryMongo(db, a.logger)
	if err != nil {
		return fmt.Errorf("failed to init review repository: %w", err)
	}
	scoreRepo, err := mongodb.NewGameScoreRepositoryMongo(db, a.logger)
	if err != nil {
		return fmt.Errorf("failed to init game score repository: %w", err)
	}

	publisher := a.initNATS()
	defer publisher.Close()

	redisStore := a.initRedis()
	if redisStore != nil {
		defer redisStore.Close()
	}

	var limiter usecase.RateLimiter
	var board usecase.Leaderboard
	if redisStore != nil {
		limiter = redisStore
		board = redisStore
	}

	smtp := mailer.NewMailer(
		a.cfg.SMTP.Host,
		a.cfg.SMTP.Port,
		a.cfg.SMTP.Username,
		a.cfg.SMTP.Password,
		a.cfg.SMTP.From,
		a.logger,
	)

	gateway := razorpay.NewGateway(
		a.cfg.Razorpay.KeyID,
		a.cfg.Razorpay.KeySecret,
		a.cfg.Razorpay.WebhookSecret,
		a.logger,
	)

	uploader := a.initMedia()
	google := googleauth.NewVerifier(a.cfg.Google.ClientID)

	authUC := usecase.NewAuthUseCase(
		userRepo, smtp, limiter, google,
		[]byte(a.cfg.JWT.Secret),
		usecase.AdminConfig{
			Email:    a.cfg.Admin.Email,
			Name:     a.cfg.Admin.Name,
			Password: a.cfg.Admin.Password,
			Phone:    a.cfg.Admin.Phone,
		},
		a.logger,
	)
	catalogUC := usecase.NewCatalogUseCase(productRepo, uploader, a.logger)
	orderUC := usecase.NewOrderUseCase(
		orderRepo, productRepo, gateway, smtp, publisher,
		usecase.NewTrackingResolver(nil),
		a.cfg.Admin.Email,
		a.logger,
	)
	reviewUC := usecase.NewReviewUseCase(reviewRepo, productRepo, a.logger)
	gameUC := usecase.NewGameUseCase(scoreRepo, board, a.logger)

	a.ensureAdmin(authUC)

	e := echo.New()
	e.HideBanner = true
	api.Register(e, api.Handlers{
		Auth:    api.NewAuthHandler(authUC),
		Product: api.NewProductHandler(catalogUC),
		Order:   api.NewOrderHandler(orderUC),
		Payment: api.NewPaymentHandler(orderUC, gateway, a.logger),
		Review:  api.NewReviewHandler(reviewUC),
		Game:    api.NewGameHandler(gameUC),
	}, authUC, []byte(a.cfg.JWT.Secret))

	return a.runServerWithGracefulShutdown(e)
}

func (a *App) initMongoDB() (*mongodb.Store, error) {
	a.logger.Info("Connecting to MongoDB", "uri", a.cfg.Mongo.URI, "db", a.cfg.Mongo.DB)

	store, err := mongodb.NewStore(a.cfg.Mongo.URI, a.cfg.Mongo.DB)
	if err != nil {
		a.logger.Error("Failed to connect to MongoDB", "error", err)
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	a.logger.Info("Connected to MongoDB successfully")
	return store, nil
}

func (a *App) initNATS() usecase.EventPublisher {
	if a.cfg.NATS.URL == "" {
		a.logger.Info("NATS URL not set, event publishing disabled")
		return &noopPublisher{}
	}

	publisher, err := connectToNATSWithRetry(a.cfg.NATS.URL, a.logger, 3, 2*time.Second)
	if err != nil {
		a.logger.Warn("Failed to connect to NATS, continuing without event publishing",
			"error", err,
			"url", a.cfg.NATS.URL)
		return &noopPublisher{}
	}

	a.logger.Info("Connected to NATS successfully")
	return publisher
}

func (a *App) initRedis() *redisstore.Store {
	if a.cfg.Redis.Addr == "" {
		a.logger.Info("Redis address not set, rate limiting and leaderboard cache disabled")
		return nil
	}

	store, err := redisstore.NewStore(a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB, a.logger)
	if err != nil {
		a.logger.Warn("Failed to connect to Redis, continuing without it", "error", err)
		return nil
	}
	return store
}

func (a *App) initMedia() usecase.MediaUploader {
	if a.cfg.Cloudinary.CloudName == "" {
		a.logger.Info("Cloudinary not configured, media uploads disabled")
		return &unconfiguredUploader{}
	}

	uploader, err := media.NewCloudinaryUploader(
		a.cfg.Cloudinary.CloudName,
		a.cfg.Cloudinary.APIKey,
		a.cfg.Cloudinary.APISecret,
		a.cfg.Cloudinary.Folder,
		a.logger,
	)
	if err != nil {
		a.logger.Warn("Failed to init Cloudinary, media uploads disabled", "error", err)
		return &unconfiguredUploader{}
	}
	return uploader
}

func (a *App) ensureAdmin(authUC *usecase.AuthUseCase) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin, err := authUC.EnsureAdmin(ctx)
	if err != nil {
		a.logger.Warn("Failed to ensure admin account", "error", err)
		return
	}
	a.logger.Info("Admin account ready", "email", admin.Email)
}

func (a *App) runServerWithGracefulShutdown(e *echo.Echo) error {
	serverErrors := make(chan error, 1)

	go func() {
		a.logger.Info("Starting HTTP server", "port", a.cfg.HTTP.Port)
		serverErrors <- e.Start(":" + a.cfg.HTTP.Port)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		a.logger.Info("Received shutdown signal, starting graceful shutdown", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := e.Shutdown(ctx); err != nil {
			a.logger.Warn("Graceful shutdown failed, forcing close", "error", err)
			return e.Close()
		}

		a.logger.Info("Graceful shutdown completed")
		return nil
	}
}

func connectToNATSWithRetry(url string, log *logger.Logger, maxRetries int, delay time.Duration) (usecase.EventPublisher, error) {
	for i := 0; i < maxRetries; i++ {
		publisher, err := nats.NewNatsPublisher(url, log)
		if err == nil {
			return publisher, nil
		}

		log.Warn("Failed to connect to NATS, retrying...",
			"attempt", i+1,
			"max_retries", maxRetries,
			"error", err)

		if i < maxRetries-1 {
			time.Sleep(delay)
		}
	}

	return nil, fmt.Errorf("failed to connect to NATS after %d attempts", maxRetries)
}

type noopPublisher struct{}

func (n *noopPublisher) PublishOrderEvent(ctx context.Context, event string, order *entities.Order) error {
	return nil
}

func (n *noopPublisher) Close() {}

type unconfiguredUploader struct{}

func (u *unconfiguredUploader) UploadImage(ctx context.Context, upload usecase.MediaUpload) (string, error) {
	return "", fmt.Errorf("media uploads are not configured")
}

func (u *unconfiguredUploader) UploadVideo(ctx context.Context, upload usecase.MediaUpload) (string, error) {
	return "", fmt.Errorf("media uploads are not configured")
}
