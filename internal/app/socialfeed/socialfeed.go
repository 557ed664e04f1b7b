// Package socialfeed собирает HTTP-приложение ленты: хранилище, кеш,
// брокер событий, сервисы и маршруты.
package socialfeed

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/social-feed/internal/cache"
	"github.com/magabrotheeeer/social-feed/internal/config"
	jwtlib "github.com/magabrotheeeer/social-feed/internal/lib/jwt"
	"github.com/magabrotheeeer/social-feed/internal/migrations"
	"github.com/magabrotheeeer/social-feed/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/social-feed/internal/services/auth"
	likeservice "github.com/magabrotheeeer/social-feed/internal/services/like"
	postservice "github.com/magabrotheeeer/social-feed/internal/services/post"
	"github.com/magabrotheeeer/social-feed/internal/storage"
	"github.com/magabrotheeeer/social-feed/internal/storage/memory"
)

// App инкапсулирует HTTP-сервер и внешние соединения приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage // nil при хранилищах в памяти
	rabbit *amqp.Connection // nil, если события отключены
}

// New собирает приложение по конфигурации. Пустая строка подключения
// к базе включает хранилища в памяти процесса; пустые адреса Redis и
// RabbitMQ отключают кеш и публикацию событий соответственно.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{logger: logger}

	var (
		userRepo    authservice.UserRepository
		postRepo    postservice.Repository
		likeRepo    likeservice.Repository
		likeCleaner postservice.LikeCleaner
	)
	if cfg.StorageConnectionString != "" {
		db, err := storage.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		if err = migrations.Run(db.DB, "./migrations"); err != nil {
			return nil, err
		}
		app.db = db
		userRepo, postRepo, likeRepo, likeCleaner = db, db, db, db
	} else {
		logger.Info("storage connection string is empty, using in-memory stores")
		likes := memory.NewLikeStore()
		userRepo = memory.NewUserStore()
		postRepo = memory.NewPostStore(nil)
		likeRepo, likeCleaner = likes, likes
	}

	var postCache postservice.Cache
	if cfg.AddressRedis != "" {
		cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		postCache = cacheRedis
	}

	var events likeservice.EventPublisher
	if cfg.RabbitConnection != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitConnection, 5, 3*time.Second)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.DefaultQueues)
		if err != nil {
			return nil, err
		}
		app.rabbit = conn
		events = rabbitmq.NewPublisher(ch)
	}

	jwtMaker := jwtlib.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.New(userRepo, jwtMaker, nil)

	postService := postservice.New(postRepo, likeCleaner, postCache, logger)
	likeService := likeservice.New(likeRepo, postRepo, events, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, postService, likeService)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.db != nil {
			a.db.DB.Close()
		}
		if a.rabbit != nil {
			_ = a.rabbit.Close()
		}
		return err
	}
}
