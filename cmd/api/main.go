package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/fitness-service/internal/api/http"
	"github.com/spec-kit/fitness-service/internal/api/http/handlers"
	"github.com/spec-kit/fitness-service/internal/auth"
	"github.com/spec-kit/fitness-service/internal/config"
	"github.com/spec-kit/fitness-service/internal/events"
	"github.com/spec-kit/fitness-service/internal/observability"
	"github.com/spec-kit/fitness-service/internal/persistence"
	"github.com/spec-kit/fitness-service/internal/repository"
	"github.com/spec-kit/fitness-service/internal/repository/memory"
	"github.com/spec-kit/fitness-service/internal/service"
	"github.com/spec-kit/fitness-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// repositories is the storage backend chosen at startup.
type repositories struct {
	users     repository.UserRepository
	workouts  repository.WorkoutRepository
	posts     repository.PostRepository
	comments  repository.CommentRepository
	likes     repository.LikeRepository
	nutrition repository.NutritionLogRepository
	owners    auth.OwnershipResolver
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))
	auditor := service.NewAuditPublisher(dispatcher, logger)

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	healthDeps := map[string]handlers.Pinger{}
	repos := selectRepositories(pg, logger)
	if pg.Pool != nil {
		healthDeps["postgres"] = pg
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}
	verifier, err := auth.NewPasswordVerifier(cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to init password verifier", zap.Error(err))
	}

	authDeps := service.AuthDependencies{
		UserRepo:   repos.users,
		Tokens:     tokens,
		Verifier:   verifier,
		Dispatcher: dispatcher,
		Logger:     logger,
	}
	middlewareOpts := []auth.MiddlewareOption{
		auth.WithLogger(logger),
		auth.WithRecorder(metrics),
		auth.WithAuditor(auditor),
	}
	if cfg.Auth.RevocationEnabled {
		redis := persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		denylist := repository.NewTokenDenylistRepository(redis.Client)
		authDeps.Denylist = denylist
		middlewareOpts = append(middlewareOpts, auth.WithDenylist(denylist))
		healthDeps["redis"] = redis
		logger.Info("token revocation enabled")
	}

	guard, err := auth.NewGuard(auth.DefaultPolicies(), repos.owners,
		auth.WithGuardLogger(logger),
		auth.WithGuardRecorder(metrics),
		auth.WithGuardAuditor(auditor))
	if err != nil {
		logger.Fatal("failed to build authorization guard", zap.Error(err))
	}

	authService := service.NewAuthService(cfg.Auth, authDeps)
	userService := service.NewUserService(repos.users)
	transport := auth.NewCookieTransport(cfg.Cookie.Domain, cfg.Cookie.Path)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, healthDeps),
		Session:  handlers.NewSessionHandler(authService, userService, transport),
		Profile:  handlers.NewProfileHandler(userService),
		Workouts: handlers.NewWorkoutsHandler(service.NewWorkoutService(repos.workouts)),
		Posts: handlers.NewPostsHandler(service.NewSocialService(service.SocialDependencies{
			PostRepo:    repos.posts,
			CommentRepo: repos.comments,
			LikeRepo:    repos.likes,
		})),
		Nutrition:      handlers.NewNutritionHandler(service.NewNutritionService(repos.nutrition)),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, transport, middlewareOpts...),
		Guard:          guard,
		Metrics:        metrics,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.Duration("token_ttl", authService.TokenManager().TTL()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func selectRepositories(pg *persistence.Postgres, logger *zap.Logger) repositories {
	if pg.Pool == nil {
		logger.Warn("using in-memory repositories; data is lost on restart")
		store := memory.NewStore()
		return repositories{
			users:     store.Users(),
			workouts:  store.Workouts(),
			posts:     store.Posts(),
			comments:  store.Comments(),
			likes:     store.Likes(),
			nutrition: store.NutritionLogs(),
			owners:    store,
		}
	}
	pool := pg.Pool
	return repositories{
		users:     repository.NewUserRepository(pool),
		workouts:  repository.NewWorkoutRepository(pool),
		posts:     repository.NewPostRepository(pool),
		comments:  repository.NewCommentRepository(pool),
		likes:     repository.NewLikeRepository(pool),
		nutrition: repository.NewNutritionLogRepository(pool),
		owners:    repository.NewOwnershipRepository(pool),
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
