package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cookshare/internal/ai"
	"cookshare/internal/config"
	apphttp "cookshare/internal/http"
	"cookshare/internal/repository/sqlite"
	"cookshare/internal/service"
	"cookshare/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	storyRepo := sqlite.NewStoryRepository(db)
	eventRepo := sqlite.NewEventRepository(db)
	ingredientRepo := sqlite.NewIngredientRepository(db)
	recipeRepo := sqlite.NewRecipeRepository(db)

	inits := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"user", userRepo.Init},
		{"story", storyRepo.Init},
		{"event", eventRepo.Init},
		{"ingredient", ingredientRepo.Init},
		{"recipe", recipeRepo.Init},
	}
	for _, in := range inits {
		if err := in.fn(ctx); err != nil {
			logger.Fatalf("init %s repository: %v", in.name, err)
		}
	}

	sessionTTL := time.Duration(cfg.Auth.SessionTTLHours) * time.Hour
	authService := service.NewAuthService(userRepo, sessionTTL)
	userService := service.NewUserService(userRepo, storyRepo, eventRepo, recipeRepo, ingredientRepo)
	storyService := service.NewStoryService(storyRepo, userRepo)
	eventService := service.NewEventService(eventRepo, userRepo)
	recipeService := service.NewRecipeService(recipeRepo, ingredientRepo, userRepo)

	var storageSvc storage.Service
	if cfg.Storage.Bucket != "" {
		storageSvc, err = buildStorage(ctx, cfg, logger)
		if err != nil {
			logger.Fatalf("setup storage: %v", err)
		}
	} else {
		logger.Warn("storage bucket not configured; image upload disabled")
	}

	var generator ai.Generator
	if cfg.AI.APIKey != "" {
		generator = ai.NewOpenAIGenerator(ai.Config{
			APIKey:  cfg.AI.APIKey,
			BaseURL: cfg.AI.BaseURL,
			Model:   cfg.AI.Model,
		}, logger)
	} else {
		logger.Warn("ai api key not configured; recipe generation disabled")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		authService,
		userService,
		storyService,
		eventService,
		recipeService,
		storageSvc,
		generator,
		cfg.Storage.Bucket,
		cfg.Storage.KeyPrefix,
		logger,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client), nil
}
