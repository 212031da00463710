package http

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog/log"

	"microblog/internal/config"
	"microblog/internal/database"
	"microblog/internal/handler"
	"microblog/internal/logger"
	"microblog/internal/repository"
	"microblog/internal/service"
)

func Run() error {
	logger.Init()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// 3. Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	rememberRepo := repository.NewRememberTokenRepository(db)

	// Sweep long-dead remember tokens in the background
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			n, err := rememberRepo.DeleteExpired(context.Background(), 30*24*time.Hour)
			if err != nil {
				log.Error().Err(err).Msg("failed to sweep expired remember tokens")
				continue
			}
			if n > 0 {
				log.Info().Int64("deleted", n).Msg("swept expired remember tokens")
			}
		}
	}()

	// 4. Services
	userService := service.NewUserService(userRepo, followRepo)
	postService := service.NewPostService(postRepo, cfg.PostsPerPage)
	followService := service.NewFollowService(followRepo, userRepo)
	authService := service.NewAuthService(rememberRepo, cfg)
	translateService := service.NewTranslateService(cfg.MSTranslatorKey)
	mailer := service.NewMailer(cfg)

	// Avatar uploads are optional: without object storage credentials the
	// rest of the app still works
	var mediaService *service.MediaService
	if cfg.R2AccountID != "" {
		mediaService, err = service.NewMediaService(context.Background(), cfg)
		if err != nil {
			return fmt.Errorf("failed to init media service: %w", err)
		}
	} else {
		log.Warn().Msg("object storage not configured, avatar uploads disabled")
	}

	// 5. Handlers and router
	router := NewRouter(RouterConfig{
		AuthHandler:      handler.NewAuthHandler(userService, authService, mailer, cfg),
		UserHandler:      handler.NewUserHandler(userService, postService, mediaService),
		FollowHandler:    handler.NewFollowHandler(followService),
		PostHandler:      handler.NewPostHandler(postService),
		TranslateHandler: handler.NewTranslateHandler(translateService),
		SessionRefresher: authService,
		Presence:         userService,
		NotifyFailure:    mailer.NotifyAdmins,
		JWTSecret:        cfg.SecretKey,
		AccessTokenAge:   cfg.AccessTokenMaxAge,
	})

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("starting server")
	return stdhttp.ListenAndServe(addr, router)
}
