package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/survivor-api/internal/config"
	"github.com/yourusername/survivor-api/internal/handler"
	"github.com/yourusername/survivor-api/internal/middleware"
	pgRepo "github.com/yourusername/survivor-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/survivor-api/internal/repository/redis"
	"github.com/yourusername/survivor-api/internal/service"
	"github.com/yourusername/survivor-api/pkg/auth"
	"github.com/yourusername/survivor-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	weekRepo := pgRepo.NewWeekRepo(db)
	gameRepo := pgRepo.NewGameRepo(db)
	teamRepo := pgRepo.NewTeamRepo(db)
	entryRepo := pgRepo.NewEntryRepo(db)
	pickRepo := pgRepo.NewPickRepo(db)
	resetTokenRepo := pgRepo.NewPasswordResetRepo(db)
	finalizeUow := pgRepo.NewFinalizeUnitOfWork(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// JWT
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Email: Resend при наличии ключа, иначе noop
	var emailService service.EmailService
	if cfg.Email.ResendAPIKey != "" {
		resendService, err := service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From, cfg.Email.ReplyTo)
		if err != nil {
			log.Printf("Failed to initialize ResendEmailService: %v", err)
			os.Exit(1)
		}
		emailService = resendService
	} else {
		log.Println("RESEND_API_KEY не задан, письма уходят в noop-режим")
		emailService = &service.NoopEmailService{}
	}

	// Инициализируем сервисы
	authService, err := service.NewAuthService(userRepo, jwtService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}
	resetService := service.NewPasswordResetService(userRepo, resetTokenRepo, emailService, cfg.Email.ResetBaseURL)
	weekService := service.NewWeekService(weekRepo, cacheRepo)
	entryService := service.NewEntryService(entryRepo, weekRepo)
	pickService := service.NewPickService(pickRepo, entryRepo, weekRepo, teamRepo)
	finalizeService := service.NewFinalizeService(finalizeUow)
	dashboardService := service.NewDashboardService(
		entryRepo, weekRepo, pickRepo, cacheRepo,
		time.Duration(cfg.Dashboard.WeekCacheTTLSeconds)*time.Second,
	)
	historyService := service.NewHistoryService(weekRepo, entryRepo, pickRepo)
	revealService := service.NewRevealService(weekRepo, gameRepo, teamRepo, pickRepo)
	espnClient := service.NewESPNClient(cfg.Sync.ESPNBaseURL)
	syncService := service.NewSyncService(espnClient, weekRepo, gameRepo, teamRepo)
	adminService := service.NewAdminService(userRepo, entryRepo, emailService)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	resetHandler := handler.NewPasswordResetHandler(resetService)
	weekHandler := handler.NewWeekHandler(weekService)
	entryHandler := handler.NewEntryHandler(entryService)
	pickHandler := handler.NewPickHandler(pickService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	historyHandler := handler.NewHistoryHandler(historyService)
	publicHandler := handler.NewPublicHandler(revealService)
	syncHandler := handler.NewSyncHandler(syncService)
	adminHandler := handler.NewAdminHandler(adminService)
	adminWeekHandler := handler.NewAdminWeekHandler(finalizeService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	// Фоновая очистка истекших токенов сброса пароля
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := resetService.CleanupExpired(); err != nil {
					log.Printf("Ошибка очистки токенов сброса пароля: %v", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		api.GET("/health", publicHandler.Health)

		// Аутентификация
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
		}

		// Сброс пароля
		resetGroup := api.Group("/password-reset")
		{
			resetGroup.POST("/request", resetHandler.Request)
			resetGroup.POST("/submit", resetHandler.Submit)
		}

		// Недели
		weeks := api.Group("/weeks")
		{
			weeks.GET("", weekHandler.List)

			adminWeeks := weeks.Group("")
			adminWeeks.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
			{
				adminWeeks.POST("", weekHandler.Create)
				adminWeeks.POST("/admin/set-current", weekHandler.SetCurrent)
				adminWeeks.PATCH("/:id", middleware.ExtractUintParam("id", "weekID"), weekHandler.Update)
			}
		}

		// Заявки
		entries := api.Group("/entries")
		entries.Use(authMiddleware.RequireAuth())
		{
			entries.POST("", entryHandler.Create)

			entryWithID := entries.Group("/:id")
			entryWithID.Use(middleware.ExtractUintParam("id", "entryID"))
			{
				entryWithID.PATCH("", entryHandler.Update)
				entryWithID.DELETE("", entryHandler.Delete)
			}
		}

		// Публичный список заявок пользователя
		api.GET("/users/:user_id/entries",
			middleware.ExtractUintParam("user_id", "userID"), entryHandler.ListUserEntries)

		// Пики
		picks := api.Group("/picks")
		picks.Use(authMiddleware.RequireAuth())
		{
			picks.POST("", pickHandler.Create)
			picks.PATCH("/:id", middleware.ExtractUintParam("id", "pickID"), pickHandler.Update)
		}

		// Дашборд
		api.GET("/dashboard", authMiddleware.RequireAuth(), dashboardHandler.Get)

		// История
		api.GET("/history/matrix", historyHandler.Matrix)

		// Публичные маршруты
		public := api.Group("/public")
		{
			public.GET("/site-time", publicHandler.SiteTime)
			public.GET("/pre-reveal/:id",
				middleware.ExtractUintParam("id", "weekID"), publicHandler.PreReveal)
			public.GET("/weeks/:id/reveal-snapshot",
				middleware.ExtractUintParam("id", "weekID"), publicHandler.RevealSnapshot)
		}

		// Администрирование
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.PATCH("/users/:id", middleware.ExtractUintParam("id", "userID"), adminHandler.PatchUser)

			admin.GET("/entries", adminHandler.ListEntries)
			adminEntry := admin.Group("/entries/:id")
			adminEntry.Use(middleware.ExtractUintParam("id", "entryID"))
			{
				adminEntry.PATCH("/payment", adminHandler.PatchEntryPayment)
				adminEntry.PATCH("/elimination", adminHandler.PatchEntryElimination)
			}

			admin.POST("/weeks/:id/finalize-scores",
				middleware.ExtractUintParam("id", "weekID"), adminWeekHandler.FinalizeScores)

			admin.GET("/history/export", historyHandler.Export)
			admin.POST("/broadcast", adminHandler.Broadcast)
		}
	}

	// Внутренняя синхронизация (защищена общим токеном, не JWT)
	internal := router.Group("/internal")
	internal.Use(middleware.RequireSyncToken(cfg.Sync.InternalToken))
	{
		internal.POST("/sync-games/espn", syncHandler.SyncESPN)
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited")
}
