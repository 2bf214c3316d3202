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
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/yourusername/pruve-api/internal/config"
	"github.com/yourusername/pruve-api/internal/domain/repository"
	"github.com/yourusername/pruve-api/internal/handler"
	"github.com/yourusername/pruve-api/internal/metrics"
	"github.com/yourusername/pruve-api/internal/middleware"
	pgRepo "github.com/yourusername/pruve-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/pruve-api/internal/repository/redis"
	"github.com/yourusername/pruve-api/internal/service"
	ws "github.com/yourusername/pruve-api/internal/websocket"
	"github.com/yourusername/pruve-api/pkg/auth"
	"github.com/yourusername/pruve-api/pkg/database"
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
	if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Корневой контекст приложения для фоновых горутин
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appMetrics := metrics.New()

	// Redis необязателен: без него нет кеша расписания, rate limiting и кластерной рассылки
	var redisClient redis.UniversalClient
	var cacheRepo repository.CacheRepository
	if cfg.Redis.Enabled {
		redisClient, err = database.NewUniversalRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		log.Println("Successfully connected to Redis")

		redisCache, err := redisRepo.NewCacheRepo(redisClient, "pruve:")
		if err != nil {
			log.Printf("Failed to initialize CacheRepo: %v", err)
			os.Exit(1)
		}
		cacheRepo = redisCache
	} else {
		log.Println("Redis отключен: кеш, rate limiting и кластерная рассылка не используются")
	}

	// --- Инициализация WebSocket ---
	var pubSubProvider ws.PubSubProvider = &ws.NoOpPubSub{}
	instanceID := cfg.WebSocket.Cluster.InstanceID
	if instanceID == "" {
		instanceID = uuid.New().String()
	}
	if cfg.WebSocket.Cluster.Enabled {
		redisProvider, err := ws.NewRedisPubSub(redisClient)
		if err != nil {
			log.Printf("Failed to initialize Redis PubSub: %v", err)
			os.Exit(1)
		}
		pubSubProvider = redisProvider
		log.Printf("WebSocket: кластерный режим, инстанс %s, канал %s", instanceID, cfg.WebSocket.Cluster.BroadcastChannel)
	}

	wsHub := ws.NewHub(appMetrics)
	wsManager := ws.NewManager(wsHub, pubSubProvider, instanceID, cfg.WebSocket.Cluster.BroadcastChannel, appMetrics)
	go func() {
		if err := wsManager.Start(ctx); err != nil {
			log.Printf("WebSocket manager stopped: %v", err)
		}
	}()
	// --- Конец инициализации WebSocket ---

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	pollRepo := pgRepo.NewPollRepo(db)
	leagueRepo := pgRepo.NewLeagueRepo(db)
	matchRepo := pgRepo.NewMatchRepo(db)

	// Инициализируем сервисы
	userService := service.NewUserService(userRepo, jwtService, cfg.Search)
	pollService := service.NewPollService(pollRepo, userRepo, wsManager, appMetrics, cfg.Polls)
	leagueService := service.NewLeagueService(leagueRepo, userRepo, matchRepo)
	matchService := service.NewMatchService(matchRepo, cacheRepo, cfg.Cache.ScheduleTTL, appMetrics)

	// Инициализируем обработчики
	userHandler := handler.NewUserHandler(userService)
	pollHandler := handler.NewPollHandler(pollService)
	leagueHandler := handler.NewLeagueHandler(leagueService)
	matchHandler := handler.NewMatchHandler(matchService)
	wsHandler := handler.NewWSHandler(pollService, wsManager, cfg.CORS.AllowedOrigins, cfg.WebSocket.ClientSendBuffer)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, cfg.Auth.RequireToken)
	var limiterClient redis.UniversalClient
	if cfg.RateLimit.Enabled {
		limiterClient = redisClient
	}
	rateLimiter := middleware.NewRateLimiter(limiterClient)
	userLimit := rateLimiter.Limit(middleware.UserRateLimitConfig(cfg.RateLimit))
	voteLimit := rateLimiter.Limit(middleware.VoteRateLimitConfig(cfg.RateLimit))

	// Инициализируем роутер Gin
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.HTTPMetrics(appMetrics))

	// Production: не доверять прокси-заголовкам, в разработке доверяем localhost
	trustedProxies := []string{"127.0.0.1", "::1"}
	if gin.Mode() == gin.ReleaseMode {
		trustedProxies = nil
	}
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		log.Printf("Warning: failed to set trusted proxies: %v", err)
	}

	// Настройка CORS
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORS.AllowedOrigins) == 0 || cfg.CORS.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		sqlDB, err := database.GetSQLDB(db)
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(appMetrics.Handler()))

	// Настраиваем маршруты API
	api := router.Group(cfg.Server.APIPrefix)
	{
		// Пользователи
		api.POST("/user", userLimit, userHandler.CreateUser)
		api.GET("/user/:id", middleware.ExtractUintParam("id", "userID"), userHandler.GetUser)
		api.GET("/user/:id/polls", middleware.ExtractUintParam("id", "userID"), pollHandler.ListUserPolls)
		api.GET("/users/search", userHandler.SearchUsers)

		// Опросы
		api.POST("/create_polls", authMiddleware.RequireAuth(), pollHandler.CreatePoll)
		api.GET("/polls", pollHandler.ListFeed)
		polls := api.Group("/polls/:id")
		polls.Use(middleware.ExtractUintParam("id", "pollID"))
		{
			polls.GET("", pollHandler.GetPoll)
			polls.POST("/vote", authMiddleware.RequireAuth(), voteLimit, pollHandler.Vote)
			polls.GET("/results/export", pollHandler.ExportPollResults)
		}

		// Лиги
		api.POST("/leagues", authMiddleware.RequireAuth(), leagueHandler.CreateLeague)
		api.GET("/leagues/:id", middleware.ExtractUintParam("id", "userID"), leagueHandler.ListUserLeagues)
		api.GET("/leagues/:id/non_member", middleware.ExtractUintParam("id", "userID"), leagueHandler.ListNonMemberLeagues)
		api.GET("/leagues/:id/details", middleware.ExtractUintParam("id", "leagueID"), leagueHandler.GetLeague)
		api.POST("/leagues/:id/join", middleware.ExtractUintParam("id", "leagueID"), authMiddleware.RequireAuth(), leagueHandler.JoinLeague)

		// Матчи и комментарии
		api.GET("/matchschedule", matchHandler.ListSchedule)
		api.GET("/comments", matchHandler.ListAllComments)
		api.GET("/:id/matchcards", middleware.ExtractUintParam("id", "userID"), matchHandler.ListMatchCards)
		api.GET("/:id/comments", middleware.ExtractUintParam("id", "matchNumber"), matchHandler.ListComments)
		api.POST("/:id/match_vote_and_comment", middleware.ExtractUintParam("id", "matchNumber"),
			authMiddleware.RequireAuth(), voteLimit, matchHandler.VoteAndComment)

		// Live-результаты опроса
		api.GET("/ws/polls/:id", middleware.ExtractUintParam("id", "pollID"), wsHandler.HandlePollResults)
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

	// Останавливаем фоновые горутины и подписку кластера
	cancel()
	if err := wsManager.Close(); err != nil {
		log.Printf("Error closing PubSub provider: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}

	log.Println("Server exited properly")
}
