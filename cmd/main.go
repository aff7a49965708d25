package main

import (
	"context"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"messaging-backend/config"
	"messaging-backend/internal/handlers"
	"messaging-backend/internal/pkg/kafka"
	"messaging-backend/internal/repository"
	"messaging-backend/internal/routers"
	"messaging-backend/internal/services"
	"messaging-backend/internal/storage"
	jwtmw "messaging-backend/middleware/jwt"
	logger "messaging-backend/middleware/log"
)

func main() {
	cfg, err := config.LoadConfig("./config.toml")
	if err != nil {
		log.Fatalf("配置初始化失败: %v", err)
	}

	zlog, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer zlog.Close()

	// 初始化 PostgreSQL
	dsn := storage.BuildDSN(cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.DBName)
	postgres, err := storage.InitPostgres(dsn, cfg.Postgres.MaxIdleConns, cfg.Postgres.MaxOpenConns)
	if err != nil {
		log.Fatalf("postgres 初始化失败: %v", err)
	}

	// 初始化 Redis
	redisClient, err := storage.InitRedis(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize, cfg.Redis.MinIdleConns)
	if err != nil {
		log.Fatalf("redis 初始化失败: %v", err)
	}

	// 初始化仓储层
	userRepo := repository.NewUserRepository(postgres)
	channelRepo := repository.NewChannelRepository(postgres)
	messageRepo := repository.NewMessageRepository(postgres)
	markerRepo := repository.NewReadMarkerRepository(postgres)

	// 初始化 Kafka Producer (不可用时降级运行，消息事件不再发布)
	var publisher services.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			zlog.WarnContext(context.Background(), "kafka producer unavailable, running degraded", zap.Error(err))
		} else {
			defer producer.Close()
			publisher = producer
		}
	}

	// 初始化服务层
	tokens := jwtmw.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTLHours)
	authzService := services.NewAuthzService(userRepo, channelRepo)
	userService := services.NewUserService(userRepo, authzService)
	channelService := services.NewChannelService(channelRepo, messageRepo, markerRepo, authzService)
	messageService := services.NewMessageService(messageRepo, authzService, publisher, zlog)
	readService := services.NewReadService(markerRepo, messageRepo)
	sessionService := services.NewSessionService(tokens, redisClient)

	authHandler := handlers.NewAuthHandler(userService, sessionService)
	channelHandler := handlers.NewChannelHandler(channelService, messageService, readService, userService)
	adminHandler := handlers.NewAdminHandler(authzService, userService, messageService)

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())

	routers.SetupRoutes(r, zlog, sessionService, authHandler, channelHandler, adminHandler)

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	if err := r.Run(addr); err != nil {
		log.Fatalf("服务启动失败: %v", err)
	}
}
