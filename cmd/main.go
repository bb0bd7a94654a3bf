package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/api"
	"github.com/RoyceAzure/lab/storefront/internal/api/handler"
	"github.com/RoyceAzure/lab/storefront/internal/api/router"
	"github.com/RoyceAzure/lab/storefront/internal/config"
	"github.com/RoyceAzure/lab/storefront/internal/infra/consumer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/RoyceAzure/lab/storefront/internal/token"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	cf := config.GetConfig()
	if cf == nil {
		log.Fatal("load config failed")
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "storefront").Logger()

	conn, err := db.GetDbConn(cf.DbName, cf.DbHost, cf.DbPort, cf.DbUser, cf.DbPas)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres failed")
	}
	dbDao := db.NewDbDao(conn)
	if err := dbDao.InitMigrate(); err != nil {
		logger.Fatal().Err(err).Msg("migrate schema failed")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cf.RedisAddr,
		Password: cf.RedisPassword,
	})
	productCache := redis_repo.NewProductCacheRepo(redisClient)

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()

	var orderEvents producer.IOrderEventProducer
	var kafkaProducer *producer.OrderEventProducer
	var auditConsumer *consumer.OrderEventAuditConsumer
	if brokers := cf.BrokerList(); len(brokers) > 0 {
		kafkaProducer = producer.NewOrderEventProducer(brokers, cf.KafkaOrderTopic, cf.KafkaNumPartitions)
		orderEvents = kafkaProducer

		auditConsumer = consumer.NewOrderEventAuditConsumer(brokers, cf.KafkaOrderTopic, cf.KafkaConsumerGroup, logger)
		go func() {
			if err := auditConsumer.Run(consumerCtx); err != nil {
				logger.Error().Err(err).Msg("order event audit consumer stopped")
			}
		}()
	} else {
		logger.Warn().Msg("kafka brokers not configured, order events disabled")
	}

	tokenMaker, err := token.NewPasetoMaker(cf.TokenSymmetricKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("create token maker failed")
	}

	userRepo := db.NewUserRepo(dbDao)
	categoryRepo := db.NewCategoryRepo(dbDao)
	productRepo := db.NewProductRepo(dbDao)
	cartRepo := db.NewCartRepo(dbDao)
	orderRepo := db.NewOrderRepo(dbDao)
	reportRepo := db.NewReportRepo(dbDao)
	reservation := db.NewStockReservationRepo(dbDao)

	authService := service.NewAuthService(userRepo, tokenMaker, cf.AccessTokenDuration)
	catalogService := service.NewCatalogService(categoryRepo, productRepo, reservation, productCache, logger)
	cartService := service.NewCartService(reservation, cartRepo, productCache, logger)
	orderService := service.NewOrderService(reservation, orderRepo, productCache, orderEvents, logger)
	reportService := service.NewReportService(reportRepo, productRepo)

	server := api.NewServer(
		handler.NewAuthHandler(authService, cf.AccessTokenDuration),
		handler.NewCatalogHandler(catalogService),
		handler.NewCartHandler(cartService),
		handler.NewOrderHandler(orderService),
		handler.NewAdminHandler(reportService, catalogService),
	)

	r := router.SetupRouter(server, tokenMaker, &logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cf.ServerPort),
		Handler: r,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutdownCompleted := make(chan struct{}, 1)
	go func() {
		<-sigChan
		logger.Info().Msg("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown error")
		}

		stopConsumer()
		if auditConsumer != nil {
			if err := auditConsumer.Close(); err != nil {
				logger.Error().Err(err).Msg("audit consumer close error")
			}
		}
		if kafkaProducer != nil {
			if err := kafkaProducer.Close(); err != nil {
				logger.Error().Err(err).Msg("kafka producer close error")
			}
		}
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("redis close error")
		}
		if sqlDB, err := conn.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Error().Err(err).Msg("postgres close error")
			}
		}

		shutdownCompleted <- struct{}{}
	}()

	logger.Info().Str("addr", srv.Addr).Msg("server starting")
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server stopped unexpectedly")
	}
	<-shutdownCompleted
	logger.Info().Msg("shutdown completed")
}
