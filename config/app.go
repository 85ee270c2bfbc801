package config

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"gigwork-chat-app/config/common"
	"gigwork-chat-app/config/logger"
	"gigwork-chat-app/dto"
	"gigwork-chat-app/handler"
	"gigwork-chat-app/hub"
	"gigwork-chat-app/middleware"
	"gigwork-chat-app/notifier"
	"gigwork-chat-app/repository"
	"gigwork-chat-app/routes"
	"gigwork-chat-app/security"
	"gigwork-chat-app/storage"
	"gigwork-chat-app/usecase"
)

type AppConfig struct {
	App        *fiber.App
	Config     *common.Config
	Validate   *validator.Validate
	Logger     *logrus.Logger
	DBConfig   *DBConfig
	JWT        *security.JWT
	Middleware *middleware.Middleware
}

func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

func NewValidator() *validator.Validate {
	return validator.New()
}

func RunServer() {
	newConfig := common.NewViper()
	app := NewFiber(newConfig)
	appLogger := logger.NewLogger()
	log := NewLogger()
	newDB := NewDB(newConfig, appLogger)
	newValidator := NewValidator()
	newJWT := security.NewJWT(newConfig)
	newMiddleware := middleware.NewMiddleware(newConfig, newJWT, log)

	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:8080",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	App(&AppConfig{
		App:        app,
		Config:     newConfig,
		Validate:   newValidator,
		Logger:     log,
		DBConfig:   newDB,
		JWT:        newJWT,
		Middleware: newMiddleware,
	})

	if err := app.Listen(":" + newConfig.GetServerPort()); err != nil {
		log.WithError(err).Errorf("Failed to start server: %v", err)
	}
}

func App(aC *AppConfig) {
	db := aC.DBConfig.GetDB()

	newChatRepository := repository.NewChatRepository(db)
	newMessageRepository := repository.NewMessageRepository(db)
	newJobRepository := repository.NewJobRepository(db)
	newUserRepository := repository.NewUserRepository(db)
	newNotificationRepository := repository.NewNotificationRepository(db)

	// Media goes to Cloudinary when configured, local disk otherwise.
	var blobs storage.BlobStore
	if url := aC.Config.GetCloudinaryURL(); url != "" {
		cloud, err := storage.NewCloudinaryStore(url)
		if err != nil {
			aC.Logger.WithError(err).Fatal("cloudinary configuration is broken")
		}
		blobs = cloud
	} else {
		blobs = storage.NewDiskStore(aC.Config.GetUploadDir())
	}

	pusher := notifier.NewExpoPusher(aC.Config.GetPushEndpoint(), aC.Logger)

	newNotificationUsecase := usecase.NewNotificationUsecase(newNotificationRepository, newUserRepository, pusher, aC.Logger)
	newChatUsecase := usecase.NewChatUsecase(newChatRepository, newJobRepository, newUserRepository, newNotificationUsecase, aC.Logger)
	newMessageUsecase := usecase.NewMessageUsecase(newChatRepository, newMessageRepository, blobs, aC.Logger)
	newOfferUsecase := usecase.NewOfferUsecase(newChatRepository, newJobRepository, newNotificationUsecase, aC.Logger)
	newUserUsecase := usecase.NewUserUsecase(newUserRepository, aC.Logger)

	newHub := hub.New(aC.Logger)
	if addr, password, redisDB := aC.Config.GetRedisConfig(); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: redisDB})
		broker := hub.NewRedisBroker(rdb, newHub, aC.Logger)
		go broker.Run(context.Background())
	}

	calls := hub.NewCallRegistry(aC.Config.GetCallRingTimeout(), func(call hub.Call) {
		event := dto.NewEvent(dto.EventCallEnded, fiber.Map{
			"chatId": call.ChatID,
			"reason": "timeout",
		})
		newHub.EmitUser(call.CallerID, event)
		newHub.EmitUser(call.CalleeID, event)
	})

	wsHandler := handler.NewWebSocketHandler(
		aC.Logger, aC.Validate, aC.JWT, newHub, calls,
		newChatUsecase, newMessageUsecase, newOfferUsecase, newUserUsecase,
	)
	newChatHandler := handler.NewChatHandler(newChatUsecase, newMessageUsecase, newOfferUsecase, newHub, aC.Validate, aC.Logger)
	newUserHandler := handler.NewUserHandler(newUserUsecase, aC.Validate, aC.Logger)

	route := routes.ConfigRoute{
		App:         aC.App,
		Middleware:  aC.Middleware,
		UserHandler: newUserHandler,
		ChatHandler: newChatHandler,
	}
	route.GetRoute()
	route.GetWebSocketRoute(wsHandler)
}
