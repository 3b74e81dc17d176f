package bootstrap

import (
	"context"
	"log"

	"apto-gateway-be/internal/config"
	"apto-gateway-be/internal/controller"
	"apto-gateway-be/internal/handler"
	"apto-gateway-be/internal/pkg/logger"
	"apto-gateway-be/internal/pkg/mailer"
	"apto-gateway-be/internal/pkg/whatsapp"
	"apto-gateway-be/internal/repository/implementation"
	"apto-gateway-be/internal/repository/memory"
	"apto-gateway-be/internal/repository/unitofwork"
	"apto-gateway-be/internal/service"
	"apto-gateway-be/internal/websocket"

	pktNats "apto-gateway-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	OAuthController   controller.IOAuthController
	FeatureController controller.IFeatureController
	UserController    controller.IUserController
	PackageController controller.IPackageController
	PaymentController controller.IPaymentController
	AdminController   controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	whatsappSender := whatsapp.NewSender(cfg.Whatsapp.BaseURL, cfg.Whatsapp.APIKey)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	accessCache := memory.NewAccessCache()

	publisherService := service.NewPublisherService(cfg.Keys.OtpDispatchTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.OtpDispatchTopic,
		uowFactory,
		whatsappSender,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, emailService, publisherService, natsPub)
	oauthService := service.NewOAuthService(uowFactory)

	entitlementService := service.NewEntitlementService(uowFactory, accessCache, cfg.App.ToolBaseURL)
	userService := service.NewUserService(uowFactory)
	featureService := service.NewFeatureService(uowFactory)
	packageService := service.NewPackageService(uowFactory)
	paymentService := service.NewPaymentService(uowFactory, natsPub, cfg.Payment.ProofDir, cfg.Keys.MidtransServerKey)
	adminService := service.NewAdminService(uowFactory, entitlementService, emailService, natsPub)

	// 3.5 Notification System Infrastructure
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		AuthController:      controller.NewAuthController(authService),
		OAuthController:     controller.NewOAuthController(oauthService),
		FeatureController:   controller.NewFeatureController(entitlementService),
		UserController:      controller.NewUserController(entitlementService, packageService, userService),
		PackageController:   controller.NewPackageController(packageService),
		PaymentController:   controller.NewPaymentController(paymentService),
		AdminController:     controller.NewAdminController(authService, adminService, featureService, packageService),

		ConsumerService: consumerService,
	}
}
