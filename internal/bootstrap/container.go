package bootstrap

import (
	"context"
	"log"
	"time"

	"mockbot-be/internal/config"
	"mockbot-be/internal/controller"
	"mockbot-be/internal/pkg/logger"
	"mockbot-be/internal/pkg/mailer"
	"mockbot-be/internal/pkg/serverutils"
	"mockbot-be/internal/repository/unitofwork"
	"mockbot-be/internal/service"
	"mockbot-be/pkg/gemini"
	"mockbot-be/pkg/ratelimit"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const activityTopic = "activity-events"

const (
	chatRateLimitMessage = "Too many requests. Please wait a minute before trying again."
	authRateLimitMessage = "Too many attempts. Please try again later."
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	ChatController    controller.IChatController
	SessionController controller.ISessionController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.App.ClientURL,
		)
	} else {
		log.Println("[INFO] SMTP not configured, welcome emails disabled")
		emailService = mailer.NoopEmailService{}
	}

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	publisherService := service.NewPublisherService(activityTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, activityTopic, uowFactory)

	// 3. Rate limiters
	chatWindow := time.Duration(cfg.RateLimit.ChatWindowSeconds) * time.Second
	authWindow := time.Duration(cfg.RateLimit.AuthWindowSeconds) * time.Second

	var chatLimiter, authLimiter ratelimit.Limiter
	if cfg.RateLimit.Backend == "redis" {
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
		chatLimiter = ratelimit.NewRedisLimiter(rdb, "ratelimit:chat", cfg.RateLimit.ChatMaxRequests, chatWindow)
		authLimiter = ratelimit.NewRedisLimiter(rdb, "ratelimit:auth", cfg.RateLimit.AuthMaxRequests, authWindow)
		log.Println("[INFO] Using Redis rate limit backend")
	} else {
		chatLimiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.ChatMaxRequests, chatWindow)
		authLimiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.AuthMaxRequests, authWindow)
	}

	chatRateLimit := serverutils.RateLimitMiddleware(chatLimiter, chatRateLimitMessage)
	authRateLimit := serverutils.RateLimitMiddleware(authLimiter, authRateLimitMessage)

	// 4. AI bridge
	generator := gemini.NewClient(
		cfg.Keys.GoogleGemini,
		cfg.Ai.Model,
		time.Duration(cfg.Ai.TimeoutSeconds)*time.Second,
	)
	if cfg.Keys.GoogleGemini == "" {
		log.Println("[WARN] GEMINI_API_KEY is not set, chat requests will fail")
	}

	// 5. Services
	authService := service.NewAuthService(uowFactory, emailService, publisherService)
	userService := service.NewUserService(uowFactory, cfg.App.UploadDir, cfg.App.BaseURL)
	sessionService := service.NewSessionService(uowFactory, publisherService)
	chatService := service.NewChatService(generator, sysLogger, publisherService)

	// 6. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService, userService, authRateLimit),
		ChatController:    controller.NewChatController(chatService, chatRateLimit),
		SessionController: controller.NewSessionController(sessionService),

		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
