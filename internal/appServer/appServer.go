// launching the server, DB, redis, workers
package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kgadrw/profit-backend/config"
	repository "github.com/Kgadrw/profit-backend/internal/database/postgres"
	redisCache "github.com/Kgadrw/profit-backend/internal/database/redis"
	"github.com/Kgadrw/profit-backend/internal/notifier"
	"github.com/Kgadrw/profit-backend/internal/service"
	"github.com/Kgadrw/profit-backend/internal/transport"
	"github.com/Kgadrw/profit-backend/internal/worker"
	"github.com/Kgadrw/profit-backend/pkg/kafka"
	"github.com/Kgadrw/profit-backend/pkg/mailer"
	"github.com/Kgadrw/profit-backend/pkg/postgres"
	pkgRedis "github.com/Kgadrw/profit-backend/pkg/redis"
	"github.com/Kgadrw/profit-backend/pkg/telegram"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	reminderRepo := repository.NewReminderRepository(db)
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize redis
	var redisClient *goredis.Client
	var reportCache service.ReportCache
	if cfg.Redis.Enabled {
		redisClient = pkgRedis.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()
		reportCache = redisCache.NewCacheRepository(redisClient, cfg.App.ReportCacheTTL)
		logrus.Info("Redis cache initialized")
	} else {
		logrus.Warn("Redis disabled, reports are uncached and rate limiting is off")
	}

	// Initialize Telegram bot
	var telegramBot *telegram.Bot
	if cfg.Telegram.Enabled && cfg.Telegram.BotToken != "" {
		telegramBot = telegram.NewBot(cfg.Telegram.BotToken)
		logrus.Info("Telegram bot initialized")
	} else {
		logrus.Warn("Telegram bot not configured, telegram pushes disabled")
	}

	// Initialize kafka producer
	var producer kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
	}

	// Initialize notifier
	smtpMailer := mailer.NewMailer(cfg.Email.Host, cfg.Email.Port, cfg.Email.Username, cfg.Email.Password, cfg.Email.From)
	emailNotifier := notifier.NewEmailNotifier(smtpMailer, telegramBot)

	// Initialize services
	reminderService := service.NewReminderService(reminderRepo, clientRepo, userRepo, emailNotifier)
	clientService := service.NewClientService(clientRepo)
	productService := service.NewProductService(productRepo)
	saleService := service.NewSaleService(saleRepo, productRepo, clientRepo, producer)
	userService := service.NewUserService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	reportService := service.NewReportService(saleRepo, reminderRepo, clientRepo, productRepo, reportCache)

	// Start the reminder sweep worker
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweepWorker := worker.NewReminderSweepWorker(reminderService, cfg.Worker.SweepInterval)
	go sweepWorker.Start(ctx)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(userService)
	reminderHandler := transport.NewReminderHandler(reminderService)
	clientHandler := transport.NewClientHandler(clientService)
	productHandler := transport.NewProductHandler(productService)
	saleHandler := transport.NewSaleHandler(saleService)
	reportHandler := transport.NewReportHandler(reportService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	routerCfg := transport.RouterConfig{
		JWTSecret:   cfg.JWT.Secret,
		RateLimit:   cfg.App.RateLimit,
		RedisClient: redisClient,
	}

	srv := new(Server)
	go func() {
		handler := transport.InitRoutes(routerCfg, authHandler, reminderHandler, clientHandler, productHandler, saleHandler, reportHandler)
		if err := srv.Run(cfg, handler); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	// Stop scheduling further sweeps; an in-flight tick finishes on its own.
	cancel()

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
