package app

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
	"github.com/vidflow/vidflow_server/internal/auth"
	"github.com/vidflow/vidflow_server/internal/handlers"
	handler_analytics "github.com/vidflow/vidflow_server/internal/handlers/analytics"
	"github.com/vidflow/vidflow_server/internal/middlewares"
	"github.com/vidflow/vidflow_server/internal/notifier"
	"github.com/vidflow/vidflow_server/internal/payments"
	"github.com/vidflow/vidflow_server/internal/store"
	"github.com/vidflow/vidflow_server/internal/store/admin"
	"github.com/vidflow/vidflow_server/internal/store/analytics"
	"github.com/vidflow/vidflow_server/internal/workflow"
	"github.com/vidflow/vidflow_server/migrations"
)

var (
	authKey            = securecookie.GenerateRandomKey(64)
	encryptionKey      = securecookie.GenerateRandomKey(32)
	adminAuthKey       = securecookie.GenerateRandomKey(64)
	adminEncryptionKey = securecookie.GenerateRandomKey(32)
)

type Application struct {
	Logger       *log.Logger
	RedisClient  *redis.Client
	SessionStore *sessions.CookieStore
	db           *store.DB

	Auth              *auth.PasswordAuth
	MiddlewareHandler *middlewares.MiddlewareHandler
	Dispatcher        *notifier.QueueDispatcher

	UserHandler            *handlers.UserHandler
	DashboardHandler       *handlers.DashboardHandler
	VideoHandler           *handlers.VideoHandler
	VideoLogHandler        *handlers.VideoLogHandler
	ChannelHandler         *handlers.ChannelHandler
	FreelancerHandler      *handlers.FreelancerHandler
	FreelancerPanelHandler *handlers.FreelancerPanelHandler
	SettingsHandler        *handlers.SettingsHandler
	ExportHandler          *handlers.ExportHandler
	SubscriptionHandler    *handlers.SubscriptionHandler
	ProductionHandler      *handler_analytics.ProductionHandler
	AdminHandler           *handlers.AdminHandler
}

func NewApplication(ctx context.Context) (*Application, error) {
	logger := log.New(os.Stdout, "LOGGING: ", log.Ldate|log.Ltime)
	adminLogger := log.New(os.Stdout, "ADMIN LOGGING: ", log.Ldate|log.Ltime)

	db, err := store.ConnectDB()
	if err != nil {
		logger.Println("Error connecting to db")
		return nil, err
	}

	err = store.MigrateFS(db, migrations.FS, ".")
	if err != nil {
		logger.Println("PANIC: database migration failed, exiting...")
		return nil, err
	}
	logger.Println("Database migrated...")

	redisClient, err := store.ConnectRedis()
	if err != nil {
		logger.Println("Error connecting to redis")
		return nil, err
	}

	chConn, err := store.ConnectClickhouse()
	if err != nil {
		logger.Println("Error connecting to clickhouse")
		return nil, err
	}

	err = store.MigrateClickhouse()
	if err != nil {
		logger.Println("PANIC: Clickhouse migration failed, exiting...")
		return nil, err
	}

	env := os.Getenv("ENV")
	var userOptions = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	}

	var adminOptions = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	}

	if env == "production" {
		userOptions.Secure = true
		userOptions.SameSite = http.SameSiteNoneMode
		userOptions.Domain = os.Getenv("SESSION_DOMAIN")

		adminOptions.Secure = true
		adminOptions.SameSite = http.SameSiteNoneMode
		adminOptions.Domain = os.Getenv("SESSION_DOMAIN")
	} else {
		userOptions.Secure = false
		userOptions.SameSite = http.SameSiteLaxMode
		userOptions.Domain = ""

		adminOptions.Secure = false
		adminOptions.SameSite = http.SameSiteLaxMode
		adminOptions.Domain = ""
	}

	sessionStore := sessions.NewCookieStore(authKey, encryptionKey)
	sessionStore.Options = userOptions

	adminSessionStore := sessions.NewCookieStore(adminAuthKey, adminEncryptionKey)
	adminSessionStore.Options = adminOptions

	userStore := store.NewSQLUserStore(db)
	dashboardStore := store.NewSQLDashboardStore(db)
	videoStore := store.NewSQLVideoStore(db)
	videoLogStore := store.NewSQLVideoLogStore(db)
	channelStore := store.NewSQLChannelStore(db)
	freelancerStore := store.NewSQLFreelancerStore(db)
	settingsStore := store.NewSQLSettingsStore(db)
	subscriptionStore := store.NewSQLSubscriptionStore(db)
	resetCodeStore := store.NewRedisResetCodeStore(redisClient)

	productionStore := analytics.NewClickhouseProductionStore(chConn)

	adminCompanyStore := admin.NewSQLAdminCompanyStore(db)

	sender := &notifier.ChannelSender{
		WhatsApp: notifier.NewWhatsAppClient(),
		Email:    notifier.NewEmailSenderFromEnv(),
	}
	dispatcher := notifier.NewQueueDispatcher(sender, logger)
	dispatcher.Start(ctx)

	workflowService := workflow.NewService(videoStore, userStore, freelancerStore, settingsStore, dispatcher, productionStore, logger)

	passwordAuth := auth.NewPasswordAuth(logger, sessionStore, adminSessionStore, userStore, resetCodeStore, dispatcher)

	pixClient := payments.NewPixClientFromEnv()

	userHandler := handlers.NewUserHandler(userStore, logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardStore, logger)
	videoHandler := handlers.NewVideoHandler(videoStore, freelancerStore, workflowService, logger)
	videoLogHandler := handlers.NewVideoLogHandler(videoLogStore, logger)
	channelHandler := handlers.NewChannelHandler(channelStore, logger)
	freelancerHandler := handlers.NewFreelancerHandler(freelancerStore, logger)
	freelancerPanelHandler := handlers.NewFreelancerPanelHandler(videoStore, workflowService, logger)
	settingsHandler := handlers.NewSettingsHandler(settingsStore, logger)
	exportHandler := handlers.NewExportHandler(videoLogStore, logger)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionStore, pixClient, logger)

	productionHandler := handler_analytics.NewProductionHandler(productionStore, logger)

	adminHandler := handlers.NewAdminHandler(adminCompanyStore, adminLogger)

	middlewareHandler := middlewares.NewMiddlewareHandler(logger, adminLogger, sessionStore, adminSessionStore)

	app := &Application{
		Logger:                 logger,
		RedisClient:            redisClient,
		SessionStore:           sessionStore,
		db:                     db,
		Auth:                   passwordAuth,
		MiddlewareHandler:      middlewareHandler,
		Dispatcher:             dispatcher,
		UserHandler:            userHandler,
		DashboardHandler:       dashboardHandler,
		VideoHandler:           videoHandler,
		VideoLogHandler:        videoLogHandler,
		ChannelHandler:         channelHandler,
		FreelancerHandler:      freelancerHandler,
		FreelancerPanelHandler: freelancerPanelHandler,
		SettingsHandler:        settingsHandler,
		ExportHandler:          exportHandler,
		SubscriptionHandler:    subscriptionHandler,
		ProductionHandler:      productionHandler,
		AdminHandler:           adminHandler,
	}

	return app, nil
}
