package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"nubereats/internal/config"
	"nubereats/internal/graph"
	"nubereats/internal/handler"
	"nubereats/internal/infra/db"
	"nubereats/internal/infra/pubsub"
	infraRepo "nubereats/internal/infra/repository"
	"nubereats/internal/mail"
	"nubereats/internal/middleware"
	"nubereats/internal/server"
	"nubereats/internal/token"
	"nubereats/internal/usecase"
	auth "nubereats/internal/usecase/auth_usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if err := run(logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	//.envはあれば読む（本番は環境変数）
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.IsProd() {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	restaurantRepo := infraRepo.NewRestaurantGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	dishRepo := infraRepo.NewDishGormRepository(gormDB)
	paymentRepo := infraRepo.NewPaymentGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//注文イベント（REDIS_ADDRがなければプロセス内）
	var broker pubsub.Broker = pubsub.NewMemoryBroker()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		broker = pubsub.NewRedisBroker(rdb, "nubereats:")
	}
	var mirror *pubsub.KafkaMirror
	if len(cfg.Kafka.Brokers) > 0 {
		mirror = pubsub.NewKafkaMirror(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer mirror.Close()
	}
	events := pubsub.NewOrderEvents(broker, mirror, logger)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	tokens := token.NewService(cfg.JWT.Secret, cfg.JWT.TTL)
	mailer := mail.NewClient(cfg.Mailgun.BaseURL, cfg.Mailgun.APIKey, cfg.Mailgun.Domain, cfg.Mailgun.FromEmail)

	//Usecase生成
	resolver := &graph.Resolver{
		AccountSvc: graph.Accounts{
			Register: auth.NewRegisterUserUsecase(txManager, userRepo, hasher, idGen, mailer, logger),
			LoginUC:  auth.NewLoginUsecase(userRepo, verifier, tokens),
			Verify:   auth.NewVerifyEmailUsecase(txManager),
			Profile:  auth.NewProfileUsecase(txManager, userRepo, hasher, idGen, mailer, logger),
		},
		RestaurantSvc: usecase.NewRestaurantUsecase(restaurantRepo, categoryRepo),
		CategorySvc:   usecase.NewCategoryUsecase(categoryRepo, restaurantRepo),
		DishSvc:       usecase.NewDishUsecase(restaurantRepo, dishRepo),
		OrderSvc: usecase.NewOrderUsecase(
			txManager,
			orderRepo,
			usecase.OrderPolicy{StrictFlow: cfg.StrictOrderFlow},
			events,
			events,
			logger,
		),
		PaymentSvc: usecase.NewPaymentUsecase(paymentRepo, restaurantRepo),
		Logger:     logger,
	}
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		return err
	}

	//Handler生成
	gqlH := handler.NewGraphQLHandler(schema)
	healthH := handler.NewHealthHandler(sqlDB)

	//Server起動
	srv := server.New(":"+cfg.Port, cfg.CORSOrigins(), logger)
	server.RegisterRoutes(srv.Echo(), middleware.AuthJWT(tokens, userRepo, logger), gqlH, healthH)

	return srv.Start(ctx)
}
