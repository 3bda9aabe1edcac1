package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/in100tiva/PDV/internal/application/alerts"
	"github.com/in100tiva/PDV/internal/application/auth"
	"github.com/in100tiva/PDV/internal/application/checkout"
	"github.com/in100tiva/PDV/internal/application/credit"
	"github.com/in100tiva/PDV/internal/application/pos"
	"github.com/in100tiva/PDV/internal/application/stock"
	"github.com/in100tiva/PDV/internal/application/usecase"
	infracache "github.com/in100tiva/PDV/internal/infrastructure/cache"
	infrapdf "github.com/in100tiva/PDV/internal/infrastructure/pdf"
	"github.com/in100tiva/PDV/internal/infrastructure/postgres"
	httpRouter "github.com/in100tiva/PDV/internal/interfaces/http"
	"github.com/in100tiva/PDV/internal/scheduler"
	"github.com/in100tiva/PDV/pkg/config"
	"github.com/in100tiva/PDV/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	creditRepo := postgres.NewCreditRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	// Cache de catálogo. REDIS_ADDR vazio roda sem cache.
	var productCache usecase.ProductCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis indisponível, seguindo sem cache de catálogo")
		} else {
			defer rdb.Close()
			ttl := time.Duration(cfg.Redis.TTLSecs) * time.Second
			productCache = infracache.NewProductCache(rdb, ttl, log)
			log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de catálogo ligado")
		}
	}

	productUC := usecase.NewProductUseCase(productRepo, productCache)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	saleUC := usecase.NewSaleUseCase(saleRepo)
	reportUC := usecase.NewReportUseCase(reportRepo)
	receiptUC := usecase.NewReceiptUseCase(saleRepo, storeRepo, productRepo, infrapdf.NewCupomGenerator())

	stockUC := stock.NewLedgerUseCase(postgres.NewTxRunner(pool), stockRepo, movementRepo)
	posService := pos.NewService(productRepo, customerRepo)
	checkoutUC := checkout.NewUseCase(postgres.NewCheckoutTxRunner(pool), posService, log)
	creditUC := credit.NewUseCase(creditRepo)
	alertsUC := alerts.NewUseCase(storeRepo, stockRepo, alertRepo, log)

	authUC := auth.NewUseCase(userRepo, storeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.App.CompanyID)

	// Varredura periódica de estoque baixo/zerado
	var sched *scheduler.Scheduler
	if cfg.Scheduler.StockAlertCron != "" {
		sched = scheduler.New(alertsUC, cfg.App.CompanyID, log)
		if err := sched.Start(cfg.Scheduler.StockAlertCron); err != nil {
			log.Fatal().Err(err).Msg("agendar varredura de estoque")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PDV API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		CategoryUC: categoryUC,
		CustomerUC: customerUC,
		SaleUC:     saleUC,
		ReceiptUC:  receiptUC,
		ReportUC:   reportUC,
		POSService: posService,
		CheckoutUC: checkoutUC,
		StockUC:    stockUC,
		CreditUC:   creditUC,
		AlertsUC:   alertsUC,
		CompanyID:  cfg.App.CompanyID,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
