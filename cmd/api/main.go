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
	"github.com/tu-usuario/prestamos-pro/internal/application/lending"
	"github.com/tu-usuario/prestamos-pro/internal/application/usecase"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
	"github.com/tu-usuario/prestamos-pro/internal/infrastructure/memory"
	infrapdf "github.com/tu-usuario/prestamos-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/prestamos-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/prestamos-pro/internal/infrastructure/rediscache"
	httpRouter "github.com/tu-usuario/prestamos-pro/internal/interfaces/http"
	"github.com/tu-usuario/prestamos-pro/pkg/config"
	"github.com/tu-usuario/prestamos-pro/pkg/idgen"
	"github.com/tu-usuario/prestamos-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Almacenamiento: memoria (por defecto) o PostgreSQL
	var (
		customerRepo repository.CustomerRepository
		loanRepo     repository.LoanRepository
		paymentRepo  repository.PaymentRepository
		txRunner     lending.LedgerTxRunner
	)
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		customerRepo = postgres.NewCustomerRepository(pool)
		loanRepo = postgres.NewLoanRepository(pool)
		paymentRepo = postgres.NewPaymentRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	default:
		store := memory.NewStore()
		customerRepo = memory.NewCustomerRepository(store)
		loanRepo = memory.NewLoanRepository(store)
		paymentRepo = memory.NewPaymentRepository(store)
		txRunner = memory.NewTxRunner(store)
	}

	// Cache de lectura (opcional)
	var cache lending.LedgerCache
	if cfg.Redis.Addr != "" {
		redisCache, err := rediscache.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		cache = redisCache
		log.Component("cache").Info().Str("addr", cfg.Redis.Addr).Msg("cache de ledger habilitado")
	}

	ids := idgen.NewUUIDGenerator()
	customerUC := usecase.NewCustomerUseCase(customerRepo, ids)
	loanUC := lending.NewLoanUseCase(customerRepo, loanRepo, paymentRepo, txRunner, cache, ids)
	statementUC := lending.NewStatementUseCase(
		customerRepo, loanRepo, paymentRepo, infrapdf.NewMarotoStatementGenerator(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	// swagger.New hace panic si el archivo no existe, así que se verifica antes.
	const swaggerSpec = "./docs/swagger.json"
	if _, err := os.Stat(swaggerSpec); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpec,
			Path:     "docs",
			Title:    "Prestamos Pro API",
		}))
	} else {
		log.Warn().Str("file", swaggerSpec).Msg("spec de swagger no encontrado, UI deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC:  customerUC,
		LoanUC:      loanUC,
		StatementUC: statementUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
