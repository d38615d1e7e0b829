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

	"github.com/mariaalvez/vetclinic-api/internal/application/auth"
	"github.com/mariaalvez/vetclinic-api/internal/application/clinic"
	"github.com/mariaalvez/vetclinic-api/internal/application/registry"
	"github.com/mariaalvez/vetclinic-api/internal/application/reports"
	"github.com/mariaalvez/vetclinic-api/internal/application/services"
	appstock "github.com/mariaalvez/vetclinic-api/internal/application/stock"
	infrapdf "github.com/mariaalvez/vetclinic-api/internal/infrastructure/pdf"
	"github.com/mariaalvez/vetclinic-api/internal/infrastructure/postgres"
	"github.com/mariaalvez/vetclinic-api/internal/infrastructure/viacep"
	httpRouter "github.com/mariaalvez/vetclinic-api/internal/interfaces/http"
	"github.com/mariaalvez/vetclinic-api/pkg/config"
	"github.com/mariaalvez/vetclinic-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	lotRepo := postgres.NewLotRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	consumptionRepo := postgres.NewConsumptionRepository(pool)
	consultationRepo := postgres.NewConsultationRepository(pool)
	vaccinationRepo := postgres.NewVaccinationRepository(pool)
	dewormingRepo := postgres.NewDewormingRepository(pool)
	appointmentRepo := postgres.NewAppointmentRepository(pool)
	tutorRepo := postgres.NewTutorRepository(pool)
	animalRepo := postgres.NewAnimalRepository(pool)
	vetRepo := postgres.NewVeterinarianRepository(pool)
	examRepo := postgres.NewExamRepository(pool)
	companyRepo := postgres.NewServiceCompanyRepository(pool)
	serviceRecordRepo := postgres.NewServiceRecordRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Libro de movimientos: todas las escrituras de stock pasan por acá.
	ledgerUC := appstock.NewLedgerUseCase(txRunner)

	// ViaCEP: autocompleta direcciones de tutores. Opcional por configuración.
	var lookup registry.AddressLookup
	if cfg.CEP.Enabled {
		opts := []viacep.Option{}
		if cfg.CEP.BaseURL != "" {
			opts = append(opts, viacep.WithBaseURL(cfg.CEP.BaseURL))
		}
		lookup = viacep.NewClient(opts...)
	}

	tutorUC := registry.NewTutorUseCase(tutorRepo, animalRepo, lookup)
	animalUC := registry.NewAnimalUseCase(animalRepo, tutorRepo)
	vetUC := registry.NewVeterinarianUseCase(vetRepo)

	consultationUC := clinic.NewConsultationUseCase(txRunner, animalRepo, vetRepo, examRepo)
	examUC := clinic.NewExamUseCase(examRepo)
	vaccinationUC := clinic.NewVaccinationUseCase(txRunner, animalRepo, lotRepo)
	dewormingUC := clinic.NewDewormingUseCase(txRunner, animalRepo, lotRepo)
	appointmentUC := clinic.NewAppointmentUseCase(appointmentRepo, animalRepo, tutorRepo)

	companyUC := services.NewCompanyUseCase(companyRepo, serviceRecordRepo)
	serviceUC := services.NewRecordUseCase(serviceRecordRepo, companyRepo, animalRepo)

	reportsUC := reports.NewUseCase(
		lotRepo, movementRepo, consultationRepo, vaccinationRepo, dewormingRepo,
		appointmentRepo, serviceRecordRepo, companyRepo, animalRepo, vetRepo,
	)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "VetClinic API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:         ledgerUC,
		TutorUC:        tutorUC,
		AnimalUC:       animalUC,
		VeterinarianUC: vetUC,
		ConsultationUC: consultationUC,
		ExamUC:         examUC,
		VaccinationUC:  vaccinationUC,
		DewormingUC:    dewormingUC,
		AppointmentUC:  appointmentUC,
		CompanyUC:      companyUC,
		ServiceUC:      serviceUC,
		ReportsUC:      reportsUC,
		AuthUC:         authUC,
		StockPDF:       infrapdf.NewStockReportGenerator(),
		ConsultPDF:     infrapdf.NewConsultationReportGenerator(),
		ServicePDF:     infrapdf.NewServiceReportGenerator(),
		Lots:           lotRepo,
		Consultations:  consultationRepo,
		Consumptions:   consumptionRepo,
		Vaccinations:   vaccinationRepo,
		Dewormings:     dewormingRepo,
		JWTSecret:      cfg.JWT.Secret,
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
