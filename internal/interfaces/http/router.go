package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mariaalvez/vetclinic-api/internal/application/auth"
	"github.com/mariaalvez/vetclinic-api/internal/application/clinic"
	"github.com/mariaalvez/vetclinic-api/internal/application/registry"
	"github.com/mariaalvez/vetclinic-api/internal/application/reports"
	"github.com/mariaalvez/vetclinic-api/internal/application/services"
	appstock "github.com/mariaalvez/vetclinic-api/internal/application/stock"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
	"github.com/mariaalvez/vetclinic-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger         *appstock.LedgerUseCase
	TutorUC        *registry.TutorUseCase
	AnimalUC       *registry.AnimalUseCase
	VeterinarianUC *registry.VeterinarianUseCase
	ConsultationUC *clinic.ConsultationUseCase
	ExamUC         *clinic.ExamUseCase
	VaccinationUC  *clinic.VaccinationUseCase
	DewormingUC    *clinic.DewormingUseCase
	AppointmentUC  *clinic.AppointmentUseCase
	CompanyUC      *services.CompanyUseCase
	ServiceUC      *services.RecordUseCase
	ReportsUC      *reports.UseCase
	AuthUC         *auth.UseCase
	StockPDF       *pdf.StockReportGenerator
	ConsultPDF     *pdf.ConsultationReportGenerator
	ServicePDF     *pdf.ServiceReportGenerator

	Lots          repository.LotRepository
	Consultations repository.ConsultationRepository
	Consumptions  repository.ConsumptionRepository
	Vaccinations  repository.VaccinationRepository
	Dewormings    repository.DewormingRepository

	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Lotes de medicamento (protegido)
	lots := protected.Group("/lots")
	lotHandler := NewLotHandler(deps.Ledger, deps.Lots)
	lots.Post("/", lotHandler.Create)
	lots.Get("/", lotHandler.List)
	lots.Get("/:id", lotHandler.GetByID)
	lots.Delete("/:id", adminOnly, lotHandler.Delete)

	// Movimientos del libro (protegido)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.Ledger, deps.ReportsUC)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.History)
	movements.Post("/:id/reverse", movementHandler.Reverse)

	// Tutores (protegido)
	tutors := protected.Group("/tutors")
	tutorHandler := NewTutorHandler(deps.TutorUC)
	tutors.Post("/", tutorHandler.Create)
	tutors.Get("/", tutorHandler.List)
	tutors.Get("/:id", tutorHandler.GetByID)
	tutors.Put("/:id", tutorHandler.Update)
	tutors.Delete("/:id", tutorHandler.Delete)

	// Animales (protegido)
	animals := protected.Group("/animals")
	animalHandler := NewAnimalHandler(deps.AnimalUC)
	animals.Post("/", animalHandler.Create)
	animals.Get("/", animalHandler.List)
	animals.Get("/:id", animalHandler.GetByID)
	animals.Put("/:id", animalHandler.Update)
	animals.Delete("/:id", animalHandler.Delete)

	// Veterinarios (protegido; altas y bajas solo admin)
	vets := protected.Group("/veterinarians")
	vetHandler := NewVeterinarianHandler(deps.VeterinarianUC)
	vets.Post("/", adminOnly, vetHandler.Create)
	vets.Get("/", vetHandler.List)
	vets.Get("/:id", vetHandler.GetByID)
	vets.Put("/:id", adminOnly, vetHandler.Update)
	vets.Delete("/:id", adminOnly, vetHandler.Delete)

	// Consultas clínicas (protegido)
	consultations := protected.Group("/consultations")
	consultationHandler := NewConsultationHandler(deps.ConsultationUC, deps.Consultations, deps.Consumptions)
	consultations.Post("/", consultationHandler.Create)
	consultations.Get("/", consultationHandler.List)
	consultations.Get("/:id", consultationHandler.GetByID)
	consultations.Put("/:id", consultationHandler.Update)
	consultations.Delete("/:id", consultationHandler.Delete)

	// Catálogo de exámenes (protegido)
	exams := protected.Group("/exams")
	examHandler := NewExamHandler(deps.ExamUC)
	exams.Post("/", examHandler.Create)
	exams.Get("/", examHandler.List)
	exams.Get("/:id", examHandler.GetByID)
	exams.Put("/:id", examHandler.Update)
	exams.Delete("/:id", examHandler.Delete)

	// Empresas tercerizadas (protegido)
	companies := protected.Group("/companies")
	companyHandler := NewServiceCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)

	// Registros de servicios tercerizados (protegido)
	serviceRecords := protected.Group("/service-records")
	serviceRecordHandler := NewServiceRecordHandler(deps.ServiceUC)
	serviceRecords.Post("/", serviceRecordHandler.Create)
	serviceRecords.Get("/", serviceRecordHandler.List)
	serviceRecords.Get("/:id", serviceRecordHandler.GetByID)
	serviceRecords.Put("/:id", serviceRecordHandler.Update)
	serviceRecords.Delete("/:id", serviceRecordHandler.Delete)

	// Vacunaciones (protegido)
	vaccinations := protected.Group("/vaccinations")
	vaccinationHandler := NewVaccinationHandler(deps.VaccinationUC, deps.Vaccinations)
	vaccinations.Post("/", vaccinationHandler.Create)
	vaccinations.Get("/", vaccinationHandler.List)
	vaccinations.Get("/:id", vaccinationHandler.GetByID)
	vaccinations.Put("/:id", vaccinationHandler.Update)
	vaccinations.Delete("/:id", vaccinationHandler.Delete)

	// Vermifugaciones (protegido)
	dewormings := protected.Group("/dewormings")
	dewormingHandler := NewDewormingHandler(deps.DewormingUC, deps.Dewormings)
	dewormings.Post("/", dewormingHandler.Create)
	dewormings.Get("/", dewormingHandler.List)
	dewormings.Get("/:id", dewormingHandler.GetByID)
	dewormings.Put("/:id", dewormingHandler.Update)
	dewormings.Delete("/:id", dewormingHandler.Delete)

	// Agendamientos (protegido)
	appointments := protected.Group("/appointments")
	appointmentHandler := NewAppointmentHandler(deps.AppointmentUC)
	appointments.Post("/", appointmentHandler.Create)
	appointments.Get("/", appointmentHandler.List)
	appointments.Put("/:id", appointmentHandler.Update)
	appointments.Delete("/:id", appointmentHandler.Delete)

	// Reportes y panel gerencial (protegido)
	reportHandler := NewReportHandler(deps.ReportsUC, deps.StockPDF, deps.ConsultPDF, deps.ServicePDF)
	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/stock", reportHandler.Stock)
	reportsGroup.Get("/stock/pdf", reportHandler.StockPDF)
	reportsGroup.Get("/consultations", reportHandler.Consultations)
	reportsGroup.Get("/consultations/pdf", reportHandler.ConsultationsPDF)
	reportsGroup.Get("/services", reportHandler.Services)
	reportsGroup.Get("/services/pdf", reportHandler.ServicesPDF)
	reportsGroup.Get("/vaccinations", reportHandler.Vaccinations)
	reportsGroup.Get("/dewormings", reportHandler.Dewormings)
	protected.Get("/dashboard", reportHandler.Dashboard)
}
