package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	httpadapter "atelier/internal/adapters/in/http"
	"atelier/internal/adapters/out/aramex"
	"atelier/internal/adapters/out/brevo"
	"atelier/internal/adapters/out/postgres"
	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/jobs"

	"gorm.io/gorm"
)

const carrierName = "aramex"

// CompositionRoot wires adapters into use case handlers. All handlers share
// one unit of work factory; each Handle call opens its own transaction.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	carrier    *aramex.Client
	notifier   *brevo.Notifier
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph. Fails only when the embedded
// notification templates do not parse.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	notifier, err := brevo.NewNotifier(brevo.Config{
		BaseURL:   config.BrevoBaseURL,
		APIKey:    config.BrevoAPIKey,
		FromName:  config.BrevoFromName,
		FromEmail: config.BrevoFromEmail,
	}, &http.Client{Timeout: 10 * time.Second})
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("build notifier: %w", err)
	}

	carrier := aramex.NewClient(aramex.Config{
		BaseURL:        config.AramexBaseURL,
		APIKey:         config.AramexAPIKey,
		Secret:         config.AramexSecret,
		AccountNumber:  config.AramexAccountNumber,
		ShipperName:    config.ShipperName,
		ShipperAddress: config.ShipperAddress,
		ShipperPhone:   config.ShipperPhone,
	}, nil)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		carrier:    carrier,
		notifier:   notifier,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateWorkOrderCommandHandler() commands.CreateWorkOrderCommandHandler {
	return commands.NewCreateWorkOrderCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateIngestExternalOrderCommandHandler() commands.IngestExternalOrderCommandHandler {
	return commands.NewIngestExternalOrderCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateSubmitMeasurementCommandHandler() commands.SubmitMeasurementCommandHandler {
	return commands.NewSubmitMeasurementCommandHandler(
		c.createUoWFactory(), c.notifier, c.logger, c.config.OpsEmail)
}

func (c *CompositionRoot) CreateRequestTransitionCommandHandler() commands.RequestTransitionCommandHandler {
	return commands.NewRequestTransitionCommandHandler(c.createUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateSubmitQCResultCommandHandler() commands.SubmitQCResultCommandHandler {
	return commands.NewSubmitQCResultCommandHandler(
		c.createUoWFactory(), c.notifier, c.logger, c.config.OpsEmail)
}

func (c *CompositionRoot) CreateBookShipmentCommandHandler() commands.BookShipmentCommandHandler {
	return commands.NewBookShipmentCommandHandler(
		c.createUoWFactory(), c.carrier, c.notifier, c.logger, carrierName)
}

func (c *CompositionRoot) CreateApplyCarrierUpdateCommandHandler() commands.ApplyCarrierUpdateCommandHandler {
	return commands.NewApplyCarrierUpdateCommandHandler(c.createUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCreateTaskCommandHandler() commands.CreateTaskCommandHandler {
	return commands.NewCreateTaskCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateUpdateTaskStatusCommandHandler() commands.UpdateTaskStatusCommandHandler {
	return commands.NewUpdateTaskStatusCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateAddNoteCommandHandler() commands.AddNoteCommandHandler {
	return commands.NewAddNoteCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateSendTaskRemindersCommandHandler() commands.SendTaskRemindersCommandHandler {
	return commands.NewSendTaskRemindersCommandHandler(
		c.createUoWFactory(), c.notifier, c.logger, c.config.OpsEmail)
}

func (c *CompositionRoot) CreateGetWorkOrderQueryHandler() queries.GetWorkOrderQueryHandler {
	return queries.NewGetWorkOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListWorkOrdersQueryHandler() queries.ListWorkOrdersQueryHandler {
	return queries.NewListWorkOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAuditRecordsQueryHandler() queries.ListAuditRecordsQueryHandler {
	return queries.NewListAuditRecordsQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every use case handler into the inbound HTTP
// adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateWorkOrderCommandHandler(),
		c.CreateIngestExternalOrderCommandHandler(),
		c.CreateSubmitMeasurementCommandHandler(),
		c.CreateRequestTransitionCommandHandler(),
		c.CreateSubmitQCResultCommandHandler(),
		c.CreateBookShipmentCommandHandler(),
		c.CreateApplyCarrierUpdateCommandHandler(),
		c.CreateCreateTaskCommandHandler(),
		c.CreateUpdateTaskStatusCommandHandler(),
		c.CreateAddNoteCommandHandler(),
		c.CreateGetWorkOrderQueryHandler(),
		c.CreateListWorkOrdersQueryHandler(),
		c.CreateListAuditRecordsQueryHandler(),
		httpadapter.WebhookSecrets{
			Orders:       c.config.OrderWebhookSecret,
			Measurements: c.config.MeasurementWebhookSecret,
			Carrier:      c.config.CarrierWebhookSecret,
		},
	)
}

// CreateJobManager wires the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSendTaskRemindersCommandHandler(),
		c.config.ReminderSchedule,
		c.logger,
	)
}

// FuncUoWFactory adapts a plain function to the commands.UoWFactory
// interface, so the root can hand out factories bound to its gorm pool.
type FuncUoWFactory func() commands.UoW

// Create returns a fresh unit of work.
func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
