// Package http is the inbound HTTP adapter: route registration, actor
// extraction, role checks, webhook signature verification and the mapping
// from the application error taxonomy to status codes.
package http

import (
	"errors"
	"net/http"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/rbac"

	"github.com/labstack/echo/v4"
)

const (
	headerActorID   = "X-Actor-Id"
	headerActorRole = "X-Actor-Role"
)

// WebhookSecrets holds the shared secrets for inbound webhook signature
// verification. Every secret is mandatory: an unsigned webhook is rejected,
// never trusted.
type WebhookSecrets struct {
	Orders       string
	Measurements string
	Carrier      string
}

// Server routes HTTP requests to the application use cases.
type Server struct {
	createWorkOrderHandler     commands.CreateWorkOrderCommandHandler
	ingestExternalOrderHandler commands.IngestExternalOrderCommandHandler
	submitMeasurementHandler   commands.SubmitMeasurementCommandHandler
	requestTransitionHandler   commands.RequestTransitionCommandHandler
	submitQCResultHandler      commands.SubmitQCResultCommandHandler
	bookShipmentHandler        commands.BookShipmentCommandHandler
	applyCarrierUpdateHandler  commands.ApplyCarrierUpdateCommandHandler
	createTaskHandler          commands.CreateTaskCommandHandler
	updateTaskStatusHandler    commands.UpdateTaskStatusCommandHandler
	addNoteHandler             commands.AddNoteCommandHandler

	getWorkOrderHandler     queries.GetWorkOrderQueryHandler
	listWorkOrdersHandler   queries.ListWorkOrdersQueryHandler
	listAuditRecordsHandler queries.ListAuditRecordsQueryHandler

	webhookSecrets WebhookSecrets
}

// NewServer creates the HTTP server over the given use case handlers.
func NewServer(
	createWorkOrderHandler commands.CreateWorkOrderCommandHandler,
	ingestExternalOrderHandler commands.IngestExternalOrderCommandHandler,
	submitMeasurementHandler commands.SubmitMeasurementCommandHandler,
	requestTransitionHandler commands.RequestTransitionCommandHandler,
	submitQCResultHandler commands.SubmitQCResultCommandHandler,
	bookShipmentHandler commands.BookShipmentCommandHandler,
	applyCarrierUpdateHandler commands.ApplyCarrierUpdateCommandHandler,
	createTaskHandler commands.CreateTaskCommandHandler,
	updateTaskStatusHandler commands.UpdateTaskStatusCommandHandler,
	addNoteHandler commands.AddNoteCommandHandler,
	getWorkOrderHandler queries.GetWorkOrderQueryHandler,
	listWorkOrdersHandler queries.ListWorkOrdersQueryHandler,
	listAuditRecordsHandler queries.ListAuditRecordsQueryHandler,
	webhookSecrets WebhookSecrets,
) *Server {
	return &Server{
		createWorkOrderHandler:     createWorkOrderHandler,
		ingestExternalOrderHandler: ingestExternalOrderHandler,
		submitMeasurementHandler:   submitMeasurementHandler,
		requestTransitionHandler:   requestTransitionHandler,
		submitQCResultHandler:      submitQCResultHandler,
		bookShipmentHandler:        bookShipmentHandler,
		applyCarrierUpdateHandler:  applyCarrierUpdateHandler,
		createTaskHandler:          createTaskHandler,
		updateTaskStatusHandler:    updateTaskStatusHandler,
		addNoteHandler:             addNoteHandler,
		getWorkOrderHandler:        getWorkOrderHandler,
		listWorkOrdersHandler:      listWorkOrdersHandler,
		listAuditRecordsHandler:    listAuditRecordsHandler,
		webhookSecrets:             webhookSecrets,
	}
}

// RegisterRoutes attaches all routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	v1.POST("/work-orders", s.CreateWorkOrder)
	v1.GET("/work-orders", s.ListWorkOrders)
	v1.GET("/work-orders/:id", s.GetWorkOrder)
	v1.POST("/work-orders/:id/transition", s.RequestTransition)
	v1.POST("/work-orders/:id/measurements", s.SubmitMeasurement)
	v1.POST("/work-orders/:id/qc-results", s.SubmitQCResult)
	v1.POST("/work-orders/:id/shipments", s.BookShipment)
	v1.POST("/work-orders/:id/tasks", s.CreateTask)
	v1.POST("/work-orders/:id/notes", s.AddNote)
	v1.PATCH("/tasks/:id/status", s.UpdateTaskStatus)
	v1.GET("/audit-records", s.ListAuditRecords)

	webhooks := e.Group("/api/webhooks")
	webhooks.POST("/orders", s.IngestExternalOrder)
	webhooks.POST("/measurements", s.ImportExternalMeasurement)
	webhooks.POST("/aramex-tracking", s.ApplyCarrierUpdate)
}

// apiError is the error body every failing request returns.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

// authorize resolves the acting principal from the request headers and checks
// the role's permission. On failure it writes the response itself and returns
// ok=false.
func (s *Server) authorize(ctx echo.Context, permission rbac.Permission) (commands.Actor, bool) {
	idHeader := ctx.Request().Header.Get(headerActorID)
	roleHeader := ctx.Request().Header.Get(headerActorRole)
	if idHeader == "" || roleHeader == "" {
		_ = ctx.JSON(http.StatusUnauthorized, apiError{
			Code:    http.StatusUnauthorized,
			Message: "actor identity headers are required",
		})
		return commands.Actor{}, false
	}

	if !rbac.Allowed(rbac.Role(roleHeader), permission) {
		_ = ctx.JSON(http.StatusForbidden, apiError{
			Code:    http.StatusForbidden,
			Message: "role is not allowed to perform this operation",
		})
		return commands.Actor{}, false
	}

	id, err := kernel.UUIDFromString(idHeader)
	if err != nil {
		_ = ctx.JSON(http.StatusUnauthorized, apiError{
			Code:    http.StatusUnauthorized,
			Message: "actor id is not a valid UUID",
		})
		return commands.Actor{}, false
	}

	actor, err := commands.NewActor(id)
	if err != nil {
		_ = ctx.JSON(http.StatusUnauthorized, apiError{
			Code:    http.StatusUnauthorized,
			Message: "actor could not be resolved",
		})
		return commands.Actor{}, false
	}
	return actor, true
}

// respondError maps the application error taxonomy to HTTP status codes.
// Guard refusals carry their machine-readable reason code.
func respondError(ctx echo.Context, err error) error {
	var guardErr *errs.GuardFailedError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, apiError{
			Code: http.StatusNotFound, Message: err.Error(),
		})
	case errors.Is(err, errs.ErrStageConflict):
		return ctx.JSON(http.StatusConflict, apiError{
			Code: http.StatusConflict, Message: err.Error(),
		})
	case errors.As(err, &guardErr):
		return ctx.JSON(http.StatusUnprocessableEntity, apiError{
			Code: http.StatusUnprocessableEntity, Message: err.Error(), Reason: guardErr.ReasonCode,
		})
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrGuardFailed),
		errors.Is(err, errs.ErrPreconditionFailed):
		return ctx.JSON(http.StatusUnprocessableEntity, apiError{
			Code: http.StatusUnprocessableEntity, Message: err.Error(),
		})
	case errors.Is(err, errs.ErrUpstreamFailure):
		return ctx.JSON(http.StatusBadGateway, apiError{
			Code: http.StatusBadGateway, Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return ctx.JSON(http.StatusBadRequest, apiError{
			Code: http.StatusBadRequest, Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, apiError{
			Code: http.StatusInternalServerError, Message: "internal error",
		})
	}
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}
