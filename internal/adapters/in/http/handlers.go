package http

import (
	"net/http"
	"strconv"
	"time"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/measurement"
	"atelier/internal/core/domain/model/note"
	"atelier/internal/core/domain/model/qc"
	"atelier/internal/core/domain/model/task"
	"atelier/internal/core/domain/model/workorder"
	"atelier/internal/pkg/rbac"

	"github.com/labstack/echo/v4"
)

type customerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Country string `json:"country"`
	City    string `json:"city"`
}

type createWorkOrderRequest struct {
	Customer customerRequest `json:"customer"`
	Priority int             `json:"priority"`
	DueAt    *time.Time      `json:"dueAt"`
}

type createdResponse struct {
	ID string `json:"id"`
}

func (s *Server) CreateWorkOrder(ctx echo.Context) error {
	actor, ok := s.authorize(ctx, rbac.PermWorkOrdersCreate)
	if !ok {
		return nil
	}

	var req createWorkOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "request body is not valid JSON")
	}

	customer, err := workorder.NewCustomer(
		req.Customer.Name, req.Customer.Email, req.Customer.Phone,
		req.Customer.Country, req.Customer.City)
	if err != nil {
		return respondError(ctx, err)
	}

	workOrderID := kernel.NewUUID()
	cmd, err := commands.NewCreateWorkOrderCommand(workOrderID, customer, req.Priority, req.DueAt, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createWorkOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, createdResponse{ID: workOrderID.String()})
}

type workOrderTaskResponse struct {
	ID     string     `json:"id"`
	Type   string     `json:"type"`
	Title  string     `json:"title"`
	Status string     `json:"status"`
	DueAt  *time.Time `json:"dueAt,omitempty"`
}

type workOrderResponse struct {
	ID               string                  `json:"id"`
	ExternalOrderID  string                  `json:"externalOrderId,omitempty"`
	CustomerName     string                  `json:"customerName"`
	CustomerEmail    string                  `json:"customerEmail"`
	Stage            string                  `json:"stage"`
	Priority         int                     `json:"priority"`
	DueAt            *time.Time              `json:"dueAt,omitempty"`
	AssignedTailorID *string                 `json:"assignedTailorId,omitempty"`
	Tasks            []workOrderTaskResponse `json:"tasks"`
}

func (s *Server) GetWorkOrder(ctx echo.Context) error {
	if _, ok := s.authorize(ctx, rbac.PermWorkOrdersRead); !ok {
		return nil
	}

	workOrderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "work order id is not a valid UUID")
	}

	query, err := queries.NewGetWorkOrderQuery(workOrderID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getWorkOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	resp := workOrderResponse{
		ID:              result.ID.String(),
		ExternalOrderID: result.ExternalOrderID,
		CustomerName:    result.CustomerName,
		CustomerEmail:   result.CustomerEmail,
		Stage:           result.Stage,
		Priority:        result.Priority,
		DueAt:           result.DueAt,
		Tasks:           make([]workOrderTaskResponse, 0, len(result.Tasks)),
	}
	if result.AssignedTailorID != nil {
		tailorID := result.AssignedTailorID.String()
		resp.AssignedTailorID = &tailorID
	}
	for _, t := range result.Tasks {
		resp.Tasks = append(resp.Tasks, workOrderTaskResponse{
			ID:     t.ID.String(),
			Type:   t.Type,
			Title:  t.Title,
			Status: t.Status,
			DueAt:  t.DueAt,
		})
	}
	return ctx.JSON(http.StatusOK, resp)
}

type workOrderListItemResponse struct {
	ID           string     `json:"id"`
	CustomerName string     `json:"customerName"`
	Stage        string     `json:"stage"`
	Priority     int        `json:"priority"`
	DueAt        *time.Time `json:"dueAt,omitempty"`
	OpenTasks    int        `json:"openTasks"`
}

func (s *Server) ListWorkOrders(ctx echo.Context) error {
	if _, ok := s.authorize(ctx, rbac.PermWorkOrdersRead); !ok {
		return nil
	}

	var stageFilter *workorder.Stage
	if raw := ctx.QueryParam("stage"); raw != "" {
		stage, err := workorder.StageFromString(raw)
		if err != nil {
			return respondError(ctx, err)
		}
		stageFilter = &stage
	}

	var tailorFilter *kernel.UUID
	if raw := ctx.QueryParam("assignedTailorId"); raw != "" {
		tailorID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "assignedTailorId is not a valid UUID")
		}
		tailorFilter = &tailorID
	}

	query, err := queries.NewListWorkOrdersQuery(
		stageFilter, tailorFilter,
		intQueryParam(ctx, "limit"), intQueryParam(ctx, "offset"))
	if err != nil {
		return respondError(ctx, err)
	}

	results, err := s.listWorkOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	resp := make([]workOrderListItemResponse, 0, len(results))
	for _, r := range results {
		resp = append(resp, workOrderListItemResponse{
			ID:           r.ID.String(),
			CustomerName: r.CustomerName,
			Stage:        r.Stage,
			Priority:     r.Priority,
			DueAt:        r.DueAt,
			OpenTasks:    r.OpenTasks,
		})
	}
	return ctx.JSON(http.StatusOK, resp)
}

type requestTransitionRequest struct {
	TargetStage string `json:"targetStage"`
}

func (s *Server) RequestTransition(ctx echo.Context) error {
	actor, ok := s.authorize(ctx, rbac.PermWorkOrdersUpdate)
	if !ok {
		return nil
	}

	workOrderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "work order id is not a valid UUID")
	}

	var req requestTransitionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "request body is not valid JSON")
	}

	targetStage, err := workorder.StageFromString(req.TargetStage)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRequestTransitionCommand(workOrderID, targetStage, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.requestTransitionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type submitMeasurementRequest struct {
	Source  string             `json:"source"`
	Payload map[string]float64 `json:"payload"`
	Photos  []string           `json:"photos"`
}

func (s *Server) SubmitMeasurement(ctx echo.Context) error {
	actor, ok := s.authorize(ctx, rbac.PermMeasurementsSubmit)
	if !ok {
		return nil
	}

	workOrderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "work order id is not a valid UUID")
	}

	var req submitMeasurementRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "request body is not valid JSON")
	}

	source, err := measurement.SourceFromString(req.Source)
	if err != nil {
		return respondError(ctx, err)
	}

	measurementID := kernel.NewUUID()
	cmd, err := commands.NewSubmitMeasurementCommand(
		measurementID, workOrderID, source, req.Payload, req.Photos, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.submitMeasurementHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, createdResponse{ID: measurementID.String()})
}

type checkpointResultRequest struct {
	Checkpoint string `json:"checkpoint"`
	Passed     bool   `json:"passed"`
	Comment    string `json:"comment"`
}

type submitQCResultRequest struct {
	FormID   string                    `json:"formId"`
	FormName string                    `json:"formName"`
	Results  []checkpointResultRequest `json:"results"`
	Pass     bool                      `json:"pass"`
	Photos   []string                  `json:"photos"`
}

func (s *Server) SubmitQCResult(ctx echo.Context) error {
	actor, ok := s.authorize(ctx, rbac.PermQCCreate)
	if !ok {
		return nil
	}

	workOrderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "work order id is not a valid UUID")
	}

	var req submitQCResultRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "request body is not valid JSON")
	}

	results := make([]qc.CheckpointResult, 0, len(req.Results))
	for _, r := range req.Results {
		results = append(results, qc.CheckpointResult{
			Checkpoint: r.Checkpoint,
			Passed:     r.Passed,
			Comment:    r.Comment,
		})
	}

	qcResultID := kernel.NewUUID()
	cmd, err := commands.NewSubmitQCResultCommand(
		qcResultID, workOrderID, req.FormID, req.FormName, results, req.Pass, req.Photos, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.submitQCResultHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, createdResponse{ID: qcResultID.String()})
}

type bookShipmentRequest struct {
	RecipientName    string  `json:"recipientName"`
	RecipientAddress string  `json:"recipientAddress"`
	RecipientCity    string  `json:"recipientCity"`
	RecipientCountry string  `json:"recipientCountry"`
	RecipientPhone   string  `json:"recipientPhone"`
	WeightKg         float64 `json:"weightKg"`
	Description      string  `json:"description"`
}

func (s *Server) BookShipment(ctx echo.Context) error {
	actor, ok := s.authorize(ctx, rbac.PermShipmentsCreate)
	if !ok {
		return nil
	}

	workOrderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "work order id is not a valid UUID")
	}

	var req bookShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "request body is not valid JSON")
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewBookShipmentCommand(
		shipmentID, workOrderID,
		req.RecipientName, req.RecipientAddress, req.RecipientCity,
		req.RecipientCountry, req.RecipientPhone,
		req.WeightKg, req.Description, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.bookShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, createdResponse{ID: shipmentID.String()})
}

type createTaskRequest struct {
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	AssigneeID *string    `json:"assigneeId"`
	DueAt      *time.Time `json:"dueAt"`
}

func (s *Server) CreateTask(ctx echo.Context) error {
	actor, ok := s.authorize(ctx, rbac.PermTasksUpdate)
	if !ok {
		return nil
	}

	workOrderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "work order id is not a valid UUID")
	}

	var req createTaskRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "request body is not valid JSON")
	}

	taskType, err := task.TypeFromString(req.Type)
	if err != nil {
		return respondError(ctx, err)
	}

	var assigneeID *kernel.UUID
	if req.AssigneeID != nil {
		id, idErr := kernel.UUIDFromString(*req.AssigneeID)
		if idErr != nil {
			return badRequest(ctx, "assigneeId is not a valid UUID")
		}
		assigneeID = &id
	}

	taskID := kernel.NewUUID()
	cmd, err := commands.NewCreateTaskCommand(
		taskID, workOrderID, taskType, req.Title, assigneeID, req.DueAt, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createTaskHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, createdResponse{ID: taskID.String()})
}

type updateTaskStatusRequest struct {
	Status     string  `json:"status"`
	AssigneeID *string `json:"assigneeId"`
}

func (s *Server) UpdateTaskStatus(ctx echo.Context) error {
	actor, ok := s.authorize(ctx, rbac.PermTasksUpdate)
	if !ok {
		return nil
	}

	taskID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "task id is not a valid UUID")
	}

	var req updateTaskStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "request body is not valid JSON")
	}

	status, err := task.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	var assigneeID *kernel.UUID
	if req.AssigneeID != nil {
		id, idErr := kernel.UUIDFromString(*req.AssigneeID)
		if idErr != nil {
			return badRequest(ctx, "assigneeId is not a valid UUID")
		}
		assigneeID = &id
	}

	cmd, err := commands.NewUpdateTaskStatusCommand(taskID, status, assigneeID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.updateTaskStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type addNoteRequest struct {
	Visibility string `json:"visibility"`
	Body       string `json:"body"`
}

func (s *Server) AddNote(ctx echo.Context) error {
	actor, ok := s.authorize(ctx, rbac.PermNotesCreate)
	if !ok {
		return nil
	}

	workOrderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "work order id is not a valid UUID")
	}

	var req addNoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "request body is not valid JSON")
	}

	visibility, err := note.VisibilityFromString(req.Visibility)
	if err != nil {
		return respondError(ctx, err)
	}

	noteID := kernel.NewUUID()
	cmd, err := commands.NewAddNoteCommand(noteID, workOrderID, visibility, req.Body, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.addNoteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, createdResponse{ID: noteID.String()})
}

type auditRecordResponse struct {
	ID        string         `json:"id"`
	ActorID   *string        `json:"actorId,omitempty"`
	Action    string         `json:"action"`
	Target    string         `json:"target"`
	Diff      map[string]any `json:"diff,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (s *Server) ListAuditRecords(ctx echo.Context) error {
	if _, ok := s.authorize(ctx, rbac.PermAuditRead); !ok {
		return nil
	}

	query := queries.NewListAuditRecordsQuery(
		ctx.QueryParam("action"), ctx.QueryParam("target"),
		intQueryParam(ctx, "limit"), intQueryParam(ctx, "offset"))

	results, err := s.listAuditRecordsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	resp := make([]auditRecordResponse, 0, len(results))
	for _, r := range results {
		record := auditRecordResponse{
			ID:        r.ID.String(),
			Action:    r.Action,
			Target:    r.Target,
			Diff:      r.Diff,
			CreatedAt: r.CreatedAt,
		}
		if r.ActorID != nil {
			actorID := r.ActorID.String()
			record.ActorID = &actorID
		}
		resp = append(resp, record)
	}
	return ctx.JSON(http.StatusOK, resp)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, apiError{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func intQueryParam(ctx echo.Context, name string) int {
	value, err := strconv.Atoi(ctx.QueryParam(name))
	if err != nil {
		return 0
	}
	return value
}
