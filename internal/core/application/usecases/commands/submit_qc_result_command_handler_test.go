package commands_test

import (
	"testing"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/note"
	"atelier/internal/core/domain/model/qc"
	"atelier/internal/core/domain/model/task"
	"atelier/internal/core/domain/model/workorder"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func passingCheckpoints() []qc.CheckpointResult {
	return []qc.CheckpointResult{
		{Checkpoint: "stitching", Passed: true},
		{Checkpoint: "lining", Passed: true},
	}
}

func failingCheckpoints() []qc.CheckpointResult {
	return []qc.CheckpointResult{
		{Checkpoint: "stitching", Passed: true},
		{Checkpoint: "lining", Passed: false, Comment: "puckering at the hem"},
	}
}

func TestSubmitQCResultCommand_VerdictIsTheInspectors(t *testing.T) {
	actor := testActor(t)

	// A failed checkpoint does not force the verdict: the inspector can waive
	// it and still pass the inspection.
	waived, err := commands.NewSubmitQCResultCommand(
		kernel.NewUUID(), kernel.NewUUID(), "form-final", "Final Inspection",
		failingCheckpoints(), true, nil, actor)
	require.NoError(t, err)
	require.True(t, waived.Pass())

	// And all-green checkpoints do not force a pass either.
	fail, err := commands.NewSubmitQCResultCommand(
		kernel.NewUUID(), kernel.NewUUID(), "form-final", "Final Inspection",
		passingCheckpoints(), false, nil, actor)
	require.NoError(t, err)
	require.False(t, fail.Pass())
}

func TestSubmitQCResultCommandHandler_Handle_PassMovesToReadyToShip(t *testing.T) {
	ctx := t.Context()
	wo := testWorkOrder(t, workorder.InQC)
	cmd, err := commands.NewSubmitQCResultCommand(
		kernel.NewUUID(), wo.ID(), "form-final", "Final Inspection",
		passingCheckpoints(), true, nil, testActor(t))
	require.NoError(t, err)

	woRepo := new(MockWorkOrderRepository)
	qcRepo := new(MockQCResultRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WorkOrderRepository").Return(woRepo)
	uow.On("QCResultRepository").Return(qcRepo)
	uow.On("AuditRepository").Return(auditRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	woRepo.On("Get", mock.Anything, wo.ID()).Return(wo, nil).Once()
	qcRepo.On("Add", mock.Anything, mock.AnythingOfType("*qc.QCResult")).Return(nil).Once()
	woRepo.On("CommitStage", mock.Anything, wo, workorder.InQC).Return(nil).Once()
	auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil).Twice()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	h := commands.NewSubmitQCResultCommandHandler(factory, notifier, nil, "ops@example.com")
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, workorder.ReadyToShip, wo.Stage())
	qcRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSubmitQCResultCommandHandler_Handle_WaivedCheckpointStillShips(t *testing.T) {
	ctx := t.Context()
	wo := testWorkOrder(t, workorder.InQC)
	// One checkpoint failed but the inspector passed the inspection anyway.
	cmd, err := commands.NewSubmitQCResultCommand(
		kernel.NewUUID(), wo.ID(), "form-final", "Final Inspection",
		failingCheckpoints(), true, nil, testActor(t))
	require.NoError(t, err)

	woRepo := new(MockWorkOrderRepository)
	qcRepo := new(MockQCResultRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WorkOrderRepository").Return(woRepo)
	uow.On("QCResultRepository").Return(qcRepo)
	uow.On("AuditRepository").Return(auditRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	woRepo.On("Get", mock.Anything, wo.ID()).Return(wo, nil).Once()
	qcRepo.On("Add", mock.Anything, mock.MatchedBy(func(r *qc.QCResult) bool {
		return r.Pass()
	})).Return(nil).Once()
	woRepo.On("CommitStage", mock.Anything, wo, workorder.InQC).Return(nil).Once()
	auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil).Twice()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	h := commands.NewSubmitQCResultCommandHandler(factory, notifier, nil, "ops@example.com")
	require.NoError(t, h.Handle(ctx, cmd))
	// No rework task, no note: the stored verdict is the inspector's, not a
	// recomputation over the checkpoints.
	require.Equal(t, workorder.ReadyToShip, wo.Stage())
	qcRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSubmitQCResultCommandHandler_Handle_FailAttachesReworkAndReturnsToProduction(t *testing.T) {
	ctx := t.Context()
	wo := testWorkOrder(t, workorder.InQC)
	cmd, err := commands.NewSubmitQCResultCommand(
		kernel.NewUUID(), wo.ID(), "form-final", "Final Inspection",
		failingCheckpoints(), false, nil, testActor(t))
	require.NoError(t, err)

	woRepo := new(MockWorkOrderRepository)
	qcRepo := new(MockQCResultRepository)
	taskRepo := new(MockTaskRepository)
	noteRepo := new(MockNoteRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WorkOrderRepository").Return(woRepo)
	uow.On("QCResultRepository").Return(qcRepo)
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("NoteRepository").Return(noteRepo)
	uow.On("AuditRepository").Return(auditRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	woRepo.On("Get", mock.Anything, wo.ID()).Return(wo, nil).Once()
	qcRepo.On("Add", mock.Anything, mock.AnythingOfType("*qc.QCResult")).Return(nil).Once()

	taskRepo.On("Add", mock.Anything, mock.MatchedBy(func(tk *task.Task) bool {
		return tk.Type() == task.TypeRework && tk.Status() == task.StatusPending
	})).Return(nil).Once()

	noteRepo.On("Add", mock.Anything, mock.MatchedBy(func(n *note.Note) bool {
		return n.AuthorID() == nil &&
			n.Visibility() == note.VisibilityInternal &&
			n.Body() == "QC Failed: Final Inspection. Rework task created."
	})).Return(nil).Once()

	woRepo.On("CommitStage", mock.Anything, wo, workorder.InQC).Return(nil).Once()

	var actions []audit.Action
	auditRepo.On("Append", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			actions = append(actions, args.Get(1).(*audit.Record).Action())
		}).Return(nil).Twice()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	h := commands.NewSubmitQCResultCommandHandler(factory, notifier, nil, "ops@example.com")
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, workorder.InProduction, wo.Stage())
	require.ElementsMatch(t,
		[]audit.Action{audit.ActionWorkOrderUpdated, audit.ActionQCResultCreated}, actions)
	taskRepo.AssertExpectations(t)
	noteRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSubmitQCResultCommandHandler_Handle_OutOfStage(t *testing.T) {
	ctx := t.Context()
	wo := testWorkOrder(t, workorder.InProduction)
	cmd, err := commands.NewSubmitQCResultCommand(
		kernel.NewUUID(), wo.ID(), "form-final", "Final Inspection",
		passingCheckpoints(), true, nil, testActor(t))
	require.NoError(t, err)

	woRepo := new(MockWorkOrderRepository)
	qcRepo := new(MockQCResultRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WorkOrderRepository").Return(woRepo)
	uow.On("QCResultRepository").Return(qcRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	woRepo.On("Get", mock.Anything, wo.ID()).Return(wo, nil).Once()
	qcRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitQCResultCommandHandler(factory, nil, nil, "ops@example.com")
	// in_production → ready_to_ship is not an edge; the whole submission
	// rolls back, result included.
	require.Error(t, h.Handle(ctx, cmd))
	require.Equal(t, workorder.InProduction, wo.Stage())
}
