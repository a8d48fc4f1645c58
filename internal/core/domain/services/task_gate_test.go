package services_test

import (
	"testing"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/task"
	"atelier/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTask(t *testing.T, taskType task.Type, status task.Status) *task.Task {
	t.Helper()
	created, err := task.NewTask(kernel.NewUUID(), kernel.NewUUID(), taskType, "", nil, nil)
	require.NoError(t, err)
	if status != task.StatusPending {
		require.NoError(t, created.ChangeStatus(status, time.Now()))
	}
	return created
}

func TestTaskGate(t *testing.T) {
	gate := services.NewTaskGate()

	t.Run("should open on an empty task set", func(t *testing.T) {
		assert.True(t, gate.IsProductionComplete(nil))
	})

	t.Run("should hold while production tasks are open", func(t *testing.T) {
		tasks := []*task.Task{
			makeTask(t, task.TypeCutting, task.StatusCompleted),
			makeTask(t, task.TypeSewingCoat, task.StatusInProgress),
			makeTask(t, task.TypeFinishing, task.StatusPending),
		}

		assert.False(t, gate.IsProductionComplete(tasks))
		assert.Len(t, gate.OutstandingTasks(tasks), 2)
	})

	t.Run("should open once every production task is settled", func(t *testing.T) {
		tasks := []*task.Task{
			makeTask(t, task.TypeCutting, task.StatusCompleted),
			makeTask(t, task.TypeSewingCoat, task.StatusCancelled),
			makeTask(t, task.TypeFinishing, task.StatusBlocked),
		}

		assert.True(t, gate.IsProductionComplete(tasks))
	})

	t.Run("should ignore open rework tasks", func(t *testing.T) {
		tasks := []*task.Task{
			makeTask(t, task.TypeCutting, task.StatusCompleted),
			makeTask(t, task.TypeRework, task.StatusPending),
			makeTask(t, task.TypeRework, task.StatusInProgress),
		}

		assert.True(t, gate.IsProductionComplete(tasks))
		assert.Empty(t, gate.OutstandingTasks(tasks))
	})

	t.Run("should format the refusal reason", func(t *testing.T) {
		assert.Equal(t, "1 task incomplete", gate.Reason(1))
		assert.Equal(t, "3 tasks incomplete", gate.Reason(3))
	})
}
