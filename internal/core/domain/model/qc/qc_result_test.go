package qc_test

import (
	"testing"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/qc"
	"atelier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQCResult(t *testing.T) {
	results := []qc.CheckpointResult{
		{Checkpoint: "seams", Passed: true},
		{Checkpoint: "lining", Passed: false, Comment: "puckering at left shoulder"},
	}

	t.Run("should create an inspection result", func(t *testing.T) {
		r, err := qc.NewQCResult(
			kernel.NewUUID(), kernel.NewUUID(),
			"final-inspection", "Final Inspection",
			kernel.NewUUID(), results, false, []string{"s3://qc/shoulder.jpg"})

		require.NoError(t, err)
		assert.NoError(t, r.Validate())
		assert.False(t, r.Pass())
		assert.Equal(t, "final-inspection", r.FormID())
		require.Len(t, r.Results(), 2)
		assert.Equal(t, "puckering at left shoulder", r.Results()[1].Comment)
	})

	t.Run("should require the form reference", func(t *testing.T) {
		_, err := qc.NewQCResult(
			kernel.NewUUID(), kernel.NewUUID(), "", "Final Inspection",
			kernel.NewUUID(), results, true, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should require at least one checkpoint", func(t *testing.T) {
		_, err := qc.NewQCResult(
			kernel.NewUUID(), kernel.NewUUID(), "final-inspection", "",
			kernel.NewUUID(), nil, true, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should copy checkpoint results on read", func(t *testing.T) {
		r, err := qc.NewQCResult(
			kernel.NewUUID(), kernel.NewUUID(), "final-inspection", "",
			kernel.NewUUID(), results, true, nil)
		require.NoError(t, err)

		r.Results()[0].Passed = false

		assert.True(t, r.Results()[0].Passed)
	})
}
