package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vidflow/vidflow_server/internal/models"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   models.VideoStatus
		want     models.VideoStatus
		advances bool
	}{
		{"script completed advances to narration", models.StatusScriptCompleted, models.StatusNarrationRequested, true},
		{"narration completed advances to editing", models.StatusNarrationCompleted, models.StatusEditingRequested, true},
		{"editing completed advances to thumbnail", models.StatusEditingCompleted, models.StatusThumbnailRequested, true},
		{"thumbnail completed is terminal", models.StatusThumbnailCompleted, "", false},
		{"published does not advance", models.StatusPublished, "", false},
		{"cancelled does not advance", models.StatusCancelled, "", false},
		{"pending does not advance", models.StatusPending, "", false},
		{"in-progress does not advance", models.StatusScriptInProgress, "", false},
		{"requested does not advance", models.StatusNarrationRequested, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := NextStatus(tt.status)
			assert.Equal(t, tt.advances, ok)
			if tt.advances {
				assert.Equal(t, tt.want, next)
			}
		})
	}
}

func TestRoleForStage(t *testing.T) {
	tests := []struct {
		status  models.VideoStatus
		role    models.FreelancerRole
		isStage bool
	}{
		{models.StatusScriptRequested, models.RoleScriptwriter, true},
		{models.StatusNarrationRequested, models.RoleNarrator, true},
		{models.StatusEditingRequested, models.RoleEditor, true},
		{models.StatusThumbnailRequested, models.RoleThumbMaker, true},
		{models.StatusScriptInProgress, "", false},
		{models.StatusPublished, "", false},
	}

	for _, tt := range tests {
		role, ok := RoleForStage(tt.status)
		assert.Equal(t, tt.isStage, ok, "status %s", tt.status)
		if tt.isStage {
			assert.Equal(t, tt.role, role)
		}
	}
}

func TestDuration(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("in-progress to completed counts elapsed seconds", func(t *testing.T) {
		got := Duration(models.StatusScriptInProgress, models.StatusScriptCompleted, base, base.Add(90*time.Second))
		assert.Equal(t, int64(90), got)
	})

	t.Run("fractional seconds are floored", func(t *testing.T) {
		got := Duration(models.StatusEditingInProgress, models.StatusEditingCompleted, base, base.Add(90*time.Second+900*time.Millisecond))
		assert.Equal(t, int64(90), got)
	})

	t.Run("clock going backwards clamps to zero", func(t *testing.T) {
		got := Duration(models.StatusScriptInProgress, models.StatusScriptCompleted, base, base.Add(-5*time.Second))
		assert.Equal(t, int64(0), got)
	})

	t.Run("non in-progress origin yields zero", func(t *testing.T) {
		got := Duration(models.StatusScriptRequested, models.StatusScriptCompleted, base, base.Add(time.Hour))
		assert.Equal(t, int64(0), got)
	})

	t.Run("non completed target yields zero", func(t *testing.T) {
		got := Duration(models.StatusScriptInProgress, models.StatusPublished, base, base.Add(time.Hour))
		assert.Equal(t, int64(0), got)
	})

	t.Run("cross-stage pair still counts", func(t *testing.T) {
		// The heuristic only looks at suffixes, not matching stages.
		got := Duration(models.StatusScriptInProgress, models.StatusEditingCompleted, base, base.Add(30*time.Second))
		assert.Equal(t, int64(30), got)
	})
}
