package workflow

import (
	"strings"
	"time"

	"github.com/vidflow/vidflow_server/internal/models"
)

// NextStatusFinished is returned as the scheduled next status when a
// transition has no auto-advance target.
const NextStatusFinished = "process finished"

// autoAdvance maps a stage-completed status to the status that follows it
// automatically. The pipeline is a fixed four-stage production line:
// script -> narration -> editing -> thumbnail. Thumbnail_Completed has no
// entry; publishing is a manual step.
var autoAdvance = map[models.VideoStatus]models.VideoStatus{
	models.StatusScriptCompleted:    models.StatusNarrationRequested,
	models.StatusNarrationCompleted: models.StatusEditingRequested,
	models.StatusEditingCompleted:   models.StatusThumbnailRequested,
}

// NextStatus returns the auto-advance target for status, if any.
func NextStatus(status models.VideoStatus) (models.VideoStatus, bool) {
	next, ok := autoAdvance[status]
	return next, ok
}

// roleForStage maps a stage-start status to the freelancer role that works
// that stage.
var roleForStage = map[models.VideoStatus]models.FreelancerRole{
	models.StatusScriptRequested:    models.RoleScriptwriter,
	models.StatusNarrationRequested: models.RoleNarrator,
	models.StatusEditingRequested:   models.RoleEditor,
	models.StatusThumbnailRequested: models.RoleThumbMaker,
}

// RoleForStage returns the role responsible for the stage that status
// starts, and whether status is a stage-start ("*_Requested") status.
func RoleForStage(status models.VideoStatus) (models.FreelancerRole, bool) {
	role, ok := roleForStage[status]
	return role, ok
}

func isInProgress(status models.VideoStatus) bool {
	return strings.HasSuffix(string(status), "_InProgress")
}

func isCompleted(status models.VideoStatus) bool {
	return strings.HasSuffix(string(status), "_Completed")
}

// Duration computes the logged duration of a transition. It is a wall-clock
// delta between the last status write and this one, counted only when an
// in-progress status moves to a completed one — idle time between those two
// writes is included. That is a known limitation of the metric, kept as is.
func Duration(from models.VideoStatus, to models.VideoStatus, lastUpdatedAt time.Time, now time.Time) int64 {
	if !isInProgress(from) || !isCompleted(to) {
		return 0
	}
	seconds := int64(now.Sub(lastUpdatedAt) / time.Second)
	if seconds < 0 {
		return 0
	}
	return seconds
}
