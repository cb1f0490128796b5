package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vidflow/vidflow_server/internal/middlewares"
	"github.com/vidflow/vidflow_server/internal/models"
	"github.com/vidflow/vidflow_server/internal/store"
	"github.com/vidflow/vidflow_server/internal/utils"
	"github.com/vidflow/vidflow_server/internal/workflow"
)

// FreelancerPanelHandler serves the token-authenticated freelancer surface:
// listing assigned videos and moving them through the freelancer's own
// stage.
type FreelancerPanelHandler struct {
	VideoStore store.VideoStore
	Workflow   *workflow.Service
	Logger     *log.Logger
}

func NewFreelancerPanelHandler(videoStore store.VideoStore, workflowService *workflow.Service, logger *log.Logger) *FreelancerPanelHandler {
	return &FreelancerPanelHandler{
		VideoStore: videoStore,
		Workflow:   workflowService,
		Logger:     logger,
	}
}

func (fph *FreelancerPanelHandler) HandlerGetAssignedVideos(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetFreelancerFromContext(r)
	if !ok {
		fph.Logger.Println("No freelancer found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	videos, err := fph.VideoStore.GetVideosForFreelancer(identity.FreelancerID)
	if err != nil {
		fph.Logger.Println("Error getting assigned videos from store", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": videos})
}

func (fph *FreelancerPanelHandler) HandlerUpdateAssignedVideoStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetFreelancerFromContext(r)
	if !ok {
		fph.Logger.Println("No freelancer found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		fph.Logger.Println("Error parsing video id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	var req struct {
		Status string `json:"status" validate:"required"`
		Notify bool   `json:"notify"`
	}
	err = utils.ReadJSON(r, &req)
	if err != nil {
		fph.Logger.Println("Error decoding status update request:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	result, err := fph.Workflow.UpdateStatus(workflow.UpdateStatusParams{
		VideoID:   videoID,
		CompanyID: identity.CompanyID,
		Status:    models.VideoStatus(req.Status),
		ActorID:   identity.FreelancerID,
		IsUser:    false,
		Notify:    req.Notify,
	})
	if err != nil {
		fph.Logger.Printf("Error updating status for video %s: %v", videoID, err)
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": result})
}
