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

type VideoHandler struct {
	VideoStore      store.VideoStore
	FreelancerStore store.FreelancerStore
	Workflow        *workflow.Service
	Logger          *log.Logger
}

func NewVideoHandler(videoStore store.VideoStore, freelancerStore store.FreelancerStore, workflowService *workflow.Service, logger *log.Logger) *VideoHandler {
	return &VideoHandler{
		VideoStore:      videoStore,
		FreelancerStore: freelancerStore,
		Workflow:        workflowService,
		Logger:          logger,
	}
}

func (vh *VideoHandler) HandlerGetVideos(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		vh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	status := models.VideoStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		vh.Logger.Printf("Error: invalid status filter '%s'", status)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	videos, err := vh.VideoStore.GetVideosByCompanyID(user.CompanyID, status)
	if err != nil {
		vh.Logger.Println("Error getting videos from store", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": videos})
}

func (vh *VideoHandler) HandlerGetVideoByID(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		vh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		vh.Logger.Println("Error parsing video id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	video, err := vh.VideoStore.GetVideoByID(videoID, user.CompanyID)
	if err != nil {
		vh.Logger.Println("Error getting video from store", err)
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Video not found"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": video})
}

func (vh *VideoHandler) HandlerCreateVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		vh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	var req models.CreateVideoRequest
	err := utils.ReadJSON(r, &req)
	if err != nil {
		vh.Logger.Println("Error decoding create video request:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	channelID, err := uuid.Parse(req.ChannelID)
	if err != nil {
		vh.Logger.Println("Error parsing channel id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	status := models.VideoStatus(req.Status)
	if req.Status != "" && !status.Valid() {
		vh.Logger.Printf("Error: invalid initial status '%s'", req.Status)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	video := &models.Video{
		CompanyID:    user.CompanyID,
		ChannelID:    channelID,
		Title:        req.Title,
		Status:       status,
		Observations: req.Observations,
		YoutubeURL:   req.YoutubeURL,
	}

	err = vh.VideoStore.CreateVideo(video)
	if err != nil {
		vh.Logger.Println("Error creating video:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": video})
}

func (vh *VideoHandler) HandlerUpdateVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		vh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		vh.Logger.Println("Error parsing video id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	var req struct {
		Title        *string `json:"title"`
		Observations *string `json:"observations"`
		YoutubeURL   *string `json:"youtube_url"`
	}
	err = utils.ReadJSON(r, &req)
	if err != nil {
		vh.Logger.Println("Error decoding update video request:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	err = vh.VideoStore.UpdateVideo(videoID, user.CompanyID, req.Title, req.Observations, req.YoutubeURL)
	if err != nil {
		vh.Logger.Println("Error updating video:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Video updated"})
}

// HandlerUpdateVideoStatus is the production workflow endpoint. The acting
// party comes from the request body because admins can register changes on
// behalf of freelancers.
func (vh *VideoHandler) HandlerUpdateVideoStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		vh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		vh.Logger.Println("Error parsing video id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	var req models.UpdateVideoStatusRequest
	err = utils.ReadJSON(r, &req)
	if err != nil {
		vh.Logger.Println("Error decoding status update request:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	params := workflow.UpdateStatusParams{
		VideoID:   videoID,
		CompanyID: user.CompanyID,
		Status:    models.VideoStatus(req.Status),
		IsUser:    true,
		Notify:    req.Notify,
	}
	if req.IsUser != nil {
		params.IsUser = *req.IsUser
	}

	if req.UserID != "" {
		actorID, err := uuid.Parse(req.UserID)
		if err != nil {
			vh.Logger.Println("Error parsing actor id", err)
			utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
			return
		}
		params.ActorID = actorID
	} else if params.IsUser {
		params.ActorID = user.ID
	}

	result, err := vh.Workflow.UpdateStatus(params)
	if err != nil {
		vh.Logger.Printf("Error updating status for video %s: %v", videoID, err)
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": result})
}

func (vh *VideoHandler) HandlerAssignFreelancer(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		vh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		vh.Logger.Println("Error parsing video id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	var req models.AssignFreelancerRequest
	err = utils.ReadJSON(r, &req)
	if err != nil {
		vh.Logger.Println("Error decoding assign freelancer request:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	freelancerID, err := uuid.Parse(req.FreelancerID)
	if err != nil {
		vh.Logger.Println("Error parsing freelancer id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	// The freelancer must belong to the caller's company.
	_, err = vh.FreelancerStore.GetFreelancerByID(freelancerID, user.CompanyID)
	if err != nil {
		vh.Logger.Println("Error getting freelancer from store", err)
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Freelancer not found"})
		return
	}

	err = vh.FreelancerStore.AssignToVideo(videoID, freelancerID, models.FreelancerRole(req.Role))
	if err != nil {
		vh.Logger.Println("Error assigning freelancer:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Freelancer assigned"})
}

func (vh *VideoHandler) HandlerUnassignFreelancer(w http.ResponseWriter, r *http.Request) {
	_, ok := middlewares.GetUserFromContext(r)
	if !ok {
		vh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		vh.Logger.Println("Error parsing video id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	role := models.FreelancerRole(chi.URLParam(r, "role"))
	if !role.Valid() {
		vh.Logger.Printf("Error: invalid role '%s'", role)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	err = vh.FreelancerStore.UnassignFromVideo(videoID, role)
	if err != nil {
		vh.Logger.Println("Error unassigning freelancer:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Freelancer unassigned"})
}

func (vh *VideoHandler) HandlerDeleteVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		vh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		vh.Logger.Println("Error parsing video id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	err = vh.VideoStore.DeleteVideo(videoID, user.CompanyID)
	if err != nil {
		vh.Logger.Println("Error deleting video:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Video deleted"})
}
