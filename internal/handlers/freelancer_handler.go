package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vidflow/vidflow_server/internal/auth"
	"github.com/vidflow/vidflow_server/internal/middlewares"
	"github.com/vidflow/vidflow_server/internal/models"
	"github.com/vidflow/vidflow_server/internal/store"
	"github.com/vidflow/vidflow_server/internal/utils"
)

type FreelancerHandler struct {
	FreelancerStore store.FreelancerStore
	Logger          *log.Logger
}

func NewFreelancerHandler(freelancerStore store.FreelancerStore, logger *log.Logger) *FreelancerHandler {
	return &FreelancerHandler{
		FreelancerStore: freelancerStore,
		Logger:          logger,
	}
}

func (fh *FreelancerHandler) HandlerGetFreelancers(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		fh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	freelancers, err := fh.FreelancerStore.GetFreelancersByCompanyID(user.CompanyID)
	if err != nil {
		fh.Logger.Println("Error getting freelancers from store", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": freelancers})
}

func (fh *FreelancerHandler) HandlerCreateFreelancer(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		fh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	var req models.CreateFreelancerRequest
	err := utils.ReadJSON(r, &req)
	if err != nil {
		fh.Logger.Println("Error decoding create freelancer request:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	freelancer := &models.Freelancer{
		CompanyID: user.CompanyID,
		Name:      req.Name,
		Email:     req.Email,
		Whatsapp:  req.Whatsapp,
		Role:      models.FreelancerRole(req.Role),
		Rate:      req.Rate,
	}

	err = fh.FreelancerStore.CreateFreelancer(freelancer)
	if err != nil {
		fh.Logger.Println("Error creating freelancer:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": freelancer})
}

// HandlerIssueFreelancerToken mints the access token embedded in the panel
// link sent to a freelancer. Admin-gated.
func (fh *FreelancerHandler) HandlerIssueFreelancerToken(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		fh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	freelancerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		fh.Logger.Println("Error parsing freelancer id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	freelancer, err := fh.FreelancerStore.GetFreelancerByID(freelancerID, user.CompanyID)
	if err != nil {
		fh.Logger.Println("Error getting freelancer from store", err)
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Freelancer not found"})
		return
	}

	token, err := auth.IssueFreelancerToken(freelancer.ID, freelancer.CompanyID)
	if err != nil {
		fh.Logger.Println("Error issuing freelancer token:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": utils.Envelope{"token": token}})
}

func (fh *FreelancerHandler) HandlerDeleteFreelancer(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		fh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	freelancerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		fh.Logger.Println("Error parsing freelancer id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	err = fh.FreelancerStore.DeleteFreelancer(freelancerID, user.CompanyID)
	if err != nil {
		fh.Logger.Println("Error deleting freelancer:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Freelancer deleted"})
}
