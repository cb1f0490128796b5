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

type UserHandler struct {
	UserStore store.UserStore
	Logger    *log.Logger
}

func NewUserHandler(userStore store.UserStore, logger *log.Logger) *UserHandler {
	return &UserHandler{
		UserStore: userStore,
		Logger:    logger,
	}
}

func (uh *UserHandler) HandlerGetUsers(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		uh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	users, err := uh.UserStore.GetUsersByCompanyID(user.CompanyID)
	if err != nil {
		uh.Logger.Println("Error getting users from store", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": users})
}

func (uh *UserHandler) HandlerCreateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		uh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	var req models.CreateUserRequest
	err := utils.ReadJSON(r, &req)
	if err != nil {
		uh.Logger.Println("Error decoding create user request:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		uh.Logger.Println("Error hashing password:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	newUser := &models.User{
		CompanyID:    user.CompanyID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		Whatsapp:     req.Whatsapp,
	}

	err = uh.UserStore.CreateUser(newUser)
	if err != nil {
		uh.Logger.Println("Error creating user:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": newUser})
}

func (uh *UserHandler) HandlerDeleteUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		uh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		uh.Logger.Println("Error parsing user id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	if userID == user.ID {
		uh.Logger.Println("User attempted to delete own account")
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Cannot delete own account"})
		return
	}

	err = uh.UserStore.DeleteUser(userID, user.CompanyID)
	if err != nil {
		uh.Logger.Println("Error deleting user:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "User deleted"})
}
