package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/vidflow/vidflow_server/internal/middlewares"
	"github.com/vidflow/vidflow_server/internal/models"
	"github.com/vidflow/vidflow_server/internal/store"
	"github.com/vidflow/vidflow_server/internal/utils"
)

type SettingsHandler struct {
	SettingsStore store.SettingsStore
	Logger        *log.Logger
}

func NewSettingsHandler(settingsStore store.SettingsStore, logger *log.Logger) *SettingsHandler {
	return &SettingsHandler{
		SettingsStore: settingsStore,
		Logger:        logger,
	}
}

func (sh *SettingsHandler) HandlerGetSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		sh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	settings, err := sh.SettingsStore.GetSettingsByCompanyID(user.CompanyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// A company with no saved settings gets the defaults.
			utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": &models.Settings{CompanyID: user.CompanyID}})
			return
		}
		sh.Logger.Println("Error getting settings from store", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": settings})
}

func (sh *SettingsHandler) HandlerUpdateSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		sh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	var req models.UpdateSettingsRequest
	err := utils.ReadJSON(r, &req)
	if err != nil {
		sh.Logger.Println("Error decoding settings update:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	settings, err := sh.SettingsStore.GetSettingsByCompanyID(user.CompanyID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			sh.Logger.Println("Error getting settings from store", err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
			return
		}
		settings = &models.Settings{CompanyID: user.CompanyID}
	}

	if req.AutoNotify != nil {
		settings.AutoNotify = *req.AutoNotify
	}
	if req.ScriptTemplate != nil {
		settings.ScriptTemplate = *req.ScriptTemplate
	}
	if req.NarrationTemplate != nil {
		settings.NarrationTemplate = *req.NarrationTemplate
	}
	if req.EditingTemplate != nil {
		settings.EditingTemplate = *req.EditingTemplate
	}
	if req.ThumbnailTemplate != nil {
		settings.ThumbnailTemplate = *req.ThumbnailTemplate
	}
	if req.GeneralTemplate != nil {
		settings.GeneralTemplate = *req.GeneralTemplate
	}
	if req.WhatsappURL != nil {
		settings.WhatsappURL = *req.WhatsappURL
	}
	if req.WhatsappToken != nil {
		settings.WhatsappToken = *req.WhatsappToken
	}
	if req.WhatsappInstance != nil {
		settings.WhatsappInstance = *req.WhatsappInstance
	}

	err = sh.SettingsStore.UpsertSettings(settings)
	if err != nil {
		sh.Logger.Println("Error saving settings:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": settings})
}
