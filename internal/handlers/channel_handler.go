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
)

type ChannelHandler struct {
	ChannelStore store.ChannelStore
	Logger       *log.Logger
}

func NewChannelHandler(channelStore store.ChannelStore, logger *log.Logger) *ChannelHandler {
	return &ChannelHandler{
		ChannelStore: channelStore,
		Logger:       logger,
	}
}

func (ch *ChannelHandler) HandlerGetChannels(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		ch.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	channels, err := ch.ChannelStore.GetChannelsByCompanyID(user.CompanyID)
	if err != nil {
		ch.Logger.Println("Error getting channels from store", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": channels})
}

func (ch *ChannelHandler) HandlerCreateChannel(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		ch.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	var req models.CreateChannelRequest
	err := utils.ReadJSON(r, &req)
	if err != nil {
		ch.Logger.Println("Error decoding create channel request:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	channel := &models.Channel{
		CompanyID:  user.CompanyID,
		Name:       req.Name,
		YoutubeURL: req.YoutubeURL,
	}

	err = ch.ChannelStore.CreateChannel(channel)
	if err != nil {
		ch.Logger.Println("Error creating channel:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": channel})
}

func (ch *ChannelHandler) HandlerDeleteChannel(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		ch.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	channelID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		ch.Logger.Println("Error parsing channel id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	err = ch.ChannelStore.DeleteChannel(channelID, user.CompanyID)
	if err != nil {
		ch.Logger.Println("Error deleting channel:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Channel deleted"})
}
