package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/vidflow/vidflow_server/internal/middlewares"
	"github.com/vidflow/vidflow_server/internal/store"
	"github.com/vidflow/vidflow_server/internal/utils"
)

type VideoLogHandler struct {
	VideoLogStore store.VideoLogStore
	Logger        *log.Logger
}

func NewVideoLogHandler(videoLogStore store.VideoLogStore, logger *log.Logger) *VideoLogHandler {
	return &VideoLogHandler{
		VideoLogStore: videoLogStore,
		Logger:        logger,
	}
}

// logParamsFromRequest parses the shared filter query params (video_id,
// from, to) used by the log listing and the report exports.
func logParamsFromRequest(r *http.Request, companyID uuid.UUID) (store.GetVideoLogsParams, error) {
	params := store.GetVideoLogsParams{CompanyID: companyID}

	if v := r.URL.Query().Get("video_id"); v != "" {
		videoID, err := uuid.Parse(v)
		if err != nil {
			return params, err
		}
		params.VideoID = videoID
	}
	if v := r.URL.Query().Get("from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			return params, err
		}
		params.From = from
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			return params, err
		}
		// Inclusive end of day.
		params.To = to.Add(24*time.Hour - time.Second)
	}

	return params, nil
}

func (vlh *VideoLogHandler) HandlerGetVideoLogs(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		vlh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	params, err := logParamsFromRequest(r, user.CompanyID)
	if err != nil {
		vlh.Logger.Println("Error parsing log filters:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	logs, err := vlh.VideoLogStore.GetVideoLogs(params)
	if err != nil {
		vlh.Logger.Println("Error getting video logs from store", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": logs})
}
