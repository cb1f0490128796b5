package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/vidflow/vidflow_server/internal/export"
	"github.com/vidflow/vidflow_server/internal/middlewares"
	"github.com/vidflow/vidflow_server/internal/store"
	"github.com/vidflow/vidflow_server/internal/utils"
)

type ExportHandler struct {
	VideoLogStore store.VideoLogStore
	Logger        *log.Logger
}

func NewExportHandler(videoLogStore store.VideoLogStore, logger *log.Logger) *ExportHandler {
	return &ExportHandler{
		VideoLogStore: videoLogStore,
		Logger:        logger,
	}
}

func (eh *ExportHandler) HandlerExportVideoLogsExcel(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		eh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	params, err := logParamsFromRequest(r, user.CompanyID)
	if err != nil {
		eh.Logger.Println("Error parsing export filters:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	logs, err := eh.VideoLogStore.GetVideoLogs(params)
	if err != nil {
		eh.Logger.Println("Error getting video logs for export", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	payload, err := export.VideoLogsExcel(logs)
	if err != nil {
		eh.Logger.Println("Error building spreadsheet:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	filename := "production-log-" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func (eh *ExportHandler) HandlerExportVideoLogsPDF(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		eh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	params, err := logParamsFromRequest(r, user.CompanyID)
	if err != nil {
		eh.Logger.Println("Error parsing export filters:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	logs, err := eh.VideoLogStore.GetVideoLogs(params)
	if err != nil {
		eh.Logger.Println("Error getting video logs for export", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	payload, err := export.VideoLogsPDF(user.Email, logs)
	if err != nil {
		eh.Logger.Println("Error building pdf:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	filename := "production-log-" + time.Now().Format("2006-01-02") + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}
