package handlers

import (
	"log"
	"net/http"

	"github.com/vidflow/vidflow_server/internal/middlewares"
	"github.com/vidflow/vidflow_server/internal/store"
	"github.com/vidflow/vidflow_server/internal/utils"
)

type DashboardHandler struct {
	DashboardStore store.DashboardStore
	Logger         *log.Logger
}

func NewDashboardHandler(dashboardStore store.DashboardStore, logger *log.Logger) *DashboardHandler {
	return &DashboardHandler{
		DashboardStore: dashboardStore,
		Logger:         logger,
	}
}

func (dh *DashboardHandler) HandlerGetDashboardMetrics(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		dh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	dashboard, err := dh.DashboardStore.GetDashboardMetricsByCompanyID(user.CompanyID)
	if err != nil {
		dh.Logger.Println("Error getting dashboard metrics from store", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": dashboard})
}
