package analytics

import (
	"log"
	"net/http"
	"strconv"

	"github.com/vidflow/vidflow_server/internal/middlewares"
	"github.com/vidflow/vidflow_server/internal/store/analytics"
	"github.com/vidflow/vidflow_server/internal/utils"
)

type ProductionHandler struct {
	ProductionStore analytics.ProductionStore
	Logger          *log.Logger
}

func NewProductionHandler(productionStore analytics.ProductionStore, logger *log.Logger) *ProductionHandler {
	return &ProductionHandler{
		ProductionStore: productionStore,
		Logger:          logger,
	}
}

func (ph *ProductionHandler) HandlerGetStageDurations(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		ph.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	durations, err := ph.ProductionStore.GetStageDurations(user.CompanyID.String())
	if err != nil {
		ph.Logger.Println("Error getting stage durations from store", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": durations})
}

func (ph *ProductionHandler) HandlerGetPublishThroughput(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		ph.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	days := 30
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 || parsed > 365 {
			ph.Logger.Printf("Error: invalid days parameter '%s'", daysStr)
			utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
			return
		}
		days = parsed
	}

	points, err := ph.ProductionStore.GetPublishThroughput(user.CompanyID.String(), days)
	if err != nil {
		ph.Logger.Println("Error getting publish throughput from store", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": points})
}
