package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vidflow/vidflow_server/internal/models"
	"github.com/vidflow/vidflow_server/internal/store/admin"
	"github.com/vidflow/vidflow_server/internal/utils"
)

// AdminHandler serves the platform-admin surface. It is mounted behind the
// admin session middleware and is not company-scoped.
type AdminHandler struct {
	CompanyStore admin.AdminCompanyStore
	Logger       *log.Logger
}

func NewAdminHandler(companyStore admin.AdminCompanyStore, logger *log.Logger) *AdminHandler {
	return &AdminHandler{
		CompanyStore: companyStore,
		Logger:       logger,
	}
}

func (ah *AdminHandler) HandlerGetCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := ah.CompanyStore.GetCompanies()
	if err != nil {
		ah.Logger.Println("Error getting companies from store", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": companies})
}

func (ah *AdminHandler) HandlerCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCompanyRequest
	err := utils.ReadJSON(r, &req)
	if err != nil {
		ah.Logger.Println("Error decoding create company request:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	company := &models.Company{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Plan:      req.Plan,
		Is_Active: true,
	}

	err = ah.CompanyStore.CreateCompany(company)
	if err != nil {
		ah.Logger.Println("Error creating company:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": company})
}

func (ah *AdminHandler) HandlerPatchCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		ah.Logger.Println("Error parsing company id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Plan     *string `json:"plan"`
		IsActive *bool   `json:"is_active"`
	}
	err = utils.ReadJSON(r, &req)
	if err != nil {
		ah.Logger.Println("Error decoding patch company request:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	err = ah.CompanyStore.PatchCompany(companyID, req.Name, req.Plan, req.IsActive)
	if err != nil {
		ah.Logger.Println("Error patching company:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Company updated"})
}
