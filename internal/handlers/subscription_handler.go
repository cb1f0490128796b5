package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/vidflow/vidflow_server/internal/middlewares"
	"github.com/vidflow/vidflow_server/internal/models"
	"github.com/vidflow/vidflow_server/internal/payments"
	"github.com/vidflow/vidflow_server/internal/store"
	"github.com/vidflow/vidflow_server/internal/utils"
)

var planPricesCents = map[string]int64{
	"starter": 9900,
	"pro":     24900,
}

type SubscriptionHandler struct {
	SubscriptionStore store.SubscriptionStore
	Pix               *payments.PixClient
	Logger            *log.Logger
}

func NewSubscriptionHandler(subscriptionStore store.SubscriptionStore, pix *payments.PixClient, logger *log.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		SubscriptionStore: subscriptionStore,
		Pix:               pix,
		Logger:            logger,
	}
}

func (sh *SubscriptionHandler) HandlerGetSubscription(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		sh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	subscription, err := sh.SubscriptionStore.GetSubscriptionByCompanyID(user.CompanyID)
	if err != nil {
		sh.Logger.Println("No subscription found:", err)
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "No subscription"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": subscription})
}

type createChargeRequest struct {
	Plan string `json:"plan" validate:"required,oneof=starter pro"`
}

// HandlerCreateCharge asks the PIX provider for a charge and stores the
// pending payment. The provider confirms through the webhook.
func (sh *SubscriptionHandler) HandlerCreateCharge(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		sh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	var req createChargeRequest
	err := utils.ReadJSON(r, &req)
	if err != nil {
		sh.Logger.Println("Error decoding charge request:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	amount := planPricesCents[req.Plan]

	charge, err := sh.Pix.CreateCharge(amount, "Assinatura "+req.Plan)
	if err != nil {
		sh.Logger.Println("Error creating pix charge:", err)
		utils.WriteJSON(w, http.StatusBadGateway, utils.Envelope{"message": "Payment provider unavailable"})
		return
	}

	payment := &models.Payment{
		CompanyID:   user.CompanyID,
		Plan:        req.Plan,
		TxID:        charge.TxID,
		AmountCents: amount,
		Status:      models.PaymentPending,
		QRCode:      charge.QRCode,
	}

	err = sh.SubscriptionStore.CreatePayment(payment)
	if err != nil {
		sh.Logger.Println("Error saving payment:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": payment})
}

// HandlerPixWebhook is the provider's payment confirmation callback.
// Confirmations for unknown or already-paid charges are acknowledged and
// ignored so the provider stops retrying.
func (sh *SubscriptionHandler) HandlerPixWebhook(w http.ResponseWriter, r *http.Request) {
	if !payments.VerifyWebhookSecret(r) {
		sh.Logger.Println("Pix webhook rejected: bad secret")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	var event payments.WebhookEvent
	err := utils.ReadJSON(r, &event)
	if err != nil {
		sh.Logger.Println("Error decoding pix webhook:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	if event.Status != "paid" {
		utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Ignored"})
		return
	}

	payment, err := sh.SubscriptionStore.GetPaymentByTxID(event.TxID)
	if err != nil {
		sh.Logger.Printf("Pix webhook for unknown txid %s: %v", event.TxID, err)
		utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Ignored"})
		return
	}

	if payment.Status == models.PaymentPaid {
		utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Already processed"})
		return
	}

	err = sh.SubscriptionStore.MarkPaymentPaid(payment.TxID, time.Now().UTC())
	if err != nil {
		sh.Logger.Println("Error marking payment paid:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	err = sh.SubscriptionStore.ActivateSubscription(payment.CompanyID, payment.Plan)
	if err != nil {
		sh.Logger.Println("Error activating subscription:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Processed"})
}
