package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/notanothermarketer/leadgen-api/internal/usecase"
)

type CheckoutHandler struct {
	CreateCheckoutUC *usecase.CreateCheckoutUseCase
	ConfirmUC        *usecase.ConfirmPaymentUseCase
}

func NewCheckoutHandler(
	createUC *usecase.CreateCheckoutUseCase,
	confirmUC *usecase.ConfirmPaymentUseCase,
) *CheckoutHandler {
	return &CheckoutHandler{
		CreateCheckoutUC: createUC,
		ConfirmUC:        confirmUC,
	}
}

// HandleCreate (POST /checkout)
// {campaignId} -> {session_id, checkout_url}
func (h *CheckoutHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CampaignID string `json:"campaignId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	output, err := h.CreateCheckoutUC.Execute(r.Context(), input.CampaignID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

// HandleComplete (GET /checkout/complete?campaignId=&session_id=)
// Caminho de verificação direta no retorno do Stripe: consulta a sessão e só
// flipa a flag se o processador disser "paid".
func (h *CheckoutHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	campaignID := r.URL.Query().Get("campaignId")
	sessionID := r.URL.Query().Get("session_id")

	if err := h.ConfirmUC.ConfirmFromSession(r.Context(), campaignID, sessionID); err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"campaignId": campaignID,
	})
}
