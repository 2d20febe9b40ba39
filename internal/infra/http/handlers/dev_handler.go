package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/notanothermarketer/leadgen-api/internal/usecase"
)

// DevPaymentHandler marca uma campanha como paga SEM evidência do
// processador. Conveniência de teste local — a rota só é montada quando
// APP_ENV=development (decisão no entry point, não por convenção).
type DevPaymentHandler struct {
	Repo usecase.CampaignRepositoryInterface
}

func NewDevPaymentHandler(repo usecase.CampaignRepositoryInterface) *DevPaymentHandler {
	return &DevPaymentHandler{Repo: repo}
}

// HandleMarkPaid (POST /dev/mark-paid)
func (h *DevPaymentHandler) HandleMarkPaid(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CampaignID string `json:"campaignId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}
	if input.CampaignID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "campaignId is required")
		return
	}

	flipped, err := h.Repo.MarkPaid(r.Context(), input.CampaignID)
	if err != nil {
		writeUseCaseError(w, &usecase.StorageError{Op: "mark paid (dev)", Err: err})
		return
	}

	log.Printf("🧪 [DEV] Campanha %s marcada como paga (flipped=%v)", input.CampaignID, flipped)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"flipped": flipped,
	})
}
