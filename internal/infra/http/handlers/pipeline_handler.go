package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/notanothermarketer/leadgen-api/internal/entity"
	"github.com/notanothermarketer/leadgen-api/internal/usecase"
)

// PipelineHandler é a porta de escrita do pipeline de enriquecimento (n8n):
// insere leads e atualiza o status da campanha. Autenticada por token
// compartilhado no header — o caminho público continua read-only em leads.
type PipelineHandler struct {
	CampaignRepo usecase.CampaignRepositoryInterface
	LeadRepo     usecase.LeadRepositoryInterface
	Token        string
}

func NewPipelineHandler(
	campaignRepo usecase.CampaignRepositoryInterface,
	leadRepo usecase.LeadRepositoryInterface,
	token string,
) *PipelineHandler {
	return &PipelineHandler{
		CampaignRepo: campaignRepo,
		LeadRepo:     leadRepo,
		Token:        token,
	}
}

func (h *PipelineHandler) authorized(r *http.Request) bool {
	if h.Token == "" {
		return false // sem token configurado, porta fechada
	}
	got := r.Header.Get("X-Pipeline-Token")
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.Token)) == 1
}

// HandleCreateLeads (POST /pipeline/leads)
// Aceita um lead ou um array. campaign_id obrigatório em todos.
func (h *PipelineHandler) HandleCreateLeads(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeErrorResponse(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid pipeline token")
		return
	}

	// Um objeto ou um array — o n8n manda dos dois jeitos.
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	var leads []*entity.Lead
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &leads); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
			return
		}
	} else {
		var single entity.Lead
		if err := json.Unmarshal(raw, &single); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
			return
		}
		leads = append(leads, &single)
	}

	if len(leads) == 0 {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_LEADS", "no leads in payload")
		return
	}

	for _, lead := range leads {
		if lead.CampaignID == "" {
			writeErrorResponse(w, http.StatusBadRequest, "MISSING_CAMPAIGN_ID", "campaign_id is required for all leads")
			return
		}
	}

	if err := h.LeadRepo.BulkInsert(r.Context(), leads); err != nil {
		writeUseCaseError(w, &usecase.StorageError{Op: "bulk insert leads", Err: err})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(leads),
	})
}

// HandleGetCampaign (GET /pipeline/campaigns/{id})
func (h *PipelineHandler) HandleGetCampaign(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeErrorResponse(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid pipeline token")
		return
	}

	id := chi.URLParam(r, "id")
	campaign, err := h.CampaignRepo.FindByID(r.Context(), id)
	if err == entity.ErrCampaignNotFound {
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "campaign not found")
		return
	}
	if err != nil {
		writeUseCaseError(w, &usecase.StorageError{Op: "find campaign", Err: err})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"campaign": campaign,
	})
}

// HandleUpdateCampaign (POST /pipeline/campaigns/{id})
// O pipeline só escreve o status de enriquecimento — paid_status e o resto
// continuam fora do alcance dele.
func (h *PipelineHandler) HandleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeErrorResponse(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid pipeline token")
		return
	}

	id := chi.URLParam(r, "id")

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}
	if input.Status == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_STATUS", "status is required")
		return
	}

	campaign, err := h.CampaignRepo.UpdateStatus(r.Context(), id, input.Status)
	if err == entity.ErrCampaignNotFound {
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "campaign not found")
		return
	}
	if err != nil {
		writeUseCaseError(w, &usecase.StorageError{Op: "update campaign", Err: err})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"campaign": campaign,
	})
}
