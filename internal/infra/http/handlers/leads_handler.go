package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/notanothermarketer/leadgen-api/internal/usecase"
)

type LeadsHandler struct {
	ListUC *usecase.ListLeadsUseCase
}

func NewLeadsHandler(uc *usecase.ListLeadsUseCase) *LeadsHandler {
	return &LeadsHandler{ListUC: uc}
}

// HandleList (GET /campaigns/{id}/leads?pageSize=&priorCount=)
// Janela alargável de leads entregues, projetada pela flag de pagamento.
func (h *LeadsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")

	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	priorCount, _ := strconv.Atoi(r.URL.Query().Get("priorCount"))

	output, err := h.ListUC.Execute(r.Context(), usecase.ListLeadsInput{
		CampaignID: campaignID,
		PageSize:   pageSize,
		PriorCount: priorCount,
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
