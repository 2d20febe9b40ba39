package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/notanothermarketer/leadgen-api/internal/infra/http/middleware"
	"github.com/notanothermarketer/leadgen-api/internal/usecase"
)

type ExportHandler struct {
	ExportUC *usecase.ExportLeadsUseCase
}

func NewExportHandler(uc *usecase.ExportLeadsUseCase) *ExportHandler {
	return &ExportHandler{ExportUC: uc}
}

// Handle (POST /campaigns/export)
// Só campanha paga. text/csv como attachment, mais novo primeiro.
func (h *ExportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CampaignID string `json:"campaignId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	output, err := h.ExportUC.Execute(r.Context(), input.CampaignID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadsExported(output.Rows)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, output.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(output.CSV)
}
