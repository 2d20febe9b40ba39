package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/notanothermarketer/leadgen-api/internal/infra/http/middleware"
	"github.com/notanothermarketer/leadgen-api/internal/usecase"
)

type CampaignHandler struct {
	ResolveUC   *usecase.ResolveCampaignUseCase
	rateLimiter *RateLimiter
}

func NewCampaignHandler(uc *usecase.ResolveCampaignUseCase) *CampaignHandler {
	return &CampaignHandler{
		ResolveUC:   uc,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min por IP
	}
}

// HandleCreate (POST /campaigns)
// Cria ou reusa a campanha do par (dono, url). 201 quando criou, 200 no reuso.
func (h *CampaignHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.")
		return
	}

	var input usecase.ResolveCampaignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	output, err := h.ResolveUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	status := http.StatusOK
	if output.Created {
		status = http.StatusCreated
		middleware.RecordCampaignCreated()
	}

	writeJSON(w, status, map[string]any{
		"campaign": output.Campaign,
		"created":  output.Created,
	})
}
