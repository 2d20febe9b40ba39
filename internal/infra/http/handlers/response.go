package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/notanothermarketer/leadgen-api/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}

// writeUseCaseError mapeia a taxonomia de erros do núcleo pra HTTP.
// StorageError sai genérico: o detalhe vai pro log, nunca pro caller.
func writeUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case usecase.IsValidationError(err):
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case usecase.IsNotFoundError(err):
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case usecase.IsPaymentRequiredError(err):
		writeErrorResponse(w, http.StatusPaymentRequired, "PAYMENT_REQUIRED", err.Error())
	case usecase.IsUnavailableError(err):
		log.Printf("⚠️ Integração indisponível: %v", err)
		writeErrorResponse(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "payment processor unavailable, try again")
	case usecase.IsConfigurationError(err):
		log.Printf("❌ Configuração faltando: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "CONFIGURATION_ERROR", "integration not configured")
	case usecase.IsAuthenticationError(err):
		// 400 genérico de propósito: não vira oráculo de campaign id.
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", "request could not be verified")
	case usecase.IsStorageError(err):
		log.Printf("❌ Erro de storage: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal server error")
	default:
		log.Printf("❌ Erro inesperado: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
