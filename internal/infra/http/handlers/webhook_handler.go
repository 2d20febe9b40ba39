package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/notanothermarketer/leadgen-api/internal/infra/integration/stripe"
	"github.com/notanothermarketer/leadgen-api/internal/usecase"
)

// SignatureVerifier valida a evidência criptográfica do processador.
type SignatureVerifier interface {
	VerifySignature(body []byte, header string) error
}

type WebhookHandler struct {
	Verifier  SignatureVerifier
	ConfirmUC *usecase.ConfirmPaymentUseCase
}

func NewWebhookHandler(verifier SignatureVerifier, confirmUC *usecase.ConfirmPaymentUseCase) *WebhookHandler {
	return &WebhookHandler{
		Verifier:  verifier,
		ConfirmUC: confirmUC,
	}
}

// Handle (POST /webhooks/stripe)
// Assinatura inválida ou ausente: 400 genérico, flag intocada, detalhe só no
// log. Evento válido: ack {received:true} mesmo quando a flag já estava
// setada — o Stripe reentrega e a confirmação é idempotente.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_BODY", "could not read body")
		return
	}

	if h.Verifier == nil {
		writeErrorResponse(w, http.StatusInternalServerError, "CONFIGURATION_ERROR", "integration not configured")
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if err := h.Verifier.VerifySignature(body, signature); err != nil {
		log.Printf("❌ Webhook com assinatura inválida: %v", err)
		writeErrorResponse(w, http.StatusBadRequest, "invalid_signature", "request could not be verified")
		return
	}

	event, err := stripe.ParseEvent(body)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_EVENT", "malformed event")
		return
	}

	if err := h.ConfirmUC.ConfirmFromEvent(r.Context(), event); err != nil {
		// Pagamento confirmado mas flag não persistiu: 500 pro Stripe
		// reentregar. É o único caminho retriável daqui.
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
