package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/notanothermarketer/leadgen-api/internal/infra/http/middleware"
	"github.com/notanothermarketer/leadgen-api/internal/infra/integration/stripe"
)

// ConfirmPaymentUseCase: os dois caminhos de evidência (webhook assinado e
// consulta direta de sessão) convergem no mesmo efeito — um único UPDATE
// condicional da flag. Idempotente contra notificação duplicada: o Stripe
// pode (e vai) reentregar o mesmo evento.
type ConfirmPaymentUseCase struct {
	Repo         CampaignRepositoryInterface
	Gateway      PaymentGateway
	EmailService EmailService
}

func NewConfirmPaymentUseCase(
	repo CampaignRepositoryInterface,
	gateway PaymentGateway,
	emailService EmailService,
) *ConfirmPaymentUseCase {
	return &ConfirmPaymentUseCase{
		Repo:         repo,
		Gateway:      gateway,
		EmailService: emailService,
	}
}

// ConfirmFromEvent: caminho (a), evento do webhook JÁ verificado pelo handler
// (assinatura checada antes de chegar aqui). Evento que não é
// checkout.session.completed é ack sem efeito.
func (uc *ConfirmPaymentUseCase) ConfirmFromEvent(ctx context.Context, event *stripe.WebhookEvent) error {
	if event.Type != stripe.EventCheckoutCompleted {
		log.Printf("ℹ️ Evento stripe ignorado: %s", event.Type)
		return nil
	}

	campaignID := strings.TrimSpace(event.Data.Object.Metadata.CampaignID)
	if campaignID == "" {
		log.Printf("⚠️ Evento %s sem campaignId na metadata", event.ID)
		return nil
	}

	return uc.markPaid(ctx, campaignID)
}

// ConfirmFromSession: caminho (b), verificação direta no retorno do checkout.
// Só flipa se o processador atestar payment_status == paid E a sessão estar
// amarrada à campanha pedida — nunca no "eu paguei" do cliente.
func (uc *ConfirmPaymentUseCase) ConfirmFromSession(ctx context.Context, campaignID, sessionID string) error {
	campaignID = strings.TrimSpace(campaignID)
	sessionID = strings.TrimSpace(sessionID)
	if campaignID == "" || sessionID == "" {
		return &ValidationError{Field: "campaignId/session_id", Message: "are required"}
	}

	if uc.Gateway == nil {
		return &ConfigurationError{Integration: "stripe"}
	}

	session, err := uc.Gateway.RetrieveSession(sessionID)
	if err != nil {
		// Stripe fora do ar não é evidência forjada: 503 e o front tenta de
		// novo (ou o webhook chega antes).
		var transportErr *stripe.TransportError
		if errors.As(err, &transportErr) {
			return &UnavailableError{Integration: "stripe"}
		}
		return &AuthenticationError{Message: "não foi possível verificar o pagamento"}
	}

	if session.PaymentStatus != "paid" {
		return &AuthenticationError{Message: "pagamento não concluído"}
	}

	// A amarração vem da metadata atestada pelo processador, não do caller.
	// Sem isso, uma sessão paga da campanha A destravaria a campanha B.
	if session.Metadata.CampaignID != campaignID {
		log.Printf("❌ Sessão %s é da campanha %q, não de %q — pedido rejeitado",
			session.ID, session.Metadata.CampaignID, campaignID)
		return &AuthenticationError{Message: "sessão não pertence a esta campanha"}
	}

	return uc.markPaid(ctx, campaignID)
}

// markPaid: o único ponto que muda a flag. Falha de persistência DEPOIS de
// pagamento confirmado é o caso alertável deste subsistema — o dinheiro já
// trocou de mão.
func (uc *ConfirmPaymentUseCase) markPaid(ctx context.Context, campaignID string) error {
	flipped, err := uc.Repo.MarkPaid(ctx, campaignID)
	if err != nil {
		log.Printf("🚨 CRITICAL: pagamento confirmado mas flag não persistiu (campanha %s): %v", campaignID, err)
		middleware.RecordPaymentPersistFailure()
		return &StorageError{Op: "mark paid", Err: err}
	}

	if !flipped {
		// Já estava paga — webhook duplicado ou os dois caminhos chegaram.
		log.Printf("ℹ️ Campanha %s já estava paga, evento duplicado ignorado", campaignID)
		return nil
	}

	log.Printf("💰 Campanha %s desbloqueada", campaignID)
	middleware.RecordPaymentConfirmed()

	// Recibo de desbloqueio: best-effort, nunca bloqueia a confirmação.
	if uc.EmailService != nil {
		campaign, err := uc.Repo.FindByID(ctx, campaignID)
		if err != nil {
			log.Printf("⚠️ Sem dados pra enviar recibo da campanha %s: %v", campaignID, err)
			return nil
		}
		go func(to, url string) {
			if err := uc.EmailService.SendUnlockReceipt(to, url); err != nil {
				log.Printf("⚠️ Falha ao enviar recibo de desbloqueio: %v", err)
			}
		}(campaign.Email, campaign.URL)
	}

	return nil
}
