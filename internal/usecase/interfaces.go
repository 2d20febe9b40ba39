package usecase

import (
	"context"

	"github.com/notanothermarketer/leadgen-api/internal/entity"
	"github.com/notanothermarketer/leadgen-api/internal/infra/integration/stripe"
	"github.com/notanothermarketer/leadgen-api/internal/infra/queue"
)

type CampaignRepositoryInterface interface {
	Insert(ctx context.Context, c *entity.Campaign) (created bool, err error)
	FindByID(ctx context.Context, id string) (*entity.Campaign, error)
	FindLatestByOwnerAndURL(ctx context.Context, userID, url string) (*entity.Campaign, error)
	ClaimAnonymous(ctx context.Context, userID, url, email string) (*entity.Campaign, error)
	MarkPaid(ctx context.Context, id string) (flipped bool, err error)
	UpdateStatus(ctx context.Context, id, status string) (*entity.Campaign, error)
}

type LeadRepositoryInterface interface {
	FindDeliveredByCampaign(ctx context.Context, campaignID string, limit int) ([]*entity.Lead, error)
	CountDeliveredByCampaign(ctx context.Context, campaignID string) (int, error)
	BulkInsert(ctx context.Context, leads []*entity.Lead) error
}

// PaymentGateway é o processador de pagamento (Stripe) visto pelo núcleo:
// cria um checkout de preço fixo amarrado ao campaign id e responde consulta
// direta de sessão. A verificação de assinatura do webhook fica no client.
type PaymentGateway interface {
	CreateCheckoutSession(input stripe.CheckoutSessionInput) (*stripe.CheckoutSession, error)
	RetrieveSession(sessionID string) (*stripe.CheckoutSession, error)
}

type QueueProducerInterface interface {
	PublishCampaignCreated(ctx context.Context, payload queue.CampaignCreatedPayload) error
}

// EmailService manda o recibo de desbloqueio depois do pagamento confirmado.
// Best-effort: falha é logada, nunca sobe.
type EmailService interface {
	SendUnlockReceipt(to, campaignURL string) error
}
