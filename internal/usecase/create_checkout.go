package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/notanothermarketer/leadgen-api/internal/entity"
	"github.com/notanothermarketer/leadgen-api/internal/infra/integration/stripe"
)

// Preço fixo do unlock: $47.00. Um pagamento destrava a campanha inteira.
const (
	UnlockAmountCents = 4700
	UnlockCurrency    = "usd"
	UnlockProductName = "Campaign Unlock"
	UnlockDescription = "Unlock all lead information for your campaign"
)

type CreateCheckoutUseCase struct {
	Repo       CampaignRepositoryInterface
	Gateway    PaymentGateway
	AppBaseURL string // origem do front, pras URLs de retorno
}

func NewCreateCheckoutUseCase(
	repo CampaignRepositoryInterface,
	gateway PaymentGateway,
	appBaseURL string,
) *CreateCheckoutUseCase {
	return &CreateCheckoutUseCase{
		Repo:       repo,
		Gateway:    gateway,
		AppBaseURL: appBaseURL,
	}
}

func (uc *CreateCheckoutUseCase) Execute(ctx context.Context, campaignID string) (*CreateCheckoutOutput, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return nil, &ValidationError{Field: "campaignId", Message: "is required"}
	}

	if uc.Gateway == nil {
		return nil, &ConfigurationError{Integration: "stripe"}
	}

	campaign, err := uc.Repo.FindByID(ctx, campaignID)
	if err == entity.ErrCampaignNotFound {
		return nil, &NotFoundError{Message: "campaign not found"}
	}
	if err != nil {
		return nil, &StorageError{Op: "find campaign", Err: err}
	}

	// Checkout abandonado não deixa rastro: a sessão nova simplesmente
	// substitui a anterior. Só a flag terminal de pagamento é persistida.
	session, err := uc.Gateway.CreateCheckoutSession(stripe.CheckoutSessionInput{
		CampaignID:  campaign.ID,
		AmountCents: UnlockAmountCents,
		Currency:    UnlockCurrency,
		ProductName: UnlockProductName,
		Description: UnlockDescription,
		SuccessURL:  fmt.Sprintf("%s/api/checkout/complete?campaignId=%s&session_id={CHECKOUT_SESSION_ID}", uc.AppBaseURL, campaign.ID),
		CancelURL:   fmt.Sprintf("%s/leads?campaignId=%s&canceled=true", uc.AppBaseURL, campaign.ID),
	})
	if err != nil {
		// Stripe fora do ar é retriável (503); rejeição da API não é (500).
		var transportErr *stripe.TransportError
		if errors.As(err, &transportErr) {
			return nil, &UnavailableError{Integration: "stripe"}
		}
		return nil, fmt.Errorf("falha ao criar sessão de checkout: %w", err)
	}

	return &CreateCheckoutOutput{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	}, nil
}
