package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/notanothermarketer/leadgen-api/internal/entity"
	"github.com/notanothermarketer/leadgen-api/internal/infra/http/handlers"
	"github.com/notanothermarketer/leadgen-api/internal/infra/integration/stripe"
	"github.com/notanothermarketer/leadgen-api/internal/usecase"
)

type mockCampaignRepo struct {
	mock.Mock
}

func (m *mockCampaignRepo) Insert(ctx context.Context, c *entity.Campaign) (bool, error) {
	args := m.Called(ctx, c)
	return args.Bool(0), args.Error(1)
}

func (m *mockCampaignRepo) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *mockCampaignRepo) FindLatestByOwnerAndURL(ctx context.Context, userID, url string) (*entity.Campaign, error) {
	args := m.Called(ctx, userID, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *mockCampaignRepo) ClaimAnonymous(ctx context.Context, userID, url, email string) (*entity.Campaign, error) {
	args := m.Called(ctx, userID, url, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *mockCampaignRepo) MarkPaid(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockCampaignRepo) UpdateStatus(ctx context.Context, id, status string) (*entity.Campaign, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

const webhookSecret = "whsec_test_secret"

var eventBody = []byte(`{
	"id": "evt_1",
	"type": "checkout.session.completed",
	"data": {"object": {"id": "cs_test_1", "payment_status": "paid", "metadata": {"campaignId": "camp-1"}}}
}`)

func newWebhookHandler(repo *mockCampaignRepo) (*handlers.WebhookHandler, *stripe.Client) {
	client := stripe.NewClient("sk_test_123", webhookSecret, "")
	confirmUC := usecase.NewConfirmPaymentUseCase(repo, nil, nil)
	return handlers.NewWebhookHandler(client, confirmUC), client
}

// TestWebhookValidSignatureFlipsFlag - evento assinado + completed: a flag
// flipa e o Stripe recebe {received:true}.
func TestWebhookValidSignatureFlipsFlag(t *testing.T) {
	repo := new(mockCampaignRepo)
	repo.On("MarkPaid", mock.Anything, "camp-1").Return(true, nil)

	handler, client := newWebhookHandler(repo)

	req := httptest.NewRequest("POST", "/webhooks/stripe", bytes.NewReader(eventBody))
	req.Header.Set("Stripe-Signature", client.SignPayload(eventBody, time.Now()))
	rec := httptest.NewRecorder()

	handler.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"received":true`)
	repo.AssertExpectations(t)
}

// TestWebhookInvalidSignature - assinatura errada: 400 genérico e o banco
// nunca é tocado.
func TestWebhookInvalidSignature(t *testing.T) {
	repo := new(mockCampaignRepo)
	handler, _ := newWebhookHandler(repo)

	other := stripe.NewClient("sk_test_123", "whsec_wrong", "")

	req := httptest.NewRequest("POST", "/webhooks/stripe", bytes.NewReader(eventBody))
	req.Header.Set("Stripe-Signature", other.SignPayload(eventBody, time.Now()))
	rec := httptest.NewRecorder()

	handler.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hmac")
	repo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
}

// TestWebhookMissingSignature
func TestWebhookMissingSignature(t *testing.T) {
	repo := new(mockCampaignRepo)
	handler, _ := newWebhookHandler(repo)

	req := httptest.NewRequest("POST", "/webhooks/stripe", bytes.NewReader(eventBody))
	rec := httptest.NewRecorder()

	handler.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
}

// TestWebhookDuplicateEventStillAcks - flag já setada: ack mesmo assim, pro
// Stripe parar de reentregar.
func TestWebhookDuplicateEventStillAcks(t *testing.T) {
	repo := new(mockCampaignRepo)
	repo.On("MarkPaid", mock.Anything, "camp-1").Return(false, nil)

	handler, client := newWebhookHandler(repo)

	req := httptest.NewRequest("POST", "/webhooks/stripe", bytes.NewReader(eventBody))
	req.Header.Set("Stripe-Signature", client.SignPayload(eventBody, time.Now()))
	rec := httptest.NewRecorder()

	handler.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestWebhookOtherEventTypeIgnored - tipo fora do interesse: ack sem efeito.
func TestWebhookOtherEventTypeIgnored(t *testing.T) {
	body := []byte(`{"id":"evt_2","type":"payment_intent.created","data":{"object":{}}}`)

	repo := new(mockCampaignRepo)
	handler, client := newWebhookHandler(repo)

	req := httptest.NewRequest("POST", "/webhooks/stripe", bytes.NewReader(body))
	req.Header.Set("Stripe-Signature", client.SignPayload(body, time.Now()))
	rec := httptest.NewRecorder()

	handler.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
}

// TestWebhookVerifierNotConfigured - sem segredo configurado a porta fica
// fechada com 500, nunca aceita no escuro.
func TestWebhookVerifierNotConfigured(t *testing.T) {
	confirmUC := usecase.NewConfirmPaymentUseCase(new(mockCampaignRepo), nil, nil)
	handler := handlers.NewWebhookHandler(nil, confirmUC)

	req := httptest.NewRequest("POST", "/webhooks/stripe", bytes.NewReader(eventBody))
	rec := httptest.NewRecorder()

	handler.Handle(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
