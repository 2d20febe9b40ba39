package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/notanothermarketer/leadgen-api/internal/entity"
	"github.com/notanothermarketer/leadgen-api/internal/infra/queue"
	"github.com/notanothermarketer/leadgen-api/internal/usecase"
)

// TestResolveCampaignCreatesAndFiresTriggerOnce - criação nova publica o
// evento de enriquecimento exatamente uma vez, com {url, email, campaignId}.
func TestResolveCampaignCreatesAndFiresTriggerOnce(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCampaignRepository)
	mockProducer := new(MockQueueProducer)

	mockRepo.On("Insert", ctx, mock.Anything).Return(true, nil)
	mockProducer.On("PublishCampaignCreated", ctx, mock.MatchedBy(func(p queue.CampaignCreatedPayload) bool {
		return p.URL == "example.com" && p.Email == "a@b.com" && p.CampaignID != ""
	})).Return(nil)

	uc := usecase.NewResolveCampaignUseCase(mockRepo, mockProducer)

	output, err := uc.Execute(ctx, usecase.ResolveCampaignInput{
		URL:   "  example.com  ",
		Email: "a@b.com",
	})

	assert.NoError(t, err)
	assert.True(t, output.Created)
	assert.False(t, output.Campaign.PaidStatus)
	assert.Equal(t, "example.com", output.Campaign.URL)
	mockProducer.AssertNumberOfCalls(t, "PublishCampaignCreated", 1)
}

// TestResolveCampaignIdempotentReuse - mesmo dono + mesma URL devolve a
// campanha existente sem criar nem disparar gatilho de novo.
func TestResolveCampaignIdempotentReuse(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCampaignRepository)
	mockProducer := new(MockQueueProducer)

	existing := &entity.Campaign{
		ID:     "camp-1",
		URL:    "example.com",
		Email:  "a@b.com",
		UserID: "user-1",
	}

	mockRepo.On("FindLatestByOwnerAndURL", ctx, "user-1", "example.com").Return(existing, nil)

	uc := usecase.NewResolveCampaignUseCase(mockRepo, mockProducer)

	first, err := uc.Execute(ctx, usecase.ResolveCampaignInput{
		URL: "example.com", Email: "a@b.com", UserID: "user-1",
	})
	assert.NoError(t, err)

	second, err := uc.Execute(ctx, usecase.ResolveCampaignInput{
		URL: "example.com", Email: "a@b.com", UserID: "user-1",
	})
	assert.NoError(t, err)

	assert.Equal(t, first.Campaign.ID, second.Campaign.ID)
	assert.False(t, first.Created)
	assert.False(t, second.Created)
	mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	mockProducer.AssertNotCalled(t, "PublishCampaignCreated", mock.Anything, mock.Anything)
}

// TestResolveCampaignAnonymousAlwaysCreates - sem dono não existe chave de
// dedup: cada submit anônimo cria campanha nova (assimetria documentada).
func TestResolveCampaignAnonymousAlwaysCreates(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCampaignRepository)
	mockProducer := new(MockQueueProducer)

	mockRepo.On("Insert", ctx, mock.Anything).Return(true, nil)
	mockProducer.On("PublishCampaignCreated", ctx, mock.Anything).Return(nil)

	uc := usecase.NewResolveCampaignUseCase(mockRepo, mockProducer)

	first, err := uc.Execute(ctx, usecase.ResolveCampaignInput{URL: "example.com", Email: "a@b.com"})
	assert.NoError(t, err)
	second, err := uc.Execute(ctx, usecase.ResolveCampaignInput{URL: "example.com", Email: "a@b.com"})
	assert.NoError(t, err)

	assert.True(t, first.Created)
	assert.True(t, second.Created)
	assert.NotEqual(t, first.Campaign.ID, second.Campaign.ID)
	mockRepo.AssertNotCalled(t, "FindLatestByOwnerAndURL", mock.Anything, mock.Anything, mock.Anything)
	mockProducer.AssertNumberOfCalls(t, "PublishCampaignCreated", 2)
}

// TestResolveCampaignClaimsAnonymous - login depois de criar campanha
// anônima: a campanha é reivindicada, não duplicada, e o gatilho não dispara
// de novo.
func TestResolveCampaignClaimsAnonymous(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCampaignRepository)
	mockProducer := new(MockQueueProducer)

	claimed := &entity.Campaign{
		ID: "camp-anon", URL: "example.com", Email: "a@b.com", UserID: "user-1",
	}

	mockRepo.On("FindLatestByOwnerAndURL", ctx, "user-1", "example.com").
		Return(nil, entity.ErrCampaignNotFound)
	mockRepo.On("ClaimAnonymous", ctx, "user-1", "example.com", "a@b.com").
		Return(claimed, nil)

	uc := usecase.NewResolveCampaignUseCase(mockRepo, mockProducer)

	output, err := uc.Execute(ctx, usecase.ResolveCampaignInput{
		URL: "example.com", Email: "a@b.com", UserID: "user-1",
	})

	assert.NoError(t, err)
	assert.False(t, output.Created)
	assert.Equal(t, "camp-anon", output.Campaign.ID)
	mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	mockProducer.AssertNotCalled(t, "PublishCampaignCreated", mock.Anything, mock.Anything)
}

// TestResolveCampaignLostRaceReturnsWinner - Insert devolve created=false
// (conflito no índice único): o caller recebe a campanha do vencedor e o
// gatilho não dispara.
func TestResolveCampaignLostRaceReturnsWinner(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCampaignRepository)
	mockProducer := new(MockQueueProducer)

	winner := &entity.Campaign{ID: "camp-winner", URL: "example.com", UserID: "user-1"}

	mockRepo.On("FindLatestByOwnerAndURL", ctx, "user-1", "example.com").
		Return(nil, entity.ErrCampaignNotFound).Once()
	mockRepo.On("ClaimAnonymous", ctx, "user-1", "example.com", "a@b.com").
		Return(nil, entity.ErrCampaignNotFound)
	mockRepo.On("Insert", ctx, mock.Anything).Return(false, nil)
	mockRepo.On("FindLatestByOwnerAndURL", ctx, "user-1", "example.com").
		Return(winner, nil)

	uc := usecase.NewResolveCampaignUseCase(mockRepo, mockProducer)

	output, err := uc.Execute(ctx, usecase.ResolveCampaignInput{
		URL: "example.com", Email: "a@b.com", UserID: "user-1",
	})

	assert.NoError(t, err)
	assert.False(t, output.Created)
	assert.Equal(t, "camp-winner", output.Campaign.ID)
	mockProducer.AssertNotCalled(t, "PublishCampaignCreated", mock.Anything, mock.Anything)
}

// TestResolveCampaignValidation - url/email vazios são ValidationError.
func TestResolveCampaignValidation(t *testing.T) {
	ctx := context.Background()

	uc := usecase.NewResolveCampaignUseCase(new(MockCampaignRepository), new(MockQueueProducer))

	_, err := uc.Execute(ctx, usecase.ResolveCampaignInput{URL: "   ", Email: "a@b.com"})
	assert.True(t, usecase.IsValidationError(err))

	_, err = uc.Execute(ctx, usecase.ResolveCampaignInput{URL: "example.com", Email: ""})
	assert.True(t, usecase.IsValidationError(err))

	_, err = uc.Execute(ctx, usecase.ResolveCampaignInput{URL: "example.com", Email: "not-an-email"})
	assert.True(t, usecase.IsValidationError(err))
}

// TestResolveCampaignStorageError - banco fora vira StorageError.
func TestResolveCampaignStorageError(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCampaignRepository)
	mockRepo.On("Insert", ctx, mock.Anything).Return(false, errors.New("connection refused"))

	uc := usecase.NewResolveCampaignUseCase(mockRepo, new(MockQueueProducer))

	_, err := uc.Execute(ctx, usecase.ResolveCampaignInput{URL: "example.com", Email: "a@b.com"})
	assert.True(t, usecase.IsStorageError(err))
}

// TestResolveCampaignPublishFailureIsSwallowed - fila fora não derruba a
// criação: best-effort, sem rollback.
func TestResolveCampaignPublishFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCampaignRepository)
	mockProducer := new(MockQueueProducer)

	mockRepo.On("Insert", ctx, mock.Anything).Return(true, nil)
	mockProducer.On("PublishCampaignCreated", ctx, mock.Anything).Return(errors.New("broker down"))

	uc := usecase.NewResolveCampaignUseCase(mockRepo, mockProducer)

	output, err := uc.Execute(ctx, usecase.ResolveCampaignInput{URL: "example.com", Email: "a@b.com"})

	assert.NoError(t, err)
	assert.True(t, output.Created)
}
