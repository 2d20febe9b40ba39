package usecase

import (
	"context"
	"strings"

	"github.com/notanothermarketer/leadgen-api/internal/entity"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListLeadsUseCase: janela alargável sobre os leads entregues da campanha.
// "Load more" repete a query com limite maior em vez de offset — lead que
// chegou entre uma chamada e outra ainda entra na próxima janela, ao custo
// de rebuscar linha já vista.
type ListLeadsUseCase struct {
	CampaignRepo CampaignRepositoryInterface
	LeadRepo     LeadRepositoryInterface
}

func NewListLeadsUseCase(
	campaignRepo CampaignRepositoryInterface,
	leadRepo LeadRepositoryInterface,
) *ListLeadsUseCase {
	return &ListLeadsUseCase{
		CampaignRepo: campaignRepo,
		LeadRepo:     leadRepo,
	}
}

func (uc *ListLeadsUseCase) Execute(ctx context.Context, input ListLeadsInput) (*ListLeadsOutput, error) {
	if strings.TrimSpace(input.CampaignID) == "" {
		return nil, &ValidationError{Field: "campaignId", Message: "is required"}
	}

	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	priorCount := input.PriorCount
	if priorCount < 0 {
		priorCount = 0
	}

	campaign, err := uc.CampaignRepo.FindByID(ctx, input.CampaignID)
	if err == entity.ErrCampaignNotFound {
		return nil, &NotFoundError{Message: "campaign not found"}
	}
	if err != nil {
		return nil, &StorageError{Op: "find campaign", Err: err}
	}

	// A janela nunca encolhe abaixo do que o caller já tinha na tela.
	limit := pageSize
	if priorCount > limit {
		limit = priorCount
	}

	leads, err := uc.LeadRepo.FindDeliveredByCampaign(ctx, campaign.ID, limit)
	if err != nil {
		return nil, &StorageError{Op: "find leads", Err: err}
	}

	// Count separado do mesmo filtro. O store cresce entre as duas queries,
	// então hasMore pode ficar algumas linhas defasado até o refresh seguinte.
	total, err := uc.LeadRepo.CountDeliveredByCampaign(ctx, campaign.ID)
	if err != nil {
		return nil, &StorageError{Op: "count leads", Err: err}
	}

	visible := make([]*entity.VisibleLead, 0, len(leads))
	for _, lead := range leads {
		visible = append(visible, Project(lead, campaign.PaidStatus))
	}

	return &ListLeadsOutput{
		Leads:          visible,
		TotalDelivered: total,
		HasMore:        total > len(leads),
		Paid:           campaign.PaidStatus,
	}, nil
}
