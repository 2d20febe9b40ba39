package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/notanothermarketer/leadgen-api/internal/entity"
)

// Ordem fixa das colunas do CSV. Campo vazio sai em branco, nunca é dropado.
var csvHeaders = []string{
	"Full Name",
	"Job Title",
	"Email",
	"Company Name",
	"Company Website",
	"Company LinkedIn",
	"Company Size",
	"Industry",
	"Country",
	"City",
	"LinkedIn URL",
	"Why Great Fit",
	"Warm Intro Message",
	"Created At",
}

// ExportLeadsUseCase: serializa TODOS os leads entregues da campanha, mais
// novo primeiro. Esse é exatamente o dado que o pagamento destrava, então o
// gate é rechecado aqui dentro mesmo com o caller já tendo checado.
type ExportLeadsUseCase struct {
	CampaignRepo CampaignRepositoryInterface
	LeadRepo     LeadRepositoryInterface
}

func NewExportLeadsUseCase(
	campaignRepo CampaignRepositoryInterface,
	leadRepo LeadRepositoryInterface,
) *ExportLeadsUseCase {
	return &ExportLeadsUseCase{
		CampaignRepo: campaignRepo,
		LeadRepo:     leadRepo,
	}
}

func (uc *ExportLeadsUseCase) Execute(ctx context.Context, campaignID string) (*ExportLeadsOutput, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return nil, &ValidationError{Field: "campaignId", Message: "is required"}
	}

	campaign, err := uc.CampaignRepo.FindByID(ctx, campaignID)
	if err == entity.ErrCampaignNotFound {
		return nil, &NotFoundError{Message: "campaign not found"}
	}
	if err != nil {
		return nil, &StorageError{Op: "find campaign", Err: err}
	}

	// Sem pagamento não existe export, independente do que o caller checou.
	if !campaign.PaidStatus {
		return nil, &PaymentRequiredError{Message: "campaign is not paid"}
	}

	leads, err := uc.LeadRepo.FindDeliveredByCampaign(ctx, campaign.ID, 0)
	if err != nil {
		return nil, &StorageError{Op: "find leads", Err: err}
	}

	if len(leads) == 0 {
		return nil, &NotFoundError{Message: "no leads found for this campaign"}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("erro ao escrever header csv: %w", err)
	}

	for _, lead := range leads {
		record := []string{
			lead.FullName,
			lead.JobTitle,
			lead.LeadEmail,
			lead.CompanyName,
			lead.CompanyWebsite,
			lead.CompanyLinkedInURL,
			lead.CompanySize,
			lead.Industry,
			lead.Country,
			lead.City,
			lead.LinkedInURL,
			lead.WhyGreatFit,
			lead.WarmIntro,
			lead.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("erro ao escrever linha csv: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("erro ao finalizar csv: %w", err)
	}

	filename := fmt.Sprintf("leads-%s-%s.csv", campaign.ID, time.Now().UTC().Format("2006-01-02"))

	return &ExportLeadsOutput{
		Filename: filename,
		CSV:      buf.Bytes(),
		Rows:     len(leads),
	}, nil
}
