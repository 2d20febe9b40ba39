package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/notanothermarketer/leadgen-api/internal/entity"
	"github.com/notanothermarketer/leadgen-api/internal/infra/queue"
)

// ResolveCampaignUseCase: garante no máximo uma campanha por (dono, URL) e
// dispara o gatilho de enriquecimento exatamente uma vez, só na criação.
//
// Fluxo anônimo (sem dono) não tem chave de dedup — cada submit cria campanha
// nova. É assimetria documentada do funil sem fricção, não bug.
type ResolveCampaignUseCase struct {
	Repo     CampaignRepositoryInterface
	Producer QueueProducerInterface
}

func NewResolveCampaignUseCase(
	repo CampaignRepositoryInterface,
	producer QueueProducerInterface,
) *ResolveCampaignUseCase {
	return &ResolveCampaignUseCase{
		Repo:     repo,
		Producer: producer,
	}
}

func (uc *ResolveCampaignUseCase) Execute(ctx context.Context, input ResolveCampaignInput) (*ResolveCampaignOutput, error) {
	if errs := ValidateResolveCampaignInput(input); len(errs) > 0 {
		return nil, &errs[0]
	}

	url := strings.TrimSpace(input.URL)
	email := strings.TrimSpace(input.Email)
	userID := strings.TrimSpace(input.UserID)

	if userID != "" {
		// 1. Reuso idempotente: já existe campanha desse dono pra essa URL?
		existing, err := uc.Repo.FindLatestByOwnerAndURL(ctx, userID, url)
		if err == nil {
			return &ResolveCampaignOutput{Campaign: existing, Created: false}, nil
		}
		if err != entity.ErrCampaignNotFound {
			return nil, &StorageError{Op: "find campaign", Err: err}
		}

		// 2. Reivindica campanha anônima do mesmo visitante (criada antes
		// do login com a mesma URL+email). Os leads seguem a campanha, então
		// nada fica órfão.
		claimed, err := uc.Repo.ClaimAnonymous(ctx, userID, url, email)
		if err == nil {
			log.Printf("🔗 Campanha anônima %s reivindicada pelo user %s", claimed.ID, userID)
			return &ResolveCampaignOutput{Campaign: claimed, Created: false}, nil
		}
		if err != entity.ErrCampaignNotFound {
			return nil, &StorageError{Op: "claim campaign", Err: err}
		}
	}

	// 3. Cria. O índice único parcial (user_id, url) + ON CONFLICT fecha a
	// corrida do lookup-then-insert: se dois submits chegarem juntos, um
	// insere e o outro recebe created=false e relê a campanha vencedora.
	campaign, err := entity.NewCampaign(url, email, userID)
	if err != nil {
		return nil, &ValidationError{Field: "campaign", Message: err.Error()}
	}

	created, err := uc.Repo.Insert(ctx, campaign)
	if err != nil {
		return nil, &StorageError{Op: "insert campaign", Err: err}
	}

	if !created {
		// Perdemos a corrida. A campanha do vencedor já disparou o gatilho.
		winner, err := uc.Repo.FindLatestByOwnerAndURL(ctx, userID, url)
		if err != nil {
			return nil, &StorageError{Op: "find campaign after conflict", Err: err}
		}
		return &ResolveCampaignOutput{Campaign: winner, Created: false}, nil
	}

	// 4. Gatilho de enriquecimento: publica o evento UMA vez, só na criação.
	// Best-effort — se a fila estiver fora, a campanha existe mesmo assim e o
	// dono só espera mais ("still processing"). Sem retry, sem rollback.
	if uc.Producer != nil {
		payload := queue.CampaignCreatedPayload{
			CampaignID: campaign.ID,
			URL:        campaign.URL,
			Email:      campaign.Email,
		}
		if err := uc.Producer.PublishCampaignCreated(ctx, payload); err != nil {
			log.Printf("⚠️ Campanha %s criada, mas falhou publicar evento: %v", campaign.ID, err)
		}
	}

	return &ResolveCampaignOutput{Campaign: campaign, Created: true}, nil
}
