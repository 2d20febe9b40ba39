package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/notanothermarketer/leadgen-api/internal/entity"
)

type CampaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

// Insert grava a campanha de forma atômica contra corrida de duplicidade.
// O índice único parcial uq_campaign_owner_url (user_id, url) WHERE user_id
// IS NOT NULL fecha a janela do lookup-then-insert: dois submits simultâneos
// do mesmo dono+URL viram um insert e um conflito, nunca duas campanhas.
// Campanhas anônimas (user_id NULL) ficam fora do índice de propósito —
// cada submit anônimo cria uma campanha nova.
//
// Retorna created=false quando o conflito venceu (a campanha já existia).
func (r *CampaignRepository) Insert(ctx context.Context, c *entity.Campaign) (created bool, err error) {
	query := `
		INSERT INTO campaign (id, url, email, user_id, paid_status, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
		ON CONFLICT (user_id, url) WHERE user_id IS NOT NULL
		DO NOTHING
		RETURNING id
	`

	var insertedID string
	err = r.DB.QueryRowContext(ctx, query,
		c.ID,
		c.URL,
		c.Email,
		c.UserID,
		c.PaidStatus,
		c.CreatedAt,
	).Scan(&insertedID)

	if err == sql.ErrNoRows {
		// Conflito: alguém inseriu primeiro. Não é erro.
		return false, nil
	}
	if err != nil {
		log.Printf("❌ Erro crítico no banco ao criar campanha: %v", err)
		return false, err
	}

	return true, nil
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	query := `
		SELECT id, url, email, COALESCE(user_id, ''), paid_status, COALESCE(status, ''), created_at
		FROM campaign
		WHERE id = $1
	`

	var c entity.Campaign
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.URL,
		&c.Email,
		&c.UserID,
		&c.PaidStatus,
		&c.Status,
		&c.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar campanha: %w", err)
	}
	return &c, nil
}

// FindLatestByOwnerAndURL busca a campanha mais recente do dono para a URL
// exata (já trimada). É o caminho idempotente do resolve.
func (r *CampaignRepository) FindLatestByOwnerAndURL(ctx context.Context, userID, url string) (*entity.Campaign, error) {
	query := `
		SELECT id, url, email, COALESCE(user_id, ''), paid_status, COALESCE(status, ''), created_at
		FROM campaign
		WHERE user_id = $1 AND url = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var c entity.Campaign
	err := r.DB.QueryRowContext(ctx, query, userID, url).Scan(
		&c.ID,
		&c.URL,
		&c.Email,
		&c.UserID,
		&c.PaidStatus,
		&c.Status,
		&c.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar campanha por dono+url: %w", err)
	}
	return &c, nil
}

// ClaimAnonymous adota a campanha anônima mais recente com a mesma URL e
// email de contato, setando o dono. Usado quando o visitante cria a campanha
// antes de ter conta e depois faz login — em vez de duplicar, reivindica.
func (r *CampaignRepository) ClaimAnonymous(ctx context.Context, userID, url, email string) (*entity.Campaign, error) {
	query := `
		UPDATE campaign
		SET user_id = $1
		WHERE id = (
			SELECT id FROM campaign
			WHERE user_id IS NULL AND url = $2 AND email = $3
			ORDER BY created_at DESC
			LIMIT 1
		)
		RETURNING id, url, email, COALESCE(user_id, ''), paid_status, COALESCE(status, ''), created_at
	`

	var c entity.Campaign
	err := r.DB.QueryRowContext(ctx, query, userID, url, email).Scan(
		&c.ID,
		&c.URL,
		&c.Email,
		&c.UserID,
		&c.PaidStatus,
		&c.Status,
		&c.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao reivindicar campanha anônima: %w", err)
	}
	return &c, nil
}

// MarkPaid flipa a flag de pagamento de forma condicional e idempotente.
// flipped=false significa que já estava paga (webhook duplicado) — não é erro.
// PAID é absorvente: não existe caminho de volta.
func (r *CampaignRepository) MarkPaid(ctx context.Context, id string) (flipped bool, err error) {
	query := `UPDATE campaign SET paid_status = true WHERE id = $1 AND paid_status = false`

	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("erro ao marcar campanha como paga: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao ler rows affected: %w", err)
	}

	return rows > 0, nil
}

// UpdateStatus é o caminho de escrita do pipeline (ingest API).
func (r *CampaignRepository) UpdateStatus(ctx context.Context, id, status string) (*entity.Campaign, error) {
	query := `
		UPDATE campaign
		SET status = $2
		WHERE id = $1
		RETURNING id, url, email, COALESCE(user_id, ''), paid_status, COALESCE(status, ''), created_at
	`

	var c entity.Campaign
	err := r.DB.QueryRowContext(ctx, query, id, status).Scan(
		&c.ID,
		&c.URL,
		&c.Email,
		&c.UserID,
		&c.PaidStatus,
		&c.Status,
		&c.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao atualizar status da campanha: %w", err)
	}
	return &c, nil
}
