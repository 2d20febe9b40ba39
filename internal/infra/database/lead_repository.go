package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/notanothermarketer/leadgen-api/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, campaign_id, sent,
	COALESCE(full_name, ''), COALESCE(job_title, ''), COALESCE(photo_url, ''),
	COALESCE(linkedin_url, ''), COALESCE(company_name, ''), COALESCE(company_website, ''),
	COALESCE(company_linkedin_url, ''), COALESCE(company_size, ''), COALESCE(industry, ''),
	COALESCE(country, ''), COALESCE(city, ''), COALESCE(lead_email, ''),
	COALESCE(whygreatfit, ''), COALESCE(warmintro, ''),
	created_at
`

func scanLead(row interface{ Scan(...any) error }) (*entity.Lead, error) {
	l := &entity.Lead{}
	err := row.Scan(
		&l.ID, &l.CampaignID, &l.Sent,
		&l.FullName, &l.JobTitle, &l.PhotoURL,
		&l.LinkedInURL, &l.CompanyName, &l.CompanyWebsite,
		&l.CompanyLinkedInURL, &l.CompanySize, &l.Industry,
		&l.Country, &l.City, &l.LeadEmail,
		&l.WhyGreatFit, &l.WarmIntro,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// FindDeliveredByCampaign retorna a janela de leads entregues, mais novo
// primeiro. O desempate por id mantém a paginação estável entre chamadas
// repetidas. limit <= 0 significa sem limite (usado pelo export).
func (r *LeadRepository) FindDeliveredByCampaign(ctx context.Context, campaignID string, limit int) ([]*entity.Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM leads
		WHERE campaign_id = $1 AND sent = $2
		ORDER BY created_at DESC, id DESC
	`
	args := []any{campaignID, entity.LeadSentYes}

	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar leads: %w", err)
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar leads: %w", err)
	}

	return leads, nil
}

// CountDeliveredByCampaign roda como query separada do mesmo filtro — o
// total pode ficar alguns leads à frente da janela (pipeline escreve o tempo
// todo), e tudo bem: o contrato é eventualmente consistente.
func (r *LeadRepository) CountDeliveredByCampaign(ctx context.Context, campaignID string) (int, error) {
	query := `SELECT COUNT(*) FROM leads WHERE campaign_id = $1 AND sent = $2`

	var total int
	err := r.DB.QueryRowContext(ctx, query, campaignID, entity.LeadSentYes).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar leads: %w", err)
	}
	return total, nil
}

// BulkInsert é o caminho de escrita do pipeline (ingest API). Roda numa
// transação: ou entram todos, ou nenhum.
func (r *LeadRepository) BulkInsert(ctx context.Context, leads []*entity.Lead) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("erro ao abrir transação: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO leads (
			id, campaign_id, sent,
			full_name, job_title, photo_url,
			linkedin_url, company_name, company_website,
			company_linkedin_url, company_size, industry,
			country, city, lead_email,
			whygreatfit, warmintro,
			created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15, $16, $17, NOW()
		)
	`

	for _, l := range leads {
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		if l.Sent == "" {
			l.Sent = entity.LeadSentNo
		}

		_, err := tx.ExecContext(ctx, query,
			l.ID, l.CampaignID, l.Sent,
			l.FullName, l.JobTitle, l.PhotoURL,
			l.LinkedInURL, l.CompanyName, l.CompanyWebsite,
			l.CompanyLinkedInURL, l.CompanySize, l.Industry,
			l.Country, l.City, l.LeadEmail,
			l.WhyGreatFit, l.WarmIntro,
		)
		if err != nil {
			return fmt.Errorf("erro ao inserir lead %s: %w", l.ID, err)
		}
	}

	return tx.Commit()
}
