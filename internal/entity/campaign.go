package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

var (
	ErrCampaignNotFound = errors.New("campanha não encontrada")
)

// Entidade: Campaign
// Uma campanha é um pedido de geração de leads para uma URL alvo.
// UserID pode ser vazio (fluxo pré-cadastro, sem conta ainda).
type Campaign struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Email  string `json:"email"`
	UserID string `json:"user_id,omitempty"`

	// Flag de pagamento. false -> true acontece UMA vez só (webhook ou
	// verificação direta). Nunca volta para false.
	PaidStatus bool `json:"paid_status"`

	// Status de enriquecimento escrito pelo pipeline externo (n8n).
	Status string `json:"status,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Factory
func NewCampaign(url, email, userID string) (*Campaign, error) {
	campaign := &Campaign{
		ID:         uuid.New().String(),
		URL:        strings.TrimSpace(url),
		Email:      strings.TrimSpace(email),
		UserID:     strings.TrimSpace(userID),
		PaidStatus: false,
		CreatedAt:  time.Now(),
	}

	if err := campaign.Validate(); err != nil {
		return nil, err
	}

	return campaign, nil
}

func (c *Campaign) Validate() error {
	if c.URL == "" {
		return errors.New("url is required")
	}
	if c.Email == "" {
		return errors.New("email is required")
	}
	return nil
}

// IsAnonymous indica campanha criada antes do signup (sem dono).
func (c *Campaign) IsAnonymous() bool {
	return c.UserID == ""
}
